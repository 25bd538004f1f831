// File: handlers/bundle.go
package handlers

import (
	providerRepo "reservekit/database/repository/provider"
	"reservekit/services/booking"
	"reservekit/services/catalog"
)

// HandlerBundle groups the HTTP handlers with their service dependencies so
// route registration can share one wired instance.
type HandlerBundle struct {
	Providers providerRepo.ProviderRepository
	Catalog   catalog.CatalogService
	Bookings  booking.BookingService
}
