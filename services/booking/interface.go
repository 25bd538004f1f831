// File: services/booking/interface.go
package booking

import (
	"context"

	"reservekit/models"
	"reservekit/utils"
)

// BookingService is the admission pipeline plus the booking lifecycle
// operations behind /v1/bookings.
type BookingService interface {
	CreateBooking(ctx context.Context, provider *models.Provider, serviceID string, req models.CreateBookingRequest) (*models.Booking, error)
	GetBooking(ctx context.Context, provider *models.Provider, bookingID string) (*models.Booking, error)
	ListBookings(ctx context.Context, provider *models.Provider, serviceID string, page utils.PageRequest) ([]models.Booking, utils.Pagination, error)
	UpdateBooking(ctx context.Context, provider *models.Provider, bookingID string, req models.UpdateBookingRequest) (*models.Booking, error)
	DeleteBooking(ctx context.Context, provider *models.Provider, bookingID string) error
	GetBookingCustomer(ctx context.Context, provider *models.Provider, bookingID string) (*models.Customer, error)
	UpdateBookingCustomer(ctx context.Context, provider *models.Provider, bookingID string, info models.CustomerInfo) (*models.Customer, error)
}

// SlotCatalog is the catalog surface the pipeline resolves services and
// time slots through.
type SlotCatalog interface {
	GetService(ctx context.Context, providerID, serviceID string) (*models.Service, error)
	SlotsForWeekday(ctx context.Context, serviceID string, dayOfWeek int) ([]models.TimeSlot, error)
	GetSlot(ctx context.Context, serviceID, slotID string) (*models.TimeSlot, error)
}

// Notifier hands committed outbox events to the webhook dispatcher. Delivery
// is best effort here; the outbox sweeper picks up anything missed.
type Notifier interface {
	Notify(ctx context.Context, eventID string)
}

// BookingStore is the persistence surface of the pipeline; implemented by
// the mongo booking repository.
type BookingStore interface {
	AdmitBooking(ctx context.Context, booking *models.Booking, maxBookings int, event *models.WebhookEvent) error
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	ListByService(ctx context.Context, serviceID string, skip, limit int64) ([]models.Booking, int64, error)
	Update(ctx context.Context, booking *models.Booking, releaseSeat bool, event *models.WebhookEvent) error
	MoveDate(ctx context.Context, booking *models.Booking, oldDate string, maxBookings int, event *models.WebhookEvent) error
	Delete(ctx context.Context, booking *models.Booking, releaseSeat bool, event *models.WebhookEvent) error
}

// CustomerStore resolves and mutates customer records.
type CustomerStore interface {
	UpsertByContact(ctx context.Context, serviceID string, info models.CustomerInfo) (*models.Customer, error)
	GetByID(ctx context.Context, customerID string) (*models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) error
}

// DefaultBookingService composes the catalog, the stores, and the webhook
// notifier into the admission pipeline.
type DefaultBookingService struct {
	Catalog   SlotCatalog
	Bookings  BookingStore
	Customers CustomerStore
	Notifier  Notifier
}
