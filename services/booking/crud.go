// File: services/booking/crud.go
package booking

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"reservekit/models"
	"reservekit/utils"
)

// loadScoped fetches a booking and verifies, via its service, that it
// belongs to the calling provider. Out-of-scope bookings read as not found.
func (s *DefaultBookingService) loadScoped(ctx context.Context, provider *models.Provider, bookingID string) (*models.Booking, *models.Service, error) {
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil, utils.NewNotFoundError(utils.CodeBookingNotFound,
				fmt.Sprintf("booking %q not found", bookingID))
		}
		return nil, nil, fmt.Errorf("failed to load booking: %w", err)
	}

	service, err := s.Catalog.GetService(ctx, provider.ID, b.ServiceID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil, utils.NewNotFoundError(utils.CodeBookingNotFound,
				fmt.Sprintf("booking %q not found", bookingID))
		}
		return nil, nil, fmt.Errorf("failed to load booking service: %w", err)
	}
	return b, service, nil
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, provider *models.Provider, bookingID string) (*models.Booking, error) {
	b, _, err := s.loadScoped(ctx, provider, bookingID)
	return b, err
}

func (s *DefaultBookingService) ListBookings(ctx context.Context, provider *models.Provider, serviceID string, page utils.PageRequest) ([]models.Booking, utils.Pagination, error) {
	service, err := s.Catalog.GetService(ctx, provider.ID, serviceID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.Pagination{}, utils.NewNotFoundError(utils.CodeServiceNotFound,
				fmt.Sprintf("service %q not found", serviceID))
		}
		return nil, utils.Pagination{}, fmt.Errorf("failed to load service: %w", err)
	}

	limit := int64(page.PageSize)
	if page.NoPagination {
		limit = 0
	}
	bookings, total, err := s.Bookings.ListByService(ctx, service.ID, page.Offset(), limit)
	if err != nil {
		return nil, utils.Pagination{}, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, utils.NewPagination(page, total), nil
}

func (s *DefaultBookingService) GetBookingCustomer(ctx context.Context, provider *models.Provider, bookingID string) (*models.Customer, error) {
	b, _, err := s.loadScoped(ctx, provider, bookingID)
	if err != nil {
		return nil, err
	}
	customer, err := s.Customers.GetByID(ctx, b.CustomerID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NewNotFoundError(utils.CodeCustomerNotFound,
				fmt.Sprintf("no customer on booking %q", bookingID))
		}
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}
	return customer, nil
}

// UpdateBookingCustomer patches the customer's contact details in place. The
// dedup key is not re-evaluated here; the customer keeps its identity.
func (s *DefaultBookingService) UpdateBookingCustomer(ctx context.Context, provider *models.Provider, bookingID string, info models.CustomerInfo) (*models.Customer, error) {
	if err := validateCustomerInfo(info); err != nil {
		return nil, err
	}

	customer, err := s.GetBookingCustomer(ctx, provider, bookingID)
	if err != nil {
		return nil, err
	}

	if info.Name != "" {
		customer.Name = info.Name
	}
	if info.Email != "" {
		customer.Email = info.Email
	}
	if info.Phone != "" {
		customer.Phone = info.Phone
	}
	if err := s.Customers.Update(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	return customer, nil
}
