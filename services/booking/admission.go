// File: services/booking/admission.go
package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	bookingRepo "reservekit/database/repository/booking"
	"reservekit/models"
	"reservekit/utils"
)

// admissionRetries bounds internal retries of the atomic unit on transient
// transaction conflicts. Business rejections are never retried.
const admissionRetries = 3

// CreateBooking is the single entry point for booking creation. It validates
// the date, resolves the time slot for that date's weekday in the service
// timezone, resolves the customer, and runs the atomic admission unit.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, provider *models.Provider, serviceID string, req models.CreateBookingRequest) (*models.Booking, error) {
	date, err := ParseDate(req.Date)
	if err != nil {
		return nil, utils.NewValidationError(utils.CodeInvalidFieldFormat, err.Error())
	}

	service, slot, err := s.resolveSlot(ctx, provider.ID, serviceID, req.TimeSlotID, date)
	if err != nil {
		return nil, err
	}

	if err := validateCustomerInfo(req.Customer); err != nil {
		return nil, err
	}
	customer, err := s.Customers.UpsertByContact(ctx, service.ID, req.Customer)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve customer: %w", err)
	}

	now := time.Now().UTC()
	newBooking := &models.Booking{
		ID:         uuid.New().String(),
		ServiceID:  service.ID,
		TimeSlotID: slot.ID,
		Date:       req.Date,
		Status:     models.BookingStatusPending,
		Message:    req.Message,
		CustomerID: customer.ID,
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	event := s.newEvent(provider.ID, service.ID, models.EventBookingCreated, newBooking)

	if err := s.admitWithRetry(ctx, newBooking, slot.MaxBookings, event); err != nil {
		return nil, err
	}

	s.notify(ctx, event.ID)
	return newBooking, nil
}

// admitWithRetry runs the atomic unit, retrying only transient transaction
// conflicts with linear backoff before giving up.
func (s *DefaultBookingService) admitWithRetry(ctx context.Context, b *models.Booking, maxBookings int, event *models.WebhookEvent) error {
	var err error
	for attempt := 1; attempt <= admissionRetries; attempt++ {
		err = s.Bookings.AdmitBooking(ctx, b, maxBookings, event)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, bookingRepo.ErrDuplicateBooking):
			return utils.NewDuplicateBookingError()
		case errors.Is(err, bookingRepo.ErrSlotFull):
			return utils.NewTimeSlotFullError()
		case bookingRepo.IsTransient(err) && attempt < admissionRetries:
			utils.GetLogger().Warn("transient admission conflict, retrying",
				zap.String("booking_id", b.ID),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			time.Sleep(time.Duration(attempt) * 50 * time.Millisecond)
		default:
			return fmt.Errorf("booking admission failed: %w", err)
		}
	}
	return fmt.Errorf("booking admission failed: %w", err)
}

// resolveSlot confirms the service belongs to the provider and that the slot
// is active on the requested date's weekday under the service timezone. A
// slot that exists but sits on another weekday is reported the same way as a
// missing one.
func (s *DefaultBookingService) resolveSlot(ctx context.Context, providerID, serviceID, slotID string, date time.Time) (*models.Service, *models.TimeSlot, error) {
	service, err := s.Catalog.GetService(ctx, providerID, serviceID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil, utils.NewNotFoundError(utils.CodeServiceNotFound,
				fmt.Sprintf("service %q not found", serviceID))
		}
		return nil, nil, fmt.Errorf("failed to load service: %w", err)
	}

	weekday, err := WeekdayOf(date, service.Timezone)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve weekday: %w", err)
	}

	slots, err := s.Catalog.SlotsForWeekday(ctx, service.ID, weekday)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load time slots: %w", err)
	}
	for i := range slots {
		if slots[i].ID == slotID {
			return service, &slots[i], nil
		}
	}
	return nil, nil, utils.NewNotFoundError(utils.CodeTimeSlotNotFound,
		fmt.Sprintf("time slot %q not found on %s for service %q", slotID, date.Format(DateLayout), serviceID))
}

func (s *DefaultBookingService) newEvent(providerID, serviceID, eventType string, b *models.Booking) *models.WebhookEvent {
	return &models.WebhookEvent{
		ID:         uuid.New().String(),
		ProviderID: providerID,
		ServiceID:  serviceID,
		Type:       eventType,
		Payload:    *b,
		Status:     models.EventStatusPending,
		CreatedAt:  time.Now().UTC(),
	}
}

func (s *DefaultBookingService) notify(ctx context.Context, eventID string) {
	if s.Notifier != nil {
		s.Notifier.Notify(ctx, eventID)
	}
}
