// File: services/booking/state.go
package booking

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"

	bookingRepo "reservekit/database/repository/booking"
	"reservekit/models"
	"reservekit/utils"
)

// canTransition encodes the booking lifecycle: pending may confirm or
// cancel, confirmed may cancel, cancelled is terminal.
func canTransition(from, to string) bool {
	switch from {
	case models.BookingStatusPending:
		return to == models.BookingStatusConfirmed || to == models.BookingStatusCancelled
	case models.BookingStatusConfirmed:
		return to == models.BookingStatusCancelled
	default:
		return false
	}
}

func isValidStatus(status string) bool {
	switch status {
	case models.BookingStatusPending, models.BookingStatusConfirmed, models.BookingStatusCancelled:
		return true
	}
	return false
}

// UpdateBooking applies a PATCH: status changes route through the state
// machine, date changes move the booking to another occurrence, message
// edits are plain field updates. Cancelling releases the reserved seat.
func (s *DefaultBookingService) UpdateBooking(ctx context.Context, provider *models.Provider, bookingID string, req models.UpdateBookingRequest) (*models.Booking, error) {
	b, service, err := s.loadScoped(ctx, provider, bookingID)
	if err != nil {
		return nil, err
	}

	if req.Message != nil {
		b.Message = *req.Message
	}

	if req.Date != nil && *req.Date != b.Date {
		if req.Status != nil {
			return nil, utils.NewValidationError(utils.CodeInvalidRequest,
				"date and status cannot be changed in the same request")
		}
		return s.moveBookingDate(ctx, provider, service, b, *req.Date)
	}

	eventType := models.EventBookingUpdated
	releaseSeat := false

	if req.Status != nil && *req.Status != b.Status {
		to := *req.Status
		if !isValidStatus(to) {
			return nil, utils.NewValidationError(utils.CodeInvalidFieldFormat,
				fmt.Sprintf("unknown booking status %q", to))
		}
		if !canTransition(b.Status, to) {
			return nil, utils.NewInvalidTransitionError(b.Status, to)
		}
		if to == models.BookingStatusCancelled {
			if req.CancelReason == nil || *req.CancelReason == "" {
				return nil, utils.NewValidationError(utils.CodeMissingRequiredField,
					"cancel_reason is required when cancelling a booking")
			}
			b.CancelReason = *req.CancelReason
			releaseSeat = true
			eventType = models.EventBookingCancelled
		}
		b.Status = to
	} else if req.Message == nil {
		// Nothing to change.
		return b, nil
	}

	event := s.newEvent(provider.ID, service.ID, eventType, b)
	if err := s.Bookings.Update(ctx, b, releaseSeat, event); err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrVersionConflict):
			return nil, newBookingConflictError()
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, utils.NewNotFoundError(utils.CodeBookingNotFound,
				fmt.Sprintf("booking %q not found", bookingID))
		}
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	s.notify(ctx, event.ID)
	return b, nil
}

// moveBookingDate shifts a booking onto a different occurrence of the same
// time slot: the new date must fall on the slot's weekday, have a free seat,
// and not collide with another live booking of the same customer.
func (s *DefaultBookingService) moveBookingDate(ctx context.Context, provider *models.Provider, service *models.Service, b *models.Booking, newDate string) (*models.Booking, error) {
	if b.Status == models.BookingStatusCancelled {
		return nil, utils.NewInvalidTransitionError(b.Status, b.Status)
	}

	date, err := ParseDate(newDate)
	if err != nil {
		return nil, utils.NewValidationError(utils.CodeInvalidFieldFormat, err.Error())
	}
	_, slot, err := s.resolveSlot(ctx, provider.ID, service.ID, b.TimeSlotID, date)
	if err != nil {
		return nil, err
	}

	oldDate := b.Date
	b.Date = newDate
	event := s.newEvent(provider.ID, service.ID, models.EventBookingUpdated, b)

	if err := s.Bookings.MoveDate(ctx, b, oldDate, slot.MaxBookings, event); err != nil {
		b.Date = oldDate
		switch {
		case errors.Is(err, bookingRepo.ErrDuplicateBooking):
			return nil, utils.NewDuplicateBookingError()
		case errors.Is(err, bookingRepo.ErrSlotFull):
			return nil, utils.NewTimeSlotFullError()
		case errors.Is(err, bookingRepo.ErrVersionConflict):
			return nil, newBookingConflictError()
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, utils.NewNotFoundError(utils.CodeBookingNotFound,
				fmt.Sprintf("booking %q not found", b.ID))
		}
		return nil, fmt.Errorf("failed to move booking date: %w", err)
	}

	s.notify(ctx, event.ID)
	return b, nil
}

func newBookingConflictError() *utils.APIError {
	return &utils.APIError{
		Status:  http.StatusConflict,
		Code:    utils.CodeVersionConflict,
		Message: "booking was modified concurrently, re-read and retry",
	}
}

// DeleteBooking hard-deletes the row. The seat is released unless the
// booking was already cancelled — cancellation released it, and releasing
// twice would corrupt the counter.
func (s *DefaultBookingService) DeleteBooking(ctx context.Context, provider *models.Provider, bookingID string) error {
	b, service, err := s.loadScoped(ctx, provider, bookingID)
	if err != nil {
		return err
	}

	releaseSeat := b.Status != models.BookingStatusCancelled
	event := s.newEvent(provider.ID, service.ID, models.EventBookingDeleted, b)

	if err := s.Bookings.Delete(ctx, b, releaseSeat, event); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.NewNotFoundError(utils.CodeBookingNotFound,
				fmt.Sprintf("booking %q not found", bookingID))
		}
		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.notify(ctx, event.ID)
	return nil
}
