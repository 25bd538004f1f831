// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"reservekit/database"
	"reservekit/models"
)

var (
	// ErrDuplicateBooking means a non-cancelled booking already exists for
	// the same (customer, time slot, date).
	ErrDuplicateBooking = errors.New("duplicate booking for customer and occurrence")
	// ErrSlotFull means the occurrence has no remaining capacity.
	ErrSlotFull = errors.New("time slot occurrence is at capacity")
	// ErrVersionConflict is returned when an optimistic-concurrency check fails.
	ErrVersionConflict = errors.New("booking version conflict")
)

type BookingRepository interface {
	// AdmitBooking runs the atomic admission unit: duplicate check, seat
	// reservation, booking insert, and outbox event insert — all or nothing.
	AdmitBooking(ctx context.Context, booking *models.Booking, maxBookings int, event *models.WebhookEvent) error
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	ListByService(ctx context.Context, serviceID string, skip, limit int64) ([]models.Booking, int64, error)
	// Update persists mutated status/cancel_reason/message fields, releasing
	// the occurrence seat in the same transaction when requested.
	Update(ctx context.Context, booking *models.Booking, releaseSeat bool, event *models.WebhookEvent) error
	// MoveDate shifts a booking to another occurrence: reserves a seat on the
	// new date and releases the old one atomically.
	MoveDate(ctx context.Context, booking *models.Booking, oldDate string, maxBookings int, event *models.WebhookEvent) error
	Delete(ctx context.Context, booking *models.Booking, releaseSeat bool, event *models.WebhookEvent) error
	CountActive(ctx context.Context, timeSlotID, date string) (int64, error)
	RebuildOccurrence(ctx context.Context, timeSlotID, date string, maxBookings int) error
	EnsureIndexes() error
}

type mongoBookingRepo struct {
	coll       *mongo.Collection
	occColl    *mongo.Collection
	outboxColl *mongo.Collection
}

// NewMongoBookingRepo constructs a new MongoDB BookingRepository.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &mongoBookingRepo{
		coll:       db.Collection("bookings"),
		occColl:    db.Collection("occurrences"),
		outboxColl: db.Collection("webhook_events"),
	}
}
