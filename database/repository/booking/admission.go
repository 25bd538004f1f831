// File: database/repository/booking/admission.go
package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"reservekit/models"
)

// AdmitBooking is the atomic unit of the admission pipeline. Within a single
// transaction it verifies no live booking exists for the customer on this
// occurrence, reserves one seat, inserts the booking in pending state, and
// writes the booking.created outbox event. Any failure aborts with no state
// change; the partial unique index on (customer_id, time_slot_id, date)
// backstops the duplicate check under concurrency.
func (r *mongoBookingRepo) AdmitBooking(ctx context.Context, booking *models.Booking, maxBookings int, event *models.WebhookEvent) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		count, err := r.coll.CountDocuments(sc, bson.M{
			"customer_id":  booking.CustomerID,
			"time_slot_id": booking.TimeSlotID,
			"date":         booking.Date,
			"status":       bson.M{"$ne": models.BookingStatusCancelled},
		})
		if err != nil {
			return fmt.Errorf("duplicate check failed: %w", err)
		}
		if count > 0 {
			return ErrDuplicateBooking
		}

		if err := r.reserveSeat(sc, booking.TimeSlotID, booking.Date, maxBookings); err != nil {
			return err
		}

		if _, err := r.coll.InsertOne(sc, booking); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return ErrDuplicateBooking
			}
			return fmt.Errorf("insert booking failed: %w", err)
		}

		if _, err := r.outboxColl.InsertOne(sc, event); err != nil {
			return fmt.Errorf("insert outbox event failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return err
	}
	return nil
}

// IsTransient reports whether an admission failure came from a transient
// transaction conflict worth retrying.
func IsTransient(err error) bool {
	if mongo.IsTimeout(err) {
		return true
	}
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.HasErrorLabel("TransientTransactionError")
	}
	return false
}
