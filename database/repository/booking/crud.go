// File: database/repository/booking/crud.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"reservekit/models"
)

func (r *mongoBookingRepo) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": bookingID}).Decode(&booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *mongoBookingRepo) ListByService(ctx context.Context, serviceID string, skip, limit int64) ([]models.Booking, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"service_id": serviceID}
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip)
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// Update persists the booking's mutable fields with a version bump, releasing
// its occurrence seat and writing the outbox event in the same transaction.
func (r *mongoBookingRepo) Update(ctx context.Context, booking *models.Booking, releaseSeat bool, event *models.WebhookEvent) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	return r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		filter := bson.M{"id": booking.ID, "version": booking.Version}
		update := bson.M{
			"$set": bson.M{
				"status":        booking.Status,
				"cancel_reason": booking.CancelReason,
				"message":       booking.Message,
				"updated_at":    time.Now().UTC(),
			},
			"$inc": bson.M{"version": 1},
		}
		res, err := r.coll.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("update booking failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return r.staleOrMissing(sc, booking.ID)
		}
		booking.Version++

		if releaseSeat {
			if err := r.releaseSeat(sc, booking.TimeSlotID, booking.Date); err != nil {
				return err
			}
		}
		if event != nil {
			if _, err := r.outboxColl.InsertOne(sc, event); err != nil {
				return fmt.Errorf("insert outbox event failed: %w", err)
			}
		}
		return nil
	})
}

// MoveDate reserves a seat on the new occurrence before releasing the old
// one, so the capacity invariant holds on both dates throughout.
func (r *mongoBookingRepo) MoveDate(ctx context.Context, booking *models.Booking, oldDate string, maxBookings int, event *models.WebhookEvent) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	return r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		count, err := r.coll.CountDocuments(sc, bson.M{
			"customer_id":  booking.CustomerID,
			"time_slot_id": booking.TimeSlotID,
			"date":         booking.Date,
			"status":       bson.M{"$ne": models.BookingStatusCancelled},
			"id":           bson.M{"$ne": booking.ID},
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
		if err := r.releaseSeat(sc, booking.TimeSlotID, oldDate); err != nil {
			return err
		}

		filter := bson.M{"id": booking.ID, "version": booking.Version}
		update := bson.M{
			"$set": bson.M{
				"date":       booking.Date,
				"message":    booking.Message,
				"updated_at": time.Now().UTC(),
			},
			"$inc": bson.M{"version": 1},
		}
		res, err := r.coll.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("update booking date failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return r.staleOrMissing(sc, booking.ID)
		}
		booking.Version++

		if event != nil {
			if _, err := r.outboxColl.InsertOne(sc, event); err != nil {
				return fmt.Errorf("insert outbox event failed: %w", err)
			}
		}
		return nil
	})
}

// Delete hard-deletes the booking row; the seat is released unless the
// booking had already been cancelled (cancellation released it).
func (r *mongoBookingRepo) Delete(ctx context.Context, booking *models.Booking, releaseSeat bool, event *models.WebhookEvent) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	return r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		res, err := r.coll.DeleteOne(sc, bson.M{"id": booking.ID})
		if err != nil {
			return fmt.Errorf("delete booking failed: %w", err)
		}
		if res.DeletedCount == 0 {
			return mongo.ErrNoDocuments
		}

		if releaseSeat {
			if err := r.releaseSeat(sc, booking.TimeSlotID, booking.Date); err != nil {
				return err
			}
		}
		if event != nil {
			if _, err := r.outboxColl.InsertOne(sc, event); err != nil {
				return fmt.Errorf("insert outbox event failed: %w", err)
			}
		}
		return nil
	})
}

// staleOrMissing distinguishes a stale version from a missing document after
// a version-checked update matched nothing.
func (r *mongoBookingRepo) staleOrMissing(ctx context.Context, bookingID string) error {
	count, err := r.coll.CountDocuments(ctx, bson.M{"id": bookingID})
	if err != nil {
		return fmt.Errorf("failed to recheck booking: %w", err)
	}
	if count > 0 {
		return ErrVersionConflict
	}
	return mongo.ErrNoDocuments
}

func (r *mongoBookingRepo) withTransaction(ctx context.Context, txnFn func(mongo.SessionContext) error) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
}
