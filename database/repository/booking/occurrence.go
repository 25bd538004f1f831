// File: database/repository/booking/occurrence.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"reservekit/models"
	"reservekit/utils"

	"go.uber.org/zap"
)

// reserveSeat increments the occurrence counter only while booked < max. The
// first booking of an occurrence upserts the counter document; a losing
// upsert race surfaces as a duplicate-key error and is retried once against
// the now-existing document.
func (r *mongoBookingRepo) reserveSeat(ctx context.Context, timeSlotID, date string, maxBookings int) error {
	filter := bson.M{
		"time_slot_id": timeSlotID,
		"date":         date,
		"booked":       bson.M{"$lt": maxBookings},
	}
	update := bson.M{
		"$inc":         bson.M{"booked": 1},
		"$setOnInsert": bson.M{"max_bookings": maxBookings},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var occ models.Occurrence
	for attempt := 0; attempt < 2; attempt++ {
		err := r.occColl.FindOneAndUpdate(ctx, filter, update, opts).Decode(&occ)
		if err == nil {
			return nil
		}
		if mongo.IsDuplicateKeyError(err) {
			// The counter document exists but did not match booked < max,
			// or we lost the first-booking upsert race. Retrying resolves
			// the race; a full occurrence fails again and falls through.
			continue
		}
		return fmt.Errorf("failed to reserve seat: %w", err)
	}
	return ErrSlotFull
}

// releaseSeat decrements the occurrence counter, flooring at zero. A release
// with nothing to release is an invariant violation and is logged, never
// allowed to push the counter negative.
func (r *mongoBookingRepo) releaseSeat(ctx context.Context, timeSlotID, date string) error {
	filter := bson.M{
		"time_slot_id": timeSlotID,
		"date":         date,
		"booked":       bson.M{"$gt": 0},
	}
	res, err := r.occColl.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"booked": -1}})
	if err != nil {
		return fmt.Errorf("failed to release seat: %w", err)
	}
	if res.ModifiedCount == 0 {
		utils.GetLogger().Warn("seat release found no occurrence with booked > 0",
			zap.String("time_slot_id", timeSlotID),
			zap.String("date", date),
		)
	}
	return nil
}

// CountActive returns the number of non-cancelled bookings for an occurrence.
func (r *mongoBookingRepo) CountActive(ctx context.Context, timeSlotID, date string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.coll.CountDocuments(ctx, bson.M{
		"time_slot_id": timeSlotID,
		"date":         date,
		"status":       bson.M{"$ne": models.BookingStatusCancelled},
	})
}

// RebuildOccurrence recomputes the counter from the bookings collection. The
// counter is derived state; this is the reconciliation path after a defect
// or manual intervention.
func (r *mongoBookingRepo) RebuildOccurrence(ctx context.Context, timeSlotID, date string, maxBookings int) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	active, err := r.CountActive(ctx, timeSlotID, date)
	if err != nil {
		return fmt.Errorf("failed to count active bookings: %w", err)
	}

	filter := bson.M{"time_slot_id": timeSlotID, "date": date}
	update := bson.M{"$set": bson.M{"booked": active, "max_bookings": maxBookings}}
	_, err = r.occColl.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to rebuild occurrence: %w", err)
	}
	return nil
}
