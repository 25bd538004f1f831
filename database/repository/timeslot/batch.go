// File: database/repository/timeslot/batch.go
package timeslotRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"reservekit/models"
)

// BatchUpsert applies the whole batch in one transaction: inserts get new
// documents, updates are version-checked replacements. Any miss (unknown id
// or stale version) aborts the entire batch.
func (r *mongoTimeSlotRepo) BatchUpsert(ctx context.Context, serviceID string, inserts, updates []models.TimeSlot) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	now := time.Now().UTC()

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		if len(inserts) > 0 {
			docs := make([]interface{}, len(inserts))
			for i, slot := range inserts {
				slot.ServiceID = serviceID
				slot.Version = 1
				slot.CreatedAt = now
				slot.UpdatedAt = now
				docs[i] = slot
			}
			if _, err := r.coll.InsertMany(sc, docs); err != nil {
				return fmt.Errorf("insert slots failed: %w", err)
			}
		}

		for _, slot := range updates {
			filter := bson.M{
				"id":         slot.ID,
				"service_id": serviceID,
				"version":    slot.Version,
			}
			update := bson.M{
				"$set": bson.M{
					"day_of_week":  slot.DayOfWeek,
					"start_time":   slot.StartTime,
					"end_time":     slot.EndTime,
					"max_bookings": slot.MaxBookings,
					"updated_at":   now,
				},
				"$inc": bson.M{"version": 1},
			}
			res, err := r.coll.UpdateOne(sc, filter, update)
			if err != nil {
				return fmt.Errorf("update slot %s failed: %w", slot.ID, err)
			}
			if res.MatchedCount == 0 {
				count, err := r.coll.CountDocuments(sc, bson.M{"id": slot.ID, "service_id": serviceID})
				if err != nil {
					return fmt.Errorf("recheck slot %s failed: %w", slot.ID, err)
				}
				if count > 0 {
					return ErrVersionConflict
				}
				return mongo.ErrNoDocuments
			}
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
