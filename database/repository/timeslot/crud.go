// File: database/repository/timeslot/crud.go
package timeslotRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"reservekit/models"
)

func (r *mongoTimeSlotRepo) GetByID(ctx context.Context, slotID string) (*models.TimeSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var slot models.TimeSlot
	if err := r.coll.FindOne(ctx, bson.M{"id": slotID}).Decode(&slot); err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *mongoTimeSlotRepo) ListByService(ctx context.Context, serviceID string, skip, limit int64) ([]models.TimeSlot, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"service_id": serviceID}
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count time slots: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "day_of_week", Value: 1}, {Key: "start_time", Value: 1}}).
		SetSkip(skip)
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list time slots: %w", err)
	}
	defer cursor.Close(ctx)

	slots := []models.TimeSlot{}
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, 0, err
	}
	return slots, total, nil
}

func (r *mongoTimeSlotRepo) GetByServiceAndDay(ctx context.Context, serviceID string, dayOfWeek int) ([]models.TimeSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"service_id": serviceID, "day_of_week": dayOfWeek})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch time slots for day: %w", err)
	}
	defer cursor.Close(ctx)

	var slots []models.TimeSlot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *mongoTimeSlotRepo) DeleteByID(ctx context.Context, serviceID, slotID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": slotID, "service_id": serviceID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	_, err = r.occColl.DeleteMany(ctx, bson.M{"time_slot_id": slotID})
	if err != nil {
		return fmt.Errorf("failed to delete occurrences for slot %s: %w", slotID, err)
	}
	return nil
}

// DeleteByDayOfWeek removes every slot of the service on the given weekday.
// Deleting with no matches is not an error.
func (r *mongoTimeSlotRepo) DeleteByDayOfWeek(ctx context.Context, serviceID string, dayOfWeek int) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"service_id": serviceID, "day_of_week": dayOfWeek})
	if err != nil {
		return 0, fmt.Errorf("failed to fetch slots for day delete: %w", err)
	}
	var slots []models.TimeSlot
	if err := cursor.All(ctx, &slots); err != nil {
		return 0, err
	}
	if len(slots) == 0 {
		return 0, nil
	}

	slotIDs := make([]string, len(slots))
	for i, slot := range slots {
		slotIDs[i] = slot.ID
	}
	res, err := r.coll.DeleteMany(ctx, bson.M{"id": bson.M{"$in": slotIDs}})
	if err != nil {
		return 0, fmt.Errorf("failed to delete slots by day: %w", err)
	}
	if _, err := r.occColl.DeleteMany(ctx, bson.M{"time_slot_id": bson.M{"$in": slotIDs}}); err != nil {
		return 0, fmt.Errorf("failed to delete occurrences: %w", err)
	}
	return res.DeletedCount, nil
}
