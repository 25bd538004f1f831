// File: database/repository/timeslot/indexes.go
package timeslotRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the timeslots and
// occurrences collections.
func (r *mongoTimeSlotRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Primary lookup for occurrence resolution.
		{
			Keys:    bson.D{{Key: "service_id", Value: 1}, {Key: "day_of_week", Value: 1}},
			Options: options.Index().SetName("service_day_idx"),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create timeslot indexes: %w", err)
	}

	// One counter document per occurrence; the unique index is what turns a
	// concurrent first-booking upsert race into a catchable duplicate-key.
	occIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "time_slot_id", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_occurrence"),
	}
	if _, err := r.occColl.Indexes().CreateOne(ctx, occIndex); err != nil {
		return fmt.Errorf("failed to create occurrence index: %w", err)
	}
	return nil
}
