// File: database/repository/booking/indexes.go
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

// EnsureIndexes creates the necessary indexes on the bookings collection.
func (r *mongoBookingRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "service_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("service_created_idx"),
		},
		{
			Keys:    bson.D{{Key: "time_slot_id", Value: 1}, {Key: "date", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("occurrence_status_idx"),
		},
		// Backstop for the duplicate guard: at most one live (non-cancelled)
		// booking per customer and occurrence.
		{
			Keys: bson.D{{Key: "customer_id", Value: 1}, {Key: "time_slot_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("unique_live_booking").
				SetPartialFilterExpression(bson.M{
					"status": bson.M{"$in": []string{models.BookingStatusPending, models.BookingStatusConfirmed}},
				}),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
