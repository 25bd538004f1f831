// File: database/repository/outbox/crud.go
package outboxRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"reservekit/models"
)

func (r *mongoOutboxRepo) GetByID(ctx context.Context, eventID string) (*models.WebhookEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var event models.WebhookEvent
	if err := r.coll.FindOne(ctx, bson.M{"id": eventID}).Decode(&event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *mongoOutboxRepo) ListPending(ctx context.Context, limit int64) ([]models.WebhookEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetLimit(limit)
	cursor, err := r.coll.Find(ctx, bson.M{"status": models.EventStatusPending}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []models.WebhookEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *mongoOutboxRepo) MarkDelivered(ctx context.Context, eventID string) error {
	now := time.Now().UTC()
	return r.setStatus(ctx, eventID, bson.M{
		"status":       models.EventStatusDelivered,
		"delivered_at": now,
	})
}

func (r *mongoOutboxRepo) MarkFailed(ctx context.Context, eventID string) error {
	return r.setStatus(ctx, eventID, bson.M{"status": models.EventStatusFailed})
}

func (r *mongoOutboxRepo) IncrementAttempts(ctx context.Context, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.UpdateOne(ctx, bson.M{"id": eventID}, bson.M{"$inc": bson.M{"attempts": 1}})
	if err != nil {
		return fmt.Errorf("failed to increment attempts: %w", err)
	}
	return nil
}

func (r *mongoOutboxRepo) setStatus(ctx context.Context, eventID string, fields bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": eventID}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update event status: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
