// File: database/repository/outbox/interface.go
package outboxRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"reservekit/database"
	"reservekit/models"
)

type OutboxRepository interface {
	GetByID(ctx context.Context, eventID string) (*models.WebhookEvent, error)
	ListPending(ctx context.Context, limit int64) ([]models.WebhookEvent, error)
	MarkDelivered(ctx context.Context, eventID string) error
	MarkFailed(ctx context.Context, eventID string) error
	IncrementAttempts(ctx context.Context, eventID string) error
	EnsureIndexes() error
}

type mongoOutboxRepo struct {
	coll *mongo.Collection
}

// NewMongoOutboxRepo constructs a new MongoDB OutboxRepository.
func NewMongoOutboxRepo() OutboxRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &mongoOutboxRepo{
		coll: db.Collection("webhook_events"),
	}
}
