// File: database/repository/provider/crud.go
package providerRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"reservekit/models"
)

func (r *mongoProviderRepo) Create(ctx context.Context, provider *models.Provider) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if provider.ID == "" {
		provider.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	provider.CreatedAt = now
	provider.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, provider); err != nil {
		return fmt.Errorf("failed to insert provider: %w", err)
	}
	return nil
}

func (r *mongoProviderRepo) GetByID(ctx context.Context, id string) (*models.Provider, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *mongoProviderRepo) GetByEmail(ctx context.Context, email string) (*models.Provider, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *mongoProviderRepo) GetByAPIKeyHash(ctx context.Context, keyHash string) (*models.Provider, error) {
	return r.findOne(ctx, bson.M{"api_key_hash": keyHash})
}

func (r *mongoProviderRepo) findOne(ctx context.Context, filter bson.M) (*models.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var provider models.Provider
	if err := r.coll.FindOne(ctx, filter).Decode(&provider); err != nil {
		return nil, err
	}
	return &provider, nil
}

func (r *mongoProviderRepo) Update(ctx context.Context, provider *models.Provider) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	provider.UpdatedAt = time.Now().UTC()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": provider.ID}, provider)
	if err != nil {
		return fmt.Errorf("failed to update provider: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
