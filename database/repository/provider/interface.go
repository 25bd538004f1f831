// File: database/repository/provider/interface.go
package providerRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"reservekit/database"
	"reservekit/models"
)

type ProviderRepository interface {
	Create(ctx context.Context, provider *models.Provider) error
	GetByID(ctx context.Context, id string) (*models.Provider, error)
	GetByEmail(ctx context.Context, email string) (*models.Provider, error)
	GetByAPIKeyHash(ctx context.Context, keyHash string) (*models.Provider, error)
	Update(ctx context.Context, provider *models.Provider) error
	EnsureIndexes() error
}

type mongoProviderRepo struct {
	coll *mongo.Collection
}

// NewMongoProviderRepo constructs a new MongoDB ProviderRepository.
func NewMongoProviderRepo() ProviderRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &mongoProviderRepo{
		coll: db.Collection("providers"),
	}
}
