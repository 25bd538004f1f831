// File: database/repository/customer/interface.go
package customerRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"reservekit/database"
	"reservekit/models"
)

type CustomerRepository interface {
	// UpsertByContact resolves the customer for a booking: matched by
	// (service_id, email), else (service_id, phone), else inserted fresh.
	UpsertByContact(ctx context.Context, serviceID string, info models.CustomerInfo) (*models.Customer, error)
	GetByID(ctx context.Context, customerID string) (*models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) error
	EnsureIndexes() error
}

type mongoCustomerRepo struct {
	coll *mongo.Collection
}

// NewMongoCustomerRepo constructs a new MongoDB CustomerRepository.
func NewMongoCustomerRepo() CustomerRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &mongoCustomerRepo{
		coll: db.Collection("customers"),
	}
}
