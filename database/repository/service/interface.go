// File: database/repository/service/interface.go
package serviceRepo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"reservekit/database"
	"reservekit/models"
)

type ServiceRepository interface {
	Create(ctx context.Context, service *models.Service, slots []models.TimeSlot) error
	GetByID(ctx context.Context, providerID, id string) (*models.Service, error)
	List(ctx context.Context, providerID string, skip, limit int64) ([]models.Service, int64, error)
	Update(ctx context.Context, service *models.Service) error
	CascadeDelete(ctx context.Context, providerID, id string) error
	EnsureIndexes() error
}

// ErrVersionConflict is returned when an optimistic-concurrency check fails.
var ErrVersionConflict = errors.New("service version conflict")

type mongoServiceRepo struct {
	serviceColl  *mongo.Collection
	timeslotColl *mongo.Collection
	bookingColl  *mongo.Collection
	occColl      *mongo.Collection
	customerColl *mongo.Collection
}

// NewMongoServiceRepo constructs a new MongoDB ServiceRepository.
func NewMongoServiceRepo() ServiceRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &mongoServiceRepo{
		serviceColl:  db.Collection("services"),
		timeslotColl: db.Collection("timeslots"),
		bookingColl:  db.Collection("bookings"),
		occColl:      db.Collection("occurrences"),
		customerColl: db.Collection("customers"),
	}
}
