// File: database/repository/timeslot/interface.go
package timeslotRepo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"reservekit/database"
	"reservekit/models"
)

// ErrVersionConflict is returned when a batch update targets a slot whose
// version no longer matches.
var ErrVersionConflict = errors.New("time slot version conflict")

type TimeSlotRepository interface {
	GetByID(ctx context.Context, slotID string) (*models.TimeSlot, error)
	ListByService(ctx context.Context, serviceID string, skip, limit int64) ([]models.TimeSlot, int64, error)
	GetByServiceAndDay(ctx context.Context, serviceID string, dayOfWeek int) ([]models.TimeSlot, error)
	BatchUpsert(ctx context.Context, serviceID string, inserts, updates []models.TimeSlot) error
	DeleteByID(ctx context.Context, serviceID, slotID string) error
	DeleteByDayOfWeek(ctx context.Context, serviceID string, dayOfWeek int) (int64, error)
	EnsureIndexes() error
}

type mongoTimeSlotRepo struct {
	coll    *mongo.Collection
	occColl *mongo.Collection
}

// NewMongoTimeSlotRepo constructs a new MongoDB TimeSlotRepository.
func NewMongoTimeSlotRepo() TimeSlotRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &mongoTimeSlotRepo{
		coll:    db.Collection("timeslots"),
		occColl: db.Collection("occurrences"),
	}
}
