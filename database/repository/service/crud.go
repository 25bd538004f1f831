// File: database/repository/service/crud.go
package serviceRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"reservekit/models"
)

// Create inserts a service together with its initial time slots in one
// transaction, so a failed slot insert never leaves a half-created service.
func (r *mongoServiceRepo) Create(ctx context.Context, service *models.Service, slots []models.TimeSlot) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	now := time.Now().UTC()
	if service.ID == "" {
		service.ID = uuid.New().String()
	}
	service.Version = 1
	service.CreatedAt = now
	service.UpdatedAt = now

	for i := range slots {
		if slots[i].ID == "" {
			slots[i].ID = uuid.New().String()
		}
		slots[i].ServiceID = service.ID
		slots[i].Version = 1
		slots[i].CreatedAt = now
		slots[i].UpdatedAt = now
	}

	if len(slots) == 0 {
		if _, err := r.serviceColl.InsertOne(ctx, service); err != nil {
			return fmt.Errorf("failed to insert service: %w", err)
		}
		return nil
	}

	client := r.serviceColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		if _, err := r.serviceColl.InsertOne(sc, service); err != nil {
			return fmt.Errorf("insert service failed: %w", err)
		}
		docs := make([]interface{}, len(slots))
		for i, slot := range slots {
			docs[i] = slot
		}
		if _, err := r.timeslotColl.InsertMany(sc, docs); err != nil {
			return fmt.Errorf("insert initial time slots failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return fmt.Errorf("service create transaction failed: %w", err)
	}
	return nil
}

func (r *mongoServiceRepo) GetByID(ctx context.Context, providerID, id string) (*models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var service models.Service
	filter := bson.M{"id": id, "provider_id": providerID}
	if err := r.serviceColl.FindOne(ctx, filter).Decode(&service); err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *mongoServiceRepo) List(ctx context.Context, providerID string, skip, limit int64) ([]models.Service, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"provider_id": providerID}
	total, err := r.serviceColl.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count services: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetSkip(skip)
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := r.serviceColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list services: %w", err)
	}
	defer cursor.Close(ctx)

	services := []models.Service{}
	if err := cursor.All(ctx, &services); err != nil {
		return nil, 0, err
	}
	return services, total, nil
}

// Update applies the mutated service document with an optimistic version
// check; Version on the passed service is the version that was read.
func (r *mongoServiceRepo) Update(ctx context.Context, service *models.Service) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": service.ID, "provider_id": service.ProviderID, "version": service.Version}
	update := bson.M{
		"$set": bson.M{
			"name":        service.Name,
			"description": service.Description,
			"timezone":    service.Timezone,
			"updated_at":  time.Now().UTC(),
		},
		"$inc": bson.M{"version": 1},
	}
	res, err := r.serviceColl.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update service: %w", err)
	}
	if res.MatchedCount == 0 {
		// Distinguish a stale version from a missing document.
		count, err := r.serviceColl.CountDocuments(ctx, bson.M{"id": service.ID, "provider_id": service.ProviderID})
		if err != nil {
			return fmt.Errorf("failed to recheck service: %w", err)
		}
		if count > 0 {
			return ErrVersionConflict
		}
		return mongo.ErrNoDocuments
	}
	service.Version++
	return nil
}

// CascadeDelete removes the service and everything underneath it: time
// slots, occurrence counters, bookings, and customers.
func (r *mongoServiceRepo) CascadeDelete(ctx context.Context, providerID, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	client := r.serviceColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		res, err := r.serviceColl.DeleteOne(sc, bson.M{"id": id, "provider_id": providerID})
		if err != nil {
			return fmt.Errorf("delete service failed: %w", err)
		}
		if res.DeletedCount == 0 {
			return mongo.ErrNoDocuments
		}

		cursor, err := r.timeslotColl.Find(sc, bson.M{"service_id": id})
		if err != nil {
			return fmt.Errorf("list time slots failed: %w", err)
		}
		var slots []models.TimeSlot
		if err := cursor.All(sc, &slots); err != nil {
			return err
		}
		slotIDs := make([]string, len(slots))
		for i, slot := range slots {
			slotIDs[i] = slot.ID
		}

		if _, err := r.timeslotColl.DeleteMany(sc, bson.M{"service_id": id}); err != nil {
			return fmt.Errorf("delete time slots failed: %w", err)
		}
		if len(slotIDs) > 0 {
			if _, err := r.occColl.DeleteMany(sc, bson.M{"time_slot_id": bson.M{"$in": slotIDs}}); err != nil {
				return fmt.Errorf("delete occurrences failed: %w", err)
			}
		}
		if _, err := r.bookingColl.DeleteMany(sc, bson.M{"service_id": id}); err != nil {
			return fmt.Errorf("delete bookings failed: %w", err)
		}
		if _, err := r.customerColl.DeleteMany(sc, bson.M{"service_id": id}); err != nil {
			return fmt.Errorf("delete customers failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return err
	}
	return nil
}
