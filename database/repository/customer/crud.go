// File: database/repository/customer/crud.go
package customerRepo

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

func (r *mongoCustomerRepo) UpsertByContact(ctx context.Context, serviceID string, info models.CustomerInfo) (*models.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()

	var filter bson.M
	switch {
	case info.Email != "":
		filter = bson.M{"service_id": serviceID, "email": info.Email}
	case info.Phone != "":
		filter = bson.M{"service_id": serviceID, "phone": info.Phone}
	default:
		// No contact key to deduplicate on; every such booking gets its own
		// customer row.
		customer := &models.Customer{
			ID:        uuid.New().String(),
			ServiceID: serviceID,
			Name:      info.Name,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if _, err := r.coll.InsertOne(ctx, customer); err != nil {
			return nil, fmt.Errorf("failed to insert customer: %w", err)
		}
		return customer, nil
	}

	update := bson.M{
		"$set": bson.M{
			"name":       info.Name,
			"email":      info.Email,
			"phone":      info.Phone,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"id":         uuid.New().String(),
			"service_id": serviceID,
			"created_at": now,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var customer models.Customer
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&customer); err != nil {
		return nil, fmt.Errorf("failed to upsert customer: %w", err)
	}
	return &customer, nil
}

func (r *mongoCustomerRepo) GetByID(ctx context.Context, customerID string) (*models.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var customer models.Customer
	if err := r.coll.FindOne(ctx, bson.M{"id": customerID}).Decode(&customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *mongoCustomerRepo) Update(ctx context.Context, customer *models.Customer) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	customer.UpdatedAt = time.Now().UTC()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": customer.ID}, customer)
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
