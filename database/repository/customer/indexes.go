// File: database/repository/customer/indexes.go
package customerRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the customers collection.
func (r *mongoCustomerRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys: bson.D{{Key: "service_id", Value: 1}, {Key: "email", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("unique_service_email").
				SetPartialFilterExpression(bson.M{"email": bson.M{"$gt": ""}}),
		},
		{
			Keys:    bson.D{{Key: "service_id", Value: 1}, {Key: "phone", Value: 1}},
			Options: options.Index().SetName("service_phone_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create customer indexes: %w", err)
	}
	return nil
}
