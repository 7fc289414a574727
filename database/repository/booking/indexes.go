// File: database/repository/booking/indexes.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates the necessary indexes on the bookings collection.
func (r *mongoBookingRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Primary query pattern for conflict detection.
		{
			Keys:    bson.D{{Key: "propertyId", Value: 1}, {Key: "status", Value: 1}, {Key: "checkIn", Value: 1}},
			Options: options.Index().SetName("property_status_checkin_idx"),
		},
		{
			Keys:    bson.D{{Key: "clientId", Value: 1}, {Key: "checkIn", Value: -1}},
			Options: options.Index().SetName("client_checkin_idx"),
		},
		{
			Keys:    bson.D{{Key: "checkIn", Value: 1}},
			Options: options.Index().SetName("checkin_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
