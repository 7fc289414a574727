// File: database/repository/booking/queries.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"rentora/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoBookingRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Booking, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// GetAll retrieves all bookings, newest check-in first.
func (r *mongoBookingRepo) GetAll(ctx context.Context) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "checkIn", Value: -1}})
	return r.find(ctx, bson.M{}, opts)
}

// GetByClientID retrieves a client's bookings, newest check-in first.
func (r *mongoBookingRepo) GetByClientID(ctx context.Context, clientID string) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "checkIn", Value: -1}})
	return r.find(ctx, bson.M{"clientId": clientID}, opts)
}

// GetByPropertyID retrieves a property's bookings, newest check-in first.
func (r *mongoBookingRepo) GetByPropertyID(ctx context.Context, propertyID string) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "checkIn", Value: -1}})
	return r.find(ctx, bson.M{"propertyId": propertyID}, opts)
}

// GetActiveByPropertyID retrieves a property's non-cancelled bookings sorted
// ascending by check-in. The ascending sort makes conflict reporting
// deterministic: the earliest overlapping booking is always found first.
func (r *mongoBookingRepo) GetActiveByPropertyID(ctx context.Context, propertyID string) ([]models.Booking, error) {
	filter := bson.M{
		"propertyId": propertyID,
		"status":     bson.M{"$ne": models.BookingStatusCancelled},
	}
	opts := options.Find().SetSort(bson.D{{Key: "checkIn", Value: 1}})
	return r.find(ctx, filter, opts)
}

// GetByCheckInRange retrieves bookings whose check-in falls within [start, end].
func (r *mongoBookingRepo) GetByCheckInRange(ctx context.Context, start, end time.Time) ([]models.Booking, error) {
	filter := bson.M{"checkIn": bson.M{"$gte": start, "$lte": end}}
	opts := options.Find().SetSort(bson.D{{Key: "checkIn", Value: 1}})
	return r.find(ctx, filter, opts)
}

// CompleteDeparted marks confirmed bookings whose check-out has passed as completed.
func (r *mongoBookingRepo) CompleteDeparted(ctx context.Context, now time.Time) (int64, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{
		"status":   models.BookingStatusConfirmed,
		"checkOut": bson.M{"$lte": now},
	}
	update := bson.M{"$set": bson.M{"status": models.BookingStatusCompleted, "updatedAt": now}}

	result, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to complete departed bookings: %w", err)
	}
	return result.ModifiedCount, nil
}
