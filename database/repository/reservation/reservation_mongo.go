package reservationRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// nightReservation is one reserved property-night.
type nightReservation struct {
	PropertyID string    `bson:"propertyId"`
	Night      string    `bson:"night"` // "2006-01-02"
	BookingID  string    `bson:"bookingId"`
	CreatedAt  time.Time `bson:"createdAt"`
}

func (r *mongoReservationRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		// The invariant: one booking per property per night.
		{
			Keys:    bson.D{{Key: "propertyId", Value: 1}, {Key: "night", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_property_night"),
		},
		{
			Keys:    bson.D{{Key: "bookingId", Value: 1}},
			Options: options.Index().SetName("booking_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create reservation indexes: %w", err)
	}
	return nil
}

func (r *mongoReservationRepo) held(ctx context.Context, bookingID string) ([]nightReservation, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"bookingId": bookingID})
	if err != nil {
		return nil, fmt.Errorf("failed to query reserved nights for booking %s: %w", bookingID, err)
	}
	defer cursor.Close(ctx)

	var docs []nightReservation
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode reserved nights: %w", err)
	}
	return docs, nil
}

// NightsHeld returns the property and nights currently reserved by the booking.
func (r *mongoReservationRepo) NightsHeld(ctx context.Context, bookingID string) (string, []string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	docs, err := r.held(ctx, bookingID)
	if err != nil {
		return "", nil, err
	}

	var propertyID string
	nights := make([]string, 0, len(docs))
	for _, d := range docs {
		propertyID = d.PropertyID
		nights = append(nights, d.Night)
	}
	return propertyID, nights, nil
}

// Sync reserves the given nights for the booking on the given property and
// releases everything else the booking holds, including reservations left on
// another property after a move. The unique (propertyId, night) index makes
// the insert the atomic conditional write: a duplicate key means another
// booking holds one of the nights, and the partial insert is rolled back with
// the prior holdings untouched.
func (r *mongoReservationRepo) Sync(ctx context.Context, propertyID, bookingID string, nights []string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	docs, err := r.held(ctx, bookingID)
	if err != nil {
		return err
	}
	// Only nights held on the target property count as already covered; a
	// reservation on another property must never satisfy the diff.
	heldSet := make(map[string]bool, len(docs))
	for _, d := range docs {
		if d.PropertyID == propertyID {
			heldSet[d.Night] = true
		}
	}

	var toAdd []interface{}
	var addedNights []string
	now := time.Now()
	for _, n := range nights {
		if !heldSet[n] {
			toAdd = append(toAdd, nightReservation{
				PropertyID: propertyID,
				Night:      n,
				BookingID:  bookingID,
				CreatedAt:  now,
			})
			addedNights = append(addedNights, n)
		}
	}

	if len(toAdd) > 0 {
		_, err := r.coll.InsertMany(ctx, toAdd, options.InsertMany().SetOrdered(true))
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				// Another booking won the race; undo whatever this call inserted.
				if _, delErr := r.coll.DeleteMany(ctx, bson.M{
					"bookingId":  bookingID,
					"propertyId": propertyID,
					"night":      bson.M{"$in": addedNights},
				}); delErr != nil {
					return fmt.Errorf("failed to roll back partial reservation for booking %s: %w", bookingID, delErr)
				}
				return ErrNightConflict
			}
			return fmt.Errorf("failed to reserve nights for booking %s: %w", bookingID, err)
		}
	}

	// The new nights are secured; drop stale nights on the target property
	// and anything still held on a previous property.
	if _, err := r.coll.DeleteMany(ctx, bson.M{
		"bookingId": bookingID,
		"$or": []bson.M{
			{"propertyId": bson.M{"$ne": propertyID}},
			{"night": bson.M{"$nin": nights}},
		},
	}); err != nil {
		return fmt.Errorf("failed to release stale nights for booking %s: %w", bookingID, err)
	}
	return nil
}

// Release drops all nights held by the booking.
func (r *mongoReservationRepo) Release(ctx context.Context, bookingID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.DeleteMany(ctx, bson.M{"bookingId": bookingID}); err != nil {
		return fmt.Errorf("failed to release nights for booking %s: %w", bookingID, err)
	}
	return nil
}
