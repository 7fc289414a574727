package reservationRepo

import (
	"context"
	"errors"
	"fmt"

	"rentora/database"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNightConflict is returned when another booking already holds one of the
// requested property-nights.
var ErrNightConflict = errors.New("one or more requested nights are already reserved")

// ReservationRepository guards the at-most-one-booking-per-property-per-night
// invariant. Each reserved night is a document under a unique
// (propertyId, night) index, so the winner of two racing commits is decided
// by the storage engine rather than by a prior read.
type ReservationRepository interface {
	// Sync brings the booking's reserved nights in line with the given
	// property and night set: missing nights are inserted on the target
	// property, and only then is everything the booking holds elsewhere
	// released (stale nights, and all nights on any other property when the
	// booking moved). If an insert collides with another booking's
	// reservation, everything inserted by this call is rolled back, the
	// prior holdings are left intact, and ErrNightConflict is returned.
	Sync(ctx context.Context, propertyID, bookingID string, nights []string) error
	// Release drops all nights held by the booking.
	Release(ctx context.Context, bookingID string) error
	// NightsHeld returns the property and nights currently reserved by the
	// booking.
	NightsHeld(ctx context.Context, bookingID string) (propertyID string, nights []string, err error)
}

type mongoReservationRepo struct {
	coll *mongo.Collection
}

// NewMongoReservationRepo constructs a new MongoDB ReservationRepository.
func NewMongoReservationRepo() ReservationRepository {
	repo := &mongoReservationRepo{coll: database.DB().Collection("reservations")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create reservation indexes: %v\n", err)
	}
	return repo
}
