package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"rentora/database"
	"rentora/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	// Create inserts a new booking record.
	Create(ctx context.Context, booking *models.Booking) error
	// Update replaces an existing booking record.
	Update(ctx context.Context, booking *models.Booking) error
	// Delete removes a booking record by its ID (hard removal, distinct from cancellation).
	Delete(ctx context.Context, id string) error
	// SetStatus updates only a booking's status.
	SetStatus(ctx context.Context, id, status string) error
	// GetByID retrieves a booking by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// GetAll retrieves all bookings, newest check-in first.
	GetAll(ctx context.Context) ([]models.Booking, error)
	// GetByClientID retrieves a client's bookings, newest check-in first.
	GetByClientID(ctx context.Context, clientID string) ([]models.Booking, error)
	// GetByPropertyID retrieves a property's bookings, newest check-in first.
	GetByPropertyID(ctx context.Context, propertyID string) ([]models.Booking, error)
	// GetActiveByPropertyID retrieves a property's non-cancelled bookings
	// sorted ascending by check-in, the candidate set for conflict detection.
	GetActiveByPropertyID(ctx context.Context, propertyID string) ([]models.Booking, error)
	// GetByCheckInRange retrieves bookings whose check-in falls within [start, end].
	GetByCheckInRange(ctx context.Context, start, end time.Time) ([]models.Booking, error)
	// CompleteDeparted marks confirmed bookings whose check-out has passed as
	// completed and returns how many were updated.
	CompleteDeparted(ctx context.Context, now time.Time) (int64, error)
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new MongoDB BookingRepository.
func NewMongoBookingRepo() BookingRepository {
	repo := &mongoBookingRepo{coll: database.DB().Collection("bookings")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create booking indexes: %v\n", err)
	}
	return repo
}
