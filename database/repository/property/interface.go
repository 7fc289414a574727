package propertyRepo

import (
	"context"
	"fmt"

	"rentora/database"
	"rentora/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// PropertyRepository defines methods for property data access.
type PropertyRepository interface {
	// GetByID retrieves a property by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Property, error)
	// GetAll retrieves properties matching the filter, ordered by name.
	GetAll(ctx context.Context, filter models.PropertyFilter) ([]models.Property, error)
	// Create inserts a new property record.
	Create(ctx context.Context, property *models.Property) error
	// Update replaces an existing property record.
	Update(ctx context.Context, property *models.Property) error
	// Delete removes a property record by its ID.
	Delete(ctx context.Context, id string) error
	// Count returns the total number of properties.
	Count(ctx context.Context) (int64, error)
}

type mongoPropertyRepo struct {
	coll *mongo.Collection
}

// NewMongoPropertyRepo constructs a new MongoDB PropertyRepository.
func NewMongoPropertyRepo() PropertyRepository {
	repo := &mongoPropertyRepo{coll: database.DB().Collection("properties")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create property indexes: %v\n", err)
	}
	return repo
}
