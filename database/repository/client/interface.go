package clientRepo

import (
	"context"
	"fmt"

	"rentora/database"
	"rentora/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ClientRepository defines methods for client data access.
type ClientRepository interface {
	// GetByID retrieves a client by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Client, error)
	// GetAll retrieves all clients ordered by last name.
	GetAll(ctx context.Context) ([]models.Client, error)
	// Create inserts a new client record.
	Create(ctx context.Context, client *models.Client) error
	// Update replaces an existing client record.
	Update(ctx context.Context, client *models.Client) error
	// Delete removes a client record by its ID.
	Delete(ctx context.Context, id string) error
	// Count returns the total number of clients.
	Count(ctx context.Context) (int64, error)
}

type mongoClientRepo struct {
	coll *mongo.Collection
}

// NewMongoClientRepo constructs a new MongoDB ClientRepository.
func NewMongoClientRepo() ClientRepository {
	repo := &mongoClientRepo{coll: database.DB().Collection("clients")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create client indexes: %v\n", err)
	}
	return repo
}
