package messageRepo

import (
	"context"
	"fmt"

	"rentora/database"
	"rentora/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// MessageRepository defines methods for inquiry message data access.
type MessageRepository interface {
	// Create inserts a new message record.
	Create(ctx context.Context, message *models.Message) error
	// GetAll retrieves all messages, newest first.
	GetAll(ctx context.Context) ([]models.Message, error)
	// GetByID retrieves a message by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Message, error)
	// MarkRead flags a message as read.
	MarkRead(ctx context.Context, id string) error
	// Delete removes a message record by its ID.
	Delete(ctx context.Context, id string) error
}

type mongoMessageRepo struct {
	coll *mongo.Collection
}

// NewMongoMessageRepo constructs a new MongoDB MessageRepository.
func NewMongoMessageRepo() MessageRepository {
	repo := &mongoMessageRepo{coll: database.DB().Collection("messages")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create message indexes: %v\n", err)
	}
	return repo
}
