package messageRepo

import (
	"context"
	"fmt"
	"time"

	"rentora/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

func (r *mongoMessageRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create message indexes: %w", err)
	}
	return nil
}

// Create inserts a new message document.
func (r *mongoMessageRepo) Create(ctx context.Context, message *models.Message) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	message.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, message); err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// GetAll retrieves all messages, newest first.
func (r *mongoMessageRepo) GetAll(ctx context.Context) ([]models.Message, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve messages: %w", err)
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %w", err)
	}
	return messages, nil
}

// GetByID retrieves a message by its unique ID.
func (r *mongoMessageRepo) GetByID(ctx context.Context, id string) (*models.Message, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var message models.Message
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&message); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch message with id %s: %w", id, err)
	}
	return &message, nil
}

// MarkRead flags a message as read.
func (r *mongoMessageRepo) MarkRead(ctx context.Context, id string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return fmt.Errorf("failed to mark message %s as read: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("message with id %s not found", id)
	}
	return nil
}

// Delete removes a message document by its ID.
func (r *mongoMessageRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete message with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("message with id %s not found", id)
	}
	return nil
}
