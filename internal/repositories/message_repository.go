package repositories

import (
	"context"
	"time"

	"github.com/K1motho/pfol/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MessageRepository defines the interface for direct message operations
type MessageRepository interface {
	CreateMessage(ctx context.Context, message *models.Message) error
	// GetConversation returns every message exchanged between the two users,
	// oldest first.
	GetConversation(ctx context.Context, userID, friendID uint) ([]models.Message, error)
	MarkConversationRead(ctx context.Context, userID, friendID uint) error
}

// MongoMessageRepository implements MessageRepository for MongoDB
type MongoMessageRepository struct {
	collection *mongo.Collection
}

// NewMongoMessageRepository creates a new MongoMessageRepository
func NewMongoMessageRepository(db *mongo.Database) *MongoMessageRepository {
	return &MongoMessageRepository{collection: db.Collection("messages")}
}

// CreateMessage stores a new message in MongoDB
func (r *MongoMessageRepository) CreateMessage(ctx context.Context, message *models.Message) error {
	message.ID = primitive.NewObjectID()
	message.Timestamp = time.Now()
	_, err := r.collection.InsertOne(ctx, message)
	return err
}

// GetConversation retrieves the message history between two users from MongoDB
func (r *MongoMessageRepository) GetConversation(ctx context.Context, userID, friendID uint) ([]models.Message, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"sender_id": userID, "receiver_id": friendID},
		bson.M{"sender_id": friendID, "receiver_id": userID},
	}}
	findOptions := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkConversationRead marks everything the friend sent to the user as read
func (r *MongoMessageRepository) MarkConversationRead(ctx context.Context, userID, friendID uint) error {
	filter := bson.M{"sender_id": friendID, "receiver_id": userID, "is_read": false}
	_, err := r.collection.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"is_read": true}})
	return err
}
