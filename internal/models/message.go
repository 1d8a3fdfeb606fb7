package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is a direct message between two friends (MongoDB)
type Message struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	SenderID   uint               `json:"sender_id" bson:"sender_id"`
	ReceiverID uint               `json:"receiver_id" bson:"receiver_id"`
	Content    string             `json:"content" bson:"content"`
	IsRead     bool               `json:"is_read" bson:"is_read"`
	Timestamp  time.Time          `json:"timestamp" bson:"timestamp"`
}

// CreateMessageRequest defines the request body for sending a message
type CreateMessageRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}
