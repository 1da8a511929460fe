package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationTypeFollow tags notifications created by a follow action.
const NotificationTypeFollow = "follow"

// Notification is an immutable event record. It references users by ID
// only; it is never updated after creation.
type Notification struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Type       string             `json:"type" bson:"type"`
	SenderID   primitive.ObjectID `json:"senderId" bson:"senderId"`
	ReceiverID primitive.ObjectID `json:"receiverId" bson:"receiverId"`
	Message    string             `json:"message" bson:"message"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
}
