package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"campusnet/database"
	"campusnet/models"
)

type notificationRepository struct {
	collection *mongo.Collection
}

// NewNotificationRepository builds the mongo-backed notification store.
func NewNotificationRepository(db *database.DB) NotificationRepository {
	return &notificationRepository{collection: db.Collection(database.NotificationsCollection)}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	if notification.ID.IsZero() {
		notification.ID = primitive.NewObjectID()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now().UTC()
	}

	_, err := r.collection.InsertOne(ctx, notification)
	if err != nil {
		return mapStoreError(err)
	}
	return nil
}

// GetByReceiver returns the receiver's notifications, newest first.
func (r *notificationRepository) GetByReceiver(ctx context.Context, receiverID primitive.ObjectID) ([]models.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"receiverId": receiverID}, opts)
	if err != nil {
		return nil, mapStoreError(err)
	}
	defer cursor.Close(ctx)

	notifications := []models.Notification{}
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, mapStoreError(err)
	}
	return notifications, nil
}
