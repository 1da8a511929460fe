package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"campusnet/models"
	"campusnet/repositories"
)

// NotificationEmitter creates the durable record for a social action.
type NotificationEmitter interface {
	EmitFollow(ctx context.Context, actorID, targetID primitive.ObjectID, actorDisplayName string) (*models.Notification, error)
}

type notificationEmitter struct {
	notifications repositories.NotificationRepository
}

// NewNotificationEmitter builds the emitter on top of the notification store.
func NewNotificationEmitter(notifications repositories.NotificationRepository) NotificationEmitter {
	return &notificationEmitter{notifications: notifications}
}

func (e *notificationEmitter) EmitFollow(ctx context.Context, actorID, targetID primitive.ObjectID, actorDisplayName string) (*models.Notification, error) {
	notification := &models.Notification{
		Type:       models.NotificationTypeFollow,
		SenderID:   actorID,
		ReceiverID: targetID,
		Message:    actorDisplayName + " started following you.",
	}
	if err := e.notifications.Create(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}
