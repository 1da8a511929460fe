package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"campusnet/dto"
	"campusnet/models"
)

// UserRepository is the User Directory contract. The edge operations
// (AddFollowing and friends) are atomic set mutations on a single
// document: they never append an ID that is already present, which is
// what makes concurrent follow calls safe without a pair lock.
type UserRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	ResolveRefs(ctx context.Context, ids []primitive.ObjectID) ([]dto.UserRef, error)

	AddFollowing(ctx context.Context, userID, targetID primitive.ObjectID) error
	AddFollower(ctx context.Context, userID, followerID primitive.ObjectID) error
	RemoveFollowing(ctx context.Context, userID, targetID primitive.ObjectID) error
	RemoveFollower(ctx context.Context, userID, followerID primitive.ObjectID) error
}

// NotificationRepository persists and reads notification records.
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	GetByReceiver(ctx context.Context, receiverID primitive.ObjectID) ([]models.Notification, error)
}
