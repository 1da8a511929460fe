package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"campusnet/database"
	"campusnet/dto"
	"campusnet/models"
)

type userRepository struct {
	collection *mongo.Collection
}

// NewUserRepository builds the mongo-backed User Directory.
func NewUserRepository(db *database.DB) UserRepository {
	return &userRepository{collection: db.Collection(database.UsersCollection)}
}

func (r *userRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, mapStoreError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.Following == nil {
		user.Following = []primitive.ObjectID{}
	}
	if user.Followers == nil {
		user.Followers = []primitive.ObjectID{}
	}

	_, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return mapStoreError(err)
	}
	return nil
}

// Update persists the mutable profile fields of the user. The
// relationship lists are deliberately excluded: those are only touched
// through the atomic edge operations below.
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().UTC()

	update := bson.M{"$set": bson.M{
		"username":             user.Username,
		"age":                  user.Age,
		"college":              user.College,
		"yearLevel":            user.YearLevel,
		"bio":                  user.Bio,
		"profileImage":         user.ProfileImage,
		"customInterests":      user.CustomInterests,
		"categorizedInterests": user.CategorizedInterests,
		"updatedAt":            user.UpdatedAt,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": user.ID}, update)
	if err != nil {
		return mapStoreError(err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) ResolveRefs(ctx context.Context, ids []primitive.ObjectID) ([]dto.UserRef, error) {
	if len(ids) == 0 {
		return []dto.UserRef{}, nil
	}

	opts := options.Find().SetProjection(bson.M{"_id": 1, "username": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, mapStoreError(err)
	}
	defer cursor.Close(ctx)

	var refs []dto.UserRef
	if err := cursor.All(ctx, &refs); err != nil {
		return nil, mapStoreError(err)
	}
	return refs, nil
}

// AddFollowing appends targetID to the user's following list. The
// $addToSet keeps the list duplicate-free even when two follow calls
// race past the service-level guard; the loser sees ErrAlreadyFollowing.
func (r *userRepository) AddFollowing(ctx context.Context, userID, targetID primitive.ObjectID) error {
	return r.addToSet(ctx, userID, "following", targetID, ErrAlreadyFollowing)
}

func (r *userRepository) AddFollower(ctx context.Context, userID, followerID primitive.ObjectID) error {
	return r.addToSet(ctx, userID, "followers", followerID, ErrAlreadyFollowing)
}

func (r *userRepository) RemoveFollowing(ctx context.Context, userID, targetID primitive.ObjectID) error {
	return r.pull(ctx, userID, "following", targetID, ErrNotFollowing)
}

func (r *userRepository) RemoveFollower(ctx context.Context, userID, followerID primitive.ObjectID) error {
	return r.pull(ctx, userID, "followers", followerID, ErrNotFollowing)
}

func (r *userRepository) addToSet(ctx context.Context, userID primitive.ObjectID, field string, value primitive.ObjectID, existsErr error) error {
	// The $ne filter makes "already present" visible as MatchedCount == 0
	// while $addToSet guarantees the list stays duplicate-free under races.
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": userID, field: bson.M{"$ne": value}},
		bson.M{
			"$addToSet": bson.M{field: value},
			"$set":      bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return mapStoreError(err)
	}
	if result.MatchedCount == 0 {
		exists, err := r.exists(ctx, userID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		return existsErr
	}
	return nil
}

func (r *userRepository) pull(ctx context.Context, userID primitive.ObjectID, field string, value primitive.ObjectID, missingErr error) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": userID, field: value},
		bson.M{
			"$pull": bson.M{field: value},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return mapStoreError(err)
	}
	if result.MatchedCount == 0 {
		// Either the user is gone or the edge is; disambiguate for the caller.
		exists, existsErr2 := r.exists(ctx, userID)
		if existsErr2 != nil {
			return existsErr2
		}
		if !exists {
			return ErrNotFound
		}
		return missingErr
	}
	return nil
}

func (r *userRepository) exists(ctx context.Context, userID primitive.ObjectID) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": userID})
	if err != nil {
		return false, mapStoreError(err)
	}
	return count > 0, nil
}

// mapStoreError translates driver and context failures into the
// repository taxonomy. Anything transient becomes ErrUnavailable so the
// caller knows a retry is reasonable.
func mapStoreError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) ||
		mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		logrus.WithError(err).Warn("Store operation timed out or lost connection")
		return ErrUnavailable
	}
	logrus.WithError(err).Error("Store operation failed")
	return ErrUnavailable
}
