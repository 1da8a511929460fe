package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"campusnet/models"
	"campusnet/repositories"
)

// ErrSelfFollow is returned when a user tries to follow or unfollow
// themselves. No state is touched.
var ErrSelfFollow = errors.New("campusnet: cannot follow yourself")

// FollowResult reports the outcome of a successful follow transition.
// NotificationPending is set when the edge was created but the
// notification write failed; the notification is not retried.
type FollowResult struct {
	Target              *models.User
	NotificationPending bool
}

// FollowService turns "actor wants to follow target" into a consistent,
// idempotent graph mutation plus a notification.
//
// The two user documents are not updated in one transaction. Instead of
// a pair lock, the duplicate race is closed in the store: the edge
// writes are atomic set additions, so two concurrent calls can both
// pass the guard but only one can append. Within a call the actor's
// list is written before the target's, and the notification is only
// attempted after both writes.
type FollowService struct {
	users   repositories.UserRepository
	emitter NotificationEmitter
}

// NewFollowService builds the service with its injected collaborators.
func NewFollowService(users repositories.UserRepository, emitter NotificationEmitter) *FollowService {
	return &FollowService{users: users, emitter: emitter}
}

// Follow creates the directed edge actor→target.
func (s *FollowService) Follow(ctx context.Context, actorID, targetID primitive.ObjectID) (*FollowResult, error) {
	if actorID == targetID {
		return nil, ErrSelfFollow
	}

	actor, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, fmt.Errorf("user %s: %w", actorID.Hex(), repositories.ErrNotFound)
		}
		return nil, err
	}
	target, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, fmt.Errorf("user %s: %w", targetID.Hex(), repositories.ErrNotFound)
		}
		return nil, err
	}

	// Both lists are the source of truth; presence in either counts as
	// already following so a disagreement never grows a duplicate edge.
	if actor.IsFollowing(targetID) || target.HasFollower(actorID) {
		return nil, repositories.ErrAlreadyFollowing
	}

	// Actor side first, then target side. A concurrent call that lost
	// the race surfaces here as ErrAlreadyFollowing with no mutation.
	if err := s.users.AddFollowing(ctx, actorID, targetID); err != nil {
		return nil, err
	}
	if err := s.users.AddFollower(ctx, targetID, actorID); err != nil {
		if repositories.IsAlreadyFollowing(err) {
			// The target side already held the edge; the lists agree now.
			logrus.WithFields(logrus.Fields{
				"actor":  actorID.Hex(),
				"target": targetID.Hex(),
			}).Warn("Follower list was ahead of following list")
		} else {
			// Actor side is written, target side is not: the graph is
			// temporarily inconsistent. No compensation; the caller may
			// retry the whole call.
			logrus.WithFields(logrus.Fields{
				"actor":  actorID.Hex(),
				"target": targetID.Hex(),
			}).WithError(err).Error("Follow left partial state")
			return nil, err
		}
	}

	if !target.HasFollower(actorID) {
		target.Followers = append(target.Followers, actorID)
	}

	result := &FollowResult{Target: target}
	if _, err := s.emitter.EmitFollow(ctx, actorID, targetID, actor.DisplayName()); err != nil {
		// Best-effort side effect: the edge stands, the notification is
		// lost. Logged and reported, never rolled back or retried.
		logrus.WithFields(logrus.Fields{
			"actor":  actorID.Hex(),
			"target": targetID.Hex(),
		}).WithError(err).Error("Follow notification emit failed")
		result.NotificationPending = true
	}

	logrus.WithFields(logrus.Fields{
		"actor":  actorID.Hex(),
		"target": targetID.Hex(),
	}).Info("User followed")
	return result, nil
}

// Unfollow removes the directed edge actor→target. It is the mirror of
// Follow: a NotFollowing guard instead of AlreadyFollowing, removal
// instead of append, and no notification.
func (s *FollowService) Unfollow(ctx context.Context, actorID, targetID primitive.ObjectID) error {
	if actorID == targetID {
		return ErrSelfFollow
	}

	actor, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return fmt.Errorf("user %s: %w", actorID.Hex(), repositories.ErrNotFound)
		}
		return err
	}
	target, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return fmt.Errorf("user %s: %w", targetID.Hex(), repositories.ErrNotFound)
		}
		return err
	}

	if !actor.IsFollowing(targetID) && !target.HasFollower(actorID) {
		return repositories.ErrNotFollowing
	}

	removedFollowing := true
	if err := s.users.RemoveFollowing(ctx, actorID, targetID); err != nil {
		if !repositories.IsNotFollowing(err) {
			return err
		}
		removedFollowing = false
	}
	if err := s.users.RemoveFollower(ctx, targetID, actorID); err != nil {
		if !repositories.IsNotFollowing(err) {
			return err
		}
		if !removedFollowing {
			// Both sides were already gone: a concurrent unfollow won.
			return repositories.ErrNotFollowing
		}
	}

	logrus.WithFields(logrus.Fields{
		"actor":  actorID.Hex(),
		"target": targetID.Hex(),
	}).Info("User unfollowed")
	return nil
}
