package service

import (
	"context"
	"log/slog"

	"github.com/Murilo211205/rede-social/internal/apperror"
	"github.com/Murilo211205/rede-social/internal/model"
	"github.com/Murilo211205/rede-social/internal/repository"
)

// FollowListLimit bounds follower and following listings.
const FollowListLimit = 20

// FollowService handles the follow graph.
type FollowService struct {
	follows  repository.FollowRepository
	users    repository.UserRepository
	notifier *notifier
	logger   *slog.Logger
}

func NewFollowService(follows repository.FollowRepository, users repository.UserRepository, notifications repository.NotificationRepository, logger *slog.Logger) *FollowService {
	return &FollowService{
		follows:  follows,
		users:    users,
		notifier: newNotifier(notifications, logger),
		logger:   logger,
	}
}

// Follow creates a follow edge. Self-follows are rejected and repeat
// follows are terminal conflicts.
func (s *FollowService) Follow(ctx context.Context, followerID, followingID string) error {
	if followerID == followingID {
		return apperror.Conflict("CANNOT_FOLLOW_SELF", "cannot follow yourself", "")
	}
	if _, err := s.users.GetByID(ctx, followingID); err != nil {
		return err
	}

	follow := &model.Follow{FollowerID: followerID, FollowingID: followingID}
	if err := s.follows.Create(ctx, follow); err != nil {
		if repository.IsConflict(err, repository.ConstraintFollowPair) {
			return apperror.Conflict("ALREADY_FOLLOWING", "already following this user", "")
		}
		return err
	}

	s.notifier.notifyFollow(ctx, followingID, followerID)
	return nil
}

// Unfollow removes a follow edge; NOT_FOLLOWING when none exists.
func (s *FollowService) Unfollow(ctx context.Context, followerID, followingID string) error {
	if _, err := s.users.GetByID(ctx, followingID); err != nil {
		return err
	}

	following, err := s.follows.Exists(ctx, followerID, followingID)
	if err != nil {
		return err
	}
	if !following {
		return apperror.Conflict("NOT_FOLLOWING", "not following this user", "")
	}
	return s.follows.Delete(ctx, followerID, followingID)
}

// IsFollowing reports whether followerID follows followingID. An empty
// followerID (anonymous caller) is always false.
func (s *FollowService) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	if followerID == "" {
		return false, nil
	}
	return s.follows.Exists(ctx, followerID, followingID)
}

func (s *FollowService) Followers(ctx context.Context, userID string) ([]model.Profile, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.follows.Followers(ctx, userID, FollowListLimit)
}

func (s *FollowService) Following(ctx context.Context, userID string) ([]model.Profile, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.follows.Following(ctx, userID, FollowListLimit)
}
