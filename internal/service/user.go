package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Murilo211205/rede-social/internal/apperror"
	"github.com/Murilo211205/rede-social/internal/model"
	"github.com/Murilo211205/rede-social/internal/repository"
)

// UserService handles profiles, profile updates, search, and the admin
// moderation actions.
type UserService struct {
	users   repository.UserRepository
	posts   repository.PostRepository
	follows repository.FollowRepository
	logger  *slog.Logger
}

func NewUserService(users repository.UserRepository, posts repository.PostRepository, follows repository.FollowRepository, logger *slog.Logger) *UserService {
	return &UserService{
		users:   users,
		posts:   posts,
		follows: follows,
		logger:  logger,
	}
}

// ProfileView is a public profile plus its activity counts.
type ProfileView struct {
	model.Profile
	PostsCount     int `json:"posts_count"`
	FollowersCount int `json:"followers_count"`
	FollowingCount int `json:"following_count"`
}

// Profile returns the public view of the account with the given
// username. Banned accounts are invisible.
func (s *UserService) Profile(ctx context.Context, username string) (*ProfileView, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user.IsBanned {
		return nil, apperror.NotFound("user")
	}

	view := &ProfileView{Profile: user.Profile()}
	if view.PostsCount, err = s.posts.CountByUser(ctx, user.ID); err != nil {
		return nil, err
	}
	if view.FollowersCount, err = s.follows.CountFollowers(ctx, user.ID); err != nil {
		return nil, err
	}
	if view.FollowingCount, err = s.follows.CountFollowing(ctx, user.ID); err != nil {
		return nil, err
	}
	return view, nil
}

// GetByUsername returns the raw account for internal use (route
// resolution); callers decide which view to expose.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.users.GetByUsername(ctx, username)
}

// ProfileUpdate carries the optional fields of a profile edit. Nil
// means "leave unchanged".
type ProfileUpdate struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
}

// UpdateProfile merges the provided fields into the caller's account.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.Username != nil {
		username := strings.TrimSpace(*update.Username)
		if !usernameRe.MatchString(username) {
			return nil, apperror.ValidationFailed("username", "username must be 3-20 characters: letters, digits, underscore")
		}
		user.Username = username
	}
	if update.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*update.Email))
		if !emailRe.MatchString(email) {
			return nil, apperror.ValidationFailed("email", "a valid email address is required")
		}
		user.Email = email
	}
	if update.Bio != nil {
		bio := strings.TrimSpace(*update.Bio)
		if len(bio) > MaxBioLength {
			return nil, apperror.ValidationFailed("bio", fmt.Sprintf("bio must be at most %d characters", MaxBioLength))
		}
		user.Bio = bio
	}
	if update.AvatarURL != nil {
		user.AvatarURL = strings.TrimSpace(*update.AvatarURL)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, translateUserConflict(err)
	}
	return user, nil
}

// Search finds users matching q.
func (s *UserService) Search(ctx context.Context, q string) ([]model.Profile, error) {
	q = strings.TrimSpace(q)
	if len(q) < MinSearchLength {
		return nil, apperror.ValidationFailed("q", fmt.Sprintf("search query must be at least %d characters", MinSearchLength))
	}
	return s.users.Search(ctx, q, UserSearchLimit)
}

// Delete removes an account. Admin only; admins cannot delete themselves.
func (s *UserService) Delete(ctx context.Context, actor *model.User, userID string) error {
	if !actor.IsAdmin {
		return apperror.Forbidden()
	}
	if actor.ID == userID {
		return apperror.ValidationFailed("id", "cannot delete your own account")
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}
	s.logger.Info("user deleted", "user_id", userID, "admin_id", actor.ID)
	return nil
}

// SetBanned bans or unbans an account. Admin only; admins cannot ban
// themselves.
func (s *UserService) SetBanned(ctx context.Context, actor *model.User, userID string, banned bool) error {
	if !actor.IsAdmin {
		return apperror.Forbidden()
	}
	if actor.ID == userID {
		return apperror.ValidationFailed("id", "cannot ban your own account")
	}

	if err := s.users.SetBanned(ctx, userID, banned); err != nil {
		return err
	}
	s.logger.Info("user ban updated", "user_id", userID, "banned", banned, "admin_id", actor.ID)
	return nil
}
