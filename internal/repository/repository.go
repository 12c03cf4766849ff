// Package repository defines the storage interfaces the service layer
// depends on, plus the structured conflict error every implementation
// must return for unique-constraint violations.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Murilo211205/rede-social/internal/model"
)

// Stable identifiers for the unique constraints the application reacts to.
// Implementations translate their driver's violation reports into these;
// nothing above the store boundary ever inspects driver error text.
const (
	ConstraintUserUsername = "users.username"
	ConstraintUserEmail    = "users.email"
	ConstraintPostSlug     = "posts.slug"
	ConstraintPostLike     = "likes.user_post"
	ConstraintCommentLike  = "likes.user_comment"
	ConstraintFollowPair   = "follows.pair"
)

// ConflictError reports a unique-constraint violation. Constraint is one
// of the identifiers above.
type ConflictError struct {
	Constraint string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("unique constraint violated: %s", e.Constraint)
}

// IsConflict reports whether err is (or wraps) a ConflictError on the
// given constraint. An empty constraint matches any conflict.
func IsConflict(err error, constraint string) bool {
	var ce *ConflictError
	if !errors.As(err, &ce) {
		return false
	}
	return constraint == "" || ce.Constraint == constraint
}

// ListOptions carries pagination and ordering for list queries.
// Sort values are resource-specific ("recent", "popular", "oldest");
// implementations fall back to "recent" for anything unrecognised.
type ListOptions struct {
	Limit  int
	Offset int
	Sort   string
}

// UserRepository stores accounts.
type UserRepository interface {
	// Create inserts a new user. Returns a ConflictError on a duplicate
	// username or email.
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	// Update rewrites the mutable profile fields (username, email, bio,
	// avatar_url). Returns a ConflictError on a duplicate username or email.
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id string) error
	SetBanned(ctx context.Context, id string, banned bool) error
	// Search matches username or email, excludes banned accounts, and
	// orders by follower count.
	Search(ctx context.Context, query string, limit int) ([]model.Profile, error)
}

// PostRepository stores posts.
type PostRepository interface {
	// Create inserts a new post. Returns a ConflictError on a duplicate slug.
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id string) (*model.Post, error)
	// List returns a page of posts with their authors attached.
	List(ctx context.Context, opts ListOptions) ([]model.Post, error)
	ListByUser(ctx context.Context, userID string, opts ListOptions) ([]model.Post, error)
	Search(ctx context.Context, query string, limit int) ([]model.Post, error)
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	// AdjustLikes shifts likes_count by delta, clamped at zero.
	AdjustLikes(ctx context.Context, id string, delta int) error
}

// CommentRepository stores comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetByID(ctx context.Context, id string) (*model.Comment, error)
	ListByPost(ctx context.Context, postID string, sort string) ([]model.Comment, error)
	Delete(ctx context.Context, id string) error
	AdjustLikes(ctx context.Context, id string, delta int) error
}

// LikeRepository stores likes. Creates return a ConflictError
// (ConstraintPostLike or ConstraintCommentLike) for duplicates.
type LikeRepository interface {
	Create(ctx context.Context, like *model.Like) error
	DeleteForPost(ctx context.Context, userID, postID string) error
	DeleteForComment(ctx context.Context, userID, commentID string) error
	ExistsForPost(ctx context.Context, userID, postID string) (bool, error)
	ExistsForComment(ctx context.Context, userID, commentID string) (bool, error)
}

// FollowRepository stores follow edges. Create returns a ConflictError
// (ConstraintFollowPair) for duplicates.
type FollowRepository interface {
	Create(ctx context.Context, follow *model.Follow) error
	Delete(ctx context.Context, followerID, followingID string) error
	Exists(ctx context.Context, followerID, followingID string) (bool, error)
	Followers(ctx context.Context, userID string, limit int) ([]model.Profile, error)
	Following(ctx context.Context, userID string, limit int) ([]model.Profile, error)
	CountFollowers(ctx context.Context, userID string) (int, error)
	CountFollowing(ctx context.Context, userID string) (int, error)
}

// NotificationRepository stores notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	GetByID(ctx context.Context, id string) (*model.Notification, error)
	// ListByUser returns the newest notifications with sender profiles attached.
	ListByUser(ctx context.Context, userID string, limit int) ([]model.Notification, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, userID string) error
	// UnreadFollowExists reports whether userID already has an unread
	// follow notification from fromUserID; used to avoid duplicates on
	// repeated follow/unfollow cycles.
	UnreadFollowExists(ctx context.Context, userID, fromUserID string) (bool, error)
}
