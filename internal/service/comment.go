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

// MaxCommentLength bounds comment bodies.
const MaxCommentLength = 5000

// CommentService handles comments and their notifications.
type CommentService struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
	notifier *notifier
	logger   *slog.Logger
}

func NewCommentService(comments repository.CommentRepository, posts repository.PostRepository, notifications repository.NotificationRepository, logger *slog.Logger) *CommentService {
	return &CommentService{
		comments: comments,
		posts:    posts,
		notifier: newNotifier(notifications, logger),
		logger:   logger,
	}
}

// ListByPost returns a post's comments, oldest first.
func (s *CommentService) ListByPost(ctx context.Context, postID string, sort string) ([]model.Comment, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.comments.ListByPost(ctx, postID, sort)
}

func (s *CommentService) Get(ctx context.Context, id string) (*model.Comment, error) {
	return s.comments.GetByID(ctx, id)
}

// Create validates and stores a comment, then notifies the post author.
// A parentID, when set, must name a comment on the same post.
func (s *CommentService) Create(ctx context.Context, userID, postID, content string, parentID *string) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.ValidationFailed("content", "content is required")
	}
	if len(content) > MaxCommentLength {
		return nil, apperror.ValidationFailed("content", fmt.Sprintf("comment must be at most %d characters", MaxCommentLength))
	}

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if parentID != nil {
		parent, err := s.comments.GetByID(ctx, *parentID)
		if err != nil {
			return nil, err
		}
		if parent.PostID != postID {
			return nil, apperror.ValidationFailed("parent_comment_id", "parent comment belongs to a different post")
		}
	}

	comment := &model.Comment{
		PostID:          postID,
		UserID:          userID,
		ParentCommentID: parentID,
		Content:         content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.notifier.notify(ctx, post.UserID, userID, model.NotificationComment, &postID, &comment.ID)
	return comment, nil
}

// Delete removes a comment. The owner or an admin may delete.
func (s *CommentService) Delete(ctx context.Context, actor *model.User, commentID string) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != actor.ID && !actor.IsAdmin {
		return apperror.Forbidden()
	}
	return s.comments.Delete(ctx, commentID)
}
