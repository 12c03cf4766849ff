package service

import (
	"context"
	"log/slog"

	"github.com/Murilo211205/rede-social/internal/apperror"
	"github.com/Murilo211205/rede-social/internal/model"
	"github.com/Murilo211205/rede-social/internal/repository"
)

// LikeService handles likes on posts and comments. Re-liking is a
// terminal conflict, never a retry: the store's uniqueness constraint is
// the arbiter and its violation maps straight to ALREADY_LIKED.
type LikeService struct {
	likes    repository.LikeRepository
	posts    repository.PostRepository
	comments repository.CommentRepository
	notifier *notifier
	logger   *slog.Logger
}

func NewLikeService(likes repository.LikeRepository, posts repository.PostRepository, comments repository.CommentRepository, notifications repository.NotificationRepository, logger *slog.Logger) *LikeService {
	return &LikeService{
		likes:    likes,
		posts:    posts,
		comments: comments,
		notifier: newNotifier(notifications, logger),
		logger:   logger,
	}
}

// LikePost records a like and bumps the post's counter once.
func (s *LikeService) LikePost(ctx context.Context, userID, postID string) error {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	like := &model.Like{UserID: userID, PostID: &postID}
	if err := s.likes.Create(ctx, like); err != nil {
		if repository.IsConflict(err, repository.ConstraintPostLike) {
			return apperror.Conflict("ALREADY_LIKED", "post is already liked", "")
		}
		return err
	}

	if err := s.posts.AdjustLikes(ctx, postID, 1); err != nil {
		s.logger.Warn("failed to bump post like counter", "post_id", postID, "error", err)
	}
	s.notifier.notify(ctx, post.UserID, userID, model.NotificationLike, &postID, nil)
	return nil
}

// UnlikePost removes a like. Unliking something never liked is NOT_LIKED.
func (s *LikeService) UnlikePost(ctx context.Context, userID, postID string) error {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return err
	}

	liked, err := s.likes.ExistsForPost(ctx, userID, postID)
	if err != nil {
		return err
	}
	if !liked {
		return apperror.Conflict("NOT_LIKED", "post is not liked", "")
	}

	if err := s.likes.DeleteForPost(ctx, userID, postID); err != nil {
		return err
	}
	if err := s.posts.AdjustLikes(ctx, postID, -1); err != nil {
		s.logger.Warn("failed to drop post like counter", "post_id", postID, "error", err)
	}
	return nil
}

// LikeComment records a like and bumps the comment's counter once.
func (s *LikeService) LikeComment(ctx context.Context, userID, commentID string) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	like := &model.Like{UserID: userID, CommentID: &commentID}
	if err := s.likes.Create(ctx, like); err != nil {
		if repository.IsConflict(err, repository.ConstraintCommentLike) {
			return apperror.Conflict("ALREADY_LIKED", "comment is already liked", "")
		}
		return err
	}

	if err := s.comments.AdjustLikes(ctx, commentID, 1); err != nil {
		s.logger.Warn("failed to bump comment like counter", "comment_id", commentID, "error", err)
	}
	s.notifier.notify(ctx, comment.UserID, userID, model.NotificationLike, &comment.PostID, &commentID)
	return nil
}

// UnlikeComment removes a comment like.
func (s *LikeService) UnlikeComment(ctx context.Context, userID, commentID string) error {
	if _, err := s.comments.GetByID(ctx, commentID); err != nil {
		return err
	}

	liked, err := s.likes.ExistsForComment(ctx, userID, commentID)
	if err != nil {
		return err
	}
	if !liked {
		return apperror.Conflict("NOT_LIKED", "comment is not liked", "")
	}

	if err := s.likes.DeleteForComment(ctx, userID, commentID); err != nil {
		return err
	}
	if err := s.comments.AdjustLikes(ctx, commentID, -1); err != nil {
		s.logger.Warn("failed to drop comment like counter", "comment_id", commentID, "error", err)
	}
	return nil
}
