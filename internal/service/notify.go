package service

import (
	"context"
	"log/slog"

	"github.com/Murilo211205/rede-social/internal/model"
	"github.com/Murilo211205/rede-social/internal/repository"
)

// notifier fans out notifications for likes, comments, and follows.
// Delivery is best effort: the triggering write has already succeeded,
// so failures are logged and swallowed rather than failing the request.
type notifier struct {
	repo   repository.NotificationRepository
	logger *slog.Logger
}

func newNotifier(repo repository.NotificationRepository, logger *slog.Logger) *notifier {
	return &notifier{repo: repo, logger: logger}
}

// notify records a notification for recipientID. Self-notifications are
// skipped: users never hear about their own likes and comments.
func (n *notifier) notify(ctx context.Context, recipientID, actorID, typ string, postID, commentID *string) {
	if recipientID == actorID {
		return
	}

	notification := &model.Notification{
		UserID:    recipientID,
		FromID:    actorID,
		Type:      typ,
		PostID:    postID,
		CommentID: commentID,
	}
	if err := n.repo.Create(ctx, notification); err != nil {
		n.logger.Warn("failed to deliver notification",
			"type", typ,
			"recipient", recipientID,
			"actor", actorID,
			"error", err,
		)
	}
}

// notifyFollow is like notify but skips delivery when the recipient
// already has an unread follow notification from the same actor, so
// follow/unfollow cycles do not flood the inbox.
func (n *notifier) notifyFollow(ctx context.Context, recipientID, actorID string) {
	if recipientID == actorID {
		return
	}

	exists, err := n.repo.UnreadFollowExists(ctx, recipientID, actorID)
	if err != nil {
		n.logger.Warn("failed to check for existing follow notification",
			"recipient", recipientID,
			"actor", actorID,
			"error", err,
		)
		return
	}
	if exists {
		return
	}
	n.notify(ctx, recipientID, actorID, model.NotificationFollow, nil, nil)
}
