package service

import (
	"context"
	"log/slog"

	"github.com/Murilo211205/rede-social/internal/apperror"
	"github.com/Murilo211205/rede-social/internal/model"
	"github.com/Murilo211205/rede-social/internal/repository"
)

// NotificationListLimit bounds the notification inbox listing.
const NotificationListLimit = 20

// NotificationService handles the notification inbox.
type NotificationService struct {
	notifications repository.NotificationRepository
	logger        *slog.Logger
}

func NewNotificationService(notifications repository.NotificationRepository, logger *slog.Logger) *NotificationService {
	return &NotificationService{notifications: notifications, logger: logger}
}

// List returns the caller's newest notifications.
func (s *NotificationService) List(ctx context.Context, userID string) ([]model.Notification, error) {
	return s.notifications.ListByUser(ctx, userID, NotificationListLimit)
}

// CountUnread returns the caller's unread count. An empty userID
// (anonymous caller) is always zero.
func (s *NotificationService) CountUnread(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, nil
	}
	return s.notifications.CountUnread(ctx, userID)
}

// MarkRead marks one notification read. Only its recipient may.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	n, err := s.notifications.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if n.UserID != userID {
		return apperror.Forbidden()
	}
	return s.notifications.MarkRead(ctx, notificationID)
}

// MarkAllRead marks every unread notification of the caller read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.notifications.MarkAllRead(ctx, userID)
}
