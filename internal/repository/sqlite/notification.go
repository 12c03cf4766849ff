package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Murilo211205/rede-social/internal/apperror"
	"github.com/Murilo211205/rede-social/internal/model"
	"github.com/Murilo211205/rede-social/internal/repository"
	"github.com/rs/xid"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo implements repository.NotificationRepository on SQLite.
type NotificationRepo struct {
	conn *sql.DB
}

func NewNotificationRepo(db *DB) *NotificationRepo {
	return &NotificationRepo{conn: db.conn}
}

func (r *NotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	n.ID = xid.New().String()
	n.CreatedAt = time.Now()

	_, err := r.conn.ExecContext(ctx,
		`INSERT INTO notifications (id, user_id, from_user_id, type, post_id, comment_id, is_read, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, 0, ?)`,
		n.ID, n.UserID, n.FromID, n.Type, n.PostID, n.CommentID, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating notification: %w", err)
	}
	return nil
}

func (r *NotificationRepo) GetByID(ctx context.Context, id string) (*model.Notification, error) {
	var n model.Notification
	err := r.conn.QueryRowContext(ctx,
		`SELECT id, user_id, from_user_id, type, post_id, comment_id, is_read, created_at
		 FROM notifications WHERE id = ?`, id,
	).Scan(&n.ID, &n.UserID, &n.FromID, &n.Type, &n.PostID, &n.CommentID, &n.IsRead, &n.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("notification")
		}
		return nil, fmt.Errorf("sqlite: getting notification %s: %w", id, err)
	}
	return &n, nil
}

// ListByUser returns the newest notifications with sender profiles.
func (r *NotificationRepo) ListByUser(ctx context.Context, userID string, limit int) ([]model.Notification, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.conn.QueryContext(ctx,
		`SELECT n.id, n.user_id, n.from_user_id, n.type, n.post_id, n.comment_id,
		        n.is_read, n.created_at,
		        u.id, u.username, u.bio, u.avatar_url, u.created_at
		 FROM notifications n
		 JOIN users u ON u.id = n.from_user_id
		 WHERE n.user_id = ?
		 ORDER BY n.created_at DESC
		 LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing notifications: %w", err)
	}
	defer rows.Close()

	notifications := make([]model.Notification, 0, limit)
	for rows.Next() {
		var n model.Notification
		var from model.Profile
		err := rows.Scan(
			&n.ID, &n.UserID, &n.FromID, &n.Type, &n.PostID, &n.CommentID,
			&n.IsRead, &n.CreatedAt,
			&from.ID, &from.Username, &from.Bio, &from.AvatarURL, &from.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning notification row: %w", err)
		}
		n.FromUser = &from
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating notifications: %w", err)
	}
	return notifications, nil
}

func (r *NotificationRepo) CountUnread(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = ? AND is_read = 0`,
		userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting unread notifications: %w", err)
	}
	return n, nil
}

func (r *NotificationRepo) MarkRead(ctx context.Context, id string) error {
	result, err := r.conn.ExecContext(ctx,
		`UPDATE notifications SET is_read = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: marking notification read: %w", err)
	}
	return checkAffected(result, "notification")
}

func (r *NotificationRepo) MarkAllRead(ctx context.Context, userID string) error {
	_, err := r.conn.ExecContext(ctx,
		`UPDATE notifications SET is_read = 1 WHERE user_id = ? AND is_read = 0`, userID)
	if err != nil {
		return fmt.Errorf("sqlite: marking notifications read: %w", err)
	}
	return nil
}

// UnreadFollowExists keeps repeated follow/unfollow cycles from piling
// up duplicate notifications.
func (r *NotificationRepo) UnreadFollowExists(ctx context.Context, userID, fromUserID string) (bool, error) {
	var n int
	err := r.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications
		 WHERE user_id = ? AND from_user_id = ? AND type = ? AND is_read = 0`,
		userID, fromUserID, model.NotificationFollow).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("sqlite: checking follow notification: %w", err)
	}
	return n > 0, nil
}
