package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Murilo211205/rede-social/internal/apperror"
	"github.com/Murilo211205/rede-social/internal/model"
)

func TestNotificationCountUnread_Anonymous(t *testing.T) {
	svc := NewNotificationService(newMockNotificationRepo(), testLogger())

	n, err := svc.CountUnread(context.Background(), "")
	if err != nil {
		t.Fatalf("CountUnread() error = %v", err)
	}
	if n != 0 {
		t.Errorf("CountUnread() = %d, want 0 for anonymous caller", n)
	}
}

func TestNotificationMarkRead_RecipientOnly(t *testing.T) {
	repo := newMockNotificationRepo()
	svc := NewNotificationService(repo, testLogger())

	n := &model.Notification{UserID: "alice", FromID: "bob", Type: model.NotificationLike}
	if err := repo.Create(context.Background(), n); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := svc.MarkRead(context.Background(), "bob", n.ID); !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("MarkRead() by non-recipient error = %v, want ErrForbidden", err)
	}
	if err := svc.MarkRead(context.Background(), "alice", n.ID); err != nil {
		t.Fatalf("MarkRead() by recipient error = %v", err)
	}

	unread, err := svc.CountUnread(context.Background(), "alice")
	if err != nil {
		t.Fatalf("CountUnread() error = %v", err)
	}
	if unread != 0 {
		t.Errorf("CountUnread() = %d, want 0 after MarkRead", unread)
	}
}

func TestNotificationMarkAllRead(t *testing.T) {
	repo := newMockNotificationRepo()
	svc := NewNotificationService(repo, testLogger())

	for range 3 {
		n := &model.Notification{UserID: "alice", FromID: "bob", Type: model.NotificationLike}
		if err := repo.Create(context.Background(), n); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	if err := svc.MarkAllRead(context.Background(), "alice"); err != nil {
		t.Fatalf("MarkAllRead() error = %v", err)
	}
	unread, err := svc.CountUnread(context.Background(), "alice")
	if err != nil {
		t.Fatalf("CountUnread() error = %v", err)
	}
	if unread != 0 {
		t.Errorf("CountUnread() = %d, want 0", unread)
	}
}
