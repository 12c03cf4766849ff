package sqlite

import (
	"context"
	"fmt"
	"testing"

	"github.com/Murilo211205/rede-social/internal/model"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUser(t *testing.T, db *DB, username string) *model.User {
	t.Helper()
	user := &model.User{
		Username:     username,
		Email:        fmt.Sprintf("%s@example.com", username),
		PasswordHash: "x",
	}
	if err := NewUserRepo(db).Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user %s: %v", username, err)
	}
	return user
}

func createTestPost(t *testing.T, db *DB, userID, title, slug string) *model.Post {
	t.Helper()
	post := &model.Post{
		UserID:  userID,
		Title:   title,
		Slug:    slug,
		Content: "content",
	}
	if err := NewPostRepo(db).Create(context.Background(), post); err != nil {
		t.Fatalf("failed to create test post %s: %v", slug, err)
	}
	return post
}

func newTestComment(t *testing.T, db *DB, postID, userID, content string) *model.Comment {
	t.Helper()
	comment := &model.Comment{PostID: postID, UserID: userID, Content: content}
	if err := NewCommentRepo(db).Create(context.Background(), comment); err != nil {
		t.Fatalf("failed to create test comment: %v", err)
	}
	return comment
}
