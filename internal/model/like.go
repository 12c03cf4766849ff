package model

import "time"

// Like records one user liking one post or one comment. Exactly one of
// PostID and CommentID is set. Likes are immutable: they are inserted and
// deleted, never updated. The store holds a unique index per target kind,
// so a second like of the same target is a constraint violation, not a
// second row.
type Like struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	PostID    *string   `json:"post_id,omitempty"`
	CommentID *string   `json:"comment_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
