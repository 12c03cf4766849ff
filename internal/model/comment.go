package model

import "time"

// Comment is a comment on a post. ParentCommentID is set for replies and
// nil for top-level comments.
type Comment struct {
	ID              string    `json:"id"`
	PostID          string    `json:"post_id"`
	UserID          string    `json:"user_id"`
	ParentCommentID *string   `json:"parent_comment_id,omitempty"`
	Content         string    `json:"content"`
	LikesCount      int       `json:"likes_count"`
	CreatedAt       time.Time `json:"created_at"`

	Author *Profile `json:"author,omitempty"`
}
