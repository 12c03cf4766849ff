package model

import "time"

// Notification types.
const (
	NotificationLike    = "like"
	NotificationComment = "comment"
	NotificationFollow  = "follow"
)

// Notification is addressed to UserID and describes something FromUserID
// did: liked a post or comment, commented on a post, or followed them.
// PostID/CommentID point at the subject when the type has one.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	FromUser  *Profile  `json:"from,omitempty"`
	FromID    string    `json:"from_user_id"`
	Type      string    `json:"type"`
	PostID    *string   `json:"post_id,omitempty"`
	CommentID *string   `json:"comment_id,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
