package model

import "time"

// Follow records FollowerID following FollowingID. Immutable; the store
// holds a unique index on the pair.
type Follow struct {
	ID          string    `json:"id"`
	FollowerID  string    `json:"follower_id"`
	FollowingID string    `json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}
