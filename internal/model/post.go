package model

import "time"

// Post is a published post. Slug is derived from the title and unique
// across all posts; the store enforces that and the service layer resolves
// collisions by suffixing.
type Post struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Title      string    `json:"title"`
	Slug       string    `json:"slug"`
	Content    string    `json:"content"`
	LikesCount int       `json:"likes_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Author is attached by queries that join the users table. Nil when the
	// query didn't ask for it.
	Author *Profile `json:"author,omitempty"`
}

// Pagination is the page descriptor returned alongside post listings.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}
