package models

import "time"

// Post is one user submission as stored in the posts table. EngagementScore
// is derived at read time relative to "now" and never persisted; two reads of
// the same post at different times may legitimately yield different scores.
type Post struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	Content         string    `json:"content"`
	CreatedAt       time.Time `json:"created_at"`
	Likes           int       `json:"likes"`
	Comments        int       `json:"comments"`
	Shares          int       `json:"shares"`
	EngagementScore float64   `json:"engagement_score,omitempty"`
}

// NewPost carries the fields of a post before the store assigns its id.
type NewPost struct {
	UserID    int64
	Content   string
	CreatedAt time.Time
	Likes     int
	Comments  int
	Shares    int
}

type CreatePostRequest struct {
	Content string `json:"content"`
}
