package model

import "time"

// Activity is a best-effort analytics event. Recording failures are logged,
// never surfaced to the user.
type Activity struct {
	UserID    string            `json:"user_id"`
	Type      string            `json:"activity_type"`
	ArticleID string            `json:"article_id,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}
