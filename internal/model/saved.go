package model

import "time"

// SavedArticle links a user to an article they bookmarked, optionally filed
// into a folder. Article is populated on listing.
type SavedArticle struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ArticleID string    `json:"article_id"`
	FolderID  string    `json:"folder_id,omitempty"`
	SavedAt   time.Time `json:"saved_at"`
	IsRead    bool      `json:"is_read"`
	Notes     string    `json:"notes,omitempty"`
	Article   *Article  `json:"article,omitempty"`
}

// Folder groups saved articles per user.
type Folder struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
