package model

import "time"

// Article is one ingested news item. RelevanceScore is computed per
// personalization request and is never persisted.
type Article struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Source         string    `json:"source"`
	SourceURL      string    `json:"source_url"`
	PublishedAt    time.Time `json:"published_date"`
	FetchedAt      time.Time `json:"fetch_date"`
	Summary        string    `json:"summary"`
	Content        string    `json:"content,omitempty"`
	ImageURL       string    `json:"image_url,omitempty"`
	Tags           []string  `json:"tags"`
	RelevanceScore int       `json:"relevance_score"`
}
