package source

import (
	"context"
	"fmt"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/cryptolens/cryptolens/internal/model"
)

// RSSSource fetches articles from an RSS or Atom feed.
type RSSSource struct {
	name   string
	url    string
	parser *gofeed.Parser
}

// NewRSSSource creates an RSS source for the given feed URL.
func NewRSSSource(name, url string) *RSSSource {
	parser := gofeed.NewParser()
	parser.UserAgent = "cryptolens/1.0"
	return &RSSSource{
		name:   name,
		url:    url,
		parser: parser,
	}
}

// Name returns the configured source name.
func (s *RSSSource) Name() string {
	return s.name
}

// Fetch parses the feed and maps its items to articles. Feed categories
// become tags; items without categories fall back to crypto term matching.
func (s *RSSSource) Fetch(ctx context.Context) ([]model.Article, error) {
	feed, err := s.parser.ParseURLWithContext(s.url, ctx)
	if err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}

	sourceName := feed.Title
	if sourceName == "" {
		sourceName = s.name
	}

	now := time.Now().UTC()
	articles := make([]model.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		published := now
		if item.PublishedParsed != nil {
			published = item.PublishedParsed.UTC()
		} else if item.UpdatedParsed != nil {
			published = item.UpdatedParsed.UTC()
		}

		summary := sanitizeText(item.Description)
		if summary == "" {
			summary = "No description available"
		}

		var imageURL string
		if item.Image != nil {
			imageURL = item.Image.URL
		}

		tags := item.Categories
		if len(tags) == 0 {
			tags = matchCryptoTags(item.Title + " " + item.Description)
		}

		articles = append(articles, model.Article{
			Title:       sanitizeText(item.Title),
			Source:      sourceName,
			SourceURL:   item.Link,
			PublishedAt: published,
			Summary:     summary,
			Content:     item.Content,
			ImageURL:    imageURL,
			Tags:        tags,
			FetchedAt:   now,
		})
	}

	return articles, nil
}
