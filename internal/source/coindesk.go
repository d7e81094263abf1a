package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cryptolens/cryptolens/internal/model"
)

// CoinDeskSource fetches articles from the CoinDesk data API. The endpoint
// is public and needs no API key.
type CoinDeskSource struct {
	name       string
	baseURL    string
	httpClient *http.Client
}

// NewCoinDeskSource creates a CoinDesk source.
func NewCoinDeskSource(name, baseURL string) *CoinDeskSource {
	return &CoinDeskSource{
		name:       name,
		baseURL:    baseURL,
		httpClient: newHTTPClient(),
	}
}

// Name returns the configured source name.
func (s *CoinDeskSource) Name() string {
	return s.name
}

type coinDeskResponse struct {
	Data []coinDeskArticle `json:"data"`
}

type coinDeskArticle struct {
	Headline    string          `json:"headline"`
	Title       string          `json:"title"`
	URL         string          `json:"url"`
	Slug        string          `json:"slug"`
	Published   string          `json:"published"`
	CreatedAt   string          `json:"createdAt"`
	Description string          `json:"description"`
	Summary     string          `json:"summary"`
	Body        string          `json:"body"`
	LeadImage   coinDeskImage   `json:"leadImage"`
	Thumbnail   coinDeskImage   `json:"thumbnail"`
	Tags        []coinDeskTag   `json:"tags"`
}

type coinDeskImage struct {
	URL string `json:"url"`
}

// coinDeskTag accepts both the object form {"name": "..."} and a bare string.
type coinDeskTag struct {
	Name string
}

func (t *coinDeskTag) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		t.Name = s
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	t.Name = obj.Name
	return nil
}

// Fetch retrieves the latest articles and maps them to the article model.
func (s *CoinDeskSource) Fetch(ctx context.Context) ([]model.Article, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", s.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching articles: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var payload coinDeskResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	now := time.Now().UTC()
	articles := make([]model.Article, 0, len(payload.Data))
	for _, item := range payload.Data {
		title := item.Headline
		if title == "" {
			title = item.Title
		}

		sourceURL := item.URL
		if sourceURL == "" && item.Slug != "" {
			sourceURL = "https://www.coindesk.com" + item.Slug
		}

		published := item.Published
		if published == "" {
			published = item.CreatedAt
		}

		summary := item.Description
		if summary == "" {
			summary = item.Summary
		}
		summary = sanitizeText(summary)
		if summary == "" {
			summary = "No description available"
		}

		imageURL := item.LeadImage.URL
		if imageURL == "" {
			imageURL = item.Thumbnail.URL
		}

		var tags []string
		for _, tag := range item.Tags {
			if tag.Name != "" {
				tags = append(tags, tag.Name)
			}
		}
		if len(tags) == 0 {
			tags = matchCryptoTags(title)
		}

		articles = append(articles, model.Article{
			Title:       sanitizeText(title),
			Source:      "CoinDesk",
			SourceURL:   sourceURL,
			PublishedAt: parseDate(published),
			Summary:     summary,
			Content:     item.Body,
			ImageURL:    imageURL,
			Tags:        tags,
			FetchedAt:   now,
		})
	}

	return articles, nil
}
