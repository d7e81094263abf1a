package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cryptolens/cryptolens/internal/model"
)

// CryptoPanicSource fetches posts from the CryptoPanic API.
type CryptoPanicSource struct {
	name       string
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewCryptoPanicSource creates a CryptoPanic source.
func NewCryptoPanicSource(name, baseURL, apiKey string) *CryptoPanicSource {
	return &CryptoPanicSource{
		name:       name,
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: newHTTPClient(),
	}
}

// Name returns the configured source name.
func (s *CryptoPanicSource) Name() string {
	return s.name
}

type cryptoPanicResponse struct {
	Results []cryptoPanicPost `json:"results"`
}

type cryptoPanicPost struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	PublishedAt string `json:"published_at"`
	Source      struct {
		Title string `json:"title"`
	} `json:"source"`
	Metadata struct {
		Description string `json:"description"`
		Content     string `json:"content"`
		Image       string `json:"image"`
	} `json:"metadata"`
	Currencies []struct {
		Title string `json:"title"`
	} `json:"currencies"`
}

// Fetch retrieves the latest posts and maps them to articles.
func (s *CryptoPanicSource) Fetch(ctx context.Context) ([]model.Article, error) {
	apiURL := s.baseURL + "?auth_token=" + url.QueryEscape(s.apiKey)

	req, err := http.NewRequestWithContext(ctx, "GET", apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching posts: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var payload cryptoPanicResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	now := time.Now().UTC()
	articles := make([]model.Article, 0, len(payload.Results))
	for _, post := range payload.Results {
		sourceName := post.Source.Title
		if sourceName == "" {
			sourceName = "CryptoPanic"
		}

		summary := sanitizeText(post.Metadata.Description)
		if summary == "" {
			summary = "No description available"
		}

		var tags []string
		for _, currency := range post.Currencies {
			tags = append(tags, currency.Title)
		}

		articles = append(articles, model.Article{
			Title:       sanitizeText(post.Title),
			Source:      sourceName,
			SourceURL:   post.URL,
			PublishedAt: parseDate(post.PublishedAt),
			Summary:     summary,
			Content:     post.Metadata.Content,
			ImageURL:    post.Metadata.Image,
			Tags:        tags,
			FetchedAt:   now,
		})
	}

	return articles, nil
}
