package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cryptolens/cryptolens/internal/model"
)

// NewsAPISource fetches articles from the NewsAPI.org everything endpoint.
type NewsAPISource struct {
	name       string
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewNewsAPISource creates a NewsAPI source.
func NewNewsAPISource(name, baseURL, apiKey string) *NewsAPISource {
	return &NewsAPISource{
		name:       name,
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: newHTTPClient(),
	}
}

// Name returns the configured source name.
func (s *NewsAPISource) Name() string {
	return s.name
}

type newsAPIResponse struct {
	Articles []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	PublishedAt string `json:"publishedAt"`
	Description string `json:"description"`
	Content     string `json:"content"`
	URLToImage  string `json:"urlToImage"`
}

// Fetch retrieves the latest articles and maps them to the article model.
// NewsAPI has no tag concept, so tags come from matching well-known crypto
// terms against the title and description.
func (s *NewsAPISource) Fetch(ctx context.Context) ([]model.Article, error) {
	separator := "?"
	if strings.Contains(s.baseURL, "?") {
		separator = "&"
	}
	apiURL := s.baseURL + separator + "apiKey=" + url.QueryEscape(s.apiKey)

	req, err := http.NewRequestWithContext(ctx, "GET", apiURL, nil)
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

	var payload newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	now := time.Now().UTC()
	articles := make([]model.Article, 0, len(payload.Articles))
	for _, item := range payload.Articles {
		sourceName := item.Source.Name
		if sourceName == "" {
			sourceName = "NewsAPI"
		}

		summary := sanitizeText(item.Description)
		if summary == "" {
			summary = "No description available"
		}

		articles = append(articles, model.Article{
			Title:       sanitizeText(item.Title),
			Source:      sourceName,
			SourceURL:   item.URL,
			PublishedAt: parseDate(item.PublishedAt),
			Summary:     summary,
			Content:     item.Content,
			ImageURL:    item.URLToImage,
			Tags:        matchCryptoTags(item.Title + " " + item.Description),
			FetchedAt:   now,
		})
	}

	return articles, nil
}
