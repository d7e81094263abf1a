// Package service implements the application use cases on top of the
// repositories and news sources.
package service

import (
	"context"
	"fmt"
	"log"

	"github.com/cryptolens/cryptolens/internal/repository"
	"github.com/cryptolens/cryptolens/internal/source"
)

// FetchResult summarizes one source fetch.
type FetchResult struct {
	Source   string `json:"source"`
	Fetched  int    `json:"fetched"`
	Inserted int    `json:"inserted"`
	Error    string `json:"error,omitempty"`
}

// IngestService pulls articles from the registered sources into storage.
type IngestService struct {
	registry *source.Registry
	articles repository.ArticleRepository
	archive  repository.ArchiveRepository
}

// NewIngestService creates an ingest service. archive may be nil when no
// archive bucket is configured.
func NewIngestService(registry *source.Registry, articles repository.ArticleRepository, archive repository.ArchiveRepository) *IngestService {
	return &IngestService{
		registry: registry,
		articles: articles,
		archive:  archive,
	}
}

// FetchSource fetches one source by name and stores the new articles.
func (s *IngestService) FetchSource(ctx context.Context, name string) (FetchResult, error) {
	src, ok := s.registry.Get(name)
	if !ok {
		return FetchResult{Source: name}, fmt.Errorf("unknown source: %s", name)
	}
	return s.fetch(ctx, src), nil
}

// FetchAll fetches every registered source. A failing source is reported in
// its result and does not stop the others.
func (s *IngestService) FetchAll(ctx context.Context) []FetchResult {
	results := make([]FetchResult, 0, len(s.registry.All()))
	for _, src := range s.registry.All() {
		results = append(results, s.fetch(ctx, src))
	}
	return results
}

func (s *IngestService) fetch(ctx context.Context, src source.Source) FetchResult {
	result := FetchResult{Source: src.Name()}

	articles, err := src.Fetch(ctx)
	if err != nil {
		log.Printf("Error fetching news from %s: %v", src.Name(), err)
		result.Error = err.Error()
		return result
	}
	result.Fetched = len(articles)

	for _, article := range articles {
		if article.Title == "" {
			continue
		}
		inserted, err := s.articles.InsertIfNew(ctx, article)
		if err != nil {
			log.Printf("Error inserting article %q from %s: %v", article.Title, src.Name(), err)
			continue
		}
		if inserted {
			result.Inserted++
		}
	}

	if s.archive != nil && len(articles) > 0 {
		if err := s.archive.Store(ctx, src.Name(), articles); err != nil {
			// Archiving is best effort; the articles are already stored.
			log.Printf("Error archiving fetch batch for %s: %v", src.Name(), err)
		}
	}

	log.Printf("📰 Fetched %d articles from %s (%d new)", result.Fetched, src.Name(), result.Inserted)
	return result
}
