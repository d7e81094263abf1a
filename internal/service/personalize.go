package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/cryptolens/cryptolens/internal/model"
	"github.com/cryptolens/cryptolens/internal/relevance"
	"github.com/cryptolens/cryptolens/internal/repository"
)

// PersonalizeService builds relevance-ranked feeds for users.
type PersonalizeService struct {
	profiles repository.ProfileRepository
	articles repository.ArticleRepository
	scorer   *relevance.Scorer
	limit    int
}

// NewPersonalizeService creates a personalize service reading up to limit
// recent articles per feed request.
func NewPersonalizeService(profiles repository.ProfileRepository, articles repository.ArticleRepository, scorer *relevance.Scorer, limit int) *PersonalizeService {
	return &PersonalizeService{
		profiles: profiles,
		articles: articles,
		scorer:   scorer,
		limit:    limit,
	}
}

// Feed scores the most recent articles against the user's vocabulary and
// returns them ranked by relevance. A user without a profile gets the
// unpersonalized recent articles with zero scores.
func (s *PersonalizeService) Feed(ctx context.Context, userID string) ([]model.Article, error) {
	var vocabulary []string

	profile, err := s.profiles.Get(ctx, userID)
	switch {
	case err == nil:
		vocabulary = relevance.BuildVocabulary(*profile)
	case errors.Is(err, repository.ErrNotFound):
		// Keep an empty vocabulary.
	default:
		return nil, fmt.Errorf("loading profile: %w", err)
	}

	articles, err := s.articles.Recent(ctx, s.limit)
	if err != nil {
		return nil, fmt.Errorf("loading articles: %w", err)
	}

	return s.scorer.Score(vocabulary, articles), nil
}
