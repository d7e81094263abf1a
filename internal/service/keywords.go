package service

import (
	"context"
	"log"

	"github.com/cryptolens/cryptolens/internal/keyword"
	"github.com/cryptolens/cryptolens/internal/repository"
)

// KeywordService extracts keywords from user supplied text and stores them
// on the profile.
type KeywordService struct {
	extractor *keyword.Extractor
	profiles  repository.ProfileRepository
}

// NewKeywordService creates a keyword service.
func NewKeywordService(extractor *keyword.Extractor, profiles repository.ProfileRepository) *KeywordService {
	return &KeywordService{
		extractor: extractor,
		profiles:  profiles,
	}
}

// ExtractAndStore extracts keywords from text and stores them on the user's
// profile. The extraction result is returned even when the profile update
// fails, so callers can still show the keywords; the second return reports
// whether the profile was actually updated.
func (s *KeywordService) ExtractAndStore(ctx context.Context, userID, text string) ([]string, bool) {
	keywords := s.extractor.Extract(text)

	if userID == "" || len(keywords) == 0 {
		return keywords, false
	}
	if err := s.profiles.UpdateKeywords(ctx, userID, keywords); err != nil {
		log.Printf("Error updating profile keywords for %s: %v", userID, err)
		return keywords, false
	}
	return keywords, true
}

// Extract extracts keywords without touching any profile.
func (s *KeywordService) Extract(text string) []string {
	return s.extractor.Extract(text)
}
