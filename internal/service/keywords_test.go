package service

import (
	"context"
	"errors"
	"testing"

	"github.com/cryptolens/cryptolens/internal/keyword"
	"github.com/cryptolens/cryptolens/internal/mocks"
	"github.com/cryptolens/cryptolens/internal/model"
)

func TestExtractAndStoreUpdatesProfile(t *testing.T) {
	profiles := &mocks.MockProfileRepo{
		Profiles: map[string]model.UserProfile{"user-1": {ID: "user-1"}},
	}
	svc := NewKeywordService(keyword.NewExtractor(0, 0), profiles)

	keywords, updated := svc.ExtractAndStore(context.Background(), "user-1", "bitcoin bitcoin ethereum markets")
	if len(keywords) == 0 || keywords[0] != "bitcoin" {
		t.Fatalf("Unexpected keywords: %v", keywords)
	}
	if !updated {
		t.Error("Expected profile reported as updated")
	}

	stored := profiles.Profiles["user-1"].ExtractedKeywords
	if len(stored) != len(keywords) {
		t.Errorf("Expected keywords stored on profile, got %v", stored)
	}
}

func TestExtractAndStoreReturnsKeywordsOnUpdateFailure(t *testing.T) {
	profiles := &mocks.MockProfileRepo{
		UpdateKeywordsFunc: func(ctx context.Context, userID string, keywords []string) error {
			return errors.New("database locked")
		},
	}
	svc := NewKeywordService(keyword.NewExtractor(0, 0), profiles)

	keywords, updated := svc.ExtractAndStore(context.Background(), "user-1", "blockchain adoption accelerates")
	if len(keywords) == 0 {
		t.Error("Expected keywords even when profile update fails")
	}
	if updated {
		t.Error("Expected profile reported as not updated on failure")
	}
}

func TestExtractAndStoreEmptyText(t *testing.T) {
	profiles := &mocks.MockProfileRepo{
		UpdateKeywordsFunc: func(ctx context.Context, userID string, keywords []string) error {
			t.Error("Expected no profile update for empty extraction")
			return nil
		},
	}
	svc := NewKeywordService(keyword.NewExtractor(0, 0), profiles)

	keywords, updated := svc.ExtractAndStore(context.Background(), "user-1", "the and or")
	if len(keywords) != 0 {
		t.Errorf("Expected no keywords, got %v", keywords)
	}
	if updated {
		t.Error("Expected no profile update for empty extraction")
	}
}
