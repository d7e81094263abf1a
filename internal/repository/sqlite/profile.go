package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cryptolens/cryptolens/internal/model"
	"github.com/cryptolens/cryptolens/internal/repository"
)

type profileRepo struct {
	db *sql.DB
}

func (r *profileRepo) Get(ctx context.Context, userID string) (*model.UserProfile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, email, interests, market_preference, extracted_keywords,
		       competitors, professional_context, onboarding_completed, created_at, updated_at
		FROM profiles WHERE id = ?`, userID)

	var p model.UserProfile
	var interests, keywords, competitors, professional string
	err := row.Scan(&p.ID, &p.Email, &interests, &p.MarketPreference, &keywords,
		&competitors, &professional, &p.OnboardingCompleted, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying profile: %w", err)
	}

	json.Unmarshal([]byte(interests), &p.Interests)
	json.Unmarshal([]byte(keywords), &p.ExtractedKeywords)
	json.Unmarshal([]byte(competitors), &p.Competitors)
	json.Unmarshal([]byte(professional), &p.Professional)
	return &p, nil
}

func (r *profileRepo) Upsert(ctx context.Context, profile model.UserProfile) error {
	now := time.Now().UTC()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	interests, _ := json.Marshal(emptyIfNil(profile.Interests))
	keywords, _ := json.Marshal(emptyIfNil(profile.ExtractedKeywords))
	competitors, _ := json.Marshal(emptyIfNil(profile.Competitors))
	professional, err := json.Marshal(profile.Professional)
	if err != nil {
		return fmt.Errorf("marshaling professional context: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO profiles
			(id, email, interests, market_preference, extracted_keywords,
			 competitors, professional_context, onboarding_completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			email = excluded.email,
			interests = excluded.interests,
			market_preference = excluded.market_preference,
			extracted_keywords = excluded.extracted_keywords,
			competitors = excluded.competitors,
			professional_context = excluded.professional_context,
			onboarding_completed = excluded.onboarding_completed,
			updated_at = excluded.updated_at`,
		profile.ID, profile.Email, string(interests), profile.MarketPreference,
		string(keywords), string(competitors), string(professional),
		profile.OnboardingCompleted, profile.CreatedAt, profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upserting profile: %w", err)
	}
	return nil
}

func (r *profileRepo) UpdateKeywords(ctx context.Context, userID string, keywords []string) error {
	data, err := json.Marshal(emptyIfNil(keywords))
	if err != nil {
		return fmt.Errorf("marshaling keywords: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE profiles SET extracted_keywords = ?, updated_at = ? WHERE id = ?`,
		string(data), time.Now().UTC(), userID)
	if err != nil {
		return fmt.Errorf("updating keywords: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
