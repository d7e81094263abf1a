package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cryptolens/cryptolens/internal/repository"
)

type resetTokenRepo struct {
	db *sql.DB
}

func (r *resetTokenRepo) Create(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	token := uuid.NewString()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reset_tokens (token, user_id, expires_at) VALUES (?, ?, ?)`,
		token, userID, time.Now().UTC().Add(ttl))
	if err != nil {
		return "", fmt.Errorf("creating reset token: %w", err)
	}
	return token, nil
}

// Consume marks the token used and returns the owning user id. Expired, used,
// or unknown tokens all report ErrNotFound so callers can't probe for valid
// ones.
func (r *resetTokenRepo) Consume(ctx context.Context, token string) (string, error) {
	var userID string
	var expiresAt time.Time
	var used bool
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, expires_at, used FROM reset_tokens WHERE token = ?`, token).
		Scan(&userID, &expiresAt, &used)
	if errors.Is(err, sql.ErrNoRows) {
		return "", repository.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("querying reset token: %w", err)
	}
	if used || time.Now().UTC().After(expiresAt) {
		return "", repository.ErrNotFound
	}

	if _, err := r.db.ExecContext(ctx, `
		UPDATE reset_tokens SET used = 1 WHERE token = ?`, token); err != nil {
		return "", fmt.Errorf("consuming reset token: %w", err)
	}
	return userID, nil
}
