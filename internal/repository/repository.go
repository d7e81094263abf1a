package repository

import (
	"context"
	"errors"
	"time"

	"github.com/cryptolens/cryptolens/internal/model"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a unique constraint is violated.
var ErrDuplicate = errors.New("already exists")

// ArticleRepository stores ingested news articles. InsertIfNew deduplicates on
// (title, source) and reports whether the article was actually inserted.
type ArticleRepository interface {
	InsertIfNew(ctx context.Context, article model.Article) (bool, error)
	Recent(ctx context.Context, limit int) ([]model.Article, error)
	GetByID(ctx context.Context, id string) (*model.Article, error)
	Count(ctx context.Context) (int, error)
}

// ProfileRepository stores onboarding profiles keyed by user id.
type ProfileRepository interface {
	Get(ctx context.Context, userID string) (*model.UserProfile, error)
	Upsert(ctx context.Context, profile model.UserProfile) error
	UpdateKeywords(ctx context.Context, userID string, keywords []string) error
}

// UserRepository stores account credentials.
type UserRepository interface {
	Create(ctx context.Context, user model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

// SavedArticleRepository stores per-user bookmarks.
type SavedArticleRepository interface {
	Save(ctx context.Context, saved model.SavedArticle) (*model.SavedArticle, error)
	ListByUser(ctx context.Context, userID string) ([]model.SavedArticle, error)
	MarkRead(ctx context.Context, userID, savedID string) error
	Delete(ctx context.Context, userID, savedID string) error
}

// FolderRepository stores per-user saved-article folders.
type FolderRepository interface {
	Create(ctx context.Context, folder model.Folder) (*model.Folder, error)
	ListByUser(ctx context.Context, userID string) ([]model.Folder, error)
}

// ActivityRepository records analytics events, best effort.
type ActivityRepository interface {
	Record(ctx context.Context, activity model.Activity) error
}

// ResetTokenRepository stores single-use password reset tokens.
type ResetTokenRepository interface {
	Create(ctx context.Context, userID string, ttl time.Duration) (string, error)
	Consume(ctx context.Context, token string) (string, error)
}

// ArchiveRepository persists raw fetch batches for replay and debugging.
type ArchiveRepository interface {
	Store(ctx context.Context, source string, articles []model.Article) error
	List(ctx context.Context, limit int) ([]string, error)
	Close() error
}
