package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/cryptolens/cryptolens/internal/repository"
)

// Store wraps the SQLite database and hands out repository implementations.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and bootstraps the schema.
// Use ":memory:" for tests.
func Open(path string) (*Store, error) {
	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS news_articles (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		source TEXT NOT NULL,
		source_url TEXT NOT NULL DEFAULT '',
		published_date DATETIME NOT NULL,
		fetch_date DATETIME NOT NULL,
		summary TEXT NOT NULL DEFAULT '',
		content TEXT NOT NULL DEFAULT '',
		image_url TEXT NOT NULL DEFAULT '',
		tags TEXT NOT NULL DEFAULT '[]',
		UNIQUE(title, source)
	);
	CREATE INDEX IF NOT EXISTS idx_articles_published ON news_articles(published_date DESC);

	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS profiles (
		id TEXT PRIMARY KEY REFERENCES users(id),
		email TEXT NOT NULL DEFAULT '',
		interests TEXT NOT NULL DEFAULT '[]',
		market_preference TEXT NOT NULL DEFAULT 'crypto',
		extracted_keywords TEXT NOT NULL DEFAULT '[]',
		competitors TEXT NOT NULL DEFAULT '[]',
		professional_context TEXT NOT NULL DEFAULT '{}',
		onboarding_completed INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS saved_articles (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		article_id TEXT NOT NULL REFERENCES news_articles(id),
		folder_id TEXT,
		saved_at DATETIME NOT NULL,
		is_read INTEGER NOT NULL DEFAULT 0,
		notes TEXT NOT NULL DEFAULT '',
		UNIQUE(user_id, article_id)
	);

	CREATE TABLE IF NOT EXISTS folders (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		name TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS user_activity (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL,
		activity_type TEXT NOT NULL,
		article_id TEXT,
		metadata TEXT NOT NULL DEFAULT '{}',
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS reset_tokens (
		token TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		expires_at DATETIME NOT NULL,
		used INTEGER NOT NULL DEFAULT 0
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Articles returns the article repository backed by this store.
func (s *Store) Articles() repository.ArticleRepository {
	return &articleRepo{db: s.db}
}

// Profiles returns the profile repository backed by this store.
func (s *Store) Profiles() repository.ProfileRepository {
	return &profileRepo{db: s.db}
}

// Users returns the user repository backed by this store.
func (s *Store) Users() repository.UserRepository {
	return &userRepo{db: s.db}
}

// SavedArticles returns the saved-article repository backed by this store.
func (s *Store) SavedArticles() repository.SavedArticleRepository {
	return &savedRepo{db: s.db}
}

// Folders returns the folder repository backed by this store.
func (s *Store) Folders() repository.FolderRepository {
	return &folderRepo{db: s.db}
}

// Activity returns the activity repository backed by this store.
func (s *Store) Activity() repository.ActivityRepository {
	return &activityRepo{db: s.db}
}

// ResetTokens returns the reset-token repository backed by this store.
func (s *Store) ResetTokens() repository.ResetTokenRepository {
	return &resetTokenRepo{db: s.db}
}
