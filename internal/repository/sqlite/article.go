package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cryptolens/cryptolens/internal/model"
	"github.com/cryptolens/cryptolens/internal/repository"
)

type articleRepo struct {
	db *sql.DB
}

func (r *articleRepo) InsertIfNew(ctx context.Context, article model.Article) (bool, error) {
	if article.ID == "" {
		article.ID = uuid.NewString()
	}
	if article.FetchedAt.IsZero() {
		article.FetchedAt = time.Now().UTC()
	}
	tagsJSON, err := json.Marshal(article.Tags)
	if err != nil {
		return false, fmt.Errorf("marshaling tags: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO news_articles
			(id, title, source, source_url, published_date, fetch_date, summary, content, image_url, tags)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(title, source) DO NOTHING`,
		article.ID, article.Title, article.Source, article.SourceURL,
		article.PublishedAt.UTC(), article.FetchedAt.UTC(),
		article.Summary, article.Content, article.ImageURL, string(tagsJSON),
	)
	if err != nil {
		return false, fmt.Errorf("inserting article: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *articleRepo) Recent(ctx context.Context, limit int) ([]model.Article, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, source, source_url, published_date, fetch_date, summary, content, image_url, tags
		FROM news_articles
		ORDER BY published_date DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent articles: %w", err)
	}
	defer rows.Close()

	var articles []model.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, *a)
	}
	return articles, rows.Err()
}

func (r *articleRepo) GetByID(ctx context.Context, id string) (*model.Article, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, source, source_url, published_date, fetch_date, summary, content, image_url, tags
		FROM news_articles WHERE id = ?`, id)
	a, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return a, err
}

func (r *articleRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM news_articles`).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (*model.Article, error) {
	var a model.Article
	var tagsJSON string
	err := row.Scan(&a.ID, &a.Title, &a.Source, &a.SourceURL,
		&a.PublishedAt, &a.FetchedAt, &a.Summary, &a.Content, &a.ImageURL, &tagsJSON)
	if err != nil {
		return nil, err
	}
	unmarshalTags(tagsJSON, &a)
	return &a, nil
}

// unmarshalTags tolerates malformed stored tags rather than failing the read.
func unmarshalTags(tagsJSON string, a *model.Article) {
	if err := json.Unmarshal([]byte(tagsJSON), &a.Tags); err != nil {
		a.Tags = nil
	}
}
