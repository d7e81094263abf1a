package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cryptolens/cryptolens/internal/model"
	"github.com/cryptolens/cryptolens/internal/repository"
)

type savedRepo struct {
	db *sql.DB
}

func (r *savedRepo) Save(ctx context.Context, saved model.SavedArticle) (*model.SavedArticle, error) {
	if saved.ID == "" {
		saved.ID = uuid.NewString()
	}
	if saved.SavedAt.IsZero() {
		saved.SavedAt = time.Now().UTC()
	}

	var folderID any
	if saved.FolderID != "" {
		folderID = saved.FolderID
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO saved_articles (id, user_id, article_id, folder_id, saved_at, is_read, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		saved.ID, saved.UserID, saved.ArticleID, folderID, saved.SavedAt, saved.IsRead, saved.Notes)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return nil, repository.ErrDuplicate
		}
		return nil, fmt.Errorf("saving article: %w", err)
	}
	return &saved, nil
}

func (r *savedRepo) ListByUser(ctx context.Context, userID string) ([]model.SavedArticle, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT s.id, s.user_id, s.article_id, s.folder_id, s.saved_at, s.is_read, s.notes,
		       a.id, a.title, a.source, a.source_url, a.published_date, a.fetch_date,
		       a.summary, a.content, a.image_url, a.tags
		FROM saved_articles s
		JOIN news_articles a ON a.id = s.article_id
		WHERE s.user_id = ?
		ORDER BY s.saved_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying saved articles: %w", err)
	}
	defer rows.Close()

	var saved []model.SavedArticle
	for rows.Next() {
		var s model.SavedArticle
		var folderID sql.NullString
		var a model.Article
		var tagsJSON string
		err := rows.Scan(&s.ID, &s.UserID, &s.ArticleID, &folderID, &s.SavedAt, &s.IsRead, &s.Notes,
			&a.ID, &a.Title, &a.Source, &a.SourceURL, &a.PublishedAt, &a.FetchedAt,
			&a.Summary, &a.Content, &a.ImageURL, &tagsJSON)
		if err != nil {
			return nil, err
		}
		s.FolderID = folderID.String
		unmarshalTags(tagsJSON, &a)
		s.Article = &a
		saved = append(saved, s)
	}
	return saved, rows.Err()
}

func (r *savedRepo) MarkRead(ctx context.Context, userID, savedID string) error {
	return r.execOwned(ctx, `UPDATE saved_articles SET is_read = 1 WHERE id = ? AND user_id = ?`,
		savedID, userID)
}

func (r *savedRepo) Delete(ctx context.Context, userID, savedID string) error {
	return r.execOwned(ctx, `DELETE FROM saved_articles WHERE id = ? AND user_id = ?`,
		savedID, userID)
}

func (r *savedRepo) execOwned(ctx context.Context, query, savedID, userID string) error {
	res, err := r.db.ExecContext(ctx, query, savedID, userID)
	if err != nil {
		return err
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
