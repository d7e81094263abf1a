package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cryptolens/cryptolens/internal/model"
)

type folderRepo struct {
	db *sql.DB
}

func (r *folderRepo) Create(ctx context.Context, folder model.Folder) (*model.Folder, error) {
	if folder.ID == "" {
		folder.ID = uuid.NewString()
	}
	if folder.CreatedAt.IsZero() {
		folder.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO folders (id, user_id, name, created_at) VALUES (?, ?, ?, ?)`,
		folder.ID, folder.UserID, folder.Name, folder.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("creating folder: %w", err)
	}
	return &folder, nil
}

func (r *folderRepo) ListByUser(ctx context.Context, userID string) ([]model.Folder, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, name, created_at FROM folders
		WHERE user_id = ? ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying folders: %w", err)
	}
	defer rows.Close()

	var folders []model.Folder
	for rows.Next() {
		var f model.Folder
		if err := rows.Scan(&f.ID, &f.UserID, &f.Name, &f.CreatedAt); err != nil {
			return nil, err
		}
		folders = append(folders, f)
	}
	return folders, rows.Err()
}
