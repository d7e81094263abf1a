package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cryptolens/cryptolens/internal/model"
)

type activityRepo struct {
	db *sql.DB
}

func (r *activityRepo) Record(ctx context.Context, activity model.Activity) error {
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now().UTC()
	}
	metadata := []byte("{}")
	if activity.Metadata != nil {
		var err error
		metadata, err = json.Marshal(activity.Metadata)
		if err != nil {
			return fmt.Errorf("marshaling activity metadata: %w", err)
		}
	}

	var articleID any
	if activity.ArticleID != "" {
		articleID = activity.ArticleID
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_activity (user_id, activity_type, article_id, metadata, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		activity.UserID, activity.Type, articleID, string(metadata), activity.CreatedAt)
	if err != nil {
		return fmt.Errorf("recording activity: %w", err)
	}
	return nil
}
