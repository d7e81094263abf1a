// Package gcs archives raw fetch batches in Google Cloud Storage as JSON
// objects, one per fetch run and source.
package gcs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"github.com/cryptolens/cryptolens/internal/model"
)

// Archive stores fetch batches under archive/<date>/<source>-<unix>.json.
type Archive struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewArchive creates an archive writer for the given bucket.
func NewArchive(ctx context.Context, bucket string) (*Archive, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}

	return &Archive{
		client: client,
		bucket: bucket,
		prefix: "archive/",
	}, nil
}

type archiveBatch struct {
	Source    string          `json:"source"`
	FetchedAt time.Time       `json:"fetched_at"`
	Count     int             `json:"count"`
	Articles  []model.Article `json:"articles"`
}

// Store writes one fetch batch as a JSON object.
func (a *Archive) Store(ctx context.Context, source string, articles []model.Article) error {
	now := time.Now().UTC()
	objectName := fmt.Sprintf("%s%s/%s-%d.json", a.prefix, now.Format("2006-01-02"), source, now.Unix())

	batch := archiveBatch{
		Source:    source,
		FetchedAt: now,
		Count:     len(articles),
		Articles:  articles,
	}
	data, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("marshaling archive batch: %w", err)
	}

	writer := a.client.Bucket(a.bucket).Object(objectName).NewWriter(ctx)
	writer.ContentType = "application/json"

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return fmt.Errorf("writing object data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("closing object writer: %w", err)
	}

	return nil
}

// List returns up to limit archived object names.
func (a *Archive) List(ctx context.Context, limit int) ([]string, error) {
	it := a.client.Bucket(a.bucket).Objects(ctx, &storage.Query{Prefix: a.prefix})

	var names []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("listing objects: %w", err)
		}

		names = append(names, attrs.Name)
		if limit > 0 && len(names) >= limit {
			break
		}
	}

	return names, nil
}

// Close releases the storage client.
func (a *Archive) Close() error {
	return a.client.Close()
}
