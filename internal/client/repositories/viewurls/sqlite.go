package viewurls

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"socialctl/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string, now time.Time) (string, bool, error) {
	var url string
	var expiresAt int64
	err := r.db.QueryRowContext(ctx,
		`SELECT url, expires_at FROM view_urls WHERE key = ?`, key).Scan(&url, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get view_urls[%s]: %w", key, err)
	}
	if expiresAt <= now.Unix() {
		return "", false, nil
	}
	return url, true, nil
}

func (r *SQLiteRepository) Put(ctx context.Context, key, url string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO view_urls (key, url, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET url = excluded.url, expires_at = excluded.expires_at
	`, key, url, expiresAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to put view_urls[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Purge(ctx context.Context, now time.Time) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM view_urls WHERE expires_at <= ?`, now.Unix())
	if err != nil {
		return fmt.Errorf("failed to purge view_urls: %w", err)
	}
	return nil
}
