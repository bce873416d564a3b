// Package repositories opens the local cache database and wires up the
// per-table repositories on top of it.
package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"socialctl/internal/client/migrations"
	"socialctl/internal/client/repositories/metadata"
	"socialctl/internal/client/repositories/viewurls"
	"socialctl/internal/dbx"
)

// Repositories bundles the local cache stores.
type Repositories struct {
	Metadata metadata.Repository
	ViewURLs viewurls.Repository
	DB       *sql.DB
}

// RunMigrations applies the embedded schema. Idempotent.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (or creates) the cache at dsn, migrates it and returns
// the repositories. The caller owns DB and closes it on shutdown.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate cache db: %w", err)
	}

	return &Repositories{
		Metadata: metadata.NewSQLiteRepository(db),
		ViewURLs: viewurls.NewSQLiteRepository(db),
		DB:       db,
	}, nil
}

// ClearAll wipes every cache table in one transaction. Used on logout so a
// following login never sees another account's leftovers.
func (r *Repositories) ClearAll(ctx context.Context) error {
	return dbx.WithTx(ctx, r.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := metadata.NewSQLiteRepository(tx).Clear(ctx); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM view_urls`)
		return err
	})
}
