// Package migrations embeds the goose migrations of the local layer
// container and of the Web GIS server store.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed container/*.sql server/*.sql
var embedMigrations embed.FS

var ErrNilDB = errors.New("db is nil")

// MigrateContainer brings a layer container (SQLite) to the latest schema.
func MigrateContainer(ctx context.Context, db *sql.DB) error {
	return migrate(ctx, db, goose.DialectSQLite3, "container")
}

// MigrateServer brings the server store to the latest schema. dialect is
// goose.DialectPostgres or goose.DialectSQLite3.
func MigrateServer(ctx context.Context, db *sql.DB, dialect goose.Dialect) error {
	return migrate(ctx, db, dialect, "server")
}

func migrate(ctx context.Context, db *sql.DB, dialect goose.Dialect, dir string) error {
	if db == nil {
		return fmt.Errorf("migration error: %w", ErrNilDB)
	}

	fsys, err := fs.Sub(embedMigrations, dir)
	if err != nil {
		return fmt.Errorf("migration error opening %s migrations: %w", dir, err)
	}

	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return fmt.Errorf("migration error creating provider: %w", err)
	}

	if _, err = provider.Up(ctx); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
