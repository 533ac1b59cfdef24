package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/MKhiriev/go-geo-sync/internal/logger"
	"github.com/MKhiriev/go-geo-sync/migrations"
)

// NewConnectPostgres opens a PostgreSQL pool through the pgx stdlib driver.
func NewConnectPostgres(ctx context.Context, dsn string, log *logger.Logger) (*DB, error) {
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error occurred during database connection")
		return nil, fmt.Errorf("error occurred during database connection: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(4)

	if err = conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error connecting database (ping)")
		return nil, err
	}
	log.Info().Str("func", "NewConnectPostgres").Msg("connected to database successfully")

	return &DB{
		DB:                 conn,
		errorClassificator: NewPostgresErrorClassifier(),
		builder:            sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		logger:             log,
	}, nil
}

// IsPostgresDSN reports whether dsn selects PostgreSQL.
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// NewServerDB opens and migrates the Web GIS store. PostgreSQL DSNs use pgx,
// anything else is treated as a SQLite file path.
func NewServerDB(ctx context.Context, dsn string, log *logger.Logger) (*DB, error) {
	var (
		db      *DB
		dialect goose.Dialect
		err     error
	)

	if IsPostgresDSN(dsn) {
		db, err = NewConnectPostgres(ctx, dsn, log)
		dialect = goose.DialectPostgres
	} else {
		db, err = NewConnectSQLite(ctx, dsn, false, log)
		dialect = goose.DialectSQLite3
	}
	if err != nil {
		return nil, err
	}

	if err = migrations.MigrateServer(ctx, db.DB, dialect); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return db, nil
}
