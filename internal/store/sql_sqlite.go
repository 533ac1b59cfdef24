package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-geo-sync/internal/logger"
)

const sqliteDriver = "sqlite3"

// sqliteDSN builds a go-sqlite3 URI. WAL lets status reads run next to a
// writing session; immediate transactions take the write lock up front so
// concurrent writers wait on busy_timeout instead of failing on upgrade.
func sqliteDSN(path string, mustExist bool) string {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on&_txlock=immediate", path)
	if mustExist {
		dsn += "&mode=rw"
	}
	return dsn
}

// NewConnectSQLite opens a SQLite database file. With mustExist the file is
// not created when missing.
func NewConnectSQLite(ctx context.Context, path string, mustExist bool, log *logger.Logger) (*DB, error) {
	conn, err := sql.Open(sqliteDriver, sqliteDSN(path, mustExist))
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}

	if err = conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		log.Err(err).Str("func", "NewConnectSQLite").Str("path", path).Msg("error connecting database (ping)")
		return nil, err
	}
	log.Debug().Str("func", "NewConnectSQLite").Str("path", path).Msg("connected to database successfully")

	return &DB{
		DB:                 conn,
		errorClassificator: NewSQLiteErrorClassifier(),
		builder:            sq.StatementBuilder.PlaceholderFormat(sq.Question),
		logger:             log,
	}, nil
}

// SQLiteErrorClassifier implements [ErrorClassificator] for go-sqlite3.
type SQLiteErrorClassifier struct{}

func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

// Classify treats lock contention as retryable and everything else as
// permanent.
func (c *SQLiteErrorClassifier) Classify(err error) ErrorClassification {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code {
		case sqlite3.ErrBusy, sqlite3.ErrLocked:
			return Retryable
		}
	}
	return NonRetryable
}

// isCorruption reports whether err means the file is not a usable SQLite
// database.
func isCorruption(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code {
		case sqlite3.ErrCorrupt, sqlite3.ErrNotADB, sqlite3.ErrCantOpen:
			return true
		}
	}
	return false
}
