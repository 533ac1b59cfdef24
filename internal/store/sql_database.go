package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-geo-sync/internal/logger"
)

// ErrorClassificator decides whether a failed database call may be retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// DB is a database handle together with its driver-specific error
// classifier and statement builder.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	builder            sq.StatementBuilderType
	logger             *logger.Logger
}

// Retryable reports whether err is a transient driver failure.
func (db *DB) Retryable(err error) bool {
	return db.errorClassificator != nil && db.errorClassificator.Classify(err) == Retryable
}

// withTx runs fn inside one transaction. A started transaction runs to
// completion even if ctx is cancelled meanwhile: cancellation is observed
// between transactions, never inside one.
func (db *DB) withTx(ctx context.Context, fn func(ctx context.Context, tx *sql.Tx) error) error {
	ctx = context.WithoutCancel(ctx)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	if err = fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			db.logger.Err(rbErr).Str("func", "*DB.withTx").Msg("rollback failed")
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return nil
}

// execBuilt runs a squirrel statement on tx.
func execBuilt(ctx context.Context, tx *sql.Tx, stmt sq.Sqlizer) (sql.Result, error) {
	query, args, err := stmt.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return res, nil
}
