// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"
	"unicode/utf8"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-geo-sync/internal/codec"
	"github.com/MKhiriev/go-geo-sync/internal/logger"
	"github.com/MKhiriev/go-geo-sync/internal/utils"
	"github.com/MKhiriev/go-geo-sync/migrations"
	"github.com/MKhiriev/go-geo-sync/models"
)

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// errNoChanges rolls back a transaction that turned out to have nothing to
// write. It never leaves the package.
var errNoChanges = errors.New("no changes")

// ReasonSessionInterrupted is the status reason left on a replica whose
// previous process stopped while a sync session was running.
const ReasonSessionInterrupted = "session interrupted"

// Container is the SQLite-backed [ContainerStore] of one layer. The file
// embeds its layer id, replica source id, schema, fingerprint and version
// counters, so it is self-describing after a restart.
type Container struct {
	*DB
	path    string
	layerID string
	logger  *logger.Logger
}

// OpenOrCreate opens the container at path, creating and migrating it when
// needed. A new container gets a fresh source id and status NotInitialized.
func OpenOrCreate(ctx context.Context, path, layerID string, log *logger.Logger) (*Container, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("error creating container directory: %w", err)
	}

	db, err := openContainerDB(ctx, path, false, log)
	if err != nil {
		return nil, err
	}

	c := &Container{DB: db, path: path, layerID: layerID, logger: log}
	if err = c.ensureReplica(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err = c.recoverInterruptedSession(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	log.Info().Str("func", "OpenOrCreate").Str("layer_id", layerID).Str("path", path).Msg("container opened")
	return c, nil
}

// Open opens an existing container. A missing file yields
// [ErrContainerNotFound]; an unreadable one [ErrContainerCorrupt].
func Open(ctx context.Context, path string, log *logger.Logger) (*Container, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrContainerNotFound, path)
		}
		return nil, fmt.Errorf("error reading container file: %w", err)
	}

	db, err := openContainerDB(ctx, path, true, log)
	if err != nil {
		return nil, err
	}

	var layerID string
	if err = db.QueryRowContext(ctx, selectReplicaLayerID).Scan(&layerID); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %s: %w", ErrContainerCorrupt, path, err)
	}

	c := &Container{DB: db, path: path, layerID: layerID, logger: log}
	if err = c.recoverInterruptedSession(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return c, nil
}

func openContainerDB(ctx context.Context, path string, mustExist bool, log *logger.Logger) (*DB, error) {
	db, err := NewConnectSQLite(ctx, path, mustExist, log)
	if err != nil {
		if isCorruption(err) {
			return nil, fmt.Errorf("%w: %s: %w", ErrContainerCorrupt, path, err)
		}
		return nil, err
	}

	var tables int
	if err = db.QueryRowContext(ctx, checkSQLiteReadable).Scan(&tables); err != nil {
		_ = db.Close()
		if isCorruption(err) {
			return nil, fmt.Errorf("%w: %s: %w", ErrContainerCorrupt, path, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if err = migrations.MigrateContainer(ctx, db.DB); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("container migration failed: %w", err)
	}
	return db, nil
}

func (c *Container) ensureReplica(ctx context.Context) error {
	sourceID := utils.NewUUIDGenerator().Generate()
	if _, err := c.ExecContext(ctx, insertReplicaIfMissing, c.layerID, sourceID, models.StatusNotInitialized.String()); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	var stored string
	if err := c.QueryRowContext(ctx, selectReplicaLayerID).Scan(&stored); err != nil {
		return fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	if stored != c.layerID {
		return fmt.Errorf("%w: file holds %q, requested %q", ErrLayerMismatch, stored, c.layerID)
	}
	return nil
}

// recoverInterruptedSession moves a persisted Synchronizing status to Error.
// A freshly opened container has no session running, so Synchronizing can
// only be left over from a process that stopped mid-session.
func (c *Container) recoverInterruptedSession(ctx context.Context) error {
	res, err := c.ExecContext(ctx, recoverStatus,
		models.StatusError.String(),
		ReasonSessionInterrupted,
		models.StatusSynchronizing.String(),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		c.logger.Warn().Str("func", "*Container.recoverInterruptedSession").
			Str("layer_id", c.layerID).
			Msg("previous sync session was interrupted")
	}
	return nil
}

func (c *Container) LayerID() string { return c.layerID }
func (c *Container) Path() string    { return c.path }

func (c *Container) Replica(ctx context.Context) (models.LayerReplica, error) {
	rep, err := readReplica(ctx, c.DB)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*Container.Replica").Str("layer_id", c.layerID).Msg("failed to read replica")
	}
	return rep, err
}

func (c *Container) ReadSchema(ctx context.Context) (models.SchemaInfo, error) {
	rep, err := readReplica(ctx, c.DB)
	if err != nil {
		return models.SchemaInfo{}, err
	}
	return models.SchemaInfo{LayerID: rep.LayerID, Schema: rep.Schema, Fingerprint: rep.SchemaFingerprint}, nil
}

func (c *Container) Feature(ctx context.Context, id string) (models.FeatureRecord, error) {
	row, ok, err := loadFeature(ctx, c.DB, id)
	if err != nil {
		return models.FeatureRecord{}, err
	}
	if !ok || row.deleted {
		return models.FeatureRecord{}, fmt.Errorf("%w: %s", ErrFeatureNotFound, id)
	}
	return row.record(), nil
}

func readReplica(ctx context.Context, q queryer) (models.LayerReplica, error) {
	var (
		rep          models.LayerReplica
		status       string
		lastSyncedAt int64
	)

	err := q.QueryRowContext(ctx, selectReplica).Scan(
		&rep.LayerID,
		&rep.SourceID,
		&rep.Schema.GeometryType,
		&rep.SchemaFingerprint,
		&rep.LocalVersion,
		&rep.RemoteVersion,
		&rep.Versioning.Epoch,
		&rep.Versioning.Enabled,
		&status,
		&rep.StatusReason,
		&lastSyncedAt,
		&rep.PendingCount,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.LayerReplica{}, fmt.Errorf("%w: replica row missing", ErrContainerCorrupt)
		}
		return models.LayerReplica{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	var ok bool
	if rep.Status, ok = models.ParseSyncStatus(status); !ok {
		return models.LayerReplica{}, fmt.Errorf("%w: unknown status %q", ErrContainerCorrupt, status)
	}
	if lastSyncedAt > 0 {
		rep.LastSyncedAt = time.Unix(0, lastSyncedAt).UTC()
	}

	rows, err := q.QueryContext(ctx, selectSchemaColumns)
	if err != nil {
		return models.LayerReplica{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var col models.Column
		if err = rows.Scan(&col.Name, &col.Type); err != nil {
			return models.LayerReplica{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		rep.Schema.Columns = append(rep.Schema.Columns, col)
	}
	if err = rows.Err(); err != nil {
		return models.LayerReplica{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return rep, nil
}

func (c *Container) ListPendingLocalDeltas(ctx context.Context) ([]models.DeltaRecord, error) {
	log := logger.FromContext(ctx)

	rows, err := c.QueryContext(ctx, selectPendingDeltas)
	if err != nil {
		log.Err(err).Str("func", "*Container.ListPendingLocalDeltas").Msg("failed to query pending deltas")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	return scanDeltas(rows)
}

func scanDeltas(rows *sql.Rows) ([]models.DeltaRecord, error) {
	deltas := make([]models.DeltaRecord, 0, 16)
	for rows.Next() {
		var (
			d       models.DeltaRecord
			payload []byte
		)
		if err := rows.Scan(&d.Seq, &d.Op, &d.FeatureID, &payload, &d.Origin); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		if payload != nil {
			values, err := codec.DecodeValues(payload)
			if err != nil {
				return nil, fmt.Errorf("%w: pending delta %d: %w", ErrDecodingValues, d.Seq, err)
			}
			d.Values = values
		}
		deltas = append(deltas, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return deltas, nil
}

func (c *Container) RecordLocalEdit(ctx context.Context, delta models.DeltaRecord) (models.DeltaRecord, error) {
	log := logger.FromContext(ctx)

	if !delta.Op.Valid() || delta.FeatureID == "" || !utf8.ValidString(delta.FeatureID) {
		return models.DeltaRecord{}, fmt.Errorf("%w: op %s feature %q", ErrInvalidDelta, delta.Op, delta.FeatureID)
	}
	if delta.Op == models.OperationDelete {
		delta.Values = nil
	}

	err := c.withTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		rep, err := readReplica(ctx, tx)
		if err != nil {
			return err
		}
		if !rep.Initialized() {
			return ErrReplicaNotInitialized
		}

		row, exists, err := loadFeature(ctx, tx, delta.FeatureID)
		if err != nil {
			return err
		}

		switch delta.Op {
		case models.OperationInsert:
			if exists {
				return fmt.Errorf("%w: %s", ErrFeatureExists, delta.FeatureID)
			}
			row = featureRow{id: delta.FeatureID, values: mergeValues(nil, delta.Values)}
		case models.OperationUpdate:
			if !exists || row.deleted {
				return fmt.Errorf("%w: %s", ErrFeatureNotFound, delta.FeatureID)
			}
			row.values = mergeValues(row.values, delta.Values)
		case models.OperationDelete:
			if !exists || row.deleted {
				return fmt.Errorf("%w: %s", ErrFeatureNotFound, delta.FeatureID)
			}
			row.deleted = true
		}

		var payload []byte
		if delta.Op != models.OperationDelete {
			if payload, err = codec.EncodeValues(delta.Values); err != nil {
				return fmt.Errorf("%w: %w", ErrEncodingValues, err)
			}
		}

		res, err := tx.ExecContext(ctx, insertPendingDelta, delta.Op, delta.FeatureID, payload, rep.SourceID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if delta.Seq, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		delta.Origin = rep.SourceID

		row.revision = delta.Seq
		if err = saveFeature(ctx, tx, row); err != nil {
			return err
		}

		if _, err = tx.ExecContext(ctx, bumpLocalVersion, 1); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*Container.RecordLocalEdit").
			Str("layer_id", c.layerID).
			Str("feature_id", delta.FeatureID).
			Stringer("op", delta.Op).
			Msg("failed to record local edit")
		return models.DeltaRecord{}, err
	}

	return delta, nil
}

func (c *Container) MarkUploaded(ctx context.Context, acks []models.UploadAck) error {
	if len(acks) == 0 {
		return nil
	}
	log := logger.FromContext(ctx)

	seqs := make([]int64, 0, len(acks))
	remoteIDs := make(map[int64]string, len(acks))
	for _, a := range acks {
		seqs = append(seqs, a.Seq)
		remoteIDs[a.Seq] = a.RemoteID
	}
	slices.Sort(seqs)

	err := c.withTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		query, args, err := c.builder.
			Select("seq", "op", "fid", "payload", "origin").
			From("pending_deltas").
			Where(sq.Eq{"seq": seqs}).
			OrderBy("seq").
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		rows, err := tx.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		acked, err := scanDeltas(rows)
		rows.Close()
		if err != nil {
			return err
		}

		touched := make([]string, 0, len(acked))
		for _, d := range acked {
			row, ok, err := loadFeature(ctx, tx, d.FeatureID)
			if err != nil {
				return err
			}
			if ok {
				switch d.Op {
				case models.OperationInsert:
					row.base, row.hasBase = mergeValues(nil, d.Values), true
				case models.OperationUpdate:
					row.base, row.hasBase = mergeValues(row.base, d.Values), true
				case models.OperationDelete:
					row.base, row.hasBase = nil, false
				}
				if id := remoteIDs[d.Seq]; id != "" {
					row.remoteID = id
				}
				if err = saveFeature(ctx, tx, row); err != nil {
					return err
				}
			}
			if !slices.Contains(touched, d.FeatureID) {
				touched = append(touched, d.FeatureID)
			}
		}

		if _, err = execBuilt(ctx, tx, c.builder.Delete("pending_deltas").Where(sq.Eq{"seq": seqs})); err != nil {
			return err
		}

		for _, fid := range touched {
			if err = refreshRevision(ctx, tx, fid); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*Container.MarkUploaded").
			Str("layer_id", c.layerID).
			Int("acks", len(acks)).
			Msg("failed to mark deltas uploaded")
	}
	return err
}

func (c *Container) LoadSnapshot(ctx context.Context, snapshot models.Snapshot) error {
	log := logger.FromContext(ctx)

	err := c.withTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		rep, err := readReplica(ctx, tx)
		if err != nil {
			return err
		}
		if rep.PendingCount > 0 {
			return fmt.Errorf("%w: %d", ErrPendingEdits, rep.PendingCount)
		}
		if snapshot.Version < rep.RemoteVersion {
			return fmt.Errorf("%w: snapshot %d, replica %d", ErrVersionRegressed, snapshot.Version, rep.RemoteVersion)
		}

		for _, stmt := range []string{purgeFeatures, purgeSchemaColumns} {
			if _, err = tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
		}

		for i, col := range snapshot.Schema.Columns {
			if _, err = tx.ExecContext(ctx, insertSchemaColumn, i, col.Name, col.Type); err != nil {
				return fmt.Errorf("%w: column %s: %w", ErrExecutingStatement, col.Name, err)
			}
		}

		for _, f := range snapshot.Features {
			if err = saveFeature(ctx, tx, rowFromRecord(f)); err != nil {
				return err
			}
		}

		if _, err = tx.ExecContext(ctx, loadSnapshotMeta,
			snapshot.Schema.GeometryType,
			snapshot.Fingerprint,
			snapshot.Version,
			snapshot.Version,
			snapshot.Versioning.Epoch,
			snapshot.Versioning.Enabled,
		); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*Container.LoadSnapshot").Str("layer_id", c.layerID).Msg("failed to load snapshot")
		return err
	}

	log.Info().Str("func", "*Container.LoadSnapshot").
		Str("layer_id", c.layerID).
		Int64("version", snapshot.Version).
		Int("features", len(snapshot.Features)).
		Msg("snapshot loaded")
	return nil
}

func (c *Container) CommitSession(ctx context.Context, commit models.SessionCommit) error {
	return c.withTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		rep, err := readReplica(ctx, tx)
		if err != nil {
			return err
		}
		if _, err = rep.Status.Transition(models.StatusSynchronized); err != nil {
			return err
		}

		if _, err = tx.ExecContext(ctx, commitSession,
			commit.RemoteVersion,
			commit.Versioning.Epoch,
			commit.Versioning.Enabled,
			models.StatusSynchronized.String(),
			time.Now().UnixNano(),
		); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		return nil
	})
}

func (c *Container) SetStatus(ctx context.Context, status models.SyncStatus, reason string) error {
	return c.withTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		rep, err := readReplica(ctx, tx)
		if err != nil {
			return err
		}
		if _, err = rep.Status.Transition(status); err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx, updateStatus, status.String(), reason); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		return nil
	})
}

func (c *Container) Purge(ctx context.Context) error {
	err := c.withTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		for _, stmt := range []string{purgePendingDeltas, purgeFeatures, purgeSchemaColumns} {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
		}
		if _, err := tx.ExecContext(ctx, purgeReplicaSchema, models.StatusNotSynchronized.String()); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*Container.Purge").Str("layer_id", c.layerID).Msg("failed to purge container")
	}
	return err
}
