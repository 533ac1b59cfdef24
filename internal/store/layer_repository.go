package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-geo-sync/internal/codec"
	"github.com/MKhiriev/go-geo-sync/internal/logger"
	"github.com/MKhiriev/go-geo-sync/models"
)

// LayerDefinition is a layer declared by server configuration.
type LayerDefinition struct {
	ID                string
	Schema            models.Schema
	Fingerprint       string
	VersioningEnabled bool
}

// LayerState is the stored head of a layer.
type LayerState struct {
	Info         models.SchemaInfo
	Versioning   models.VersioningState
	Version      int64
	HistoryFloor int64
}

// Reasons attached to rejected upload records.
const (
	RejectFeatureExists   = "feature already exists"
	RejectFeatureNotFound = "feature not found"
	RejectConcurrentEdit  = "feature was modified after base by another source"
)

// layerRepository is the SQL implementation of [LayerRepository]. The same
// code runs on PostgreSQL and SQLite; only the placeholder format differs.
type layerRepository struct {
	*DB
	logger *logger.Logger
	now    func() time.Time
}

func NewLayerRepository(db *DB, log *logger.Logger) LayerRepository {
	return &layerRepository{DB: db, logger: log, now: time.Now}
}

func (r *layerRepository) SeedLayer(ctx context.Context, def LayerDefinition) (LayerState, error) {
	log := logger.FromContext(ctx)

	var state LayerState
	err := r.withTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		current, err := r.readLayer(ctx, tx, def.ID)
		switch {
		case errors.Is(err, ErrLayerNotFound):
			if _, err = execBuilt(ctx, tx, r.builder.
				Insert("layers").
				Columns("layer_id", "geometry_type", "fingerprint", "epoch", "versioning_enabled", "version", "history_floor").
				Values(def.ID, def.Schema.GeometryType, def.Fingerprint, 0, def.VersioningEnabled, 0, 0)); err != nil {
				return err
			}
		case err != nil:
			return err
		case current.Info.Fingerprint == def.Fingerprint:
			state = current
			return errNoChanges
		default:
			if _, err = execBuilt(ctx, tx, r.builder.
				Update("layers").
				Set("geometry_type", def.Schema.GeometryType).
				Set("fingerprint", def.Fingerprint).
				Where(sq.Eq{"layer_id": def.ID})); err != nil {
				return err
			}
			if _, err = execBuilt(ctx, tx, r.startEpoch(def.ID)); err != nil {
				return err
			}
			if _, err = execBuilt(ctx, tx, r.truncateHistory(def.ID)); err != nil {
				return err
			}
			if _, err = execBuilt(ctx, tx, r.builder.Delete("layer_columns").Where(sq.Eq{"layer_id": def.ID})); err != nil {
				return err
			}
		}

		for i, col := range def.Schema.Columns {
			if _, err = execBuilt(ctx, tx, r.builder.
				Insert("layer_columns").
				Columns("layer_id", "position", "name", "kind").
				Values(def.ID, i, col.Name, int(col.Type))); err != nil {
				return err
			}
		}

		state, err = r.readLayer(ctx, tx, def.ID)
		return err
	})
	if errors.Is(err, errNoChanges) {
		return state, nil
	}
	if err != nil {
		log.Err(err).Str("func", "*layerRepository.SeedLayer").Str("layer_id", def.ID).Msg("failed to seed layer")
		return LayerState{}, err
	}

	log.Info().Str("layer_id", def.ID).Int64("epoch", state.Versioning.Epoch).Msg("layer seeded")
	return state, nil
}

func (r *layerRepository) GetLayer(ctx context.Context, layerID string) (LayerState, error) {
	return r.readLayer(ctx, r.DB, layerID)
}

func (r *layerRepository) ListLayers(ctx context.Context) ([]LayerState, error) {
	query, args, err := r.selectLayers().OrderBy("layer_id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	layers := make([]LayerState, 0)
	for rows.Next() {
		state, err := scanLayer(rows)
		if err != nil {
			return nil, err
		}
		layers = append(layers, state)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	for i := range layers {
		if layers[i].Info.Schema.Columns, err = r.readColumns(ctx, r.DB, layers[i].Info.LayerID); err != nil {
			return nil, err
		}
	}
	return layers, nil
}

func (r *layerRepository) Snapshot(ctx context.Context, layerID string) (models.Snapshot, error) {
	var snapshot models.Snapshot
	err := r.withTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		state, err := r.readLayer(ctx, tx, layerID)
		if err != nil {
			return err
		}

		query, args, err := r.selectFeaturePayloads(layerID).ToSql()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		rows, err := tx.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		defer rows.Close()

		features := make([]models.FeatureRecord, 0)
		for rows.Next() {
			var (
				id      string
				payload []byte
			)
			if err = rows.Scan(&id, &payload); err != nil {
				return fmt.Errorf("%w: %w", ErrScanningRow, err)
			}
			values, err := codec.DecodeValues(payload)
			if err != nil {
				return fmt.Errorf("%w: feature %s: %w", ErrDecodingValues, id, err)
			}
			features = append(features, serverFeature(id, values))
		}
		if err = rows.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRows, err)
		}

		snapshot = models.Snapshot{
			LayerID:     layerID,
			Version:     state.Version,
			Fingerprint: state.Info.Fingerprint,
			Schema:      state.Info.Schema,
			Versioning:  state.Versioning,
			Features:    features,
		}
		return nil
	})
	if err != nil {
		return models.Snapshot{}, err
	}
	return snapshot, nil
}

func (r *layerRepository) ChangesSince(ctx context.Context, layerID string, since int64, limit int) (models.DeltaPage, error) {
	log := logger.FromContext(ctx)

	state, err := r.readLayer(ctx, r.DB, layerID)
	if err != nil {
		return models.DeltaPage{}, err
	}
	if !state.Versioning.Enabled {
		return models.DeltaPage{}, ErrVersioningDisabled
	}
	if since < state.HistoryFloor || since > state.Version {
		return models.DeltaPage{}, fmt.Errorf("%w: since %d outside [%d, %d]",
			ErrHistoryTruncated, since, state.HistoryFloor, state.Version)
	}

	query, args, err := r.selectChanges(layerID, since, limit+1).ToSql()
	if err != nil {
		return models.DeltaPage{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*layerRepository.ChangesSince").Str("layer_id", layerID).Msg("failed to query change log")
		return models.DeltaPage{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	deltas := make([]models.DeltaRecord, 0, limit)
	for rows.Next() {
		var (
			d       models.DeltaRecord
			op      int
			payload []byte
		)
		if err = rows.Scan(&d.Seq, &op, &d.FeatureID, &payload, &d.Origin); err != nil {
			return models.DeltaPage{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		d.Op = models.OperationKind(op)
		if payload != nil {
			if d.Values, err = codec.DecodeValues(payload); err != nil {
				return models.DeltaPage{}, fmt.Errorf("%w: seq %d: %w", ErrDecodingValues, d.Seq, err)
			}
		}
		deltas = append(deltas, d)
	}
	if err = rows.Err(); err != nil {
		return models.DeltaPage{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	page := models.DeltaPage{
		Since:       since,
		ToVersion:   state.Version,
		Fingerprint: state.Info.Fingerprint,
	}
	if len(deltas) > limit {
		deltas = deltas[:limit]
		page.HasMore = true
		page.ToVersion = deltas[len(deltas)-1].Seq
	}
	page.Deltas = deltas
	return page, nil
}

func (r *layerRepository) CommitUpload(ctx context.Context, layerID string, base int64, origin string, records []models.DeltaRecord) (models.UploadResult, error) {
	log := logger.FromContext(ctx)

	var result models.UploadResult
	err := r.withTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := execBuilt(ctx, tx, r.lockLayer(layerID)); err != nil {
			return err
		}
		state, err := r.readLayer(ctx, tx, layerID)
		if err != nil {
			return err
		}
		if !state.Versioning.Enabled {
			return ErrVersioningDisabled
		}
		if base > state.Version {
			return fmt.Errorf("%w: base %d, layer at %d", ErrBaseVersionAhead, base, state.Version)
		}

		version := state.Version
		at := r.now().UnixNano()
		outcomes := make([]models.RecordOutcome, 0, len(records))
		for _, d := range records {
			outcome := models.RecordOutcome{Seq: d.Seq, FeatureID: d.FeatureID}

			current, found, err := r.readFeatureState(ctx, tx, layerID, d.FeatureID)
			if err != nil {
				return err
			}
			if reason := uploadVerdict(d, current, found, base, origin); reason != "" {
				outcome.Reason = reason
				outcomes = append(outcomes, outcome)
				continue
			}

			version++
			if err = r.applyUploaded(ctx, tx, layerID, version, origin, d, current); err != nil {
				return err
			}
			var payload []byte
			if d.Op != models.OperationDelete {
				if payload, err = codec.EncodeValues(d.Values); err != nil {
					return fmt.Errorf("%w: %w", ErrEncodingValues, err)
				}
			}
			if _, err = execBuilt(ctx, tx, r.insertChange(layerID, version, int(d.Op), d.FeatureID, payload, origin, at)); err != nil {
				return err
			}

			outcome.Accepted = true
			outcome.RemoteID = d.FeatureID
			outcomes = append(outcomes, outcome)
		}

		if version != state.Version {
			if _, err = execBuilt(ctx, tx, r.builder.
				Update("layers").
				Set("version", version).
				Where(sq.Eq{"layer_id": layerID})); err != nil {
				return err
			}
		}

		result = models.UploadResult{Version: version, Outcomes: outcomes}
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*layerRepository.CommitUpload").
			Str("layer_id", layerID).
			Str("origin", origin).
			Int64("base", base).
			Msg("failed to commit upload")
		return models.UploadResult{}, err
	}
	return result, nil
}

func (r *layerRepository) BumpEpoch(ctx context.Context, layerID string) (LayerState, error) {
	return r.reconfigure(ctx, layerID, nil)
}

func (r *layerRepository) SetVersioning(ctx context.Context, layerID string, enabled bool) (LayerState, error) {
	return r.reconfigure(ctx, layerID, &enabled)
}

// reconfigure starts a new epoch and optionally flips the versioning flag.
func (r *layerRepository) reconfigure(ctx context.Context, layerID string, enabled *bool) (LayerState, error) {
	var state LayerState
	err := r.withTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := r.readLayer(ctx, tx, layerID); err != nil {
			return err
		}
		stmt := r.startEpoch(layerID)
		if enabled != nil {
			stmt = stmt.Set("versioning_enabled", *enabled)
		}
		if _, err := execBuilt(ctx, tx, stmt); err != nil {
			return err
		}
		if _, err := execBuilt(ctx, tx, r.truncateHistory(layerID)); err != nil {
			return err
		}

		var err error
		state, err = r.readLayer(ctx, tx, layerID)
		return err
	})
	if err != nil {
		return LayerState{}, err
	}

	logger.FromContext(ctx).Info().
		Str("layer_id", layerID).
		Int64("epoch", state.Versioning.Epoch).
		Bool("versioning_enabled", state.Versioning.Enabled).
		Msg("layer versioning reconfigured")
	return state, nil
}

// uploadVerdict returns the rejection reason for d, or "" when it can be
// committed.
func uploadVerdict(d models.DeltaRecord, current storedFeature, found bool, base int64, origin string) string {
	switch d.Op {
	case models.OperationInsert:
		if found {
			return RejectFeatureExists
		}
	case models.OperationUpdate, models.OperationDelete:
		if !found {
			return RejectFeatureNotFound
		}
		if current.modifiedSeq > base && current.modifiedBy != origin {
			return RejectConcurrentEdit
		}
	}
	return ""
}

type storedFeature struct {
	values      map[string]models.Value
	modifiedSeq int64
	modifiedBy  string
}

func (r *layerRepository) readFeatureState(ctx context.Context, tx *sql.Tx, layerID, featureID string) (storedFeature, bool, error) {
	query, args, err := r.selectFeatureState(layerID, featureID).ToSql()
	if err != nil {
		return storedFeature{}, false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		f       storedFeature
		payload []byte
	)
	err = tx.QueryRowContext(ctx, query, args...).Scan(&payload, &f.modifiedSeq, &f.modifiedBy)
	if errors.Is(err, sql.ErrNoRows) {
		return storedFeature{}, false, nil
	}
	if err != nil {
		return storedFeature{}, false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	if f.values, err = codec.DecodeValues(payload); err != nil {
		return storedFeature{}, false, fmt.Errorf("%w: feature %s: %w", ErrDecodingValues, featureID, err)
	}
	return f, true, nil
}

// applyUploaded writes an accepted record to the features table. Updates
// merge into the stored values.
func (r *layerRepository) applyUploaded(ctx context.Context, tx *sql.Tx, layerID string, seq int64, origin string, d models.DeltaRecord, current storedFeature) error {
	if d.Op == models.OperationDelete {
		_, err := execBuilt(ctx, tx, r.builder.
			Delete("features").
			Where(sq.Eq{"layer_id": layerID, "feature_id": d.FeatureID}))
		return err
	}

	values := maps.Clone(d.Values)
	if d.Op == models.OperationUpdate {
		values = mergeValues(current.values, d.Values)
	}
	payload, err := codec.EncodeValues(values)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingValues, err)
	}

	_, err = execBuilt(ctx, tx, r.builder.
		Insert("features").
		Columns("layer_id", "feature_id", "payload", "modified_seq", "modified_by").
		Values(layerID, d.FeatureID, payload, seq, origin).
		Suffix(`ON CONFLICT (layer_id, feature_id) DO UPDATE SET
			payload = excluded.payload,
			modified_seq = excluded.modified_seq,
			modified_by = excluded.modified_by`))
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLayer(row rowScanner) (LayerState, error) {
	var s LayerState
	err := row.Scan(
		&s.Info.LayerID,
		&s.Info.Schema.GeometryType,
		&s.Info.Fingerprint,
		&s.Versioning.Epoch,
		&s.Versioning.Enabled,
		&s.Version,
		&s.HistoryFloor,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return LayerState{}, ErrLayerNotFound
	}
	if err != nil {
		return LayerState{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return s, nil
}

func (r *layerRepository) readLayer(ctx context.Context, q queryer, layerID string) (LayerState, error) {
	query, args, err := r.selectLayers().Where(sq.Eq{"layer_id": layerID}).ToSql()
	if err != nil {
		return LayerState{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	state, err := scanLayer(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, ErrLayerNotFound) {
			return LayerState{}, fmt.Errorf("%w: %s", ErrLayerNotFound, layerID)
		}
		return LayerState{}, err
	}

	if state.Info.Schema.Columns, err = r.readColumns(ctx, q, layerID); err != nil {
		return LayerState{}, err
	}
	return state, nil
}

func (r *layerRepository) readColumns(ctx context.Context, q queryer, layerID string) ([]models.Column, error) {
	query, args, err := r.selectLayerColumns(layerID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	columns := make([]models.Column, 0)
	for rows.Next() {
		var (
			col  models.Column
			kind int
		)
		if err = rows.Scan(&col.Name, &kind); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		col.Type = models.ValueKind(kind)
		columns = append(columns, col)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return columns, nil
}

// serverFeature splits a stored payload into geometry and attributes.
func serverFeature(id string, values map[string]models.Value) models.FeatureRecord {
	f := models.FeatureRecord{ID: id, RemoteID: id, Attributes: make(map[string]models.Value, len(values))}
	for name, v := range values {
		if name == models.GeometryColumn {
			f.Geometry = v.Geom
			continue
		}
		f.Attributes[name] = v
	}
	return f
}
