package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-geo-sync/internal/logger"
	"github.com/MKhiriev/go-geo-sync/models"
)

// ApplyRemoteDeltas applies one fetched page in a single transaction.
//
// A page produced under another schema fingerprint, or one that starts after
// the replica's remote version, is a StructuralConflict and writes nothing.
// A page that ends at or before the remote version is a duplicate and is a
// no-op. Records at or below the remote version and records carrying the
// replica's own origin are skipped.
//
// Remote wins: when an incoming record targets a feature with pending local
// edits, those edits are discarded, the feature is rolled back to its last
// acknowledged state, the page is applied and DataConflict names the
// features.
func (c *Container) ApplyRemoteDeltas(ctx context.Context, page models.DeltaPage) (models.ApplyResult, error) {
	log := logger.FromContext(ctx)

	var result models.ApplyResult
	err := c.withTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		rep, err := readReplica(ctx, tx)
		if err != nil {
			return err
		}

		switch {
		case page.Fingerprint != "" && page.Fingerprint != rep.SchemaFingerprint:
			result = models.StructuralConflict(fmt.Sprintf("page schema fingerprint %s differs from replica %s",
				page.Fingerprint, rep.SchemaFingerprint))
			return errNoChanges
		case page.ToVersion <= rep.RemoteVersion:
			result = models.Applied(0)
			return errNoChanges
		case page.Since > rep.RemoteVersion:
			result = models.StructuralConflict(fmt.Sprintf("page starts after version %d, replica is at %d",
				page.Since, rep.RemoteVersion))
			return errNoChanges
		}

		fresh := make([]models.DeltaRecord, 0, len(page.Deltas))
		for _, d := range page.Deltas {
			if d.Seq <= rep.RemoteVersion || d.Origin == rep.SourceID {
				continue
			}
			if !d.Op.Valid() || d.FeatureID == "" {
				return fmt.Errorf("%w: seq %d", ErrInvalidDelta, d.Seq)
			}
			fresh = append(fresh, d)
		}

		conflicts, err := c.pendingFeatureIDs(ctx, tx, models.FeatureIDs(fresh))
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			if err = c.discardLocalEdits(ctx, tx, conflicts); err != nil {
				return err
			}
		}

		for _, d := range fresh {
			if err = applyRemoteDelta(ctx, tx, d); err != nil {
				return fmt.Errorf("applying seq %d to %s: %w", d.Seq, d.FeatureID, err)
			}
		}

		if _, err = tx.ExecContext(ctx, advanceRemoteVersion, page.ToVersion, len(fresh)); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		if len(conflicts) > 0 {
			result = models.DataConflict(len(fresh), conflicts)
		} else {
			result = models.Applied(len(fresh))
		}
		return nil
	})
	if errors.Is(err, errNoChanges) {
		return result, nil
	}
	if err != nil {
		log.Err(err).Str("func", "*Container.ApplyRemoteDeltas").
			Str("layer_id", c.layerID).
			Int64("since", page.Since).
			Int64("to_version", page.ToVersion).
			Msg("failed to apply remote deltas")
		return models.ApplyResult{}, err
	}

	return result, nil
}

// pendingFeatureIDs returns the ids among fids that have pending local
// deltas, in the order of fids.
func (c *Container) pendingFeatureIDs(ctx context.Context, tx *sql.Tx, fids []string) ([]string, error) {
	if len(fids) == 0 {
		return nil, nil
	}

	query, args, err := c.builder.
		Select("DISTINCT fid").
		From("pending_deltas").
		Where(sq.Eq{"fid": fids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	pending := make(map[string]struct{})
	for rows.Next() {
		var fid string
		if err = rows.Scan(&fid); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		pending[fid] = struct{}{}
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	var ids []string
	for _, fid := range fids {
		if _, ok := pending[fid]; ok {
			ids = append(ids, fid)
		}
	}
	return ids, nil
}

// discardLocalEdits drops every pending delta of fids and rolls the features
// back to their acknowledged state. Features that never reached the remote
// disappear.
func (c *Container) discardLocalEdits(ctx context.Context, tx *sql.Tx, fids []string) error {
	if _, err := execBuilt(ctx, tx, c.builder.Delete("pending_deltas").Where(sq.Eq{"fid": fids})); err != nil {
		return err
	}

	for _, fid := range fids {
		row, ok, err := loadFeature(ctx, tx, fid)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if !row.hasBase {
			if err = removeFeature(ctx, tx, fid); err != nil {
				return err
			}
			continue
		}

		row.values = mergeValues(nil, row.base)
		row.deleted = false
		row.revision = 0
		if err = saveFeature(ctx, tx, row); err != nil {
			return err
		}
	}
	return nil
}

// applyRemoteDelta writes one remote record. The feature has no pending
// local edits at this point, so its current and acknowledged states move
// together.
func applyRemoteDelta(ctx context.Context, tx *sql.Tx, d models.DeltaRecord) error {
	row, exists, err := loadFeature(ctx, tx, d.FeatureID)
	if err != nil {
		return err
	}

	switch d.Op {
	case models.OperationInsert:
		row = featureRow{id: d.FeatureID, remoteID: d.FeatureID, values: mergeValues(nil, d.Values)}
	case models.OperationUpdate:
		if !exists {
			row = featureRow{id: d.FeatureID, remoteID: d.FeatureID}
		}
		row.values = mergeValues(row.values, d.Values)
	case models.OperationDelete:
		if !exists {
			return nil
		}
		return removeFeature(ctx, tx, d.FeatureID)
	}

	row.revision = 0
	row.deleted = false
	row.acknowledge()
	return saveFeature(ctx, tx, row)
}
