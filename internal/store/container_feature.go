package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"

	"github.com/paulmach/orb/encoding/wkb"

	"github.com/MKhiriev/go-geo-sync/internal/codec"
	"github.com/MKhiriev/go-geo-sync/models"
)

// featureRow is a features table row. values holds the current local state
// including the geometry column; base is the last remote-acknowledged state
// and is nil while hasBase is false.
type featureRow struct {
	id       string
	remoteID string
	values   map[string]models.Value
	revision int64
	deleted  bool
	base     map[string]models.Value
	hasBase  bool
}

func (r featureRow) record() models.FeatureRecord {
	attrs := make(map[string]models.Value, len(r.values))
	var rec models.FeatureRecord
	for name, v := range r.values {
		if name == models.GeometryColumn {
			rec.Geometry = v.Geom
			continue
		}
		attrs[name] = v
	}
	rec.ID = r.id
	rec.RemoteID = r.remoteID
	rec.Attributes = attrs
	rec.Revision = r.revision
	return rec
}

// acknowledge marks the current state as the remote state.
func (r *featureRow) acknowledge() {
	r.base = maps.Clone(r.values)
	r.hasBase = true
}

// mergeValues overlays src onto a copy of dst.
func mergeValues(dst, src map[string]models.Value) map[string]models.Value {
	out := make(map[string]models.Value, len(dst)+len(src))
	maps.Copy(out, dst)
	maps.Copy(out, src)
	return out
}

func rowFromRecord(f models.FeatureRecord) featureRow {
	values := maps.Clone(f.Attributes)
	if values == nil {
		values = make(map[string]models.Value, 1)
	}
	if f.Geometry != nil {
		values[models.GeometryColumn] = models.GeometryValue(f.Geometry)
	}
	remoteID := f.RemoteID
	if remoteID == "" {
		remoteID = f.ID
	}
	row := featureRow{id: f.ID, remoteID: remoteID, values: values}
	row.acknowledge()
	return row
}

func loadFeature(ctx context.Context, tx queryer, fid string) (featureRow, bool, error) {
	var (
		row                   featureRow
		geometry, attrs, base []byte
	)

	err := tx.QueryRowContext(ctx, selectFeature, fid).
		Scan(&row.id, &row.remoteID, &geometry, &attrs, &row.revision, &row.deleted, &base)
	if errors.Is(err, sql.ErrNoRows) {
		return featureRow{}, false, nil
	}
	if err != nil {
		return featureRow{}, false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	row.values, err = codec.DecodeValues(attrs)
	if err != nil {
		return featureRow{}, false, fmt.Errorf("%w: feature %s: %w", ErrDecodingValues, fid, err)
	}
	if row.values == nil {
		row.values = make(map[string]models.Value, 1)
	}
	if geometry != nil {
		geom, err := wkb.Unmarshal(geometry)
		if err != nil {
			return featureRow{}, false, fmt.Errorf("%w: feature %s geometry: %w", ErrDecodingValues, fid, err)
		}
		row.values[models.GeometryColumn] = models.GeometryValue(geom)
	}
	if base != nil {
		row.hasBase = true
		if row.base, err = codec.DecodeValues(base); err != nil {
			return featureRow{}, false, fmt.Errorf("%w: feature %s base: %w", ErrDecodingValues, fid, err)
		}
	}

	return row, true, nil
}

func saveFeature(ctx context.Context, tx *sql.Tx, row featureRow) error {
	attrs := maps.Clone(row.values)
	geom, hasGeom := attrs[models.GeometryColumn]
	delete(attrs, models.GeometryColumn)

	var geometry []byte
	if hasGeom && !geom.IsNull() {
		var err error
		if geometry, err = wkb.Marshal(geom.Geom); err != nil {
			return fmt.Errorf("%w: feature %s geometry: %w", ErrEncodingValues, row.id, err)
		}
	}

	encodedAttrs, err := codec.EncodeValues(attrs)
	if err != nil {
		return fmt.Errorf("%w: feature %s: %w", ErrEncodingValues, row.id, err)
	}

	var base []byte
	if row.hasBase {
		if base, err = codec.EncodeValues(row.base); err != nil {
			return fmt.Errorf("%w: feature %s base: %w", ErrEncodingValues, row.id, err)
		}
	}

	if _, err = tx.ExecContext(ctx, upsertFeature,
		row.id, row.remoteID, geometry, encodedAttrs, row.revision, row.deleted, base); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func removeFeature(ctx context.Context, tx *sql.Tx, fid string) error {
	if _, err := tx.ExecContext(ctx, deleteFeature, fid); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

// refreshRevision points the feature's revision at its newest pending delta,
// or zero. A tombstone without pending deltas is removed.
func refreshRevision(ctx context.Context, tx *sql.Tx, fid string) error {
	row, ok, err := loadFeature(ctx, tx, fid)
	if err != nil || !ok {
		return err
	}

	if err = tx.QueryRowContext(ctx, selectLatestPendingSeq, fid).Scan(&row.revision); err != nil {
		return fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	if row.revision == 0 && row.deleted {
		return removeFeature(ctx, tx, fid)
	}
	return saveFeature(ctx, tx, row)
}
