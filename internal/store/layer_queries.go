package store

import (
	sq "github.com/Masterminds/squirrel"
)

// Statement builders of the layer repository. They are built per call so the
// placeholder format of the connected driver applies.

func (r *layerRepository) selectLayers() sq.SelectBuilder {
	return r.builder.
		Select("layer_id", "geometry_type", "fingerprint", "epoch", "versioning_enabled", "version", "history_floor").
		From("layers")
}

func (r *layerRepository) selectLayerColumns(layerID string) sq.SelectBuilder {
	return r.builder.
		Select("name", "kind").
		From("layer_columns").
		Where(sq.Eq{"layer_id": layerID}).
		OrderBy("position")
}

// lockLayer is a no-op update that takes the row lock on PostgreSQL before
// the version counter is read.
func (r *layerRepository) lockLayer(layerID string) sq.UpdateBuilder {
	return r.builder.
		Update("layers").
		Set("version", sq.Expr("version")).
		Where(sq.Eq{"layer_id": layerID})
}

func (r *layerRepository) selectFeaturePayloads(layerID string) sq.SelectBuilder {
	return r.builder.
		Select("feature_id", "payload").
		From("features").
		Where(sq.Eq{"layer_id": layerID}).
		OrderBy("feature_id")
}

func (r *layerRepository) selectFeatureState(layerID, featureID string) sq.SelectBuilder {
	return r.builder.
		Select("payload", "modified_seq", "modified_by").
		From("features").
		Where(sq.Eq{"layer_id": layerID, "feature_id": featureID})
}

func (r *layerRepository) selectChanges(layerID string, since int64, limit int) sq.SelectBuilder {
	return r.builder.
		Select("seq", "op", "feature_id", "payload", "origin").
		From("change_log").
		Where(sq.And{sq.Eq{"layer_id": layerID}, sq.Gt{"seq": since}}).
		OrderBy("seq").
		Limit(uint64(limit))
}

func (r *layerRepository) insertChange(layerID string, seq int64, op int, featureID string, payload []byte, origin string, at int64) sq.InsertBuilder {
	return r.builder.
		Insert("change_log").
		Columns("layer_id", "seq", "op", "feature_id", "payload", "origin", "created_at").
		Values(layerID, seq, op, featureID, payload, origin, at)
}

// truncateHistory starts a new epoch: the change log is dropped and its floor
// moves to the current version.
func (r *layerRepository) truncateHistory(layerID string) sq.DeleteBuilder {
	return r.builder.
		Delete("change_log").
		Where(sq.Eq{"layer_id": layerID})
}

func (r *layerRepository) startEpoch(layerID string) sq.UpdateBuilder {
	return r.builder.
		Update("layers").
		Set("epoch", sq.Expr("epoch + 1")).
		Set("history_floor", sq.Expr("version")).
		Where(sq.Eq{"layer_id": layerID})
}
