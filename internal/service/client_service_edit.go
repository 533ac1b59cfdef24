package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/MKhiriev/go-geo-sync/internal/logger"
	"github.com/MKhiriev/go-geo-sync/internal/store"
	"github.com/MKhiriev/go-geo-sync/internal/validators"
	"github.com/MKhiriev/go-geo-sync/models"
)

// EditSession holds a layer's edit lock. Syncs of the layer are rejected
// with a LayerBusy error until Close.
type EditSession struct {
	o      *orchestrator
	entry  *layerEntry
	closed atomic.Bool
}

func (o *orchestrator) BeginEdit(layerID string) (*EditSession, error) {
	e, err := o.entry(layerID)
	if err != nil {
		return nil, err
	}
	if err = e.beginEdit(); err != nil {
		return nil, err
	}
	return &EditSession{o: o, entry: e}, nil
}

func (o *orchestrator) RecordLocalEdit(ctx context.Context, layerID string, delta models.DeltaRecord) (models.DeltaRecord, error) {
	s, err := o.BeginEdit(layerID)
	if err != nil {
		return models.DeltaRecord{}, err
	}
	defer s.Close()

	return s.Record(ctx, delta)
}

func (s *EditSession) LayerID() string {
	return s.entry.id
}

// Record validates delta against the layer schema and appends it to the
// pending log. Inserts without a feature id get a new one.
func (s *EditSession) Record(ctx context.Context, delta models.DeltaRecord) (models.DeltaRecord, error) {
	if s.closed.Load() {
		return models.DeltaRecord{}, ErrEditSessionClosed
	}
	return s.o.recordEdit(ctx, s.entry, delta)
}

// Close releases the edit lock. Further calls are no-ops.
func (s *EditSession) Close() {
	if s.closed.CompareAndSwap(false, true) {
		s.entry.endEdit()
	}
}

func (o *orchestrator) recordEdit(ctx context.Context, e *layerEntry, delta models.DeltaRecord) (models.DeltaRecord, error) {
	log := logger.FromContext(ctx)

	if !e.snapshot().Initialized() {
		return models.DeltaRecord{}, store.ErrReplicaNotInitialized
	}

	info, err := e.store.ReadSchema(ctx)
	if err != nil {
		return models.DeltaRecord{}, o.editStoreError(e.id, err)
	}

	if delta.Op == models.OperationInsert && delta.FeatureID == "" {
		delta.FeatureID = o.ids.Generate()
	}
	if err = o.validator.Validate(ctx, validators.LayerDelta{Schema: info.Schema, Delta: delta}); err != nil {
		return models.DeltaRecord{}, fmt.Errorf("%w: %w", ErrInvalidEdit, err)
	}

	rec, err := e.store.RecordLocalEdit(ctx, delta)
	if err != nil {
		log.Err(err).Str("func", "*orchestrator.recordEdit").
			Str("layer_id", e.id).
			Stringer("op", delta.Op).
			Str("feature_id", delta.FeatureID).
			Msg("failed to record local edit")
		return models.DeltaRecord{}, o.editStoreError(e.id, err)
	}

	o.refresh(ctx, e)
	return rec, nil
}

func (o *orchestrator) editStoreError(layerID string, err error) error {
	switch {
	case errors.Is(err, store.ErrContainerNotFound), errors.Is(err, store.ErrContainerCorrupt):
		return mapStoreError(layerID, models.StageApply, err)
	case errors.Is(err, store.ErrInvalidDelta), errors.Is(err, store.ErrEncodingValues):
		return fmt.Errorf("%w: %w", ErrInvalidEdit, err)
	}
	return fmt.Errorf("record local edit: %w", err)
}
