// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-geo-sync/internal/config"
	"github.com/MKhiriev/go-geo-sync/internal/crypto"
	"github.com/MKhiriev/go-geo-sync/internal/logger"
	"github.com/MKhiriev/go-geo-sync/internal/store"
	"github.com/MKhiriev/go-geo-sync/internal/validators"
	"github.com/MKhiriev/go-geo-sync/models"
)

const (
	DefaultChangesLimit = 500
	MaxChangesLimit     = 5000
)

type deltaService struct {
	repo        store.LayerRepository
	validator   validators.Validator
	fingerprint crypto.Fingerprinter

	logger *logger.Logger
}

func NewDeltaService(repo store.LayerRepository, logger *logger.Logger) DeltaService {
	return &deltaService{
		repo:        repo,
		validator:   validators.NewDeltaValidator(),
		fingerprint: crypto.NewFingerprinter(),
		logger:      logger,
	}
}

func (s *deltaService) SeedLayers(ctx context.Context, seeds []config.LayerSeed) error {
	for _, seed := range seeds {
		if seed.ID == "" || seed.Schema.GeometryType == "" {
			return fmt.Errorf("%w: layer %q", ErrInvalidLayerSchema, seed.ID)
		}

		state, err := s.repo.SeedLayer(ctx, store.LayerDefinition{
			ID:                seed.ID,
			Schema:            seed.Schema,
			Fingerprint:       s.fingerprint.Fingerprint(seed.Schema),
			VersioningEnabled: seed.VersioningEnabled,
		})
		if err != nil {
			return fmt.Errorf("seed layer %q: %w", seed.ID, err)
		}

		s.logger.Info().Str("func", "*deltaService.SeedLayers").
			Str("layer_id", seed.ID).
			Str("fingerprint", state.Info.Fingerprint).
			Int64("epoch", state.Versioning.Epoch).
			Int64("version", state.Version).
			Msg("layer ready")
	}
	return nil
}

func (s *deltaService) ListLayers(ctx context.Context) ([]store.LayerState, error) {
	return s.repo.ListLayers(ctx)
}

func (s *deltaService) Schema(ctx context.Context, layerID string) (models.SchemaInfo, error) {
	state, err := s.repo.GetLayer(ctx, layerID)
	if err != nil {
		return models.SchemaInfo{}, err
	}
	return state.Info, nil
}

func (s *deltaService) VersioningState(ctx context.Context, layerID string) (models.VersioningState, error) {
	state, err := s.repo.GetLayer(ctx, layerID)
	if err != nil {
		return models.VersioningState{}, err
	}
	return state.Versioning, nil
}

func (s *deltaService) Snapshot(ctx context.Context, layerID string) (models.Snapshot, error) {
	return s.repo.Snapshot(ctx, layerID)
}

func (s *deltaService) Changes(ctx context.Context, layerID string, since int64, limit int) (models.DeltaPage, error) {
	if since < 0 {
		return models.DeltaPage{}, fmt.Errorf("%w: since %d", ErrInvalidVersion, since)
	}
	switch {
	case limit == 0:
		limit = DefaultChangesLimit
	case limit < 0 || limit > MaxChangesLimit:
		return models.DeltaPage{}, fmt.Errorf("%w: %d", ErrInvalidPageLimit, limit)
	}
	return s.repo.ChangesSince(ctx, layerID, since, limit)
}

func (s *deltaService) Upload(ctx context.Context, layerID string, base int64, origin string, records []models.DeltaRecord) (models.UploadResult, error) {
	log := logger.FromContext(ctx)

	switch {
	case origin == "":
		return models.UploadResult{}, ErrMissingSourceID
	case base < 0:
		return models.UploadResult{}, fmt.Errorf("%w: base %d", ErrInvalidVersion, base)
	case len(records) == 0:
		return models.UploadResult{}, ErrNoDeltasProvided
	}

	layer, err := s.repo.GetLayer(ctx, layerID)
	if err != nil {
		return models.UploadResult{}, err
	}

	outcomes := make([]models.RecordOutcome, len(records))
	valid := make([]models.DeltaRecord, 0, len(records))
	positions := make([]int, 0, len(records))
	for i, d := range records {
		if err = s.validator.Validate(ctx, validators.LayerDelta{Schema: layer.Info.Schema, Delta: d}); err != nil {
			outcomes[i] = models.RecordOutcome{Seq: d.Seq, FeatureID: d.FeatureID, Reason: err.Error()}
			continue
		}
		valid = append(valid, d)
		positions = append(positions, i)
	}

	result := models.UploadResult{Version: layer.Version}
	if len(valid) > 0 {
		committed, err := s.repo.CommitUpload(ctx, layerID, base, origin, valid)
		if err != nil {
			return models.UploadResult{}, err
		}
		for j, o := range committed.Outcomes {
			outcomes[positions[j]] = o
		}
		result.Version = committed.Version
	}
	result.Outcomes = outcomes

	rejected := len(result.Rejected())
	log.Info().Str("func", "*deltaService.Upload").
		Str("layer_id", layerID).
		Str("origin", origin).
		Int64("base", base).
		Int64("version", result.Version).
		Int("accepted", len(records)-rejected).
		Int("rejected", rejected).
		Msg("upload committed")
	return result, nil
}

func (s *deltaService) BumpEpoch(ctx context.Context, layerID string) (models.VersioningState, error) {
	state, err := s.repo.BumpEpoch(ctx, layerID)
	if err != nil {
		return models.VersioningState{}, err
	}
	return state.Versioning, nil
}

func (s *deltaService) SetVersioning(ctx context.Context, layerID string, enabled bool) (models.VersioningState, error) {
	state, err := s.repo.SetVersioning(ctx, layerID, enabled)
	if err != nil {
		return models.VersioningState{}, err
	}
	return state.Versioning, nil
}
