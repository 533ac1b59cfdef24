// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-geo-sync/internal/config"
	"github.com/MKhiriev/go-geo-sync/internal/crypto"
	"github.com/MKhiriev/go-geo-sync/internal/logger"
	"github.com/MKhiriev/go-geo-sync/internal/mock"
	"github.com/MKhiriev/go-geo-sync/internal/store"
	"github.com/MKhiriev/go-geo-sync/models"
)

func newDeltaService(t *testing.T) (DeltaService, *mock.MockLayerRepository) {
	t.Helper()
	repo := mock.NewMockLayerRepository(gomock.NewController(t))
	return NewDeltaService(repo, logger.Nop()), repo
}

func roadsState(version int64) store.LayerState {
	return store.LayerState{
		Info:       models.SchemaInfo{LayerID: testLayer, Schema: testSchema, Fingerprint: testFP},
		Versioning: models.VersioningState{Epoch: 1, Enabled: true},
		Version:    version,
	}
}

// ── SeedLayers ──

func TestDeltaService_SeedLayers(t *testing.T) {
	svc, repo := newDeltaService(t)

	want := store.LayerDefinition{
		ID:                testLayer,
		Schema:            testSchema,
		Fingerprint:       crypto.NewFingerprinter().Fingerprint(testSchema),
		VersioningEnabled: true,
	}
	repo.EXPECT().SeedLayer(gomock.Any(), want).Return(roadsState(0), nil)

	err := svc.SeedLayers(context.Background(), []config.LayerSeed{{ID: testLayer, Schema: testSchema, VersioningEnabled: true}})
	require.NoError(t, err)
}

func TestDeltaService_SeedLayers_RejectsIncompleteSchema(t *testing.T) {
	svc, _ := newDeltaService(t)

	err := svc.SeedLayers(context.Background(), []config.LayerSeed{{ID: testLayer}})
	assert.ErrorIs(t, err, ErrInvalidLayerSchema)

	err = svc.SeedLayers(context.Background(), []config.LayerSeed{{Schema: testSchema}})
	assert.ErrorIs(t, err, ErrInvalidLayerSchema)
}

func TestDeltaService_SeedLayers_RepositoryError(t *testing.T) {
	svc, repo := newDeltaService(t)
	repo.EXPECT().SeedLayer(gomock.Any(), gomock.Any()).Return(store.LayerState{}, store.ErrExecutingQuery)

	err := svc.SeedLayers(context.Background(), []config.LayerSeed{{ID: testLayer, Schema: testSchema}})
	assert.ErrorIs(t, err, store.ErrExecutingQuery)
}

// ── Reads ──

func TestDeltaService_SchemaAndVersioning(t *testing.T) {
	svc, repo := newDeltaService(t)
	repo.EXPECT().GetLayer(gomock.Any(), testLayer).Return(roadsState(4), nil).Times(2)
	repo.EXPECT().GetLayer(gomock.Any(), "missing").Return(store.LayerState{}, store.ErrLayerNotFound)

	info, err := svc.Schema(context.Background(), testLayer)
	require.NoError(t, err)
	assert.Equal(t, testFP, info.Fingerprint)

	v, err := svc.VersioningState(context.Background(), testLayer)
	require.NoError(t, err)
	assert.Equal(t, models.VersioningState{Epoch: 1, Enabled: true}, v)

	_, err = svc.Schema(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrLayerNotFound)
}

func TestDeltaService_Changes(t *testing.T) {
	t.Run("default limit", func(t *testing.T) {
		svc, repo := newDeltaService(t)
		repo.EXPECT().ChangesSince(gomock.Any(), testLayer, int64(3), DefaultChangesLimit).
			Return(models.DeltaPage{Since: 3, ToVersion: 5}, nil)

		page, err := svc.Changes(context.Background(), testLayer, 3, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(5), page.ToVersion)
	})

	t.Run("explicit limit", func(t *testing.T) {
		svc, repo := newDeltaService(t)
		repo.EXPECT().ChangesSince(gomock.Any(), testLayer, int64(0), 10).Return(models.DeltaPage{}, nil)

		_, err := svc.Changes(context.Background(), testLayer, 0, 10)
		require.NoError(t, err)
	})

	t.Run("invalid arguments", func(t *testing.T) {
		svc, _ := newDeltaService(t)

		_, err := svc.Changes(context.Background(), testLayer, -1, 10)
		assert.ErrorIs(t, err, ErrInvalidVersion)
		_, err = svc.Changes(context.Background(), testLayer, 0, -1)
		assert.ErrorIs(t, err, ErrInvalidPageLimit)
		_, err = svc.Changes(context.Background(), testLayer, 0, MaxChangesLimit+1)
		assert.ErrorIs(t, err, ErrInvalidPageLimit)
	})

	t.Run("truncated history", func(t *testing.T) {
		svc, repo := newDeltaService(t)
		repo.EXPECT().ChangesSince(gomock.Any(), testLayer, int64(1), 10).Return(models.DeltaPage{}, store.ErrHistoryTruncated)

		_, err := svc.Changes(context.Background(), testLayer, 1, 10)
		assert.ErrorIs(t, err, store.ErrHistoryTruncated)
	})
}

// ── Upload ──

func TestDeltaService_Upload_MergesOutcomesInOrder(t *testing.T) {
	svc, repo := newDeltaService(t)

	valid1 := models.DeltaRecord{Seq: 1, Op: models.OperationInsert, FeatureID: featureF, Values: map[string]models.Value{
		models.GeometryColumn: models.GeometryValue(orb.Point{1, 2}),
	}}
	invalid := models.DeltaRecord{Seq: 2, Op: models.OperationUpdate, FeatureID: "not-a-uuid",
		Values: map[string]models.Value{"name": models.StringValue("x")}}
	valid2 := models.DeltaRecord{Seq: 3, Op: models.OperationDelete, FeatureID: otherFeature}

	repo.EXPECT().GetLayer(gomock.Any(), testLayer).Return(roadsState(7), nil)
	repo.EXPECT().CommitUpload(gomock.Any(), testLayer, int64(7), testSource, []models.DeltaRecord{valid1, valid2}).
		Return(models.UploadResult{Version: 8, Outcomes: []models.RecordOutcome{
			{Seq: 1, FeatureID: featureF, RemoteID: featureF, Accepted: true},
			{Seq: 3, FeatureID: otherFeature, Reason: store.RejectFeatureNotFound},
		}}, nil)

	res, err := svc.Upload(context.Background(), testLayer, 7, testSource, []models.DeltaRecord{valid1, invalid, valid2})

	require.NoError(t, err)
	assert.Equal(t, int64(8), res.Version)
	require.Len(t, res.Outcomes, 3)
	assert.True(t, res.Outcomes[0].Accepted)
	assert.False(t, res.Outcomes[1].Accepted)
	assert.Equal(t, int64(2), res.Outcomes[1].Seq)
	assert.NotEmpty(t, res.Outcomes[1].Reason)
	assert.Equal(t, store.RejectFeatureNotFound, res.Outcomes[2].Reason)
}

func TestDeltaService_Upload_AllInvalidSkipsCommit(t *testing.T) {
	svc, repo := newDeltaService(t)
	repo.EXPECT().GetLayer(gomock.Any(), testLayer).Return(roadsState(7), nil)

	bad := models.DeltaRecord{Seq: 1, Op: models.OperationDelete, FeatureID: featureF,
		Values: map[string]models.Value{"name": models.StringValue("x")}}
	res, err := svc.Upload(context.Background(), testLayer, 7, testSource, []models.DeltaRecord{bad})

	require.NoError(t, err)
	assert.Equal(t, int64(7), res.Version)
	assert.Len(t, res.Rejected(), 1)
}

func TestDeltaService_Upload_RequestErrors(t *testing.T) {
	svc, repo := newDeltaService(t)
	records := []models.DeltaRecord{{Seq: 1, Op: models.OperationDelete, FeatureID: featureF}}

	_, err := svc.Upload(context.Background(), testLayer, 0, "", records)
	assert.ErrorIs(t, err, ErrMissingSourceID)
	_, err = svc.Upload(context.Background(), testLayer, -1, testSource, records)
	assert.ErrorIs(t, err, ErrInvalidVersion)
	_, err = svc.Upload(context.Background(), testLayer, 0, testSource, nil)
	assert.ErrorIs(t, err, ErrNoDeltasProvided)

	repo.EXPECT().GetLayer(gomock.Any(), testLayer).Return(roadsState(1), nil)
	repo.EXPECT().CommitUpload(gomock.Any(), testLayer, int64(5), testSource, records).Return(models.UploadResult{}, store.ErrBaseVersionAhead)
	_, err = svc.Upload(context.Background(), testLayer, 5, testSource, records)
	assert.ErrorIs(t, err, store.ErrBaseVersionAhead)
}

// ── Admin ──

func TestDeltaService_Reconfigure(t *testing.T) {
	svc, repo := newDeltaService(t)

	bumped := roadsState(0)
	bumped.Versioning.Epoch = 2
	repo.EXPECT().BumpEpoch(gomock.Any(), testLayer).Return(bumped, nil)

	disabled := roadsState(0)
	disabled.Versioning = models.VersioningState{Epoch: 3}
	repo.EXPECT().SetVersioning(gomock.Any(), testLayer, false).Return(disabled, nil)

	v, err := svc.BumpEpoch(context.Background(), testLayer)
	require.NoError(t, err)
	assert.Equal(t, int64(2), v.Epoch)

	v, err = svc.SetVersioning(context.Background(), testLayer, false)
	require.NoError(t, err)
	assert.Equal(t, models.VersioningState{Epoch: 3}, v)
}
