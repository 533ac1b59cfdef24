package service

import (
	"context"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-geo-sync/internal/cache"
	"github.com/MKhiriev/go-geo-sync/internal/config"
	"github.com/MKhiriev/go-geo-sync/internal/logger"
	"github.com/MKhiriev/go-geo-sync/internal/mock"
	"github.com/MKhiriev/go-geo-sync/internal/store"
	"github.com/MKhiriev/go-geo-sync/internal/syncerr"
	"github.com/MKhiriev/go-geo-sync/models"
)

// These tests run the orchestrator against real SQLite containers in a
// temporary directory; only the remote Web GIS is mocked.

const remoteOrigin = "0190a1b2-0000-7000-8000-0000000000ee"

var epochOne = models.VersioningState{Epoch: 1, Enabled: true}

type containerEnv struct {
	o      *orchestrator
	remote *mock.MockRemoteAdapter
	root   string
}

func newContainerEnv(t *testing.T, root string) *containerEnv {
	t.Helper()

	dir, err := cache.NewDir(config.ClientContainers{Dir: root}, logger.Nop())
	require.NoError(t, err)

	env := &containerEnv{
		remote: mock.NewMockRemoteAdapter(gomock.NewController(t)),
		root:   root,
	}
	cfg := config.ClientSync{
		Workers:         2,
		PageSize:        100,
		UploadBatchSize: 10,
		RetryBase:       time.Millisecond,
		RetryMaxDelay:   2 * time.Millisecond,
		RetryAttempts:   2,
	}
	env.o = NewSyncOrchestrator(dir, env.remote, cfg, NewMetrics(nil), NewProgressHub(), logger.Nop()).(*orchestrator)
	t.Cleanup(func() { _ = env.o.Close() })
	return env
}

func (env *containerEnv) expectGate(v models.VersioningState) {
	env.remote.EXPECT().Schema(gomock.Any(), testLayer).
		Return(models.SchemaInfo{LayerID: testLayer, Schema: testSchema, Fingerprint: testFP}, nil)
	env.remote.EXPECT().VersioningState(gomock.Any(), testLayer).Return(v, nil)
}

func (env *containerEnv) expectPage(since int64, page models.DeltaPage) {
	page.Since, page.Fingerprint = since, testFP
	env.remote.EXPECT().FetchDeltas(gomock.Any(), testLayer, since, gomock.Any()).Return(page, nil)
}

func (env *containerEnv) container(t *testing.T) store.ContainerStore {
	t.Helper()
	e, err := env.o.entry(testLayer)
	require.NoError(t, err)
	return e.store
}

func (env *containerEnv) pending(t *testing.T) []models.DeltaRecord {
	t.Helper()
	pending, err := env.container(t).ListPendingLocalDeltas(context.Background())
	require.NoError(t, err)
	return pending
}

// bootstrap attaches testLayer and loads a snapshot at remote version 10
// holding featureF.
func (env *containerEnv) bootstrap(t *testing.T) models.SyncOutcome {
	t.Helper()
	ctx := context.Background()

	rep, err := env.o.Attach(ctx, testLayer)
	require.NoError(t, err)
	require.Equal(t, models.StatusNotInitialized, rep.Status)

	env.expectGate(epochOne)
	env.remote.EXPECT().Snapshot(gomock.Any(), testLayer).Return(models.Snapshot{
		LayerID:     testLayer,
		Version:     10,
		Fingerprint: testFP,
		Schema:      testSchema,
		Versioning:  epochOne,
		Features: []models.FeatureRecord{{
			ID:         featureF,
			Geometry:   orb.Point{1, 2},
			Attributes: map[string]models.Value{"name": models.StringValue("Main")},
		}},
	}, nil)

	out, err := env.o.Sync(ctx, testLayer)
	require.NoError(t, err)
	return out
}

func remoteInsert(seq int64, fid, name string) models.DeltaRecord {
	return models.DeltaRecord{
		Seq: seq, Op: models.OperationInsert, FeatureID: fid, Origin: remoteOrigin,
		Values: map[string]models.Value{
			models.GeometryColumn: models.GeometryValue(orb.Point{float64(seq), 0}),
			"name":                models.StringValue(name),
		},
	}
}

func localInsert(name string) models.DeltaRecord {
	return models.DeltaRecord{Op: models.OperationInsert, Values: map[string]models.Value{
		models.GeometryColumn: models.GeometryValue(orb.Point{5, 5}),
		"name":                models.StringValue(name),
	}}
}

// ── Bootstrap ──

func TestContainerSync_SnapshotBootstrap(t *testing.T) {
	env := newContainerEnv(t, t.TempDir())

	out := env.bootstrap(t)

	assert.Equal(t, models.DecisionSnapshot, out.Decision)
	assert.Equal(t, 1, out.Applied)
	assert.Equal(t, models.StatusSynchronized, out.Status)
	assert.Equal(t, int64(10), out.LocalVersion)
	assert.Equal(t, int64(10), out.RemoteVersion)

	f, err := env.container(t).Feature(context.Background(), featureF)
	require.NoError(t, err)
	assert.Equal(t, "Main", f.Attributes["name"].Str)
	assert.Equal(t, orb.Point{1, 2}, f.Geometry)

	status, err := env.o.GetSyncStatus(testLayer)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSynchronized, status)
}

// ── Scenarios ──

func TestContainerSync_AppliesRemoteInserts(t *testing.T) {
	ctx := context.Background()
	env := newContainerEnv(t, t.TempDir())
	env.bootstrap(t)

	env.expectGate(epochOne)
	env.expectPage(10, models.DeltaPage{ToVersion: 13, Deltas: []models.DeltaRecord{
		remoteInsert(11, "0190a1b2-0000-7000-8000-000000000011", "North"),
		remoteInsert(12, "0190a1b2-0000-7000-8000-000000000012", "East"),
		remoteInsert(13, "0190a1b2-0000-7000-8000-000000000013", "South"),
	}})

	out, err := env.o.Sync(ctx, testLayer)
	require.NoError(t, err)

	assert.Equal(t, models.DecisionContinue, out.Decision)
	assert.Equal(t, 3, out.Applied)
	assert.Equal(t, models.StatusSynchronized, out.Status)
	assert.Equal(t, int64(13), out.LocalVersion)
	assert.Equal(t, int64(13), out.RemoteVersion)

	f, err := env.container(t).Feature(ctx, "0190a1b2-0000-7000-8000-000000000012")
	require.NoError(t, err)
	assert.Equal(t, "East", f.Attributes["name"].Str)
}

func TestContainerSync_RemoteWinsDiscardsLocalEdits(t *testing.T) {
	ctx := context.Background()
	env := newContainerEnv(t, t.TempDir())
	env.bootstrap(t)

	for _, name := range []string{"Local A", "Local B"} {
		_, err := env.o.RecordLocalEdit(ctx, testLayer, models.DeltaRecord{
			Op: models.OperationUpdate, FeatureID: featureF,
			Values: map[string]models.Value{"name": models.StringValue(name)},
		})
		require.NoError(t, err)
	}
	other := localInsert("Other")
	other.FeatureID = otherFeature
	_, err := env.o.RecordLocalEdit(ctx, testLayer, other)
	require.NoError(t, err)
	require.Len(t, env.pending(t), 3)

	env.expectGate(epochOne)
	env.expectPage(10, models.DeltaPage{ToVersion: 11, Deltas: []models.DeltaRecord{{
		Seq: 11, Op: models.OperationUpdate, FeatureID: featureF, Origin: remoteOrigin,
		Values: map[string]models.Value{"name": models.StringValue("Remote")},
	}}})

	out, err := env.o.Sync(ctx, testLayer)
	require.ErrorIs(t, err, syncerr.ErrDataConflict)
	assert.Equal(t, []string{featureF}, out.Discarded)
	assert.Equal(t, models.StatusError, out.Status)
	assert.Equal(t, int64(11), out.RemoteVersion)

	f, err := env.container(t).Feature(ctx, featureF)
	require.NoError(t, err)
	assert.Equal(t, "Remote", f.Attributes["name"].Str)

	pending := env.pending(t)
	require.Len(t, pending, 1)
	assert.Equal(t, otherFeature, pending[0].FeatureID)

	// the surviving edit goes out with the next session
	env.expectGate(epochOne)
	env.expectPage(11, models.DeltaPage{ToVersion: 11})
	env.remote.EXPECT().UploadDeltas(gomock.Any(), testLayer, int64(11), gomock.Any(), gomock.Len(1)).
		DoAndReturn(func(_ context.Context, _ string, _ int64, _ string, records []models.DeltaRecord) (models.UploadResult, error) {
			return models.UploadResult{Version: 12, Outcomes: []models.RecordOutcome{
				{Seq: records[0].Seq, FeatureID: records[0].FeatureID, Accepted: true, RemoteID: records[0].FeatureID},
			}}, nil
		})

	out, err = env.o.Sync(ctx, testLayer)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Uploaded)
	assert.Equal(t, models.StatusSynchronized, out.Status)
	assert.Equal(t, int64(12), out.RemoteVersion)
	assert.Empty(t, env.pending(t))
}

func TestContainerSync_EpochJumpStopsBeforeFetch(t *testing.T) {
	ctx := context.Background()
	env := newContainerEnv(t, t.TempDir())
	env.bootstrap(t)

	// FetchDeltas and Snapshot have no expectations: calling them fails the test
	env.expectGate(models.VersioningState{Epoch: 3, Enabled: true})

	out, err := env.o.Sync(ctx, testLayer)
	require.ErrorIs(t, err, syncerr.ErrStructuralConflict)
	assert.Equal(t, models.StatusError, out.Status)
	assert.Equal(t, int64(10), out.RemoteVersion)

	rep, err := env.container(t).Replica(ctx)
	require.NoError(t, err)
	assert.Equal(t, epochOne, rep.Versioning)
	assert.NotEmpty(t, rep.StatusReason)
}

func TestContainerSync_PartialUploadRejection(t *testing.T) {
	ctx := context.Background()
	env := newContainerEnv(t, t.TempDir())
	env.bootstrap(t)

	for _, name := range []string{"one", "two", "three", "four", "five"} {
		_, err := env.o.RecordLocalEdit(ctx, testLayer, localInsert(name))
		require.NoError(t, err)
	}
	pending := env.pending(t)
	require.Len(t, pending, 5)
	rejected := []string{pending[1].FeatureID, pending[3].FeatureID}

	env.expectGate(epochOne)
	env.expectPage(10, models.DeltaPage{ToVersion: 10})
	env.remote.EXPECT().UploadDeltas(gomock.Any(), testLayer, int64(10), gomock.Any(), gomock.Len(5)).
		DoAndReturn(func(_ context.Context, _ string, _ int64, _ string, records []models.DeltaRecord) (models.UploadResult, error) {
			res := models.UploadResult{Version: 13}
			for i, r := range records {
				o := models.RecordOutcome{Seq: r.Seq, FeatureID: r.FeatureID, Accepted: i != 1 && i != 3}
				if o.Accepted {
					o.RemoteID = r.FeatureID
				} else {
					o.Reason = "feature is locked"
				}
				res.Outcomes = append(res.Outcomes, o)
			}
			return res, nil
		})

	out, err := env.o.Sync(ctx, testLayer)
	require.ErrorIs(t, err, syncerr.ErrDataConflict)
	assert.Equal(t, 3, out.Uploaded)
	assert.ElementsMatch(t, rejected, out.Rejected)
	assert.Equal(t, models.StatusError, out.Status)

	e, ok := syncerr.As(err)
	require.True(t, ok)
	assert.ElementsMatch(t, rejected, e.FeatureIDs)

	left := env.pending(t)
	require.Len(t, left, 2)
	assert.ElementsMatch(t, rejected, []string{left[0].FeatureID, left[1].FeatureID})
}

// ── Idempotency ──

func TestContainerSync_RefetchAndEchoAreNoOps(t *testing.T) {
	ctx := context.Background()
	env := newContainerEnv(t, t.TempDir())
	env.bootstrap(t)

	page := models.DeltaPage{ToVersion: 12, Deltas: []models.DeltaRecord{
		remoteInsert(11, "0190a1b2-0000-7000-8000-000000000011", "North"),
		remoteInsert(12, "0190a1b2-0000-7000-8000-000000000012", "East"),
	}}
	env.expectGate(epochOne)
	env.expectPage(10, page)
	first, err := env.o.Sync(ctx, testLayer)
	require.NoError(t, err)
	require.Equal(t, 2, first.Applied)

	// the remote replays the page already applied
	replay := page
	replay.Since, replay.Fingerprint = 10, testFP
	env.expectGate(epochOne)
	env.remote.EXPECT().FetchDeltas(gomock.Any(), testLayer, int64(12), gomock.Any()).Return(replay, nil)

	second, err := env.o.Sync(ctx, testLayer)
	require.NoError(t, err)
	assert.Zero(t, second.Applied)
	assert.Equal(t, first.LocalVersion, second.LocalVersion)
	assert.Equal(t, int64(12), second.RemoteVersion)

	// our own records coming back from the remote log are skipped
	rep, err := env.o.Replica(testLayer)
	require.NoError(t, err)
	echo := remoteInsert(13, "0190a1b2-0000-7000-8000-000000000013", "Mine")
	echo.Origin = rep.SourceID

	env.expectGate(epochOne)
	env.expectPage(12, models.DeltaPage{ToVersion: 13, Deltas: []models.DeltaRecord{echo}})

	third, err := env.o.Sync(ctx, testLayer)
	require.NoError(t, err)
	assert.Zero(t, third.Applied)
	assert.Equal(t, int64(13), third.RemoteVersion)
	assert.Equal(t, second.LocalVersion, third.LocalVersion)

	_, err = env.container(t).Feature(ctx, echo.FeatureID)
	assert.ErrorIs(t, err, store.ErrFeatureNotFound)
}

// ── Restart ──

func TestContainerSync_RecoversSessionInterruptedByRestart(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	before := newContainerEnv(t, root)
	before.bootstrap(t)

	// the process stops while a session holds the replica
	require.NoError(t, before.container(t).SetStatus(ctx, models.StatusSynchronizing, ""))
	require.NoError(t, before.o.Close())

	after := newContainerEnv(t, root)
	rep, err := after.o.Attach(ctx, testLayer)
	require.NoError(t, err)
	assert.Equal(t, models.StatusError, rep.Status)
	assert.Equal(t, store.ReasonSessionInterrupted, rep.StatusReason)
	assert.Equal(t, int64(10), rep.RemoteVersion)

	status, err := after.o.GetSyncStatus(testLayer)
	require.NoError(t, err)
	assert.Equal(t, models.StatusError, status)

	after.expectGate(epochOne)
	after.expectPage(10, models.DeltaPage{ToVersion: 11, Deltas: []models.DeltaRecord{
		remoteInsert(11, "0190a1b2-0000-7000-8000-000000000011", "North"),
	}})

	out, err := after.o.Sync(ctx, testLayer)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSynchronized, out.Status)
	assert.Equal(t, 1, out.Applied)
	assert.Equal(t, int64(11), out.RemoteVersion)
}
