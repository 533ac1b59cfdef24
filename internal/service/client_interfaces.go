package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-geo-sync/internal/store"
	"github.com/MKhiriev/go-geo-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../handler/http/client_service_mock_test.go -package=http -exclude_interfaces=Reconciler,Fetcher,Applier,Uploader,SyncJob

// ReconcilePlan is the Reconciler's verdict together with the remote state it
// was taken against.
type ReconcilePlan struct {
	Decision   models.Decision
	Remote     models.SchemaInfo
	Versioning models.VersioningState
	// Reason explains a snapshot decision for the user.
	Reason string
}

// Reconciler gates a session before any delta is fetched and persists the
// converged state once every stage succeeded.
type Reconciler interface {
	// Gate probes the remote schema and versioning state and compares them
	// with the replica. Schema drift, a changed versioning flag or more than
	// one epoch change are returned as a structural conflict.
	Gate(ctx context.Context, replica models.LayerReplica) (ReconcilePlan, error)

	// Commit moves the replica to Synchronized at the given remote version.
	Commit(ctx context.Context, c store.ContainerStore, commit models.SessionCommit) error
}

// Fetcher reads remote state with retries for transient failures.
type Fetcher interface {
	// FetchPage requests the change-log page strictly after since.
	FetchPage(ctx context.Context, layerID string, since int64) (models.DeltaPage, error)

	// Snapshot downloads a full copy of the layer.
	Snapshot(ctx context.Context, layerID string) (models.Snapshot, error)
}

// Applier applies one fetched page as an atomic batch.
type Applier interface {
	// Apply returns the typed result and, for either conflict variant, the
	// matching sync failure so that the session halts.
	Apply(ctx context.Context, c store.ContainerStore, page models.DeltaPage) (models.ApplyResult, error)

	// LoadSnapshot replaces the replica content with a full remote copy.
	LoadSnapshot(ctx context.Context, c store.ContainerStore, snapshot models.Snapshot) error
}

// UploadReport summarises one upload stage.
type UploadReport struct {
	Uploaded int
	Rejected []models.RecordOutcome
	// RemoteVersion is the highest remote version the replica provably
	// matches after the upload.
	RemoteVersion int64
}

// RejectedIDs lists the rejected feature ids in upload order.
func (r UploadReport) RejectedIDs() []string {
	ids := make([]string, 0, len(r.Rejected))
	seen := make(map[string]struct{}, len(r.Rejected))
	for _, o := range r.Rejected {
		if _, ok := seen[o.FeatureID]; ok {
			continue
		}
		seen[o.FeatureID] = struct{}{}
		ids = append(ids, o.FeatureID)
	}
	return ids
}

// Uploader sends pending local edits and acknowledges the accepted ones.
type Uploader interface {
	// Upload sends every pending delta on top of the replica's remote
	// version. Rejected records stay pending and end the session with a
	// data conflict naming them.
	Upload(ctx context.Context, c store.ContainerStore, replica models.LayerReplica) (UploadReport, error)
}

// SyncOrchestrator is the host-facing entry point of the sync engine.
type SyncOrchestrator interface {
	// Attach opens or creates the container of a layer and registers it.
	Attach(ctx context.Context, layerID string) (models.LayerReplica, error)
	// Detach removes the offline copy of a layer.
	Detach(ctx context.Context, layerID string) error
	// Layers lists the attached replicas.
	Layers() []models.LayerReplica

	// Sync runs one session for a layer. Concurrent calls for the same
	// layer share the in-flight session.
	Sync(ctx context.Context, layerID string) (models.SyncOutcome, error)
	// SyncAll syncs every attached layer on the worker pool.
	SyncAll(ctx context.Context) map[string]models.SyncOutcome
	// Cancel requests cooperative cancellation of a running session.
	Cancel(layerID string) bool

	// GetSyncStatus never blocks on a running session.
	GetSyncStatus(layerID string) (models.SyncStatus, error)
	Replica(layerID string) (models.LayerReplica, error)
	// SubscribeProgress streams progress reports until cancel is called.
	SubscribeProgress(layerID string) (ch <-chan models.Progress, cancel func(), err error)
	// RequestReset purges the local replica. The next sync rebuilds it.
	RequestReset(ctx context.Context, layerID string) error

	// BeginEdit opens an edit session that blocks syncs until closed.
	BeginEdit(layerID string) (*EditSession, error)
	// RecordLocalEdit captures one edit inside a short-lived edit session.
	RecordLocalEdit(ctx context.Context, layerID string, delta models.DeltaRecord) (models.DeltaRecord, error)

	// Close detaches nothing but closes every open container.
	Close() error
}

// SyncJob periodically syncs every attached layer.
type SyncJob interface {
	// Start launches the background loop. It syncs every interval,
	// defaulting to 5 minutes if interval is zero or negative. Any previously
	// running loop is stopped first.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the loop to exit and blocks until it has terminated.
	Stop()
}
