// Package store persists replicas and layers: one SQLite container file per
// offline layer on the client, and the layer repository of the reference Web
// GIS server on PostgreSQL or SQLite.
package store

import (
	"context"

	"github.com/MKhiriev/go-geo-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ContainerStore is the offline replica of one layer. Every mutating method
// runs in a single transaction: it commits completely or not at all.
type ContainerStore interface {
	// LayerID is the remote layer the container replicates.
	LayerID() string
	// Path is the container file.
	Path() string

	// Replica reads the self-describing replica metadata.
	Replica(ctx context.Context) (models.LayerReplica, error)
	// ReadSchema returns the stored schema and its fingerprint.
	ReadSchema(ctx context.Context) (models.SchemaInfo, error)
	// Feature returns the current local state of one feature.
	Feature(ctx context.Context, id string) (models.FeatureRecord, error)

	// ListPendingLocalDeltas returns unsent local edits in sequence order.
	ListPendingLocalDeltas(ctx context.Context) ([]models.DeltaRecord, error)
	// RecordLocalEdit applies a local edit and appends it to the pending log.
	// The returned record carries the assigned sequence and origin.
	RecordLocalEdit(ctx context.Context, delta models.DeltaRecord) (models.DeltaRecord, error)
	// MarkUploaded drops acknowledged pending deltas and folds them into the
	// last-known remote state.
	MarkUploaded(ctx context.Context, acks []models.UploadAck) error

	// ApplyRemoteDeltas applies one fetched page atomically.
	ApplyRemoteDeltas(ctx context.Context, page models.DeltaPage) (models.ApplyResult, error)
	// LoadSnapshot replaces schema and features with a full remote copy.
	LoadSnapshot(ctx context.Context, snapshot models.Snapshot) error
	// CommitSession records a converged session.
	CommitSession(ctx context.Context, commit models.SessionCommit) error
	// SetStatus moves the replica state machine.
	SetStatus(ctx context.Context, status models.SyncStatus, reason string) error
	// Purge drops schema, features and pending edits. Version counters are
	// kept.
	Purge(ctx context.Context) error

	Close() error
}

// LayerRepository is the server-side store of layers, features and change
// logs.
type LayerRepository interface {
	// SeedLayer creates a layer or, when its schema changed, replaces the
	// schema and starts a new epoch.
	SeedLayer(ctx context.Context, def LayerDefinition) (LayerState, error)
	GetLayer(ctx context.Context, layerID string) (LayerState, error)
	ListLayers(ctx context.Context) ([]LayerState, error)
	// Snapshot reads all features at the current version.
	Snapshot(ctx context.Context, layerID string) (models.Snapshot, error)
	// ChangesSince returns at most limit change-log records after since.
	ChangesSince(ctx context.Context, layerID string, since int64, limit int) (models.DeltaPage, error)
	// CommitUpload applies records from origin on top of base in one
	// transaction and returns a verdict per record.
	CommitUpload(ctx context.Context, layerID string, base int64, origin string, records []models.DeltaRecord) (models.UploadResult, error)
	// BumpEpoch starts a new epoch and truncates the change log.
	BumpEpoch(ctx context.Context, layerID string) (LayerState, error)
	// SetVersioning switches change tracking and starts a new epoch.
	SetVersioning(ctx context.Context, layerID string, enabled bool) (LayerState, error)
}

var (
	_ ContainerStore  = (*Container)(nil)
	_ LayerRepository = (*layerRepository)(nil)
)
