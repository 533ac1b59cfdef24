package service

import (
	"context"

	"github.com/MKhiriev/go-geo-sync/internal/config"
	"github.com/MKhiriev/go-geo-sync/internal/store"
	"github.com/MKhiriev/go-geo-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../handler/http/service_mock_test.go -package=http

// DeltaService is the server side of the delta protocol.
type DeltaService interface {
	// SeedLayers creates or updates the configured layers. A changed schema
	// starts a new epoch.
	SeedLayers(ctx context.Context, seeds []config.LayerSeed) error
	ListLayers(ctx context.Context) ([]store.LayerState, error)

	Schema(ctx context.Context, layerID string) (models.SchemaInfo, error)
	VersioningState(ctx context.Context, layerID string) (models.VersioningState, error)
	Snapshot(ctx context.Context, layerID string) (models.Snapshot, error)

	// Changes returns at most limit change-log records after since. A zero
	// limit selects the default page size.
	Changes(ctx context.Context, layerID string, since int64, limit int) (models.DeltaPage, error)

	// Upload validates records against the layer schema and commits the
	// valid ones. Every record gets an outcome, in request order.
	Upload(ctx context.Context, layerID string, base int64, origin string, records []models.DeltaRecord) (models.UploadResult, error)

	BumpEpoch(ctx context.Context, layerID string) (models.VersioningState, error)
	SetVersioning(ctx context.Context, layerID string, enabled bool) (models.VersioningState, error)
}

type AuthService interface {
	// CreateToken issues a signed access token for subject.
	CreateToken(ctx context.Context, subject string) (string, error)
	// ParseToken verifies a token and returns its subject.
	ParseToken(ctx context.Context, token string) (string, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
