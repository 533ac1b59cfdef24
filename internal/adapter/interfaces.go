// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the client of the remote Web GIS delta protocol.
//
// [RemoteAdapter] hides the transport from the sync pipeline. The HTTP
// implementation maps response statuses to the sentinel errors in errors.go so
// that callers classify failures with [errors.Is]: [ErrUnauthorized] and
// [ErrForbidden] need new credentials, [ErrNotFound] and [ErrGone] mean the
// change history is no longer addressable, [ErrServerUnavailable] and
// [ErrTransport] are transient.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-geo-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_adapter_mock.go -package=mock

// RemoteAdapter talks to one remote Web GIS on behalf of every attached
// layer.
type RemoteAdapter interface {
	// SetToken replaces the bearer token sent with every request.
	SetToken(token string)
	// Token returns the current bearer token.
	Token() string

	// Schema probes the layer schema and its fingerprint.
	Schema(ctx context.Context, layerID string) (models.SchemaInfo, error)
	// VersioningState reads the layer's epoch and versioning flag.
	VersioningState(ctx context.Context, layerID string) (models.VersioningState, error)
	// Snapshot downloads every feature of the layer together with the
	// version it was read at.
	Snapshot(ctx context.Context, layerID string) (models.Snapshot, error)
	// FetchDeltas requests at most limit change-log records strictly after
	// since.
	FetchDeltas(ctx context.Context, layerID string, since int64, limit int) (models.DeltaPage, error)
	// UploadDeltas sends local records created by sourceID on top of base and
	// returns the per-record verdict.
	UploadDeltas(ctx context.Context, layerID string, base int64, sourceID string, records []models.DeltaRecord) (models.UploadResult, error)
}
