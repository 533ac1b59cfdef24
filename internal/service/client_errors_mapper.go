// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-geo-sync/internal/adapter"
	"github.com/MKhiriev/go-geo-sync/internal/codec"
	"github.com/MKhiriev/go-geo-sync/internal/store"
	"github.com/MKhiriev/go-geo-sync/internal/syncerr"
	"github.com/MKhiriev/go-geo-sync/models"
)

// mapAdapterError translates a remote adapter failure into the typed sync
// failure of the stage that saw it.
func mapAdapterError(stage models.Stage, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := syncerr.As(err); ok {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	switch {
	case errors.Is(err, adapter.ErrUnauthorized):
		reason := "credentials rejected"
		if errors.Is(err, adapter.ErrTokenExpired) {
			reason = "access token expired"
		}
		return syncerr.Auth(stage, reason, err)

	case errors.Is(err, adapter.ErrForbidden):
		return syncerr.Auth(stage, "access to the layer denied", err)

	case errors.Is(err, adapter.ErrNotFound):
		return syncerr.Structural(stage, fmt.Sprintf("remote layer or history not found: %v", err))

	case errors.Is(err, adapter.ErrGone):
		return syncerr.Structural(stage, fmt.Sprintf("remote history is no longer available: %v", err))

	case errors.Is(err, adapter.ErrSchemaChangedMidway):
		return syncerr.Structural(stage, err.Error())

	case errors.Is(err, adapter.ErrConflict):
		return syncerr.Data(stage, err.Error(), nil)

	case errors.Is(err, codec.ErrFormat),
		errors.Is(err, codec.ErrEncode),
		errors.Is(err, adapter.ErrMalformedResponse),
		errors.Is(err, adapter.ErrBadRequest),
		errors.Is(err, adapter.ErrUnprocessable):
		return syncerr.Format(stage, err)

	case adapter.IsTransient(err), errors.Is(err, adapter.ErrUnexpectedStatus):
		return syncerr.Network(stage, err)
	}

	// anything else came out of the transport stack
	return syncerr.Network(stage, err)
}

// mapStoreError classifies container failures. Missing or unreadable files
// need the container recreated, records that cannot be stored or read back
// are format errors, and a replica in an unexpected state needs a reset.
// Whatever is left is a local storage failure and is reported like a
// damaged container.
func mapStoreError(layerID string, stage models.Stage, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := syncerr.As(err); ok {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	switch {
	case errors.Is(err, store.ErrContainerNotFound),
		errors.Is(err, store.ErrContainerCorrupt),
		errors.Is(err, store.ErrLayerMismatch):
		return syncerr.ContainerMissing(layerID, err)

	case errors.Is(err, store.ErrVersionRegressed):
		return syncerr.Structural(stage, err.Error())

	case errors.Is(err, store.ErrPendingEdits):
		return syncerr.Structural(stage, "snapshot required but local edits are pending")

	case errors.Is(err, models.ErrInvalidStatusTransition),
		errors.Is(err, store.ErrReplicaNotInitialized):
		return syncerr.Structural(stage, fmt.Sprintf("replica state does not allow the session: %v", err))

	case errors.Is(err, codec.ErrFormat),
		errors.Is(err, codec.ErrEncode),
		errors.Is(err, store.ErrInvalidDelta),
		errors.Is(err, store.ErrEncodingValues),
		errors.Is(err, store.ErrDecodingValues):
		return syncerr.Format(stage, err)
	}

	return syncerr.New(syncerr.KindContainerMissing, stage, fmt.Sprintf("layer %s: local container failure", layerID), err)
}
