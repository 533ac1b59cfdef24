// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the message strings written into HTTP error bodies
// and log entries by both the Web GIS server and the client control API.
package app

const (
	// MsgInvalidDataProvided is returned when a request body cannot be
	// decoded or misses required fields.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInternalServerError hides unexpected failures from callers.
	MsgInternalServerError = "internal server error"

	MsgTokenIsExpired          = "token is expired"
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgIntegrityCheckFailed is returned when the HashSHA256 header does not
	// match the HMAC of the uploaded body.
	MsgIntegrityCheckFailed = "integrity check failed"

	MsgLayerNotFound = "layer not found"

	// MsgHistoryTruncated is returned when the requested since-version lies
	// before the oldest change kept by the server.
	MsgHistoryTruncated = "change history truncated, snapshot required"

	// MsgBaseVersionAhead is returned when an upload names a base version
	// the server has not reached.
	MsgBaseVersionAhead = "base version is ahead of the layer"

	MsgInvalidSinceVersion = "invalid since version"
	MsgInvalidBaseVersion  = "invalid base version"
	MsgInvalidPageLimit    = "invalid page limit"
	MsgMissingSourceID     = "missing X-Source-ID header"
	MsgNoDeltasProvided    = "no deltas provided"

	// Client control API.

	MsgLayerBusy            = "layer is busy"
	MsgLayerNotAttached     = "layer is not attached"
	MsgLayerNotInitialized  = "layer has no snapshot yet"
	MsgUnknownOperation     = "unknown edit operation"
	MsgInvalidFeature       = "invalid feature"
	MsgSyncFailed           = "sync failed"
	MsgRemoteUnavailable    = "remote service unavailable"
	MsgRemoteAuthFailed     = "remote rejected credentials"
	MsgStructuralConflict   = "structural conflict, reset required"
	MsgDataConflict         = "data conflict"
	MsgContainerUnavailable = "layer container unavailable"
)
