package store

import "errors"

// Domain errors of the container store and the layer repository. Callers
// match them with [errors.Is].
var (
	// ErrContainerNotFound is returned by [Open] when no container file
	// exists at the path.
	ErrContainerNotFound = errors.New("container not found")
	// ErrContainerCorrupt is returned when the file is not a readable
	// container.
	ErrContainerCorrupt = errors.New("container is corrupt")
	// ErrLayerMismatch is returned when a container file belongs to a
	// different layer than requested.
	ErrLayerMismatch = errors.New("container belongs to another layer")
	// ErrReplicaNotInitialized rejects local edits before the first snapshot.
	ErrReplicaNotInitialized = errors.New("replica has no snapshot yet")
	// ErrFeatureExists rejects a local Insert of an existing feature id.
	ErrFeatureExists = errors.New("feature already exists")
	// ErrFeatureNotFound is returned for reads, updates and deletes of an
	// unknown feature.
	ErrFeatureNotFound = errors.New("feature not found")
	// ErrPendingEdits refuses a snapshot load while local edits are pending.
	ErrPendingEdits = errors.New("replica has pending local edits")
	// ErrVersionRegressed refuses a snapshot older than the replica's known
	// remote version.
	ErrVersionRegressed = errors.New("remote version regressed")
	// ErrInvalidDelta is returned for records the store cannot apply.
	ErrInvalidDelta = errors.New("invalid delta")

	// ErrLayerNotFound is returned by the layer repository for unknown ids.
	ErrLayerNotFound = errors.New("layer not found")
	// ErrHistoryTruncated means the requested since-version lies outside
	// the retained change log.
	ErrHistoryTruncated = errors.New("change history truncated")
	// ErrVersioningDisabled is returned for change-log access on a layer
	// whose versioning is switched off.
	ErrVersioningDisabled = errors.New("layer versioning is disabled")
	// ErrBaseVersionAhead rejects an upload whose base the layer has not
	// reached.
	ErrBaseVersionAhead = errors.New("base version is ahead of the layer")
)

// Low-level database operation errors wrapped around driver errors.
var (
	ErrBuildingSQLQuery     = errors.New("error building sql query")
	ErrExecutingQuery       = errors.New("error executing sql query")
	ErrBeginningTransaction = errors.New("failed to begin transaction")
	ErrCommitingTransaction = errors.New("failed to commit transaction")
	ErrExecutingStatement   = errors.New("failed to execute statement")
	ErrScanningRow          = errors.New("failed to scan row")
	ErrScanningRows         = errors.New("failed to scan rows")
	ErrEncodingValues       = errors.New("failed to encode feature values")
	ErrDecodingValues       = errors.New("failed to decode feature values")
)
