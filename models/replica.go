// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"time"
)

// SyncStatus is the lifecycle state of a [LayerReplica].
type SyncStatus uint8

const (
	// StatusNotInitialized is the creation state before the first snapshot.
	StatusNotInitialized SyncStatus = iota
	// StatusNotSynchronized follows an explicit reset; the container is empty.
	StatusNotSynchronized
	// StatusSynchronizing is held only while a session is active.
	StatusSynchronizing
	// StatusSynchronized means the last session converged.
	StatusSynchronized
	// StatusError is terminal until the user retries or resets.
	StatusError
)

var syncStatusNames = [...]string{
	StatusNotInitialized:  "not_initialized",
	StatusNotSynchronized: "not_synchronized",
	StatusSynchronizing:   "synchronizing",
	StatusSynchronized:    "synchronized",
	StatusError:           "error",
}

func (s SyncStatus) String() string {
	if int(s) < len(syncStatusNames) {
		return syncStatusNames[s]
	}
	return fmt.Sprintf("status(%d)", uint8(s))
}

// ParseSyncStatus maps a persisted status name back to its value.
func ParseSyncStatus(s string) (SyncStatus, bool) {
	for i, name := range syncStatusNames {
		if name == s {
			return SyncStatus(i), true
		}
	}
	return 0, false
}

func (s SyncStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *SyncStatus) UnmarshalText(b []byte) error {
	parsed, ok := ParseSyncStatus(string(b))
	if !ok {
		return fmt.Errorf("unknown sync status %q", string(b))
	}
	*s = parsed
	return nil
}

// CanTransition reports whether the replica state machine allows moving from
// s to next. Reset (any state to NotSynchronized) is always allowed.
func (s SyncStatus) CanTransition(next SyncStatus) bool {
	if next == StatusNotSynchronized {
		return true
	}

	switch s {
	case StatusNotInitialized, StatusNotSynchronized, StatusSynchronized, StatusError:
		return next == StatusSynchronizing
	case StatusSynchronizing:
		return next == StatusSynchronized || next == StatusError
	}
	return false
}

// Transition returns next when the move is allowed and
// [ErrInvalidStatusTransition] otherwise.
func (s SyncStatus) Transition(next SyncStatus) (SyncStatus, error) {
	if !s.CanTransition(next) {
		return s, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, s, next)
	}
	return next, nil
}

// VersioningState is the remote versioning configuration of a layer. Epoch is
// bumped every time the remote reconfigures versioning and invalidates the
// old change-log addressing.
type VersioningState struct {
	Epoch   int64 `json:"epoch"`
	Enabled bool  `json:"enabled"`
}

// LayerReplica is the self-describing state of one offline layer copy.
type LayerReplica struct {
	LayerID           string          `json:"layer_id"`
	SourceID          string          `json:"source_id"`
	Schema            Schema          `json:"schema"`
	SchemaFingerprint string          `json:"schema_fingerprint"`
	LocalVersion      int64           `json:"local_version"`
	RemoteVersion     int64           `json:"remote_version"`
	Versioning        VersioningState `json:"versioning"`
	Status            SyncStatus      `json:"status"`
	StatusReason      string          `json:"status_reason,omitempty"`
	LastSyncedAt      time.Time       `json:"last_synced_at,omitzero"`
	PendingCount      int             `json:"pending_count"`
}

// Initialized reports whether the replica holds a snapshot it can sync
// deltas against.
func (r LayerReplica) Initialized() bool {
	return r.Status != StatusNotInitialized && r.Status != StatusNotSynchronized && r.SchemaFingerprint != ""
}
