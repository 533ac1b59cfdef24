package models

import "errors"

var (
	// ErrValueKindMismatch is returned when a raw value cannot be converted to
	// the kind declared by its column.
	ErrValueKindMismatch = errors.New("value does not match column kind")
	// ErrInvalidStatusTransition is returned by [SyncStatus.Transition] for a
	// move the replica state machine does not allow.
	ErrInvalidStatusTransition = errors.New("invalid sync status transition")
)
