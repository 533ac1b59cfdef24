package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrTokenIsExpired          = errors.New("token is expired")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrVersionIsNotSpecified   = errors.New("app version is not specified")

	ErrLayerNotAttached  = errors.New("layer is not attached")
	ErrInvalidEdit       = errors.New("invalid local edit")
	ErrEditSessionClosed = errors.New("edit session is closed")
	ErrSessionCancelled  = errors.New("sync session cancelled")

	ErrInvalidPageLimit   = errors.New("invalid page limit")
	ErrInvalidVersion     = errors.New("invalid version")
	ErrMissingSourceID    = errors.New("missing source id")
	ErrNoDeltasProvided   = errors.New("no deltas provided")
	ErrInvalidLayerSchema = errors.New("invalid layer schema")
)
