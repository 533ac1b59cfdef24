package config

import "errors"

// Validation errors returned when a config view is incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates a missing remote base URL or a
	// non-positive request timeout.
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates a missing DSN or container directory.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates missing token settings.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidSyncConfigs indicates non-positive worker, paging or retry
	// settings.
	ErrInvalidSyncConfigs = errors.New("invalid sync configuration")
	// ErrInvalidLayerConfigs indicates a malformed layer seed.
	ErrInvalidLayerConfigs = errors.New("invalid layer configuration")
)
