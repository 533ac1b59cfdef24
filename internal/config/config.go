// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"

	"github.com/MKhiriev/go-geo-sync/models"
)

// StructuredConfig aggregates every setting of both binaries. It is filled
// from environment variables, command-line flags and an optional JSON or YAML
// file; see [GetStructuredConfig] for precedence.
type StructuredConfig struct {
	App     App     `envPrefix:"APP_"`
	Storage Storage `envPrefix:"STORAGE_"`
	Server  Server  `envPrefix:"SERVER_"`
	Adapter Adapter `envPrefix:"ADAPTER_"`
	Sync    Sync    `envPrefix:"SYNC_"`
	Workers Workers `envPrefix:"WORKERS_"`

	// Layers seeds the Web GIS server with layer definitions. File only.
	Layers []LayerSeed

	// ConfigFilePath points at a JSON (.json) or YAML (.yaml, .yml) file.
	// Env: CONFIG
	ConfigFilePath string `env:"CONFIG"`
}

// App holds identity, token and integrity settings.
type App struct {
	// Env: APP_VERSION
	Version string `env:"VERSION"`
	// TokenSignKey signs and verifies HS256 access tokens on the server.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`
	// HashKey keys the HMAC of uploaded delta bodies (HashSHA256 header).
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`
}

type Storage struct {
	DB         DB         `envPrefix:"DB_"`
	Containers Containers `envPrefix:"CONTAINERS_"`
}

// DB is the server store. "postgres://" and "postgresql://" DSNs select
// PostgreSQL, anything else is opened as a SQLite file.
type DB struct {
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Containers is the directory of per-layer container files on the client
// and its eviction bounds.
type Containers struct {
	// Env: STORAGE_CONTAINERS_DIR
	Dir string `env:"DIR"`
	// Env: STORAGE_CONTAINERS_MAX_BYTES
	MaxBytes int64 `env:"MAX_BYTES"`
	// Env: STORAGE_CONTAINERS_MAX_AGE
	MaxAge time.Duration `env:"MAX_AGE"`
}

// Server is the inbound HTTP listener: the delta API on the server binary,
// the control API on the client binary.
type Server struct {
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter is the client's connection to the remote Web GIS.
type Adapter struct {
	// Env: ADAPTER_BASE_URL
	BaseURL string `env:"BASE_URL"`
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
	// Env: ADAPTER_ACCESS_TOKEN
	AccessToken string `env:"ACCESS_TOKEN"`
}

// Sync controls sessions and their retry policy.
type Sync struct {
	// Layers attached at startup. Env: SYNC_LAYERS (comma separated)
	Layers []string `env:"LAYERS" envSeparator:","`
	// Env: SYNC_INTERVAL
	Interval time.Duration `env:"INTERVAL"`
	// Env: SYNC_WORKERS
	Workers int `env:"WORKERS"`
	// Env: SYNC_PAGE_SIZE
	PageSize int `env:"PAGE_SIZE"`
	// Env: SYNC_UPLOAD_BATCH_SIZE
	UploadBatchSize int `env:"UPLOAD_BATCH_SIZE"`
	// Env: SYNC_RETRY_BASE
	RetryBase time.Duration `env:"RETRY_BASE"`
	// Env: SYNC_RETRY_MAX_DELAY
	RetryMaxDelay time.Duration `env:"RETRY_MAX_DELAY"`
	// Env: SYNC_RETRY_ATTEMPTS
	RetryAttempts uint64 `env:"RETRY_ATTEMPTS"`
}

type Workers struct {
	// Env: WORKERS_CACHE_SWEEP_INTERVAL
	CacheSweepInterval time.Duration `env:"CACHE_SWEEP_INTERVAL"`
}

// LayerSeed declares a layer served by the Web GIS server.
type LayerSeed struct {
	ID                string        `json:"id" yaml:"id"`
	Schema            models.Schema `json:"schema" yaml:"schema"`
	VersioningEnabled bool          `json:"versioning_enabled" yaml:"versioning_enabled"`
}

// GetStructuredConfig loads configuration from env, flags and the optional
// config file. For scalar fields the first non-zero source wins, in that
// order.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(commandLineArgs()).
		withFile().
		build()
}
