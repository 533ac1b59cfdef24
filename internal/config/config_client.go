package config

import (
	"fmt"
	"time"
)

const (
	defaultPageSize           = 500
	defaultUploadBatchSize    = 200
	defaultRetryBase          = 500 * time.Millisecond
	defaultRetryMaxDelay      = 30 * time.Second
	defaultRetryAttempts      = 5
	defaultSyncWorkers        = 4
	defaultSyncInterval       = 5 * time.Minute
	defaultRequestTimeout     = 30 * time.Second
	defaultControlAddress     = "localhost:8090"
	defaultCacheSweepInterval = 10 * time.Minute
)

// ClientSync holds session, paging and retry settings of the sync engine.
type ClientSync struct {
	// Layers are attached at startup.
	Layers          []string
	Interval        time.Duration
	Workers         int
	PageSize        int
	UploadBatchSize int
	RetryBase       time.Duration
	RetryMaxDelay   time.Duration
	RetryAttempts   uint64
}

// ClientAdapter is the connection to the remote Web GIS.
type ClientAdapter struct {
	BaseURL        string
	RequestTimeout time.Duration
	AccessToken    string
	HashKey        string
}

// ClientContainers bounds the local container cache.
type ClientContainers struct {
	Dir           string
	MaxBytes      int64
	MaxAge        time.Duration
	SweepInterval time.Duration
}

// ClientConfig is the configuration view of the sync client binary.
type ClientConfig struct {
	// ControlAddress is the listen address of the host control API.
	ControlAddress string
	LogFile        string
	Adapter        ClientAdapter
	Containers     ClientContainers
	Sync           ClientSync
}

// GetClientConfig loads the structured config and maps the client view.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := NewClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

// NewClientConfig maps cfg into a [ClientConfig], filling defaults for every
// unset tuning knob.
func NewClientConfig(cfg *StructuredConfig) *ClientConfig {
	c := &ClientConfig{
		ControlAddress: orDefault(cfg.Server.HTTPAddress, defaultControlAddress),
		LogFile:        cfg.App.LogFile,
		Adapter: ClientAdapter{
			BaseURL:        cfg.Adapter.BaseURL,
			RequestTimeout: orDefault(cfg.Adapter.RequestTimeout, defaultRequestTimeout),
			AccessToken:    cfg.Adapter.AccessToken,
			HashKey:        cfg.App.HashKey,
		},
		Containers: ClientContainers{
			Dir:           cfg.Storage.Containers.Dir,
			MaxBytes:      cfg.Storage.Containers.MaxBytes,
			MaxAge:        cfg.Storage.Containers.MaxAge,
			SweepInterval: orDefault(cfg.Workers.CacheSweepInterval, defaultCacheSweepInterval),
		},
		Sync: ClientSync{
			Layers:          cfg.Sync.Layers,
			Interval:        orDefault(cfg.Sync.Interval, defaultSyncInterval),
			Workers:         orDefault(cfg.Sync.Workers, defaultSyncWorkers),
			PageSize:        orDefault(cfg.Sync.PageSize, defaultPageSize),
			UploadBatchSize: orDefault(cfg.Sync.UploadBatchSize, defaultUploadBatchSize),
			RetryBase:       orDefault(cfg.Sync.RetryBase, defaultRetryBase),
			RetryMaxDelay:   orDefault(cfg.Sync.RetryMaxDelay, defaultRetryMaxDelay),
			RetryAttempts:   orDefault(cfg.Sync.RetryAttempts, defaultRetryAttempts),
		},
	}
	return c
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.BaseURL == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Containers.Dir == "" || cfg.Containers.MaxBytes < 0 || cfg.Containers.MaxAge < 0 {
		return ErrInvalidStorageConfigs
	}

	if cfg.Sync.Workers < 1 || cfg.Sync.PageSize < 1 || cfg.Sync.UploadBatchSize < 1 ||
		cfg.Sync.RetryBase <= 0 || cfg.Sync.RetryMaxDelay < cfg.Sync.RetryBase {
		return ErrInvalidSyncConfigs
	}

	return nil
}

func orDefault[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
