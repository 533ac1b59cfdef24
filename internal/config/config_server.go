package config

import (
	"fmt"
	"time"
)

const (
	defaultServerAddress = "localhost:8080"
	defaultTokenDuration = 24 * time.Hour
	defaultTokenIssuer   = "go-geo-sync"
)

// ServerConfig is the configuration view of the reference Web GIS server.
type ServerConfig struct {
	HTTPAddress    string
	RequestTimeout time.Duration
	DSN            string
	TokenSignKey   string
	TokenIssuer    string
	TokenDuration  time.Duration
	HashKey        string
	LogFile        string
	Version        string
	Layers         []LayerSeed
}

// GetServerConfig loads the structured config and maps the server view.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := NewServerConfig(cfg)
	return serverCfg, serverCfg.validate()
}

func NewServerConfig(cfg *StructuredConfig) *ServerConfig {
	return &ServerConfig{
		HTTPAddress:    orDefault(cfg.Server.HTTPAddress, defaultServerAddress),
		RequestTimeout: orDefault(cfg.Server.RequestTimeout, defaultRequestTimeout),
		DSN:            cfg.Storage.DB.DSN,
		TokenSignKey:   cfg.App.TokenSignKey,
		TokenIssuer:    orDefault(cfg.App.TokenIssuer, defaultTokenIssuer),
		TokenDuration:  orDefault(cfg.App.TokenDuration, defaultTokenDuration),
		HashKey:        cfg.App.HashKey,
		LogFile:        cfg.App.LogFile,
		Version:        cfg.App.Version,
		Layers:         cfg.Layers,
	}
}

func (cfg *ServerConfig) validate() error {
	if cfg.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.TokenSignKey == "" {
		return ErrInvalidAppConfigs
	}

	seen := make(map[string]struct{}, len(cfg.Layers))
	for _, l := range cfg.Layers {
		if l.ID == "" {
			return fmt.Errorf("%w: layer without id", ErrInvalidLayerConfigs)
		}
		if _, dup := seen[l.ID]; dup {
			return fmt.Errorf("%w: duplicate layer %q", ErrInvalidLayerConfigs, l.ID)
		}
		seen[l.ID] = struct{}{}
		for _, c := range l.Schema.Columns {
			if !c.Type.Valid() {
				return fmt.Errorf("%w: layer %q column %q", ErrInvalidLayerConfigs, l.ID, c.Name)
			}
		}
	}

	return nil
}
