package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk layout shared by JSON and YAML files.
type fileConfig struct {
	App struct {
		Version       string   `json:"version" yaml:"version"`
		TokenSignKey  string   `json:"token_sign_key" yaml:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer" yaml:"token_issuer"`
		TokenDuration Duration `json:"token_duration" yaml:"token_duration"`
		HashKey       string   `json:"hash_key" yaml:"hash_key"`
		LogFile       string   `json:"log_file" yaml:"log_file"`
	} `json:"app" yaml:"app"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn" yaml:"dsn"`
		} `json:"db" yaml:"db"`
		Containers struct {
			Dir      string   `json:"dir" yaml:"dir"`
			MaxBytes int64    `json:"max_bytes" yaml:"max_bytes"`
			MaxAge   Duration `json:"max_age" yaml:"max_age"`
		} `json:"containers" yaml:"containers"`
	} `json:"storage" yaml:"storage"`

	Server struct {
		HTTPAddress    string   `json:"http_address" yaml:"http_address"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
	} `json:"server" yaml:"server"`

	Adapter struct {
		BaseURL        string   `json:"base_url" yaml:"base_url"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
		AccessToken    string   `json:"access_token" yaml:"access_token"`
	} `json:"adapter" yaml:"adapter"`

	Sync struct {
		Layers          []string `json:"layers" yaml:"layers"`
		Interval        Duration `json:"interval" yaml:"interval"`
		Workers         int      `json:"workers" yaml:"workers"`
		PageSize        int      `json:"page_size" yaml:"page_size"`
		UploadBatchSize int      `json:"upload_batch_size" yaml:"upload_batch_size"`
		RetryBase       Duration `json:"retry_base" yaml:"retry_base"`
		RetryMaxDelay   Duration `json:"retry_max_delay" yaml:"retry_max_delay"`
		RetryAttempts   uint64   `json:"retry_attempts" yaml:"retry_attempts"`
	} `json:"sync" yaml:"sync"`

	Workers struct {
		CacheSweepInterval Duration `json:"cache_sweep_interval" yaml:"cache_sweep_interval"`
	} `json:"workers" yaml:"workers"`

	Layers []LayerSeed `json:"layers" yaml:"layers"`
}

// parseFile reads a JSON or YAML config file, chosen by extension.
func parseFile(path string) (*StructuredConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err = yaml.Unmarshal(raw, &fc); err != nil {
			return nil, fmt.Errorf("error decoding yaml config: %w", err)
		}
	default:
		if err = json.Unmarshal(raw, &fc); err != nil {
			return nil, fmt.Errorf("error decoding json config: %w", err)
		}
	}

	return fc.toStructured(), nil
}

func (fc *fileConfig) toStructured() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Version:       fc.App.Version,
			TokenSignKey:  fc.App.TokenSignKey,
			TokenIssuer:   fc.App.TokenIssuer,
			TokenDuration: time.Duration(fc.App.TokenDuration),
			HashKey:       fc.App.HashKey,
			LogFile:       fc.App.LogFile,
		},
		Storage: Storage{
			DB: DB{DSN: fc.Storage.DB.DSN},
			Containers: Containers{
				Dir:      fc.Storage.Containers.Dir,
				MaxBytes: fc.Storage.Containers.MaxBytes,
				MaxAge:   time.Duration(fc.Storage.Containers.MaxAge),
			},
		},
		Server: Server{
			HTTPAddress:    fc.Server.HTTPAddress,
			RequestTimeout: time.Duration(fc.Server.RequestTimeout),
		},
		Adapter: Adapter{
			BaseURL:        fc.Adapter.BaseURL,
			RequestTimeout: time.Duration(fc.Adapter.RequestTimeout),
			AccessToken:    fc.Adapter.AccessToken,
		},
		Sync: Sync{
			Layers:          fc.Sync.Layers,
			Interval:        time.Duration(fc.Sync.Interval),
			Workers:         fc.Sync.Workers,
			PageSize:        fc.Sync.PageSize,
			UploadBatchSize: fc.Sync.UploadBatchSize,
			RetryBase:       time.Duration(fc.Sync.RetryBase),
			RetryMaxDelay:   time.Duration(fc.Sync.RetryMaxDelay),
			RetryAttempts:   fc.Sync.RetryAttempts,
		},
		Workers: Workers{
			CacheSweepInterval: time.Duration(fc.Workers.CacheSweepInterval),
		},
		Layers: fc.Layers,
	}
}

// Duration accepts "1h30m" style strings or integer nanoseconds in JSON and
// YAML.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(parsed)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var asInt int64
	if err := node.Decode(&asInt); err == nil {
		*d = Duration(asInt)
		return nil
	}

	var asString string
	if err := node.Decode(&asString); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(asString)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}
