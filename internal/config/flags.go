package config

import (
	"errors"
	"flag"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// NetAddress is a host:port flag value.
type NetAddress struct {
	Host string
	Port int
}

func commandLineArgs() []string {
	return os.Args[1:]
}

// parseFlags parses args into a [StructuredConfig].
//
//	-a               listen address host:port
//	-d               server database DSN
//	-dir             container directory
//	-remote          remote Web GIS base URL
//	-token           remote access token
//	-layers          comma-separated layer ids to attach
//	-sync-interval   period of the background sync job
//	-workers         concurrent sync sessions
//	-c / -config     JSON or YAML config file
//	-token-sign-key  server token signing key
//	-token-issuer    server token issuer
//	-token-duration  server token lifetime
//	-request-timeout request timeout
//	-hash-key        upload body HMAC key
//	-log-file        log file path
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("geosync", flag.ContinueOnError)

	var (
		listenAddress  NetAddress
		databaseDSN    string
		containerDir   string
		remoteURL      string
		accessToken    string
		layers         string
		syncInterval   time.Duration
		workers        int
		configPath     string
		tokenSignKey   string
		tokenIssuer    string
		tokenDuration  time.Duration
		requestTimeout time.Duration
		hashKey        string
		logFile        string
	)

	fs.Var(&listenAddress, "a", "Listen address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Server database DSN")
	fs.StringVar(&containerDir, "dir", "", "Container directory")
	fs.StringVar(&remoteURL, "remote", "", "Remote Web GIS base URL")
	fs.StringVar(&accessToken, "token", "", "Remote access token")
	fs.StringVar(&layers, "layers", "", "Comma-separated layer ids")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Background sync interval (e.g. 5m)")
	fs.IntVar(&workers, "workers", 0, "Concurrent sync sessions")
	fs.StringVar(&configPath, "c", "", "Config file path")
	fs.StringVar(&configPath, "config", "", "Config file path (alias)")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Token lifetime (e.g. 24h)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g. 30s)")
	fs.StringVar(&hashKey, "hash-key", "", "Upload body HMAC key")
	fs.StringVar(&logFile, "log-file", "", "Log file path")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	var layerIDs []string
	for _, id := range strings.Split(layers, ",") {
		if id = strings.TrimSpace(id); id != "" {
			layerIDs = append(layerIDs, id)
		}
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
			HashKey:       hashKey,
			LogFile:       logFile,
		},
		Storage: Storage{
			DB:         DB{DSN: databaseDSN},
			Containers: Containers{Dir: containerDir},
		},
		Server: Server{
			HTTPAddress:    listenAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			BaseURL:        remoteURL,
			RequestTimeout: requestTimeout,
			AccessToken:    accessToken,
		},
		Sync: Sync{
			Layers:   layerIDs,
			Interval: syncInterval,
			Workers:  workers,
		},
		ConfigFilePath: configPath,
	}, nil
}

// String returns host:port, or "" when unset.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}
	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses host:port. The host must be an IP address, "localhost" or empty
// (all interfaces).
func (a *NetAddress) Set(s string) error {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}
	if port < 1 || port > 65535 {
		return errors.New("port must be in 1..65535")
	}
	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}
