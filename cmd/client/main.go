package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-geo-sync/internal/client"
	"github.com/MKhiriev/go-geo-sync/internal/config"
	"github.com/MKhiriev/go-geo-sync/internal/logger"
	"github.com/MKhiriev/go-geo-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo(models.NewBuildInfo(buildVersion, buildDate, buildCommit))

	cfg, err := config.GetClientConfig()
	if err != nil {
		logger.NewLogger("geosync-client").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewFileLogger("geosync-client", cfg.LogFile)
	log.Debug().Str("remote", cfg.Adapter.BaseURL).
		Str("containers", cfg.Containers.Dir).
		Strs("layers", cfg.Sync.Layers).
		Msg("received configs")

	app, err := client.NewApp(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(log.WithContext(context.Background())); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func printBuildInfo(info models.BuildInfo) {
	fmt.Printf("Build version: %s\n", info.Version)
	fmt.Printf("Build date: %s\n", info.Date)
	fmt.Printf("Build commit: %s\n", info.Commit)
}
