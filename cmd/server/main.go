package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-geo-sync/internal/config"
	"github.com/MKhiriev/go-geo-sync/internal/handler"
	"github.com/MKhiriev/go-geo-sync/internal/logger"
	"github.com/MKhiriev/go-geo-sync/internal/server"
	"github.com/MKhiriev/go-geo-sync/internal/service"
	"github.com/MKhiriev/go-geo-sync/internal/store"
	"github.com/MKhiriev/go-geo-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

// Usage:
//
//	server [flags]                 serve the delta API
//	server [flags] token <subject> print an access token and exit
func main() {
	buildInfo := models.NewBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	cfg, err := config.GetServerConfig()
	if err != nil {
		logger.NewLogger("geosync-server").Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.Version == "" {
		cfg.Version = buildInfo.Version
	}

	log := logger.NewFileLogger("geosync-server", cfg.LogFile)
	ctx := log.WithContext(context.Background())

	db, err := store.NewServerDB(ctx, cfg.DSN, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	services, err := service.NewServices(store.NewLayerRepository(db, log), cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	if subject, ok := tokenSubject(); ok {
		token, err := services.AuthService.CreateToken(ctx, subject)
		if err != nil {
			log.Fatal().Err(err).Msg("error issuing token")
		}
		fmt.Println(token)
		return
	}

	if err = services.DeltaService.SeedLayers(ctx, cfg.Layers); err != nil {
		log.Fatal().Err(err).Msg("error seeding layers")
	}

	handlers, err := handler.NewServerHandlers(services, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers.HTTP.Init(), cfg.HTTPAddress, cfg.RequestTimeout, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(ctx); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

// tokenSubject returns the subject of a "token <subject>" command. Flags
// before the command are consumed by the config loader.
func tokenSubject() (string, bool) {
	args := os.Args[1:]
	for i, arg := range args {
		if arg == "token" && i+1 < len(args) {
			return args[i+1], true
		}
	}
	return "", false
}

func printBuildInfo(info models.BuildInfo) {
	fmt.Printf("Build version: %s\n", info.Version)
	fmt.Printf("Build date: %s\n", info.Date)
	fmt.Printf("Build commit: %s\n", info.Commit)
}
