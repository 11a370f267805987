package main

import (
	"context"
	"os"

	"github.com/MKhiriev/go-community-access/internal/adapter"
	"github.com/MKhiriev/go-community-access/internal/config"
	"github.com/MKhiriev/go-community-access/internal/handler"
	"github.com/MKhiriev/go-community-access/internal/logger"
	"github.com/MKhiriev/go-community-access/internal/server"
	"github.com/MKhiriev/go-community-access/internal/service"
	"github.com/MKhiriev/go-community-access/internal/store"
	"github.com/MKhiriev/go-community-access/internal/views"
	"github.com/MKhiriev/go-community-access/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	exitCode := 0
	// registered first so deferred cleanups run before the process exits
	defer func() { os.Exit(exitCode) }()

	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	log := logger.NewLogger("community-access-server")
	log.Info().
		Str("version", buildInfo.Version).
		Str("commit", buildInfo.Commit).
		Str("built", buildInfo.Date).
		Msg("starting community access server")

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if err := log.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}

	if !buildInfo.Stamped() {
		log.Warn().Msg("binary was built without a version stamp")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = buildInfo.Version
	}

	log.Debug().
		Str("http_address", cfg.Server.HTTPAddress).
		Str("grpc_address", cfg.Server.GRPCAddress).
		Str("version", cfg.App.Version).
		Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Err(err).Msg("error closing storages")
		}
	}()

	gateway := adapter.NewWebhookMessageGateway(cfg.Mailer, log)

	renderer, err := views.NewRenderer()
	if err != nil {
		log.Fatal().Err(err).Msg("error parsing templates")
	}

	services, err := service.NewServices(storages, gateway, renderer, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, renderer, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err := srv.RunServer(); err != nil {
		log.Err(err).Str("build", buildInfo.String()).Msg("server stopped with error")
		exitCode = 1
	}
}
