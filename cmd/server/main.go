package main

import (
	"context"
	"fmt"

	"github.com/SAMAymen/formix/internal/adapter"
	"github.com/SAMAymen/formix/internal/config"
	handlerhttp "github.com/SAMAymen/formix/internal/handler/http"
	"github.com/SAMAymen/formix/internal/logger"
	"github.com/SAMAymen/formix/internal/server"
	"github.com/SAMAymen/formix/internal/service"
	"github.com/SAMAymen/formix/internal/store"
	"github.com/SAMAymen/formix/internal/workers"
	"github.com/SAMAymen/formix/migrations"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("formix-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = buildVersion
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}

	if err = migrations.Migrate(db.DB); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	repos := store.NewRepositories(db, log)

	sheets, err := adapter.NewSheetsAdapter(cfg.Google, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating sheets adapter")
	}
	oauth, err := adapter.NewOAuthAdapter(cfg.Google, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating oauth adapter")
	}
	notifier := adapter.NewSMTPNotifier(cfg.Notify, log)

	services := service.NewServices(repos, service.Adapters{
		Sheets:   sheets,
		OAuth:    oauth,
		Notifier: notifier,
	}, cfg, log)

	handler := handlerhttp.NewHandler(services, log)

	srv, err := server.NewServer(handler, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	workers.NewWorkers(ctx, services, cfg.Workers, log).Run()

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
