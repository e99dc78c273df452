package main

import (
	"context"
	"fmt"

	"github.com/SAMAymen/formix/internal/adapter"
	"github.com/SAMAymen/formix/internal/client"
	"github.com/SAMAymen/formix/internal/config"
	"github.com/SAMAymen/formix/internal/logger"
	"github.com/SAMAymen/formix/internal/service"
	"github.com/SAMAymen/formix/internal/store"
	"github.com/SAMAymen/formix/internal/tui"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("formix-widget")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	db, err := store.NewConnectSQLite(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}
	localStore := store.NewLocalStore(db, log)

	api, err := adapter.NewWidgetAPI(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server transport")
	}

	services, err := service.NewClientServices(localStore, api, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create client services")
	}

	ui, err := tui.New(services, cfg.Widget, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	app, err := client.NewApp(services, localStore, ui, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
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
