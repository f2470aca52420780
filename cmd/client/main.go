package main

import (
	"context"
	"fmt"
	"os"

	"github.com/privylocker/privy-locker/internal/adapter"
	"github.com/privylocker/privy-locker/internal/client"
	"github.com/privylocker/privy-locker/internal/config"
	"github.com/privylocker/privy-locker/internal/logger"
	"github.com/privylocker/privy-locker/internal/service"
	"github.com/privylocker/privy-locker/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("privy-locker-client")

	cfg, fs, err := config.GetClientConfig("privy-locker-client", os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server adapter")
	}

	storages, err := store.NewClientStorages(cfg.App.StatePath, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error opening local state database")
	}
	defer storages.Close()

	services := service.NewClientServices(storages, serverAdapter, cfg, log)

	var command string
	args := fs.Args()
	if len(args) > 0 {
		command = args[0]
		args = args[1:]
	}

	app := client.NewApp(services, log)
	if err := app.Run(context.Background(), command, args); err != nil {
		log.Fatal().Err(err).Str("command", command).Msg("command failed")
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
