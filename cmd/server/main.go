// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/privylocker/privy-locker/internal/config"
	handlerhttp "github.com/privylocker/privy-locker/internal/handler/http"
	"github.com/privylocker/privy-locker/internal/logger"
	"github.com/privylocker/privy-locker/internal/protocol"
	"github.com/privylocker/privy-locker/internal/server"
	"github.com/privylocker/privy-locker/internal/service"
	"github.com/privylocker/privy-locker/internal/store"
	"github.com/privylocker/privy-locker/internal/vault"
	"github.com/privylocker/privy-locker/internal/workers"
	"github.com/privylocker/privy-locker/migrations"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("privy-locker-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to ledger database")
	}
	defer db.Close()

	if err = migrations.Migrate(db.DB); err != nil {
		log.Fatal().Err(err).Msg("error applying ledger migrations")
	}

	blobStore, err := store.NewDiskBlobStore(cfg.Storage.Blobs.Dir, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating blob store")
	}

	storages := store.NewStorages(db, blobStore, log)

	vaultClient, err := vault.NewHTTPVault(cfg.Vault, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating vault client")
	}

	policy := protocol.NewAllowListPolicy(cfg.Policy.AuthorizedVerifiers)
	ledger := store.NewLedger(storages.DocumentRepository, storages.SessionRepository)
	engine := protocol.NewEngine(ledger, vaultClient, policy, log)

	services := service.NewServices(storages, vaultClient, engine, cfg, log)

	handler := handlerhttp.NewHandler(services, log)

	srv, err := server.NewServer(handler.Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	reconciler := workers.NewGrantReconciler(storages.SessionRepository, vaultClient, cfg.Workers.ReconcileInterval, log)
	workers.NewWorkers(reconciler).Run(ctx)

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
