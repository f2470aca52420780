package service

import (
	"github.com/privylocker/privy-locker/internal/config"
	"github.com/privylocker/privy-locker/internal/logger"
	"github.com/privylocker/privy-locker/internal/store"
	"github.com/privylocker/privy-locker/internal/vault"
)

type Services struct {
	AuthService     AuthService
	DocumentService DocumentService
	ShareService    ShareService
	BlobService     BlobService
}

func NewServices(storages *store.Storages, v vault.Vault, engine ShareEngine, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:     NewAuthService(cfg.App, logger),
		DocumentService: NewDocumentService(storages.ProfileRepository, storages.DocumentRepository, v, logger),
		ShareService:    NewShareService(engine, cfg.App, logger),
		BlobService:     NewBlobService(storages.BlobStore, logger),
	}
}
