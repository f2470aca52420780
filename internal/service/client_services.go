package service

import (
	"github.com/privylocker/privy-locker/internal/adapter"
	"github.com/privylocker/privy-locker/internal/config"
	"github.com/privylocker/privy-locker/internal/crypto"
	"github.com/privylocker/privy-locker/internal/logger"
	"github.com/privylocker/privy-locker/internal/store"
)

// ClientServices bundles the client-side services.
type ClientServices struct {
	Locker ClientLockerService
}

// NewClientServices wires the client service layer to the server adapter
// and the device-local state store.
func NewClientServices(storages *store.ClientStorages, server adapter.ServerAdapter, cfg *config.ClientConfig, logger *logger.Logger) *ClientServices {
	return &ClientServices{
		Locker: NewClientLockerService(server, storages.LocalState, crypto.NewSealService(), cfg.App, logger),
	}
}
