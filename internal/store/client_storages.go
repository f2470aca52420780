package store

import (
	"context"
	"fmt"

	"github.com/privylocker/privy-locker/internal/logger"
)

// ClientStorages groups the client-side repositories into a single value
// that can be passed around the client service layer.
type ClientStorages struct {
	// LocalState is the SQLite-backed device-local preference and session
	// store.
	LocalState LocalStateRepository

	db *DB
}

// Close releases the underlying SQLite connection.
func (s *ClientStorages) Close() error {
	return s.db.Close()
}

// NewClientStorages initialises the client storage layer: it opens the
// SQLite connection at statePath (creating the file if needed), applies
// the client schema, and wires a fresh [LocalStateRepository].
func NewClientStorages(statePath string, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new client storages...")

	db, err := NewConnectSQLite(context.Background(), statePath, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.MigrateClientSchema(context.Background()); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		LocalState: NewLocalStateRepository(db, logger),
		db:         db,
	}, nil
}
