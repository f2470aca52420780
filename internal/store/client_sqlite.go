package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/privylocker/privy-locker/internal/logger"
)

// NewConnectSQLite opens the client-local SQLite state database at
// statePath, creating the file if it does not yet exist.
func NewConnectSQLite(ctx context.Context, statePath string, log *logger.Logger) (*DB, error) {
	if err := createLocalDBFileIfNotExists(statePath); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating database file")
		return nil, fmt.Errorf("error creating database file")
	}

	conn, err := sql.Open("sqlite3", statePath)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB")
	}

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		return nil, err
	}
	log.Debug().Str("func", "NewConnectSQLite").Msg("connected to local state database successfully")

	return &DB{
		DB:     conn,
		logger: log,
	}, nil
}

// MigrateClientSchema applies the client-local schema. The statements are
// idempotent, so calling it on every startup is safe.
func (db *DB) MigrateClientSchema(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, clientSchema); err != nil {
		return fmt.Errorf("client schema migration failed: %w", err)
	}
	return nil
}

func createLocalDBFileIfNotExists(dbFile string) error {
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}

	return nil
}
