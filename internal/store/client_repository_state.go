package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/privylocker/privy-locker/internal/logger"
	"github.com/privylocker/privy-locker/models"
)

// localStateRepository is the SQLite-backed implementation of
// [LocalStateRepository].
type localStateRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewLocalStateRepository constructs a [LocalStateRepository] backed by
// the provided local database connection and logger.
func NewLocalStateRepository(db *DB, logger *logger.Logger) LocalStateRepository {
	logger.Debug().Msg("creating local state repository")
	return &localStateRepository{
		db:     db,
		logger: logger,
	}
}

// HideDocument implements [LocalStateRepository].
func (r *localStateRepository) HideDocument(ctx context.Context, addr models.Address) error {
	if _, err := r.db.ExecContext(ctx, hideDocument, addr, time.Now()); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

// UnhideDocument implements [LocalStateRepository].
func (r *localStateRepository) UnhideDocument(ctx context.Context, addr models.Address) error {
	if _, err := r.db.ExecContext(ctx, unhideDocument, addr); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

// ListHidden implements [LocalStateRepository].
func (r *localStateRepository) ListHidden(ctx context.Context) ([]models.Address, error) {
	log := r.logger

	rows, err := r.db.QueryContext(ctx, listHiddenDocuments)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	hidden := make([]models.Address, 0, 8)

	for rows.Next() {
		var addr models.Address
		if scanErr := rows.Scan(&addr); scanErr != nil {
			log.Err(scanErr).Str("func", "*localStateRepository.ListHidden").Msg("failed to scan hidden document row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		hidden = append(hidden, addr)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return hidden, nil
}

// SaveSalt implements [LocalStateRepository].
func (r *localStateRepository) SaveSalt(ctx context.Context, salt []byte) error {
	if _, err := r.db.ExecContext(ctx, saveClientMeta, sealingSaltKey, salt); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

// LoadSalt implements [LocalStateRepository].
func (r *localStateRepository) LoadSalt(ctx context.Context) ([]byte, error) {
	var salt []byte
	if err := r.db.QueryRowContext(ctx, getClientMeta, sealingSaltKey).Scan(&salt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLocalSaltNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return salt, nil
}

// SaveToken implements [LocalStateRepository].
func (r *localStateRepository) SaveToken(ctx context.Context, identity models.Identity, token string) error {
	if _, err := r.db.ExecContext(ctx, saveSessionToken, string(identity), token, time.Now()); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

// LoadToken implements [LocalStateRepository].
func (r *localStateRepository) LoadToken(ctx context.Context, identity models.Identity) (string, error) {
	var token string
	if err := r.db.QueryRowContext(ctx, getSessionToken, string(identity)).Scan(&token); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrLocalTokenNotFound
		}
		return "", fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return token, nil
}
