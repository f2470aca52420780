package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/privylocker/privy-locker/internal/logger"
	"github.com/privylocker/privy-locker/models"
)

// profileRepository is the PostgreSQL-backed implementation of
// [ProfileRepository]. It manages the "user_profiles" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type profileRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewProfileRepository constructs a [ProfileRepository] backed by the
// provided database connection and logger.
func NewProfileRepository(db *DB, logger *logger.Logger) ProfileRepository {
	logger.Debug().Msg("creating profile repository")
	return &profileRepository{
		db:     db,
		logger: logger,
	}
}

// Get loads the profile record at addr.
//
// Error handling:
//   - No matching row → [ErrProfileNotFound].
//   - Any other driver-level error → wrapped in [ErrExecutingQuery].
func (r *profileRepository) Get(ctx context.Context, addr models.Address) (models.UserProfile, error) {
	log := logger.FromContext(ctx)

	var profile models.UserProfile
	row := r.db.QueryRowContext(ctx, getProfile, addr)

	if err := row.Scan(&profile.Address, &profile.Owner, &profile.DocumentCount, &profile.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.UserProfile{}, ErrProfileNotFound
		}
		log.Err(err).Str("func", "*profileRepository.Get").Str("address", addr.String()).Msg("error: scanning profile row")
		return models.UserProfile{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return profile, nil
}

// Ensure creates the profile record if it does not exist yet and returns
// the stored record either way.
//
// The INSERT carries ON CONFLICT DO NOTHING, so concurrent first
// registrations by the same owner converge on a single row; the follow-up
// read returns whichever record won.
func (r *profileRepository) Ensure(ctx context.Context, profile models.UserProfile) (models.UserProfile, error) {
	log := logger.FromContext(ctx)

	_, err := r.db.ExecContext(ctx, ensureProfile, profile.Address, profile.Owner, profile.DocumentCount, profile.CreatedAt)
	if err != nil {
		log.Err(err).Str("func", "*profileRepository.Ensure").Str("address", profile.Address.String()).Msg("failed to execute profile insert")
		return models.UserProfile{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return r.Get(ctx, profile.Address)
}
