package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/privylocker/privy-locker/internal/logger"
	"github.com/privylocker/privy-locker/models"
)

// sessionRepository is the PostgreSQL-backed implementation of
// [SessionRepository]. It manages the "share_sessions" table.
//
// Sessions live at derived addresses, so writes are upserts and revocation
// is a conditional update that never deletes the tombstone row.
type sessionRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewSessionRepository constructs a [SessionRepository] backed by the
// provided database connection and logger.
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	logger.Debug().Msg("creating session repository")
	return &sessionRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert writes the session at its derived address with last-writer-wins
// semantics. Identity columns (owner, verifier, document) are immutable
// because the address is derived from them; only the lifecycle columns are
// updated on conflict.
func (r *sessionRepository) Upsert(ctx context.Context, session *models.ShareSession) error {
	log := logger.FromContext(ctx)

	_, err := r.db.ExecContext(ctx, upsertSession,
		session.Address,
		session.Owner,
		session.Verifier,
		session.Document,
		session.ConfidentialFieldHandle,
		session.CreatedAt,
		session.ExpiresAt,
		session.Revoked,
		session.GrantPending,
	)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.Upsert").Str("address", session.Address.String()).Msg("failed to upsert share session")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// Get loads the session record at addr.
//
// Error handling:
//   - No matching row → [ErrSessionNotFound].
//   - Scan failure → wrapped in [ErrScanningRow].
func (r *sessionRepository) Get(ctx context.Context, addr models.Address) (models.ShareSession, error) {
	log := logger.FromContext(ctx)

	var session models.ShareSession
	row := r.db.QueryRowContext(ctx, getSession, addr)

	err := row.Scan(
		&session.Address,
		&session.Owner,
		&session.Verifier,
		&session.Document,
		&session.ConfidentialFieldHandle,
		&session.CreatedAt,
		&session.ExpiresAt,
		&session.Revoked,
		&session.GrantPending,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ShareSession{}, ErrSessionNotFound
		}
		log.Err(err).Str("func", "*sessionRepository.Get").Str("address", addr.String()).Msg("error: scanning session row")
		return models.ShareSession{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return session, nil
}

// MarkRevoked sets the revocation tombstone and re-arms grant_pending so
// the reconciler retries the vault grant retraction.
//
// The update is conditioned on revoked = FALSE; touching zero rows means
// the session is either already revoked (a no-op by contract) or missing,
// which is disambiguated with a follow-up read.
func (r *sessionRepository) MarkRevoked(ctx context.Context, addr models.Address) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, markSessionRevoked, addr)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.MarkRevoked").Str("address", addr.String()).Msg("failed to mark session revoked")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		if _, getErr := r.Get(ctx, addr); getErr != nil {
			return getErr
		}
	}

	return nil
}

// SetGrantPending updates the two-phase saga flag.
//
// Returns [ErrSessionNotFound] when no session exists at addr.
func (r *sessionRepository) SetGrantPending(ctx context.Context, addr models.Address, pending bool) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, setSessionGrantPending, addr, pending)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.SetGrantPending").Str("address", addr.String()).Msg("failed to update grant_pending flag")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// ListGrantPending returns up to limit sessions whose vault grant (or
// grant retraction, for revoked sessions) has not been confirmed, oldest
// first. This is the reconciler's work queue.
func (r *sessionRepository) ListGrantPending(ctx context.Context, limit uint64) ([]models.ShareSession, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListGrantPendingQuery(limit)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.ListGrantPending").Msg("failed to build work queue query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.ListGrantPending").Msg("failed to execute work queue query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	sessions := make([]models.ShareSession, 0, 16)

	for rows.Next() {
		var session models.ShareSession

		scanErr := rows.Scan(
			&session.Address,
			&session.Owner,
			&session.Verifier,
			&session.Document,
			&session.ConfidentialFieldHandle,
			&session.CreatedAt,
			&session.ExpiresAt,
			&session.Revoked,
			&session.GrantPending,
		)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*sessionRepository.ListGrantPending").Msg("failed to scan session row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		sessions = append(sessions, session)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "*sessionRepository.ListGrantPending").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return sessions, nil
}
