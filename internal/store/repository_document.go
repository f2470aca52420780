package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"

	"github.com/privylocker/privy-locker/internal/logger"
	"github.com/privylocker/privy-locker/models"
)

// documentRepository is the PostgreSQL-backed implementation of
// [DocumentRepository]. It manages the "documents" table and keeps the
// owning profile's document counter in step.
type documentRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewDocumentRepository constructs a [DocumentRepository] backed by the
// provided database connection and logger.
func NewDocumentRepository(db *DB, logger *logger.Logger) DocumentRepository {
	logger.Debug().Msg("creating document repository")
	return &documentRepository{
		db:     db,
		logger: logger,
	}
}

// Save inserts the document and bumps the profile counter transactionally.
//
// The counter bump is conditioned on document_count = doc.Index. When a
// concurrent registration claimed the slot first the bump touches zero
// rows, the transaction is rolled back and [ErrDocumentIndexConflict] is
// returned so the caller can re-derive the address and retry.
//
// Error handling:
//   - Counter mismatch or missing profile → [ErrDocumentIndexConflict].
//   - PostgreSQL unique_violation (23505) on the insert → [ErrDocumentIndexConflict],
//     because a duplicate address means the same slot was taken.
//   - Any other driver-level error → wrapped in the low-level sentinels.
func (r *documentRepository) Save(ctx context.Context, profileAddr models.Address, doc *models.Document) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*documentRepository.Save").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, bumpDocumentCount, profileAddr, doc.Index)
	if err != nil {
		log.Err(err).Str("func", "*documentRepository.Save").Str("profile", profileAddr.String()).Msg("failed to bump profile document count")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		log.Warn().
			Str("func", "*documentRepository.Save").
			Str("profile", profileAddr.String()).
			Uint64("index", doc.Index).
			Msg("document index no longer matches profile counter")
		return ErrDocumentIndexConflict
	}

	_, err = tx.ExecContext(ctx, saveDocument,
		doc.Address,
		doc.Owner,
		doc.Fingerprint,
		doc.EncryptedBlobURI,
		doc.ConfidentialFieldHandle,
		doc.Index,
		doc.CreatedAt,
	)
	if err != nil {
		log.Err(err).Str("func", "*documentRepository.Save").Str("address", doc.Address.String()).Msg("failed to insert document")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return ErrDocumentIndexConflict
		default:
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*documentRepository.Save").Str("address", doc.Address.String()).Msg("failed to commit document insert")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// Get loads the document record at addr.
//
// Error handling:
//   - No matching row → [ErrDocumentNotFound].
//   - Scan failure → wrapped in [ErrScanningRow].
func (r *documentRepository) Get(ctx context.Context, addr models.Address) (models.Document, error) {
	log := logger.FromContext(ctx)

	var doc models.Document
	row := r.db.QueryRowContext(ctx, getDocument, addr)

	err := row.Scan(
		&doc.Address,
		&doc.Owner,
		&doc.Fingerprint,
		&doc.EncryptedBlobURI,
		&doc.ConfidentialFieldHandle,
		&doc.Index,
		&doc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Document{}, ErrDocumentNotFound
		}
		log.Err(err).Str("func", "*documentRepository.Get").Str("address", addr.String()).Msg("error: scanning document row")
		return models.Document{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return doc, nil
}

// ListByOwner returns the owner's documents ordered by index, narrowed by
// the optional filter. The query is built dynamically with squirrel since
// both filter fields are optional.
func (r *documentRepository) ListByOwner(ctx context.Context, owner models.Identity, filter DocumentFilter) ([]models.Document, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListByOwnerQuery(owner, filter)
	if err != nil {
		log.Err(err).Str("func", "*documentRepository.ListByOwner").Msg("failed to build listing query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*documentRepository.ListByOwner").Msg("failed to execute listing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	docs := make([]models.Document, 0, 16)

	for rows.Next() {
		var doc models.Document

		scanErr := rows.Scan(
			&doc.Address,
			&doc.Owner,
			&doc.Fingerprint,
			&doc.EncryptedBlobURI,
			&doc.ConfidentialFieldHandle,
			&doc.Index,
			&doc.CreatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*documentRepository.ListByOwner").Msg("failed to scan document row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		docs = append(docs, doc)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "*documentRepository.ListByOwner").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return docs, nil
}
