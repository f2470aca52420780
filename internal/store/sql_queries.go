package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/privylocker/privy-locker/models"
)

const (
	ensureProfile = `INSERT INTO user_profiles (address, owner, document_count, created_at)
    VALUES ($1, $2, $3, $4)
    ON CONFLICT (address) DO NOTHING;`

	getProfile = `SELECT address, owner, document_count, created_at
    FROM user_profiles
    WHERE address = $1;`

	bumpDocumentCount = `UPDATE user_profiles
    SET document_count = document_count + 1
    WHERE address = $1 AND document_count = $2;`

	saveDocument = `INSERT INTO documents (
			address,
			owner,
			fingerprint,
			encrypted_blob_uri,
			confidential_field_handle,
			doc_index,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7);`

	getDocument = `SELECT address, owner, fingerprint, encrypted_blob_uri, confidential_field_handle, doc_index, created_at
    FROM documents
    WHERE address = $1;`

	upsertSession = `INSERT INTO share_sessions (
			address,
			owner,
			verifier,
			document,
			confidential_field_handle,
			created_at,
			expires_at,
			revoked,
			grant_pending
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (address) DO UPDATE SET
			confidential_field_handle = EXCLUDED.confidential_field_handle,
			created_at = EXCLUDED.created_at,
			expires_at = EXCLUDED.expires_at,
			revoked = EXCLUDED.revoked,
			grant_pending = EXCLUDED.grant_pending;`

	getSession = `SELECT address, owner, verifier, document, confidential_field_handle, created_at, expires_at, revoked, grant_pending
    FROM share_sessions
    WHERE address = $1;`

	markSessionRevoked = `UPDATE share_sessions
    SET revoked = TRUE, grant_pending = TRUE
    WHERE address = $1 AND revoked = FALSE;`

	setSessionGrantPending = `UPDATE share_sessions
    SET grant_pending = $2
    WHERE address = $1;`
)

// psql is the shared statement builder configured for PostgreSQL
// positional placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildListByOwnerQuery builds the owner dashboard listing query,
// narrowed by the optional filter fields.
func buildListByOwnerQuery(owner models.Identity, filter DocumentFilter) (string, []any, error) {
	builder := psql.
		Select("address", "owner", "fingerprint", "encrypted_blob_uri", "confidential_field_handle", "doc_index", "created_at").
		From("documents").
		Where(sq.Eq{"owner": string(owner)}).
		OrderBy("doc_index ASC")

	if filter.Fingerprint != "" {
		builder = builder.Where(sq.Eq{"fingerprint": filter.Fingerprint})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}

	return builder.ToSql()
}

// buildListGrantPendingQuery builds the reconciler work queue query:
// oldest unconfirmed sessions first.
func buildListGrantPendingQuery(limit uint64) (string, []any, error) {
	builder := psql.
		Select("address", "owner", "verifier", "document", "confidential_field_handle", "created_at", "expires_at", "revoked", "grant_pending").
		From("share_sessions").
		Where(sq.Eq{"grant_pending": true}).
		OrderBy("created_at ASC")

	if limit > 0 {
		builder = builder.Limit(limit)
	}

	return builder.ToSql()
}
