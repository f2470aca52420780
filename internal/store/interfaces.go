// Package store implements the persistence layer of the locker service:
// the PostgreSQL-backed ledger repositories (profiles, documents, share
// sessions) and the disk-backed blob content store.
package store

import (
	"context"

	"github.com/privylocker/privy-locker/models"
)

// ProfileRepository persists [models.UserProfile] ledger records.
type ProfileRepository interface {
	// Get loads the profile at addr. Returns [ErrProfileNotFound] if no
	// record exists.
	Get(ctx context.Context, addr models.Address) (models.UserProfile, error)

	// Ensure creates the profile record if it does not exist yet and
	// returns the stored record either way. Profiles are created
	// implicitly on the owner's first document registration.
	Ensure(ctx context.Context, profile models.UserProfile) (models.UserProfile, error)
}

// DocumentRepository persists [models.Document] ledger records.
type DocumentRepository interface {
	// Save inserts the document and bumps the owning profile's
	// document_count in one transaction. The profile counter must equal
	// doc.Index at commit time; [ErrDocumentIndexConflict] is returned
	// otherwise, letting the caller re-derive and retry.
	Save(ctx context.Context, profileAddr models.Address, doc *models.Document) error

	// Get loads the document at addr. Returns [ErrDocumentNotFound] if no
	// record exists.
	Get(ctx context.Context, addr models.Address) (models.Document, error)

	// ListByOwner returns the owner's documents ordered by index,
	// narrowed by the optional filter.
	ListByOwner(ctx context.Context, owner models.Identity, filter DocumentFilter) ([]models.Document, error)
}

// DocumentFilter narrows ListByOwner results. Zero values mean "no
// constraint".
type DocumentFilter struct {
	// Fingerprint restricts to documents with this exact label.
	Fingerprint string

	// Limit caps the number of returned records when positive.
	Limit uint64
}

// SessionRepository persists [models.ShareSession] ledger records. It is
// the store-level realisation of the engine's ledger contract.
type SessionRepository interface {
	// Upsert writes the session at its address with last-writer-wins
	// semantics: re-sharing the same (document, verifier) pair replaces
	// the previous record.
	Upsert(ctx context.Context, session *models.ShareSession) error

	// Get loads the session at addr. Returns [ErrSessionNotFound] if no
	// record exists.
	Get(ctx context.Context, addr models.Address) (models.ShareSession, error)

	// MarkRevoked sets revoked and re-arms grant_pending on a session
	// that is not revoked yet; a second call is a no-op.
	MarkRevoked(ctx context.Context, addr models.Address) error

	// SetGrantPending updates the two-phase saga flag.
	SetGrantPending(ctx context.Context, addr models.Address, pending bool) error

	// ListGrantPending returns up to limit sessions whose vault grant (or
	// grant retraction, for revoked sessions) has not been confirmed.
	ListGrantPending(ctx context.Context, limit uint64) ([]models.ShareSession, error)
}

// BlobStore persists opaque encrypted document blobs, addressed by the
// URI returned from Save. The locker never inspects blob contents.
type BlobStore interface {
	// Save stores data under a fresh URI derived from a generated
	// identifier plus the original file extension.
	Save(ctx context.Context, data []byte, originalName string) (string, error)

	// Load returns the blob bytes for uri. Returns [ErrBlobNotFound] if
	// no blob exists, [ErrInvalidBlobURI] if uri escapes the store.
	Load(ctx context.Context, uri string) ([]byte, error)
}
