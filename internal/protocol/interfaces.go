package protocol

import (
	"context"

	"github.com/privylocker/privy-locker/models"
)

// Ledger is the subset of the ledger store the engine depends on.
// Implementations report missing records with the store package's
// not-found sentinels; every other failure is treated as transient.
//
// The engine relies on UpsertSession providing last-writer-wins semantics
// at the derived address — re-sharing the same (document, verifier) pair
// overwrites the previous session record in place. The engine adds no
// mutual exclusion of its own on top of that.
type Ledger interface {
	// GetDocument loads the document record at addr.
	GetDocument(ctx context.Context, addr models.Address) (models.Document, error)

	// GetSession loads the share session record at addr.
	GetSession(ctx context.Context, addr models.Address) (models.ShareSession, error)

	// UpsertSession writes the session at its address, overwriting any
	// previous record for the same (document, verifier) pair.
	UpsertSession(ctx context.Context, session *models.ShareSession) error

	// MarkRevoked sets the session's revoked tombstone and re-arms
	// grant_pending so the reconciler retracts the vault grant. A session
	// that is already revoked is left untouched.
	MarkRevoked(ctx context.Context, addr models.Address) error

	// SetGrantPending updates the session's saga flag after a vault grant
	// or retraction has been confirmed.
	SetGrantPending(ctx context.Context, addr models.Address, pending bool) error
}

// Vault is the subset of the confidential field vault the engine consumes.
type Vault interface {
	// Rekey derives a fresh session-scoped handle referring to the same
	// underlying confidential value as handle.
	Rekey(ctx context.Context, handle string) (string, error)

	// Grant allows grantee to decrypt the value behind handle.
	Grant(ctx context.Context, handle string, grantee models.Identity) error

	// Revoke retracts a previously issued grant.
	Revoke(ctx context.Context, handle string, grantee models.Identity) error

	// Decrypt discloses the value behind handle to requester, whose
	// signed proof-of-identity is forwarded opaquely.
	Decrypt(ctx context.Context, handle string, requester models.Identity, proof []byte) (string, error)
}

// VerifierPolicy decides which identities may be designated as verifiers.
// The reference deployment hard-coded a single verifier key; the policy is
// injectable here so deployments supply their own allow-list or role check.
type VerifierPolicy interface {
	IsAuthorizedVerifier(identity models.Identity) bool
}

// VerifierPolicyFunc adapts a plain function to the [VerifierPolicy]
// interface.
type VerifierPolicyFunc func(identity models.Identity) bool

// IsAuthorizedVerifier implements [VerifierPolicy].
func (f VerifierPolicyFunc) IsAuthorizedVerifier(identity models.Identity) bool {
	return f(identity)
}
