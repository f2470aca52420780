package protocol

import "errors"

// Sentinel errors of the sharing protocol. Callers match against them with
// [errors.Is]; authorization and validity errors are terminal and must not
// be retried, while [ErrLedgerUnavailable] and [ErrVaultUnavailable] are
// transient and may be retried with backoff by the orchestrator.
var (
	// ErrUnauthorized is returned when the caller is not the document (or
	// session) owner, or when the requested verifier does not satisfy the
	// verifier policy.
	ErrUnauthorized = errors.New("caller is not authorized to perform this action")

	// ErrNotFound is returned when no record exists at the derived address.
	ErrNotFound = errors.New("no record at the derived address")

	// ErrExpired is returned by disclosure when the session's expires_at
	// has passed.
	ErrExpired = errors.New("share session has expired")

	// ErrRevoked is returned by disclosure when the owner has revoked the
	// session.
	ErrRevoked = errors.New("share session has been revoked")

	// ErrIdentityMismatch is returned when the identity requesting
	// disclosure is not the session's verifier. Kept distinct from
	// ErrUnauthorized so the verification surface can show the caller
	// exactly what is wrong.
	ErrIdentityMismatch = errors.New("requesting identity does not match the session verifier")

	// ErrLedgerUnavailable is returned when a ledger read or write fails
	// for transient reasons.
	ErrLedgerUnavailable = errors.New("ledger is unavailable")

	// ErrVaultUnavailable is returned when a vault call fails before any
	// ledger write has happened, so no inconsistent state was left behind.
	ErrVaultUnavailable = errors.New("vault is unavailable")

	// ErrGrantFailed is returned when the session record was written but
	// the vault grant step failed afterwards. The session is left marked
	// grant-pending; the caller may retry the grant or issue a
	// compensating revoke, and the reconciler worker retries it in the
	// background. Must never be folded into a generic failure.
	ErrGrantFailed = errors.New("session created but vault grant failed")

	// ErrInvalidTTL is returned when a share is requested with a
	// non-positive lifetime, which would violate expires_at > created_at.
	ErrInvalidTTL = errors.New("share ttl must be positive")
)
