// Package vault is the client of the external confidential-field vault.
// The vault holds encrypted scalar values behind opaque handles and
// enforces per-identity decrypt grants; the locker never sees key
// material, only handles.
package vault

import (
	"context"

	"github.com/privylocker/privy-locker/models"
)

// Vault is the full vault surface used by the locker service. The sharing
// engine consumes the lifecycle subset (Rekey, Grant, Revoke, Decrypt);
// Store is used once at document registration.
type Vault interface {
	// Store encrypts and stores a confidential scalar value, returning the
	// opaque handle referring to it.
	Store(ctx context.Context, value string) (string, error)

	// Rekey derives a fresh handle referring to the same underlying value
	// as handle, so grants on the new handle are independent of the old.
	Rekey(ctx context.Context, handle string) (string, error)

	// Grant allows grantee to decrypt the value behind handle. Granting
	// the same identity twice is a no-op.
	Grant(ctx context.Context, handle string, grantee models.Identity) error

	// Revoke retracts a previously issued grant. Revoking an absent grant
	// is a no-op.
	Revoke(ctx context.Context, handle string, grantee models.Identity) error

	// Decrypt discloses the value behind handle to requester. The signed
	// proof-of-identity is forwarded opaquely; the vault verifies it
	// against the requester key and the handle's grants.
	Decrypt(ctx context.Context, handle string, requester models.Identity, proof []byte) (string, error)
}
