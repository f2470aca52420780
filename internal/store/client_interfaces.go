package store

import (
	"context"

	"github.com/privylocker/privy-locker/models"
)

// LocalStateRepository is the client-side preference and session store.
// Everything in it is device-local: hiding a document only removes it
// from this client's dashboard view and never touches the ledger.
type LocalStateRepository interface {
	// HideDocument marks the document as hidden on this device.
	// Idempotent.
	HideDocument(ctx context.Context, addr models.Address) error

	// UnhideDocument removes the hidden mark. A missing mark is a no-op.
	UnhideDocument(ctx context.Context, addr models.Address) error

	// ListHidden returns the addresses of all hidden documents.
	ListHidden(ctx context.Context) ([]models.Address, error)

	// SaveSalt persists the client's sealing-key salt. Overwrites any
	// previous value.
	SaveSalt(ctx context.Context, salt []byte) error

	// LoadSalt returns the stored sealing-key salt. Returns
	// [ErrLocalSaltNotFound] when no salt has been generated yet.
	LoadSalt(ctx context.Context) ([]byte, error)

	// SaveToken caches the bearer token issued for identity.
	SaveToken(ctx context.Context, identity models.Identity, token string) error

	// LoadToken returns the cached bearer token for identity. Returns
	// [ErrLocalTokenNotFound] when none is cached.
	LoadToken(ctx context.Context, identity models.Identity) (string, error)
}
