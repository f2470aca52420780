package service

import (
	"context"

	"github.com/privylocker/privy-locker/models"
)

// ClientLockerService drives the owner- and verifier-side flows of the
// locker client: sealing and uploading documents, managing the dashboard
// view, creating and revoking shares, and requesting disclosure.
type ClientLockerService interface {
	// Authenticate obtains a bearer token for the configured identity,
	// arms the server adapter with it and caches it in the local state.
	Authenticate(ctx context.Context) error

	// UploadDocument seals the file at filePath with a key derived from
	// passphrase, uploads the sealed blob to the relay and registers the
	// document on the ledger.
	UploadDocument(ctx context.Context, filePath, label string, confidentialField []byte, passphrase string) (models.Document, error)

	// Dashboard returns the owner's documents minus those hidden on this
	// device.
	Dashboard(ctx context.Context) ([]models.Document, error)

	// HideDocument hides the document from this device's dashboard view.
	// The ledger record is not touched.
	HideDocument(ctx context.Context, addr models.Address) error

	// DownloadDocument fetches the document's sealed blob and opens it
	// with the key derived from passphrase.
	DownloadDocument(ctx context.Context, doc models.Document, passphrase string) ([]byte, error)

	// ShareDocument creates a share session for (document, verifier).
	// A zero ttlSeconds lets the server apply its default lifetime.
	ShareDocument(ctx context.Context, document models.Address, verifier models.Identity, ttlSeconds int64) (models.ShareSession, error)

	// RevokeShare revokes the session at share.
	RevokeShare(ctx context.Context, share models.Address) error

	// VerifyShare fetches the public verification view of a session,
	// retrying transient server failures with backoff.
	VerifyShare(ctx context.Context, share models.Address) (models.ShareStatusResponse, error)

	// RequestDisclosure requests disclosure of the shared confidential
	// field as the configured identity, forwarding proof opaquely.
	RequestDisclosure(ctx context.Context, share models.Address, proof []byte) (string, error)
}
