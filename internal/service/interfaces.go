package service

import (
	"context"
	"time"

	"github.com/privylocker/privy-locker/internal/store"
	"github.com/privylocker/privy-locker/models"
)

// AuthService issues and validates the bearer tokens that bind HTTP
// requests to an identity key.
type AuthService interface {
	IssueToken(ctx context.Context, identity models.Identity) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// DocumentService registers documents on the ledger and serves the
// owner's dashboard listing.
type DocumentService interface {
	RegisterDocument(ctx context.Context, owner models.Identity, req models.RegisterDocumentRequest) (models.Document, error)
	ListDocuments(ctx context.Context, owner models.Identity, filter store.DocumentFilter) ([]models.Document, error)
}

// ShareService drives the sharing protocol on behalf of the HTTP layer.
type ShareService interface {
	CreateShare(ctx context.Context, caller models.Identity, req models.CreateShareRequest) (models.ShareSession, error)
	Revoke(ctx context.Context, caller models.Identity, share models.Address) error
	Status(ctx context.Context, share models.Address) (models.ShareStatus, models.ShareSession, error)
	Disclose(ctx context.Context, share models.Address, verifier models.Identity, proof []byte) (string, error)
}

// BlobService relays encrypted document blobs between clients and the
// content store.
type BlobService interface {
	UploadBlob(ctx context.Context, data []byte, originalName string) (string, error)
	DownloadBlob(ctx context.Context, uri string) ([]byte, error)
}

// ShareEngine is the protocol surface consumed by [ShareService].
// Implemented by the protocol engine; declared here so the service can be
// tested against a hand-rolled fake.
type ShareEngine interface {
	CreateShare(ctx context.Context, caller models.Identity, document models.Address, verifier models.Identity, ttl time.Duration) (models.ShareSession, error)
	Revoke(ctx context.Context, caller models.Identity, share models.Address) error
	EvaluateStatus(ctx context.Context, share models.Address, now time.Time) (models.ShareStatus, models.ShareSession, error)
	RequestDisclosure(ctx context.Context, share models.Address, verifier models.Identity, proof []byte) (string, error)
}
