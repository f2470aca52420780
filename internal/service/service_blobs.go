package service

import (
	"context"
	"fmt"

	"github.com/privylocker/privy-locker/internal/logger"
	"github.com/privylocker/privy-locker/internal/store"
)

// maxBlobSize caps a single uploaded blob at 32 MiB.
const maxBlobSize = 32 << 20

// blobService is the concrete implementation of [BlobService]. The relay
// treats blob contents as opaque ciphertext; it never decrypts or
// inspects them.
type blobService struct {
	blobs  store.BlobStore
	logger *logger.Logger
}

// NewBlobService constructs a [BlobService] over the given content store.
func NewBlobService(blobs store.BlobStore, logger *logger.Logger) BlobService {
	return &blobService{
		blobs:  blobs,
		logger: logger,
	}
}

// UploadBlob stores the encrypted blob and returns its relay URI.
//
// Returns [ErrInvalidDataProvided] for an empty or oversized blob.
func (b *blobService) UploadBlob(ctx context.Context, data []byte, originalName string) (string, error) {
	log := logger.FromContext(ctx)

	if len(data) == 0 || len(data) > maxBlobSize {
		log.Error().Str("func", "*blobService.UploadBlob").Int("size", len(data)).Msg("rejected blob upload")
		return "", ErrInvalidDataProvided
	}

	uri, err := b.blobs.Save(ctx, data, originalName)
	if err != nil {
		log.Err(err).Str("func", "*blobService.UploadBlob").Msg("failed to save blob")
		return "", fmt.Errorf("failed to save blob: %w", err)
	}

	return uri, nil
}

// DownloadBlob returns the encrypted blob bytes for uri.
func (b *blobService) DownloadBlob(ctx context.Context, uri string) ([]byte, error) {
	if uri == "" {
		return nil, ErrInvalidDataProvided
	}

	return b.blobs.Load(ctx, uri)
}
