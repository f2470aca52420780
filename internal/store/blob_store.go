package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/privylocker/privy-locker/internal/logger"
)

// diskBlobStore is the filesystem-backed implementation of [BlobStore].
// Encrypted document blobs are written under a single flat directory and
// addressed by a generated name, so the URI carries no information about
// the owner or the content.
type diskBlobStore struct {
	dir    string
	logger *logger.Logger
}

// NewDiskBlobStore constructs a [BlobStore] rooted at dir, creating the
// directory if needed.
func NewDiskBlobStore(dir string, logger *logger.Logger) (BlobStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		logger.Err(err).Str("func", "NewDiskBlobStore").Str("dir", dir).Msg("failed to create blob directory")
		return nil, fmt.Errorf("failed to create blob directory: %w", err)
	}
	logger.Debug().Str("dir", dir).Msg("creating disk blob store")

	return &diskBlobStore{
		dir:    dir,
		logger: logger,
	}, nil
}

// Save writes data under a fresh UUID-based name, preserving the original
// file extension so downloads keep their type. The returned URI is the
// bare file name, valid only within this store.
func (s *diskBlobStore) Save(ctx context.Context, data []byte, originalName string) (string, error) {
	log := logger.FromContext(ctx)

	if err := ctx.Err(); err != nil {
		return "", err
	}

	uri := uuid.NewString() + sanitizeExtension(originalName)
	path := filepath.Join(s.dir, uri)

	if err := os.WriteFile(path, data, 0o640); err != nil {
		log.Err(err).Str("func", "*diskBlobStore.Save").Str("uri", uri).Msg("failed to write blob file")
		return "", fmt.Errorf("failed to write blob file: %w", err)
	}

	return uri, nil
}

// Load returns the blob bytes for uri.
//
// Error handling:
//   - URI containing path separators or traversal → [ErrInvalidBlobURI].
//   - Missing file → [ErrBlobNotFound].
func (s *diskBlobStore) Load(ctx context.Context, uri string) ([]byte, error) {
	log := logger.FromContext(ctx)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if uri == "" || uri != filepath.Base(uri) || strings.HasPrefix(uri, ".") {
		log.Warn().Str("func", "*diskBlobStore.Load").Str("uri", uri).Msg("rejected blob uri outside store")
		return nil, ErrInvalidBlobURI
	}

	data, err := os.ReadFile(filepath.Join(s.dir, uri))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrBlobNotFound
		}
		log.Err(err).Str("func", "*diskBlobStore.Load").Str("uri", uri).Msg("failed to read blob file")
		return nil, fmt.Errorf("failed to read blob file: %w", err)
	}

	return data, nil
}

// sanitizeExtension returns the extension of originalName when it is a
// plain suffix like ".pdf"; anything unusual is dropped so that the
// stored name stays a single safe path element.
func sanitizeExtension(originalName string) string {
	ext := filepath.Ext(filepath.Base(originalName))
	if len(ext) < 2 || len(ext) > 12 {
		return ""
	}
	for _, r := range ext[1:] {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		default:
			return ""
		}
	}
	return strings.ToLower(ext)
}
