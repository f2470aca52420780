package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/privylocker/privy-locker/internal/adapter"
	"github.com/privylocker/privy-locker/internal/config"
	"github.com/privylocker/privy-locker/internal/crypto"
	"github.com/privylocker/privy-locker/internal/logger"
	"github.com/privylocker/privy-locker/internal/store"
	"github.com/privylocker/privy-locker/models"
)

// clientLockerService is the concrete implementation of
// [ClientLockerService].
type clientLockerService struct {
	server adapter.ServerAdapter
	local  store.LocalStateRepository
	seal   crypto.SealService

	// identity is the wallet key this client acts as, from configuration.
	identity models.Identity

	logger *logger.Logger
}

// NewClientLockerService constructs a [ClientLockerService] for the
// identity configured in appCfg.
func NewClientLockerService(server adapter.ServerAdapter, local store.LocalStateRepository, seal crypto.SealService, appCfg config.ClientApp, logger *logger.Logger) ClientLockerService {
	return &clientLockerService{
		server:   server,
		local:    local,
		seal:     seal,
		identity: models.Identity(appCfg.Identity),
		logger:   logger,
	}
}

// Authenticate implements [ClientLockerService]. A fresh token is issued
// on every run; the cached copy only serves inspection and debugging.
func (c *clientLockerService) Authenticate(ctx context.Context) error {
	if c.identity.IsZero() {
		return ErrInvalidDataProvided
	}

	token, err := c.server.IssueToken(ctx, c.identity)
	if err != nil {
		return fmt.Errorf("token issuance failed: %w", err)
	}

	if err := c.local.SaveToken(ctx, c.identity, token); err != nil {
		c.logger.Err(err).Str("func", "*clientLockerService.Authenticate").Msg("failed to cache bearer token")
	}

	return nil
}

// UploadDocument implements [ClientLockerService].
func (c *clientLockerService) UploadDocument(ctx context.Context, filePath, label string, confidentialField []byte, passphrase string) (models.Document, error) {
	log := c.logger

	if filePath == "" || len(confidentialField) == 0 || passphrase == "" {
		return models.Document{}, ErrInvalidDataProvided
	}

	plaintext, err := os.ReadFile(filePath)
	if err != nil {
		return models.Document{}, fmt.Errorf("failed to read document file: %w", err)
	}

	key, err := c.sealingKey(ctx, passphrase)
	if err != nil {
		return models.Document{}, err
	}

	sealed, err := c.seal.SealBlob(plaintext, key)
	if err != nil {
		return models.Document{}, fmt.Errorf("failed to seal document: %w", err)
	}

	uri, err := c.server.UploadBlob(ctx, sealed, filepath.Base(filePath))
	if err != nil {
		return models.Document{}, fmt.Errorf("blob upload failed: %w", err)
	}

	doc, err := c.server.RegisterDocument(ctx, models.RegisterDocumentRequest{
		Fingerprint:       label,
		EncryptedBlobURI:  uri,
		ConfidentialField: confidentialField,
	})
	if err != nil {
		return models.Document{}, fmt.Errorf("document registration failed: %w", err)
	}

	log.Info().
		Str("func", "*clientLockerService.UploadDocument").
		Str("document", doc.Address.String()).
		Str("fingerprint", doc.Fingerprint).
		Msg("document uploaded and registered")

	return doc, nil
}

// Dashboard implements [ClientLockerService].
func (c *clientLockerService) Dashboard(ctx context.Context) ([]models.Document, error) {
	docs, err := c.server.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	hidden, err := c.local.ListHidden(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list hidden documents: %w", err)
	}
	if len(hidden) == 0 {
		return docs, nil
	}

	hiddenSet := make(map[models.Address]struct{}, len(hidden))
	for _, addr := range hidden {
		hiddenSet[addr] = struct{}{}
	}

	visible := docs[:0]
	for _, doc := range docs {
		if _, ok := hiddenSet[doc.Address]; !ok {
			visible = append(visible, doc)
		}
	}

	return visible, nil
}

// HideDocument implements [ClientLockerService].
func (c *clientLockerService) HideDocument(ctx context.Context, addr models.Address) error {
	if addr.IsZero() {
		return ErrInvalidDataProvided
	}

	return c.local.HideDocument(ctx, addr)
}

// DownloadDocument implements [ClientLockerService].
func (c *clientLockerService) DownloadDocument(ctx context.Context, doc models.Document, passphrase string) ([]byte, error) {
	if doc.EncryptedBlobURI == "" || passphrase == "" {
		return nil, ErrInvalidDataProvided
	}

	sealed, err := c.server.DownloadBlob(ctx, doc.EncryptedBlobURI)
	if err != nil {
		return nil, fmt.Errorf("blob download failed: %w", err)
	}

	key, err := c.sealingKey(ctx, passphrase)
	if err != nil {
		return nil, err
	}

	plaintext, err := c.seal.OpenBlob(sealed, key)
	if err != nil {
		return nil, fmt.Errorf("failed to open sealed document: %w", err)
	}

	return plaintext, nil
}

// ShareDocument implements [ClientLockerService].
func (c *clientLockerService) ShareDocument(ctx context.Context, document models.Address, verifier models.Identity, ttlSeconds int64) (models.ShareSession, error) {
	if document.IsZero() || verifier.IsZero() {
		return models.ShareSession{}, ErrInvalidDataProvided
	}

	session, err := c.server.CreateShare(ctx, models.CreateShareRequest{
		Document:   document,
		Verifier:   verifier,
		TTLSeconds: ttlSeconds,
	})
	if err != nil {
		return models.ShareSession{}, fmt.Errorf("share creation failed: %w", err)
	}

	return session, nil
}

// RevokeShare implements [ClientLockerService].
func (c *clientLockerService) RevokeShare(ctx context.Context, share models.Address) error {
	if share.IsZero() {
		return ErrInvalidDataProvided
	}

	if err := c.server.RevokeShare(ctx, share); err != nil {
		return fmt.Errorf("share revocation failed: %w", err)
	}

	return nil
}

// VerifyShare implements [ClientLockerService]. Transient server
// failures are retried with exponential backoff; protocol outcomes
// (not_found, revoked, expired) come back in the response body and are
// never retried.
func (c *clientLockerService) VerifyShare(ctx context.Context, share models.Address) (models.ShareStatusResponse, error) {
	if share.IsZero() {
		return models.ShareStatusResponse{}, ErrInvalidDataProvided
	}

	var status models.ShareStatusResponse

	backoff := retry.WithMaxRetries(3, retry.NewExponential(time.Second))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var err error
		status, err = c.server.ShareStatus(ctx, share)
		if err != nil && isTransient(err) {
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		return models.ShareStatusResponse{}, fmt.Errorf("share verification failed: %w", err)
	}

	return status, nil
}

// RequestDisclosure implements [ClientLockerService].
func (c *clientLockerService) RequestDisclosure(ctx context.Context, share models.Address, proof []byte) (string, error) {
	if share.IsZero() {
		return "", ErrInvalidDataProvided
	}

	resp, err := c.server.Disclose(ctx, share, models.DisclosureRequest{
		Verifier: c.identity,
		Proof:    proof,
	})
	if err != nil {
		return "", fmt.Errorf("disclosure request failed: %w", err)
	}

	return resp.Plaintext, nil
}

// sealingKey derives the client's blob sealing key, creating and
// persisting the salt on first use.
func (c *clientLockerService) sealingKey(ctx context.Context, passphrase string) ([]byte, error) {
	salt, err := c.local.LoadSalt(ctx)
	if errors.Is(err, store.ErrLocalSaltNotFound) {
		salt, err = c.seal.GenerateSalt()
		if err != nil {
			return nil, fmt.Errorf("failed to generate sealing salt: %w", err)
		}
		if err = c.local.SaveSalt(ctx, salt); err != nil {
			return nil, fmt.Errorf("failed to persist sealing salt: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to load sealing salt: %w", err)
	}

	return c.seal.DeriveBlobKey(passphrase, salt), nil
}

// isTransient reports whether err looks like a transient transport or
// upstream failure worth retrying.
func isTransient(err error) bool {
	switch {
	case errors.Is(err, adapter.ErrBadRequest),
		errors.Is(err, adapter.ErrUnauthorized),
		errors.Is(err, adapter.ErrForbidden),
		errors.Is(err, adapter.ErrNotFound),
		errors.Is(err, adapter.ErrConflict),
		errors.Is(err, adapter.ErrGone):
		return false
	default:
		return true
	}
}
