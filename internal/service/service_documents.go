package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/privylocker/privy-locker/internal/logger"
	"github.com/privylocker/privy-locker/internal/protocol"
	"github.com/privylocker/privy-locker/internal/store"
	"github.com/privylocker/privy-locker/internal/vault"
	"github.com/privylocker/privy-locker/models"
)

// registerAttempts bounds how many times a registration re-derives its
// document address after losing the index race to a concurrent
// registration by the same owner.
const registerAttempts = 3

// documentService is the concrete implementation of [DocumentService].
// It owns the registration sequence: ensure the owner's profile, store
// the confidential field in the vault, then write the document record at
// its derived address.
type documentService struct {
	profiles  store.ProfileRepository
	documents store.DocumentRepository
	vault     vault.Vault

	// now is the clock used for record timestamps; injectable for tests.
	now func() time.Time

	logger *logger.Logger
}

// NewDocumentService constructs a [DocumentService] over the given
// repositories and vault client.
func NewDocumentService(profiles store.ProfileRepository, documents store.DocumentRepository, v vault.Vault, logger *logger.Logger) DocumentService {
	return &documentService{
		profiles:  profiles,
		documents: documents,
		vault:     v,
		now:       time.Now,
		logger:    logger,
	}
}

// RegisterDocument registers one uploaded artifact on the ledger.
//
// The sequence is:
//  1. ensure the owner's profile record exists (first registration creates
//     it with a zero counter);
//  2. store the confidential scalar in the vault, obtaining the document's
//     base handle;
//  3. derive the document address from the profile address and the current
//     counter value, and insert the record while bumping the counter.
//
// Step 3 is retried up to [registerAttempts] times when a concurrent
// registration claims the index first; each retry re-reads the profile and
// re-derives the address. [ErrRegistrationContention] is returned when
// every attempt loses the race.
func (d *documentService) RegisterDocument(ctx context.Context, owner models.Identity, req models.RegisterDocumentRequest) (models.Document, error) {
	log := logger.FromContext(ctx)

	if owner.IsZero() || req.EncryptedBlobURI == "" || len(req.ConfidentialField) == 0 {
		log.Error().Str("func", "*documentService.RegisterDocument").Msg("invalid registration data provided")
		return models.Document{}, ErrInvalidDataProvided
	}

	profileAddr := protocol.DeriveProfileAddress(owner)
	profile, err := d.profiles.Ensure(ctx, models.UserProfile{
		Address:   profileAddr,
		Owner:     owner,
		CreatedAt: d.now(),
	})
	if err != nil {
		log.Err(err).Str("func", "*documentService.RegisterDocument").Msg("failed to ensure owner profile")
		return models.Document{}, fmt.Errorf("failed to ensure owner profile: %w", err)
	}

	handle, err := d.vault.Store(ctx, string(req.ConfidentialField))
	if err != nil {
		log.Err(err).Str("func", "*documentService.RegisterDocument").Msg("failed to store confidential field in vault")
		return models.Document{}, fmt.Errorf("failed to store confidential field: %w", err)
	}

	for attempt := 0; attempt < registerAttempts; attempt++ {
		doc := models.Document{
			Address:                 protocol.DeriveDocumentAddress(profileAddr, profile.DocumentCount),
			Owner:                   owner,
			Fingerprint:             req.Fingerprint,
			EncryptedBlobURI:        req.EncryptedBlobURI,
			ConfidentialFieldHandle: handle,
			Index:                   profile.DocumentCount,
			CreatedAt:               d.now(),
		}

		err = d.documents.Save(ctx, profileAddr, &doc)
		if err == nil {
			log.Info().
				Str("func", "*documentService.RegisterDocument").
				Str("document", doc.Address.String()).
				Uint64("index", doc.Index).
				Msg("document registered")
			return doc, nil
		}
		if !errors.Is(err, store.ErrDocumentIndexConflict) {
			log.Err(err).Str("func", "*documentService.RegisterDocument").Msg("failed to save document record")
			return models.Document{}, fmt.Errorf("failed to save document record: %w", err)
		}

		profile, err = d.profiles.Get(ctx, profileAddr)
		if err != nil {
			return models.Document{}, fmt.Errorf("failed to re-read profile after index conflict: %w", err)
		}
	}

	log.Warn().
		Str("func", "*documentService.RegisterDocument").
		Str("profile", profileAddr.String()).
		Int("attempts", registerAttempts).
		Msg("registration kept losing the index race")

	return models.Document{}, ErrRegistrationContention
}

// ListDocuments returns the owner's documents ordered by registration
// index, narrowed by the optional filter.
func (d *documentService) ListDocuments(ctx context.Context, owner models.Identity, filter store.DocumentFilter) ([]models.Document, error) {
	if owner.IsZero() {
		return nil, ErrInvalidDataProvided
	}

	docs, err := d.documents.ListByOwner(ctx, owner, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	return docs, nil
}
