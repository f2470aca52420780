// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/privylocker/privy-locker/internal/logger"
	"github.com/privylocker/privy-locker/internal/protocol"
	"github.com/privylocker/privy-locker/internal/store"
	"github.com/privylocker/privy-locker/models"
)

// ─────────────────────────────────────────────
// Mock: store.ProfileRepository
// ─────────────────────────────────────────────

type mockProfileRepository struct {
	getFn    func(ctx context.Context, addr models.Address) (models.UserProfile, error)
	ensureFn func(ctx context.Context, profile models.UserProfile) (models.UserProfile, error)
}

func (m *mockProfileRepository) Get(ctx context.Context, addr models.Address) (models.UserProfile, error) {
	if m.getFn != nil {
		return m.getFn(ctx, addr)
	}
	return models.UserProfile{}, store.ErrProfileNotFound
}

func (m *mockProfileRepository) Ensure(ctx context.Context, profile models.UserProfile) (models.UserProfile, error) {
	if m.ensureFn != nil {
		return m.ensureFn(ctx, profile)
	}
	return profile, nil
}

// ─────────────────────────────────────────────
// Mock: store.DocumentRepository
// ─────────────────────────────────────────────

type mockDocumentRepository struct {
	saveFn        func(ctx context.Context, profileAddr models.Address, doc *models.Document) error
	getFn         func(ctx context.Context, addr models.Address) (models.Document, error)
	listByOwnerFn func(ctx context.Context, owner models.Identity, filter store.DocumentFilter) ([]models.Document, error)
}

func (m *mockDocumentRepository) Save(ctx context.Context, profileAddr models.Address, doc *models.Document) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, profileAddr, doc)
	}
	return nil
}

func (m *mockDocumentRepository) Get(ctx context.Context, addr models.Address) (models.Document, error) {
	if m.getFn != nil {
		return m.getFn(ctx, addr)
	}
	return models.Document{}, store.ErrDocumentNotFound
}

func (m *mockDocumentRepository) ListByOwner(ctx context.Context, owner models.Identity, filter store.DocumentFilter) ([]models.Document, error) {
	if m.listByOwnerFn != nil {
		return m.listByOwnerFn(ctx, owner, filter)
	}
	return nil, nil
}

// ─────────────────────────────────────────────
// Mock: vault.Vault
// ─────────────────────────────────────────────

type mockVault struct {
	storeFn   func(ctx context.Context, value string) (string, error)
	rekeyFn   func(ctx context.Context, handle string) (string, error)
	grantFn   func(ctx context.Context, handle string, grantee models.Identity) error
	revokeFn  func(ctx context.Context, handle string, grantee models.Identity) error
	decryptFn func(ctx context.Context, handle string, requester models.Identity, proof []byte) (string, error)
}

func (m *mockVault) Store(ctx context.Context, value string) (string, error) {
	if m.storeFn != nil {
		return m.storeFn(ctx, value)
	}
	return "handle-1", nil
}

func (m *mockVault) Rekey(ctx context.Context, handle string) (string, error) {
	if m.rekeyFn != nil {
		return m.rekeyFn(ctx, handle)
	}
	return "session-" + handle, nil
}

func (m *mockVault) Grant(ctx context.Context, handle string, grantee models.Identity) error {
	if m.grantFn != nil {
		return m.grantFn(ctx, handle, grantee)
	}
	return nil
}

func (m *mockVault) Revoke(ctx context.Context, handle string, grantee models.Identity) error {
	if m.revokeFn != nil {
		return m.revokeFn(ctx, handle, grantee)
	}
	return nil
}

func (m *mockVault) Decrypt(ctx context.Context, handle string, requester models.Identity, proof []byte) (string, error) {
	if m.decryptFn != nil {
		return m.decryptFn(ctx, handle, requester, proof)
	}
	return "", nil
}

// ─────────────────────────────────────────────
// Fixtures
// ─────────────────────────────────────────────

const testOwner = models.Identity("owner-key")

var errRepo = errors.New("repository error")

func newRawDocumentService(profiles *mockProfileRepository, documents *mockDocumentRepository, v *mockVault) *documentService {
	return &documentService{
		profiles:  profiles,
		documents: documents,
		vault:     v,
		now:       func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) },
		logger:    logger.Nop(),
	}
}

func registerRequest() models.RegisterDocumentRequest {
	return models.RegisterDocumentRequest{
		Fingerprint:       "passport.pdf",
		EncryptedBlobURI:  "blob-uri.pdf",
		ConfidentialField: []byte("encrypted-scalar"),
	}
}

// ─────────────────────────────────────────────
// RegisterDocument
// ─────────────────────────────────────────────

func TestDocumentService_RegisterDocument_Success(t *testing.T) {
	profileAddr := protocol.DeriveProfileAddress(testOwner)

	profiles := &mockProfileRepository{
		ensureFn: func(_ context.Context, profile models.UserProfile) (models.UserProfile, error) {
			assert.Equal(t, profileAddr, profile.Address)
			profile.DocumentCount = 4
			return profile, nil
		},
	}

	var saved *models.Document
	documents := &mockDocumentRepository{
		saveFn: func(_ context.Context, addr models.Address, doc *models.Document) error {
			assert.Equal(t, profileAddr, addr)
			saved = doc
			return nil
		},
	}

	svc := newRawDocumentService(profiles, documents, &mockVault{})

	doc, err := svc.RegisterDocument(context.Background(), testOwner, registerRequest())

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, protocol.DeriveDocumentAddress(profileAddr, 4), doc.Address)
	assert.Equal(t, uint64(4), doc.Index)
	assert.Equal(t, "handle-1", doc.ConfidentialFieldHandle)
	assert.Equal(t, testOwner, doc.Owner)
}

func TestDocumentService_RegisterDocument_InvalidData(t *testing.T) {
	svc := newRawDocumentService(&mockProfileRepository{}, &mockDocumentRepository{}, &mockVault{})

	tests := []struct {
		name  string
		owner models.Identity
		req   models.RegisterDocumentRequest
	}{
		{name: "empty owner", owner: "", req: registerRequest()},
		{name: "empty blob uri", owner: testOwner, req: models.RegisterDocumentRequest{ConfidentialField: []byte("x")}},
		{name: "empty confidential field", owner: testOwner, req: models.RegisterDocumentRequest{EncryptedBlobURI: "u"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RegisterDocument(context.Background(), tt.owner, tt.req)
			assert.ErrorIs(t, err, ErrInvalidDataProvided)
		})
	}
}

// Losing the index race re-reads the profile and re-derives the address
// until the insert lands.
func TestDocumentService_RegisterDocument_RetriesIndexConflict(t *testing.T) {
	profileAddr := protocol.DeriveProfileAddress(testOwner)

	count := uint64(1)
	profiles := &mockProfileRepository{
		ensureFn: func(_ context.Context, profile models.UserProfile) (models.UserProfile, error) {
			profile.DocumentCount = count
			return profile, nil
		},
		getFn: func(context.Context, models.Address) (models.UserProfile, error) {
			count++
			return models.UserProfile{Address: profileAddr, Owner: testOwner, DocumentCount: count}, nil
		},
	}

	attempts := 0
	documents := &mockDocumentRepository{
		saveFn: func(_ context.Context, _ models.Address, doc *models.Document) error {
			attempts++
			if attempts < 3 {
				return store.ErrDocumentIndexConflict
			}
			assert.Equal(t, uint64(3), doc.Index)
			return nil
		},
	}

	svc := newRawDocumentService(profiles, documents, &mockVault{})

	doc, err := svc.RegisterDocument(context.Background(), testOwner, registerRequest())

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, protocol.DeriveDocumentAddress(profileAddr, 3), doc.Address)
}

func TestDocumentService_RegisterDocument_ContentionExhausted(t *testing.T) {
	profiles := &mockProfileRepository{
		getFn: func(context.Context, models.Address) (models.UserProfile, error) {
			return models.UserProfile{Owner: testOwner}, nil
		},
	}
	documents := &mockDocumentRepository{
		saveFn: func(context.Context, models.Address, *models.Document) error {
			return store.ErrDocumentIndexConflict
		},
	}

	svc := newRawDocumentService(profiles, documents, &mockVault{})

	_, err := svc.RegisterDocument(context.Background(), testOwner, registerRequest())

	assert.ErrorIs(t, err, ErrRegistrationContention)
}

func TestDocumentService_RegisterDocument_VaultFailure(t *testing.T) {
	vaultClient := &mockVault{
		storeFn: func(context.Context, string) (string, error) {
			return "", errRepo
		},
	}
	documents := &mockDocumentRepository{
		saveFn: func(context.Context, models.Address, *models.Document) error {
			t.Fatal("no document may be written when the vault store failed")
			return nil
		},
	}

	svc := newRawDocumentService(&mockProfileRepository{}, documents, vaultClient)

	_, err := svc.RegisterDocument(context.Background(), testOwner, registerRequest())

	assert.ErrorIs(t, err, errRepo)
}

// ─────────────────────────────────────────────
// ListDocuments
// ─────────────────────────────────────────────

func TestDocumentService_ListDocuments(t *testing.T) {
	want := []models.Document{{Owner: testOwner, Fingerprint: "passport.pdf"}}
	documents := &mockDocumentRepository{
		listByOwnerFn: func(_ context.Context, owner models.Identity, filter store.DocumentFilter) ([]models.Document, error) {
			assert.Equal(t, testOwner, owner)
			assert.Equal(t, store.DocumentFilter{Fingerprint: "passport.pdf"}, filter)
			return want, nil
		},
	}

	svc := newRawDocumentService(&mockProfileRepository{}, documents, &mockVault{})

	docs, err := svc.ListDocuments(context.Background(), testOwner, store.DocumentFilter{Fingerprint: "passport.pdf"})

	require.NoError(t, err)
	assert.Equal(t, want, docs)
}

func TestDocumentService_ListDocuments_EmptyOwner(t *testing.T) {
	svc := newRawDocumentService(&mockProfileRepository{}, &mockDocumentRepository{}, &mockVault{})

	_, err := svc.ListDocuments(context.Background(), "", store.DocumentFilter{})

	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}
