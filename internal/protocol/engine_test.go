// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package protocol

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/privylocker/privy-locker/internal/logger"
	"github.com/privylocker/privy-locker/internal/store"
	"github.com/privylocker/privy-locker/models"
)

// ─────────────────────────────────────────────
// Mock: Ledger
// ─────────────────────────────────────────────

type mockLedger struct {
	getDocumentFn     func(ctx context.Context, addr models.Address) (models.Document, error)
	getSessionFn      func(ctx context.Context, addr models.Address) (models.ShareSession, error)
	upsertSessionFn   func(ctx context.Context, session *models.ShareSession) error
	markRevokedFn     func(ctx context.Context, addr models.Address) error
	setGrantPendingFn func(ctx context.Context, addr models.Address, pending bool) error
}

func (m *mockLedger) GetDocument(ctx context.Context, addr models.Address) (models.Document, error) {
	if m.getDocumentFn != nil {
		return m.getDocumentFn(ctx, addr)
	}
	return models.Document{}, store.ErrDocumentNotFound
}

func (m *mockLedger) GetSession(ctx context.Context, addr models.Address) (models.ShareSession, error) {
	if m.getSessionFn != nil {
		return m.getSessionFn(ctx, addr)
	}
	return models.ShareSession{}, store.ErrSessionNotFound
}

func (m *mockLedger) UpsertSession(ctx context.Context, session *models.ShareSession) error {
	if m.upsertSessionFn != nil {
		return m.upsertSessionFn(ctx, session)
	}
	return nil
}

func (m *mockLedger) MarkRevoked(ctx context.Context, addr models.Address) error {
	if m.markRevokedFn != nil {
		return m.markRevokedFn(ctx, addr)
	}
	return nil
}

func (m *mockLedger) SetGrantPending(ctx context.Context, addr models.Address, pending bool) error {
	if m.setGrantPendingFn != nil {
		return m.setGrantPendingFn(ctx, addr, pending)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: Vault
// ─────────────────────────────────────────────

type mockVault struct {
	rekeyFn   func(ctx context.Context, handle string) (string, error)
	grantFn   func(ctx context.Context, handle string, grantee models.Identity) error
	revokeFn  func(ctx context.Context, handle string, grantee models.Identity) error
	decryptFn func(ctx context.Context, handle string, requester models.Identity, proof []byte) (string, error)
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

const (
	ownerKey    = models.Identity("owner-key")
	verifierKey = models.Identity("verifier-key")
	strangerKey = models.Identity("stranger-key")
)

var (
	errLedgerDown = errors.New("ledger down")
	errVaultDown  = errors.New("vault down")
)

func testEngine(ledger Ledger, vault Vault, now time.Time) *Engine {
	e := NewEngine(ledger, vault, allowAll(), logger.Nop())
	e.now = func() time.Time { return now }
	return e
}

func allowAll() VerifierPolicy {
	return VerifierPolicyFunc(func(models.Identity) bool { return true })
}

func denyAll() VerifierPolicy {
	return VerifierPolicyFunc(func(models.Identity) bool { return false })
}

func testDocument() models.Document {
	profile := DeriveProfileAddress(ownerKey)
	return models.Document{
		Address:                 DeriveDocumentAddress(profile, 0),
		Owner:                   ownerKey,
		ConfidentialFieldHandle: "doc-handle",
	}
}

func ledgerWithDocument(doc models.Document) *mockLedger {
	return &mockLedger{
		getDocumentFn: func(_ context.Context, addr models.Address) (models.Document, error) {
			if addr == doc.Address {
				return doc, nil
			}
			return models.Document{}, store.ErrDocumentNotFound
		},
	}
}

// ─────────────────────────────────────────────
// CreateShare
// ─────────────────────────────────────────────

func TestEngine_CreateShare_Success(t *testing.T) {
	doc := testDocument()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	var upserted *models.ShareSession
	ledger := ledgerWithDocument(doc)
	ledger.upsertSessionFn = func(_ context.Context, session *models.ShareSession) error {
		upserted = session
		return nil
	}

	var granted models.Identity
	vault := &mockVault{
		grantFn: func(_ context.Context, handle string, grantee models.Identity) error {
			assert.Equal(t, "session-doc-handle", handle)
			granted = grantee
			return nil
		},
	}

	e := testEngine(ledger, vault, now)

	session, err := e.CreateShare(context.Background(), ownerKey, doc.Address, verifierKey, time.Hour)

	require.NoError(t, err)
	require.NotNil(t, upserted)
	assert.Equal(t, verifierKey, granted)
	assert.Equal(t, DeriveShareAddress(doc.Address, verifierKey), session.Address)
	assert.Equal(t, ownerKey, session.Owner)
	assert.Equal(t, "session-doc-handle", session.ConfidentialFieldHandle)
	assert.Equal(t, now, session.CreatedAt)
	assert.Equal(t, now.Add(time.Hour), session.ExpiresAt)
	assert.False(t, session.Revoked)
	assert.False(t, session.GrantPending)
	assert.True(t, upserted.GrantPending)
}

// Re-sharing the same (document, verifier) pair lands on the same derived
// address, so the second write replaces the first session.
func TestEngine_CreateShare_ReShareUpsertsSameAddress(t *testing.T) {
	doc := testDocument()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	var upserts []models.Address
	ledger := ledgerWithDocument(doc)
	ledger.upsertSessionFn = func(_ context.Context, session *models.ShareSession) error {
		upserts = append(upserts, session.Address)
		return nil
	}

	e := testEngine(ledger, &mockVault{}, now)

	first, err := e.CreateShare(context.Background(), ownerKey, doc.Address, verifierKey, time.Hour)
	require.NoError(t, err)
	second, err := e.CreateShare(context.Background(), ownerKey, doc.Address, verifierKey, 2*time.Hour)
	require.NoError(t, err)

	assert.Equal(t, first.Address, second.Address)
	assert.Equal(t, []models.Address{first.Address, first.Address}, upserts)
	assert.Equal(t, now.Add(2*time.Hour), second.ExpiresAt)
	assert.False(t, second.Revoked)
	assert.False(t, second.GrantPending)
}

func TestEngine_CreateShare_InvalidTTL(t *testing.T) {
	doc := testDocument()
	e := testEngine(ledgerWithDocument(doc), &mockVault{}, time.Now())

	for _, ttl := range []time.Duration{0, -time.Second} {
		_, err := e.CreateShare(context.Background(), ownerKey, doc.Address, verifierKey, ttl)
		assert.ErrorIs(t, err, ErrInvalidTTL)
	}
}

func TestEngine_CreateShare_DocumentNotFound(t *testing.T) {
	e := testEngine(&mockLedger{}, &mockVault{}, time.Now())

	_, err := e.CreateShare(context.Background(), ownerKey, DeriveProfileAddress("missing"), verifierKey, time.Hour)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEngine_CreateShare_NonOwner(t *testing.T) {
	doc := testDocument()
	ledger := ledgerWithDocument(doc)
	ledger.upsertSessionFn = func(context.Context, *models.ShareSession) error {
		t.Fatal("no session may be written for an unauthorized caller")
		return nil
	}

	e := testEngine(ledger, &mockVault{}, time.Now())

	_, err := e.CreateShare(context.Background(), strangerKey, doc.Address, verifierKey, time.Hour)

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestEngine_CreateShare_VerifierRejectedByPolicy(t *testing.T) {
	doc := testDocument()
	e := NewEngine(ledgerWithDocument(doc), &mockVault{}, denyAll(), logger.Nop())

	_, err := e.CreateShare(context.Background(), ownerKey, doc.Address, verifierKey, time.Hour)

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestEngine_CreateShare_RekeyFailure(t *testing.T) {
	doc := testDocument()
	vault := &mockVault{
		rekeyFn: func(context.Context, string) (string, error) {
			return "", errVaultDown
		},
	}

	e := testEngine(ledgerWithDocument(doc), vault, time.Now())

	_, err := e.CreateShare(context.Background(), ownerKey, doc.Address, verifierKey, time.Hour)

	assert.ErrorIs(t, err, ErrVaultUnavailable)
}

func TestEngine_CreateShare_GrantFailureLeavesSessionPending(t *testing.T) {
	doc := testDocument()

	var upserted *models.ShareSession
	ledger := ledgerWithDocument(doc)
	ledger.upsertSessionFn = func(_ context.Context, session *models.ShareSession) error {
		upserted = session
		return nil
	}
	ledger.setGrantPendingFn = func(context.Context, models.Address, bool) error {
		t.Fatal("grant-pending flag must not be cleared after a failed grant")
		return nil
	}

	vault := &mockVault{
		grantFn: func(context.Context, string, models.Identity) error {
			return errVaultDown
		},
	}

	e := testEngine(ledger, vault, time.Now())

	session, err := e.CreateShare(context.Background(), ownerKey, doc.Address, verifierKey, time.Hour)

	require.ErrorIs(t, err, ErrGrantFailed)
	require.NotNil(t, upserted)
	assert.True(t, session.GrantPending)
	assert.Equal(t, upserted.Address, session.Address)
}

// ─────────────────────────────────────────────
// Revoke
// ─────────────────────────────────────────────

func sessionFixture(now time.Time, ttl time.Duration) models.ShareSession {
	doc := testDocument()
	return models.ShareSession{
		Address:                 DeriveShareAddress(doc.Address, verifierKey),
		Owner:                   ownerKey,
		Verifier:                verifierKey,
		Document:                doc.Address,
		ConfidentialFieldHandle: "session-doc-handle",
		CreatedAt:               now,
		ExpiresAt:               now.Add(ttl),
	}
}

func ledgerWithSession(session models.ShareSession) *mockLedger {
	return &mockLedger{
		getSessionFn: func(_ context.Context, addr models.Address) (models.ShareSession, error) {
			if addr == session.Address {
				return session, nil
			}
			return models.ShareSession{}, store.ErrSessionNotFound
		},
	}
}

func TestEngine_Revoke_Success(t *testing.T) {
	now := time.Now()
	session := sessionFixture(now, time.Hour)

	var marked, retracted bool
	ledger := ledgerWithSession(session)
	ledger.markRevokedFn = func(_ context.Context, addr models.Address) error {
		assert.Equal(t, session.Address, addr)
		marked = true
		return nil
	}

	vault := &mockVault{
		revokeFn: func(_ context.Context, handle string, grantee models.Identity) error {
			assert.Equal(t, session.ConfidentialFieldHandle, handle)
			assert.Equal(t, verifierKey, grantee)
			retracted = true
			return nil
		},
	}

	e := testEngine(ledger, vault, now)

	err := e.Revoke(context.Background(), ownerKey, session.Address)

	require.NoError(t, err)
	assert.True(t, marked)
	assert.True(t, retracted)
}

func TestEngine_Revoke_Idempotent(t *testing.T) {
	now := time.Now()
	session := sessionFixture(now, time.Hour)
	session.Revoked = true

	ledger := ledgerWithSession(session)
	ledger.markRevokedFn = func(context.Context, models.Address) error {
		t.Fatal("an already-revoked session must not be re-marked")
		return nil
	}

	e := testEngine(ledger, &mockVault{}, now)

	err := e.Revoke(context.Background(), ownerKey, session.Address)

	require.NoError(t, err)
}

func TestEngine_Revoke_NonOwner(t *testing.T) {
	now := time.Now()
	session := sessionFixture(now, time.Hour)

	e := testEngine(ledgerWithSession(session), &mockVault{}, now)

	err := e.Revoke(context.Background(), strangerKey, session.Address)

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestEngine_Revoke_NotFound(t *testing.T) {
	e := testEngine(&mockLedger{}, &mockVault{}, time.Now())

	err := e.Revoke(context.Background(), ownerKey, DeriveProfileAddress("missing"))

	assert.ErrorIs(t, err, ErrNotFound)
}

// The ledger tombstone stands even when the vault retraction fails; the
// retraction is retried by the reconciler.
func TestEngine_Revoke_VaultFailureKeepsTombstone(t *testing.T) {
	now := time.Now()
	session := sessionFixture(now, time.Hour)

	var marked bool
	ledger := ledgerWithSession(session)
	ledger.markRevokedFn = func(context.Context, models.Address) error {
		marked = true
		return nil
	}

	vault := &mockVault{
		revokeFn: func(context.Context, string, models.Identity) error {
			return errVaultDown
		},
	}

	e := testEngine(ledger, vault, now)

	err := e.Revoke(context.Background(), ownerKey, session.Address)

	require.NoError(t, err)
	assert.True(t, marked)
}

// ─────────────────────────────────────────────
// EvaluateStatus
// ─────────────────────────────────────────────

func TestEngine_EvaluateStatus(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	session := sessionFixture(created, 3600*time.Second)

	tests := []struct {
		name    string
		revoked bool
		at      time.Time
		want    models.ShareStatus
	}{
		{name: "valid mid-lifetime", at: created.Add(1800 * time.Second), want: models.ShareStatusValid},
		{name: "valid at exact expiry", at: created.Add(3600 * time.Second), want: models.ShareStatusValid},
		{name: "expired one second past", at: created.Add(3601 * time.Second), want: models.ShareStatusExpired},
		{name: "revoked before expiry", revoked: true, at: created.Add(time.Second), want: models.ShareStatusRevoked},
		{name: "revoked wins over expiry", revoked: true, at: created.Add(7200 * time.Second), want: models.ShareStatusRevoked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := session
			s.Revoked = tt.revoked

			e := testEngine(ledgerWithSession(s), &mockVault{}, tt.at)

			status, got, err := e.EvaluateStatus(context.Background(), s.Address, tt.at)

			require.NoError(t, err)
			assert.Equal(t, tt.want, status)
			assert.Equal(t, s.Address, got.Address)
		})
	}
}

func TestEngine_EvaluateStatus_NotFoundIsNotAnError(t *testing.T) {
	e := testEngine(&mockLedger{}, &mockVault{}, time.Now())

	status, session, err := e.EvaluateStatus(context.Background(), DeriveProfileAddress("missing"), time.Now())

	require.NoError(t, err)
	assert.Equal(t, models.ShareStatusNotFound, status)
	assert.True(t, session.Address.IsZero())
}

func TestEngine_EvaluateStatus_LedgerFailure(t *testing.T) {
	ledger := &mockLedger{
		getSessionFn: func(context.Context, models.Address) (models.ShareSession, error) {
			return models.ShareSession{}, errLedgerDown
		},
	}

	e := testEngine(ledger, &mockVault{}, time.Now())

	_, _, err := e.EvaluateStatus(context.Background(), DeriveProfileAddress("any"), time.Now())

	assert.ErrorIs(t, err, ErrLedgerUnavailable)
}

// ─────────────────────────────────────────────
// RequestDisclosure
// ─────────────────────────────────────────────

func TestEngine_RequestDisclosure_Success(t *testing.T) {
	now := time.Now()
	session := sessionFixture(now.Add(-time.Minute), time.Hour)

	vault := &mockVault{
		decryptFn: func(_ context.Context, handle string, requester models.Identity, proof []byte) (string, error) {
			assert.Equal(t, session.ConfidentialFieldHandle, handle)
			assert.Equal(t, verifierKey, requester)
			assert.Equal(t, []byte("signed-proof"), proof)
			return "disclosed-scalar", nil
		},
	}

	e := testEngine(ledgerWithSession(session), vault, now)

	plaintext, err := e.RequestDisclosure(context.Background(), session.Address, verifierKey, []byte("signed-proof"))

	require.NoError(t, err)
	assert.Equal(t, "disclosed-scalar", plaintext)
}

func TestEngine_RequestDisclosure_Repeatable(t *testing.T) {
	now := time.Now()
	session := sessionFixture(now.Add(-time.Minute), time.Hour)

	calls := 0
	vault := &mockVault{
		decryptFn: func(context.Context, string, models.Identity, []byte) (string, error) {
			calls++
			return "disclosed-scalar", nil
		},
	}

	e := testEngine(ledgerWithSession(session), vault, now)

	for range 3 {
		_, err := e.RequestDisclosure(context.Background(), session.Address, verifierKey, []byte("p"))
		require.NoError(t, err)
	}

	assert.Equal(t, 3, calls)
}

func TestEngine_RequestDisclosure_Revoked(t *testing.T) {
	now := time.Now()
	session := sessionFixture(now, time.Hour)
	session.Revoked = true

	e := testEngine(ledgerWithSession(session), &mockVault{}, now)

	_, err := e.RequestDisclosure(context.Background(), session.Address, verifierKey, nil)

	assert.ErrorIs(t, err, ErrRevoked)
}

func TestEngine_RequestDisclosure_Expired(t *testing.T) {
	created := time.Now().Add(-2 * time.Hour)
	session := sessionFixture(created, time.Hour)

	e := testEngine(ledgerWithSession(session), &mockVault{}, time.Now())

	_, err := e.RequestDisclosure(context.Background(), session.Address, verifierKey, nil)

	assert.ErrorIs(t, err, ErrExpired)
}

func TestEngine_RequestDisclosure_IdentityMismatch(t *testing.T) {
	now := time.Now()
	session := sessionFixture(now, time.Hour)

	vault := &mockVault{
		decryptFn: func(context.Context, string, models.Identity, []byte) (string, error) {
			t.Fatal("vault must not be reached on an identity mismatch")
			return "", nil
		},
	}

	e := testEngine(ledgerWithSession(session), vault, now)

	_, err := e.RequestDisclosure(context.Background(), session.Address, strangerKey, nil)

	assert.ErrorIs(t, err, ErrIdentityMismatch)
	assert.NotErrorIs(t, err, ErrUnauthorized)
}

func TestEngine_RequestDisclosure_NotFound(t *testing.T) {
	e := testEngine(&mockLedger{}, &mockVault{}, time.Now())

	_, err := e.RequestDisclosure(context.Background(), DeriveProfileAddress("missing"), verifierKey, nil)

	assert.ErrorIs(t, err, ErrNotFound)
}
