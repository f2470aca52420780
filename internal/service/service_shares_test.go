package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/privylocker/privy-locker/internal/logger"
	"github.com/privylocker/privy-locker/internal/protocol"
	"github.com/privylocker/privy-locker/models"
)

// ─────────────────────────────────────────────
// Mock: ShareEngine
// ─────────────────────────────────────────────

type mockShareEngine struct {
	createShareFn       func(ctx context.Context, caller models.Identity, document models.Address, verifier models.Identity, ttl time.Duration) (models.ShareSession, error)
	revokeFn            func(ctx context.Context, caller models.Identity, share models.Address) error
	evaluateStatusFn    func(ctx context.Context, share models.Address, now time.Time) (models.ShareStatus, models.ShareSession, error)
	requestDisclosureFn func(ctx context.Context, share models.Address, verifier models.Identity, proof []byte) (string, error)
}

func (m *mockShareEngine) CreateShare(ctx context.Context, caller models.Identity, document models.Address, verifier models.Identity, ttl time.Duration) (models.ShareSession, error) {
	if m.createShareFn != nil {
		return m.createShareFn(ctx, caller, document, verifier, ttl)
	}
	return models.ShareSession{}, nil
}

func (m *mockShareEngine) Revoke(ctx context.Context, caller models.Identity, share models.Address) error {
	if m.revokeFn != nil {
		return m.revokeFn(ctx, caller, share)
	}
	return nil
}

func (m *mockShareEngine) EvaluateStatus(ctx context.Context, share models.Address, now time.Time) (models.ShareStatus, models.ShareSession, error) {
	if m.evaluateStatusFn != nil {
		return m.evaluateStatusFn(ctx, share, now)
	}
	return models.ShareStatusNotFound, models.ShareSession{}, nil
}

func (m *mockShareEngine) RequestDisclosure(ctx context.Context, share models.Address, verifier models.Identity, proof []byte) (string, error) {
	if m.requestDisclosureFn != nil {
		return m.requestDisclosureFn(ctx, share, verifier, proof)
	}
	return "", nil
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func newRawShareService(engine *mockShareEngine) *shareService {
	return &shareService{
		engine:     engine,
		defaultTTL: time.Hour,
		now:        func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) },
		logger:     logger.Nop(),
	}
}

func shareAddresses() (models.Address, models.Address) {
	profile := protocol.DeriveProfileAddress(testOwner)
	document := protocol.DeriveDocumentAddress(profile, 0)
	return document, protocol.DeriveShareAddress(document, "verifier-key")
}

// ─────────────────────────────────────────────
// CreateShare
// ─────────────────────────────────────────────

func TestShareService_CreateShare_ExplicitTTL(t *testing.T) {
	document, _ := shareAddresses()

	engine := &mockShareEngine{
		createShareFn: func(_ context.Context, caller models.Identity, doc models.Address, verifier models.Identity, ttl time.Duration) (models.ShareSession, error) {
			assert.Equal(t, testOwner, caller)
			assert.Equal(t, document, doc)
			assert.Equal(t, models.Identity("verifier-key"), verifier)
			assert.Equal(t, 90*time.Second, ttl)
			return models.ShareSession{Owner: caller}, nil
		},
	}

	svc := newRawShareService(engine)

	session, err := svc.CreateShare(context.Background(), testOwner, models.CreateShareRequest{
		Document:   document,
		Verifier:   "verifier-key",
		TTLSeconds: 90,
	})

	require.NoError(t, err)
	assert.Equal(t, testOwner, session.Owner)
}

func TestShareService_CreateShare_DefaultTTL(t *testing.T) {
	document, _ := shareAddresses()

	engine := &mockShareEngine{
		createShareFn: func(_ context.Context, _ models.Identity, _ models.Address, _ models.Identity, ttl time.Duration) (models.ShareSession, error) {
			assert.Equal(t, time.Hour, ttl)
			return models.ShareSession{}, nil
		},
	}

	svc := newRawShareService(engine)

	_, err := svc.CreateShare(context.Background(), testOwner, models.CreateShareRequest{
		Document: document,
		Verifier: "verifier-key",
	})

	require.NoError(t, err)
}

// A negative TTL must reach the engine untouched so it is rejected there,
// not silently replaced by the default.
func TestShareService_CreateShare_NegativeTTLPassedThrough(t *testing.T) {
	document, _ := shareAddresses()

	engine := &mockShareEngine{
		createShareFn: func(_ context.Context, _ models.Identity, _ models.Address, _ models.Identity, ttl time.Duration) (models.ShareSession, error) {
			assert.Equal(t, -5*time.Second, ttl)
			return models.ShareSession{}, protocol.ErrInvalidTTL
		},
	}

	svc := newRawShareService(engine)

	_, err := svc.CreateShare(context.Background(), testOwner, models.CreateShareRequest{
		Document:   document,
		Verifier:   "verifier-key",
		TTLSeconds: -5,
	})

	assert.ErrorIs(t, err, protocol.ErrInvalidTTL)
}

func TestShareService_CreateShare_InvalidData(t *testing.T) {
	document, _ := shareAddresses()
	svc := newRawShareService(&mockShareEngine{})

	tests := []struct {
		name   string
		caller models.Identity
		req    models.CreateShareRequest
	}{
		{name: "empty caller", caller: "", req: models.CreateShareRequest{Document: document, Verifier: "v"}},
		{name: "zero document", caller: testOwner, req: models.CreateShareRequest{Verifier: "v"}},
		{name: "empty verifier", caller: testOwner, req: models.CreateShareRequest{Document: document}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateShare(context.Background(), tt.caller, tt.req)
			assert.ErrorIs(t, err, ErrInvalidDataProvided)
		})
	}
}

// ─────────────────────────────────────────────
// Revoke / Status / Disclose
// ─────────────────────────────────────────────

func TestShareService_Revoke(t *testing.T) {
	_, share := shareAddresses()

	var revoked models.Address
	engine := &mockShareEngine{
		revokeFn: func(_ context.Context, caller models.Identity, addr models.Address) error {
			assert.Equal(t, testOwner, caller)
			revoked = addr
			return nil
		},
	}

	svc := newRawShareService(engine)

	require.NoError(t, svc.Revoke(context.Background(), testOwner, share))
	assert.Equal(t, share, revoked)

	assert.ErrorIs(t, svc.Revoke(context.Background(), "", share), ErrInvalidDataProvided)
	assert.ErrorIs(t, svc.Revoke(context.Background(), testOwner, models.Address{}), ErrInvalidDataProvided)
}

func TestShareService_Status_UsesServiceClock(t *testing.T) {
	_, share := shareAddresses()
	wantNow := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	engine := &mockShareEngine{
		evaluateStatusFn: func(_ context.Context, addr models.Address, now time.Time) (models.ShareStatus, models.ShareSession, error) {
			assert.Equal(t, share, addr)
			assert.Equal(t, wantNow, now)
			return models.ShareStatusValid, models.ShareSession{Address: addr}, nil
		},
	}

	svc := newRawShareService(engine)

	status, session, err := svc.Status(context.Background(), share)

	require.NoError(t, err)
	assert.Equal(t, models.ShareStatusValid, status)
	assert.Equal(t, share, session.Address)
}

// A zero address cannot correspond to any session, so the engine is not
// consulted at all.
func TestShareService_Status_ZeroAddress(t *testing.T) {
	engine := &mockShareEngine{
		evaluateStatusFn: func(context.Context, models.Address, time.Time) (models.ShareStatus, models.ShareSession, error) {
			t.Fatal("engine must not be reached for a zero address")
			return "", models.ShareSession{}, nil
		},
	}

	svc := newRawShareService(engine)

	status, _, err := svc.Status(context.Background(), models.Address{})

	require.NoError(t, err)
	assert.Equal(t, models.ShareStatusNotFound, status)
}

func TestShareService_Disclose(t *testing.T) {
	_, share := shareAddresses()

	engine := &mockShareEngine{
		requestDisclosureFn: func(_ context.Context, addr models.Address, verifier models.Identity, proof []byte) (string, error) {
			assert.Equal(t, share, addr)
			assert.Equal(t, models.Identity("verifier-key"), verifier)
			assert.Equal(t, []byte("proof"), proof)
			return "disclosed", nil
		},
	}

	svc := newRawShareService(engine)

	plaintext, err := svc.Disclose(context.Background(), share, "verifier-key", []byte("proof"))

	require.NoError(t, err)
	assert.Equal(t, "disclosed", plaintext)

	_, err = svc.Disclose(context.Background(), share, "", nil)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}
