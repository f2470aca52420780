// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package protocol

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/privylocker/privy-locker/internal/logger"
	"github.com/privylocker/privy-locker/internal/store"
	"github.com/privylocker/privy-locker/models"
)

// Engine sequences the sharing protocol operations over the ledger and
// vault. It is safe for concurrent use: all state lives in the ledger,
// which serialises writes at each derived address.
type Engine struct {
	ledger Ledger
	vault  Vault
	policy VerifierPolicy

	// now is the clock used for session lifetimes; injectable for tests.
	now func() time.Time

	logger *logger.Logger
}

// NewEngine constructs an [Engine] over the given collaborators.
func NewEngine(ledger Ledger, vault Vault, policy VerifierPolicy, log *logger.Logger) *Engine {
	return &Engine{
		ledger: ledger,
		vault:  vault,
		policy: policy,
		now:    time.Now,
		logger: log,
	}
}

// CreateShare creates (or re-creates) the share session authorizing
// verifier to request disclosure of the document's confidential field
// until the TTL elapses.
//
// The operation is two-phase and NOT atomic:
//  1. a session-scoped vault handle is derived and the session record is
//     written to the ledger with grant_pending set;
//  2. the verifier is granted decrypt access on the handle in the vault.
//
// If phase 2 fails the session stays grant-pending and [ErrGrantFailed]
// is returned together with the created session, so the caller can retry
// the grant or issue a compensating revoke; the reconciler worker retries
// pending grants in the background either way.
//
// Errors: [ErrNotFound] if the document does not exist, [ErrUnauthorized]
// if caller is not the owner or verifier fails the policy, [ErrInvalidTTL]
// for a non-positive ttl, [ErrLedgerUnavailable] / [ErrVaultUnavailable]
// on transient failures before any inconsistent state exists, and
// [ErrGrantFailed] as described above.
func (e *Engine) CreateShare(ctx context.Context, caller models.Identity, document models.Address, verifier models.Identity, ttl time.Duration) (models.ShareSession, error) {
	log := logger.FromContext(ctx)

	if ttl <= 0 {
		return models.ShareSession{}, ErrInvalidTTL
	}

	doc, err := e.ledger.GetDocument(ctx, document)
	if err != nil {
		if errors.Is(err, store.ErrDocumentNotFound) {
			return models.ShareSession{}, fmt.Errorf("%w: document %s", ErrNotFound, document)
		}
		return models.ShareSession{}, fmt.Errorf("%w: %w", ErrLedgerUnavailable, err)
	}

	if doc.Owner != caller {
		log.Warn().
			Str("func", "Engine.CreateShare").
			Str("document", document.String()).
			Str("caller", string(caller)).
			Msg("share attempt by non-owner")
		return models.ShareSession{}, fmt.Errorf("%w: caller is not the document owner", ErrUnauthorized)
	}

	if !e.policy.IsAuthorizedVerifier(verifier) {
		log.Warn().
			Str("func", "Engine.CreateShare").
			Str("verifier", string(verifier)).
			Msg("verifier rejected by policy")
		return models.ShareSession{}, fmt.Errorf("%w: verifier is not allow-listed", ErrUnauthorized)
	}

	// Phase 1: derive a session-scoped handle and persist the session.
	sessionHandle, err := e.vault.Rekey(ctx, doc.ConfidentialFieldHandle)
	if err != nil {
		return models.ShareSession{}, fmt.Errorf("%w: rekey: %w", ErrVaultUnavailable, err)
	}

	now := e.now()
	session := models.ShareSession{
		Address:                 DeriveShareAddress(document, verifier),
		Owner:                   caller,
		Verifier:                verifier,
		Document:                document,
		ConfidentialFieldHandle: sessionHandle,
		CreatedAt:               now,
		ExpiresAt:               now.Add(ttl),
		Revoked:                 false,
		GrantPending:            true,
	}

	if err := e.ledger.UpsertSession(ctx, &session); err != nil {
		return models.ShareSession{}, fmt.Errorf("%w: %w", ErrLedgerUnavailable, err)
	}

	// Phase 2: grant the verifier on the session handle.
	if err := e.vault.Grant(ctx, sessionHandle, verifier); err != nil {
		log.Error().
			Err(err).
			Str("func", "Engine.CreateShare").
			Str("share", session.Address.String()).
			Msg("vault grant failed after session write; session left grant-pending")
		return session, fmt.Errorf("%w: %w", ErrGrantFailed, err)
	}

	if err := e.ledger.SetGrantPending(ctx, session.Address, false); err != nil {
		// The grant itself succeeded; a stuck pending flag only causes a
		// redundant re-grant by the reconciler, which is idempotent.
		log.Warn().
			Err(err).
			Str("func", "Engine.CreateShare").
			Str("share", session.Address.String()).
			Msg("failed to clear grant-pending flag after successful grant")
	} else {
		session.GrantPending = false
	}

	log.Info().
		Str("func", "Engine.CreateShare").
		Str("share", session.Address.String()).
		Str("verifier", string(verifier)).
		Time("expires_at", session.ExpiresAt).
		Msg("share session created")

	return session, nil
}

// Revoke sets the session's revoked tombstone. Only the owner who created
// the session may revoke it. Idempotent: revoking an already-revoked
// session is a successful no-op.
//
// The vault grant is retracted in the same call; if the retraction fails
// the tombstone still stands and the session is left grant-pending so the
// reconciler retries the retraction. The ledger-side revocation is never
// rolled back because of a vault failure.
func (e *Engine) Revoke(ctx context.Context, caller models.Identity, share models.Address) error {
	log := logger.FromContext(ctx)

	session, err := e.ledger.GetSession(ctx, share)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return fmt.Errorf("%w: share %s", ErrNotFound, share)
		}
		return fmt.Errorf("%w: %w", ErrLedgerUnavailable, err)
	}

	if session.Owner != caller {
		return fmt.Errorf("%w: caller did not create this session", ErrUnauthorized)
	}

	if session.Revoked {
		return nil
	}

	if err := e.ledger.MarkRevoked(ctx, share); err != nil {
		return fmt.Errorf("%w: %w", ErrLedgerUnavailable, err)
	}

	if err := e.vault.Revoke(ctx, session.ConfidentialFieldHandle, session.Verifier); err != nil {
		log.Warn().
			Err(err).
			Str("func", "Engine.Revoke").
			Str("share", share.String()).
			Msg("vault grant retraction failed; left pending for the reconciler")
		return nil
	}

	if err := e.ledger.SetGrantPending(ctx, share, false); err != nil {
		log.Warn().
			Err(err).
			Str("func", "Engine.Revoke").
			Str("share", share.String()).
			Msg("failed to clear grant-pending flag after retraction")
	}

	log.Info().
		Str("func", "Engine.Revoke").
		Str("share", share.String()).
		Msg("share session revoked")

	return nil
}

// EvaluateStatus resolves the session state at the given instant. A
// missing record yields [models.ShareStatusNotFound] with a nil error;
// only transient ledger failures produce an error.
func (e *Engine) EvaluateStatus(ctx context.Context, share models.Address, now time.Time) (models.ShareStatus, models.ShareSession, error) {
	session, err := e.ledger.GetSession(ctx, share)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return models.ShareStatusNotFound, models.ShareSession{}, nil
		}
		return "", models.ShareSession{}, fmt.Errorf("%w: %w", ErrLedgerUnavailable, err)
	}

	return session.StatusAt(now), session, nil
}

// RequestDisclosure forwards the session's confidential-field handle and
// the verifier's signed proof to the vault's decrypt interface and returns
// the disclosed scalar.
//
// Preconditions: the session must evaluate to valid at the engine's clock,
// and verifier must equal the session's verifier exactly (otherwise
// [ErrIdentityMismatch], which is deliberately distinct from
// [ErrUnauthorized]). The operation has no ledger side effects and may be
// repeated by the same verifier until the session expires.
func (e *Engine) RequestDisclosure(ctx context.Context, share models.Address, verifier models.Identity, proof []byte) (string, error) {
	session, err := e.ledger.GetSession(ctx, share)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return "", fmt.Errorf("%w: share %s", ErrNotFound, share)
		}
		return "", fmt.Errorf("%w: %w", ErrLedgerUnavailable, err)
	}

	switch session.StatusAt(e.now()) {
	case models.ShareStatusRevoked:
		return "", ErrRevoked
	case models.ShareStatusExpired:
		return "", ErrExpired
	}

	if session.Verifier != verifier {
		return "", fmt.Errorf("%w: connected %s, expected %s", ErrIdentityMismatch, verifier, session.Verifier)
	}

	plaintext, err := e.vault.Decrypt(ctx, session.ConfidentialFieldHandle, verifier, proof)
	if err != nil {
		return "", fmt.Errorf("vault decrypt: %w", err)
	}

	return plaintext, nil
}
