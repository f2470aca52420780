// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/privylocker/privy-locker/internal/logger"
	"github.com/privylocker/privy-locker/internal/store"
	"github.com/privylocker/privy-locker/internal/vault"
	"github.com/privylocker/privy-locker/models"
)

// reconcileBatchSize caps how many pending sessions one sweep picks up.
const reconcileBatchSize = 64

// grantReconciler is the background worker that completes the second
// phase of the create-then-grant sequence when the inline attempt failed.
//
// Each sweep loads sessions whose grant_pending flag is set and converges
// the vault towards the ledger state: active sessions get their verifier
// grant re-issued, revoked and expired sessions get it retracted. Both
// vault calls are idempotent, so re-processing a session that was fixed
// concurrently is harmless.
type grantReconciler struct {
	sessions store.SessionRepository
	vault    vault.Vault

	interval time.Duration
	logger   *logger.Logger
}

// NewGrantReconciler constructs a [Worker] sweeping pending sessions
// every interval.
func NewGrantReconciler(sessions store.SessionRepository, v vault.Vault, interval time.Duration, logger *logger.Logger) Worker {
	return &grantReconciler{
		sessions: sessions,
		vault:    v,
		interval: interval,
		logger:   logger,
	}
}

// Run implements [Worker]. It starts the sweep loop in its own goroutine
// and returns immediately; the loop exits when ctx is cancelled.
func (g *grantReconciler) Run(ctx context.Context) {
	g.logger.Info().Dur("interval", g.interval).Msg("starting grant reconciler")

	go func() {
		ticker := time.NewTicker(g.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				g.logger.Info().Msg("grant reconciler stopped")
				return
			case <-ticker.C:
				g.reconcile(ctx)
			}
		}
	}()
}

// reconcile performs one sweep over the pending-session queue.
func (g *grantReconciler) reconcile(ctx context.Context) {
	log := g.logger

	pending, err := g.sessions.ListGrantPending(ctx, reconcileBatchSize)
	if err != nil {
		log.Err(err).Str("func", "*grantReconciler.reconcile").Msg("failed to load pending sessions")
		return
	}
	if len(pending) == 0 {
		return
	}

	log.Debug().Int("count", len(pending)).Msg("reconciling pending vault grants")

	for _, session := range pending {
		if err := g.reconcileSession(ctx, session); err != nil {
			log.Err(err).
				Str("func", "*grantReconciler.reconcile").
				Str("share", session.Address.String()).
				Bool("revoked", session.Revoked).
				Msg("session left pending for the next sweep")
			continue
		}

		if err := g.sessions.SetGrantPending(ctx, session.Address, false); err != nil {
			log.Err(err).
				Str("func", "*grantReconciler.reconcile").
				Str("share", session.Address.String()).
				Msg("failed to clear grant-pending flag")
		}
	}
}

// reconcileSession converges the vault with one session's ledger state,
// retrying transient vault failures with exponential backoff inside the
// sweep.
func (g *grantReconciler) reconcileSession(ctx context.Context, session models.ShareSession) error {
	backoff := retry.WithMaxRetries(3, retry.NewExponential(500*time.Millisecond))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		var err error
		if session.StatusAt(time.Now()) == models.ShareStatusValid {
			err = g.vault.Grant(ctx, session.ConfidentialFieldHandle, session.Verifier)
		} else {
			err = g.vault.Revoke(ctx, session.ConfidentialFieldHandle, session.Verifier)
		}
		if err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}
