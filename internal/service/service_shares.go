// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/privylocker/privy-locker/internal/config"
	"github.com/privylocker/privy-locker/internal/logger"
	"github.com/privylocker/privy-locker/models"
)

// shareService is the concrete implementation of [ShareService]. It is a
// thin facade over the protocol engine: it applies the configured default
// TTL and leaves every protocol decision to the engine.
type shareService struct {
	engine ShareEngine

	// defaultTTL is applied when a share request does not carry a TTL.
	defaultTTL time.Duration

	// now is the clock used for status evaluation; injectable for tests.
	now func() time.Time

	logger *logger.Logger
}

// NewShareService constructs a [ShareService] over the protocol engine.
func NewShareService(engine ShareEngine, cfg config.App, logger *logger.Logger) ShareService {
	return &shareService{
		engine:     engine,
		defaultTTL: cfg.DefaultShareTTL,
		now:        time.Now,
		logger:     logger,
	}
}

// CreateShare creates the share session described by req on behalf of
// caller. A zero req.TTLSeconds falls back to the configured default
// session lifetime; a negative value is passed through so the engine
// rejects it.
func (s *shareService) CreateShare(ctx context.Context, caller models.Identity, req models.CreateShareRequest) (models.ShareSession, error) {
	log := logger.FromContext(ctx)

	if caller.IsZero() || req.Document.IsZero() || req.Verifier.IsZero() {
		log.Error().Str("func", "*shareService.CreateShare").Msg("invalid share data provided")
		return models.ShareSession{}, ErrInvalidDataProvided
	}

	ttl := time.Duration(req.TTLSeconds) * time.Second
	if req.TTLSeconds == 0 {
		ttl = s.defaultTTL
	}

	return s.engine.CreateShare(ctx, caller, req.Document, req.Verifier, ttl)
}

// Revoke revokes the session at share on behalf of caller.
func (s *shareService) Revoke(ctx context.Context, caller models.Identity, share models.Address) error {
	if caller.IsZero() || share.IsZero() {
		return ErrInvalidDataProvided
	}

	return s.engine.Revoke(ctx, caller, share)
}

// Status evaluates the session state at the current instant.
func (s *shareService) Status(ctx context.Context, share models.Address) (models.ShareStatus, models.ShareSession, error) {
	if share.IsZero() {
		return models.ShareStatusNotFound, models.ShareSession{}, nil
	}

	return s.engine.EvaluateStatus(ctx, share, s.now())
}

// Disclose requests disclosure of the shared confidential field for
// verifier, forwarding the signed proof opaquely.
func (s *shareService) Disclose(ctx context.Context, share models.Address, verifier models.Identity, proof []byte) (string, error) {
	if share.IsZero() || verifier.IsZero() {
		return "", ErrInvalidDataProvided
	}

	return s.engine.RequestDisclosure(ctx, share, verifier, proof)
}
