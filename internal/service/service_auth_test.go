package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/privylocker/privy-locker/internal/config"
	"github.com/privylocker/privy-locker/internal/logger"
)

func newTestAuthService(duration time.Duration) AuthService {
	return NewAuthService(config.App{
		TokenSignKey:  "test-sign-key",
		TokenIssuer:   "privy-locker",
		TokenDuration: duration,
	}, logger.Nop())
}

func TestAuthService_IssueAndParseToken(t *testing.T) {
	svc := newTestAuthService(time.Hour)

	token, err := svc.IssueToken(context.Background(), "owner-key")
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)
	assert.Equal(t, "owner-key", string(token.Identity))

	parsed, err := svc.ParseToken(context.Background(), token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, token.Identity, parsed.Identity)
}

func TestAuthService_IssueToken_EmptyIdentity(t *testing.T) {
	svc := newTestAuthService(time.Hour)

	_, err := svc.IssueToken(context.Background(), "")

	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAuthService_ParseToken_Garbage(t *testing.T) {
	svc := newTestAuthService(time.Hour)

	_, err := svc.ParseToken(context.Background(), "not-a-jwt")

	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_ParseToken_Expired(t *testing.T) {
	svc := newTestAuthService(-time.Minute)

	token, err := svc.IssueToken(context.Background(), "owner-key")
	require.NoError(t, err)

	_, err = svc.ParseToken(context.Background(), token.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_ParseToken_WrongKey(t *testing.T) {
	issuing := newTestAuthService(time.Hour)
	token, err := issuing.IssueToken(context.Background(), "owner-key")
	require.NoError(t, err)

	verifying := NewAuthService(config.App{
		TokenSignKey:  "different-sign-key",
		TokenIssuer:   "privy-locker",
		TokenDuration: time.Hour,
	}, logger.Nop())

	_, err = verifying.ParseToken(context.Background(), token.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}
