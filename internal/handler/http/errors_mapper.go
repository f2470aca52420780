package http

import (
	"errors"
	"net/http"

	"github.com/privylocker/privy-locker/internal/protocol"
	"github.com/privylocker/privy-locker/internal/service"
	"github.com/privylocker/privy-locker/internal/store"
)

type errorStatus struct {
	target error
	status int
}

// errorStatusMapping is matched in order. Protocol and service sentinels
// come before the store ones: an engine error such as
// [protocol.ErrLedgerUnavailable] wraps the underlying store error, and
// the protocol-level status must win over the generic 500.
var errorStatusMapping = []errorStatus{
	{service.ErrInvalidDataProvided, http.StatusBadRequest},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
	{service.ErrRegistrationContention, http.StatusConflict},

	{protocol.ErrInvalidTTL, http.StatusBadRequest},
	{protocol.ErrNotFound, http.StatusNotFound},
	{protocol.ErrUnauthorized, http.StatusForbidden},
	{protocol.ErrIdentityMismatch, http.StatusForbidden},
	{protocol.ErrRevoked, http.StatusGone},
	{protocol.ErrExpired, http.StatusGone},
	{protocol.ErrGrantFailed, http.StatusBadGateway},
	{protocol.ErrVaultUnavailable, http.StatusBadGateway},
	{protocol.ErrLedgerUnavailable, http.StatusServiceUnavailable},

	{store.ErrProfileNotFound, http.StatusNotFound},
	{store.ErrDocumentNotFound, http.StatusNotFound},
	{store.ErrSessionNotFound, http.StatusNotFound},
	{store.ErrBlobNotFound, http.StatusNotFound},
	{store.ErrInvalidBlobURI, http.StatusBadRequest},

	{store.ErrBuildingSQLQuery, http.StatusInternalServerError},
	{store.ErrExecutingQuery, http.StatusInternalServerError},
	{store.ErrBeginningTransaction, http.StatusInternalServerError},
	{store.ErrCommitingTransaction, http.StatusInternalServerError},
	{store.ErrScanningRow, http.StatusInternalServerError},
	{store.ErrScanningRows, http.StatusInternalServerError},
}

func statusFromError(err error) int {
	for _, m := range errorStatusMapping {
		if errors.Is(err, m.target) {
			return m.status
		}
	}
	return http.StatusInternalServerError
}
