// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating
// with the locker server.
//
// The primary abstraction is [ServerAdapter], which decouples the client
// service layer from the underlying protocol. The package ships an
// HTTP/REST implementation ([NewHTTPServerAdapter]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrGone] for 410, [ErrForbidden] for 403).
package adapter

import (
	"context"

	"github.com/privylocker/privy-locker/models"
)

// ServerAdapter defines transport-agnostic communication with the locker
// server. Implementations are responsible for serialisation, bearer-token
// management, and mapping transport-level errors to the sentinel values
// defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent authenticated requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or
	// an empty string if no token has been set yet.
	Token() string

	// IssueToken requests a bearer token bound to identity. On success the
	// token is stored via SetToken and also returned.
	IssueToken(ctx context.Context, identity models.Identity) (string, error)

	// UploadBlob sends the encrypted blob to the relay and returns the
	// content-store URI assigned to it.
	UploadBlob(ctx context.Context, data []byte, originalName string) (string, error)

	// DownloadBlob fetches the encrypted blob bytes for uri.
	DownloadBlob(ctx context.Context, uri string) ([]byte, error)

	// RegisterDocument registers an uploaded artifact on the ledger.
	// Requires a valid bearer token.
	RegisterDocument(ctx context.Context, req models.RegisterDocumentRequest) (models.Document, error)

	// ListDocuments fetches the authenticated owner's document records.
	// Requires a valid bearer token.
	ListDocuments(ctx context.Context) ([]models.Document, error)

	// CreateShare creates a share session. Requires a valid bearer token.
	CreateShare(ctx context.Context, req models.CreateShareRequest) (models.ShareSession, error)

	// RevokeShare revokes the session at share. Requires a valid bearer
	// token.
	RevokeShare(ctx context.Context, share models.Address) error

	// ShareStatus fetches the public verification view of a session. No
	// authentication is required.
	ShareStatus(ctx context.Context, share models.Address) (models.ShareStatusResponse, error)

	// Disclose requests disclosure of the shared confidential field. Sent
	// by the verifier; no bearer token is required, the vault verifies the
	// embedded proof instead.
	Disclose(ctx context.Context, share models.Address, req models.DisclosureRequest) (models.DisclosureResponse, error)
}
