package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/privylocker/privy-locker/internal/config"
	"github.com/privylocker/privy-locker/internal/logger"
	"github.com/privylocker/privy-locker/internal/utils"
	"github.com/privylocker/privy-locker/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL from
// adapterCfg.HTTPAddress and configures the underlying HTTP client with
// the resolved base URL and request timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed
// as a valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token
// (whitespace-trimmed) for use in the Authorization header of all
// subsequent authenticated requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	return h.token
}

// IssueToken implements [ServerAdapter]. It POSTs the identity to
// POST /api/auth/token. On success the bearer token is extracted from the
// Authorization response header and stored via SetToken.
func (h *httpServerAdapter) IssueToken(ctx context.Context, identity models.Identity) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]models.Identity{"identity": identity}).
		Post("/api/auth/token")
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return "", fmt.Errorf("token parse bearer token: %w", err)
	}

	h.SetToken(token)
	return token, nil
}

// UploadBlob implements [ServerAdapter]. It POSTs the raw encrypted bytes
// to POST /api/blobs with the original file name as a query parameter and
// returns the relay URI.
func (h *httpServerAdapter) UploadBlob(ctx context.Context, data []byte, originalName string) (string, error) {
	var result models.BlobUploadResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/octet-stream").
		SetQueryParam("name", originalName).
		SetBody(data).
		SetResult(&result).
		Post("/api/blobs")
	if err != nil {
		return "", fmt.Errorf("blob upload request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return result.URI, nil
}

// DownloadBlob implements [ServerAdapter]. It GETs the blob bytes from
// GET /api/blobs/{uri}.
func (h *httpServerAdapter) DownloadBlob(ctx context.Context, uri string) ([]byte, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("uri", uri).
		Get("/api/blobs/{uri}")
	if err != nil {
		return nil, fmt.Errorf("blob download request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return resp.Body(), nil
}

// RegisterDocument implements [ServerAdapter]. It POSTs the registration
// request to POST /api/documents. Requires a valid bearer token.
func (h *httpServerAdapter) RegisterDocument(ctx context.Context, req models.RegisterDocumentRequest) (models.Document, error) {
	var doc models.Document

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&doc).
		Post("/api/documents")
	if err != nil {
		return models.Document{}, fmt.Errorf("register document request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Document{}, err
	}

	return doc, nil
}

// ListDocuments implements [ServerAdapter]. It GETs the owner's document
// records from GET /api/documents. Requires a valid bearer token.
func (h *httpServerAdapter) ListDocuments(ctx context.Context) ([]models.Document, error) {
	resp, err := h.authedRequest(ctx).Get("/api/documents")
	if err != nil {
		return nil, fmt.Errorf("list documents request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var docs []models.Document
	if err = json.Unmarshal(resp.Body(), &docs); err != nil {
		return nil, fmt.Errorf("decode documents response: %w", err)
	}

	return docs, nil
}

// CreateShare implements [ServerAdapter]. It POSTs the share request to
// POST /api/shares. Requires a valid bearer token.
func (h *httpServerAdapter) CreateShare(ctx context.Context, req models.CreateShareRequest) (models.ShareSession, error) {
	var session models.ShareSession

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&session).
		Post("/api/shares")
	if err != nil {
		return models.ShareSession{}, fmt.Errorf("create share request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ShareSession{}, err
	}

	return session, nil
}

// RevokeShare implements [ServerAdapter]. It sends
// DELETE /api/shares/{address}. Requires a valid bearer token.
func (h *httpServerAdapter) RevokeShare(ctx context.Context, share models.Address) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("address", share.String()).
		Delete("/api/shares/{address}")
	if err != nil {
		return fmt.Errorf("revoke share request: %w", err)
	}

	return mapHTTPError(resp)
}

// ShareStatus implements [ServerAdapter]. It GETs the public verification
// view from GET /api/shares/{address}.
func (h *httpServerAdapter) ShareStatus(ctx context.Context, share models.Address) (models.ShareStatusResponse, error) {
	var status models.ShareStatusResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("address", share.String()).
		SetResult(&status).
		Get("/api/shares/{address}")
	if err != nil {
		return models.ShareStatusResponse{}, fmt.Errorf("share status request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ShareStatusResponse{}, err
	}

	return status, nil
}

// Disclose implements [ServerAdapter]. It POSTs the disclosure request to
// POST /api/shares/{address}/disclose and returns the disclosed scalar.
func (h *httpServerAdapter) Disclose(ctx context.Context, share models.Address, req models.DisclosureRequest) (models.DisclosureResponse, error) {
	var result models.DisclosureResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("address", share.String()).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&result).
		Post("/api/shares/{address}/disclose")
	if err != nil {
		return models.DisclosureResponse{}, fmt.Errorf("disclose request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.DisclosureResponse{}, err
	}

	return result, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
