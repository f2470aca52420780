// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/privylocker/privy-locker/internal/config"
	"github.com/privylocker/privy-locker/internal/logger"
	"github.com/privylocker/privy-locker/internal/utils"
	"github.com/privylocker/privy-locker/models"
)

// httpVault is the HTTP/REST implementation of [Vault].
type httpVault struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

type handleResponse struct {
	Handle string `json:"handle"`
}

type storeRequest struct {
	Value string `json:"value"`
}

type grantRequest struct {
	Grantee string `json:"grantee"`
}

type decryptRequest struct {
	Requester string `json:"requester"`
	Proof     string `json:"proof"`
}

type decryptResponse struct {
	Plaintext string `json:"plaintext"`
}

// NewHTTPVault constructs an HTTP/REST implementation of [Vault] from the
// vault section of the service configuration. It normalises and validates
// the base URL and configures the underlying HTTP client with the
// resolved base URL and request timeout.
//
// Returns an error if cfg.Address is empty or cannot be parsed as a valid
// URL.
func NewHTTPVault(cfg config.Vault, logger *logger.Logger) (Vault, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(cfg.Address)
	if err != nil {
		return nil, fmt.Errorf("invalid vault address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	return &httpVault{client: client, logger: logger}, nil
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

// Store implements [Vault]. It POSTs the scalar value to POST /v1/fields
// and returns the handle assigned by the vault.
func (v *httpVault) Store(ctx context.Context, value string) (string, error) {
	var result handleResponse

	resp, err := v.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(storeRequest{Value: value}).
		SetResult(&result).
		Post("/v1/fields")
	if err != nil {
		return "", fmt.Errorf("%w: store request: %w", ErrUnavailable, err)
	}
	if err = mapVaultError(resp); err != nil {
		return "", err
	}

	return result.Handle, nil
}

// Rekey implements [Vault]. It POSTs to POST /v1/fields/{handle}/rekey
// and returns the fresh handle.
func (v *httpVault) Rekey(ctx context.Context, handle string) (string, error) {
	var result handleResponse

	resp, err := v.client.R().
		SetContext(ctx).
		SetPathParam("handle", handle).
		SetResult(&result).
		Post("/v1/fields/{handle}/rekey")
	if err != nil {
		return "", fmt.Errorf("%w: rekey request: %w", ErrUnavailable, err)
	}
	if err = mapVaultError(resp); err != nil {
		return "", err
	}

	return result.Handle, nil
}

// Grant implements [Vault]. It POSTs the grantee to
// POST /v1/fields/{handle}/grants.
func (v *httpVault) Grant(ctx context.Context, handle string, grantee models.Identity) error {
	resp, err := v.client.R().
		SetContext(ctx).
		SetPathParam("handle", handle).
		SetHeader("Content-Type", "application/json").
		SetBody(grantRequest{Grantee: string(grantee)}).
		Post("/v1/fields/{handle}/grants")
	if err != nil {
		return fmt.Errorf("%w: grant request: %w", ErrUnavailable, err)
	}

	return mapVaultError(resp)
}

// Revoke implements [Vault]. It sends
// DELETE /v1/fields/{handle}/grants/{grantee}. A 404 from the vault means
// the grant is already absent and is treated as success.
func (v *httpVault) Revoke(ctx context.Context, handle string, grantee models.Identity) error {
	resp, err := v.client.R().
		SetContext(ctx).
		SetPathParam("handle", handle).
		SetPathParam("grantee", string(grantee)).
		Delete("/v1/fields/{handle}/grants/{grantee}")
	if err != nil {
		return fmt.Errorf("%w: revoke request: %w", ErrUnavailable, err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		return nil
	}

	return mapVaultError(resp)
}

// Decrypt implements [Vault]. It POSTs the requester identity and
// base64-encoded proof to POST /v1/fields/{handle}/decrypt and returns
// the disclosed plaintext.
func (v *httpVault) Decrypt(ctx context.Context, handle string, requester models.Identity, proof []byte) (string, error) {
	var result decryptResponse

	resp, err := v.client.R().
		SetContext(ctx).
		SetPathParam("handle", handle).
		SetHeader("Content-Type", "application/json").
		SetBody(decryptRequest{
			Requester: string(requester),
			Proof:     base64.StdEncoding.EncodeToString(proof),
		}).
		SetResult(&result).
		Post("/v1/fields/{handle}/decrypt")
	if err != nil {
		return "", fmt.Errorf("%w: decrypt request: %w", ErrUnavailable, err)
	}
	if err = mapVaultError(resp); err != nil {
		return "", err
	}

	return result.Plaintext, nil
}

func mapVaultError(resp *resty.Response) error {
	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(code)
	}

	switch {
	case code == http.StatusUnauthorized, code == http.StatusForbidden, code == http.StatusNotFound:
		return fmt.Errorf("%w: http %d: %s", ErrDenied, code, body)
	default:
		return fmt.Errorf("%w: http %d: %s", ErrUnavailable, code, body)
	}
}
