package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/privylocker/privy-locker/internal/logger"
	"github.com/privylocker/privy-locker/internal/protocol"
	"github.com/privylocker/privy-locker/internal/utils"
	"github.com/privylocker/privy-locker/models"
)

func (h *Handler) createShare(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, ok := utils.GetIdentityFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.CreateShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	session, err := h.services.ShareService.CreateShare(ctx, caller, req)
	if err != nil {
		// The session record exists but the vault grant is unconfirmed;
		// surface the created session so the owner can retry or revoke.
		if errors.Is(err, protocol.ErrGrantFailed) {
			log.Err(err).Str("share", session.Address.String()).Msg("share created with unconfirmed vault grant")
			utils.WriteJSON(w, session, http.StatusBadGateway)
			return
		}

		log.Err(err).Msg("share creation failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, session, http.StatusCreated)
}

func (h *Handler) revokeShare(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, ok := utils.GetIdentityFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	share, err := models.ParseAddress(chi.URLParam(r, "address"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.services.ShareService.Revoke(ctx, caller, share); err != nil {
		log.Err(err).Str("share", share.String()).Msg("share revocation failed")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) shareStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	share, err := models.ParseAddress(chi.URLParam(r, "address"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	status, session, err := h.services.ShareService.Status(ctx, share)
	if err != nil {
		log.Err(err).Str("share", share.String()).Msg("share status evaluation failed")
		writeError(w, err)
		return
	}

	resp := models.ShareStatusResponse{Status: status}
	if status != models.ShareStatusNotFound {
		resp.Owner = session.Owner
		resp.Verifier = session.Verifier
		resp.Document = session.Document
		resp.ExpiresAt = session.ExpiresAt
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) disclose(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	share, err := models.ParseAddress(chi.URLParam(r, "address"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req models.DisclosureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	plaintext, err := h.services.ShareService.Disclose(ctx, share, req.Verifier, req.Proof)
	if err != nil {
		log.Err(err).Str("share", share.String()).Msg("disclosure request failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.DisclosureResponse{Plaintext: plaintext}, http.StatusOK)
}
