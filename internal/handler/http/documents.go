package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/privylocker/privy-locker/internal/logger"
	"github.com/privylocker/privy-locker/internal/store"
	"github.com/privylocker/privy-locker/internal/utils"
	"github.com/privylocker/privy-locker/models"
)

func (h *Handler) registerDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	owner, ok := utils.GetIdentityFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.RegisterDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	doc, err := h.services.DocumentService.RegisterDocument(ctx, owner, req)
	if err != nil {
		log.Err(err).Msg("document registration failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, doc, http.StatusCreated)
}

func (h *Handler) listDocuments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	owner, ok := utils.GetIdentityFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	filter := store.DocumentFilter{
		Fingerprint: r.URL.Query().Get("fingerprint"),
	}
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		limit, err := strconv.ParseUint(rawLimit, 10, 64)
		if err != nil {
			http.Error(w, "invalid limit parameter", http.StatusBadRequest)
			return
		}
		filter.Limit = limit
	}

	docs, err := h.services.DocumentService.ListDocuments(ctx, owner, filter)
	if err != nil {
		log.Err(err).Msg("document listing failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, docs, http.StatusOK)
}
