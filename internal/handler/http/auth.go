package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/privylocker/privy-locker/internal/logger"
	"github.com/privylocker/privy-locker/internal/utils"
	"github.com/privylocker/privy-locker/models"
)

// writeError renders err as the uniform JSON error body with the status
// resolved from the error chain.
func writeError(w http.ResponseWriter, err error) {
	utils.WriteJSON(w, models.ErrorResponse{Error: err.Error()}, statusFromError(err))
}

func (h *Handler) issueToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req struct {
		Identity models.Identity `json:"identity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	token, err := h.services.AuthService.IssueToken(ctx, req.Identity)
	if err != nil {
		log.Err(err).Msg("token issuance failed")
		writeError(w, err)
		return
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	w.WriteHeader(http.StatusOK)
}
