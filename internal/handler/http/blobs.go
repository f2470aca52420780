package http

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/privylocker/privy-locker/internal/logger"
	"github.com/privylocker/privy-locker/internal/utils"
	"github.com/privylocker/privy-locker/models"
)

// uploadBlobLimit bounds the request body read at 33 MiB, slightly above
// the service-side blob cap so that oversized uploads fail with a clean
// 400 instead of a truncated read.
const uploadBlobLimit = 33 << 20

func (h *Handler) uploadBlob(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, uploadBlobLimit))
	if err != nil {
		log.Err(err).Msg("failed to read blob upload body")
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	uri, err := h.services.BlobService.UploadBlob(ctx, data, r.URL.Query().Get("name"))
	if err != nil {
		log.Err(err).Msg("blob upload failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.BlobUploadResponse{URI: uri}, http.StatusCreated)
}

func (h *Handler) downloadBlob(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	uri := chi.URLParam(r, "uri")

	data, err := h.services.BlobService.DownloadBlob(ctx, uri)
	if err != nil {
		log.Err(err).Str("uri", uri).Msg("blob download failed")
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
