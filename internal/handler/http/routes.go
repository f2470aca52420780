// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization: token issuance, the blob relay and
	// the verifier-facing share endpoints
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/token", h.issueToken)
		r.Post("/api/blobs", h.uploadBlob)
		r.Get("/api/blobs/{uri}", h.downloadBlob)
		r.Get("/api/shares/{address}", h.shareStatus)
		r.Post("/api/shares/{address}/disclose", h.disclose)
	})

	// owner routes behind bearer authentication
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Post("/api/documents", h.registerDocument)
		r.Get("/api/documents", h.listDocuments)
		r.Post("/api/shares", h.createShare)
		r.Delete("/api/shares/{address}", h.revokeShare)
	})

	return router
}
