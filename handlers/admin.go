// Copyright (c) 2025 Simple Tools Pro.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"

	"github.com/simpletoolspro/eresource/cliparse"
	"github.com/simpletoolspro/eresource/middleware"
	"github.com/simpletoolspro/eresource/store"
)

type AdminHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAdminHandler(db *sql.DB, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{db: db, cfg: cfg}
}

// Summary handles GET /api/admin/summary
func (h *AdminHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := store.Summary(h.db)
	if err != nil {
		storeError(w, err, "Failed to build summary")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, summary)
}

// Users handles GET /api/admin/users?q=
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	users, err := store.SearchUsers(h.db, r.URL.Query().Get("q"))
	if err != nil {
		storeError(w, err, "Failed to search users")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, users)
}

// Stats handles GET /api/admin/stats
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := store.Stats(h.db)
	if err != nil {
		storeError(w, err, "Failed to compute stats")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, stats)
}
