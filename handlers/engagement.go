// Copyright (c) 2025 Simple Tools Pro.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	"github.com/simpletoolspro/eresource/cliparse"
	"github.com/simpletoolspro/eresource/middleware"
	"github.com/simpletoolspro/eresource/models"
	"github.com/simpletoolspro/eresource/store"
)

type EngagementHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewEngagementHandler(db *sql.DB, cfg cliparse.Config) *EngagementHandler {
	return &EngagementHandler{db: db, cfg: cfg}
}

// Rate handles POST /api/resources/{id}/ratings
// Returns the recomputed average and vote count so the client can update
// its display without a second round trip.
func (h *EngagementHandler) Rate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid resource id")
		return
	}

	var req models.RateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	summary, err := store.Rate(h.db, id, req.Email, req.Rating)
	if err != nil {
		storeError(w, err, "Failed to save rating")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.RateResponse{
		OK:      true,
		Average: summary.Average,
		Votes:   summary.Votes,
	})
}

// ListRatings handles GET /api/resources/{id}/ratings
func (h *EngagementHandler) ListRatings(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid resource id")
		return
	}

	list, err := store.ListRatings(h.db, id)
	if err != nil {
		storeError(w, err, "Failed to list ratings")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, list)
}

// TopRated handles GET /api/resources/top-rated?limit=
// A missing or unparseable limit falls back to the default leaderboard size.
func (h *EngagementHandler) TopRated(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	top, err := store.TopRated(h.db, limit)
	if err != nil {
		storeError(w, err, "Failed to list top rated")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, top)
}

// AddNote handles POST /api/resources/{id}/notes
func (h *EngagementHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid resource id")
		return
	}

	var req models.AddNoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	noteID, err := store.AddNote(h.db, id, req.Email, req.Text)
	if err != nil {
		storeError(w, err, "Failed to add note")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AddNoteResponse{OK: true, ID: noteID})
}

// ListNotes handles GET /api/resources/{id}/notes?email=
// Notes are private: only the authoring email's notes come back.
func (h *EngagementHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid resource id")
		return
	}

	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Email required")
		return
	}

	notes, err := store.ListNotes(h.db, id, email)
	if err != nil {
		storeError(w, err, "Failed to list notes")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, notes)
}

// DeleteNote handles DELETE /api/notes/{id}?email=
// Ownership is enforced in the store; a non-owner's delete is a no-op
// that still reports success.
func (h *EngagementHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid note id")
		return
	}

	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Email required")
		return
	}

	if err := store.DeleteNote(h.db, id, email); err != nil {
		storeError(w, err, "Failed to delete note")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.OKResponse{OK: true})
}
