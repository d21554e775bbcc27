// Copyright (c) 2025 Simple Tools Pro.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/simpletoolspro/eresource/cliparse"
	"github.com/simpletoolspro/eresource/middleware"
	"github.com/simpletoolspro/eresource/models"
	"github.com/simpletoolspro/eresource/store"
)

type UserHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewUserHandler(db *sql.DB, cfg cliparse.Config) *UserHandler {
	return &UserHandler{db: db, cfg: cfg}
}

// GetUser handles GET /api/user?email=
// Fetching a profile doubles as the presence heartbeat: last_seen is
// stamped before the row is returned.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	email := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("email")))
	if email == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Email required")
		return
	}

	user, err := store.TouchLastSeen(h.db, email)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		storeError(w, err, "Failed to fetch user")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, user)
}

// LinkEnrollment handles POST /api/link-enrollment
func (h *UserHandler) LinkEnrollment(w http.ResponseWriter, r *http.Request) {
	var req models.LinkEnrollmentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := store.LinkEnrollment(h.db, req); err != nil {
		storeError(w, err, "Failed to link enrollment")
		return
	}

	slog.Info("enrollment linked", "email", req.Email, "course", req.Course)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: "Enrollment linked successfully",
	})
}

// LoginEmail handles POST /api/login-email
// Password-less student login: known emails are routed to the dashboard,
// unknown ones to enrollment linking. Both outcomes land in the audit log.
func (h *UserHandler) LoginEmail(w http.ResponseWriter, r *http.Request) {
	var req models.LoginEmailRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Email required")
		return
	}

	resp, err := store.LoginByEmail(h.db, req.Email, middleware.GetClientIP(r))
	if err != nil {
		storeError(w, err, "Failed to log in")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// AdminLogin handles POST /api/admin-login
func (h *UserHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req models.AdminLoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Email and password required")
		return
	}

	resp, err := store.LoginAdmin(h.db, req.Email, req.Password, middleware.GetClientIP(r))
	if err != nil {
		storeError(w, err, "Failed to log in")
		return
	}

	slog.Info("admin logged in", "email", req.Email)

	middleware.JSONResponse(w, http.StatusOK, resp)
}
