// Copyright (c) 2025 Simple Tools Pro.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/simpletoolspro/eresource/middleware"
	"github.com/simpletoolspro/eresource/store"
)

// storeError maps store-layer errors onto HTTP status codes. Anything
// outside the known taxonomy is logged and reported as a 500 with the
// given fallback message so internals never leak to clients.
func storeError(w http.ResponseWriter, err error, fallback string) {
	var ve *store.ValidationError
	switch {
	case errors.As(err, &ve):
		middleware.ErrorResponse(w, http.StatusBadRequest, ve.Error())
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Not found")
	case errors.Is(err, store.ErrUnauthorized):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, store.ErrConflict):
		middleware.ErrorResponse(w, http.StatusConflict, "Conflict")
	default:
		slog.Error("store operation failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, fallback)
	}
}

// pathID parses the {id} path segment as a positive integer.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}
