// Copyright (c) 2025 Simple Tools Pro.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/simpletoolspro/eresource/middleware"
	"github.com/simpletoolspro/eresource/models"
	"github.com/simpletoolspro/eresource/storage"
)

// maxUploadBytes bounds the multipart form held in memory; larger bodies
// spill to temp files.
const maxUploadBytes = 64 << 20

type UploadHandler struct {
	store *storage.Store
}

func NewUploadHandler(store *storage.Store) *UploadHandler {
	return &UploadHandler{store: store}
}

// Upload handles POST /api/admin/upload
// Accepts one multipart file under the "file" field and returns the public
// URL it is now served from.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	stored, err := h.store.Save(header.Filename, file)
	if err != nil {
		slog.Error("failed to store upload", "filename", header.Filename, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store file")
		return
	}

	slog.Info("file uploaded",
		"filename", stored,
		"size", humanize.Bytes(uint64(header.Size)),
	)

	middleware.JSONResponse(w, http.StatusOK, models.UploadResponse{URL: h.store.URL(stored)})
}

// Serve handles GET /uploads/{name}
func (h *UploadHandler) Serve(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Filename required")
		return
	}

	f, err := h.store.Open(name)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "File not found")
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		slog.Error("failed to stat upload", "name", name, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to serve file")
		return
	}

	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}
