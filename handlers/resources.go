// Copyright (c) 2025 Simple Tools Pro.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"

	"github.com/simpletoolspro/eresource/cliparse"
	"github.com/simpletoolspro/eresource/middleware"
	"github.com/simpletoolspro/eresource/models"
	"github.com/simpletoolspro/eresource/store"
)

type ResourceHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewResourceHandler(db *sql.DB, cfg cliparse.Config) *ResourceHandler {
	return &ResourceHandler{db: db, cfg: cfg}
}

// ListCourses handles GET /api/courses?email=
// The picklist leads with the student's own course when one is on file.
func (h *ResourceHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	courses, err := store.CourseOptions(h.db, email)
	if err != nil {
		storeError(w, err, "Failed to list courses")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CoursesResponse{Courses: courses})
}

// ListResources handles GET /api/resources?course=
func (h *ResourceHandler) ListResources(w http.ResponseWriter, r *http.Request) {
	course := strings.TrimSpace(r.URL.Query().Get("course"))

	resources, err := store.ListResources(h.db, course)
	if err != nil {
		storeError(w, err, "Failed to list resources")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResourceListResponse{Resources: resources})
}

// AdminList handles GET /api/admin/resources?course=&type=
func (h *ResourceHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	course := strings.TrimSpace(r.URL.Query().Get("course"))
	rtype := strings.TrimSpace(r.URL.Query().Get("type"))

	resources, err := store.ListResourcesAdmin(h.db, course, rtype)
	if err != nil {
		storeError(w, err, "Failed to list resources")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resources)
}

// Add handles POST /api/admin/resources
func (h *ResourceHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req models.AddResourceRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	id, err := store.AddResource(h.db, req, h.cfg.PublicBaseURL)
	if err != nil {
		storeError(w, err, "Failed to add resource")
		return
	}

	slog.Info("resource added", "id", id, "title", req.Title, "course", req.Course)

	middleware.JSONResponse(w, http.StatusOK, models.AddResourceResponse{OK: true, ID: id})
}

// Delete handles DELETE /api/admin/resources/{id}
// Deleting an id that no longer exists still reports success.
func (h *ResourceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid resource id")
		return
	}

	if err := store.DeleteResource(h.db, id); err != nil {
		storeError(w, err, "Failed to delete resource")
		return
	}

	slog.Info("resource deleted", "id", id)

	middleware.JSONResponse(w, http.StatusOK, models.OKResponse{OK: true})
}

// Recent handles GET /api/admin/resources/recent
func (h *ResourceHandler) Recent(w http.ResponseWriter, r *http.Request) {
	resources, err := store.RecentResources(h.db)
	if err != nil {
		storeError(w, err, "Failed to list resources")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resources)
}

// All handles GET /api/admin/resources/all
func (h *ResourceHandler) All(w http.ResponseWriter, r *http.Request) {
	resources, err := store.AllResources(h.db)
	if err != nil {
		storeError(w, err, "Failed to list resources")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resources)
}
