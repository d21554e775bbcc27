// Copyright (c) 2025 Simple Tools Pro.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/simpletoolspro/eresource/cliparse"
	"github.com/simpletoolspro/eresource/handlers"
	"github.com/simpletoolspro/eresource/middleware"
	"github.com/simpletoolspro/eresource/storage"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, files *storage.Store) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	userHandler := handlers.NewUserHandler(db, cfg)
	resourceHandler := handlers.NewResourceHandler(db, cfg)
	engagementHandler := handlers.NewEngagementHandler(db, cfg)
	adminHandler := handlers.NewAdminHandler(db, cfg)
	uploadHandler := handlers.NewUploadHandler(files)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		middleware.JSONResponse(w, http.StatusOK, map[string]string{"status": "OK"})
	})

	// Student identity
	mux.HandleFunc("GET /api/user", middleware.WithLogging(userHandler.GetUser))
	mux.HandleFunc("POST /api/link-enrollment", middleware.WithLogging(userHandler.LinkEnrollment))
	mux.HandleFunc("POST /api/login-email", middleware.WithLogging(userHandler.LoginEmail))
	mux.HandleFunc("POST /api/admin-login", middleware.WithLogging(userHandler.AdminLogin))

	// Student catalog
	mux.HandleFunc("GET /api/courses", middleware.WithLogging(resourceHandler.ListCourses))
	mux.HandleFunc("GET /api/resources", middleware.WithLogging(resourceHandler.ListResources))

	// Engagement. The literal top-rated route must be registered alongside
	// the {id} patterns; the mux prefers the more specific literal segment.
	mux.HandleFunc("GET /api/resources/top-rated", middleware.WithLogging(engagementHandler.TopRated))
	mux.HandleFunc("POST /api/resources/{id}/ratings", middleware.WithLogging(engagementHandler.Rate))
	mux.HandleFunc("GET /api/resources/{id}/ratings", middleware.WithLogging(engagementHandler.ListRatings))
	mux.HandleFunc("POST /api/resources/{id}/notes", middleware.WithLogging(engagementHandler.AddNote))
	mux.HandleFunc("GET /api/resources/{id}/notes", middleware.WithLogging(engagementHandler.ListNotes))
	mux.HandleFunc("DELETE /api/notes/{id}", middleware.WithLogging(engagementHandler.DeleteNote))

	// Admin console
	mux.HandleFunc("GET /api/admin/summary", middleware.WithLogging(adminHandler.Summary))
	mux.HandleFunc("GET /api/admin/users", middleware.WithLogging(adminHandler.Users))
	mux.HandleFunc("GET /api/admin/stats", middleware.WithLogging(adminHandler.Stats))
	mux.HandleFunc("GET /api/admin/resources", middleware.WithLogging(resourceHandler.AdminList))
	mux.HandleFunc("POST /api/admin/resources", middleware.WithLogging(resourceHandler.Add))
	mux.HandleFunc("GET /api/admin/resources/recent", middleware.WithLogging(resourceHandler.Recent))
	mux.HandleFunc("GET /api/admin/resources/all", middleware.WithLogging(resourceHandler.All))
	mux.HandleFunc("DELETE /api/admin/resources/{id}", middleware.WithLogging(resourceHandler.Delete))

	// Uploads
	mux.HandleFunc("POST /api/admin/upload", middleware.WithLogging(uploadHandler.Upload))
	mux.HandleFunc("GET /uploads/{name}", middleware.WithLogging(uploadHandler.Serve))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("eResource API v1"))
	})

	return mux
}
