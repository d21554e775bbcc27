// Copyright (c) 2025 Simple Tools Pro.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the eResource API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, files)

# Endpoints

Health:

	GET /health

Student identity:

	GET  /api/user?email=    - Profile fetch, stamps last_seen
	POST /api/link-enrollment - Upsert the enrollment profile
	POST /api/login-email     - Password-less student login
	POST /api/admin-login     - Admin credential check

Student catalog:

	GET /api/courses?email=   - Course picklist
	GET /api/resources?course= - Published resources

Engagement:

	POST   /api/resources/{id}/ratings - Rate (one per student, upsert)
	GET    /api/resources/{id}/ratings - Individual ratings + aggregate
	GET    /api/resources/top-rated    - Leaderboard
	POST   /api/resources/{id}/notes   - Add private note
	GET    /api/resources/{id}/notes   - Author's notes only
	DELETE /api/notes/{id}             - Owner-gated delete

Admin console:

	GET    /api/admin/summary        - Dashboard rollup
	GET    /api/admin/users?q=       - User search
	GET    /api/admin/stats          - Counters + online-now
	GET    /api/admin/resources      - Filterable catalog (raw rows)
	POST   /api/admin/resources      - Publish resource
	GET    /api/admin/resources/recent
	GET    /api/admin/resources/all
	DELETE /api/admin/resources/{id} - Idempotent delete

Uploads:

	POST /api/admin/upload - Multipart upload, returns public URL
	GET  /uploads/{name}   - Serve stored file

# Handler Initialization

The router creates handler instances with dependency injection:

	userHandler := handlers.NewUserHandler(db, cfg)
	resourceHandler := handlers.NewResourceHandler(db, cfg)
	engagementHandler := handlers.NewEngagementHandler(db, cfg)
	adminHandler := handlers.NewAdminHandler(db, cfg)
	uploadHandler := handlers.NewUploadHandler(files)

All database-backed handlers receive the connection and configuration;
the upload handler receives the storage.Store instead.
*/
package router
