// Copyright (c) 2025 Simple Tools Pro.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the eResource API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - UserHandler: Student identity, enrollment linking, and logins
  - ResourceHandler: Student catalog reads and admin catalog management
  - EngagementHandler: Ratings, the top-rated leaderboard, and private notes
  - AdminHandler: Dashboard aggregation (summary, user search, stats)
  - UploadHandler: Multipart file uploads and stored-file serving

Handlers are created via constructor functions that accept *sql.DB and Config:

	userHandler := handlers.NewUserHandler(db, cfg)

# Student Flow

Students authenticate by email alone:

	POST /api/login-email     → LoginEmail (existing → dashboard, new → linking page)
	POST /api/link-enrollment → LinkEnrollment (upserts the full profile row)
	GET  /api/user?email=     → GetUser (stamps last_seen, returns the profile)
	GET  /api/courses?email=  → ListCourses (picklist led by the student's course)
	GET  /api/resources       → ListResources (type upper-cased, tags exploded)

# Engagement

One rating per (resource, email), unlimited private notes:

	POST   /api/resources/{id}/ratings → Rate (upsert + fresh average)
	GET    /api/resources/{id}/ratings → ListRatings
	GET    /api/resources/top-rated    → TopRated (avg DESC, votes DESC)
	POST   /api/resources/{id}/notes   → AddNote
	GET    /api/resources/{id}/notes   → ListNotes (authoring email only)
	DELETE /api/notes/{id}             → DeleteNote (ownership by filter)

# Admin Console

	POST /api/admin-login            → AdminLogin (bcrypt verification)
	GET  /api/admin/summary          → Summary
	GET  /api/admin/users?q=         → Users
	GET  /api/admin/stats            → Stats (online = seen within 5 minutes)
	GET|POST /api/admin/resources    → AdminList / Add
	DELETE /api/admin/resources/{id} → Delete (idempotent)
	POST /api/admin/upload           → Upload (multipart, returns public URL)

# Error Mapping

Store-layer errors map onto HTTP statuses in storeError: validation → 400,
not found → 404, unauthorized → 401, conflict → 409, anything else → 500
with the detail logged rather than returned.
*/
package handlers
