// Copyright (c) 2025 Simple Tools Pro.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the eResource API server.

eResource is the backend for a digital learning resource portal: students
link their enrollment, browse a curated catalog of PDFs, EPUBs and videos
by course, rate resources and keep private notes, while admins manage the
catalog and watch engagement from a dashboard.

# Starting the Server

The server runs on SQLite out of the box:

	go run main.go

Or against PostgreSQL:

	go run main.go -t postgres -d "postgres://..."

A .env file in the working directory is loaded automatically.

# Configuration

Optional settings (flags override environment):

  - PORT (-p): Server port (default: 5000)
  - DATABASE_TYPE (-t): "sqlite" or "postgres" (default: sqlite)
  - DATABASE_URL / SQLITE_PATH (-d): Connection string or database file
    (default: eresource.db)
  - FRONTEND_BASE (-frontend): Origin allowed by CORS
  - PUBLIC_BASE_URL (-base-url): Origin upload links are minted against
  - UPLOAD_DIR (-uploads): Directory for uploaded files (default: uploads)

On first start the schema is created, additive migrations run, and a
default admin is seeded if the admins table is empty.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (identity, catalog, engagement, admin, uploads)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - store: Database operations and domain rules
  - storage: Uploaded file persistence
  - auth: Password hashing and verification
  - db: Schema creation, migrations, admin seeding
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
