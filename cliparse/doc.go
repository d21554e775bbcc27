// Copyright (c) 2025 Simple Tools Pro.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration parsing for the eResources server.

Configuration is resolved in order: CLI flags, then environment variables
(including any loaded from a .env file), then defaults.

# Settings

  - PORT (-p): server port (default: 5000)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL / SQLITE_PATH (-d): store location (default: eresource.db)
  - FRONTEND_BASE (-frontend): the single allowed CORS origin
  - PUBLIC_BASE_URL (-base-url): serving origin used to canonicalize upload links
  - UPLOAD_DIR (-uploads): directory for stored files (default: uploads)
*/
package cliparse
