// Copyright (c) 2025 Simple Tools Pro.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/simpletoolspro/eresource/auth"
)

// Seeded administrator record, inserted only while the admins table is empty.
const (
	SeedAdminName     = "System Admin"
	SeedAdminEmail    = "admin@kkhsou.ac.in"
	seedAdminPassword = "Admin@123"
)

// bootstrapMu serializes concurrent first-time bootstrap so two in-process
// starts cannot race on table creation or double-seed the administrator.
var bootstrapMu sync.Mutex

// Bootstrap creates the schema, applies additive column upgrades and seeds
// the administrator record. Safe to call any number of times; it converges
// to the same table set without data loss.
func Bootstrap(db *sql.DB, driver string) error {
	bootstrapMu.Lock()
	defer bootstrapMu.Unlock()

	if err := CreateSchema(db, driver); err != nil {
		return err
	}
	// added_by_email postdates the first deployed resources table
	if err := EnsureColumn(db, driver, "resources", "added_by_email", "TEXT"); err != nil {
		return err
	}
	if err := SeedAdmin(db); err != nil {
		return err
	}
	return nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, driver string) error {
	pk := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if driver == "postgres" {
		pk = "BIGSERIAL PRIMARY KEY"
	}

	_, err := db.Exec(fmt.Sprintf(schema, pk))
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// EnsureColumn adds a column to an existing table when its current definition
// lacks it. Check-before-alter, so it is safe to run repeatedly.
func EnsureColumn(db *sql.DB, driver, table, column, decl string) error {
	ok, err := hasColumn(db, driver, table, column)
	if err != nil {
		return fmt.Errorf("failed to inspect %s.%s: %w", table, column, err)
	}
	if ok {
		return nil
	}

	_, err = db.Exec("ALTER TABLE " + table + " ADD COLUMN " + column + " " + decl)
	if err != nil {
		return fmt.Errorf("failed to add column %s.%s: %w", table, column, err)
	}
	return nil
}

func hasColumn(db *sql.DB, driver, table, column string) (bool, error) {
	var n int
	var err error
	if driver == "postgres" {
		err = db.QueryRow(`
			SELECT COUNT(*) FROM information_schema.columns
			WHERE table_name = $1 AND column_name = $2
		`, table, column).Scan(&n)
	} else {
		err = db.QueryRow(`
			SELECT COUNT(*) FROM pragma_table_info($1) WHERE name = $2
		`, table, column).Scan(&n)
	}
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SeedAdmin inserts the default administrator if the admins table is
// currently empty. The check is evaluated at call time; once any admin
// exists the seed is never repeated.
func SeedAdmin(db *sql.DB) error {
	var one int
	err := db.QueryRow("SELECT 1 FROM admins LIMIT 1").Scan(&one)
	if err == nil {
		return nil
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("failed to check admins table: %w", err)
	}

	hash, err := auth.HashPassword(seedAdminPassword)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		INSERT INTO admins (name, email, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, SeedAdminName, SeedAdminEmail, hash, "Admin", time.Now())
	if err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}

	return nil
}

const schema = `
-- Students (created on enrollment linking, never deleted)
CREATE TABLE IF NOT EXISTS users (
    user_id %[1]s,
    name TEXT,
    email TEXT UNIQUE,
    enrollment_no TEXT,
    course TEXT,
    semester TEXT,
    mobile TEXT,
    role TEXT DEFAULT 'Student',
    last_seen TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_users_course ON users(course);

-- Administrators (seeded once when empty)
CREATE TABLE IF NOT EXISTS admins (
    admin_id %[1]s,
    name TEXT NOT NULL,
    email TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL,
    role TEXT DEFAULT 'Admin',
    created_at TIMESTAMP
);

-- Login audit trail (append-only)
CREATE TABLE IF NOT EXISTS login_logs (
    id %[1]s,
    email TEXT,
    name TEXT,
    timestamp TIMESTAMP,
    ip TEXT
);

-- Learning resources
CREATE TABLE IF NOT EXISTS resources (
    id %[1]s,
    title TEXT NOT NULL,
    type TEXT NOT NULL CHECK (type IN ('pdf', 'epub', 'video')),
    course TEXT NOT NULL,
    tags TEXT,
    link TEXT,
    created_at TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_resources_course ON resources(course);

-- Ratings (one row per resource per user)
CREATE TABLE IF NOT EXISTS ratings (
    id %[1]s,
    resource_id INTEGER NOT NULL,
    email TEXT NOT NULL,
    rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
    created_at TIMESTAMP,
    UNIQUE (resource_id, email)
);

CREATE INDEX IF NOT EXISTS idx_ratings_resource ON ratings(resource_id);

-- Per-user free-text notes
CREATE TABLE IF NOT EXISTS notes (
    id %[1]s,
    resource_id INTEGER NOT NULL,
    email TEXT NOT NULL,
    text TEXT NOT NULL,
    created_at TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_notes_resource_email ON notes(resource_id, email);
`
