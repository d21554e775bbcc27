// Copyright (c) 2025 Simple Tools Pro.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/simpletoolspro/eresource/cliparse"
	"github.com/simpletoolspro/eresource/db"
	_ "modernc.org/sqlite"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full,
// seeded schema.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// A single connection so every statement sees the same in-memory store
	conn.SetMaxOpenConns(1)

	if err := db.Bootstrap(conn, "sqlite"); err != nil {
		t.Fatalf("Failed to bootstrap test database: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          5000,
		DatabaseURL:   ":memory:",
		DatabaseType:  "sqlite",
		FrontendBase:  "https://eresource.simpletoolspro.com",
		PublicBaseURL: "https://api.eresource.simpletoolspro.com",
		UploadDir:     "uploads",
	}
}

// CreateTestUser inserts a student row and returns its id
func CreateTestUser(t *testing.T, conn *sql.DB, email, name, course string) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRow(`
		INSERT INTO users (name, email, enrollment_no, course, semester, mobile, role)
		VALUES ($1, $2, 'EN-001', $3, '1', '', 'Student')
		RETURNING user_id
	`, name, email, course).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return id
}

// CreateTestResource inserts a catalog row and returns its id
func CreateTestResource(t *testing.T, conn *sql.DB, title, rtype, course, tags string) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRow(`
		INSERT INTO resources (title, type, course, tags, link, added_by_email, created_at)
		VALUES ($1, $2, $3, $4, '', 'admin@kkhsou.ac.in', $5)
		RETURNING id
	`, title, rtype, course, tags, time.Now()).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test resource: %v", err)
	}

	return id
}

// AddTestRating inserts or overwrites one rating row
func AddTestRating(t *testing.T, conn *sql.DB, resourceID int64, email string, rating int) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO ratings (resource_id, email, rating, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (resource_id, email) DO UPDATE SET
			rating = excluded.rating,
			created_at = excluded.created_at
	`, resourceID, email, rating, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test rating: %v", err)
	}
}

// AddTestNote inserts one note row and returns its id
func AddTestNote(t *testing.T, conn *sql.DB, resourceID int64, email, text string) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRow(`
		INSERT INTO notes (resource_id, email, text, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, resourceID, email, text, time.Now()).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test note: %v", err)
	}

	return id
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
