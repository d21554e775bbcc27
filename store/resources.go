// Copyright (c) 2025 Simple Tools Pro.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/simpletoolspro/eresource/models"
)

// Result caps for the catalog listings.
const (
	listResourcesCap = 300
	recentResources  = 50
)

// Seed courses always offered in the student course picklist.
var courseSeeds = []string{"Web Development", "Image Processing", "M.Sc. (IT)"}

// CanonicalLink rewrites an upload-store relative link into a fully-qualified
// URL against the serving origin, keeping everything after the uploads
// prefix. Already-absolute links pass through untouched, so
// re-canonicalizing is a no-op.
func CanonicalLink(link, base string) string {
	name, ok := strings.CutPrefix(link, "/uploads/")
	if !ok {
		name, ok = strings.CutPrefix(link, "uploads/")
	}
	if !ok {
		return link
	}
	return strings.TrimRight(base, "/") + "/uploads/" + name
}

// AddResource validates, normalizes and inserts one learning resource,
// returning its new identifier.
func AddResource(db *sql.DB, req models.AddResourceRequest, base string) (int64, error) {
	title := strings.TrimSpace(req.Title)
	rtype := strings.ToLower(strings.TrimSpace(req.Type))
	course := strings.TrimSpace(req.Course)
	link := strings.TrimSpace(req.Link)
	addedBy := strings.ToLower(strings.TrimSpace(req.AddedByEmail))

	if title == "" {
		return 0, invalid("title")
	}
	if !models.ValidResourceType(rtype) {
		return 0, invalid("type")
	}
	if course == "" {
		return 0, invalid("course")
	}

	tags := strings.Join(req.Tags.Normalize(), ",")
	link = CanonicalLink(link, base)

	var id int64
	err := db.QueryRow(`
		INSERT INTO resources (title, type, course, tags, link, added_by_email, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, title, rtype, course, tags, link, addedBy, time.Now()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert resource: %w", err)
	}

	return id, nil
}

// ListResources returns the student-facing catalog, newest-first, capped at
// 300 rows, optionally filtered by exact course match.
func ListResources(db *sql.DB, course string) ([]models.Resource, error) {
	course = strings.TrimSpace(course)

	var rows *sql.Rows
	var err error
	if course != "" {
		rows, err = db.Query(`
			SELECT id, title, type, course, tags, link, created_at
			FROM resources WHERE course = $1
			ORDER BY id DESC LIMIT $2
		`, course, listResourcesCap)
	} else {
		rows, err = db.Query(`
			SELECT id, title, type, course, tags, link, created_at
			FROM resources
			ORDER BY id DESC LIMIT $1
		`, listResourcesCap)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query resources: %w", err)
	}
	defer rows.Close()

	resources := []models.Resource{}
	for rows.Next() {
		var r models.Resource
		var tags, link sql.NullString
		if err := rows.Scan(&r.ID, &r.Title, &r.Type, &r.Course, &tags, &link, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resource: %w", err)
		}
		r.Type = strings.ToUpper(r.Type)
		r.Tags = models.SplitTags(tags.String)
		r.Link = link.String
		resources = append(resources, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read resources: %w", err)
	}

	return resources, nil
}

// ListResourcesAdmin returns raw catalog rows for the admin console with
// optional course and type filters. An unrecognized type value is silently
// ignored, not an error.
func ListResourcesAdmin(db *sql.DB, course, rtype string) ([]models.AdminResource, error) {
	course = strings.TrimSpace(course)
	rtype = strings.ToLower(strings.TrimSpace(rtype))
	if !models.ValidResourceType(rtype) {
		rtype = ""
	}

	// Fixed set of parameterized variants; filters are never interpolated.
	var rows *sql.Rows
	var err error
	switch {
	case course != "" && rtype != "":
		rows, err = db.Query(`
			SELECT id, title, type, course, tags, link, created_at
			FROM resources WHERE course = $1 AND LOWER(type) = $2
			ORDER BY id DESC LIMIT $3
		`, course, rtype, listResourcesCap)
	case course != "":
		rows, err = db.Query(`
			SELECT id, title, type, course, tags, link, created_at
			FROM resources WHERE course = $1
			ORDER BY id DESC LIMIT $2
		`, course, listResourcesCap)
	case rtype != "":
		rows, err = db.Query(`
			SELECT id, title, type, course, tags, link, created_at
			FROM resources WHERE LOWER(type) = $1
			ORDER BY id DESC LIMIT $2
		`, rtype, listResourcesCap)
	default:
		rows, err = db.Query(`
			SELECT id, title, type, course, tags, link, created_at
			FROM resources
			ORDER BY id DESC LIMIT $1
		`, listResourcesCap)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query resources: %w", err)
	}
	defer rows.Close()

	return scanAdminResources(rows)
}

// RecentResources returns the latest 50 catalog rows for the admin console.
func RecentResources(db *sql.DB) ([]models.AdminResource, error) {
	rows, err := db.Query(`
		SELECT id, title, type, course, tags, link, created_at
		FROM resources ORDER BY id DESC LIMIT $1
	`, recentResources)
	if err != nil {
		return nil, fmt.Errorf("failed to query resources: %w", err)
	}
	defer rows.Close()

	return scanAdminResources(rows)
}

// AllResources returns every catalog row, newest-first.
func AllResources(db *sql.DB) ([]models.AdminResource, error) {
	rows, err := db.Query(`
		SELECT id, title, type, course, tags, link, created_at
		FROM resources ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query resources: %w", err)
	}
	defer rows.Close()

	return scanAdminResources(rows)
}

// DeleteResource removes a resource by id. The delete is idempotent: a
// missing row is still success. Engagement rows are left in place; every
// aggregate read starts from resources so orphans never surface there.
func DeleteResource(db *sql.DB, id int64) error {
	if _, err := db.Exec("DELETE FROM resources WHERE id = $1", id); err != nil {
		return fmt.Errorf("failed to delete resource: %w", err)
	}
	return nil
}

// CourseOptions builds the course picklist for a student: their own course
// first (when known), then the fixed seeds, de-duplicated in order.
func CourseOptions(db *sql.DB, email string) ([]string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	primary := ""
	if email != "" {
		var course sql.NullString
		err := db.QueryRow(`
			SELECT course FROM users WHERE LOWER(email) = $1
		`, email).Scan(&course)
		if err != nil && err != sql.ErrNoRows {
			return nil, fmt.Errorf("failed to look up course: %w", err)
		}
		primary = course.String
	}

	seen := map[string]bool{}
	courses := []string{}
	for _, c := range append([]string{primary}, courseSeeds...) {
		if c != "" && !seen[c] {
			seen[c] = true
			courses = append(courses, c)
		}
	}
	return courses, nil
}

func scanAdminResources(rows *sql.Rows) ([]models.AdminResource, error) {
	resources := []models.AdminResource{}
	for rows.Next() {
		var r models.AdminResource
		var tags, link sql.NullString
		if err := rows.Scan(&r.ID, &r.Title, &r.Type, &r.Course, &tags, &link, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resource: %w", err)
		}
		r.Tags = tags.String
		r.Link = link.String
		resources = append(resources, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read resources: %w", err)
	}
	return resources, nil
}
