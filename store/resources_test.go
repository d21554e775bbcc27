// Copyright (c) 2025 Simple Tools Pro.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"errors"
	"reflect"
	"testing"

	"github.com/simpletoolspro/eresource/models"
	"github.com/simpletoolspro/eresource/testutil"
)

const testBase = "https://api.eresource.simpletoolspro.com"

func TestCanonicalLink(t *testing.T) {
	tests := []struct {
		name string
		link string
		want string
	}{
		{"relative with slash", "/uploads/notes.pdf", testBase + "/uploads/notes.pdf"},
		{"relative without slash", "uploads/notes.pdf", testBase + "/uploads/notes.pdf"},
		{"nested path kept after prefix", "/uploads/a/b.pdf", testBase + "/uploads/a/b.pdf"},
		{"external URL untouched", "https://example.com/x.pdf", "https://example.com/x.pdf"},
		{"already canonical is a no-op", testBase + "/uploads/notes.pdf", testBase + "/uploads/notes.pdf"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanonicalLink(tt.link, testBase)
			if got != tt.want {
				t.Errorf("CanonicalLink(%q) = %q, want %q", tt.link, got, tt.want)
			}
			// Idempotence: canonicalizing the result changes nothing
			if again := CanonicalLink(got, testBase); again != got {
				t.Errorf("not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestAddResource(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	id, err := AddResource(conn, models.AddResourceRequest{
		Title:        "  Intro to Go  ",
		Type:         " PDF ",
		Course:       "CS",
		Tags:         models.TagList{"a", " b ", "", "c"},
		Link:         "/uploads/intro.pdf",
		AddedByEmail: "Admin@kkhsou.ac.in",
	}, testBase)
	if err != nil {
		t.Fatalf("AddResource() error = %v", err)
	}
	if id <= 0 {
		t.Fatalf("expected positive id, got %d", id)
	}

	var title, rtype, tags, link, addedBy string
	err = conn.QueryRow(`
		SELECT title, type, tags, link, added_by_email FROM resources WHERE id = $1
	`, id).Scan(&title, &rtype, &tags, &link, &addedBy)
	if err != nil {
		t.Fatalf("Failed to read resource: %v", err)
	}
	if title != "Intro to Go" {
		t.Errorf("title not trimmed: %q", title)
	}
	if rtype != "pdf" {
		t.Errorf("type not normalized: %q", rtype)
	}
	if tags != "a,b,c" {
		t.Errorf("tags not normalized: %q", tags)
	}
	if link != testBase+"/uploads/intro.pdf" {
		t.Errorf("link not canonicalized: %q", link)
	}
	if addedBy != "admin@kkhsou.ac.in" {
		t.Errorf("added_by_email not lower-cased: %q", addedBy)
	}
}

func TestAddResourceValidation(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	tests := []struct {
		name  string
		req   models.AddResourceRequest
		field string
	}{
		{"missing title", models.AddResourceRequest{Type: "pdf", Course: "CS"}, "title"},
		{"missing course", models.AddResourceRequest{Title: "T", Type: "pdf"}, "course"},
		{"bad type", models.AddResourceRequest{Title: "T", Type: "docx", Course: "CS"}, "type"},
		{"missing type", models.AddResourceRequest{Title: "T", Course: "CS"}, "type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AddResource(conn, tt.req, testBase)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Field != tt.field {
				t.Errorf("expected offending field %q, got %q", tt.field, ve.Field)
			}
		})
	}
}

func TestListResources(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	testutil.CreateTestResource(t, conn, "Old", "pdf", "CS", "a, b ,,c")
	testutil.CreateTestResource(t, conn, "New", "video", "CS", "")
	testutil.CreateTestResource(t, conn, "Other", "epub", "IT", "x")

	resources, err := ListResources(conn, "CS")
	if err != nil {
		t.Fatalf("ListResources() error = %v", err)
	}
	if len(resources) != 2 {
		t.Fatalf("expected 2 CS resources, got %d", len(resources))
	}

	// Newest first
	if resources[0].Title != "New" || resources[1].Title != "Old" {
		t.Errorf("wrong order: %q, %q", resources[0].Title, resources[1].Title)
	}

	// Display type upper-cased, tags exploded trimmed non-empty
	if resources[0].Type != "VIDEO" {
		t.Errorf("expected VIDEO, got %q", resources[0].Type)
	}
	if !reflect.DeepEqual(resources[1].Tags, []string{"a", "b", "c"}) {
		t.Errorf("expected tags [a b c], got %v", resources[1].Tags)
	}
	if len(resources[0].Tags) != 0 {
		t.Errorf("expected no tags, got %v", resources[0].Tags)
	}

	// No filter returns everything
	all, err := ListResources(conn, "")
	if err != nil {
		t.Fatalf("ListResources() error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 resources, got %d", len(all))
	}
}

func TestListResourcesAdmin(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	testutil.CreateTestResource(t, conn, "A", "pdf", "CS", "")
	testutil.CreateTestResource(t, conn, "B", "video", "CS", "")
	testutil.CreateTestResource(t, conn, "C", "pdf", "IT", "")

	tests := []struct {
		name   string
		course string
		rtype  string
		want   int
	}{
		{"no filters", "", "", 3},
		{"course only", "CS", "", 2},
		{"course matches nothing", "Art", "", 0},
		{"course and type", "CS", "pdf", 1},
		{"type case-insensitive", "", "PDF", 2},
		{"unknown type ignored", "", "docx", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ListResourcesAdmin(conn, tt.course, tt.rtype)
			if err != nil {
				t.Fatalf("ListResourcesAdmin() error = %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("expected %d rows, got %d", tt.want, len(got))
			}
		})
	}

	// Raw row shape: type stays lower-case, tags stay joined
	rows, err := ListResourcesAdmin(conn, "", "")
	if err != nil {
		t.Fatalf("ListResourcesAdmin() error = %v", err)
	}
	if rows[0].Type != "pdf" {
		t.Errorf("admin rows must keep raw type, got %q", rows[0].Type)
	}
}

func TestDeleteResourceIdempotent(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	id := testutil.CreateTestResource(t, conn, "T", "pdf", "CS", "")

	if err := DeleteResource(conn, id); err != nil {
		t.Fatalf("DeleteResource() error = %v", err)
	}
	// Deleting again, and deleting an id that never existed, still succeeds
	if err := DeleteResource(conn, id); err != nil {
		t.Errorf("second delete should succeed, got %v", err)
	}
	if err := DeleteResource(conn, 99999); err != nil {
		t.Errorf("missing-id delete should succeed, got %v", err)
	}

	var count int
	if err := conn.QueryRow("SELECT COUNT(*) FROM resources").Scan(&count); err != nil {
		t.Fatalf("Failed to count resources: %v", err)
	}
	if count != 0 {
		t.Errorf("expected empty catalog, got %d rows", count)
	}
}

func TestCourseOptions(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	testutil.CreateTestUser(t, conn, "a@x.com", "Alice", "Web Development")

	// Known student: their course leads, no duplicates
	courses, err := CourseOptions(conn, "a@x.com")
	if err != nil {
		t.Fatalf("CourseOptions() error = %v", err)
	}
	want := []string{"Web Development", "Image Processing", "M.Sc. (IT)"}
	if !reflect.DeepEqual(courses, want) {
		t.Errorf("CourseOptions() = %v, want %v", courses, want)
	}

	// Unknown student gets only the seeds
	courses, err = CourseOptions(conn, "nobody@x.com")
	if err != nil {
		t.Fatalf("CourseOptions() error = %v", err)
	}
	if len(courses) != 3 {
		t.Errorf("expected 3 seed courses, got %v", courses)
	}
}

func TestRecentAndAllResources(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	for i := 0; i < 3; i++ {
		testutil.CreateTestResource(t, conn, "R", "pdf", "CS", "")
	}

	recent, err := RecentResources(conn)
	if err != nil {
		t.Fatalf("RecentResources() error = %v", err)
	}
	if len(recent) != 3 {
		t.Errorf("expected 3 recent rows, got %d", len(recent))
	}

	all, err := AllResources(conn)
	if err != nil {
		t.Fatalf("AllResources() error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 rows, got %d", len(all))
	}
	if all[0].ID < all[1].ID {
		t.Error("expected newest-first ordering")
	}
}
