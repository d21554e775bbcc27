// Copyright (c) 2025 Simple Tools Pro.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"errors"
	"testing"

	"github.com/simpletoolspro/eresource/testutil"
)

func TestRateUpsert(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	rid := testutil.CreateTestResource(t, conn, "T", "pdf", "CS", "")

	summary, err := Rate(conn, rid, "a@x.com", 4)
	if err != nil {
		t.Fatalf("Rate() error = %v", err)
	}
	if summary.Average != 4.0 || summary.Votes != 1 {
		t.Errorf("expected avg 4.0 votes 1, got %+v", summary)
	}

	// Re-rating overwrites, never accumulates
	summary, err = Rate(conn, rid, "a@x.com", 2)
	if err != nil {
		t.Fatalf("Rate() second call error = %v", err)
	}
	if summary.Average != 2.0 || summary.Votes != 1 {
		t.Errorf("expected avg 2.0 votes 1 after re-rate, got %+v", summary)
	}

	var count int
	if err := conn.QueryRow(`
		SELECT COUNT(*) FROM ratings WHERE resource_id = $1 AND email = 'a@x.com'
	`, rid).Scan(&count); err != nil {
		t.Fatalf("Failed to count ratings: %v", err)
	}
	if count != 1 {
		t.Errorf("expected exactly 1 rating row for the pair, got %d", count)
	}

	// A second voter shifts the average
	summary, err = Rate(conn, rid, "b@x.com", 5)
	if err != nil {
		t.Fatalf("Rate() error = %v", err)
	}
	if summary.Average != 3.5 || summary.Votes != 2 {
		t.Errorf("expected avg 3.5 votes 2, got %+v", summary)
	}
}

func TestRateAverageRounding(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	rid := testutil.CreateTestResource(t, conn, "T", "pdf", "CS", "")

	Rate(conn, rid, "a@x.com", 5)
	Rate(conn, rid, "b@x.com", 4)
	summary, err := Rate(conn, rid, "c@x.com", 1)
	if err != nil {
		t.Fatalf("Rate() error = %v", err)
	}

	// 10/3 rounded to 2 decimals
	if summary.Average != 3.33 {
		t.Errorf("expected rounded average 3.33, got %v", summary.Average)
	}
}

func TestRateValidation(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	tests := []struct {
		name       string
		resourceID int64
		email      string
		rating     int
		field      string
	}{
		{"bad resource id", 0, "a@x.com", 3, "resource_id"},
		{"negative resource id", -1, "a@x.com", 3, "resource_id"},
		{"missing email", 1, " ", 3, "email"},
		{"rating too low", 1, "a@x.com", 0, "rating"},
		{"rating too high", 1, "a@x.com", 6, "rating"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Rate(conn, tt.resourceID, tt.email, tt.rating)
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

func TestListRatings(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	rid := testutil.CreateTestResource(t, conn, "T", "pdf", "CS", "")

	// Double-rate scenario: one row, latest value wins
	if _, err := Rate(conn, rid, "a@x.com", 4); err != nil {
		t.Fatalf("Rate() error = %v", err)
	}
	if _, err := Rate(conn, rid, "a@x.com", 2); err != nil {
		t.Fatalf("Rate() error = %v", err)
	}

	list, err := ListRatings(conn, rid)
	if err != nil {
		t.Fatalf("ListRatings() error = %v", err)
	}
	if len(list.Ratings) != 1 {
		t.Fatalf("expected 1 rating row, got %d", len(list.Ratings))
	}
	if list.Ratings[0].Rating != 2 {
		t.Errorf("expected latest rating 2, got %d", list.Ratings[0].Rating)
	}
	if list.Average != 2.0 || list.Votes != 1 {
		t.Errorf("expected average 2.0 votes 1, got avg=%v votes=%d", list.Average, list.Votes)
	}

	// Empty resource: zero votes, zero average
	other := testutil.CreateTestResource(t, conn, "U", "pdf", "CS", "")
	list, err = ListRatings(conn, other)
	if err != nil {
		t.Fatalf("ListRatings() error = %v", err)
	}
	if list.Votes != 0 || list.Average != 0 || len(list.Ratings) != 0 {
		t.Errorf("expected empty rating list, got %+v", list)
	}
}

func TestTopRated(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	// higher average, fewer votes -> must outrank lower average, more votes
	few := testutil.CreateTestResource(t, conn, "Few Votes High Avg", "pdf", "CS", "")
	many := testutil.CreateTestResource(t, conn, "Many Votes Low Avg", "pdf", "CS", "")
	tiedA := testutil.CreateTestResource(t, conn, "Tied A", "pdf", "CS", "")
	tiedB := testutil.CreateTestResource(t, conn, "Tied B", "pdf", "CS", "")
	unrated := testutil.CreateTestResource(t, conn, "Unrated", "pdf", "CS", "")

	testutil.AddTestRating(t, conn, few, "a@x.com", 5)

	testutil.AddTestRating(t, conn, many, "a@x.com", 3)
	testutil.AddTestRating(t, conn, many, "b@x.com", 3)
	testutil.AddTestRating(t, conn, many, "c@x.com", 3)

	// Same 4.0 average; tiedA has more votes so it wins the tie-break
	testutil.AddTestRating(t, conn, tiedA, "a@x.com", 4)
	testutil.AddTestRating(t, conn, tiedA, "b@x.com", 4)
	testutil.AddTestRating(t, conn, tiedB, "a@x.com", 4)

	top, err := TopRated(conn, 0)
	if err != nil {
		t.Fatalf("TopRated() error = %v", err)
	}

	if len(top) != 4 {
		t.Fatalf("expected 4 rated resources, got %d", len(top))
	}
	for _, r := range top {
		if r.ID == unrated {
			t.Error("topRated must never return a zero-vote resource")
		}
	}

	wantOrder := []int64{few, tiedA, tiedB, many}
	for i, id := range wantOrder {
		if top[i].ID != id {
			t.Fatalf("position %d: expected id %d (%+v)", i, id, top)
		}
	}

	// Ordering invariant: average non-increasing; votes non-increasing on ties
	for i := 1; i < len(top); i++ {
		if top[i].Average > top[i-1].Average {
			t.Error("average must be non-increasing")
		}
		if top[i].Average == top[i-1].Average && top[i].Votes > top[i-1].Votes {
			t.Error("votes must be non-increasing for equal averages")
		}
	}

	// Limit respected
	top, err = TopRated(conn, 2)
	if err != nil {
		t.Fatalf("TopRated() error = %v", err)
	}
	if len(top) != 2 {
		t.Errorf("expected 2 rows with limit 2, got %d", len(top))
	}
}

func TestNotes(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	rid := testutil.CreateTestResource(t, conn, "T", "pdf", "CS", "")

	id1, err := AddNote(conn, rid, "A@X.com", " first ")
	if err != nil {
		t.Fatalf("AddNote() error = %v", err)
	}
	id2, err := AddNote(conn, rid, "a@x.com", "second")
	if err != nil {
		t.Fatalf("AddNote() error = %v", err)
	}

	// Unlike ratings, many notes per (resource, email)
	notes, err := ListNotes(conn, rid, "a@x.com")
	if err != nil {
		t.Fatalf("ListNotes() error = %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(notes))
	}
	if notes[len(notes)-1].Text != "first" {
		t.Errorf("expected trimmed text, got %q", notes[len(notes)-1].Text)
	}

	// Other users see none of them
	notes, err = ListNotes(conn, rid, "b@x.com")
	if err != nil {
		t.Fatalf("ListNotes() error = %v", err)
	}
	if len(notes) != 0 {
		t.Errorf("expected no notes for other user, got %d", len(notes))
	}

	// Foreign-owned delete: silent no-op success, row untouched
	if err := DeleteNote(conn, id1, "b@x.com"); err != nil {
		t.Errorf("foreign delete should report success, got %v", err)
	}
	var count int
	if err := conn.QueryRow("SELECT COUNT(*) FROM notes").Scan(&count); err != nil {
		t.Fatalf("Failed to count notes: %v", err)
	}
	if count != 2 {
		t.Errorf("foreign delete must not mutate rows: %d left", count)
	}

	// Owner delete removes exactly one row
	if err := DeleteNote(conn, id1, "a@x.com"); err != nil {
		t.Fatalf("DeleteNote() error = %v", err)
	}
	var remaining int64
	if err := conn.QueryRow("SELECT id FROM notes").Scan(&remaining); err != nil {
		t.Fatalf("Failed to query remaining note: %v", err)
	}
	if remaining != id2 {
		t.Errorf("expected note %d to survive, got %d", id2, remaining)
	}
}

func TestAddNoteValidation(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	if _, err := AddNote(conn, 0, "a@x.com", "x"); err == nil {
		t.Error("expected error for bad resource id")
	}
	if _, err := AddNote(conn, 1, "", "x"); err == nil {
		t.Error("expected error for missing email")
	}
	if _, err := AddNote(conn, 1, "a@x.com", "   "); err == nil {
		t.Error("expected error for empty text")
	}
}
