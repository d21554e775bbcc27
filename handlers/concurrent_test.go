// Copyright (c) 2025 Simple Tools Pro.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/simpletoolspro/eresource/testutil"
)

// TestConcurrentRatings verifies that simultaneous ratings from different
// students don't corrupt the aggregate or produce duplicate rows
func TestConcurrentRatings(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	handler := NewEngagementHandler(conn, cfg)

	rid := testutil.CreateTestResource(t, conn, "Contested", "pdf", "CS", "")
	ridStr := strconv.FormatInt(rid, 10)

	numStudents := 10
	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numStudents; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			payload := fmt.Sprintf(`{"email":"student%d@x.com","rating":%d}`, idx, idx%5+1)
			req := httptest.NewRequest("POST", "/api/resources/"+ridStr+"/ratings", bytes.NewReader([]byte(payload)))
			req.SetPathValue("id", ridStr)
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.Rate(w, req)

			if w.Code == http.StatusOK {
				successCount.Add(1)
			}
		}(i)
	}
	wg.Wait()

	if int(successCount.Load()) != numStudents {
		t.Errorf("Expected %d successful ratings, got %d", numStudents, successCount.Load())
	}

	var count int
	if err := conn.QueryRow("SELECT COUNT(*) FROM ratings WHERE resource_id = $1", rid).Scan(&count); err != nil {
		t.Fatalf("Failed to count ratings: %v", err)
	}
	if count != numStudents {
		t.Errorf("Expected %d rating rows, got %d", numStudents, count)
	}
}

// TestConcurrentReRatings verifies that one student hammering the same
// resource still ends up with exactly one row
func TestConcurrentReRatings(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	handler := NewEngagementHandler(conn, cfg)

	rid := testutil.CreateTestResource(t, conn, "Contested", "pdf", "CS", "")
	ridStr := strconv.FormatInt(rid, 10)

	numAttempts := 8
	var wg sync.WaitGroup

	for i := 0; i < numAttempts; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			payload := fmt.Sprintf(`{"email":"same@x.com","rating":%d}`, idx%5+1)
			req := httptest.NewRequest("POST", "/api/resources/"+ridStr+"/ratings", bytes.NewReader([]byte(payload)))
			req.SetPathValue("id", ridStr)
			w := httptest.NewRecorder()

			handler.Rate(w, req)
		}(i)
	}
	wg.Wait()

	var count int
	if err := conn.QueryRow("SELECT COUNT(*) FROM ratings WHERE resource_id = $1", rid).Scan(&count); err != nil {
		t.Fatalf("Failed to count ratings: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected a single rating row for one student, got %d", count)
	}
}
