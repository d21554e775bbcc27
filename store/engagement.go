// Copyright (c) 2025 Simple Tools Pro.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/simpletoolspro/eresource/models"
)

// DefaultTopRatedLimit caps the leaderboard when the caller gives no limit.
const DefaultTopRatedLimit = 20

// Rate upserts one user's rating for a resource and returns the recomputed
// average and vote count. Upsert and recompute run in a single transaction
// so a concurrent writer cannot observe a stale average between them.
func Rate(db *sql.DB, resourceID int64, email string, rating int) (models.RatingSummary, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if resourceID <= 0 {
		return models.RatingSummary{}, invalid("resource_id")
	}
	if email == "" {
		return models.RatingSummary{}, invalid("email")
	}
	if rating < 1 || rating > 5 {
		return models.RatingSummary{}, invalid("rating")
	}

	tx, err := db.Begin()
	if err != nil {
		return models.RatingSummary{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO ratings (resource_id, email, rating, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (resource_id, email) DO UPDATE SET
			rating = excluded.rating,
			created_at = excluded.created_at
	`, resourceID, email, rating, time.Now())
	if err != nil {
		return models.RatingSummary{}, fmt.Errorf("failed to upsert rating: %w", err)
	}

	var avg sql.NullFloat64
	var votes int
	err = tx.QueryRow(`
		SELECT AVG(rating), COUNT(*) FROM ratings WHERE resource_id = $1
	`, resourceID).Scan(&avg, &votes)
	if err != nil {
		return models.RatingSummary{}, fmt.Errorf("failed to recompute average: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.RatingSummary{}, fmt.Errorf("failed to commit rating: %w", err)
	}

	return models.RatingSummary{Average: round2(avg.Float64), Votes: votes}, nil
}

// ListRatings returns all individual ratings for a resource, newest-first,
// plus the current average and vote count.
func ListRatings(db *sql.DB, resourceID int64) (models.RatingList, error) {
	if resourceID <= 0 {
		return models.RatingList{}, invalid("resource_id")
	}

	rows, err := db.Query(`
		SELECT id, resource_id, email, rating, created_at
		FROM ratings WHERE resource_id = $1
		ORDER BY created_at DESC, id DESC
	`, resourceID)
	if err != nil {
		return models.RatingList{}, fmt.Errorf("failed to query ratings: %w", err)
	}
	defer rows.Close()

	list := models.RatingList{Ratings: []models.Rating{}}
	total := 0
	for rows.Next() {
		var r models.Rating
		if err := rows.Scan(&r.ID, &r.ResourceID, &r.Email, &r.Rating, &r.CreatedAt); err != nil {
			return models.RatingList{}, fmt.Errorf("failed to scan rating: %w", err)
		}
		total += r.Rating
		list.Ratings = append(list.Ratings, r)
	}
	if err := rows.Err(); err != nil {
		return models.RatingList{}, fmt.Errorf("failed to read ratings: %w", err)
	}

	list.Votes = len(list.Ratings)
	if list.Votes > 0 {
		list.Average = round2(float64(total) / float64(list.Votes))
	}

	return list, nil
}

// TopRated returns the leaderboard of resources with at least one vote,
// ordered by average rating descending, then vote count descending.
func TopRated(db *sql.DB, limit int) ([]models.TopResource, error) {
	if limit <= 0 {
		limit = DefaultTopRatedLimit
	}

	rows, err := db.Query(`
		SELECT r.id, r.title, r.type, r.course, AVG(rt.rating) AS avg_rating, COUNT(rt.id) AS votes
		FROM resources r
		JOIN ratings rt ON rt.resource_id = r.id
		GROUP BY r.id, r.title, r.type, r.course
		ORDER BY avg_rating DESC, votes DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top rated: %w", err)
	}
	defer rows.Close()

	top := []models.TopResource{}
	for rows.Next() {
		var t models.TopResource
		if err := rows.Scan(&t.ID, &t.Title, &t.Type, &t.Course, &t.Average, &t.Votes); err != nil {
			return nil, fmt.Errorf("failed to scan top rated: %w", err)
		}
		t.Average = round2(t.Average)
		top = append(top, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read top rated: %w", err)
	}

	return top, nil
}

// AddNote stores one free-text note for (resource, email) and returns its id.
func AddNote(db *sql.DB, resourceID int64, email, text string) (int64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	text = strings.TrimSpace(text)
	if resourceID <= 0 {
		return 0, invalid("resource_id")
	}
	if email == "" {
		return 0, invalid("email")
	}
	if text == "" {
		return 0, invalid("text")
	}

	var id int64
	err := db.QueryRow(`
		INSERT INTO notes (resource_id, email, text, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, resourceID, email, text, time.Now()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert note: %w", err)
	}

	return id, nil
}

// ListNotes returns one user's notes for a resource, newest-first.
func ListNotes(db *sql.DB, resourceID int64, email string) ([]models.Note, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if resourceID <= 0 {
		return nil, invalid("resource_id")
	}
	if email == "" {
		return nil, invalid("email")
	}

	rows, err := db.Query(`
		SELECT id, resource_id, email, text, created_at
		FROM notes WHERE resource_id = $1 AND email = $2
		ORDER BY created_at DESC, id DESC
	`, resourceID, email)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	notes := []models.Note{}
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.ResourceID, &n.Email, &n.Text, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read notes: %w", err)
	}

	return notes, nil
}

// DeleteNote removes a note only when both id and authoring email match.
// Ownership is enforced by the filter: deleting someone else's note is a
// silent no-op success, as is deleting a note that never existed.
func DeleteNote(db *sql.DB, noteID int64, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if noteID <= 0 {
		return invalid("note_id")
	}
	if email == "" {
		return invalid("email")
	}

	if _, err := db.Exec(`
		DELETE FROM notes WHERE id = $1 AND email = $2
	`, noteID, email); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}

// round2 rounds to 2 decimals, the precision served for averages.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
