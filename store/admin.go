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

const (
	searchUsersCap = 200
	latestFeedSize = 5

	// presenceWindow classifies a user as online when last_seen falls
	// within this trailing interval.
	presenceWindow = 5 * time.Minute
)

// Summary returns the admin dashboard rollup: totals, the de-duplicated
// union of course values from users and resources, and the five
// most-recently-created users and resources.
func Summary(db *sql.DB) (models.AdminSummary, error) {
	var s models.AdminSummary

	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&s.Totals.Users); err != nil {
		return s, fmt.Errorf("failed to count users: %w", err)
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM resources").Scan(&s.Totals.Resources); err != nil {
		return s, fmt.Errorf("failed to count resources: %w", err)
	}

	rows, err := db.Query(`
		SELECT course FROM users WHERE course IS NOT NULL AND TRIM(course) != ''
		UNION
		SELECT course FROM resources WHERE course IS NOT NULL AND TRIM(course) != ''
		ORDER BY course
	`)
	if err != nil {
		return s, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	s.Courses = []string{}
	for rows.Next() {
		var course string
		if err := rows.Scan(&course); err != nil {
			return s, fmt.Errorf("failed to scan course: %w", err)
		}
		s.Courses = append(s.Courses, course)
	}
	if err := rows.Err(); err != nil {
		return s, fmt.Errorf("failed to read courses: %w", err)
	}
	s.Totals.Courses = len(s.Courses)

	s.LatestUsers, err = queryUserSummaries(db, `
		SELECT user_id, name, email, course, semester, mobile
		FROM users ORDER BY user_id DESC LIMIT $1
	`, latestFeedSize)
	if err != nil {
		return s, err
	}

	latest, err := db.Query(`
		SELECT id, title, type, course, tags, link, created_at
		FROM resources ORDER BY id DESC LIMIT $1
	`, latestFeedSize)
	if err != nil {
		return s, fmt.Errorf("failed to query latest resources: %w", err)
	}
	defer latest.Close()

	s.LatestResources, err = scanAdminResources(latest)
	if err != nil {
		return s, err
	}

	return s, nil
}

// SearchUsers matches the query case-insensitively against name, email and
// course; an empty query returns the newest 200 users unfiltered.
func SearchUsers(db *sql.DB, query string) ([]models.UserSummary, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return queryUserSummaries(db, `
			SELECT user_id, name, email, course, semester, mobile
			FROM users ORDER BY user_id DESC LIMIT $1
		`, searchUsersCap)
	}

	pattern := "%" + query + "%"
	rows, err := db.Query(`
		SELECT user_id, name, email, course, semester, mobile
		FROM users
		WHERE LOWER(name) LIKE $1 OR LOWER(email) LIKE $2 OR LOWER(course) LIKE $3
		ORDER BY user_id DESC LIMIT $4
	`, pattern, pattern, pattern, searchUsersCap)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	defer rows.Close()

	return scanUserSummaries(rows)
}

// Stats returns the compact admin counters, including "online now": users
// whose last_seen falls within the trailing presence window.
func Stats(db *sql.DB) (models.AdminStats, error) {
	var s models.AdminStats

	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&s.TotalUsers); err != nil {
		return s, fmt.Errorf("failed to count users: %w", err)
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM resources").Scan(&s.TotalResources); err != nil {
		return s, fmt.Errorf("failed to count resources: %w", err)
	}
	if err := db.QueryRow("SELECT COUNT(DISTINCT course) FROM resources").Scan(&s.Courses); err != nil {
		return s, fmt.Errorf("failed to count courses: %w", err)
	}

	cutoff := time.Now().Add(-presenceWindow)
	err := db.QueryRow(`
		SELECT COUNT(*) FROM users
		WHERE last_seen IS NOT NULL AND last_seen >= $1
	`, cutoff).Scan(&s.OnlineNow)
	if err != nil {
		return s, fmt.Errorf("failed to count online users: %w", err)
	}

	return s, nil
}

func queryUserSummaries(db *sql.DB, query string, limit int) ([]models.UserSummary, error) {
	rows, err := db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	return scanUserSummaries(rows)
}

func scanUserSummaries(rows *sql.Rows) ([]models.UserSummary, error) {
	users := []models.UserSummary{}
	for rows.Next() {
		var u models.UserSummary
		var name, course, semester, mobile sql.NullString
		if err := rows.Scan(&u.UserID, &name, &u.Email, &course, &semester, &mobile); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		u.Name = name.String
		u.Course = course.String
		u.Semester = semester.String
		u.Mobile = mobile.String
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}
	return users, nil
}
