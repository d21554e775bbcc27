// Copyright (c) 2025 Simple Tools Pro.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/simpletoolspro/eresource/auth"
	"github.com/simpletoolspro/eresource/models"
)

// Redirect targets returned to the frontend after login.
const (
	dashboardRedirect  = "/dashboard.html?email="
	enrollmentRedirect = "/ui_07_enrollment_linking_post_google_sign_in.html?email="
	adminRedirect      = "/admin.html"
)

// LinkEnrollment binds a newly-seen email to full student profile fields.
// The row for that email is inserted or fully replaced - every column is
// overwritten, including the role reset to Student.
func LinkEnrollment(db *sql.DB, req models.LinkEnrollmentRequest) error {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.Name)
	enrollmentNo := strings.TrimSpace(req.EnrollmentNo)
	course := strings.TrimSpace(req.Course)
	semester := strings.TrimSpace(req.Semester)
	mobile := strings.TrimSpace(req.Mobile)

	if email == "" {
		return invalid("email")
	}
	if name == "" {
		return invalid("name")
	}
	if enrollmentNo == "" {
		return invalid("enrollment_no")
	}
	if course == "" {
		return invalid("course")
	}
	if semester == "" {
		return invalid("semester")
	}

	_, err := db.Exec(`
		INSERT INTO users (name, email, enrollment_no, course, semester, mobile, role, last_seen)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULL)
		ON CONFLICT (email) DO UPDATE SET
			name = excluded.name,
			enrollment_no = excluded.enrollment_no,
			course = excluded.course,
			semester = excluded.semester,
			mobile = excluded.mobile,
			role = excluded.role,
			last_seen = NULL
	`, name, email, enrollmentNo, course, semester, mobile, models.RoleStudent)
	if err != nil {
		return fmt.Errorf("failed to link enrollment: %w", err)
	}

	return nil
}

// LoginByEmail performs the passwordless student lookup-login. Both outcomes
// record a login log entry; an unknown email is logged with name "Unknown"
// and redirected to enrollment linking.
func LoginByEmail(db *sql.DB, email, ip string) (models.LoginEmailResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return models.LoginEmailResponse{}, invalid("email")
	}

	var name string
	err := db.QueryRow(`
		SELECT name FROM users WHERE LOWER(email) = $1
	`, email).Scan(&name)

	if err == sql.ErrNoRows {
		if err := LogLogin(db, email, "Unknown", ip); err != nil {
			return models.LoginEmailResponse{}, err
		}
		return models.LoginEmailResponse{
			Status:   "new",
			Redirect: enrollmentRedirect + email,
		}, nil
	}
	if err != nil {
		return models.LoginEmailResponse{}, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := LogLogin(db, email, name, ip); err != nil {
		return models.LoginEmailResponse{}, err
	}

	return models.LoginEmailResponse{
		Status:   "existing",
		Name:     name,
		Redirect: dashboardRedirect + email,
	}, nil
}

// LoginAdmin checks administrator credentials. "No such admin" and "wrong
// password" both collapse to ErrUnauthorized.
func LoginAdmin(db *sql.DB, email, password, ip string) (models.AdminLoginResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return models.AdminLoginResponse{}, invalid("email")
	}
	if password == "" {
		return models.AdminLoginResponse{}, invalid("password")
	}

	var name, hash, role string
	err := db.QueryRow(`
		SELECT name, password_hash, role FROM admins WHERE LOWER(email) = $1
	`, email).Scan(&name, &hash, &role)

	if err == sql.ErrNoRows {
		return models.AdminLoginResponse{}, ErrUnauthorized
	}
	if err != nil {
		return models.AdminLoginResponse{}, fmt.Errorf("failed to look up admin: %w", err)
	}

	if auth.CheckPassword(hash, password) != nil {
		return models.AdminLoginResponse{}, ErrUnauthorized
	}

	if err := LogLogin(db, email, name, ip); err != nil {
		return models.AdminLoginResponse{}, err
	}

	return models.AdminLoginResponse{
		Status:   "ok",
		Name:     name,
		Role:     role,
		Redirect: adminRedirect,
	}, nil
}

// TouchLastSeen advances last_seen to now for the matching user and returns
// the full row. Runs as a side effect of every dashboard fetch.
func TouchLastSeen(db *sql.DB, email string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return models.User{}, invalid("email")
	}

	if _, err := db.Exec(`
		UPDATE users SET last_seen = $1 WHERE LOWER(email) = $2
	`, time.Now(), email); err != nil {
		return models.User{}, fmt.Errorf("failed to update last_seen: %w", err)
	}

	var u models.User
	var name, enrollmentNo, course, semester, mobile, role sql.NullString
	var lastSeen sql.NullTime
	err := db.QueryRow(`
		SELECT user_id, name, email, enrollment_no, course, semester, mobile, role, last_seen
		FROM users WHERE LOWER(email) = $1
	`, email).Scan(&u.UserID, &name, &u.Email, &enrollmentNo, &course, &semester, &mobile, &role, &lastSeen)

	if err == sql.ErrNoRows {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to fetch user: %w", err)
	}

	u.Name = name.String
	u.EnrollmentNo = enrollmentNo.String
	u.Course = course.String
	u.Semester = semester.String
	u.Mobile = mobile.String
	u.Role = role.String
	if lastSeen.Valid {
		t := lastSeen.Time
		u.LastSeen = &t
	}

	return u, nil
}

// LogLogin appends one row to the login audit trail.
func LogLogin(db *sql.DB, email, name, ip string) error {
	_, err := db.Exec(`
		INSERT INTO login_logs (email, name, timestamp, ip)
		VALUES ($1, $2, $3, $4)
	`, email, name, time.Now(), ip)
	if err != nil {
		return fmt.Errorf("failed to record login: %w", err)
	}
	return nil
}
