package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Role constants
const (
	RoleStudent = "Student"
	RoleAdmin   = "Admin"
)

// Resource type constants (closed enumeration)
const (
	TypePDF   = "pdf"
	TypeEPUB  = "epub"
	TypeVideo = "video"
)

// ValidResourceType reports whether t is in the closed type enumeration.
func ValidResourceType(t string) bool {
	switch t {
	case TypePDF, TypeEPUB, TypeVideo:
		return true
	}
	return false
}

// TagList accepts tags as either a JSON array of strings or a single
// comma-delimited string; both forms converge on Normalize.
type TagList []string

func (t *TagList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*t = list
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t = strings.Split(s, ",")
	return nil
}

// Normalize trims every tag and drops empties, preserving input order.
// Normalizing an already-normalized list yields the same list.
func (t TagList) Normalize() []string {
	out := make([]string, 0, len(t))
	for _, tag := range t {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

// SplitTags explodes a stored comma-joined tag string back into an
// ordered list of non-empty trimmed tags.
func SplitTags(s string) []string {
	return TagList(strings.Split(s, ",")).Normalize()
}

// Request types

type LinkEnrollmentRequest struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	EnrollmentNo string `json:"enrollment_no"`
	Course       string `json:"course"`
	Semester     string `json:"semester"`
	Mobile       string `json:"mobile"`
}

type LoginEmailRequest struct {
	Email string `json:"email"`
}

type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AddResourceRequest struct {
	Title        string  `json:"title"`
	Type         string  `json:"type"`
	Course       string  `json:"course"`
	Tags         TagList `json:"tags"`
	Link         string  `json:"link"`
	AddedByEmail string  `json:"added_by_email"`
}

type RateRequest struct {
	Email  string `json:"email"`
	Rating int    `json:"rating"`
}

type AddNoteRequest struct {
	Email string `json:"email"`
	Text  string `json:"text"`
}

// Response types

type LoginEmailResponse struct {
	Status   string `json:"status"`
	Name     string `json:"name,omitempty"`
	Redirect string `json:"redirect"`
}

type AdminLoginResponse struct {
	Status   string `json:"status"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Redirect string `json:"redirect"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type AddResourceResponse struct {
	OK bool  `json:"ok"`
	ID int64 `json:"id"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}

type RateResponse struct {
	OK      bool    `json:"ok"`
	Average float64 `json:"average"`
	Votes   int     `json:"votes"`
}

type AddNoteResponse struct {
	OK bool  `json:"ok"`
	ID int64 `json:"id"`
}

type UploadResponse struct {
	URL string `json:"url"`
}

type CoursesResponse struct {
	Courses []string `json:"courses"`
}

type ResourceListResponse struct {
	Resources []Resource `json:"resources"`
}

// Domain types

type User struct {
	UserID       int64      `json:"user_id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	EnrollmentNo string     `json:"enrollment_no"`
	Course       string     `json:"course"`
	Semester     string     `json:"semester"`
	Mobile       string     `json:"mobile"`
	Role         string     `json:"role"`
	LastSeen     *time.Time `json:"last_seen,omitempty"`
}

// UserSummary is the reduced row shape used by admin listings.
type UserSummary struct {
	UserID   int64  `json:"user_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Course   string `json:"course"`
	Semester string `json:"semester"`
	Mobile   string `json:"mobile,omitempty"`
}

// Resource is the student-facing row shape: type rendered upper-case,
// tags exploded into a list.
type Resource struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Type      string    `json:"type"`
	Course    string    `json:"course"`
	Tags      []string  `json:"tags"`
	Link      string    `json:"link"`
	CreatedAt time.Time `json:"created_at"`
}

// AdminResource is the raw row shape returned to the admin console.
type AdminResource struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Type      string    `json:"type"`
	Course    string    `json:"course"`
	Tags      string    `json:"tags"`
	Link      string    `json:"link"`
	CreatedAt time.Time `json:"created_at"`
}

type Rating struct {
	ID         int64     `json:"id"`
	ResourceID int64     `json:"resource_id"`
	Email      string    `json:"email"`
	Rating     int       `json:"rating"`
	CreatedAt  time.Time `json:"created_at"`
}

type Note struct {
	ID         int64     `json:"id"`
	ResourceID int64     `json:"resource_id"`
	Email      string    `json:"email"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

// RatingSummary is the live average/vote count for one resource.
type RatingSummary struct {
	Average float64 `json:"average"`
	Votes   int     `json:"votes"`
}

type RatingList struct {
	Ratings []Rating `json:"ratings"`
	Average float64  `json:"average"`
	Votes   int      `json:"votes"`
}

// TopResource is one row of the top-rated leaderboard.
type TopResource struct {
	ID      int64   `json:"id"`
	Title   string  `json:"title"`
	Type    string  `json:"type"`
	Course  string  `json:"course"`
	Average float64 `json:"average"`
	Votes   int     `json:"votes"`
}

// Admin aggregation types

type SummaryTotals struct {
	Users     int `json:"users"`
	Resources int `json:"resources"`
	Courses   int `json:"courses"`
}

type AdminSummary struct {
	Totals          SummaryTotals   `json:"totals"`
	Courses         []string        `json:"courses"`
	LatestUsers     []UserSummary   `json:"latest_users"`
	LatestResources []AdminResource `json:"latest_resources"`
}

type AdminStats struct {
	TotalUsers     int `json:"total_users"`
	TotalResources int `json:"total_resources"`
	Courses        int `json:"courses"`
	OnlineNow      int `json:"online_now"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
