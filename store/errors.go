// Copyright (c) 2025 Simple Tools Pro.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"errors"
	"fmt"
)

// The closed error set surfaced by every store operation. Callers never see
// raw storage-layer fault codes.
var (
	// ErrNotFound: a lookup by key found nothing.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized: credential mismatch. Deliberately indistinguishable
	// from "unknown identity".
	ErrUnauthorized = errors.New("invalid credentials")

	// ErrConflict: uniqueness violation not otherwise pre-checked.
	ErrConflict = errors.New("already exists")
)

// ValidationError reports a missing or malformed required field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid or missing field: %s", e.Field)
}

func invalid(field string) error {
	return &ValidationError{Field: field}
}
