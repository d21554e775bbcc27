// Copyright (c) 2025 Simple Tools Pro.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store saves uploaded files under a single flat directory and mints the
// public URLs they are served from.
type Store struct {
	dir     string
	baseURL string
}

// New creates the upload directory if it does not exist and returns a Store
// rooted there. baseURL is the public origin uploads are served under, with
// no trailing slash.
func New(dir, baseURL string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Store{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Dir returns the directory files are stored in.
func (s *Store) Dir() string {
	return s.dir
}

// SanitizeFilename strips path traversal and separator characters so a
// client-supplied name can never escape the upload directory.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "..", "")
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	return strings.TrimSpace(name)
}

// Save writes the reader's contents under a sanitized version of name and
// returns the stored filename. When a file with that name already exists,
// a random suffix is inserted before the extension instead of overwriting.
func (s *Store) Save(name string, r io.Reader) (string, error) {
	name = SanitizeFilename(name)
	if name == "" {
		return "", fmt.Errorf("empty filename after sanitization")
	}

	stored := name
	path := filepath.Join(s.dir, stored)
	if _, err := os.Stat(path); err == nil {
		ext := filepath.Ext(name)
		base := strings.TrimSuffix(name, ext)
		stored = fmt.Sprintf("%s_%s%s", base, uuid.NewString()[:8], ext)
		path = filepath.Join(s.dir, stored)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return stored, nil
}

// Open returns a handle to a stored file by its sanitized name.
func (s *Store) Open(name string) (*os.File, error) {
	name = SanitizeFilename(name)
	if name == "" {
		return nil, fmt.Errorf("empty filename after sanitization")
	}
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, nil
}

// URL returns the absolute public URL a stored file is served from.
func (s *Store) URL(name string) string {
	return s.baseURL + "/uploads/" + name
}
