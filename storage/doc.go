// Copyright (c) 2025 Simple Tools Pro.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package storage manages the flat on-disk directory that holds uploaded
learning materials (PDFs, EPUBs, videos) and the public URLs they are
served from.

Files live directly under a single directory with no nesting. Client
filenames are sanitized before any filesystem access: traversal sequences
are removed and path separators replaced, so a crafted name cannot reach
outside the upload directory. Saving a name that already exists never
overwrites; a short random suffix is inserted before the extension and the
adjusted name returned to the caller.

The Store is constructed once at startup with the upload directory and the
public base URL, and shared by the upload and serving handlers.
*/
package storage
