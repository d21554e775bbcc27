// Copyright (c) 2025 Simple Tools Pro.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store implements the catalog and engagement operations against the
relational store. Every operation is a function over *sql.DB that accepts
and returns plain structured records:

	summary, err := store.Rate(db, resourceID, email, rating)

# Error Contract

Operations surface a small closed error set: *ValidationError for a missing
or malformed required field (carrying the offending field), ErrNotFound for
an empty key lookup, ErrUnauthorized for any credential mismatch, ErrConflict
for an unchecked uniqueness violation. Storage-layer fault codes never leak;
anything else is wrapped as an internal error.

# Concurrency

Each call runs against the shared *sql.DB pool and completes within a single
statement or one transaction. The rating upsert-then-recompute is the only
read-after-write coupling and executes inside one transaction so a concurrent
second writer cannot observe a stale average. Deletes are idempotent: a
missing target reports success.
*/
package store
