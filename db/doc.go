// Copyright (c) 2025 Simple Tools Pro.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles schema lifecycle for the eResources store.

# Bootstrap

Bootstrap runs once at process start, before the server accepts traffic:

	if err := db.Bootstrap(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

It is idempotent and serialized: every statement uses IF NOT EXISTS, the
additive column upgrade checks before altering, and the administrator seed
only fires while the admins table is empty. Re-running it any number of
times, from any number of concurrent starts, converges to the same table set.

# Tables

  - users: student profiles, created by enrollment linking
  - admins: administrator credentials (bcrypt hashes), seeded once
  - login_logs: append-only login audit trail
  - resources: the learning-resource catalog
  - ratings: one row per (resource, email), UNIQUE-enforced
  - notes: per-user free-text notes

# Relationships

	resources 1──* ratings
	resources 1──* notes
	users     1──* login_logs (by email, not a foreign key)

No cascading deletes: removing a resource leaves its engagement rows behind,
and every aggregate read starts from resources so orphans stay invisible.

# Drivers

The driver argument ("sqlite" or "postgres") only selects the auto-increment
primary key form and the column-catalog query; all other SQL in this
repository is written to the subset both drivers accept.
*/
package db
