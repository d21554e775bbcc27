// Copyright (c) 2025 Simple Tools Pro.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides credential hashing for administrator accounts.

Passwords are stored as salted bcrypt hashes:

	hash, err := auth.HashPassword(password)

Verification collapses every failure mode to ErrPasswordMismatch so callers
cannot distinguish a corrupt hash from a wrong password:

	if err := auth.CheckPassword(storedHash, password); err != nil {
		// unauthorized
	}

Student login is passwordless by design; this package is only used for the
admin console and the seeded administrator record.
*/
package auth
