// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password checks, token generation and admin sessions.

# Passwords

Participants share one survey password and admins share one admin password.
Both are compared in constant time:

	if err := auth.CheckPassword(req.Password, cfg.SurveyPassword); err != nil {
		// 401
	}

# Admin Sessions

Admin logins create a row in admin_session with an explicit expiry:

	store := auth.NewSessionStore(db, 12*time.Hour, nil)
	token, expiresAt, err := store.Create(ctx)
	err = store.Validate(ctx, token) // ErrSessionNotFound, ErrSessionExpired

Expired sessions are removed when they are looked up, and in bulk by
PurgeExpired (RunPurger calls it periodically). The clock is injectable
(github.com/jonboulle/clockwork) for tests.

# Tokens and IDs

	token, err := auth.GenerateToken() // 64 hex characters
	id := auth.NewID()                  // UUID for database records

BearerToken parses an Authorization header value.
*/
package auth
