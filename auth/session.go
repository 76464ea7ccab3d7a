// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
)

// SessionStore keeps admin sessions in the admin_session table.
// Every session carries an explicit expiry.
type SessionStore struct {
	db    *sql.DB
	ttl   time.Duration
	clock clockwork.Clock
}

func NewSessionStore(db *sql.DB, ttl time.Duration, clock clockwork.Clock) *SessionStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &SessionStore{db: db, ttl: ttl, clock: clock}
}

// Create starts a new session and returns its token and expiry
func (s *SessionStore) Create(ctx context.Context) (string, time.Time, error) {
	token, err := GenerateToken()
	if err != nil {
		return "", time.Time{}, err
	}

	now := s.clock.Now()
	expiresAt := now.Add(s.ttl).Truncate(time.Second)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO admin_session (token, expires_at, created_at)
		VALUES ($1, $2, $3)
	`, token, expiresAt.Unix(), now.UTC())
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to insert session: %w", err)
	}

	return token, expiresAt, nil
}

// Validate checks that the session exists and has not expired.
// Expired sessions are deleted on the way out.
func (s *SessionStore) Validate(ctx context.Context, token string) error {
	var expiresAt int64
	err := s.db.QueryRowContext(ctx, `
		SELECT expires_at FROM admin_session WHERE token = $1
	`, token).Scan(&expiresAt)

	if errors.Is(err, sql.ErrNoRows) {
		return ErrSessionNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to query session: %w", err)
	}

	if s.clock.Now().Unix() >= expiresAt {
		if err := s.Revoke(ctx, token); err != nil {
			return err
		}
		return ErrSessionExpired
	}

	return nil
}

// Revoke deletes a session. Revoking an unknown token is not an error.
func (s *SessionStore) Revoke(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM admin_session WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// PurgeExpired deletes all expired sessions and returns how many were removed
func (s *SessionStore) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM admin_session WHERE expires_at <= $1
	`, s.clock.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to purge sessions: %w", err)
	}
	return res.RowsAffected()
}

// RunPurger purges expired sessions every interval until ctx is done
func (s *SessionStore) RunPurger(ctx context.Context, interval time.Duration, onPurge func(int64, error)) {
	ticker := s.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			n, err := s.PurgeExpired(ctx)
			if onPurge != nil {
				onPurge(n, err)
			}
		}
	}
}
