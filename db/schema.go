// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"time"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The DDL is shared by SQLite and PostgreSQL.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// SampleWhisky is a whisky inserted on first start
type SampleWhisky struct {
	ID        string
	Name      string
	ImagePath string
}

var sampleWhiskies = []SampleWhisky{
	{ID: "glenfiddich-12", Name: "Glenfiddich 12 Jahre", ImagePath: "glenfiddich.jpg"},
	{ID: "lagavulin-16", Name: "Lagavulin 16 Jahre", ImagePath: "lagavulin.jpg"},
	{ID: "macallan-sherry-oak", Name: "Macallan Sherry Oak", ImagePath: "macallan.jpg"},
}

// SeedWhiskies inserts the sample whiskies unless they already exist.
// Returns the number of rows inserted.
func SeedWhiskies(db *sql.DB) (int64, error) {
	var inserted int64
	now := time.Now().UTC()
	for i, w := range sampleWhiskies {
		// stagger created_at so listing order matches the seed order
		res, err := db.Exec(`
			INSERT INTO whisky (id, name, image_path, created_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO NOTHING
		`, w.ID, w.Name, w.ImagePath, now.Add(time.Duration(i)*time.Millisecond))
		if err != nil {
			return inserted, fmt.Errorf("failed to seed whisky %q: %w", w.Name, err)
		}
		n, _ := res.RowsAffected()
		inserted += n
	}

	return inserted, nil
}

const schema = `
-- Participants
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Whiskies
CREATE TABLE IF NOT EXISTS whisky (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    image_path TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_whisky_name ON whisky(name);

-- Survey responses (one per user and whisky)
CREATE TABLE IF NOT EXISTS survey_response (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    whisky_id TEXT NOT NULL REFERENCES whisky(id) ON DELETE CASCADE,
    score INTEGER NOT NULL CHECK (score >= 1 AND score <= 5),
    submitted_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (user_id, whisky_id)
);

CREATE INDEX IF NOT EXISTS idx_survey_response_user_id ON survey_response(user_id);
CREATE INDEX IF NOT EXISTS idx_survey_response_whisky_id ON survey_response(whisky_id);

-- Smell and taste tags, position keeps submission order
CREATE TABLE IF NOT EXISTS response_tag (
    response_id TEXT NOT NULL REFERENCES survey_response(id) ON DELETE CASCADE,
    kind TEXT NOT NULL CHECK (kind IN ('smell', 'taste')),
    tag TEXT NOT NULL,
    position INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (response_id, kind, tag)
);

CREATE INDEX IF NOT EXISTS idx_response_tag_kind ON response_tag(kind);

-- Admin sessions (expires_at in unix seconds)
CREATE TABLE IF NOT EXISTS admin_session (
    token TEXT PRIMARY KEY,
    expires_at BIGINT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_admin_session_expires_at ON admin_session(expires_at);
`
