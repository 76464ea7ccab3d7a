// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/danielhkuo/whisky-survey/models"
)

var errUserNotFound = errors.New("user not found")

// maxTagLength caps a single smell or taste tag
const maxTagLength = 100

// findUserID looks up a participant by exact (trimmed) name
func findUserID(ctx context.Context, db *sql.DB, name string) (string, error) {
	var id string
	err := db.QueryRowContext(ctx, `
		SELECT id FROM users WHERE name = $1
	`, strings.TrimSpace(name)).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", errUserNotFound
	}
	return id, err
}

// loadWhiskies returns all whiskies in creation order
func loadWhiskies(ctx context.Context, db *sql.DB, newestFirst bool) ([]models.Whisky, error) {
	order := "ASC"
	if newestFirst {
		order = "DESC"
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, name, image_path, created_at
		FROM whisky
		ORDER BY created_at `+order+`, id `+order)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	whiskies := []models.Whisky{}
	for rows.Next() {
		var w models.Whisky
		if err := rows.Scan(&w.ID, &w.Name, &w.ImagePath, &w.CreatedAt); err != nil {
			return nil, err
		}
		whiskies = append(whiskies, w)
	}

	return whiskies, rows.Err()
}

// loadResponses returns survey responses, newest first, with their tags
// assembled into slices. An empty userID loads every response.
func loadResponses(ctx context.Context, db *sql.DB, userID string) ([]models.SurveyResponse, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT sr.id, sr.user_id, u.name, sr.whisky_id, w.name, sr.score, sr.submitted_at
		FROM survey_response sr
		JOIN users u ON sr.user_id = u.id
		JOIN whisky w ON sr.whisky_id = w.id
		WHERE ($1 = '' OR sr.user_id = $1)
		ORDER BY sr.submitted_at DESC, sr.id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query responses: %w", err)
	}

	responses := []models.SurveyResponse{}
	index := make(map[string]int)
	for rows.Next() {
		resp := models.SurveyResponse{Smell: []string{}, Taste: []string{}}
		if err := rows.Scan(&resp.ID, &resp.UserID, &resp.UserName, &resp.WhiskyID,
			&resp.WhiskyName, &resp.Score, &resp.SubmittedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan response: %w", err)
		}
		index[resp.ID] = len(responses)
		responses = append(responses, resp)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(responses) == 0 {
		return responses, nil
	}

	tagRows, err := db.QueryContext(ctx, `
		SELECT rt.response_id, rt.kind, rt.tag
		FROM response_tag rt
		JOIN survey_response sr ON rt.response_id = sr.id
		WHERE ($1 = '' OR sr.user_id = $1)
		ORDER BY rt.response_id, rt.kind, rt.position
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer tagRows.Close()

	for tagRows.Next() {
		var responseID, kind, tag string
		if err := tagRows.Scan(&responseID, &kind, &tag); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		i, ok := index[responseID]
		if !ok {
			// inserted after the first query
			continue
		}
		switch kind {
		case models.TagSmell:
			responses[i].Smell = append(responses[i].Smell, tag)
		case models.TagTaste:
			responses[i].Taste = append(responses[i].Taste, tag)
		}
	}

	return responses, tagRows.Err()
}

// insertResponse stores a response and its tags inside tx
func insertResponse(ctx context.Context, tx *sql.Tx, id, userID, whiskyID string, smell, taste []string, score int) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO survey_response (id, user_id, whisky_id, score, submitted_at)
		VALUES ($1, $2, $3, $4, $5)
	`, id, userID, whiskyID, score, time.Now().UTC())
	if err != nil {
		return err
	}

	for kind, tags := range map[string][]string{models.TagSmell: smell, models.TagTaste: taste} {
		for i, tag := range tags {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO response_tag (response_id, kind, tag, position)
				VALUES ($1, $2, $3, $4)
			`, id, kind, tag, i)
			if err != nil {
				return fmt.Errorf("failed to insert %s tag: %w", kind, err)
			}
		}
	}

	return nil
}

// normalizeTags trims and truncates tags, drops blanks and collapses
// duplicates of the truncated value, keeping the first occurrence's position
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = truncateRunes(strings.TrimSpace(tag), maxTagLength)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

// truncateRunes cuts s to at most max bytes without splitting a rune
func truncateRunes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return strings.TrimSpace(s[:cut])
}

// isUniqueViolation reports whether err is a unique constraint failure
// from SQLite or PostgreSQL
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
