// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/whisky-survey/auth"
	"github.com/danielhkuo/whisky-survey/cliparse"
	"github.com/danielhkuo/whisky-survey/db"
	"github.com/danielhkuo/whisky-survey/models"
)

// Test passwords used by GetTestConfig
const (
	SurveyPassword = "test-survey-password"
	AdminPassword  = "test-admin-password"
)

// SetupTestDB creates a fresh SQLite database file with the full schema.
// The database is closed automatically when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	conn, err := db.Open(db.TypeSQLite, "file:"+path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig(t *testing.T) cliparse.Config {
	return cliparse.Config{
		Port:           3001,
		DatabaseURL:    "file::memory:",
		DatabaseType:   db.TypeSQLite,
		SurveyPassword: SurveyPassword,
		AdminPassword:  AdminPassword,
		SessionTTL:     time.Hour,
		FrontendURL:    "http://localhost:5173",
		ImageDir:       t.TempDir(),
		LogLevel:       "error",
		LogFormat:      "text",
		LoginRate:      100,
		LoginBurst:     100,
	}
}

// CreateTestUser inserts a participant and returns its ID
func CreateTestUser(t *testing.T, conn *sql.DB, name string) string {
	t.Helper()

	id := auth.NewID()
	_, err := conn.Exec(`
		INSERT INTO users (id, name, created_at) VALUES ($1, $2, $3)
	`, id, name, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return id
}

// CreateTestWhisky inserts a whisky and returns its ID
func CreateTestWhisky(t *testing.T, conn *sql.DB, name string) string {
	t.Helper()

	id := auth.NewID()
	_, err := conn.Exec(`
		INSERT INTO whisky (id, name, created_at) VALUES ($1, $2, $3)
	`, id, name, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test whisky: %v", err)
	}

	return id
}

// CreateTestResponse stores a survey response with its tags and returns its ID
func CreateTestResponse(t *testing.T, conn *sql.DB, userID, whiskyID string, smell, taste []string, score int) string {
	t.Helper()

	id := auth.NewID()
	_, err := conn.Exec(`
		INSERT INTO survey_response (id, user_id, whisky_id, score, submitted_at)
		VALUES ($1, $2, $3, $4, $5)
	`, id, userID, whiskyID, score, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test response: %v", err)
	}

	insertTags := func(kind string, tags []string) {
		for i, tag := range tags {
			_, err := conn.Exec(`
				INSERT INTO response_tag (response_id, kind, tag, position) VALUES ($1, $2, $3, $4)
			`, id, kind, tag, i)
			if err != nil {
				t.Fatalf("Failed to create test tag: %v", err)
			}
		}
	}
	insertTags(models.TagSmell, smell)
	insertTags(models.TagTaste, taste)

	return id
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
