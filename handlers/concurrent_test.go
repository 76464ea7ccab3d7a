// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/whisky-survey/models"
	"github.com/danielhkuo/whisky-survey/testutil"
)

// TestConcurrentSubmissions verifies that simultaneous submissions from
// different participants are all stored with their tags
func TestConcurrentSubmissions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewSurveyHandler(db, testutil.GetTestConfig(t))

	whiskyID := testutil.CreateTestWhisky(t, db, "Talisker 10")

	numUsers := 10
	for i := 0; i < numUsers; i++ {
		testutil.CreateTestUser(t, db, fmt.Sprintf("Taster%02d", i))
	}

	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numUsers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			body := map[string]interface{}{
				"user":   fmt.Sprintf("Taster%02d", idx),
				"whisky": whiskyID,
				"smell":  []string{"smoke", "sea"},
				"taste":  []string{"salt"},
				"score":  idx%models.MaxScore + 1,
			}
			req := testutil.MakeRequest("POST", "/api/surveys/submit", body, nil)
			w := httptest.NewRecorder()

			handler.Submit(w, req)

			if w.Code == http.StatusCreated {
				successCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	if int(successCount.Load()) != numUsers {
		t.Errorf("Expected %d successful submissions, got %d", numUsers, successCount.Load())
	}

	var responses, tags int
	db.QueryRow("SELECT COUNT(*) FROM survey_response").Scan(&responses)
	db.QueryRow("SELECT COUNT(*) FROM response_tag").Scan(&tags)
	if responses != numUsers {
		t.Errorf("Expected %d responses, got %d", numUsers, responses)
	}
	if tags != numUsers*3 {
		t.Errorf("Expected %d tags, got %d", numUsers*3, tags)
	}
}

// TestConcurrentDuplicateSubmissions verifies that when one participant
// submits the same whisky several times at once, exactly one succeeds
func TestConcurrentDuplicateSubmissions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewSurveyHandler(db, testutil.GetTestConfig(t))

	testutil.CreateTestUser(t, db, "Eager")
	whiskyID := testutil.CreateTestWhisky(t, db, "Talisker 10")

	numAttempts := 5
	var successCount, conflictCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numAttempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			body := map[string]interface{}{
				"user":   "Eager",
				"whisky": whiskyID,
				"smell":  []string{"smoke"},
				"score":  4,
			}
			req := testutil.MakeRequest("POST", "/api/surveys/submit", body, nil)
			w := httptest.NewRecorder()

			handler.Submit(w, req)

			switch w.Code {
			case http.StatusCreated:
				successCount.Add(1)
			case http.StatusConflict:
				conflictCount.Add(1)
			}
		}()
	}

	wg.Wait()

	if successCount.Load() != 1 {
		t.Errorf("Expected exactly 1 success, got %d", successCount.Load())
	}
	if int(conflictCount.Load()) != numAttempts-1 {
		t.Errorf("Expected %d conflicts, got %d", numAttempts-1, conflictCount.Load())
	}

	var tags int
	db.QueryRow("SELECT COUNT(*) FROM response_tag").Scan(&tags)
	if tags != 1 {
		t.Errorf("Expected tags from one response only, got %d", tags)
	}
}

// TestConcurrentLogins verifies that simultaneous first logins with the
// same name create a single participant
func TestConcurrentLogins(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewAuthHandler(db, testutil.GetTestConfig(t))

	numAttempts := 5
	ids := make([]string, numAttempts)
	var wg sync.WaitGroup

	for i := 0; i < numAttempts; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			req := testutil.MakeRequest("POST", "/api/auth/login",
				models.LoginRequest{Name: "Racer", Password: testutil.SurveyPassword}, nil)
			w := httptest.NewRecorder()

			handler.Login(w, req)

			if w.Code != http.StatusOK {
				return
			}
			var resp models.LoginResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err == nil {
				ids[idx] = resp.User.ID
			}
		}(i)
	}

	wg.Wait()

	for i, id := range ids {
		if id == "" {
			t.Errorf("Login %d failed", i)
		} else if id != ids[0] {
			t.Errorf("Login %d returned user %s, expected %s", i, id, ids[0])
		}
	}

	var count int
	db.QueryRow("SELECT COUNT(*) FROM users WHERE name = 'Racer'").Scan(&count)
	if count != 1 {
		t.Errorf("Expected 1 user, got %d", count)
	}
}
