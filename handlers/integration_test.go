// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/whisky-survey/auth"
	"github.com/danielhkuo/whisky-survey/db"
	"github.com/danielhkuo/whisky-survey/models"
	"github.com/danielhkuo/whisky-survey/testutil"
)

// TestFullSurveyWorkflow tests the complete end-to-end workflow:
// 1. Seed whiskies
// 2. Participants log in
// 3. Participants submit ratings
// 4. Analytics reflect the ratings
// 5. Admin deletes a whisky
// 6. A participant resets their responses
func TestFullSurveyWorkflow(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig(t)

	authHandler := NewAuthHandler(conn, cfg)
	surveyHandler := NewSurveyHandler(conn, cfg)
	analyticsHandler := NewAnalyticsHandler(conn, cfg)
	adminHandler := NewAdminHandler(conn, cfg, auth.NewSessionStore(conn, cfg.SessionTTL, nil))

	// Step 1: Seed
	if _, err := db.SeedWhiskies(conn); err != nil {
		t.Fatalf("Step 1 - Seed failed: %v", err)
	}

	// Step 2: Log in two participants
	for _, name := range []string{"Alice", "Bob"} {
		req := testutil.MakeRequest("POST", "/api/auth/login",
			models.LoginRequest{Name: name, Password: testutil.SurveyPassword}, nil)
		w := httptest.NewRecorder()
		authHandler.Login(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("Step 2 - Login %s failed: %d - %s", name, w.Code, w.Body.String())
		}
	}

	// Step 3: Submit ratings
	ratings := []map[string]interface{}{
		{"user": "Alice", "whisky": "lagavulin-16", "smell": []string{"smoke", "peat"}, "taste": []string{"salt"}, "score": 5},
		{"user": "Bob", "whisky": "lagavulin-16", "smell": []string{"smoke"}, "taste": []string{"salt"}, "score": 4},
		{"user": "Alice", "whisky": "Glenfiddich 12 Jahre", "smell": []string{"pear"}, "taste": []string{"honey"}, "score": 3},
	}
	for i, body := range ratings {
		req := testutil.MakeRequest("POST", "/api/surveys/submit", body, nil)
		w := httptest.NewRecorder()
		surveyHandler.Submit(w, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("Step 3 - Submit %d failed: %d - %s", i, w.Code, w.Body.String())
		}
	}

	// Step 4: Analytics
	req := httptest.NewRequest("GET", "/api/analytics/smell", nil)
	w := httptest.NewRecorder()
	analyticsHandler.Smell(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var smell []models.TagCount
	testutil.AssertJSON(t, w, &smell)
	if len(smell) == 0 || smell[0].Name != "smoke" || smell[0].Votes != 2 {
		t.Errorf("Step 4 - Expected smoke with 2 votes first, got %v", smell)
	}

	req = httptest.NewRequest("GET", "/api/analytics/matrix", nil)
	w = httptest.NewRecorder()
	analyticsHandler.Matrix(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var matrix MatrixResponse
	testutil.AssertJSON(t, w, &matrix)
	if len(matrix.Values) != 3 {
		t.Fatalf("Step 4 - Expected 3x3 matrix, got %d rows", len(matrix.Values))
	}
	for i := range matrix.Values {
		for j := range matrix.Values[i] {
			if matrix.Values[i][j] != matrix.Values[j][i] {
				t.Errorf("Step 4 - Matrix not symmetric at (%d,%d)", i, j)
			}
		}
	}
	// glenfiddich shares no tokens with lagavulin
	if matrix.Values[0][1] != 0 {
		t.Errorf("Step 4 - Expected 0 similarity, got %v", matrix.Values[0][1])
	}

	req = httptest.NewRequest("GET", "/api/analytics/summary", nil)
	w = httptest.NewRecorder()
	analyticsHandler.Summary(w, req)

	var summary models.Summary
	testutil.AssertJSON(t, w, &summary)
	if summary.TotalResponses != 3 || summary.TotalUsers != 2 {
		t.Errorf("Step 4 - Unexpected summary: %+v", summary)
	}
	if summary.PopularWhisky == nil || summary.PopularWhisky.Name != "Lagavulin 16 Jahre" {
		t.Errorf("Step 4 - Expected Lagavulin as most popular, got %+v", summary.PopularWhisky)
	}

	// Step 5: Admin deletes Glenfiddich
	token := adminLogin(t, adminHandler)
	deleteWhisky := adminHandler.RequireSession(adminHandler.DeleteWhisky)
	req = httptest.NewRequest("DELETE", "/api/admin/whiskies/glenfiddich-12", nil)
	req.SetPathValue("id", "glenfiddich-12")
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	deleteWhisky(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	req = httptest.NewRequest("GET", "/api/surveys/user/Alice", nil)
	req.SetPathValue("name", "Alice")
	w = httptest.NewRecorder()
	surveyHandler.GetUserResponses(w, req)

	var aliceResponses []models.SurveyResponse
	testutil.AssertJSON(t, w, &aliceResponses)
	if len(aliceResponses) != 1 {
		t.Errorf("Step 5 - Expected 1 response after delete, got %d", len(aliceResponses))
	}

	// Step 6: Bob resets
	req = httptest.NewRequest("DELETE", "/api/surveys/reset/Bob", nil)
	req.SetPathValue("name", "Bob")
	w = httptest.NewRecorder()
	surveyHandler.ResetUser(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var reset models.ResetResponse
	testutil.AssertJSON(t, w, &reset)
	if reset.DeletedCount != 1 {
		t.Errorf("Step 6 - Expected 1 deleted response, got %d", reset.DeletedCount)
	}

	// Bob may rate again after reset
	req = testutil.MakeRequest("POST", "/api/surveys/submit", ratings[1], nil)
	w = httptest.NewRecorder()
	surveyHandler.Submit(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)
}
