// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Whisky Survey API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - AuthHandler: Participant name check and password login
  - SurveyHandler: Whisky listing and survey responses
  - AnalyticsHandler: Tag counts, rating distribution, similarity matrix
  - AdminHandler: Admin sessions and whisky management

Handlers are created via constructor functions that accept *sql.DB and Config:

	surveyHandler := handlers.NewSurveyHandler(db, cfg)

AdminHandler also takes the session store:

	adminHandler := handlers.NewAdminHandler(db, cfg, sessions)

# Survey Flow

	POST /api/auth/login          → Login (find or create participant)
	GET  /api/surveys/whiskies    → ListWhiskies
	POST /api/surveys/submit      → Submit (one response per user and whisky)
	GET  /api/surveys/user/{name} → GetUserResponses

Smell and taste tags are stored one row per tag in response_tag and
assembled into slices by loadResponses.

# Analytics

	GET /api/analytics/smell    → Smell
	GET /api/analytics/taste    → Taste
	GET /api/analytics/ratings  → Ratings (1-5, zero buckets included)
	GET /api/analytics/matrix   → Matrix (see package similarity)
	GET /api/analytics/rankings → Rankings (median, p10, p90, mean)
	GET /api/analytics/summary  → Summary

# Admin

	POST   /api/admin/login         → Login (returns token and expiry)
	GET    /api/admin/whiskies      → ListWhiskies
	POST   /api/admin/whiskies      → CreateWhisky (multipart name + image)
	DELETE /api/admin/whiskies/{id} → DeleteWhisky

Admin operations require an Authorization: Bearer token, checked by
RequireSession.
*/
package handlers
