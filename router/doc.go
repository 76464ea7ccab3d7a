// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Whisky Survey API.

# Route Registration

NewRouter creates a configured handler with all endpoints, wrapped in
metrics, security headers and CORS:

	handler := router.NewRouter(db, cfg, reg)

# Endpoints

Health and metrics:

	GET /api/health
	GET /metrics

Participant auth:

	GET  /api/auth/check/{name} - Does the participant exist
	POST /api/auth/login        - Log in or register (rate limited)
	POST /api/auth/logout       - Acknowledge logout

Surveys:

	GET    /api/surveys/whiskies      - List whiskies
	GET    /api/surveys/whiskies/{id} - Whisky with response count and average
	POST   /api/surveys/submit        - Submit a rating
	GET    /api/surveys/user/{name}   - A participant's ratings
	GET    /api/surveys/responses     - All ratings
	DELETE /api/surveys/reset/{name}  - Delete a participant's ratings

Analytics:

	GET /api/analytics/smell
	GET /api/analytics/taste
	GET /api/analytics/ratings
	GET /api/analytics/matrix
	GET /api/analytics/rankings
	GET /api/analytics/summary

Admin (requires Authorization: Bearer <token>, except login):

	POST   /api/admin/login
	POST   /api/admin/logout
	GET    /api/admin/whiskies
	POST   /api/admin/whiskies
	DELETE /api/admin/whiskies/{id}

Uploaded images are served from IMAGE_DIR at GET /images/. Unmatched
routes return a JSON 404.
*/
package router
