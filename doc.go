// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Whisky Survey API server.

Whisky Survey lets participants log in with a name and a shared password,
rate whiskies by smell tags, taste tags and a 1-5 score, and view
aggregated analytics including a whisky similarity matrix.

# Starting the Server

The server reads a .env file, environment variables or CLI flags:

	SURVEY_PASSWORD=... ADMIN_PASSWORD=... go run .

Or with flags:

	go run . -p 3001 -t postgres -d "postgres://..."

# Configuration

Required settings:

  - SURVEY_PASSWORD (--survey-password): Shared participant password
  - ADMIN_PASSWORD (--admin-password): Admin password

Optional settings:

  - PORT (-p): Server port (default: 3001)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): Connection string (default: file:whisky_survey.db)
  - SESSION_TTL: Admin session lifetime (default: 12h)
  - FRONTEND_URL (--frontend-url): Allowed CORS origin
  - IMAGE_DIR (--image-dir): Whisky image directory (default: public/images)
  - LOG_LEVEL, LOG_FORMAT: debug|info|warn|error, text|json
  - LOGIN_RATE, LOGIN_BURST: Login attempts per second and burst per IP

# Architecture

  - handlers: HTTP request handlers (auth, surveys, analytics, admin)
  - similarity: Jaccard similarity matrix over whisky feature sets
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, rate limiting, JSON helpers
  - metrics: Prometheus registry and HTTP metrics
  - models: Request/response types
  - auth: IDs, password checks, admin sessions
  - db: Connection, schema creation and seeding
  - cliparse: Configuration parsing
  - logging: slog setup

See package documentation for each component.
*/
package main
