// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

LoadEnv reads a .env file (if present), then ParseFlags returns a Config:

	_ = cliparse.LoadEnv()
	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags and Environment Variables

	-p                 PORT             Server port (default: 3001)
	-d                 DATABASE_URL     Database URL (default: file:whisky_survey.db)
	-t                 DATABASE_TYPE    sqlite or postgres (default: sqlite)
	--frontend-url     FRONTEND_URL     Allowed CORS origin
	--image-dir        IMAGE_DIR        Whisky image directory (default: public/images)
	--log-level        LOG_LEVEL        debug, info, warn, error
	--log-format       LOG_FORMAT       text or json
	--survey-password  SURVEY_PASSWORD  Shared participant password
	--admin-password   ADMIN_PASSWORD   Admin password
	                   SESSION_TTL      Admin session lifetime (default: 12h)
	                   LOGIN_RATE       Login attempts per second per IP (default: 1)
	                   LOGIN_BURST      Login burst size (default: 5)

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if SURVEY_PASSWORD or ADMIN_PASSWORD is missing,
or if a numeric or duration setting cannot be parsed.
*/
package cliparse
