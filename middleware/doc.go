// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

	mux.HandleFunc("GET /api/health", middleware.WithLogging(handler))

Logs request start at debug level and completion (duration_ms) at info.

# CORS and Security Headers

	handler := middleware.SecurityHeaders(middleware.CORS(cfg.FrontendURL, mux))

CORS only echoes the configured frontend origin ("*" reflects any origin).

# Login Throttling

	limiter := middleware.NewRateLimiter(cfg.LoginRate, cfg.LoginBurst)
	mux.HandleFunc("POST /api/auth/login", limiter.Wrap(authHandler.Login))

Token bucket per client IP (golang.org/x/time/rate); 429 when exceeded.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Handles X-Forwarded-For and X-Real-IP.
*/
package middleware
