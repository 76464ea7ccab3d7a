// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/danielhkuo/whisky-survey/auth"
	"github.com/danielhkuo/whisky-survey/cliparse"
	"github.com/danielhkuo/whisky-survey/handlers"
	"github.com/danielhkuo/whisky-survey/metrics"
	"github.com/danielhkuo/whisky-survey/middleware"
	"github.com/danielhkuo/whisky-survey/models"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, reg *prometheus.Registry) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	sessions := auth.NewSessionStore(db, cfg.SessionTTL, nil)
	authHandler := handlers.NewAuthHandler(db, cfg)
	surveyHandler := handlers.NewSurveyHandler(db, cfg)
	analyticsHandler := handlers.NewAnalyticsHandler(db, cfg)
	adminHandler := handlers.NewAdminHandler(db, cfg, sessions)

	// Participant and admin logins share one limiter per client IP
	loginLimiter := middleware.NewRateLimiter(cfg.LoginRate, cfg.LoginBurst)
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(adminHandler.RequireSession(h))
	}

	// Health check
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.JSONResponse(w, http.StatusOK, models.HealthResponse{
			Status:    "OK",
			Message:   "Whisky survey API is running",
			Timestamp: time.Now().UTC(),
		})
	})

	// Participant auth
	mux.HandleFunc("GET /api/auth/check/{name}", middleware.WithLogging(authHandler.CheckUser))
	mux.HandleFunc("POST /api/auth/login", middleware.WithLogging(loginLimiter.Wrap(authHandler.Login)))
	mux.HandleFunc("POST /api/auth/logout", middleware.WithLogging(authHandler.Logout))

	// Surveys
	mux.HandleFunc("GET /api/surveys/whiskies", middleware.WithLogging(surveyHandler.ListWhiskies))
	mux.HandleFunc("GET /api/surveys/whiskies/{id}", middleware.WithLogging(surveyHandler.GetWhisky))
	mux.HandleFunc("POST /api/surveys/submit", middleware.WithLogging(surveyHandler.Submit))
	mux.HandleFunc("GET /api/surveys/user/{name}", middleware.WithLogging(surveyHandler.GetUserResponses))
	mux.HandleFunc("GET /api/surveys/responses", middleware.WithLogging(surveyHandler.ListResponses))
	mux.HandleFunc("DELETE /api/surveys/reset/{name}", middleware.WithLogging(surveyHandler.ResetUser))

	// Analytics
	mux.HandleFunc("GET /api/analytics/smell", middleware.WithLogging(analyticsHandler.Smell))
	mux.HandleFunc("GET /api/analytics/taste", middleware.WithLogging(analyticsHandler.Taste))
	mux.HandleFunc("GET /api/analytics/ratings", middleware.WithLogging(analyticsHandler.Ratings))
	mux.HandleFunc("GET /api/analytics/matrix", middleware.WithLogging(analyticsHandler.Matrix))
	mux.HandleFunc("GET /api/analytics/rankings", middleware.WithLogging(analyticsHandler.Rankings))
	mux.HandleFunc("GET /api/analytics/summary", middleware.WithLogging(analyticsHandler.Summary))

	// Admin (requires session token)
	mux.HandleFunc("POST /api/admin/login", middleware.WithLogging(loginLimiter.Wrap(adminHandler.Login)))
	mux.HandleFunc("POST /api/admin/logout", admin(adminHandler.Logout))
	mux.HandleFunc("GET /api/admin/whiskies", admin(adminHandler.ListWhiskies))
	mux.HandleFunc("POST /api/admin/whiskies", admin(adminHandler.CreateWhisky))
	mux.HandleFunc("DELETE /api/admin/whiskies/{id}", admin(adminHandler.DeleteWhisky))

	// Whisky images
	mux.Handle("GET /images/", http.StripPrefix("/images/", http.FileServer(http.Dir(cfg.ImageDir))))

	// Metrics
	mux.Handle("GET /metrics", metrics.Handler(reg))

	// Everything else
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Route not found")
	})

	httpMetrics := metrics.NewHTTPMetrics(reg)

	return httpMetrics.Middleware(
		middleware.SecurityHeaders(
			middleware.CORS(cfg.FrontendURL, mux),
		),
	)
}
