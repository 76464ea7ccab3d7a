// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/danielhkuo/whisky-survey/auth"
	"github.com/danielhkuo/whisky-survey/cliparse"
	"github.com/danielhkuo/whisky-survey/middleware"
	"github.com/danielhkuo/whisky-survey/models"
)

// maxNameLength caps participant names
const maxNameLength = 50

type AuthHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAuthHandler(db *sql.DB, cfg cliparse.Config) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg}
}

// CheckUser handles GET /api/auth/check/{name}
func (h *AuthHandler) CheckUser(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.PathValue("name"))
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	_, err := findUserID(r.Context(), h.db, name)
	if err != nil && !errors.Is(err, errUserNotFound) {
		slog.Error("failed to check user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CheckUserResponse{
		Exists: err == nil,
	})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name and password are required")
		return
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name must be at most 50 characters")
		return
	}

	if err := auth.CheckPassword(req.Password, h.cfg.SurveyPassword); err != nil {
		slog.Warn("participant login rejected", "ip", middleware.GetClientIP(r))
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid password")
		return
	}

	ctx := r.Context()

	// Find or create the participant. A concurrent login with the same
	// name may win the insert, so look up again on conflict.
	userID, err := findUserID(ctx, h.db, name)
	created := false
	if errors.Is(err, errUserNotFound) {
		userID = auth.NewID()
		_, err = h.db.ExecContext(ctx, `
			INSERT INTO users (id, name, created_at) VALUES ($1, $2, $3)
		`, userID, name, time.Now().UTC())
		switch {
		case err == nil:
			created = true
		case isUniqueViolation(err):
			userID, err = findUserID(ctx, h.db, name)
		}
	}
	if err != nil {
		slog.Error("failed to find or create user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	message := "Welcome back"
	if created {
		message = "User created"
		slog.Info("user created", "user_id", userID, "name", name)
	}

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		Success: true,
		Message: message,
		User:    models.User{ID: userID, Name: name},
	})
}

// Logout handles POST /api/auth/logout.
// Participants hold no server-side session, so this only acknowledges.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Success: true,
		Message: "Logged out",
	})
}
