// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/whisky-survey/auth"
	"github.com/danielhkuo/whisky-survey/cliparse"
	"github.com/danielhkuo/whisky-survey/middleware"
	"github.com/danielhkuo/whisky-survey/models"
)

type SurveyHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewSurveyHandler(db *sql.DB, cfg cliparse.Config) *SurveyHandler {
	return &SurveyHandler{db: db, cfg: cfg}
}

// ListWhiskies handles GET /api/surveys/whiskies
func (h *SurveyHandler) ListWhiskies(w http.ResponseWriter, r *http.Request) {
	whiskies, err := loadWhiskies(r.Context(), h.db, false)
	if err != nil {
		slog.Error("failed to load whiskies", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, whiskies)
}

// GetWhisky handles GET /api/surveys/whiskies/{id}
func (h *SurveyHandler) GetWhisky(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	var details models.WhiskyDetails
	var avg sql.NullFloat64
	err := h.db.QueryRowContext(r.Context(), `
		SELECT w.id, w.name, w.image_path, w.created_at,
		       COUNT(sr.id), AVG(sr.score)
		FROM whisky w
		LEFT JOIN survey_response sr ON sr.whisky_id = w.id
		WHERE w.id = $1
		GROUP BY w.id, w.name, w.image_path, w.created_at
	`, id).Scan(&details.ID, &details.Name, &details.ImagePath, &details.CreatedAt,
		&details.ResponseCount, &avg)

	if errors.Is(err, sql.ErrNoRows) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Whisky not found")
		return
	}
	if err != nil {
		slog.Error("failed to query whisky", "error", err, "whisky_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	details.AverageScore = roundTenth(avg.Float64)

	middleware.JSONResponse(w, http.StatusOK, details)
}

// Submit handles POST /api/surveys/submit
func (h *SurveyHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitSurveyRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	whiskyRef := parseWhiskyRef(req.Whisky)
	if strings.TrimSpace(req.User) == "" || whiskyRef == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "user and whisky are required")
		return
	}
	if req.Score < models.MinScore || req.Score > models.MaxScore {
		middleware.ErrorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("score must be between %d and %d", models.MinScore, models.MaxScore))
		return
	}

	ctx := r.Context()

	userID, err := findUserID(ctx, h.db, req.User)
	if errors.Is(err, errUserNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	whiskyID, err := resolveWhiskyID(ctx, h.db, whiskyRef)
	if errors.Is(err, sql.ErrNoRows) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Whisky not found")
		return
	}
	if err != nil {
		slog.Error("failed to query whisky", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	smell := normalizeTags(req.Smell)
	taste := normalizeTags(req.Taste)
	responseID := auth.NewID()

	// Response and tags in one transaction
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	if err := insertResponse(ctx, tx, responseID, userID, whiskyID, smell, taste, req.Score); err != nil {
		if isUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "You have already rated this whisky")
			return
		}
		slog.Error("failed to insert response", "error", err, "user_id", userID, "whisky_id", whiskyID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save response")
		return
	}

	if err := tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "You have already rated this whisky")
			return
		}
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save response")
		return
	}

	slog.Info("survey submitted", "response_id", responseID, "user_id", userID, "whisky_id", whiskyID, "score", req.Score)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitSurveyResponse{
		Success:    true,
		Message:    "Response saved",
		ResponseID: responseID,
	})
}

// GetUserResponses handles GET /api/surveys/user/{name}
func (h *SurveyHandler) GetUserResponses(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.PathValue("name"))
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	userID, err := findUserID(r.Context(), h.db, name)
	if errors.Is(err, errUserNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	responses, err := loadResponses(r.Context(), h.db, userID)
	if err != nil {
		slog.Error("failed to load responses", "error", err, "user_id", userID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, responses)
}

// ListResponses handles GET /api/surveys/responses
func (h *SurveyHandler) ListResponses(w http.ResponseWriter, r *http.Request) {
	responses, err := loadResponses(r.Context(), h.db, "")
	if err != nil {
		slog.Error("failed to load responses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, responses)
}

// ResetUser handles DELETE /api/surveys/reset/{name}
func (h *SurveyHandler) ResetUser(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.PathValue("name"))
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	userID, err := findUserID(r.Context(), h.db, name)
	if errors.Is(err, errUserNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Tags go with their responses via ON DELETE CASCADE
	result, err := h.db.ExecContext(r.Context(), `
		DELETE FROM survey_response WHERE user_id = $1
	`, userID)
	if err != nil {
		slog.Error("failed to delete responses", "error", err, "user_id", userID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	deleted, _ := result.RowsAffected()

	slog.Info("survey responses reset", "user_id", userID, "deleted", deleted)

	middleware.JSONResponse(w, http.StatusOK, models.ResetResponse{
		Success:      true,
		Message:      fmt.Sprintf("Deleted %d responses", deleted),
		DeletedCount: deleted,
	})
}

// parseWhiskyRef accepts a JSON string or number
func parseWhiskyRef(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// resolveWhiskyID matches ref against whisky IDs first, then names
func resolveWhiskyID(ctx context.Context, db *sql.DB, ref string) (string, error) {
	var id string
	err := db.QueryRowContext(ctx, `SELECT id FROM whisky WHERE id = $1`, ref).Scan(&id)
	if !errors.Is(err, sql.ErrNoRows) {
		return id, err
	}

	err = db.QueryRowContext(ctx, `
		SELECT id FROM whisky WHERE name = $1 ORDER BY created_at LIMIT 1
	`, ref).Scan(&id)
	return id, err
}
