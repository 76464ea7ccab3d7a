// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strings"

	"github.com/danielhkuo/whisky-survey/cliparse"
	"github.com/danielhkuo/whisky-survey/middleware"
	"github.com/danielhkuo/whisky-survey/models"
	"github.com/danielhkuo/whisky-survey/similarity"
)

type AnalyticsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAnalyticsHandler(db *sql.DB, cfg cliparse.Config) *AnalyticsHandler {
	return &AnalyticsHandler{db: db, cfg: cfg}
}

// MatrixResponse is the similarity matrix with display cells
type MatrixResponse struct {
	similarity.Matrix
	Cells [][]similarity.Cell `json:"cells"`
}

// Smell handles GET /api/analytics/smell
func (h *AnalyticsHandler) Smell(w http.ResponseWriter, r *http.Request) {
	h.tagCounts(w, r, models.TagSmell)
}

// Taste handles GET /api/analytics/taste
func (h *AnalyticsHandler) Taste(w http.ResponseWriter, r *http.Request) {
	h.tagCounts(w, r, models.TagTaste)
}

func (h *AnalyticsHandler) tagCounts(w http.ResponseWriter, r *http.Request, kind string) {
	rows, err := h.db.QueryContext(r.Context(), `
		SELECT tag, COUNT(*) AS votes
		FROM response_tag
		WHERE kind = $1
		GROUP BY tag
		ORDER BY votes DESC, tag ASC
	`, kind)
	if err != nil {
		slog.Error("failed to query tag counts", "error", err, "kind", kind)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	counts := []models.TagCount{}
	for rows.Next() {
		var c models.TagCount
		if err := rows.Scan(&c.Name, &c.Votes); err != nil {
			slog.Error("failed to scan tag count", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate tag counts", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, counts)
}

// Ratings handles GET /api/analytics/ratings
func (h *AnalyticsHandler) Ratings(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.QueryContext(r.Context(), `
		SELECT score, COUNT(*) FROM survey_response GROUP BY score
	`)
	if err != nil {
		slog.Error("failed to query rating distribution", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	buckets := make([]models.ScoreBucket, 0, models.MaxScore-models.MinScore+1)
	for score := models.MinScore; score <= models.MaxScore; score++ {
		buckets = append(buckets, models.ScoreBucket{
			Score: score,
			Label: strings.Repeat("★", score),
		})
	}

	for rows.Next() {
		var score, count int
		if err := rows.Scan(&score, &count); err != nil {
			slog.Error("failed to scan rating bucket", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if score < models.MinScore || score > models.MaxScore {
			continue
		}
		buckets[score-models.MinScore].Value = count
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate rating distribution", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, buckets)
}

// Matrix handles GET /api/analytics/matrix
func (h *AnalyticsHandler) Matrix(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	whiskies, err := loadWhiskies(ctx, h.db, false)
	if err != nil {
		slog.Error("failed to load whiskies", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	responses, err := loadResponses(ctx, h.db, "")
	if err != nil {
		slog.Error("failed to load responses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	items := make([]similarity.Item, len(whiskies))
	for i, wh := range whiskies {
		items[i] = similarity.Item{ID: wh.ID, Name: wh.Name}
	}

	ratings := make([]similarity.Rating, len(responses))
	for i, resp := range responses {
		ratings[i] = similarity.Rating{
			ItemID: resp.WhiskyID,
			Smell:  resp.Smell,
			Taste:  resp.Taste,
			Score:  resp.Score,
		}
	}

	matrix := similarity.Build(items, ratings)

	middleware.JSONResponse(w, http.StatusOK, MatrixResponse{
		Matrix: matrix,
		Cells:  matrix.Cells(),
	})
}

// Summary handles GET /api/analytics/summary
func (h *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := loadSummary(r.Context(), h.db)
	if err != nil {
		slog.Error("failed to load summary", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, summary)
}

func loadSummary(ctx context.Context, db *sql.DB) (models.Summary, error) {
	var summary models.Summary
	var avg sql.NullFloat64

	err := db.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(DISTINCT user_id), AVG(score) FROM survey_response
	`).Scan(&summary.TotalResponses, &summary.TotalUsers, &avg)
	if err != nil {
		return summary, fmt.Errorf("failed to query totals: %w", err)
	}
	summary.AverageScore = roundTenth(avg.Float64)

	if summary.TotalResponses == 0 {
		return summary, nil
	}

	popular, err := queryWhiskyStat(ctx, db, `
		SELECT w.name, COUNT(*) AS cnt, AVG(sr.score) AS avg_score
		FROM survey_response sr
		JOIN whisky w ON sr.whisky_id = w.id
		GROUP BY w.id, w.name
		ORDER BY cnt DESC, avg_score DESC, w.name ASC
		LIMIT 1
	`)
	if err != nil {
		return summary, fmt.Errorf("failed to query popular whisky: %w", err)
	}
	summary.PopularWhisky = popular

	topRated, err := queryWhiskyStat(ctx, db, `
		SELECT w.name, COUNT(*) AS cnt, AVG(sr.score) AS avg_score
		FROM survey_response sr
		JOIN whisky w ON sr.whisky_id = w.id
		GROUP BY w.id, w.name
		ORDER BY avg_score DESC, cnt DESC, w.name ASC
		LIMIT 1
	`)
	if err != nil {
		return summary, fmt.Errorf("failed to query top rated whisky: %w", err)
	}
	summary.TopRatedWhisky = topRated

	return summary, nil
}

// queryWhiskyStat returns nil when the query yields no row
func queryWhiskyStat(ctx context.Context, db *sql.DB, query string) (*models.WhiskyStat, error) {
	var stat models.WhiskyStat
	var avg float64
	err := db.QueryRowContext(ctx, query).Scan(&stat.Name, &stat.Count, &avg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	avg = roundTenth(avg)
	stat.AverageScore = &avg
	return &stat, nil
}

// roundTenth rounds to one decimal place
func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
