// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"sort"

	"github.com/danielhkuo/whisky-survey/middleware"
	"github.com/danielhkuo/whisky-survey/models"
)

// Rankings handles GET /api/analytics/rankings
func (h *AnalyticsHandler) Rankings(w http.ResponseWriter, r *http.Request) {
	rankings, err := ComputeWhiskyRankings(r.Context(), h.db)
	if err != nil {
		slog.Error("failed to compute rankings", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, rankings)
}

// ComputeWhiskyRankings ranks every whisky by its score distribution.
// Whiskies without responses rank last with zeroed statistics.
func ComputeWhiskyRankings(ctx context.Context, db *sql.DB) ([]models.WhiskyRanking, error) {
	whiskies, err := loadWhiskies(ctx, db, false)
	if err != nil {
		return nil, fmt.Errorf("failed to load whiskies: %w", err)
	}

	scores, err := getWhiskyScores(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("failed to load scores: %w", err)
	}

	rankings := make([]models.WhiskyRanking, 0, len(whiskies))
	for _, wh := range whiskies {
		values := scores[wh.ID]
		sort.Float64s(values)

		rankings = append(rankings, models.WhiskyRanking{
			WhiskyID: wh.ID,
			Name:     wh.Name,
			Count:    len(values),
			Median:   percentile(values, 0.5),
			P10:      percentile(values, 0.1),
			P90:      percentile(values, 0.9),
			Mean:     roundTenth(mean(values)),
			LowShare: lowShare(values),
		})
	}

	// Lexicographic: rated first, then median, p10, p90, mean, name
	sort.SliceStable(rankings, func(i, j int) bool {
		a, b := rankings[i], rankings[j]

		if (a.Count == 0) != (b.Count == 0) {
			return a.Count > 0
		}
		if a.Median != b.Median {
			return a.Median > b.Median
		}
		if a.P10 != b.P10 {
			return a.P10 > b.P10
		}
		if a.P90 != b.P90 {
			return a.P90 > b.P90
		}
		if a.Mean != b.Mean {
			return a.Mean > b.Mean
		}
		return a.Name < b.Name
	})

	for i := range rankings {
		rankings[i].Rank = i + 1
	}

	return rankings, nil
}

// getWhiskyScores retrieves all scores grouped by whisky
func getWhiskyScores(ctx context.Context, db *sql.DB) (map[string][]float64, error) {
	rows, err := db.QueryContext(ctx, `SELECT whisky_id, score FROM survey_response`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scores := make(map[string][]float64)
	for rows.Next() {
		var whiskyID string
		var score int
		if err := rows.Scan(&whiskyID, &score); err != nil {
			return nil, err
		}
		scores[whiskyID] = append(scores[whiskyID], float64(score))
	}

	return scores, rows.Err()
}

// percentile calculates the p-th percentile of sorted data
// p should be in range [0, 1]
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0.0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}

	// Linear interpolation between closest ranks
	rank := p * float64(len(sorted)-1)
	lower := int(rank)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := rank - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// lowShare is the fraction of scores at or below models.LowScore
func lowShare(scores []float64) float64 {
	if len(scores) == 0 {
		return 0.0
	}

	low := 0
	for _, s := range scores {
		if s <= models.LowScore {
			low++
		}
	}
	return float64(low) / float64(len(scores))
}
