package models

import (
	"encoding/json"
	"time"
)

// Score scale (1 to 5 stars)
const (
	MinScore = 1
	MaxScore = 5
)

// LowScore is the highest score counted as a poor rating
const LowScore = 2

// Tag kinds stored in response_tag.kind
const (
	TagSmell = "smell"
	TagTaste = "taste"
)

// Request types

type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type AdminLoginRequest struct {
	Password string `json:"password"`
}

// Whisky may be an ID or a name
type SubmitSurveyRequest struct {
	User   string          `json:"user"`
	Whisky json.RawMessage `json:"whisky"`
	Smell  []string        `json:"smell"`
	Taste  []string        `json:"taste"`
	Score  int             `json:"score"`
}

// Response types

type CheckUserResponse struct {
	Exists bool `json:"exists"`
}

type LoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	User    User   `json:"user"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type SubmitSurveyResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	ResponseID string `json:"response_id"`
}

type ResetResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	DeletedCount int64  `json:"deleted_count"`
}

type AdminLoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type CreateWhiskyResponse struct {
	Success bool   `json:"success"`
	Whisky  Whisky `json:"whisky"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Domain types

type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Whisky struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ImagePath *string   `json:"image_path"`
	CreatedAt time.Time `json:"created_at"`
}

type WhiskyDetails struct {
	Whisky
	ResponseCount int     `json:"response_count"`
	AverageScore  float64 `json:"average_score"`
}

type SurveyResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	UserName    string    `json:"user_name,omitempty"`
	WhiskyID    string    `json:"whisky_id"`
	WhiskyName  string    `json:"whisky_name"`
	Smell       []string  `json:"smell"`
	Taste       []string  `json:"taste"`
	Score       int       `json:"score"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Analytics types

type TagCount struct {
	Name  string `json:"name"`
	Votes int    `json:"votes"`
}

type ScoreBucket struct {
	Score int    `json:"score"`
	Label string `json:"label"`
	Value int    `json:"value"`
}

type WhiskyStat struct {
	Name         string   `json:"name"`
	Count        int      `json:"count"`
	AverageScore *float64 `json:"avg_score,omitempty"`
}

type Summary struct {
	TotalResponses int         `json:"total_responses"`
	TotalUsers     int         `json:"total_users"`
	AverageScore   float64     `json:"average_score"`
	PopularWhisky  *WhiskyStat `json:"popular_whisky"`
	TopRatedWhisky *WhiskyStat `json:"top_rated_whisky"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// WhiskyRanking holds the score distribution for one whisky.
// LowShare is the fraction of scores at or below LowScore.
type WhiskyRanking struct {
	WhiskyID string  `json:"whisky_id"`
	Name     string  `json:"name"`
	Count    int     `json:"count"`
	Median   float64 `json:"median"`
	P10      float64 `json:"p10"`
	P90      float64 `json:"p90"`
	Mean     float64 `json:"mean"`
	LowShare float64 `json:"low_share"`
	Rank     int     `json:"rank"`
}
