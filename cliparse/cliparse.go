package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           int
	DatabaseURL    string
	DatabaseType   string
	SurveyPassword string
	AdminPassword  string
	SessionTTL     time.Duration
	FrontendURL    string
	ImageDir       string
	LogLevel       string
	LogFormat      string
	LoginRate      float64 // login attempts per second per client IP
	LoginBurst     int
}

// LoadEnv loads variables from .env files into the environment.
// Missing files are not an error; variables already set win.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// ParseFlags reads flags, falls back to environment variables, then defaults
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("whisky-survey", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.FrontendURL, "frontend-url", "", "Allowed CORS origin")
	fs.StringVar(&cfg.ImageDir, "image-dir", "", "Directory for whisky images")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", "", "Log format (text or json)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.SurveyPassword, "survey-password", "", "Shared survey password (prefer env)")
	fs.StringVar(&cfg.AdminPassword, "admin-password", "", "Admin password (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3001
		}
	}

	cfg.DatabaseURL = firstNonEmpty(cfg.DatabaseURL, os.Getenv("DATABASE_URL"), "file:whisky_survey.db")
	cfg.DatabaseType = firstNonEmpty(cfg.DatabaseType, os.Getenv("DATABASE_TYPE"), "sqlite")
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("invalid database type %q (use sqlite or postgres)", cfg.DatabaseType)
	}

	cfg.FrontendURL = firstNonEmpty(cfg.FrontendURL, os.Getenv("FRONTEND_URL"), "http://localhost:5173")
	cfg.ImageDir = firstNonEmpty(cfg.ImageDir, os.Getenv("IMAGE_DIR"), "public/images")
	cfg.LogLevel = firstNonEmpty(cfg.LogLevel, os.Getenv("LOG_LEVEL"), "info")
	cfg.LogFormat = firstNonEmpty(cfg.LogFormat, os.Getenv("LOG_FORMAT"), "text")

	cfg.SessionTTL = 12 * time.Hour
	if ttl := os.Getenv("SESSION_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil || d <= 0 {
			return Config{}, errors.New("invalid SESSION_TTL env variable")
		}
		cfg.SessionTTL = d
	}

	cfg.LoginRate = 1
	if v := os.Getenv("LOGIN_RATE"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil || r <= 0 {
			return Config{}, errors.New("invalid LOGIN_RATE env variable")
		}
		cfg.LoginRate = r
	}
	cfg.LoginBurst = 5
	if v := os.Getenv("LOGIN_BURST"); v != "" {
		b, err := strconv.Atoi(v)
		if err != nil || b <= 0 {
			return Config{}, errors.New("invalid LOGIN_BURST env variable")
		}
		cfg.LoginBurst = b
	}

	// Secrets - MUST be provided
	cfg.SurveyPassword = firstNonEmpty(cfg.SurveyPassword, os.Getenv("SURVEY_PASSWORD"))
	if cfg.SurveyPassword == "" {
		return Config{}, errors.New("SURVEY_PASSWORD required")
	}

	cfg.AdminPassword = firstNonEmpty(cfg.AdminPassword, os.Getenv("ADMIN_PASSWORD"))
	if cfg.AdminPassword == "" {
		return Config{}, errors.New("ADMIN_PASSWORD required")
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
