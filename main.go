package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/whisky-survey/auth"
	"github.com/danielhkuo/whisky-survey/cliparse"
	"github.com/danielhkuo/whisky-survey/db"
	"github.com/danielhkuo/whisky-survey/logging"
	"github.com/danielhkuo/whisky-survey/metrics"
	"github.com/danielhkuo/whisky-survey/router"
)

const (
	sessionPurgeInterval = 10 * time.Minute
	shutdownTimeout      = 10 * time.Second
)

func main() {
	// Load .env before reading the environment
	if err := cliparse.LoadEnv(); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	logging.Init(cfg.LogLevel, cfg.LogFormat)

	// Connect to the database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err, "type", cfg.DatabaseType)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}

	seeded, err := db.SeedWhiskies(dbConn)
	if err != nil {
		slog.Error("seeding whiskies failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "type", cfg.DatabaseType, "seeded", seeded)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Purge expired admin sessions in the background
	sessions := auth.NewSessionStore(dbConn, cfg.SessionTTL, nil)
	go sessions.RunPurger(ctx, sessionPurgeInterval, func(n int64, err error) {
		if err != nil {
			slog.Warn("session purge failed", "error", err)
			return
		}
		if n > 0 {
			slog.Info("expired sessions purged", "count", n)
		}
	})

	// Create server
	server := http.Server{
		Handler:           router.NewRouter(dbConn, cfg, metrics.NewRegistry()),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server
	slog.Info("Listening", "port", cfg.Port, "frontend", cfg.FrontendURL)
	if err := runServer(ctx, &server, server.ListenAndServe, shutdownTimeout); err != nil {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed")
	}
}

// runServer calls serve until ctx is done, then shuts server down and
// returns only after in-flight requests have drained or timeout passes
func runServer(ctx context.Context, server *http.Server, serve func() error, timeout time.Duration) error {
	shutdownDone := make(chan error, 1)
	go func() {
		// Wait for Ctrl-C or SIGTERM
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		err := server.Shutdown(shutdownCtx)
		if err != nil {
			server.Close()
		}
		shutdownDone <- err
	}()

	if err := serve(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-shutdownDone
}
