package root

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/eugenecsa/taskbook/internal/middleware"
	"github.com/eugenecsa/taskbook/internal/person"
	"github.com/eugenecsa/taskbook/internal/task"
	"github.com/eugenecsa/taskbook/internal/taskhttp"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(ctx context.Context) error {
	logger := newLoggerFromEnv()
	slog.SetDefault(logger) // for third-party packages that use slog

	repo, cleanup, err := openRepo(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	persons := person.NewModel()
	r := newRouter(repo, persons, logger)

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}

	logger.Info("server_listen", slog.String("addr", addr))
	return http.ListenAndServe(addr, r)
}

// newRouter wires the health endpoint, task and person routes, and the
// middleware stack.
func newRouter(repo task.Repository, persons *person.Model, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// RequestID first so downstream can include it (logger, traces, etc.)
	r.Use(chimw.RequestID)

	// Panic recovery: never crash the server; returns 500 on panics
	r.Use(chimw.Recoverer)

	// Timeouts: cancel handlers that exceed this duration
	r.Use(chimw.Timeout(15 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-API-Key"},
		ExposedHeaders:   []string{"Link", "X-Request-ID", "Trace-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.MetricsMiddleware)
	r.Use(middleware.TracingMiddleware)
	r.Use(middleware.RateLimitMiddleware(limiterFromEnv()))
	r.Use(middleware.AuthMiddleware(authFromEnv()))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", middleware.MetricsHandler())

	taskhttp.RegisterRoutes(r, repo, persons, taskhttp.Config{
		ReminderDays: task.ReminderDaysFromEnv(),
	})

	return r
}

// openRepo returns the sqlite-backed repository when DB_PATH is set and the
// in-memory one otherwise.
func openRepo(ctx context.Context) (task.Repository, func(), error) {
	path := os.Getenv("DB_PATH")
	if path == "" {
		return task.NewInMemoryRepo(), func() {}, nil
	}

	dsn, err := task.SQLiteFileDSN(path)
	if err != nil {
		return nil, nil, err
	}
	repo, err := task.NewSQLiteRepo(dsn)
	if err != nil {
		return nil, nil, err
	}
	if err := repo.ApplyMigrations(ctx); err != nil {
		_ = repo.Close()
		return nil, nil, err
	}
	return repo, func() { _ = repo.Close() }, nil
}

func newLoggerFromEnv() *slog.Logger {
	level := strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL")))
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn", "warning":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: l,
	})
	return slog.New(handler)
}

func authFromEnv() middleware.AuthConfig {
	cfg := middleware.AuthConfig{
		Mode:      middleware.AuthNone,
		SkipPaths: []string{"/health", "/metrics"},
	}
	switch strings.ToLower(os.Getenv("AUTH_MODE")) {
	case "apikey":
		cfg.Mode = middleware.AuthAPIKey
		cfg.APIKey = os.Getenv("API_KEY")
	case "bearer":
		cfg.Mode = middleware.AuthBearer
		cfg.BearerToken = os.Getenv("BEARER_TOKEN")
	}
	return cfg
}

func limiterFromEnv() *rate.Limiter {
	rps, _ := strconv.ParseFloat(os.Getenv("RATE_LIMIT_RPS"), 64)
	burst, err := strconv.Atoi(os.Getenv("RATE_LIMIT_BURST"))
	if err != nil || burst <= 0 {
		burst = 10
	}
	return middleware.NewLimiter(rps, burst)
}
