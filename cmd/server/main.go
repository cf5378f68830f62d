// Forge - AI project tutor server
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/projectforgeai/forge-server/internal/api"
	"github.com/projectforgeai/forge-server/internal/config"
	"github.com/projectforgeai/forge-server/internal/flow"
	"github.com/projectforgeai/forge-server/internal/identity"
	"github.com/projectforgeai/forge-server/internal/middleware"
	"github.com/projectforgeai/forge-server/internal/service"
	"github.com/projectforgeai/forge-server/internal/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server", "port", cfg.Port, "dev", cfg.IsDevelopment())

	// Initialize dependencies.
	repo, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			slog.Error("Failed to close repository", "error", closeErr)
		}
	}()

	if err := repo.Ping(context.Background()); err != nil {
		slog.Error("Database health check failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database connected")

	// Initialize the generation backend (optional). Without credentials
	// the CRUD surfaces keep working and generation endpoints fail fast.
	var gen flow.Generator = flow.Disabled{}
	if cfg.Gemini.APIKey != "" {
		gemini, err := flow.NewGemini(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model, logger)
		if err != nil {
			slog.Error("Failed to initialize Gemini client", "error", err)
			os.Exit(1)
		}
		gen = gemini
		slog.Info("Generation model ready", "model", cfg.Gemini.Model)
	} else {
		slog.Info("Generation disabled (GEMINI_API_KEY not set)")
	}

	// Initialize services.
	flows := flow.NewService(gen)
	tokens := service.NewTokenService(repo, logger)
	account := service.NewAccountService(repo)
	projects := service.NewProjectService(repo, flows, tokens, logger)
	paths := service.NewLearningPathService(repo, flows, tokens, logger)
	interviews := service.NewInterviewService(repo, flows, tokens, logger)

	// Initialize handlers.
	baseHandler := api.NewHandler(repo)
	healthHandler := api.NewHealthHandler(repo, cfg)
	flowHandler := api.NewFlowHandler(baseHandler, flows, projects, paths, tokens, account)
	projectHandler := api.NewProjectHandler(baseHandler, projects)
	pathHandler := api.NewLearningPathHandler(baseHandler, paths, account)
	interviewHandler := api.NewInterviewHandler(baseHandler, interviews)
	accountHandler := api.NewAccountHandler(baseHandler, account, tokens)

	// Setup router.
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/ping"))
	r.Use(middleware.CORS([]string{"*"}))

	// Public routes.
	healthHandler.RegisterHealth(r)

	// All remaining routes use anonymous identity (no auth needed).
	r.Group(func(r chi.Router) {
		r.Use(identity.Middleware(repo, cfg.IsDevelopment()))

		flowHandler.RegisterRoutes(r)
		projectHandler.RegisterRoutes(r)
		pathHandler.RegisterRoutes(r)
		interviewHandler.RegisterRoutes(r)
		accountHandler.RegisterRoutes(r)
	})

	// Create server. Generation calls can run long, so the write timeout
	// stays above the generation timeout.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.Timeout.Generate + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start server.
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped successfully")
}
