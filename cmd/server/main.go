package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/courseloom/courseloom-backend/internal/config"
	"github.com/courseloom/courseloom-backend/internal/database"
	"github.com/courseloom/courseloom-backend/internal/editor"
	"github.com/courseloom/courseloom-backend/internal/handler"
	"github.com/courseloom/courseloom-backend/internal/logger"
	"github.com/courseloom/courseloom-backend/internal/router"
	"github.com/courseloom/courseloom-backend/internal/service"
	"github.com/courseloom/courseloom-backend/internal/upstream"
	"github.com/courseloom/courseloom-backend/internal/validator"
	"github.com/courseloom/courseloom-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("upstream", cfg.UpstreamURL).
		Msg("Starting CourseLoom Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to Redis ──────────────────────────────────────────────
	// The cache is best-effort: if Redis is unreachable the server runs
	// without it and every read goes straight upstream.
	var rdb *redis.Client
	if client, err := database.NewRedisClient(ctx, cfg, log); err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, caching disabled")
	} else {
		rdb = client
		defer rdb.Close()
	}

	// ─── Initialize Upstream Client ────────────────────────────────────
	up := upstream.New(cfg.UpstreamURL, cfg.UpstreamTimeout, log)

	// ─── Initialize Session Store ──────────────────────────────────────
	store := editor.NewStore(cfg.SessionTTL)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(up, log)
	courseService := service.NewCourseService(up, rdb, cfg.CacheTTL, log)
	editorService := service.NewEditorService(store, up, log)
	reviewService := service.NewReviewService(up, rdb, cfg.CacheTTL, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:   handler.NewAuthHandler(authService),
		Course: handler.NewCourseHandler(courseService),
		Editor: handler.NewEditorHandler(editorService),
		Review: handler.NewReviewHandler(reviewService),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	sweeper := worker.NewSessionSweeper(store, time.Minute, log)
	go sweeper.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	workerCancel()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
