package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"portfolioAPI/cmd/app"
	"portfolioAPI/internal/config"
	handlers "portfolioAPI/internal/handler"
	"portfolioAPI/internal/logger"
	"portfolioAPI/internal/metrics"
	"portfolioAPI/internal/middleware"
	"portfolioAPI/internal/ratelimit"
)

const limiterIdle = 10 * time.Minute

func main() {
	cfg := config.LoadConfig()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Production)
	if err != nil {
		stdlog.Fatalf("init logger: %v", err)
	}
	defer logger.Sync(log)

	if !cfg.EnvFileLoaded {
		log.Info(".env not found, using process environment")
	}
	if cfg.AuthTokenSecret == "" {
		log.Fatal("AUTH_TOKEN_SECRET is not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, services, err := app.App(ctx, cfg, log)
	if err != nil {
		log.Fatal("startup failed", zap.Error(err))
	}
	defer db.CloseDB()

	limiter := ratelimit.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst, limiterIdle)
	go sweep(ctx, limiter, log)

	h := handlers.NewHandlers(services, cfg, metrics.New(), log)
	router := h.NewRouter(middleware.RequireAdmin(services.Auth), middleware.RateLimit(limiter))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           middleware.Chain(router, middleware.Logging(log), middleware.CORS(cfg.CORS)),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server started",
			zap.String("addr", server.Addr),
			zap.String("database", cfg.DB.DbNAME))
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", zap.Error(err))
		}
		return
	case <-ctx.Done():
	}

	log.Info("shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}

// sweep drops idle client buckets until ctx is done.
func sweep(ctx context.Context, limiter *ratelimit.KeyedRateLimiter, log *zap.Logger) {
	ticker := time.NewTicker(limiterIdle)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := limiter.Sweep(); n > 0 {
				log.Debug("rate limiter swept", zap.Int("removed", n), zap.Int("remaining", limiter.Len()))
			}
		}
	}
}
