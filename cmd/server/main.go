package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Harshitk-cp/dempster/internal/api"
	"github.com/Harshitk-cp/dempster/internal/buildconfig"
	"github.com/Harshitk-cp/dempster/internal/config"
	"github.com/Harshitk-cp/dempster/internal/domain"
	"github.com/Harshitk-cp/dempster/internal/store"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg := zap.NewProductionConfig()
	if lvl == zapcore.DebugLevel {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

func main() {
	if err := config.Load(); err != nil {
		panic(err)
	}

	logger, err := newLogger(config.LogLevel())
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		frames   domain.FrameStore
		evidence domain.EvidenceStore
		ping     func(context.Context) error
	)

	switch backend := config.StoreBackend(); backend {
	case "postgres":
		dbURL := config.DatabaseURL()
		if dbURL == "" {
			logger.Fatal("DATABASE_URL is required for the postgres backend")
		}
		pool, err := pgxpool.New(ctx, dbURL)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			logger.Fatal("failed to ping database", zap.Error(err))
		}
		if err := store.Migrate(ctx, pool); err != nil {
			logger.Fatal("failed to migrate database", zap.Error(err))
		}
		logger.Info("connected to database")

		frames = store.NewFrameStore(pool)
		evidence = store.NewEvidenceStore(pool)
		ping = pool.Ping
	case "memory":
		logger.Warn("using in-memory store, data is lost on restart")
		frames = store.NewMemoryFrameStore()
		evidence = store.NewMemoryEvidenceStore()
	default:
		logger.Fatal("unknown STORE_BACKEND", zap.String("backend", backend))
	}

	app, err := api.NewApp(frames, evidence, api.Options{
		APIKey:             config.APIKey(),
		RateLimitRPS:       config.RateLimitRPS(),
		RateLimitBurst:     config.RateLimitBurst(),
		CORSAllowedOrigins: config.CORSAllowedOrigins(),
		FusionCacheSize:    config.FusionCacheSize(),
		Ping:               ping,
	}, logger)
	if err != nil {
		logger.Fatal("failed to build app", zap.Error(err))
	}
	if config.APIKey() == "" {
		logger.Warn("API_KEY is empty, /v1 routes are unauthenticated")
	}

	// Start background services
	app.Expirer.SetInterval(config.ExpirerInterval())
	app.Expirer.Start()
	go app.RunLimiterCleanup(ctx)

	addr := config.ServerAddr()
	srv := &http.Server{
		Addr:              addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting",
			zap.String("addr", addr),
			zap.String("service", buildconfig.Service),
			zap.String("version", buildconfig.Version()),
			zap.String("commit", buildconfig.Commit()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	app.Expirer.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("server stopped")
}
