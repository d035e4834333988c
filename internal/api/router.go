package api

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/Harshitk-cp/dempster/internal/api/handlers"
	mw "github.com/Harshitk-cp/dempster/internal/api/middleware"
	"github.com/Harshitk-cp/dempster/internal/buildconfig"
	"github.com/Harshitk-cp/dempster/internal/domain"
	"github.com/Harshitk-cp/dempster/internal/service"
	"github.com/Harshitk-cp/dempster/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// Options carries the HTTP-facing settings read from config.
type Options struct {
	APIKey             string
	RateLimitRPS       float64
	RateLimitBurst     int
	CORSAllowedOrigins []string
	FusionCacheSize    int
	// Ping reports backend health for /health. Nil means always healthy.
	Ping func(ctx context.Context) error
}

// App holds the router and background services for lifecycle management.
type App struct {
	Router  http.Handler
	Expirer *service.ExpirerService

	limiter   *mw.RateLimiter
	metrics   *mw.MetricsCollector
	startTime time.Time
}

func NewApp(frames domain.FrameStore, evidence domain.EvidenceStore, opts Options, logger *zap.Logger) (*App, error) {
	// Services
	frameSvc := service.NewFrameService(frames, logger)
	evidenceSvc := service.NewEvidenceService(evidence, frames, logger)
	fusionSvc, err := service.NewFusionService(frames, evidence, opts.FusionCacheSize, logger)
	if err != nil {
		return nil, err
	}
	expirerSvc := service.NewExpirerService(evidence, logger)

	// Handlers
	frameHandler := handlers.NewFrameHandler(frameSvc)
	evidenceHandler := handlers.NewEvidenceHandler(evidenceSvc)
	assessHandler := handlers.NewAssessHandler(fusionSvc)

	app := &App{
		Expirer:   expirerSvc,
		limiter:   mw.NewRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst),
		metrics:   mw.NewMetricsCollector(),
		startTime: time.Now(),
	}

	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(app.metrics.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(app.limiter.Handler)

	// Health, metrics and version (no auth)
	r.Get("/health", healthHandler(opts.Ping))
	r.Get("/metrics", app.metricsHandler())
	r.Get("/version", versionHandler)

	r.Route("/v1", func(r chi.Router) {
		r.Use(mw.APIKeyAuth(opts.APIKey))

		r.Route("/frames", func(r chi.Router) {
			r.Post("/", frameHandler.Create)
			r.Get("/", frameHandler.List)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", frameHandler.GetByID)
				r.Post("/hypotheses", frameHandler.AddHypotheses)
				r.Post("/evidence", evidenceHandler.Create)
				r.Get("/evidence", evidenceHandler.ListByFrame)
				r.Post("/assess", assessHandler.Assess)
				r.Post("/conflict", assessHandler.Conflict)
			})
		})

		r.Route("/evidence/{id}", func(r chi.Router) {
			r.Get("/", evidenceHandler.GetByID)
			r.Delete("/", evidenceHandler.Delete)
			r.Get("/similar", evidenceHandler.Similar)
		})
	})

	app.Router = cors.New(cors.Options{
		AllowedOrigins: opts.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			"Content-Length",
			"Authorization",
			mw.RequestIDHeader,
		},
		ExposedHeaders: []string{"Content-Length", "Content-Type", mw.RequestIDHeader},
	}).Handler(r)

	return app, nil
}

// RunLimiterCleanup drops idle rate limiters until ctx is done.
func (app *App) RunLimiterCleanup(ctx context.Context) {
	app.limiter.RunCleanup(ctx, 10*time.Minute)
}

func healthHandler(ping func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if ping != nil {
			if err := ping(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": err.Error()})
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

func versionHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(buildconfig.VersionInfo())
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)

		response := map[string]any{
			"uptime_seconds": uptime.Seconds(),
			"uptime_human":   uptime.Round(time.Second).String(),
			"requests":       app.metrics.Snapshot(),
			"goroutines":     runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb": float64(memStats.Alloc) / 1024 / 1024,
				"sys_mb":   float64(memStats.Sys) / 1024 / 1024,
				"num_gc":   memStats.NumGC,
			},
			"go_version": runtime.Version(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

// Ensure stores satisfy interfaces at compile time.
var (
	_ domain.FrameStore    = (*store.FrameStore)(nil)
	_ domain.FrameStore    = (*store.MemoryFrameStore)(nil)
	_ domain.EvidenceStore = (*store.EvidenceStore)(nil)
	_ domain.EvidenceStore = (*store.MemoryEvidenceStore)(nil)
)
