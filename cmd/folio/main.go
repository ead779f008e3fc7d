// Command folio runs the portfolio API server and its admin CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/foliohq/folio/internal/adapter/email"
	foliohttp "github.com/foliohq/folio/internal/adapter/http"
	"github.com/foliohq/folio/internal/adapter/memcache"
	"github.com/foliohq/folio/internal/adapter/natskv"
	"github.com/foliohq/folio/internal/adapter/otel"
	"github.com/foliohq/folio/internal/adapter/postgres"
	"github.com/foliohq/folio/internal/adapter/ristretto"
	"github.com/foliohq/folio/internal/adapter/tiered"
	"github.com/foliohq/folio/internal/adapter/ws"
	"github.com/foliohq/folio/internal/config"
	"github.com/foliohq/folio/internal/logger"
	"github.com/foliohq/folio/internal/middleware"
	"github.com/foliohq/folio/internal/port/cache"
	"github.com/foliohq/folio/internal/resilience"
	"github.com/foliohq/folio/internal/service"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "admin" {
		if err := runAdmin(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log, logCloser := logger.New(cfg.Logging)
	defer logCloser.Close()
	slog.SetDefault(log)

	slog.Info("config loaded",
		"port", cfg.Server.Port,
		"cache_backend", cfg.Cache.Backend,
		"auth_enabled", cfg.Auth.Enabled,
	)

	ctx := context.Background()

	// --- Observability ---
	otelShutdown, err := otel.Setup(ctx, cfg.Otel, cfg.Logging.Service)
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = otelShutdown(shutdownCtx)
	}()

	metrics, err := otel.NewMetrics()
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	// --- Infrastructure ---
	pool, err := postgres.NewPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	defer pool.Close()
	slog.Info("postgres connected")

	if err := postgres.RunMigrations(ctx, cfg.Postgres.DSN); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	slog.Info("migrations applied")

	backend, closeCache, err := buildCache(ctx, cfg, metrics)
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	defer closeCache()

	loader := cache.NewLoader(backend, cfg.Cache.SingleFlight)
	loader.Observe(
		func(string) { metrics.CacheHits.Add(ctx, 1) },
		func(string) { metrics.CacheMisses.Add(ctx, 1) },
	)

	// --- Services ---
	hub := ws.NewHub()
	store := postgres.NewStore(pool)
	breaker := resilience.NewBreaker(cfg.Breaker.MaxFailures, cfg.Breaker.Timeout)
	notify := email.NewNotifier(cfg.SMTP)

	projectSvc := service.NewProjectService(store, loader)
	experienceSvc := service.NewExperienceService(store, loader)
	messageSvc := service.NewMessageService(store, loader, hub, notify, breaker, log).WithMetrics(metrics)
	authSvc := service.NewAuthService(store, &cfg.Auth)
	healthSvc := service.NewHealthService(store, loader)
	uploadSvc, err := service.NewUploadService(&cfg.Upload)
	if err != nil {
		return fmt.Errorf("uploads: %w", err)
	}

	// --- HTTP ---
	handlers := foliohttp.NewHandlers(projectSvc, experienceSvc, messageSvc, authSvc, healthSvc, uploadSvc, loader)
	webhooks := foliohttp.NewWebhookHandlers(store)

	limiter := middleware.NewRateLimiter(cfg.Rate.RequestsPerSecond, cfg.Rate.Burst)
	stopCleanup := limiter.StartCleanup(10*time.Minute, time.Hour)
	defer stopCleanup()

	r := chi.NewRouter()
	r.Use(foliohttp.CORS(cfg.Server.CORSOrigin))
	r.Use(foliohttp.SecurityHeaders)
	r.Use(middleware.RequestID)
	r.Use(foliohttp.Logger)
	if cfg.Otel.Enabled {
		r.Use(otel.HTTPMiddleware(cfg.Logging.Service))
	}
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))

	foliohttp.MountRoutes(r, handlers, webhooks, hub, authSvc, cfg, limiter)

	addr := ":" + cfg.Server.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-done
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// buildCache assembles the configured cache backend: "memory" (default) or
// "ristretto" in-process, optionally tiered over a NATS JetStream KV bucket
// shared by all instances.
func buildCache(ctx context.Context, cfg *config.Config, metrics *otel.Metrics) (cache.Cache, func(), error) {
	var l1 cache.Cache
	closers := []func(){}

	switch cfg.Cache.Backend {
	case "ristretto":
		c, err := ristretto.New(cfg.Cache.MaxSizeMB << 20)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, c.Close)
		l1 = c
	default:
		s := memcache.New(cfg.Cache.MaxEntries)
		s.OnEvict(func(string) { metrics.CacheEvictions.Add(ctx, 1) })
		l1 = s
	}

	if !cfg.Cache.L2Enabled {
		return l1, func() {
			for _, c := range closers {
				c()
			}
		}, nil
	}

	l2, err := natskv.Open(ctx, cfg.NATS.URL, cfg.Cache.L2Bucket, cfg.Cache.L2TTL)
	if err != nil {
		return nil, nil, fmt.Errorf("nats kv: %w", err)
	}
	closers = append(closers, l2.Close)
	slog.Info("l2 cache attached", "bucket", cfg.Cache.L2Bucket)

	return tiered.New(l1, l2, cfg.Cache.L1Expire), func() {
		for _, c := range closers {
			c()
		}
	}, nil
}
