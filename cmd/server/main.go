package main

import (
	"context"
	"crypto/rand"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"masjid-admin/internal/backend"
	"masjid-admin/internal/cache"
	"masjid-admin/internal/config"
	"masjid-admin/internal/handlers"
	"masjid-admin/internal/health"
	h "masjid-admin/internal/http"
	"masjid-admin/internal/live"
	"masjid-admin/internal/logging"
	"masjid-admin/internal/middleware"
	"masjid-admin/internal/services"
	"masjid-admin/internal/timeutil"
)

func main() {
	// Parse command-line flags
	port := flag.Int("port", 0, "Server port (overrides config)")
	backendURL := flag.String("backend", "", "Membership backend URL (overrides BACKEND_URL)")
	configPath := flag.String("config", "configs/config.yaml", "Optional YAML config file")
	flag.Parse()

	if *backendURL != "" {
		os.Setenv("BACKEND_URL", *backendURL)
	}

	// Load configuration
	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	// Redis is optional: submission tokens and live events fall back to this process
	var redisCheck func(ctx context.Context) bool
	if cfg.Redis.Addr != "" {
		if err := cache.Init(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("[Redis] unavailable, running without it")
		} else {
			log.Info().Str("addr", cfg.Redis.Addr).Msg("[Redis] connected")
			redisCheck = cache.IsHealthy
		}
		defer cache.Close()
	}

	authKey := []byte(cfg.CSRF.AuthKey)
	if len(authKey) != 32 {
		if len(authKey) != 0 {
			log.Warn().Int("length", len(authKey)).Msg("csrf.auth_key must be 32 bytes, generating one")
		} else {
			log.Warn().Msg("csrf.auth_key not set, generating one; form tokens will not survive a restart")
		}
		authKey = make([]byte, 32)
		if _, err := rand.Read(authKey); err != nil {
			log.Fatal().Err(err).Msg("failed to generate csrf key")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := backend.New(cfg.APIBase())
	log.Info().Str("api", api.BaseURL()).Msg("using membership backend")

	hub := live.NewHub(cache.GetClient(), cfg.Server.CorsAllowedOrigins)
	go hub.Run(ctx)

	clock := timeutil.Clock(time.Now)
	pageHandler := handlers.NewPageHandler(api, cache.NewSubmissionGuard(10*time.Minute), hub, cfg.Org.Name, clock)
	reportHandler := handlers.NewReportHandler(api, services.NewReportService(cfg.Org.Name), clock)
	healthHandler := handlers.NewHealthHandler(health.NewHealthChecker(api, redisCheck))

	router := h.NewRouter(pageHandler, reportHandler, healthHandler, hub)

	corsMiddleware := middleware.NewCORS(cfg)
	csrfMiddleware := middleware.NewCSRF(cfg, authKey)

	// Wrap with panic recovery and metrics middleware
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(middleware.RequestLogger(corsMiddleware(csrfMiddleware(router)))))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("org", cfg.Org.Name).Msg("Server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
