package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/UnknownOlympus/locator/internal/api"
	"github.com/UnknownOlympus/locator/internal/cache"
	"github.com/UnknownOlympus/locator/internal/config"
	"github.com/UnknownOlympus/locator/internal/geocoding"
	"github.com/UnknownOlympus/locator/internal/metrics"
	"github.com/UnknownOlympus/locator/internal/migrations"
	"github.com/UnknownOlympus/locator/internal/models"
	"github.com/UnknownOlympus/locator/internal/repository"
	"github.com/UnknownOlympus/locator/internal/resolver"
	"github.com/UnknownOlympus/locator/internal/service"
	"github.com/UnknownOlympus/locator/internal/view"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

const (
	sessionSweepInterval = time.Minute
	shutdownTimeout      = 10 * time.Second
)

// main is the entry point of the application.
func main() {
	// Cancelled on SIGINT/SIGTERM for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()
	logger := setupLogger(cfg.Env)

	if cfg.Env != envLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create a separate registry for metrics with exemplar
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	if err := migrate(ctx, cfg.Database.DSN(), logger); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	dtb, err := repository.NewDatabase(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer dtb.Close()

	repo := repository.NewRepository(dtb, logger)

	geoProvider, closeProvider, err := buildProvider(ctx, cfg, logger, appMetrics)
	if err != nil {
		log.Fatalf("Failed to create geocoding provider: %v", err)
	}
	defer closeProvider()

	logger.InfoContext(ctx, "Geocoding provider initialized", "type", cfg.Provider.Type, "cache", cfg.Redis.URL != "")

	resolverCfg := resolver.Config{
		CountryCode:        cfg.Search.CountryCode,
		StateAbbreviations: cfg.Search.StateAbbreviations,
		Debounce:           cfg.Search.Debounce,
		SuggestLimit:       cfg.Search.SuggestLimit,
		RequestTimeout:     cfg.Search.RequestTimeout,
	}
	defaultLocation := models.Coordinates{
		Latitude:  cfg.Search.DefaultLatitude,
		Longitude: cfg.Search.DefaultLongitude,
	}

	registry := view.NewRegistry(geoProvider, view.Config{
		Resolver:        resolverCfg,
		DefaultLocation: defaultLocation,
		SessionTTL:      cfg.SessionTTL,
	}, logger, appMetrics)

	directory := service.NewDirectory(repo, registry, cfg.RefreshInterval, logger, appMetrics)
	locator := service.NewAddressLocator(geoProvider, cfg.Search.CountryCode, logger)
	firmGeocoder := service.NewFirmGeocoder(logger, repo, locator, appMetrics, cfg.Workers, cfg.Interval)
	applications := service.NewApplicationService(
		repo,
		locator,
		validator.New(validator.WithRequiredStructEnabled()),
		directory,
		logger,
	)

	apiServer := api.New(api.Config{
		AllowedOrigins:  cfg.AllowedOrigins,
		Resolver:        resolverCfg,
		DefaultLocation: defaultLocation,
	}, geoProvider, registry, applications, logger, appMetrics)

	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return serve(gctx, logger, "monitoring", monitoringServer(gctx, logger, reg, repo, cfg.Port))
	})
	group.Go(func() error {
		return serve(gctx, logger, "api", &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.APIPort),
			Handler:           apiServer.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      cfg.Search.RequestTimeout + 5*time.Second,
		})
	})
	group.Go(func() error {
		registry.Run(gctx, sessionSweepInterval)
		return nil
	})
	group.Go(func() error {
		directory.Run(gctx)
		return nil
	})
	group.Go(func() error {
		firmGeocoder.Run(gctx)
		return nil
	})

	if err = group.Wait(); err != nil {
		logger.ErrorContext(ctx, "Application stopped with error", "error", err)
		return
	}

	logger.InfoContext(ctx, "Application stopped gracefully.")
}

// buildProvider creates the configured geocoder. When a Redis URL is set the
// shared geocode cache sits in front of it; the returned func releases the
// cache connection.
func buildProvider(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	m *metrics.Metrics,
) (geocoding.Provider, func(), error) {
	providerCfg := geocoding.ProviderConfig{
		Type:        geocoding.ProviderType(cfg.Provider.Type),
		APIKey:      cfg.Provider.APIKey,
		BaseURL:     cfg.Provider.BaseURL,
		UserAgent:   cfg.Provider.UserAgent,
		CountryCode: cfg.Search.CountryCode,
		RateLimit:   cfg.Provider.RateLimit,
		Timeout:     cfg.Provider.Timeout,
		Logger:      logger,
	}

	if cfg.Redis.URL == "" {
		provider, err := geocoding.Build(providerCfg, nil, m)
		return provider, func() {}, err
	}

	client, err := cache.NewClient(ctx, cfg.Redis.URL)
	if err != nil {
		return nil, nil, err
	}
	closeClient := func() {
		if cerr := client.Close(); cerr != nil {
			logger.Error("Failed to close redis client", "error", cerr)
		}
	}

	provider, err := geocoding.Build(providerCfg, cache.NewGeocodeCache(client, cfg.Redis.TTL, m), m)
	if err != nil {
		closeClient()
		return nil, nil, err
	}
	return provider, closeClient, nil
}

func migrate(ctx context.Context, dsn string, logger *slog.Logger) error {
	migrator, err := migrations.Open(dsn, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrator.Close(); cerr != nil {
			logger.Error("Failed to close migrator", "error", cerr)
		}
	}()

	return migrator.Up(ctx)
}

// serve runs srv until ctx is cancelled, then shuts it down gracefully.
func serve(ctx context.Context, logger *slog.Logger, name string, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "Starting server", "server", name, "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("%s server failed: %w", name, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("%s server shutdown failed: %w", name, err)
	}
	logger.InfoContext(ctx, "Server stopped", "server", name)
	return nil
}

// monitoringServer builds an HTTP server that provides health check and metrics endpoints.
//
// Parameters:
// - ctx: A context.Context for managing cancellation and timeouts.
// - log: A logger for logging server events and errors.
// - reg: A registry with Prometheus collectors.
// - pinger: The repository, pinged by the health check.
// - port: The port number on which the server will listen.
func monitoringServer(
	ctx context.Context,
	log *slog.Logger,
	reg *prometheus.Registry,
	pinger interface{ Ping(ctx context.Context) error },
	port int,
) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(writer http.ResponseWriter, req *http.Request) {
		log.DebugContext(ctx, "Performing health checks...")
		status, body := http.StatusOK, "OK"
		if err := pinger.Ping(req.Context()); err != nil {
			status, body = http.StatusServiceUnavailable, "DB ping failed"
		}
		writer.WriteHeader(status)
		_, err := writer.Write([]byte(body))
		if err != nil {
			log.ErrorContext(ctx, "failed to write reply", "error", err)
		}

		log.DebugContext(ctx, "Health checks completed", "status", status)
	})
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	readTimeout := 5
	writeTimeout := 10
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
	}
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:       slog.LevelWarn,
				ReplaceAttr: dropTime,
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:       slog.LevelError,
				ReplaceAttr: dropTime,
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}

func dropTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		return slog.Attr{}
	}
	return a
}
