package main

import (
	"context"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"reservas/internal/api"
	"reservas/internal/calendar"
	"reservas/internal/config"
	"reservas/internal/logging"
	"reservas/internal/metrics"
	"reservas/internal/source"
	"reservas/internal/web"
)

func main() {
	bootLogger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		bootLogger.Warn().Err(err).Msg("failed to load .env")
	}

	configPath := os.Getenv("RESERVAS_CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		bootLogger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		bootLogger.Fatal().Err(err).Msg("invalid config")
	}

	logger := logging.New(cfg.Logging)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, err := source.New(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("create source error")
	}
	adapter := source.NewAdapter(src, source.NewNormalizer(cfg.SourceLocation(), &logger), &logger)

	var rdb *redis.Client
	if ttl := cfg.CacheTTL(); ttl > 0 {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Address, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer rdb.Close()
		adapter.UseRedisCache(rdb, ttl)
	}

	var theme atomic.Pointer[calendar.Theme]
	initial := calendar.ThemeFromConfig(cfg.Calendar)
	theme.Store(&initial)
	watcher := config.NewCalendarWatcher(configPath, 30*time.Second, &logger, func(c config.CalendarConfig) {
		t := calendar.ThemeFromConfig(c)
		theme.Store(&t)
	})
	if err := watcher.Start(ctx); err != nil {
		logger.Warn().Err(err).Msg("calendar theme watch disabled")
	}
	currentTheme := func() calendar.Theme { return *theme.Load() }

	page, err := web.NewPage(calendar.NewAPIClient(cfg.Server.BaseURL, 30*time.Second), currentTheme, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("create calendar page error")
	}

	var limiter *rate.Limiter
	if cfg.RateLimit.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
	}

	server := api.NewHTTPServer(cfg.Server.Listen, adapter, api.Options{
		Logger:            &logger,
		Limiter:           limiter,
		Page:              page,
		CalendarName:      func() string { return currentTheme().Title },
		ReadHeaderTimeout: cfg.ReadHeaderTimeout(),
	})

	go serveSide(ctx, "health", cfg.Monitoring.HealthCheckPort, healthHandler(adapter.Ready), &logger)

	if cfg.Monitoring.PrometheusEnabled {
		metrics.Register()
		go serveSide(ctx, "metrics", cfg.Monitoring.PrometheusPort, metricsHandler(), &logger)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info().
		Str("listen", cfg.Server.Listen).
		Str("source", src.Name()).
		Bool("cache", rdb != nil).
		Msg("reservations service started")

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			logger.Error().Err(err).Msg("http server error")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http server shutdown error")
	}
	logger.Info().Msg("reservations service stopped")
}
