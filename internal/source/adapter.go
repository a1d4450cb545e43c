package source

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"reservas/internal/config"
	"reservas/internal/metrics"
	"reservas/internal/models"
)

const cacheKey = "reservas:fechas"

// Source yields the raw items of one fetch from the external data source.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]json.RawMessage, error)
}

// New builds the source selected by cfg.Source.Kind.
func New(ctx context.Context, cfg *config.Config) (Source, error) {
	switch cfg.Source.Kind {
	case config.SourceScript:
		return NewScriptClient(cfg.Source.URL, cfg.SourceTimeout(), cfg.Source.UserAgent), nil
	case config.SourceSheets:
		opts, err := SheetsOptions(ctx, cfg.Source.Sheets.CredentialsFile, cfg.Source.Sheets.APIKey)
		if err != nil {
			return nil, err
		}
		return NewSheetsClient(ctx, cfg.Source.Sheets.SpreadsheetID, cfg.Source.Sheets.Range, opts...)
	default:
		return nil, fmt.Errorf("unknown source kind %q", cfg.Source.Kind)
	}
}

// Adapter lists normalized reservations from a Source.
type Adapter struct {
	source     Source
	normalizer *Normalizer
	logger     *zerolog.Logger

	redis    *redis.Client
	cacheTTL time.Duration
}

func NewAdapter(src Source, normalizer *Normalizer, logger *zerolog.Logger) *Adapter {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Adapter{
		source:     src,
		normalizer: normalizer,
		logger:     logger,
	}
}

// UseRedisCache configures optional Redis caching of the normalized list.
func (a *Adapter) UseRedisCache(redisClient *redis.Client, ttl time.Duration) {
	a.redis = redisClient
	a.cacheTTL = ttl
}

// ListReservations fetches, filters and normalizes the reservations.
func (a *Adapter) ListReservations(ctx context.Context) (*models.Envelope, error) {
	var cached models.Envelope
	if a.readCache(ctx, &cached) {
		metrics.IncCacheHit()
		return models.NewEnvelope(cached.FechasReservadas), nil
	}

	started := time.Now()
	items, err := a.source.Fetch(ctx)
	metrics.ObserveFetch(a.source.Name(), started, err)
	if err != nil {
		a.logger.Error().Err(err).Str("source", a.source.Name()).Msg("failed to fetch reservations")
		return nil, err
	}

	res := a.normalizer.Normalize(items)
	a.logger.Info().
		Str("source", a.source.Name()).
		Int("received", res.Received).
		Int("kept", len(res.Reservations)).
		Int("missing", res.Missing).
		Int("malformed", res.Malformed).
		Dur("took", time.Since(started)).
		Msg("reservations fetched")

	env := models.NewEnvelope(res.Reservations)
	a.writeCache(ctx, env)
	metrics.SetReturned(len(env.FechasReservadas))
	return env, nil
}

// Ping checks the cache backend, if any.
func (a *Adapter) Ping(ctx context.Context) error {
	if a.redis == nil {
		return nil
	}
	return a.redis.Ping(ctx).Err()
}

// Ready reports whether the adapter can serve: a source is set and the
// cache, if configured, answers.
func (a *Adapter) Ready(ctx context.Context) error {
	if a == nil || a.source == nil {
		return errNoSource
	}
	if err := a.Ping(ctx); err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	return nil
}

func (a *Adapter) readCache(ctx context.Context, out any) bool {
	if a.redis == nil || a.cacheTTL <= 0 {
		return false
	}
	val, err := a.redis.Get(ctx, cacheKey).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(val), out); err != nil {
		return false
	}
	return true
}

func (a *Adapter) writeCache(ctx context.Context, val any) {
	if a.redis == nil || a.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	if err := a.redis.Set(ctx, cacheKey, data, a.cacheTTL).Err(); err != nil {
		a.logger.Warn().Err(err).Msg("failed to cache reservations")
	}
}
