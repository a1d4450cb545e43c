package source

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"reservas/internal/config"
)

type mockSource struct {
	mock.Mock
}

func (m *mockSource) Name() string { return "mock" }

func (m *mockSource) Fetch(ctx context.Context) ([]json.RawMessage, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]json.RawMessage)
	return items, args.Error(1)
}

func newTestAdapter(t *testing.T, src Source) *Adapter {
	t.Helper()
	logger := zerolog.New(io.Discard)
	return NewAdapter(src, NewNormalizer(time.UTC, &logger), &logger)
}

func TestAdapter_ListReservations(t *testing.T) {
	src := new(mockSource)
	src.On("Fetch", mock.Anything).Return(rawItems(t, `[
		{"FECHA":"2024-03-05T10:00:00Z","TIENDA":"Store A","OBSERVACION":"Opens early"},
		{"FECHA":"","TIENDA":"Store B"}
	]`), nil)

	env, err := newTestAdapter(t, src).ListReservations(context.Background())
	require.NoError(t, err)

	data, err := json.Marshal(env)
	require.NoError(t, err)
	assert.JSONEq(t, `{"fechasReservadas":[{"fecha":"2024-03-05","tienda":"Store A","observacion":"Opens early"}]}`, string(data))
	src.AssertNumberOfCalls(t, "Fetch", 1)
}

func TestAdapter_EmptySourceGivesEmptyList(t *testing.T) {
	src := new(mockSource)
	src.On("Fetch", mock.Anything).Return([]json.RawMessage{}, nil)

	env, err := newTestAdapter(t, src).ListReservations(context.Background())
	require.NoError(t, err)
	data, err := json.Marshal(env)
	require.NoError(t, err)
	assert.Equal(t, `{"fechasReservadas":[]}`, string(data))
}

func TestAdapter_PropagatesSourceErrors(t *testing.T) {
	src := new(mockSource)
	src.On("Fetch", mock.Anything).Return(nil, ErrSourceUnavailable)

	env, err := newTestAdapter(t, src).ListReservations(context.Background())
	assert.Nil(t, env)
	assert.True(t, errors.Is(err, ErrSourceUnavailable))
}

func TestAdapter_Idempotent(t *testing.T) {
	src := new(mockSource)
	src.On("Fetch", mock.Anything).Return(rawItems(t, `[
		{"FECHA":"2024-03-09","TIENDA":"Z"},
		{"FECHA":"2024-03-01","TIENDA":"A","OBSERVACION":"x"}
	]`), nil)
	a := newTestAdapter(t, src)

	first, err := a.ListReservations(context.Background())
	require.NoError(t, err)
	second, err := a.ListReservations(context.Background())
	require.NoError(t, err)

	b1, _ := json.Marshal(first)
	b2, _ := json.Marshal(second)
	assert.Equal(t, string(b1), string(b2))
}

func TestAdapter_RedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	src := new(mockSource)
	src.On("Fetch", mock.Anything).Return(rawItems(t, `[{"FECHA":"2024-03-05","TIENDA":"Store A"}]`), nil)

	a := newTestAdapter(t, src)
	a.UseRedisCache(rdb, time.Minute)
	ctx := context.Background()

	first, err := a.ListReservations(ctx)
	require.NoError(t, err)
	second, err := a.ListReservations(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	src.AssertNumberOfCalls(t, "Fetch", 1)
	assert.True(t, mr.Exists(cacheKey))
	assert.NoError(t, a.Ping(ctx))

	mr.FastForward(2 * time.Minute)
	_, err = a.ListReservations(ctx)
	require.NoError(t, err)
	src.AssertNumberOfCalls(t, "Fetch", 2)
}

func TestAdapter_FailuresAreNotCached(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	src := new(mockSource)
	src.On("Fetch", mock.Anything).Return(nil, ErrSourceUnavailable)

	a := newTestAdapter(t, src)
	a.UseRedisCache(rdb, time.Minute)

	_, err := a.ListReservations(context.Background())
	assert.Error(t, err)
	assert.False(t, mr.Exists(cacheKey))
}

func TestAdapter_PingWithoutCache(t *testing.T) {
	assert.NoError(t, newTestAdapter(t, new(mockSource)).Ping(context.Background()))
}

func TestAdapter_Ready(t *testing.T) {
	ctx := context.Background()

	var missing *Adapter
	assert.ErrorIs(t, missing.Ready(ctx), errNoSource)
	assert.ErrorIs(t, newTestAdapter(t, nil).Ready(ctx), errNoSource)
	assert.NoError(t, newTestAdapter(t, new(mockSource)).Ready(ctx))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer rdb.Close()
	a := newTestAdapter(t, new(mockSource))
	a.UseRedisCache(rdb, time.Minute)
	require.NoError(t, a.Ready(ctx))

	mr.Close()
	assert.ErrorContains(t, a.Ready(ctx), "redis")
}

func TestNew(t *testing.T) {
	cfg, err := config.Parse([]byte("source:\n  url: https://example.com/exec\n"))
	require.NoError(t, err)

	src, err := New(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "script", src.Name())

	cfg.Source.Kind = "ftp"
	_, err = New(context.Background(), cfg)
	assert.Error(t, err)
}
