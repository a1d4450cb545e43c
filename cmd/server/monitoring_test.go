package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"reservas/internal/source"
)

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthHandler_Liveness(t *testing.T) {
	h := healthHandler(func(context.Context) error { return errors.New("down") })
	rec := get(t, h, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestHealthHandler_Readiness(t *testing.T) {
	tests := []struct {
		name     string
		ready    readyFunc
		wantCode int
		wantBody string
	}{
		{"ready", func(context.Context) error { return nil }, http.StatusOK, "ready"},
		{"cache down", func(context.Context) error { return errors.New("redis: connection refused") }, http.StatusServiceUnavailable, "redis"},
		{"no source", func(context.Context) error { return errors.New("no reservation source configured") }, http.StatusServiceUnavailable, "no reservation source"},
		{"no check", nil, http.StatusServiceUnavailable, "not ready"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, healthHandler(tt.ready), "/readyz")
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestHealthHandler_AdapterWithoutSource(t *testing.T) {
	adapter := source.NewAdapter(nil, nil, nil)
	rec := get(t, healthHandler(adapter.Ready), "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "no reservation source")
}

func TestHealthHandler_ReadinessHasDeadline(t *testing.T) {
	var hasDeadline bool
	h := healthHandler(func(ctx context.Context) error {
		_, hasDeadline = ctx.Deadline()
		return nil
	})
	get(t, h, "/readyz")
	assert.True(t, hasDeadline)
}

func TestMetricsHandler(t *testing.T) {
	rec := get(t, metricsHandler(), "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.StatusNotFound, get(t, metricsHandler(), "/other").Code)
}
