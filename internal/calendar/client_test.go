package calendar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIClient_ListReservations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, ReservationsPath, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"fechasReservadas":[{"fecha":"2024-03-05","tienda":"Store A","observacion":"Opens early"}]}`))
	}))
	defer srv.Close()

	env, err := NewAPIClient(srv.URL+"/", time.Second).ListReservations(context.Background())
	require.NoError(t, err)
	require.Len(t, env.FechasReservadas, 1)
	assert.Equal(t, "Store A", env.FechasReservadas[0].Tienda)
}

func TestAPIClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Error al obtener las reservas"}`))
	}))
	defer srv.Close()

	_, err := NewAPIClient(srv.URL, time.Second).ListReservations(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Error al obtener las reservas")
}

func TestAPIClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewAPIClient(url, time.Second).ListReservations(context.Background())
	assert.Error(t, err)
}
