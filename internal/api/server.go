// Package api serves the reservations HTTP API and the calendar page.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"reservas/internal/models"
)

// Routes.
const (
	PathReservas = "/api/reservas"
	PathXLSX     = "/api/reservas/export.xlsx"
	PathICS      = "/api/reservas/calendar.ics"
)

// Fixed message of a failed reservations list. Source details stay in the log.
const msgReservasFailed = "Error al obtener las reservas"

// ReservationsService lists the normalized reservations.
type ReservationsService interface {
	ListReservations(ctx context.Context) (*models.Envelope, error)
}

// Options configures optional parts of the server.
type Options struct {
	Logger            *zerolog.Logger
	Limiter           *rate.Limiter // nil disables rate limiting
	Page              http.Handler  // served on /, nil for API only
	CalendarName      func() string
	ReadHeaderTimeout time.Duration
}

// HTTPServer exposes the reservations API.
type HTTPServer struct {
	svc     ReservationsService
	logger  *zerolog.Logger
	limiter *rate.Limiter
	page    http.Handler
	calName func() string
	now     func() time.Time
	server  *http.Server
}

func NewHTTPServer(addr string, svc ReservationsService, opts Options) *HTTPServer {
	logger := opts.Logger
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	calName := opts.CalendarName
	if calName == nil {
		calName = func() string { return "" }
	}
	readHeaderTimeout := opts.ReadHeaderTimeout
	if readHeaderTimeout <= 0 {
		readHeaderTimeout = 10 * time.Second
	}

	s := &HTTPServer{
		svc:     svc,
		logger:  logger,
		limiter: opts.Limiter,
		page:    opts.Page,
		calName: calName,
		now:     time.Now,
	}

	mux := http.NewServeMux()
	mux.HandleFunc(PathReservas, s.handleReservas)
	mux.HandleFunc(PathXLSX, s.handleExportXLSX)
	mux.HandleFunc(PathICS, s.handleExportICS)
	if s.page != nil {
		mux.HandleFunc("/", s.handlePage)
	}

	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.withRequestID(s.withAccessLog(s.withRateLimit(mux))),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return s
}

// Handler returns the full handler chain.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

// Start serves until Shutdown is called.
func (s *HTTPServer) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("starting reservations API")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *HTTPServer) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.page.ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.ErrorResponse{Error: msg})
}
