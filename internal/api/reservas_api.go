package api

import (
	"net/http"

	"reservas/internal/metrics"
)

// handleReservas returns the normalized reservations.
// GET /api/reservas
func (s *HTTPServer) handleReservas(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("reservas")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	env, err := s.svc.ListReservations(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Str("request_id", RequestID(r.Context())).Msg("list reservations failed")
		writeError(w, http.StatusInternalServerError, msgReservasFailed)
		return
	}

	writeJSON(w, http.StatusOK, env)
}
