package api

import (
	"bytes"
	"net/http"
	"strconv"

	"reservas/internal/export"
	"reservas/internal/metrics"
	"reservas/internal/models"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// handleExportXLSX returns the reservations as a workbook.
// GET /api/reservas/export.xlsx
func (s *HTTPServer) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("export_xlsx")
	list, ok := s.listForExport(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, list); err != nil {
		s.logger.Error().Err(err).Msg("xlsx export failed")
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}
	writeFile(w, contentTypeXLSX, "reservas.xlsx", buf.Bytes())
}

// handleExportICS returns the reservations as an iCalendar feed.
// GET /api/reservas/calendar.ics
func (s *HTTPServer) handleExportICS(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("export_ics")
	list, ok := s.listForExport(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteICS(&buf, list, s.calName(), s.now()); err != nil {
		s.logger.Error().Err(err).Msg("ics export failed")
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}
	writeFile(w, contentTypeICS, "reservas.ics", buf.Bytes())
}

func (s *HTTPServer) listForExport(w http.ResponseWriter, r *http.Request) ([]models.ReservationDate, bool) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return nil, false
	}
	env, err := s.svc.ListReservations(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Str("request_id", RequestID(r.Context())).Msg("list reservations failed")
		writeError(w, http.StatusInternalServerError, msgReservasFailed)
		return nil, false
	}
	return env.FechasReservadas, true
}

func writeFile(w http.ResponseWriter, contentType, name string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
