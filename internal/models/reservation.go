package models

import "encoding/json"

// RawReservationRecord is one row as returned by the reservations spreadsheet.
// Fields stay raw so each record can be validated on its own.
type RawReservationRecord struct {
	Fecha       json.RawMessage `json:"FECHA,omitempty"`
	Tienda      json.RawMessage `json:"TIENDA,omitempty"`
	Observacion json.RawMessage `json:"OBSERVACION,omitempty"`
}

// ReservationDate is a normalized reservation.
type ReservationDate struct {
	Fecha       string  `json:"fecha"`                 // Format: YYYY-MM-DD
	Tienda      string  `json:"tienda"`
	Observacion *string `json:"observacion,omitempty"` // nil when the source had no note
}

// HasObservacion reports whether the reservation carries a non-empty note.
func (r ReservationDate) HasObservacion() bool {
	return r.Observacion != nil && *r.Observacion != ""
}

// ObservacionOr returns the note or fallback when there is none.
func (r ReservationDate) ObservacionOr(fallback string) string {
	if r.HasObservacion() {
		return *r.Observacion
	}
	return fallback
}

// Envelope is the response body of GET /api/reservas.
type Envelope struct {
	FechasReservadas []ReservationDate `json:"fechasReservadas"`
}

// NewEnvelope wraps list, never producing a null array.
func NewEnvelope(list []ReservationDate) *Envelope {
	if list == nil {
		list = []ReservationDate{}
	}
	return &Envelope{FechasReservadas: list}
}

// ErrorResponse is the failure body of the API.
type ErrorResponse struct {
	Error string `json:"error"`
}
