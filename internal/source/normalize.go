package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"reservas/internal/metrics"
	"reservas/internal/models"
)

// Layouts carrying an explicit offset. The instant is moved to the source zone
// before the date is taken.
// maxEpochMillis is the largest instant a JavaScript Date can hold.
const maxEpochMillis = 8.64e15

var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04Z07:00",
	time.RFC1123,
	time.RFC1123Z,
	"Mon Jan 02 2006 15:04:05 GMT-0700",
}

// Layouts with a time of day but no offset, read in the source zone.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// Date-only layouts keep their literal date.
var dateLayouts = []string{
	models.DateLayout,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
}

// NormalizeResult carries the kept reservations and per-reason counts.
type NormalizeResult struct {
	Reservations []models.ReservationDate
	Received     int
	Missing      int
	Malformed    int
}

// Normalizer turns raw source records into ReservationDate values.
type Normalizer struct {
	loc    *time.Location
	logger *zerolog.Logger
}

func NewNormalizer(loc *time.Location, logger *zerolog.Logger) *Normalizer {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Normalizer{loc: loc, logger: logger}
}

// Normalize filters and converts items, preserving source order. Items that
// are not valid records are dropped one by one.
func (n *Normalizer) Normalize(items []json.RawMessage) NormalizeResult {
	res := NormalizeResult{
		Reservations: make([]models.ReservationDate, 0, len(items)),
		Received:     len(items),
	}

	for i, item := range items {
		r, reason, err := n.normalizeItem(item)
		switch reason {
		case "":
			res.Reservations = append(res.Reservations, r)
			continue
		case DropMissingFields:
			res.Missing++
			n.logger.Debug().Int("index", i).Msg("skipping record without date or store")
		case DropMalformed:
			res.Malformed++
			n.logger.Warn().Err(err).Int("index", i).Str("record", truncate(string(item), 200)).Msg("skipping malformed record")
		}
		metrics.IncDropped(reason)
	}

	return res
}

func (n *Normalizer) normalizeItem(item json.RawMessage) (models.ReservationDate, string, error) {
	var rec models.RawReservationRecord
	trimmed := bytes.TrimSpace(item)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return models.ReservationDate{}, DropMalformed, fmt.Errorf("record: %w", errWrongType)
	}
	if err := json.Unmarshal(trimmed, &rec); err != nil {
		return models.ReservationDate{}, DropMalformed, err
	}
	return n.NormalizeRecord(rec)
}

// NormalizeRecord converts one record. A non-empty reason means it was dropped.
func (n *Normalizer) NormalizeRecord(rec models.RawReservationRecord) (models.ReservationDate, string, error) {
	fechaText, fechaOK, err := scalarText(rec.Fecha)
	if err != nil {
		return models.ReservationDate{}, DropMalformed, fmt.Errorf("FECHA: %w", err)
	}
	tienda, tiendaOK, err := scalarText(rec.Tienda)
	if err != nil {
		return models.ReservationDate{}, DropMalformed, fmt.Errorf("TIENDA: %w", err)
	}
	if !fechaOK || falsy(rec.Fecha, fechaText) || !tiendaOK || falsy(rec.Tienda, tienda) {
		return models.ReservationDate{}, DropMissingFields, nil
	}

	fecha, err := n.parseFecha(rec.Fecha, fechaText)
	if err != nil {
		return models.ReservationDate{}, DropMalformed, fmt.Errorf("FECHA %q: %w", fechaText, err)
	}

	out := models.ReservationDate{Fecha: fecha, Tienda: tienda}

	note, noteOK, err := scalarText(rec.Observacion)
	if err != nil {
		return models.ReservationDate{}, DropMalformed, fmt.Errorf("OBSERVACION: %w", err)
	}
	if noteOK {
		out.Observacion = &note
	}

	return out, "", nil
}

// parseFecha returns the calendar date of raw as YYYY-MM-DD.
func (n *Normalizer) parseFecha(raw json.RawMessage, text string) (string, error) {
	if isJSONNumber(raw) {
		ms, err := json.Number(text).Float64()
		if err != nil || math.IsNaN(ms) || math.IsInf(ms, 0) || math.Abs(ms) > maxEpochMillis {
			return "", errUnparsedDate
		}
		// Epoch milliseconds, as a JavaScript Date would read them.
		return time.UnixMilli(int64(ms)).In(n.loc).Format(models.DateLayout), nil
	}

	t, err := n.parseDateString(text)
	if err != nil {
		return "", err
	}
	return t.Format(models.DateLayout), nil
}

func (n *Normalizer) parseDateString(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	// JavaScript Date.toString() appends the zone name in parentheses.
	if i := strings.Index(s, " ("); i > 0 && strings.HasSuffix(s, ")") {
		s = s[:i]
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.In(n.loc), nil
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, n.loc); err == nil {
			return t, nil
		}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errUnparsedDate
}

// scalarText renders a JSON scalar as text. present is false for absent or null values.
func scalarText(raw json.RawMessage) (text string, present bool, err error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", false, nil
	}

	switch {
	case raw[0] == '"':
		if err := json.Unmarshal(raw, &text); err != nil {
			return "", false, err
		}
		return text, true, nil
	case bytes.Equal(raw, []byte("true")), bytes.Equal(raw, []byte("false")):
		return string(raw), true, nil
	case isJSONNumber(raw):
		return string(raw), true, nil
	default:
		return "", false, errWrongType
	}
}

// falsy reports empty strings, false and numeric zero, which the source
// treats as blank cells.
func falsy(raw json.RawMessage, text string) bool {
	if text == "" || (text == "false" && !bytes.HasPrefix(bytes.TrimSpace(raw), []byte(`"`))) {
		return true
	}
	if isJSONNumber(raw) {
		f, err := json.Number(text).Float64()
		return err == nil && f == 0
	}
	return false
}

func isJSONNumber(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return false
	}
	c := raw[0]
	return c == '-' || (c >= '0' && c <= '9')
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
