package models

import "time"

// DateLayout is the canonical calendar date format.
const DateLayout = "2006-01-02"

// EventProps holds the non-standard fields of a calendar event.
type EventProps struct {
	Observacion string `json:"observacion"`
}

// CalendarEvent is a reservation prepared for display on the month grid.
type CalendarEvent struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Date            string     `json:"date"` // Format: YYYY-MM-DD
	BackgroundColor string     `json:"backgroundColor,omitempty"`
	ExtendedProps   EventProps `json:"extendedProps"`
}

// Day parses the event date. The zero time is returned for malformed dates.
func (e CalendarEvent) Day() time.Time {
	t, err := time.Parse(DateLayout, e.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// OnDate reports whether the event falls on the given calendar date.
func (e CalendarEvent) OnDate(date time.Time) bool {
	return e.Date == date.Format(DateLayout)
}
