package calendar

import (
	"strconv"
	"strings"
	"time"

	"reservas/internal/config"
	"reservas/internal/models"
)

// Theme controls how reservations are presented.
type Theme struct {
	Title          string
	EventColor     string
	Placeholder    string
	WeekStart      time.Weekday
	ShowLoadErrors bool
}

// ThemeFromConfig converts the calendar config section. Unset values take defaults.
func ThemeFromConfig(cfg config.CalendarConfig) Theme {
	t := Theme{
		Title:          cfg.Title,
		EventColor:     cfg.EventColor,
		Placeholder:    cfg.Placeholder,
		WeekStart:      time.Sunday,
		ShowLoadErrors: cfg.ShowLoadErrors,
	}
	if strings.EqualFold(cfg.WeekStart, "monday") {
		t.WeekStart = time.Monday
	}
	if t.Title == "" {
		t.Title = config.DefaultTitle
	}
	if t.EventColor == "" {
		t.EventColor = config.DefaultEventColor
	}
	if t.Placeholder == "" {
		t.Placeholder = config.DefaultPlaceholder
	}
	return t
}

// DefaultTheme is the theme of an empty calendar config.
func DefaultTheme() Theme {
	return ThemeFromConfig(config.CalendarConfig{})
}

// ToEvents maps reservations to calendar events in list order. Event ids are
// the positions in the list.
func ToEvents(list []models.ReservationDate, theme Theme) []models.CalendarEvent {
	events := make([]models.CalendarEvent, 0, len(list))
	for i, r := range list {
		events = append(events, models.CalendarEvent{
			ID:              strconv.Itoa(i),
			Title:           r.Tienda,
			Date:            r.Fecha,
			BackgroundColor: theme.EventColor,
			ExtendedProps: models.EventProps{
				Observacion: r.ObservacionOr(theme.Placeholder),
			},
		})
	}
	return events
}
