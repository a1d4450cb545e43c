// Package tui is the terminal rendering of the reservations calendar.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"reservas/internal/calendar"
	"reservas/internal/models"
)

// loadedMsg carries the result of the single reservations fetch.
type loadedMsg struct {
	env *models.Envelope
	err error
}

type Model struct {
	ctx       context.Context
	api       calendar.ReservationsAPI
	presenter *calendar.Presenter
	keys      KeyMap
	help      help.Model

	year  int
	month time.Month
	focus int // index into the visible month's events, -1 for none

	quitting bool
	width    int
	height   int
}

func NewModel(ctx context.Context, api calendar.ReservationsAPI, presenter *calendar.Presenter, year int, month time.Month) Model {
	return Model{
		ctx:       ctx,
		api:       api,
		presenter: presenter,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		year:      year,
		month:     month,
		focus:     -1,
	}
}

// Init starts the fetch. The result is applied to the presenter in Update.
func (m Model) Init() tea.Cmd {
	api, ctx := m.api, m.ctx
	return func() tea.Msg {
		env, err := api.ListReservations(ctx)
		return loadedMsg{env: env, err: err}
	}
}

// Presenter exposes the presenter driving the model.
func (m Model) Presenter() *calendar.Presenter {
	return m.presenter
}

func (m Model) grid() calendar.Month {
	return m.presenter.Month(m.year, m.month)
}

// monthEvents lists the events of the visible month in grid order.
func (m Model) monthEvents() []models.CalendarEvent {
	var out []models.CalendarEvent
	for _, week := range m.grid().Weeks {
		for _, d := range week {
			if d.InMonth {
				out = append(out, d.Events...)
			}
		}
	}
	return out
}

func (m Model) focusedID() string {
	events := m.monthEvents()
	if m.focus < 0 || m.focus >= len(events) {
		return ""
	}
	return events[m.focus].ID
}
