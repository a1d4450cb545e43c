// Package calendar turns the reservations list into a month calendar with a
// detail view for the selected event.
package calendar

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"reservas/internal/models"
)

// LoadState is the loading state of a presenter.
type LoadState string

const (
	StateLoading     LoadState = "loading"
	StateLoaded      LoadState = "loaded"
	StateLoadedEmpty LoadState = "loaded_empty"
)

// Presenter holds the events of one mount and the selection state.
// A presenter loads once; it is not refreshed.
type Presenter struct {
	api    ReservationsAPI
	theme  Theme
	logger *zerolog.Logger

	mu        sync.Mutex
	state     LoadState
	events    []models.CalendarEvent
	loadErr   error
	selection SelectionState
}

func NewPresenter(api ReservationsAPI, theme Theme, logger *zerolog.Logger) *Presenter {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Presenter{
		api:    api,
		theme:  theme,
		logger: logger,
		state:  StateLoading,
		events: []models.CalendarEvent{},
	}
}

// Mount loads the reservations and completes the presenter.
func (p *Presenter) Mount(ctx context.Context) LoadState {
	p.Complete(p.api.ListReservations(ctx))
	return p.State()
}

// Complete applies the result of the load. Only the first call has an effect.
func (p *Presenter) Complete(env *models.Envelope, err error) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StateLoading {
		return false
	}
	if err != nil || env == nil {
		if err == nil {
			err = errEmptyResponse
		}
		p.logger.Error().Err(err).Msg("failed to load reservations")
		p.loadErr = err
		p.state = StateLoadedEmpty
		return true
	}

	p.events = ToEvents(env.FechasReservadas, p.theme)
	p.state = StateLoaded
	return true
}

func (p *Presenter) State() LoadState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Presenter) IsLoading() bool {
	return p.State() == StateLoading
}

// Events returns a copy of the loaded events.
func (p *Presenter) Events() []models.CalendarEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.CalendarEvent, len(p.events))
	copy(out, p.events)
	return out
}

// Err returns the load failure, if any.
func (p *Presenter) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loadErr
}

// VisibleError is the message to show for a failed load. Empty unless the
// theme enables load errors.
func (p *Presenter) VisibleError() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.loadErr == nil || !p.theme.ShowLoadErrors {
		return ""
	}
	return "No se pudieron cargar las reservas"
}

func (p *Presenter) Theme() Theme {
	return p.theme
}

// Month lays out the loaded events on the grid of the given month.
func (p *Presenter) Month(year int, month time.Month) Month {
	return BuildMonth(year, month, p.theme.WeekStart, p.Events())
}
