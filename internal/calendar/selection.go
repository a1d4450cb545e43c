package calendar

import "time"

// Cursor is the pointer shape shown over an element.
type Cursor string

const (
	CursorDefault Cursor = "default"
	CursorPointer Cursor = "pointer"
)

// SelectedEvent is the content of the detail view.
type SelectedEvent struct {
	ID              string
	Title           string
	Start           time.Time
	BackgroundColor string
	Observacion     string
}

// SelectionState is Closed (IsOpen false, Selected nil) or Open.
type SelectionState struct {
	IsOpen   bool
	Selected *SelectedEvent
}

// Click opens the detail view for the event with id. Clicking while open
// replaces the selection. Unknown ids leave the state unchanged.
func (p *Presenter) Click(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, ev := range p.events {
		if ev.ID != id {
			continue
		}
		p.selection = SelectionState{
			IsOpen: true,
			Selected: &SelectedEvent{
				ID:              ev.ID,
				Title:           ev.Title,
				Start:           ev.Day(),
				BackgroundColor: ev.BackgroundColor,
				Observacion:     ev.ExtendedProps.Observacion,
			},
		}
		return true
	}
	return false
}

// Close returns to the Closed state.
func (p *Presenter) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.selection = SelectionState{}
}

// Hover reports the cursor for the element with id. Selection is not affected.
func (p *Presenter) Hover(id string) Cursor {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, ev := range p.events {
		if ev.ID == id {
			return CursorPointer
		}
	}
	return CursorDefault
}

// Selection returns a copy of the selection state.
func (p *Presenter) Selection() SelectionState {
	p.mu.Lock()
	defer p.mu.Unlock()
	st := p.selection
	if st.Selected != nil {
		sel := *st.Selected
		st.Selected = &sel
	}
	return st
}
