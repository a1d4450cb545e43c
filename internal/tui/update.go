package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case loadedMsg:
		m.presenter.Complete(msg.env, msg.err)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Next):
			m.year, m.month = m.grid().Next()
			m.focus = -1
		case key.Matches(msg, m.keys.Prev):
			m.year, m.month = m.grid().Prev()
			m.focus = -1
		case key.Matches(msg, m.keys.Tab):
			m.moveFocus(1)
		case key.Matches(msg, m.keys.ShiftTab):
			m.moveFocus(-1)
		case key.Matches(msg, m.keys.Enter):
			if id := m.focusedID(); id != "" {
				m.presenter.Click(id)
			}
		case key.Matches(msg, m.keys.Close):
			m.presenter.Close()
		}
	}

	return m, nil
}

func (m *Model) moveFocus(delta int) {
	n := len(m.monthEvents())
	if n == 0 {
		m.focus = -1
		return
	}
	if m.focus < 0 {
		if delta > 0 {
			m.focus = 0
		} else {
			m.focus = n - 1
		}
		return
	}
	m.focus = (m.focus + delta + n) % n
}
