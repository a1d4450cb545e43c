package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"reservas/internal/calendar"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	theme := m.presenter.Theme()
	title := titleStyle.Render(theme.Title)

	if m.presenter.IsLoading() {
		return lipgloss.JoinVertical(lipgloss.Left, title, loadingStyle.Render("Cargando..."))
	}

	parts := []string{title}
	if msg := m.presenter.VisibleError(); msg != "" {
		parts = append(parts, errorStyle.Render(msg))
	}
	parts = append(parts, m.viewMonth())
	if st := m.presenter.Selection(); st.IsOpen && st.Selected != nil {
		parts = append(parts, m.viewDetail(st.Selected))
	}
	parts = append(parts, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewMonth() string {
	grid := m.grid()
	focused := m.focusedID()

	var rows []string
	rows = append(rows, monthStyle.Render(grid.Title))

	header := make([]string, 0, len(grid.Weekdays))
	for _, wd := range grid.Weekdays {
		header = append(header, weekdayStyle.Render(wd))
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, header...))

	for _, week := range grid.Weeks {
		cells := make([]string, 0, len(week))
		for _, d := range week {
			cells = append(cells, m.viewDay(d, focused))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) viewDay(d calendar.Day, focused string) string {
	lines := []string{fmt.Sprintf("%2d", d.Date.Day())}
	if !d.InMonth {
		return otherMonthStyle.Render(strings.Join(lines, "\n"))
	}

	for _, ev := range d.Events {
		label := truncate(ev.Title, cellWidth-2)
		style := lipgloss.NewStyle().Foreground(termColor(ev.BackgroundColor))
		// Focus stands in for mouse hover.
		if ev.ID == focused && m.presenter.Hover(ev.ID) == calendar.CursorPointer {
			style = focusedStyle
		}
		lines = append(lines, style.Render("• "+label))
	}
	return cellStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) viewDetail(sel *calendar.SelectedEvent) string {
	body := strings.Join([]string{
		lipgloss.NewStyle().Bold(true).Render(sel.Title),
		"Fecha: " + sel.Start.Format("02/01/2006"),
		"Observación: " + sel.Observacion,
		"",
		"esc: Cerrar",
	}, "\n")
	return modalStyle.BorderForeground(termColor(sel.BackgroundColor)).Render(body)
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}
