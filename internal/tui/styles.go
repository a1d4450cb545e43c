package tui

import "github.com/charmbracelet/lipgloss"

const cellWidth = 14

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	monthStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	weekdayStyle = lipgloss.NewStyle().
			Width(cellWidth).
			Bold(true).
			Foreground(lipgloss.Color("244"))

	cellStyle = lipgloss.NewStyle().
			Width(cellWidth).
			Height(3)

	otherMonthStyle = cellStyle.
			Foreground(lipgloss.Color("240"))

	focusedStyle = lipgloss.NewStyle().
			Reverse(true).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2).
			MarginTop(1)
)

// namedColors maps CSS color names to ANSI colors.
var namedColors = map[string]string{
	"red":    "9",
	"green":  "10",
	"yellow": "11",
	"blue":   "12",
	"purple": "13",
	"orange": "208",
	"gray":   "8",
	"grey":   "8",
	"black":  "0",
	"white":  "15",
}

func termColor(css string) lipgloss.Color {
	if c, ok := namedColors[css]; ok {
		return lipgloss.Color(c)
	}
	return lipgloss.Color(css)
}
