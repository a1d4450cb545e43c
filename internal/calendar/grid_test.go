package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reservas/internal/models"
)

func TestBuildMonth_SundayStart(t *testing.T) {
	events := []models.CalendarEvent{
		{ID: "0", Title: "Store A", Date: "2024-03-05"},
		{ID: "1", Title: "Store B", Date: "2024-03-05"},
		{ID: "2", Title: "Store C", Date: "2024-04-20"},
	}
	m := BuildMonth(2024, time.March, time.Sunday, events)

	assert.Equal(t, "March 2024", m.Title)
	assert.Equal(t, "2024-03", m.Key())
	assert.Equal(t, []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}, m.Weekdays)
	require.Len(t, m.Weeks, 6)

	// March 1st 2024 is a Friday.
	first := m.Weeks[0][5]
	assert.Equal(t, "2024-03-01", first.Key())
	assert.True(t, first.InMonth)
	assert.Equal(t, "2024-02-25", m.Weeks[0][0].Key())
	assert.False(t, m.Weeks[0][0].InMonth)

	mar5 := m.Weeks[1][2]
	assert.Equal(t, "2024-03-05", mar5.Key())
	require.Len(t, mar5.Events, 2)
	assert.Equal(t, "Store A", mar5.Events[0].Title)
	assert.Equal(t, "Store B", mar5.Events[1].Title)

	assert.Equal(t, 2, m.EventCount())
	assert.Equal(t, 31, m.DaysInMonth())
}

func TestBuildMonth_MondayStart(t *testing.T) {
	m := BuildMonth(2024, time.March, time.Monday, nil)
	assert.Equal(t, "Mon", m.Weekdays[0])
	assert.Equal(t, "2024-02-26", m.Weeks[0][0].Key())
	assert.Equal(t, "2024-03-01", m.Weeks[0][4].Key())
}

func TestBuildMonth_EveryDayOnce(t *testing.T) {
	m := BuildMonth(2024, time.February, time.Sunday, nil)
	seen := 0
	for _, week := range m.Weeks {
		for _, d := range week {
			if d.InMonth {
				seen++
			}
		}
	}
	assert.Equal(t, 29, seen)
	assert.Equal(t, 29, m.DaysInMonth())
}

func TestMonth_Navigation(t *testing.T) {
	m := BuildMonth(2024, time.January, time.Sunday, nil)
	y, mo := m.Prev()
	assert.Equal(t, 2023, y)
	assert.Equal(t, time.December, mo)

	m = BuildMonth(2024, time.December, time.Sunday, nil)
	y, mo = m.Next()
	assert.Equal(t, 2025, y)
	assert.Equal(t, time.January, mo)

	m = BuildMonth(2024, 13, time.Sunday, nil)
	assert.Equal(t, "January 2025", m.Title)
}

func TestParseMonth(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	y, m, err := ParseMonth("", now)
	require.NoError(t, err)
	assert.Equal(t, 2024, y)
	assert.Equal(t, time.March, m)

	y, m, err = ParseMonth("2023-11", now)
	require.NoError(t, err)
	assert.Equal(t, 2023, y)
	assert.Equal(t, time.November, m)

	_, _, err = ParseMonth("2023-13", now)
	assert.ErrorIs(t, err, ErrInvalidMonth)

	assert.Equal(t, "2023-01", FormatMonth(2023, time.January))
}

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 29, daysIn(time.February, 2000))
	assert.Equal(t, 28, daysIn(time.February, 1900))
	assert.Equal(t, 30, daysIn(time.April, 2024))
	assert.Equal(t, 31, daysIn(time.July, 2024))
}

func TestPresenter_Month(t *testing.T) {
	p := NewPresenter(new(mockAPI), DefaultTheme(), nil)
	p.Complete(scenarioA(), nil)

	m := p.Month(2024, time.March)
	assert.Equal(t, 1, m.EventCount())
	assert.Equal(t, 0, p.Month(2024, time.April).EventCount())
}
