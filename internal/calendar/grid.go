package calendar

import (
	"fmt"
	"time"

	"reservas/internal/models"
)

// weeksShown is the fixed number of grid rows.
const weeksShown = 6

// MonthLayout is the YYYY-MM form used to address a month.
const MonthLayout = "2006-01"

// Day is one cell of the month grid.
type Day struct {
	Date    time.Time
	InMonth bool
	Events  []models.CalendarEvent
}

// Key returns the date as YYYY-MM-DD.
func (d Day) Key() string {
	return d.Date.Format(models.DateLayout)
}

// Month is a month grid starting on WeekStart.
type Month struct {
	Year      int
	Month     time.Month
	Title     string
	WeekStart time.Weekday
	Weekdays  []string
	Weeks     [][]Day
}

// BuildMonth lays out events on the grid of year/month. Days of the adjacent
// months that fill the first and last rows carry their events too. Events on
// the same day keep their list order.
func BuildMonth(year int, month time.Month, weekStart time.Weekday, events []models.CalendarEvent) Month {
	firstDay := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	// Normalize overflowing months such as 13.
	year, month = firstDay.Year(), firstDay.Month()

	offset := (int(firstDay.Weekday()) - int(weekStart) + 7) % 7
	start := firstDay.AddDate(0, 0, -offset)

	byDate := make(map[string][]models.CalendarEvent)
	for _, ev := range events {
		byDate[ev.Date] = append(byDate[ev.Date], ev)
	}

	m := Month{
		Year:      year,
		Month:     month,
		Title:     fmt.Sprintf("%s %d", month.String(), year),
		WeekStart: weekStart,
		Weekdays:  weekdayNames(weekStart),
		Weeks:     make([][]Day, 0, weeksShown),
	}

	for w := 0; w < weeksShown; w++ {
		week := make([]Day, 7)
		for col := 0; col < 7; col++ {
			date := start.AddDate(0, 0, w*7+col)
			week[col] = Day{
				Date:    date,
				InMonth: date.Month() == month,
				Events:  byDate[date.Format(models.DateLayout)],
			}
		}
		m.Weeks = append(m.Weeks, week)
	}
	return m
}

// Key returns the month as YYYY-MM.
func (m Month) Key() string {
	return FormatMonth(m.Year, m.Month)
}

// DaysInMonth returns the number of days of the month.
func (m Month) DaysInMonth() int {
	return daysIn(m.Month, m.Year)
}

// Prev returns the previous month.
func (m Month) Prev() (int, time.Month) {
	if m.Month == time.January {
		return m.Year - 1, time.December
	}
	return m.Year, m.Month - 1
}

// Next returns the following month.
func (m Month) Next() (int, time.Month) {
	if m.Month == time.December {
		return m.Year + 1, time.January
	}
	return m.Year, m.Month + 1
}

// EventCount is the number of events on days of the month itself.
func (m Month) EventCount() int {
	n := 0
	for _, week := range m.Weeks {
		for _, d := range week {
			if d.InMonth {
				n += len(d.Events)
			}
		}
	}
	return n
}

// ParseMonth parses YYYY-MM. An empty string yields the month of now.
func ParseMonth(s string, now time.Time) (int, time.Month, error) {
	if s == "" {
		return now.Year(), now.Month(), nil
	}
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	return t.Year(), t.Month(), nil
}

// FormatMonth renders year/month as YYYY-MM.
func FormatMonth(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

func weekdayNames(weekStart time.Weekday) []string {
	names := make([]string, 7)
	for i := range names {
		names[i] = time.Weekday((int(weekStart) + i) % 7).String()[:3]
	}
	return names
}

func daysIn(m time.Month, year int) int {
	switch m {
	case time.February:
		if (year%4 == 0 && year%100 != 0) || year%400 == 0 {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}
