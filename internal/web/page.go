// Package web renders the reservations calendar as an HTML page.
package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"reservas/internal/calendar"
	"reservas/internal/metrics"
	"reservas/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page serves the month calendar. Every request mounts a fresh presenter.
type Page struct {
	api    calendar.ReservationsAPI
	theme  func() calendar.Theme
	logger *zerolog.Logger
	now    func() time.Time
	tmpl   *template.Template
}

func NewPage(api calendar.ReservationsAPI, theme func() calendar.Theme, logger *zerolog.Logger) (*Page, error) {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	if theme == nil {
		theme = ThemeFunc(calendar.DefaultTheme())
	}
	tmpl, err := template.ParseFS(templateFS, "templates/calendar.html")
	if err != nil {
		return nil, err
	}
	return &Page{
		api:    api,
		theme:  theme,
		logger: logger,
		now:    time.Now,
		tmpl:   tmpl,
	}, nil
}

type eventView struct {
	ID     string
	Title  string
	Color  string
	Cursor string
	Href   string
}

type dayView struct {
	Num     int
	InMonth bool
	Today   bool
	Events  []eventView
}

type detailView struct {
	Title       string
	Date        string
	Color       string
	Observacion string
}

type pageView struct {
	Title     string
	MonthName string
	MonthKey  string
	PrevHref  string
	NextHref  string
	TodayHref string
	CloseHref string
	Weekdays  []string
	Weeks     [][]dayView
	Error     string
	Detail    *detailView
}

func (p *Page) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("page")

	now := p.now()
	year, month, err := calendar.ParseMonth(r.URL.Query().Get("month"), now)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	theme := p.theme()
	presenter := calendar.NewPresenter(p.api, theme, p.logger)
	presenter.Mount(r.Context())

	if id := r.URL.Query().Get("event"); id != "" {
		presenter.Click(id)
	}

	view := p.buildView(presenter, theme, year, month, now)

	var buf bytes.Buffer
	if err := p.tmpl.ExecuteTemplate(&buf, "calendar.html", view); err != nil {
		p.logger.Error().Err(err).Msg("render calendar page")
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (p *Page) buildView(presenter *calendar.Presenter, theme calendar.Theme, year int, month time.Month, now time.Time) pageView {
	grid := presenter.Month(year, month)
	monthKey := grid.Key()
	py, pm := grid.Prev()
	ny, nm := grid.Next()

	view := pageView{
		Title:     theme.Title,
		MonthName: grid.Title,
		MonthKey:  monthKey,
		PrevHref:  monthHref(calendar.FormatMonth(py, pm)),
		NextHref:  monthHref(calendar.FormatMonth(ny, nm)),
		TodayHref: monthHref(calendar.FormatMonth(now.Year(), now.Month())),
		CloseHref: monthHref(monthKey),
		Weekdays:  grid.Weekdays,
		Error:     presenter.VisibleError(),
	}

	today := now.Format(models.DateLayout)
	for _, week := range grid.Weeks {
		days := make([]dayView, 0, len(week))
		for _, d := range week {
			dv := dayView{Num: d.Date.Day(), InMonth: d.InMonth, Today: d.Key() == today}
			for _, ev := range d.Events {
				dv.Events = append(dv.Events, eventView{
					ID:     ev.ID,
					Title:  ev.Title,
					Color:  ev.BackgroundColor,
					Cursor: string(presenter.Hover(ev.ID)),
					Href:   eventHref(monthKey, ev.ID),
				})
			}
			days = append(days, dv)
		}
		view.Weeks = append(view.Weeks, days)
	}

	if st := presenter.Selection(); st.IsOpen && st.Selected != nil {
		view.Detail = &detailView{
			Title:       st.Selected.Title,
			Date:        st.Selected.Start.Format("02/01/2006"),
			Color:       st.Selected.BackgroundColor,
			Observacion: st.Selected.Observacion,
		}
	}
	return view
}

func monthHref(key string) string {
	return "?" + url.Values{"month": {key}}.Encode()
}

func eventHref(monthKey, id string) string {
	return "?" + url.Values{"month": {monthKey}, "event": {id}}.Encode()
}

// ThemeFunc returns a theme getter for a fixed theme.
func ThemeFunc(t calendar.Theme) func() calendar.Theme {
	return func() calendar.Theme { return t }
}
