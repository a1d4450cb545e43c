package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"reservas/internal/calendar"
	"reservas/internal/config"
	"reservas/internal/logging"
	"reservas/internal/tui"
)

var CLI struct {
	APIURL    string        `name:"api-url" help:"Base URL of the reservations service." default:"http://127.0.0.1:8080" env:"RESERVAS_API_URL"`
	Month     string        `help:"Month to open, as YYYY-MM. Defaults to the current month."`
	Color     string        `help:"Event color." default:"red"`
	WeekStart string        `name:"week-start" help:"First day of the week (sunday or monday)." default:"sunday" enum:"sunday,monday"`
	Timeout   time.Duration `help:"Request timeout." default:"30s"`
	LogFile   string        `name:"log-file" help:"Write logs to this file." type:"path"`
	LogLevel  string        `name:"log-level" help:"Log level." default:"info" enum:"debug,info,warn,error"`
}

func main() {
	kong.Parse(&CLI,
		kong.Name("calendario"),
		kong.Description("Terminal calendar of store reservations"),
		kong.UsageOnError(),
	)

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	year, month, err := calendar.ParseMonth(CLI.Month, time.Now())
	if err != nil {
		return err
	}

	logger := logging.NewFileOnly(config.LoggingConfig{File: CLI.LogFile, Level: CLI.LogLevel})

	theme := calendar.ThemeFromConfig(config.CalendarConfig{
		EventColor: CLI.Color,
		WeekStart:  CLI.WeekStart,
	})
	client := calendar.NewAPIClient(CLI.APIURL, CLI.Timeout)
	presenter := calendar.NewPresenter(client, theme, &logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := tea.NewProgram(tui.NewModel(ctx, client, presenter, year, month), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
