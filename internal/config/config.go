package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Source kinds.
const (
	SourceScript = "script"
	SourceSheets = "sheets"
)

// Defaults applied by Load.
const (
	DefaultPath        = "configs/config.yaml"
	DefaultListen      = ":8080"
	DefaultTitle       = "Calendario de Reservas"
	DefaultEventColor  = "red"
	DefaultPlaceholder = "Sin observación"
	DefaultWeekStart   = "sunday"
	DefaultSheetsRange = "A:C"
)

type Config struct {
	Server struct {
		Listen                   string `yaml:"listen"`
		BaseURL                  string `yaml:"base_url"`
		ReadHeaderTimeoutSeconds int    `yaml:"read_header_timeout_seconds"`
	} `yaml:"server"`

	Source SourceConfig `yaml:"source"`

	Redis struct {
		Address         string `yaml:"address"`
		Password        string `yaml:"password"`
		DB              int    `yaml:"db"`
		CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
	} `yaml:"redis"`

	RateLimit struct {
		RequestsPerSecond float64 `yaml:"requests_per_second"`
		Burst             int     `yaml:"burst"`
	} `yaml:"rate_limit"`

	Calendar CalendarConfig `yaml:"calendar"`

	Monitoring struct {
		HealthCheckPort   int  `yaml:"health_check_port"`
		PrometheusEnabled bool `yaml:"prometheus_enabled"`
		PrometheusPort    int  `yaml:"prometheus_port"`
	} `yaml:"monitoring"`

	Logging LoggingConfig `yaml:"logging"`
}

// SourceConfig describes where reservations are read from.
type SourceConfig struct {
	Kind           string `yaml:"kind"`
	URL            string `yaml:"url"`
	Timezone       string `yaml:"timezone"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	UserAgent      string `yaml:"user_agent"`

	Sheets struct {
		SpreadsheetID   string `yaml:"spreadsheet_id"`
		Range           string `yaml:"range"`
		APIKey          string `yaml:"api_key"`
		CredentialsFile string `yaml:"credentials_file"`
	} `yaml:"sheets"`
}

// CalendarConfig is the presentation theme. It can be reloaded at runtime.
type CalendarConfig struct {
	Title          string `yaml:"title"`
	EventColor     string `yaml:"event_color"`
	Placeholder    string `yaml:"placeholder"`
	WeekStart      string `yaml:"week_start"`
	ShowLoadErrors bool   `yaml:"show_load_errors"`
}

type LoggingConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(data)
}

// Parse decodes YAML config, expanding ${ENV_VAR} placeholders and applying defaults.
func Parse(data []byte) (*Config, error) {
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Listen == "" {
		c.Server.Listen = DefaultListen
	}
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = baseURLFromListen(c.Server.Listen)
	}
	c.Server.BaseURL = strings.TrimRight(c.Server.BaseURL, "/")
	if c.Server.ReadHeaderTimeoutSeconds <= 0 {
		c.Server.ReadHeaderTimeoutSeconds = 10
	}

	if c.Source.Kind == "" {
		c.Source.Kind = SourceScript
	}
	if c.Source.Timezone == "" {
		c.Source.Timezone = "UTC"
	}
	if c.Source.Sheets.Range == "" {
		c.Source.Sheets.Range = DefaultSheetsRange
	}

	c.Calendar.applyDefaults()

	if c.RateLimit.RequestsPerSecond > 0 && c.RateLimit.Burst <= 0 {
		c.RateLimit.Burst = int(c.RateLimit.RequestsPerSecond)
		if c.RateLimit.Burst < 1 {
			c.RateLimit.Burst = 1
		}
	}

	if c.Monitoring.HealthCheckPort == 0 {
		c.Monitoring.HealthCheckPort = 8090
	}
	if c.Monitoring.PrometheusPort == 0 {
		c.Monitoring.PrometheusPort = 9090
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

func (c *CalendarConfig) applyDefaults() {
	if c.Title == "" {
		c.Title = DefaultTitle
	}
	if c.EventColor == "" {
		c.EventColor = DefaultEventColor
	}
	if c.Placeholder == "" {
		c.Placeholder = DefaultPlaceholder
	}
	if c.WeekStart == "" {
		c.WeekStart = DefaultWeekStart
	}
	c.WeekStart = strings.ToLower(c.WeekStart)
}

// Validate reports configuration that would only fail at the first request.
func (c *Config) Validate() error {
	var errs []error

	switch c.Source.Kind {
	case SourceScript:
		if c.Source.URL == "" {
			errs = append(errs, errors.New("source.url is required for the script source"))
		} else if !strings.HasPrefix(c.Source.URL, "http://") && !strings.HasPrefix(c.Source.URL, "https://") {
			errs = append(errs, fmt.Errorf("source.url must be an http(s) URL, got %q", c.Source.URL))
		}
	case SourceSheets:
		if c.Source.Sheets.SpreadsheetID == "" {
			errs = append(errs, errors.New("source.sheets.spreadsheet_id is required for the sheets source"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown source.kind %q", c.Source.Kind))
	}

	if _, err := time.LoadLocation(c.Source.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("source.timezone: %w", err))
	}
	if c.Source.TimeoutSeconds < 0 {
		errs = append(errs, errors.New("source.timeout_seconds must not be negative"))
	}

	if err := c.Calendar.Validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Validate checks the calendar section on its own, so a hot reload can
// reject it without touching the rest of the file.
func (c CalendarConfig) Validate() error {
	switch c.WeekStart {
	case "monday", "sunday":
		return nil
	default:
		return fmt.Errorf("calendar.week_start must be monday or sunday, got %q", c.WeekStart)
	}
}

// SourceTimeout returns the outbound request timeout. Zero means no timeout.
func (c *Config) SourceTimeout() time.Duration {
	if c.Source.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.Source.TimeoutSeconds) * time.Second
}

// SourceLocation returns the zone used to pick the calendar date of an instant.
func (c *Config) SourceLocation() *time.Location {
	loc, err := time.LoadLocation(c.Source.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) CacheTTL() time.Duration {
	if c.Redis.Address == "" || c.Redis.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.Redis.CacheTTLSeconds) * time.Second
}

func (c *Config) ReadHeaderTimeout() time.Duration {
	return time.Duration(c.Server.ReadHeaderTimeoutSeconds) * time.Second
}

func baseURLFromListen(listen string) string {
	host, port, err := net.SplitHostPort(listen)
	if err != nil {
		return "http://127.0.0.1:8080"
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, port)
}
