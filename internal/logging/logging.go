package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"reservas/internal/config"
)

// New builds the process logger: console output on stdout plus an optional
// rotating file.
func New(cfg config.LoggingConfig) zerolog.Logger {
	var writers []io.Writer
	writers = append(writers, zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	if cfg.File != "" {
		writers = append(writers, fileWriter(cfg))
	}
	return newLogger(io.MultiWriter(writers...), cfg.Level)
}

// NewFileOnly logs to the configured file and nowhere else. Used by the
// terminal client, which owns the screen. Without a file the logger is silent.
func NewFileOnly(cfg config.LoggingConfig) zerolog.Logger {
	if cfg.File == "" {
		return zerolog.Nop()
	}
	return newLogger(fileWriter(cfg), cfg.Level)
}

func newLogger(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(w).Level(ParseLevel(level)).With().Timestamp().Logger()
}

func fileWriter(cfg config.LoggingConfig) io.Writer {
	maxSize := cfg.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 10 // megabytes
	}
	maxBackups := cfg.MaxBackups
	if maxBackups <= 0 {
		maxBackups = 3
	}
	maxAge := cfg.MaxAgeDays
	if maxAge <= 0 {
		maxAge = 28
	}
	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		MaxAge:     maxAge,
		Compress:   true,
	}
}

// ParseLevel maps a config level to zerolog, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
