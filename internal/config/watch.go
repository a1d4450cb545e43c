package config

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// CalendarWatcher polls the config file and publishes its calendar section.
// An edit that fails to parse or validate is logged and ignored; the last
// good section stays current.
type CalendarWatcher struct {
	path     string
	interval time.Duration
	logger   *zerolog.Logger
	onUpdate func(CalendarConfig)

	mu      sync.Mutex
	lastMod time.Time
	current CalendarConfig
	loaded  bool
}

func NewCalendarWatcher(path string, interval time.Duration, logger *zerolog.Logger, onUpdate func(CalendarConfig)) *CalendarWatcher {
	if path == "" {
		path = DefaultPath
	}
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &CalendarWatcher{
		path:     path,
		interval: interval,
		logger:   logger,
		onUpdate: onUpdate,
	}
}

// Current returns the last calendar section that passed validation.
func (w *CalendarWatcher) Current() CalendarConfig {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Reload reads the file if it changed since the last attempt. It reports
// whether a new calendar section was published.
func (w *CalendarWatcher) Reload() (bool, error) {
	info, err := os.Stat(w.path)
	if err != nil {
		return false, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.loaded && !info.ModTime().After(w.lastMod) {
		return false, nil
	}
	// A rejected edit is not retried until the file changes again.
	w.lastMod = info.ModTime()

	cfg, err := Load(w.path)
	if err != nil {
		return false, err
	}
	if err := cfg.Calendar.Validate(); err != nil {
		return false, fmt.Errorf("%s: %w", w.path, err)
	}
	if w.loaded && cfg.Calendar == w.current {
		return false, nil
	}

	w.current = cfg.Calendar
	w.loaded = true
	if w.onUpdate != nil {
		w.onUpdate(w.current)
	}
	return true, nil
}

// Start performs the initial load, which must succeed, then polls in the
// background until ctx is done.
func (w *CalendarWatcher) Start(ctx context.Context) error {
	if _, err := w.Reload(); err != nil {
		return err
	}

	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				changed, err := w.Reload()
				if err != nil {
					w.logger.Warn().Err(err).Str("path", w.path).Msg("calendar reload rejected, keeping previous theme")
					continue
				}
				if changed {
					w.logger.Info().Str("path", w.path).Msg("calendar theme reloaded")
				}
			}
		}
	}()
	return nil
}
