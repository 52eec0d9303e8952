// Package logging builds the slog logger shared by every command.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls SetupLogger.
type Options struct {
	// Verbose lowers the level to debug.
	Verbose bool
	// File enables a rotating log file when non-empty.
	File string
	// Quiet drops the stderr handler, for full-screen terminal mode.
	Quiet bool
	// Stderr overrides os.Stderr. Used by tests.
	Stderr io.Writer
}

// SetupLogger returns the logger and a close function for the log file.
func SetupLogger(opts Options) (*slog.Logger, func() error, error) {
	lvl := slog.LevelWarn
	if opts.Verbose {
		lvl = slog.LevelDebug
	}

	var handlers []slog.Handler
	closeFn := func() error { return nil }

	if opts.File != "" {
		logDir := filepath.Dir(opts.File)
		if logDir != "" && logDir != "." {
			if err := os.MkdirAll(logDir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("create log dir: %w", err)
			}
		}
		fileWriter := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		closeFn = fileWriter.Close
		// The file keeps info records even without --verbose.
		fileLvl := min(lvl, slog.LevelInfo)
		handlers = append(handlers, tint.NewHandler(fileWriter, &tint.Options{
			Level:      fileLvl,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		}))
	}

	if !opts.Quiet {
		w := opts.Stderr
		noColor := os.Getenv("NO_COLOR") != ""
		if w == nil {
			w = os.Stderr
			noColor = noColor || !isatty.IsTerminal(os.Stderr.Fd())
		} else {
			noColor = true
		}
		handlers = append(handlers, tint.NewHandler(w, &tint.Options{
			Level:      lvl,
			TimeFormat: time.TimeOnly,
			NoColor:    noColor,
		}))
	}

	switch len(handlers) {
	case 0:
		return slog.New(slog.DiscardHandler), closeFn, nil
	case 1:
		return slog.New(handlers[0]), closeFn, nil
	}
	return slog.New(&MultiHandler{handlers: handlers}), closeFn, nil
}

// MultiHandler fans records out to several handlers.
type MultiHandler struct {
	handlers []slog.Handler
}

func (m *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *MultiHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, h := range m.handlers {
		if !h.Enabled(ctx, record.Level) {
			continue
		}
		if err := h.Handle(ctx, record.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (m *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		newHandlers[i] = h.WithAttrs(attrs)
	}
	return &MultiHandler{handlers: newHandlers}
}

func (m *MultiHandler) WithGroup(name string) slog.Handler {
	newHandlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		newHandlers[i] = h.WithGroup(name)
	}
	return &MultiHandler{handlers: newHandlers}
}
