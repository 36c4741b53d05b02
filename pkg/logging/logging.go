// Package logging builds the process logger: a text handler on the given
// writer, fanned out with slog-multi to an optional JSON log file and an
// optional systemd journal handler.
package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

// Options selects the log sinks.
type Options struct {
	Level   slog.Level
	File    string // JSON log file, appended to; empty disables it.
	Journal bool   // Also send records to the systemd journal.
}

// Logger owns the handlers of the process logger.
type Logger struct {
	*slog.Logger

	closers []io.Closer
}

// New builds a Logger writing text records to w and to the sinks selected
// in opts. A journal that cannot be reached is reported on w and skipped.
func New(w io.Writer, opts Options) (*Logger, error) {
	hopts := &slog.HandlerOptions{Level: opts.Level}

	terminal := slog.NewTextHandler(w, hopts)
	handlers := []slog.Handler{terminal}

	l := &Logger{}

	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600) //nolint:gosec // path comes from configuration
		if err != nil {
			return nil, fmt.Errorf("logging: open log file: %w", err)
		}
		l.closers = append(l.closers, f)
		handlers = append(handlers, slog.NewJSONHandler(f, hopts))
	}

	if opts.Journal {
		journal, err := slogjournal.NewHandler(&slogjournal.Options{
			Level: opts.Level,
			ReplaceGroup: func(key string) string {
				return journalKey(key)
			},
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				a.Key = journalKey(a.Key)
				return a
			},
		})
		if err != nil {
			record := slog.NewRecord(time.Now(), slog.LevelWarn, "systemd journal unavailable", 0)
			record.Add("error", err)
			_ = terminal.Handle(context.Background(), record)
		} else {
			handlers = append(handlers, journal)
		}
	}

	l.Logger = slog.New(slogmulti.Fanout(handlers...))

	return l, nil
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	var errs []error
	for _, c := range l.closers {
		errs = append(errs, c.Close())
	}
	l.closers = nil
	return errors.Join(errs...)
}

// journalKey maps an attribute key to the journal field alphabet.
func journalKey(key string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, strings.ToUpper(key))
}
