// Package logging builds the slog loggers used by the bpinfer command.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// New creates a configured application logger.
// It writes to Stderr (to keep Stdout for results) through a
// charmbracelet/log handler, and standardizes the "error" key to "err".
func New(level slog.Level) *slog.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, level slog.Level) *slog.Logger {
	h := log.NewWithOptions(w, log.Options{
		Level:           log.Level(level),
		ReportTimestamp: true,
		Prefix:          "bpinfer",
	})

	return slog.New(&renameErr{Handler: h})
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps debug|info|warn|error (case-insensitive) to a slog.Level.
// Unknown names fall back to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// renameErr rewrites the "error" attribute key to "err".
type renameErr struct {
	slog.Handler
}

func (h *renameErr) Handle(ctx context.Context, r slog.Record) error {
	out := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "error" {
			a.Key = "err"
		}
		out.AddAttrs(a)
		return true
	})

	return h.Handler.Handle(ctx, out)
}

func (h *renameErr) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		if a.Key == "error" {
			a.Key = "err"
		}
		out[i] = a
	}

	return &renameErr{Handler: h.Handler.WithAttrs(out)}
}

func (h *renameErr) WithGroup(name string) slog.Handler {
	return &renameErr{Handler: h.Handler.WithGroup(name)}
}
