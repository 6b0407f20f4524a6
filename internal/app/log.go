package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"doby/internal/doby"
)

// dobyHandler is a custom slog.Handler that formats log records as:
//
//	<timestamp>\t<level>\t<message>\t<key=value ...>
type dobyHandler struct {
	w     io.Writer
	level slog.Level
	attrs []slog.Attr
}

func (h *dobyHandler) Enabled(_ context.Context, l slog.Level) bool { return l >= h.level }

func (h *dobyHandler) Handle(_ context.Context, r slog.Record) error {
	ts := r.Time.UTC().Format("2006-01-02T15:04:05Z")

	_, err := fmt.Fprintf(h.w, "%s\t%s\t%s", ts, r.Level.String(), r.Message)
	if err != nil {
		return err
	}

	for _, a := range h.attrs {
		fmt.Fprintf(h.w, "\t%s=%v", a.Key, a.Value)
	}

	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(h.w, "\t%s=%v", a.Key, a.Value)
		return true
	})

	_, err = fmt.Fprintln(h.w)
	return err
}

func (h *dobyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &dobyHandler{
		w:     h.w,
		level: h.level,
		attrs: append(append([]slog.Attr{}, h.attrs...), attrs...),
	}
}

func (h *dobyHandler) WithGroup(string) slog.Handler { return h }

// NewLogger creates a structured logger writing to w. Records below
// level are dropped, keeping successful pipeline runs silent on stderr.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(&dobyHandler{w: w, level: level})
}

// slogAdapter wraps *slog.Logger to satisfy the doby.Logger interface.
type slogAdapter struct {
	l *slog.Logger
}

var _ doby.Logger = (*slogAdapter)(nil)

func (a *slogAdapter) Debug(msg string, args ...any) { a.l.Debug(msg, args...) }
func (a *slogAdapter) Info(msg string, args ...any)  { a.l.Info(msg, args...) }
func (a *slogAdapter) Warn(msg string, args ...any)  { a.l.Warn(msg, args...) }
func (a *slogAdapter) Error(msg string, args ...any) { a.l.Error(msg, args...) }
