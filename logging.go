package pathtracer

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record; it is the default logger so library
// code can log unconditionally without a consumer having configured
// anything first.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (h nopHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h nopHandler) WithGroup(string) slog.Handler           { return h }

var logger atomic.Pointer[slog.Logger]

func init() {
	logger.Store(slog.New(nopHandler{}))
}

// SetLogger installs the logger used by the package. Safe to call
// concurrently with rendering; takes effect for subsequent log calls.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	logger.Store(l)
}

func log() *slog.Logger {
	return logger.Load()
}
