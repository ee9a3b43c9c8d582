package textlayout

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/textlayout/atlas"
	"github.com/gogpu/textlayout/shape"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called while another goroutine logs.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for textlayout and its sub-packages
// (atlas, shape). By default nothing is logged. Pass nil to restore the
// silent default.
//
// Log levels used:
//   - [slog.LevelDebug]: cache misses, page allocation, invalidation
//   - [slog.LevelInfo]: engine creation and reloads
//   - [slog.LevelWarn]: degraded results (glyphs dropped from a full atlas,
//     rasterizer failures, font vector overflow)
//
// Example:
//
//	textlayout.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	atlas.SetLogger(l)
	shape.SetLogger(l)
}

// Logger returns the current logger.
// integration/atlastex logs through it.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
