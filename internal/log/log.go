package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
)

var (
	current   atomic.Pointer[slog.Logger]
	level     = new(slog.LevelVar)
	verbosity atomic.Int32
)

func init() {
	Init(VerbosityWarn, "text", os.Stderr)
}

// Init replaces the global logger. The CLI calls it once the configuration
// and flags are resolved.
func Init(v int, format string, w io.Writer) {
	verbosity.Store(int32(v))
	level.Set(VerbosityToLevel(v))
	current.Store(slog.New(NewHandler(w, format, level)))
}

// Error logs at v=0.
func Error(msg string, args ...any) {
	current.Load().Error(msg, args...)
}

// Warn logs at v=1.
func Warn(msg string, args ...any) {
	current.Load().Warn(msg, args...)
}

// Info logs at v=2.
func Info(msg string, args ...any) {
	current.Load().Info(msg, args...)
}

// Debug logs at v=3.
func Debug(msg string, args ...any) {
	current.Load().Debug(msg, args...)
}

// Trace logs at v=4.
func Trace(msg string, args ...any) {
	current.Load().Log(context.Background(), LevelTrace, msg, args...)
}

// V returns the global logger if verbosity is at least v, and a discarding
// logger otherwise. Usage: log.V(3).Info("detailed", "key", value)
func V(v int) *slog.Logger {
	if int(verbosity.Load()) >= v {
		return current.Load()
	}
	return slog.New(slog.DiscardHandler)
}

// Component returns a logger tagged with component=name.
func Component(name string) *slog.Logger {
	return current.Load().With("component", name)
}
