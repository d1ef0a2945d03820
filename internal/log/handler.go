package log

import (
	"io"
	"log/slog"
	"os"
)

// NewHandler returns a text or json handler writing to w at lvl. A nil w
// means stderr; stdout is reserved for encoded messages.
func NewHandler(w io.Writer, format string, lvl slog.Leveler) slog.Handler {
	if w == nil {
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level:       lvl,
		ReplaceAttr: replaceLevelNames,
	}
	if format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// replaceLevelNames renders LevelTrace as TRACE instead of DEBUG-4.
func replaceLevelNames(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}
	if l, ok := a.Value.Any().(slog.Level); ok {
		a.Value = slog.StringValue(LevelName(l))
	}
	return a
}
