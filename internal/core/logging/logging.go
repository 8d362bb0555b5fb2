// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/vietddude/stylelog"

	"github.com/vietddude/bizday/internal/core/config"
)

// ParseLevel maps a config level name to a slog level. Unknown names are Info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
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

// Setup installs the default logger. Text output goes through stylelog's
// colored tint handler; json writes one object per line to stderr.
func Setup(cfg config.LoggingConfig, debug bool) {
	level := ParseLevel(cfg.Level)
	if debug {
		level = slog.LevelDebug
	}

	if strings.EqualFold(cfg.Format, "json") {
		slog.SetDefault(slog.New(NewJSONHandler(os.Stderr, level)))
		return
	}

	stylelog.InitDefault(&tint.Options{
		Level:      level,
		TimeFormat: time.RFC3339,
	})
}

// NewJSONHandler returns the handler used for json output.
func NewJSONHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
}

// ForProcess returns a logger tagged with the calling process name, matching
// the process field of diagnostic records. Debug records below the default
// level are held and written just before the next error from the same logger.
func ForProcess(name string) *slog.Logger {
	h := NewBufferedHandler(slog.Default().Handler(), DefaultDebugBuffer)
	return slog.New(h).With("process", name)
}
