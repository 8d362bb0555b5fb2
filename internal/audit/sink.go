package audit

import (
	"context"
	"log/slog"

	"github.com/vietddude/bizday/internal/infra/store"
)

// Failure describes one failed write attempt.
type Failure struct {
	Attempt int
	Table   string
	Region  string
	Item    store.Item
	Err     error
	Final   bool // no retry follows
}

// Sink receives diagnostics for failed attempts.
type Sink interface {
	Failed(f Failure)
}

// LogSink reports failures through slog.
type LogSink struct {
	log *slog.Logger
}

func NewLogSink(log *slog.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Failed(f Failure) {
	level := slog.LevelWarn
	msg := "Best-effort write failed, retrying"
	if f.Final {
		level = slog.LevelError
		msg = "Best-effort write failed, record dropped"
	}
	s.log.Log(context.Background(), level, msg,
		"attempt", f.Attempt,
		"table", f.Table,
		"region", f.Region,
		"item", f.Item,
		"error", f.Err,
	)
}
