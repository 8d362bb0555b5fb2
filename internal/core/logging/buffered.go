package logging

import (
	"context"
	"log/slog"
	"sync"
)

// DefaultDebugBuffer is the number of held debug records per process logger.
const DefaultDebugBuffer = 100

// BufferedHandler holds debug records that the wrapped handler would drop and
// writes them out, oldest first, right before the next error record. When the
// hold is full it is emptied and starts over. If the wrapped handler already
// accepts debug, records pass straight through.
type BufferedHandler struct {
	next slog.Handler
	buf  *debugBuffer
}

type heldRecord struct {
	h slog.Handler
	r slog.Record
}

type debugBuffer struct {
	mu      sync.Mutex
	max     int
	records []heldRecord
}

// NewBufferedHandler wraps next. max <= 0 uses DefaultDebugBuffer.
func NewBufferedHandler(next slog.Handler, max int) *BufferedHandler {
	if max <= 0 {
		max = DefaultDebugBuffer
	}
	return &BufferedHandler{next: next, buf: &debugBuffer{max: max}}
}

func (h *BufferedHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level <= slog.LevelDebug || h.next.Enabled(ctx, level)
}

func (h *BufferedHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level <= slog.LevelDebug && !h.next.Enabled(ctx, r.Level) {
		h.buf.hold(h.next, r.Clone())
		return nil
	}
	if r.Level >= slog.LevelError {
		for _, held := range h.buf.drain() {
			if err := held.h.Handle(ctx, held.r); err != nil {
				return err
			}
		}
	}
	if !h.next.Enabled(ctx, r.Level) {
		return nil
	}
	return h.next.Handle(ctx, r)
}

func (h *BufferedHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &BufferedHandler{next: h.next.WithAttrs(attrs), buf: h.buf}
}

func (h *BufferedHandler) WithGroup(name string) slog.Handler {
	return &BufferedHandler{next: h.next.WithGroup(name), buf: h.buf}
}

// Held returns the number of records waiting for an error.
func (h *BufferedHandler) Held() int {
	h.buf.mu.Lock()
	defer h.buf.mu.Unlock()
	return len(h.buf.records)
}

func (b *debugBuffer) hold(h slog.Handler, r slog.Record) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.records) >= b.max {
		b.records = nil
	}
	b.records = append(b.records, heldRecord{h: h, r: r})
}

func (b *debugBuffer) drain() []heldRecord {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.records
	b.records = nil
	return out
}
