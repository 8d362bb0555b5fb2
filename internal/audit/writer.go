// Package audit persists diagnostic records with a bounded, best-effort retry.
//
// Writes never report failure to the caller. Each failed attempt is reported
// to a Sink; after MaxAttempts failures the record is dropped.
package audit

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/vietddude/bizday/internal/core/domain"
	"github.com/vietddude/bizday/internal/infra/store"
	"github.com/vietddude/bizday/internal/metrics"
)

// Config defines retry behavior and the default destination of records.
type Config struct {
	MaxAttempts int           `yaml:"max_attempts"`
	RetryDelay  time.Duration `yaml:"retry_delay"`
	PutTimeout  time.Duration `yaml:"put_timeout"`
	Table       string        `yaml:"table"`
	Region      string        `yaml:"region"`
}

// DefaultConfig provides the standard ceiling of 3 attempts, 500ms apart.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 3,
		RetryDelay:  500 * time.Millisecond,
		PutTimeout:  5 * time.Second,
	}
}

// Scheduler runs f once after d without blocking the caller.
type Scheduler func(d time.Duration, f func())

func timerScheduler(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

// Option configures a Writer.
type Option func(*Writer)

// WithSink replaces the default slog-backed diagnostic sink.
func WithSink(s Sink) Option {
	return func(w *Writer) { w.sink = s }
}

// WithScheduler replaces time.AfterFunc for retry scheduling.
func WithScheduler(s Scheduler) Option {
	return func(w *Writer) { w.schedule = s }
}

// Writer performs best-effort puts. Writes are independent of each other; a
// retry is a new task submitted by a timer, never a blocking loop.
type Writer struct {
	putter   store.Putter
	cfg      Config
	sink     Sink
	schedule Scheduler
	log      *slog.Logger

	ctx      context.Context
	cancel   context.CancelFunc
	mu       sync.Mutex
	closed   bool
	inflight sync.WaitGroup
}

type job struct {
	table   string
	region  string
	item    store.Item
	attempt int
}

// NewWriter creates a Writer. Zero config fields fall back to DefaultConfig.
func NewWriter(putter store.Putter, cfg Config, opts ...Option) *Writer {
	def := DefaultConfig()
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = def.RetryDelay
	}
	if cfg.PutTimeout <= 0 {
		cfg.PutTimeout = def.PutTimeout
	}

	log := slog.Default().With("component", "audit")
	ctx, cancel := context.WithCancel(context.Background())
	w := &Writer{
		putter:   putter,
		cfg:      cfg,
		sink:     NewLogSink(log),
		schedule: timerScheduler,
		log:      log,
		ctx:      ctx,
		cancel:   cancel,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write starts a best-effort put of item and returns immediately.
func (w *Writer) Write(table, region string, item store.Item) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		metrics.WritesDroppedTotal.WithLabelValues("closed").Inc()
		w.log.Warn("Writer closed, record dropped", "table", table, "region", region)
		return
	}
	w.inflight.Add(1)
	w.mu.Unlock()

	go w.run(job{table: table, region: region, item: item, attempt: 1})
}

// WriteRecord writes rec to the configured table and region.
func (w *Writer) WriteRecord(rec domain.DiagnosticRecord) {
	if w.cfg.Table == "" {
		w.log.Warn("No audit table configured, record dropped", "process", rec.Process)
		return
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	w.Write(w.cfg.Table, w.cfg.Region, store.Item(rec.Attributes()))
}

// run makes one attempt. It owns one inflight slot and, on a retryable
// failure, hands a new slot to the scheduled retry before releasing its own.
func (w *Writer) run(j job) {
	defer w.inflight.Done()

	err := w.put(j)
	if err == nil {
		metrics.WriteAttemptsTotal.WithLabelValues("success").Inc()
		return
	}
	metrics.WriteAttemptsTotal.WithLabelValues("failure").Inc()

	final := j.attempt >= w.cfg.MaxAttempts
	w.sink.Failed(Failure{
		Attempt: j.attempt,
		Table:   j.table,
		Region:  j.region,
		Item:    j.item,
		Err:     err,
		Final:   final,
	})
	if final {
		metrics.WritesDroppedTotal.WithLabelValues("exhausted").Inc()
		return
	}

	next := j
	next.attempt++
	w.inflight.Add(1)
	w.schedule(w.cfg.RetryDelay, func() { w.resubmit(next) })
}

func (w *Writer) resubmit(j job) {
	if w.ctx.Err() != nil {
		metrics.WritesDroppedTotal.WithLabelValues("closed").Inc()
		w.log.Warn("Writer closed, pending retry dropped", "table", j.table, "region", j.region, "attempt", j.attempt)
		w.inflight.Done()
		return
	}
	w.run(j)
}

func (w *Writer) put(j job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("put panicked: %v", r)
		}
	}()

	// In-flight attempts finish even after Close; only pending retries are dropped.
	ctx, cancel := context.WithTimeout(context.Background(), w.cfg.PutTimeout)
	defer cancel()
	return w.putter.Put(ctx, j.table, j.region, j.item)
}

// Wait blocks until every write, pending retries included, has finished.
func (w *Writer) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		w.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting writes, drops pending retries and waits for
// in-flight attempts to finish.
func (w *Writer) Close(ctx context.Context) error {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()

	w.cancel()
	if err := w.Wait(ctx); err != nil {
		return fmt.Errorf("audit writer did not drain: %w", err)
	}
	return nil
}
