// Package registry loads holiday sets from a paginated document store.
package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vietddude/bizday/internal/core/domain"
	"github.com/vietddude/bizday/internal/infra/store"
	"github.com/vietddude/bizday/internal/metrics"
)

var (
	// ErrPageLimit is returned when a scan does not finish within MaxPages pages.
	ErrPageLimit = errors.New("scan exceeded page limit")

	// ErrScanBudget is returned when a scan does not finish within ScanTimeout.
	ErrScanBudget = errors.New("scan exceeded time budget")

	// ErrMalformedHoliday is returned when a holiday item has no usable date.
	ErrMalformedHoliday = errors.New("malformed holiday item")
)

// Config bounds the pagination walk and names the date attribute of holiday items.
type Config struct {
	MaxPages      int           `yaml:"max_pages"`
	ScanTimeout   time.Duration `yaml:"scan_timeout"`
	DateAttribute string        `yaml:"date_attribute"`
}

// DefaultConfig returns the limits used when none are configured.
func DefaultConfig() Config {
	return Config{
		MaxPages:      1000,
		ScanTimeout:   30 * time.Second,
		DateAttribute: "data",
	}
}

// Registry reads holiday tables. It holds no state between calls; every
// Load re-scans the table in full.
type Registry struct {
	scanner store.Scanner
	cfg     Config
	log     *slog.Logger
}

// New creates a Registry. Zero config fields fall back to DefaultConfig.
func New(scanner store.Scanner, cfg Config) *Registry {
	def := DefaultConfig()
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = def.MaxPages
	}
	if cfg.ScanTimeout <= 0 {
		cfg.ScanTimeout = def.ScanTimeout
	}
	if cfg.DateAttribute == "" {
		cfg.DateAttribute = def.DateAttribute
	}
	return &Registry{
		scanner: scanner,
		cfg:     cfg,
		log:     slog.Default().With("component", "registry"),
	}
}

// ScanAll follows continuation tokens until a page arrives without one and
// returns every item in page order. Pages are fetched strictly in sequence.
// A scan error aborts the walk and is returned as is, with no partial result.
func (r *Registry) ScanAll(ctx context.Context, table, region string) ([]store.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ScanTimeout)
	defer cancel()

	var items []store.Item
	token := ""
	for pages := 0; ; pages++ {
		if pages >= r.cfg.MaxPages {
			metrics.ScanErrorsTotal.WithLabelValues("page_limit").Inc()
			return nil, fmt.Errorf("%w: %s/%s after %d pages", ErrPageLimit, region, table, pages)
		}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			metrics.ScanErrorsTotal.WithLabelValues("time_budget").Inc()
			return nil, fmt.Errorf("%w: %s/%s after %d pages", ErrScanBudget, region, table, pages)
		}

		page, err := r.scanner.Scan(ctx, table, region, token)
		if err != nil {
			metrics.ScanErrorsTotal.WithLabelValues("store").Inc()
			r.log.Debug("Scan aborted", "table", table, "region", region, "page", pages+1, "error", err)
			return nil, err
		}
		metrics.ScanPagesTotal.Inc()

		items = append(items, page.Items...)
		if !page.HasMore() {
			r.log.Debug("Scan complete", "table", table, "region", region, "pages", pages+1, "items", len(items))
			return items, nil
		}
		token = page.Next
	}
}

// Load returns the holiday set held in (table, region).
func (r *Registry) Load(ctx context.Context, table, region string) (domain.HolidaySet, error) {
	items, err := r.ScanAll(ctx, table, region)
	if err != nil {
		return domain.HolidaySet{}, err
	}

	dates := make([]domain.Date, 0, len(items))
	for i, it := range items {
		d, err := r.holidayDate(it)
		if err != nil {
			return domain.HolidaySet{}, fmt.Errorf("%w: item %d of %s: %v", ErrMalformedHoliday, i, table, err)
		}
		dates = append(dates, d)
	}

	set := domain.NewHolidaySet(dates...)
	metrics.HolidaysLoaded.Observe(float64(set.Len()))
	return set, nil
}

func (r *Registry) holidayDate(it store.Item) (domain.Date, error) {
	raw, ok := it[r.cfg.DateAttribute]
	if !ok {
		return domain.Date{}, fmt.Errorf("missing attribute %q", r.cfg.DateAttribute)
	}
	s, ok := raw.(string)
	if !ok {
		return domain.Date{}, fmt.Errorf("attribute %q is %T, not a string", r.cfg.DateAttribute, raw)
	}
	return domain.ParseDate(s)
}
