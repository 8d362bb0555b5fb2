// Package businessday runs the calculation pipeline: validate the request,
// load the holiday set, then advance the date.
package businessday

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/vietddude/bizday/internal/core/calendar"
	"github.com/vietddude/bizday/internal/core/domain"
	"github.com/vietddude/bizday/internal/core/validation"
	"github.com/vietddude/bizday/internal/metrics"
)

// Mode selects the calculation variant.
type Mode string

const (
	ModeNext     Mode = "next"
	ModeDecendio Mode = "decendio"
)

// HolidayLoader returns the full holiday set of a table.
type HolidayLoader interface {
	Load(ctx context.Context, table, region string) (domain.HolidaySet, error)
}

// Service answers business-day queries. Holidays are loaded fresh on every call.
type Service struct {
	loader HolidayLoader
	log    *slog.Logger
}

func NewService(loader HolidayLoader) *Service {
	return &Service{
		loader: loader,
		log:    slog.Default().With("component", "businessday"),
	}
}

// GetNextBusinessDay returns the dayCount-th business day after date as
// YYYY-MM-DD. Failures are always a *domain.Error.
func (s *Service) GetNextBusinessDay(ctx context.Context, date string, dayCount int, table, region string) (string, error) {
	return s.Calculate(ctx, request(date, dayCount, table, region), ModeNext)
}

// GetNextBusinessDayDecendio is GetNextBusinessDay aligned to the next decendio.
func (s *Service) GetNextBusinessDayDecendio(ctx context.Context, date string, dayCount int, table, region string) (string, error) {
	return s.Calculate(ctx, request(date, dayCount, table, region), ModeDecendio)
}

func request(date string, dayCount int, table, region string) validation.Input {
	return validation.Input{
		Date:      date,
		DayCount:  strconv.Itoa(dayCount),
		TableName: table,
		Region:    region,
	}
}

// Calculate runs the pipeline on raw input. The store is not touched unless
// validation passes.
func (s *Service) Calculate(ctx context.Context, in validation.Input, mode Mode) (string, error) {
	start := time.Now()
	defer func() {
		metrics.CalculationLatency.WithLabelValues(string(mode)).Observe(time.Since(start).Seconds())
	}()

	result, derr := s.calculate(ctx, in, mode)
	if derr != nil {
		metrics.CalculationsTotal.WithLabelValues(string(mode), string(derr.Kind)).Inc()
		s.log.Debug("Calculation failed", "mode", mode, "kind", derr.Kind, "error", derr)
		return "", derr
	}
	metrics.CalculationsTotal.WithLabelValues(string(mode), "ok").Inc()
	return result.String(), nil
}

func (s *Service) calculate(ctx context.Context, in validation.Input, mode Mode) (domain.Date, *domain.Error) {
	if msgs := validation.Validate(in); len(msgs) > 0 {
		return domain.Date{}, domain.NewValidationError(msgs)
	}

	start, err := domain.ParseDate(in.Date)
	if err != nil {
		return domain.Date{}, domain.NewInvalidArgumentError(err)
	}
	dayCount, err := strconv.Atoi(in.DayCount)
	if err != nil {
		return domain.Date{}, domain.NewInvalidArgumentError(err)
	}

	holidays, err := s.loader.Load(ctx, in.TableName, in.Region)
	if err != nil {
		return domain.Date{}, domain.NewRemoteAccessError(err)
	}

	var result domain.Date
	switch mode {
	case ModeDecendio:
		result, err = calendar.NextBusinessDayDecendio(start, dayCount, holidays)
	default:
		result, err = calendar.NextBusinessDay(start, dayCount, holidays)
	}
	if err != nil {
		return domain.Date{}, domain.NewInvalidArgumentError(err)
	}
	return result, nil
}
