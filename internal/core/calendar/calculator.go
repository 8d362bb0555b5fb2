// Package calendar implements business-day arithmetic over a holiday set.
//
// A business day is any day that is not a Saturday, not a Sunday and not in
// the supplied HolidaySet. All arithmetic is on whole calendar days.
package calendar

import (
	"fmt"

	"github.com/vietddude/bizday/internal/core/domain"
)

// MaxDayCount is the largest dayCount accepted, roughly twenty years of
// business days. Larger requests are rejected instead of walked.
const MaxDayCount = 5000

// IsBusinessDay reports whether d is neither a weekend day nor a holiday.
func IsBusinessDay(d domain.Date, holidays domain.HolidaySet) bool {
	return !d.IsWeekend() && !holidays.Contains(d)
}

// NextBusinessDay advances start one calendar day at a time and returns the
// dayCount-th business day reached. Days that are not business days are
// skipped and not counted.
//
// A dayCount of zero returns start unchanged, whether or not start is itself a
// business day.
func NextBusinessDay(start domain.Date, dayCount int, holidays domain.HolidaySet) (domain.Date, error) {
	if err := checkArgs(start, dayCount); err != nil {
		return domain.Date{}, err
	}

	current := start
	for counted := 0; counted < dayCount; {
		current = current.AddDays(1)
		if IsBusinessDay(current, holidays) {
			counted++
		}
	}
	return current, nil
}

// NextBusinessDayDecendio advances dayCount business days from start and then
// moves the result into the following decendio, landing on the first business
// day at or after that period's first day. See nextDecendioStart for the
// boundary rule.
func NextBusinessDayDecendio(start domain.Date, dayCount int, holidays domain.HolidaySet) (domain.Date, error) {
	base, err := NextBusinessDay(start, dayCount, holidays)
	if err != nil {
		return domain.Date{}, err
	}
	return FirstBusinessDayFrom(nextDecendioStart(base), holidays), nil
}

// FirstBusinessDayFrom returns d if it is a business day, otherwise the next one.
func FirstBusinessDayFrom(d domain.Date, holidays domain.HolidaySet) domain.Date {
	for !IsBusinessDay(d, holidays) {
		d = d.AddDays(1)
	}
	return d
}

func checkArgs(start domain.Date, dayCount int) error {
	if start.IsZero() {
		return fmt.Errorf("%w: start date is not set", domain.ErrInvalidArgument)
	}
	if dayCount < 0 {
		return fmt.Errorf("%w: day count %d is negative", domain.ErrInvalidArgument, dayCount)
	}
	if dayCount > MaxDayCount {
		return fmt.Errorf("%w: day count %d exceeds %d", domain.ErrInvalidArgument, dayCount, MaxDayCount)
	}
	return nil
}
