package domain

import (
	"fmt"
	"sort"
	"time"
)

const (
	// DateLayout is the canonical text form of a Date.
	DateLayout = "2006-01-02"
	// DateTimeLayout is also accepted at the boundary and truncated to the day.
	DateTimeLayout = "2006-01-02 15:04:05"
)

// Date is a calendar day with no time-of-day component.
// It is stored as midnight UTC so values compare with == and work as map keys.
// The zero Date is unset; 0001-01-01 built by NewDate or ParseDate is not.
type Date struct {
	t   time.Time
	set bool
}

// NewDate builds a Date, normalizing out-of-range months and days the way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), set: true}
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate parses "YYYY-MM-DD" or "YYYY-MM-DD HH:mm:ss".
func ParseDate(s string) (Date, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return DateOf(t), nil
	}
	t, err := time.Parse(DateTimeLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected %s", s, DateLayout)
	}
	return DateOf(t), nil
}

func (d Date) IsZero() bool           { return !d.set }
func (d Date) Time() time.Time        { return d.t }
func (d Date) Year() int              { return d.t.Year() }
func (d Date) Month() time.Month      { return d.t.Month() }
func (d Date) Day() int               { return d.t.Day() }
func (d Date) Weekday() time.Weekday  { return d.t.Weekday() }
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }
func (d Date) After(other Date) bool  { return d.t.After(other.t) }

// AddDays moves the date by n whole days.
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n), set: d.set}
}

// IsWeekend reports whether the date is a Saturday or a Sunday.
func (d Date) IsWeekend() bool {
	wd := d.t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func (d Date) String() string {
	return d.t.Format(DateLayout)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// HolidaySet is an immutable set of holidays for one (table, region) pair.
// The zero value is an empty set.
type HolidaySet struct {
	days map[Date]struct{}
}

// NewHolidaySet builds a set; duplicates collapse.
func NewHolidaySet(dates ...Date) HolidaySet {
	days := make(map[Date]struct{}, len(dates))
	for _, d := range dates {
		days[d] = struct{}{}
	}
	return HolidaySet{days: days}
}

func (h HolidaySet) Contains(d Date) bool {
	_, ok := h.days[d]
	return ok
}

func (h HolidaySet) Len() int {
	return len(h.days)
}

// Dates returns the holidays in ascending order.
func (h HolidaySet) Dates() []Date {
	out := make([]Date, 0, len(h.days))
	for d := range h.days {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
