package calendar

import "github.com/vietddude/bizday/internal/core/domain"

// Decendio returns which 10-day period of its month d falls in:
// 1 for days 1-10, 2 for days 11-20, 3 for day 21 to the end of the month.
func Decendio(d domain.Date) int {
	switch day := d.Day(); {
	case day <= 10:
		return 1
	case day <= 20:
		return 2
	default:
		return 3
	}
}

// nextDecendioStart is the period-boundary policy used by
// NextBusinessDayDecendio: it rounds d up to the first day of the decendio
// after the one containing d (the 11th, the 21st, or the 1st of the next month).
// It never returns d itself, even when d is the first day of a period.
func nextDecendioStart(d domain.Date) domain.Date {
	switch Decendio(d) {
	case 1:
		return domain.NewDate(d.Year(), d.Month(), 11)
	case 2:
		return domain.NewDate(d.Year(), d.Month(), 21)
	default:
		return domain.NewDate(d.Year(), d.Month()+1, 1)
	}
}
