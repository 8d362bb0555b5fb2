package calendar

import (
	"sort"
	"time"

	"github.com/rickar/cal/v2"

	"github.com/vietddude/bizday/internal/core/domain"
)

// National holidays observed by Brazilian banks. Carnival is the Tuesday,
// 47 days before Easter.
var nationalHolidays = []*cal.Holiday{
	{Name: "Confraternização Universal", Type: cal.ObservancePublic, Month: time.January, Day: 1, Func: cal.CalcDayOfMonth},
	{Name: "Carnaval", Type: cal.ObservanceBank, Offset: -47, Func: cal.CalcEasterOffset},
	{Name: "Sexta-feira Santa", Type: cal.ObservancePublic, Offset: -2, Func: cal.CalcEasterOffset},
	{Name: "Tiradentes", Type: cal.ObservancePublic, Month: time.April, Day: 21, Func: cal.CalcDayOfMonth},
	{Name: "Dia do Trabalho", Type: cal.ObservancePublic, Month: time.May, Day: 1, Func: cal.CalcDayOfMonth},
	{Name: "Corpus Christi", Type: cal.ObservanceBank, Offset: 60, Func: cal.CalcEasterOffset},
	{Name: "Independência do Brasil", Type: cal.ObservancePublic, Month: time.September, Day: 7, Func: cal.CalcDayOfMonth},
	{Name: "Nossa Senhora Aparecida", Type: cal.ObservancePublic, Month: time.October, Day: 12, Func: cal.CalcDayOfMonth},
	{Name: "Finados", Type: cal.ObservancePublic, Month: time.November, Day: 2, Func: cal.CalcDayOfMonth},
	{Name: "Proclamação da República", Type: cal.ObservancePublic, Month: time.November, Day: 15, Func: cal.CalcDayOfMonth},
	{Name: "Natal", Type: cal.ObservancePublic, Month: time.December, Day: 25, Func: cal.CalcDayOfMonth},
}

// NamedHoliday is a dated holiday ready to be written to a holiday table.
type NamedHoliday struct {
	Date domain.Date
	Name string
}

// NationalHolidays returns the national bank holidays of year, ordered by date.
func NationalHolidays(year int) []NamedHoliday {
	out := make([]NamedHoliday, 0, len(nationalHolidays))
	for _, h := range nationalHolidays {
		actual, _ := h.Calc(year)
		if actual.IsZero() {
			continue
		}
		out = append(out, NamedHoliday{Date: domain.DateOf(actual), Name: h.Name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
