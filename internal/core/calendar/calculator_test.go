package calendar

import (
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietddude/bizday/internal/core/domain"
)

func date(t *testing.T, s string) domain.Date {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}

func holidays(t *testing.T, days ...string) domain.HolidaySet {
	t.Helper()
	dates := make([]domain.Date, 0, len(days))
	for _, s := range days {
		dates = append(dates, date(t, s))
	}
	return domain.NewHolidaySet(dates...)
}

func TestNextBusinessDay(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		count    int
		holidays []string
		want     string
	}{
		{"friday plus two skips weekend", "2018-02-09", 2, nil, "2018-02-13"},
		{"holiday monday is not counted", "2018-02-09", 2, []string{"2018-02-12"}, "2018-02-14"},
		{"zero on business day", "2018-02-09", 0, nil, "2018-02-09"},
		{"zero on saturday stays put", "2018-02-10", 0, nil, "2018-02-10"},
		{"zero on holiday stays put", "2018-02-12", 0, []string{"2018-02-12"}, "2018-02-12"},
		{"start on sunday", "2018-02-11", 1, nil, "2018-02-12"},
		{"start on holiday", "2018-02-12", 1, []string{"2018-02-12"}, "2018-02-13"},
		{"consecutive holidays", "2018-02-09", 1, []string{"2018-02-12", "2018-02-13", "2018-02-14"}, "2018-02-15"},
		{"across year end", "2018-12-28", 2, []string{"2018-12-31", "2019-01-01"}, "2019-01-03"},
		{"full week", "2018-02-05", 5, nil, "2018-02-12"},
		{"holiday on weekend changes nothing", "2018-02-09", 1, []string{"2018-02-10"}, "2018-02-12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextBusinessDay(date(t, tt.start), tt.count, holidays(t, tt.holidays...))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestNextBusinessDay_InvalidArgument(t *testing.T) {
	_, err := NextBusinessDay(date(t, "2018-02-09"), -1, domain.HolidaySet{})
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))

	_, err = NextBusinessDay(domain.Date{}, 1, domain.HolidaySet{})
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))

	_, err = NextBusinessDayDecendio(date(t, "2018-02-09"), -3, domain.HolidaySet{})
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
}

func TestNextBusinessDay_DayCountCap(t *testing.T) {
	got, err := NextBusinessDay(date(t, "2018-02-09"), MaxDayCount, domain.HolidaySet{})
	require.NoError(t, err)
	assert.True(t, got.After(date(t, "2037-01-01")))

	for _, n := range []int{MaxDayCount + 1, math.MaxInt} {
		_, err := NextBusinessDay(date(t, "2018-02-09"), n, domain.HolidaySet{})
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)

		_, err = NextBusinessDayDecendio(date(t, "2018-02-09"), n, domain.HolidaySet{})
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	}
}

func TestNextBusinessDay_FirstRepresentableDay(t *testing.T) {
	// 0001-01-01 is a Monday.
	got, err := NextBusinessDay(date(t, "0001-01-01"), 1, domain.HolidaySet{})
	require.NoError(t, err)
	assert.Equal(t, "0001-01-02", got.String())
}

// randomHolidays marks roughly a third of the days following start as holidays.
func randomHolidays(r *rand.Rand, start domain.Date) domain.HolidaySet {
	var dates []domain.Date
	for i := -5; i < 90; i++ {
		if r.Intn(3) == 0 {
			dates = append(dates, start.AddDays(i))
		}
	}
	return domain.NewHolidaySet(dates...)
}

func TestNextBusinessDay_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	base := domain.NewDate(2018, time.January, 1)

	for i := 0; i < 500; i++ {
		start := base.AddDays(r.Intn(365 * 10))
		hs := randomHolidays(r, start)

		// n = 1 is the earliest later date that is a business day.
		want := start.AddDays(1)
		for want.IsWeekend() || hs.Contains(want) {
			want = want.AddDays(1)
		}
		got, err := NextBusinessDay(start, 1, hs)
		require.NoError(t, err)
		require.Equal(t, want, got, "start %s", start)

		if IsBusinessDay(start, hs) {
			zero, err := NextBusinessDay(start, 0, hs)
			require.NoError(t, err)
			require.Equal(t, start, zero)
		}

		prev, err := NextBusinessDay(start, 0, hs)
		require.NoError(t, err)
		for n := 1; n <= 15; n++ {
			next, err := NextBusinessDay(start, n, hs)
			require.NoError(t, err)
			require.True(t, next.After(prev), "not monotonic at n=%d from %s", n, start)
			require.NotEqual(t, start, next)
			require.True(t, IsBusinessDay(next, hs))
			prev = next
		}
	}
}

func TestNationalHolidays(t *testing.T) {
	got := NationalHolidays(2018)
	require.Len(t, got, 11)

	byName := make(map[string]string, len(got))
	for _, h := range got {
		byName[h.Name] = h.Date.String()
	}
	assert.Equal(t, "2018-01-01", got[0].Date.String())
	assert.Equal(t, "2018-12-25", got[len(got)-1].Date.String())
	assert.Equal(t, "2018-02-13", byName["Carnaval"])
	assert.Equal(t, "2018-03-30", byName["Sexta-feira Santa"])
	assert.Equal(t, "2018-05-31", byName["Corpus Christi"])
	assert.Equal(t, "2018-11-15", byName["Proclamação da República"])

	for i := 1; i < len(got); i++ {
		assert.True(t, got[i-1].Date.Before(got[i].Date))
	}
}
