package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietddude/bizday/internal/infra/store"
	"github.com/vietddude/bizday/internal/metrics"
)

// =============================================================================
// Mock Scanner
// =============================================================================

type call struct {
	table, region, token string
}

// pagedScanner serves pages[i] for the i-th call. Page i links to page i+1
// with token "page<i+1>"; the last page has no token.
type pagedScanner struct {
	mu     sync.Mutex
	pages  [][]store.Item
	failAt int // 1-based call number that fails, 0 = never
	err    error
	calls  []call
}

func (s *pagedScanner) Scan(ctx context.Context, table, region, token string) (store.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, call{table, region, token})
	n := len(s.calls)
	if s.failAt == n {
		return store.Page{}, s.err
	}

	idx := n - 1
	page := store.Page{Items: s.pages[idx%len(s.pages)]}
	if idx+1 < len(s.pages) {
		page.Next = fmt.Sprintf("page%d", idx+2)
	}
	return page, nil
}

// endlessScanner always returns a continuation token.
type endlessScanner struct {
	calls int
	delay time.Duration
}

func (s *endlessScanner) Scan(ctx context.Context, table, region, token string) (store.Page, error) {
	s.calls++
	time.Sleep(s.delay)
	return store.Page{Items: []store.Item{{"data": "2018-02-12"}}, Next: fmt.Sprintf("p%d", s.calls+1)}, nil
}

func holidayPage(dates ...string) []store.Item {
	items := make([]store.Item, 0, len(dates))
	for _, d := range dates {
		items = append(items, store.Item{"data": d})
	}
	return items
}

// =============================================================================
// Pagination Tests
// =============================================================================

func TestScanAll_ConcatenatesPagesInOrder(t *testing.T) {
	scanner := &pagedScanner{pages: [][]store.Item{
		holidayPage("2018-01-01", "2018-02-12"),
		holidayPage("2018-02-13"),
		holidayPage(),
		holidayPage("2018-03-30", "2018-04-21"),
	}}
	r := New(scanner, Config{})

	items, err := r.ScanAll(context.Background(), "dev_feriado_tb", "sa-east-1")
	require.NoError(t, err)

	var got []string
	for _, it := range items {
		got = append(got, it["data"].(string))
	}
	assert.Equal(t, []string{"2018-01-01", "2018-02-12", "2018-02-13", "2018-03-30", "2018-04-21"}, got)

	require.Len(t, scanner.calls, 4)
	assert.Equal(t, call{"dev_feriado_tb", "sa-east-1", ""}, scanner.calls[0])
	assert.Equal(t, "page2", scanner.calls[1].token)
	assert.Equal(t, "page3", scanner.calls[2].token)
	assert.Equal(t, "page4", scanner.calls[3].token)
}

func TestScanAll_SinglePage(t *testing.T) {
	scanner := &pagedScanner{pages: [][]store.Item{holidayPage("2018-02-12")}}
	items, err := New(scanner, Config{}).ScanAll(context.Background(), "t", "r")
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Len(t, scanner.calls, 1)
}

func TestScanAll_ErrorStopsWalk(t *testing.T) {
	storeErr := errors.New("ProvisionedThroughputExceededException")

	for failAt := 1; failAt <= 3; failAt++ {
		t.Run(fmt.Sprintf("fail on page %d", failAt), func(t *testing.T) {
			scanner := &pagedScanner{
				pages:  [][]store.Item{holidayPage("2018-01-01"), holidayPage("2018-01-02"), holidayPage("2018-01-03")},
				failAt: failAt,
				err:    storeErr,
			}

			items, err := New(scanner, Config{}).ScanAll(context.Background(), "t", "r")
			assert.Nil(t, items)
			assert.Same(t, storeErr, err, "store errors are returned unwrapped")
			assert.Len(t, scanner.calls, failAt, "no scan after the failing one")
		})
	}
}

func TestScanAll_PageLimit(t *testing.T) {
	scanner := &endlessScanner{}
	_, err := New(scanner, Config{MaxPages: 5}).ScanAll(context.Background(), "t", "r")

	assert.ErrorIs(t, err, ErrPageLimit)
	assert.Equal(t, 5, scanner.calls)
}

func TestScanAll_TimeBudget(t *testing.T) {
	scanner := &endlessScanner{delay: 20 * time.Millisecond}
	_, err := New(scanner, Config{ScanTimeout: 50 * time.Millisecond}).ScanAll(context.Background(), "t", "r")

	assert.ErrorIs(t, err, ErrScanBudget)
	assert.Less(t, scanner.calls, 10)
}

// =============================================================================
// Load Tests
// =============================================================================

func TestLoad_BuildsHolidaySet(t *testing.T) {
	scanner := &pagedScanner{pages: [][]store.Item{
		holidayPage("2018-02-12", "2018-02-13 00:00:00"),
		holidayPage("2018-02-12"),
	}}

	set, err := New(scanner, Config{}).Load(context.Background(), "t", "r")
	require.NoError(t, err)

	assert.Equal(t, 2, set.Len())
	var got []string
	for _, d := range set.Dates() {
		got = append(got, d.String())
	}
	assert.Equal(t, []string{"2018-02-12", "2018-02-13"}, got)
}

func TestLoad_CustomDateAttribute(t *testing.T) {
	scanner := &pagedScanner{pages: [][]store.Item{{{"dataFeriado": "2018-11-15", "nome": "Proclamação"}}}}

	set, err := New(scanner, Config{DateAttribute: "dataFeriado"}).Load(context.Background(), "t", "r")
	require.NoError(t, err)
	assert.Equal(t, 1, set.Len())
}

func TestLoad_MalformedItems(t *testing.T) {
	tests := []struct {
		name string
		item store.Item
	}{
		{"missing attribute", store.Item{"nome": "Natal"}},
		{"not a string", store.Item{"data": 20181225}},
		{"bad date", store.Item{"data": "25/12/2018"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scanner := &pagedScanner{pages: [][]store.Item{{tt.item}}}
			_, err := New(scanner, Config{}).Load(context.Background(), "t", "r")
			assert.ErrorIs(t, err, ErrMalformedHoliday)
		})
	}
}

func TestLoad_PropagatesScanError(t *testing.T) {
	storeErr := errors.New("ResourceNotFoundException")
	scanner := &pagedScanner{pages: [][]store.Item{holidayPage()}, failAt: 1, err: storeErr}

	_, err := New(scanner, Config{}).Load(context.Background(), "t", "r")
	assert.Same(t, storeErr, err)
}

// =============================================================================
// Metrics Tests
// =============================================================================

func TestLoad_MetricSeriesIndependentOfTableName(t *testing.T) {
	ctx := context.Background()
	storeErr := errors.New("ResourceNotFoundException")

	for i := 0; i < 200; i++ {
		table := fmt.Sprintf("caller_table_%d", i)
		ok := &pagedScanner{pages: [][]store.Item{holidayPage("2018-02-12")}}
		_, err := New(ok, Config{}).Load(ctx, table, "sa-east-1")
		require.NoError(t, err)

		bad := &pagedScanner{pages: [][]store.Item{holidayPage()}, failAt: 1, err: storeErr}
		_, err = New(bad, Config{}).Load(ctx, table, "sa-east-1")
		require.Error(t, err)
	}

	assert.Equal(t, 1, testutil.CollectAndCount(metrics.ScanPagesTotal))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.HolidaysLoaded))
	assert.LessOrEqual(t, testutil.CollectAndCount(metrics.ScanErrorsTotal), 3)
}
