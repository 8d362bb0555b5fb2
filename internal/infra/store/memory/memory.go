package memory

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/vietddude/bizday/internal/infra/store"
)

const defaultPageSize = 100

// Config holds in-memory store settings.
type Config struct {
	PageSize int `yaml:"page_size"`
}

// MemoryStorage is a process-local document store. Scans page through items
// in insertion order and use the offset of the next item as the token.
type MemoryStorage struct {
	tables   map[string][]store.Item
	pageSize int
	mu       sync.RWMutex
}

func NewMemoryStorage(cfg Config) *MemoryStorage {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &MemoryStorage{
		tables:   make(map[string][]store.Item),
		pageSize: pageSize,
	}
}

func tableKey(table, region string) string {
	return fmt.Sprintf("%s/%s", region, table)
}

func (s *MemoryStorage) Scan(ctx context.Context, table, region, token string) (store.Page, error) {
	offset := 0
	if token != "" {
		n, err := strconv.Atoi(token)
		if err != nil || n < 0 {
			return store.Page{}, fmt.Errorf("%w: %q", store.ErrInvalidToken, token)
		}
		offset = n
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.tables[tableKey(table, region)]
	if offset > len(items) {
		return store.Page{}, fmt.Errorf("%w: offset %d past end", store.ErrInvalidToken, offset)
	}

	end := offset + s.pageSize
	if end > len(items) {
		end = len(items)
	}
	page := store.Page{Items: make([]store.Item, 0, end-offset)}
	for _, it := range items[offset:end] {
		page.Items = append(page.Items, copyItem(it))
	}
	if end < len(items) {
		page.Next = strconv.Itoa(end)
	}
	return page, nil
}

func (s *MemoryStorage) Put(ctx context.Context, table, region string, item store.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := tableKey(table, region)
	s.tables[key] = append(s.tables[key], copyItem(item))
	return nil
}

// Len returns the number of items stored for (table, region).
func (s *MemoryStorage) Len(table, region string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tables[tableKey(table, region)])
}

func copyItem(it store.Item) store.Item {
	c := make(store.Item, len(it))
	for k, v := range it {
		c[k] = v
	}
	return c
}
