package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/vietddude/bizday/internal/infra/store"
)

func TestMemoryStorage_ScanPages(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage(Config{PageSize: 2})

	for i := 0; i < 5; i++ {
		if err := s.Put(ctx, "holidays", "sa-east-1", store.Item{"n": i}); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}
	// Same table name in another region is a different table.
	_ = s.Put(ctx, "holidays", "us-east-1", store.Item{"n": 99})

	var got []int
	token := ""
	pages := 0
	for {
		page, err := s.Scan(ctx, "holidays", "sa-east-1", token)
		if err != nil {
			t.Fatalf("Scan failed: %v", err)
		}
		pages++
		for _, it := range page.Items {
			got = append(got, it["n"].(int))
		}
		if !page.HasMore() {
			break
		}
		token = page.Next
	}

	if pages != 3 {
		t.Errorf("expected 3 pages, got %d", pages)
	}
	if fmt.Sprint(got) != "[0 1 2 3 4]" {
		t.Errorf("unexpected items %v", got)
	}
	if s.Len("holidays", "us-east-1") != 1 {
		t.Errorf("expected region isolation")
	}
}

func TestMemoryStorage_EmptyTable(t *testing.T) {
	s := NewMemoryStorage(Config{})
	page, err := s.Scan(context.Background(), "missing", "sa-east-1", "")
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(page.Items) != 0 || page.HasMore() {
		t.Errorf("expected empty final page, got %+v", page)
	}
}

func TestMemoryStorage_InvalidToken(t *testing.T) {
	s := NewMemoryStorage(Config{})
	for _, token := range []string{"abc", "-1", "10"} {
		_, err := s.Scan(context.Background(), "holidays", "sa-east-1", token)
		if !errors.Is(err, store.ErrInvalidToken) {
			t.Errorf("token %q: expected ErrInvalidToken, got %v", token, err)
		}
	}
}
