// Package store defines the remote document store contract used by the
// holiday registry (paginated scans) and the audit writer (single puts).
package store

import (
	"context"
	"errors"
)

// ErrInvalidToken is returned when a continuation token cannot be decoded.
var ErrInvalidToken = errors.New("invalid continuation token")

// Item is one raw document, keyed by attribute name.
type Item map[string]any

// Page is one scan result. An empty Next means the scan is complete.
type Page struct {
	Items []Item
	Next  string
}

// HasMore reports whether another scan with Next is needed.
func (p Page) HasMore() bool {
	return p.Next != ""
}

// Scanner reads a table one page at a time. An empty token starts a new scan;
// otherwise the scan resumes after the position the token encodes.
type Scanner interface {
	Scan(ctx context.Context, table, region, token string) (Page, error)
}

// Putter writes a single item.
type Putter interface {
	Put(ctx context.Context, table, region string, item Item) error
}

// Client is a store that supports both operations.
type Client interface {
	Scanner
	Putter
}
