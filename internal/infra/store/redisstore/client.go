package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vietddude/bizday/internal/infra/store"
)

const defaultScanCount = 100

// Config holds Redis connection configuration.
type Config struct {
	URL       string `yaml:"url"`
	Password  string `yaml:"password"`
	ScanCount int64  `yaml:"scan_count"`
}

// Client stores each (region, table) as a Redis set of JSON documents.
// Scans use SSCAN, whose cursor is the continuation token.
type Client struct {
	rdb   *redis.Client
	count int64
}

// NewClient creates a new Redis client.
func NewClient(cfg Config) (*Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}

	rdb := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	count := cfg.ScanCount
	if count <= 0 {
		count = defaultScanCount
	}
	return &Client{rdb: rdb, count: count}, nil
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Health pings the server.
func (c *Client) Health(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Key helpers
func setKey(table, region string) string {
	return fmt.Sprintf("docs:%s:%s", region, table)
}

// Scan returns one SSCAN batch. SSCAN may repeat members across batches;
// callers that need uniqueness must dedupe.
func (c *Client) Scan(ctx context.Context, table, region, token string) (store.Page, error) {
	cursor, err := parseCursor(token)
	if err != nil {
		return store.Page{}, err
	}

	members, next, err := c.rdb.SScan(ctx, setKey(table, region), cursor, "", c.count).Result()
	if err != nil {
		return store.Page{}, fmt.Errorf("sscan failed: %w", err)
	}

	page := store.Page{Items: make([]store.Item, 0, len(members))}
	for _, m := range members {
		var it store.Item
		if err := json.Unmarshal([]byte(m), &it); err != nil {
			return store.Page{}, fmt.Errorf("invalid document in %s: %w", setKey(table, region), err)
		}
		page.Items = append(page.Items, it)
	}
	page.Next = formatCursor(next)
	return page, nil
}

// Put adds the JSON-encoded item to the table's set.
func (c *Client) Put(ctx context.Context, table, region string, item store.Item) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}
	if err := c.rdb.SAdd(ctx, setKey(table, region), data).Err(); err != nil {
		return fmt.Errorf("sadd failed: %w", err)
	}
	return nil
}

// parseCursor maps an empty token to the initial cursor 0.
func parseCursor(token string) (uint64, error) {
	if token == "" {
		return 0, nil
	}
	cursor, err := strconv.ParseUint(token, 10, 64)
	if err != nil || cursor == 0 {
		return 0, fmt.Errorf("%w: %q", store.ErrInvalidToken, token)
	}
	return cursor, nil
}

// formatCursor maps the terminal cursor 0 to an empty token.
func formatCursor(cursor uint64) string {
	if cursor == 0 {
		return ""
	}
	return strconv.FormatUint(cursor, 10)
}
