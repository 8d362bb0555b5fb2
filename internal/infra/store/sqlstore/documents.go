package sqlstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/vietddude/bizday/internal/infra/store"
)

// DocumentRepo implements store.Client over the documents table. Ids are
// UUIDv7, so keyset pagination on id follows insertion order; the token is
// the last id of the previous page.
type DocumentRepo struct {
	db *DB
}

// NewDocumentRepo creates a new SQL document repository.
func NewDocumentRepo(db *DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

type documentRow struct {
	ID   string `db:"id"`
	Body string `db:"body"`
}

// Scan returns up to pageSize documents after token.
func (r *DocumentRepo) Scan(ctx context.Context, table, region, token string) (store.Page, error) {
	query := r.db.Rebind(`
		SELECT id, body
		FROM documents
		WHERE table_name = ? AND region = ? AND id > ?
		ORDER BY id
		LIMIT ?
	`)

	// One extra row tells us whether another page exists.
	var rows []documentRow
	if err := r.db.SelectContext(ctx, &rows, query, table, region, token, r.db.pageSize+1); err != nil {
		return store.Page{}, fmt.Errorf("failed to scan documents: %w", err)
	}

	var page store.Page
	if len(rows) > r.db.pageSize {
		rows = rows[:r.db.pageSize]
		page.Next = rows[len(rows)-1].ID
	}

	page.Items = make([]store.Item, 0, len(rows))
	for _, row := range rows {
		var it store.Item
		if err := json.Unmarshal([]byte(row.Body), &it); err != nil {
			return store.Page{}, fmt.Errorf("invalid document %s: %w", row.ID, err)
		}
		page.Items = append(page.Items, it)
	}
	return page, nil
}

// Put inserts item as a new document.
func (r *DocumentRepo) Put(ctx context.Context, table, region string, item store.Item) error {
	body, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate document id: %w", err)
	}

	query := r.db.Rebind(`
		INSERT INTO documents (id, table_name, region, body)
		VALUES (?, ?, ?, ?)
	`)
	if _, err := r.db.ExecContext(ctx, query, id.String(), table, region, string(body)); err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}
	return nil
}
