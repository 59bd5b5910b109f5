package content

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteCache struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS payloads (
	variant TEXT PRIMARY KEY,
	data BLOB NOT NULL,
	fetched_at INTEGER NOT NULL
);
`

// NewSQLiteCache opens (and if needed creates) a sqlite-backed payload cache
// at path.
func NewSQLiteCache(ctx context.Context, path string) (Cache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return nil, fmt.Errorf("failed to create payloads table: %v", err)
	}

	return &SQLiteCache{
		db: db,
	}, nil
}

func (c *SQLiteCache) Close(ctx context.Context) error {
	return c.db.Close()
}

func (c *SQLiteCache) Get(ctx context.Context, variant Variant) (*Payload, error) {
	q := `
	SELECT data, fetched_at FROM payloads WHERE variant = ?;
	`
	var compressed []byte
	var fetchedAt int64
	if err := c.db.QueryRowContext(ctx, q, string(variant)).Scan(&compressed, &fetchedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan payload: %v", err)
	}

	return payloadFromRow(variant, compressed, fetchedAt)
}

func (c *SQLiteCache) Put(ctx context.Context, payload *Payload) error {
	compressed, err := compressPayload(payload.Data)
	if err != nil {
		return err
	}

	q := `
	INSERT OR REPLACE INTO payloads (variant, data, fetched_at)
	VALUES (?, ?, ?);
	`
	if _, err := c.db.ExecContext(ctx, q, string(payload.Variant), compressed, payload.FetchedAt.UnixMilli()); err != nil {
		return fmt.Errorf("failed to insert payload: %v", err)
	}

	return nil
}
