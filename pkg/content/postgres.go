package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

type PostgresCache struct {
	conn *pgx.Conn
}

const postgresSchema = `
CREATE TABLE IF NOT EXISTS payloads (
	variant TEXT PRIMARY KEY,
	data BYTEA NOT NULL,
	fetched_at BIGINT NOT NULL
);
`

// NewPostgresCache connects to postgres and ensures the payloads table
// exists. The caller is responsible for calling Close() on the cache.
func NewPostgresCache(ctx context.Context, connStr string) (Cache, error) {
	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	if _, err := conn.Exec(ctx, postgresSchema); err != nil {
		return nil, fmt.Errorf("failed to create payloads table: %v", err)
	}

	return &PostgresCache{
		conn: conn,
	}, nil
}

func (c *PostgresCache) Close(ctx context.Context) error {
	return c.conn.Close(ctx)
}

func (c *PostgresCache) Get(ctx context.Context, variant Variant) (*Payload, error) {
	q := `
	SELECT data, fetched_at FROM payloads WHERE variant = $1;
	`
	var compressed []byte
	var fetchedAt int64
	if err := c.conn.QueryRow(ctx, q, string(variant)).Scan(&compressed, &fetchedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan payload: %v", err)
	}

	return payloadFromRow(variant, compressed, fetchedAt)
}

func (c *PostgresCache) Put(ctx context.Context, payload *Payload) error {
	compressed, err := compressPayload(payload.Data)
	if err != nil {
		return err
	}

	q := `
	INSERT INTO payloads (variant, data, fetched_at) VALUES ($1, $2, $3)
	ON CONFLICT (variant) DO UPDATE SET data = $2, fetched_at = $3;
	`
	if _, err := c.conn.Exec(ctx, q, string(payload.Variant), compressed, payload.FetchedAt.UnixMilli()); err != nil {
		return fmt.Errorf("failed to insert payload: %v", err)
	}

	return nil
}
