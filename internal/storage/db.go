// Package storage holds the optional Postgres audit log. Runs work fine
// without a database; when one is configured each provider call is recorded.
package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DB struct {
	Pool *pgxpool.Pool
}

func NewDB(ctx context.Context, dsn string) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return &DB{Pool: pool}, nil
}

func (d *DB) Close() {
	if d != nil && d.Pool != nil {
		d.Pool.Close()
	}
}

// EnsureSchema creates the audit table when it does not exist yet.
func (d *DB) EnsureSchema(ctx context.Context) error {
	_, err := d.Pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS generation_calls (
    call_id       uuid PRIMARY KEY,
    run_id        uuid NOT NULL,
    stage         text NOT NULL,
    provider_name text NOT NULL,
    model         text NOT NULL DEFAULT '',
    attempt       int  NOT NULL,
    request_sha   text NOT NULL,
    status        text NOT NULL,
    error_kind    text,
    latency_ms    bigint NOT NULL DEFAULT 0,
    created_at    timestamptz NOT NULL DEFAULT now()
)`)
	if err != nil {
		return fmt.Errorf("ensure audit schema: %w", err)
	}
	return nil
}
