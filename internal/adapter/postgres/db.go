// Package postgres stores analysis reports and failures in PostgreSQL.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the subset of *pgxpool.Pool the repositories use.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const schema = `
CREATE TABLE IF NOT EXISTS seo_reports (
	id          UUID PRIMARY KEY,
	url         TEXT NOT NULL,
	envelope    JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS seo_reports_url_created_idx ON seo_reports (url, created_at DESC);

CREATE TABLE IF NOT EXISTS failed_analyses (
	id               BIGSERIAL PRIMARY KEY,
	url              TEXT NOT NULL UNIQUE,
	kind             TEXT NOT NULL,
	reason           TEXT NOT NULL,
	status_code      INTEGER NOT NULL DEFAULT 0,
	attempts         INTEGER NOT NULL DEFAULT 1,
	last_attempt_at  TIMESTAMPTZ NOT NULL
);`

// Connect opens a pool, checks it and creates the tables if needed.
func Connect(ctx context.Context, connStr string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return pool, nil
}
