package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DB struct {
	Pool *pgxpool.Pool
}

func New(ctx context.Context, dsn string) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing database url: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MinConns = 2
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &DB{Pool: pool}, nil
}

func (db *DB) Close() { db.Pool.Close() }

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS quotes (
		id           uuid PRIMARY KEY,
		seq          bigint GENERATED ALWAYS AS IDENTITY,
		owner_id     text NOT NULL,
		quote_number text NOT NULL,
		client_name  text NOT NULL,
		quote_date   text NOT NULL,
		total_cents  bigint NOT NULL,
		payload      jsonb NOT NULL,
		created_at   timestamptz NOT NULL,
		updated_at   timestamptz NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS quotes_owner_created_idx ON quotes (owner_id, created_at DESC)`,
}

// Migrate creates the schema. Statements are idempotent.
func (db *DB) Migrate(ctx context.Context) error {
	for i, stmt := range migrations {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
