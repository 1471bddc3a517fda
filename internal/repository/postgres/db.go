package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DB struct {
	pool *pgxpool.Pool
}

func NewDB(pool *pgxpool.Pool) *DB {
	return &DB{pool: pool}
}

func (db *DB) Pool() *pgxpool.Pool {
	return db.pool
}

func (db *DB) Close() {
	db.pool.Close()
}

// EnsureSchema creates the inventory tables when they do not exist yet,
// the first-run path of a fresh remote project.
func (db *DB) EnsureSchema(ctx context.Context) error {
	const vehicles = `
		CREATE TABLE IF NOT EXISTS vehicles (
			id          TEXT PRIMARY KEY,
			brand       TEXT NOT NULL,
			model       TEXT NOT NULL,
			year        INT NOT NULL,
			price       NUMERIC NOT NULL,
			km          INT NOT NULL DEFAULT 0,
			color       TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			images      TEXT[] NOT NULL DEFAULT '{}',
			featured    BOOLEAN NOT NULL DEFAULT FALSE,
			status      TEXT NOT NULL DEFAULT 'available',
			created_at  TIMESTAMPTZ NOT NULL,
			updated_at  TIMESTAMPTZ NOT NULL,
			version     BIGINT NOT NULL DEFAULT 1
		)
	`
	const transactions = `
		CREATE TABLE IF NOT EXISTS transactions (
			id         TEXT PRIMARY KEY,
			vehicle_id TEXT NOT NULL REFERENCES vehicles(id),
			type       TEXT NOT NULL,
			amount     NUMERIC NOT NULL,
			date       TIMESTAMPTZ NOT NULL,
			notes      TEXT NOT NULL DEFAULT ''
		)
	`

	if _, err := db.pool.Exec(ctx, vehicles); err != nil {
		return fmt.Errorf("failed to ensure vehicles table: %w", err)
	}
	if _, err := db.pool.Exec(ctx, transactions); err != nil {
		return fmt.Errorf("failed to ensure transactions table: %w", err)
	}
	return nil
}

// Probe is the lightweight reachability and schema check run before
// reconciliation. A failure means the session proceeds local-only.
func (db *DB) Probe(ctx context.Context) error {
	var count int
	if err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM vehicles`).Scan(&count); err != nil {
		return fmt.Errorf("remote probe failed: %w", err)
	}
	return nil
}
