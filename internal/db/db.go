// Package db provides PostgreSQL database access for idea storage.
package db

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/singleflight"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool

	// schemaReady memoizes a successful EnsureSchema for the process
	// lifetime. The DDL is idempotent, so a racing duplicate run is
	// harmless; the flag only avoids redundant statements per request.
	schemaReady atomic.Bool
	schemaGroup singleflight.Group
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the ideas table and its index if absent. Safe to call
// on every request; concurrent first calls collapse into one DDL run.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if db.schemaReady.Load() {
		return nil
	}

	_, err, _ := db.schemaGroup.Do("schema", func() (any, error) {
		if err := db.createSchema(ctx); err != nil {
			return nil, err
		}
		db.schemaReady.Store(true)
		return nil, nil
	})
	return err
}

func (db *DB) createSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS ideas (
			id BIGSERIAL PRIMARY KEY,
			idea_text VARCHAR(180) NOT NULL,
			rating VARCHAR(20) NOT NULL,
			rating_note VARCHAR(160) NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		// Older deployments predate the note column.
		`ALTER TABLE ideas
			ADD COLUMN IF NOT EXISTS rating_note VARCHAR(160) NOT NULL DEFAULT ''`,
		`CREATE INDEX IF NOT EXISTS ideas_created_at_idx
			ON ideas (created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
