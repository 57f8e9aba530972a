// Package db provides PostgreSQL-backed key-value storage for the resume document.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonathan/resume-builder/internal/storage"
)

// schemaSQL creates the single table the store needs.
const schemaSQL = `CREATE TABLE IF NOT EXISTS kv_entries (
	key        TEXT PRIMARY KEY,
	value      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

var _ storage.KV = (*DB)(nil)

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL is empty")
	}

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

// EnsureSchema creates the kv_entries table if it does not exist
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create kv_entries table: %w", err)
	}
	return nil
}

// Get retrieves the value stored under key
func (db *DB) Get(ctx context.Context, key string) ([]byte, error) {
	entry, err := db.GetEntry(ctx, key)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, storage.ErrNotFound
	}
	return entry.Value, nil
}

// GetEntry retrieves the full entry for key, or nil when absent
func (db *DB) GetEntry(ctx context.Context, key string) (*Entry, error) {
	var entry Entry
	err := db.pool.QueryRow(ctx,
		`SELECT key, value, updated_at FROM kv_entries WHERE key = $1`,
		key,
	).Scan(&entry.Key, &entry.Value, &entry.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get entry %s: %w", key, err)
	}
	return &entry, nil
}

// Set stores value under key, replacing any prior value.
// The value must be valid JSON since the column is JSONB.
func (db *DB) Set(ctx context.Context, key string, value []byte) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO kv_entries (key, value)
		 VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = NOW()`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to save entry %s: %w", key, err)
	}
	return nil
}

// Delete removes key
func (db *DB) Delete(ctx context.Context, key string) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM kv_entries WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("failed to delete entry %s: %w", key, err)
	}
	return nil
}
