package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// KVTable is the MySQL table backing MySQLKV
const KVTable = "kv_entries"

// MySQLKV persists keys as rows of the kv_entries table
type MySQLKV struct {
	db *sql.DB
}

// NewMySQLKV creates a MySQL-backed key-value store. The table must exist (see schema.InitializeKVStore).
func NewMySQLKV(db *sql.DB) *MySQLKV {
	return &MySQLKV{db: db}
}

// Get retrieves the value stored under key
func (r *MySQLKV) Get(ctx context.Context, key string) (string, bool, error) {
	query := `
		SELECT v
		FROM kv_entries
		WHERE k = ?
		LIMIT 1
	`

	var value string
	err := r.db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get key %s: %w", key, err)
	}

	return value, true, nil
}

// Set upserts value under key
func (r *MySQLKV) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO kv_entries (k, v, updated_at)
		VALUES (?, ?, UTC_TIMESTAMP())
		ON DUPLICATE KEY UPDATE v = VALUES(v), updated_at = UTC_TIMESTAMP()
	`

	if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}

	return nil
}

// Delete removes key
func (r *MySQLKV) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM kv_entries WHERE k = ?`

	if _, err := r.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}

	return nil
}
