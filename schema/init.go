// Package schema: safe database initialization. Creates only missing tables, never drops or overwrites.

package schema

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

const tableKVEntries = "kv_entries"

// InitializeKVStore ensures the kv_entries table exists. Checks INFORMATION_SCHEMA.TABLES and creates
// the table only when missing, then verifies its required columns. Never drops or rewrites data.
func InitializeKVStore(db *sql.DB, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("schema")

	exists, err := tableExists(db, tableKVEntries)
	if err != nil {
		return fmt.Errorf("failed to check if table %s exists: %w", tableKVEntries, err)
	}
	if exists {
		logger.Info("kv_entries table exists")
	} else {
		if err := createKVEntriesTable(db); err != nil {
			return err
		}
		logger.Info("created kv_entries table")
	}

	return ValidateRequiredColumns(db, nil, logger)
}

func tableExists(db *sql.DB, table string) (bool, error) {
	var count int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM information_schema.TABLES WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ?`,
		table,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func createKVEntriesTable(db *sql.DB) error {
	// v holds whole collections, so it needs more than TEXT's 64KB
	q := `
CREATE TABLE IF NOT EXISTS kv_entries (
    k VARCHAR(191) NOT NULL PRIMARY KEY,
    v LONGTEXT NOT NULL,
    updated_at DATETIME NOT NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`
	if _, err := db.Exec(q); err != nil {
		return fmt.Errorf("failed to create table %s: %w", tableKVEntries, err)
	}
	return nil
}
