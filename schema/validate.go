package schema

import (
	"database/sql"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// RequiredColumn defines a required column for a table.
type RequiredColumn struct {
	Table  string
	Column string
}

// DefaultRequiredColumns are the columns MySQLKV reads and writes.
var DefaultRequiredColumns = []RequiredColumn{
	{Table: tableKVEntries, Column: "k"},
	{Table: tableKVEntries, Column: "v"},
	{Table: tableKVEntries, Column: "updated_at"},
}

// ValidateRequiredColumns checks that all required columns exist and lists every missing one in the error.
func ValidateRequiredColumns(db *sql.DB, required []RequiredColumn, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(required) == 0 {
		required = DefaultRequiredColumns
	}

	var missing []string
	for _, rc := range required {
		exists, err := columnExists(db, rc.Table, rc.Column)
		if err != nil {
			return fmt.Errorf("failed to check column %s.%s: %w", rc.Table, rc.Column, err)
		}
		if !exists {
			missing = append(missing, rc.Table+"."+rc.Column)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required columns (run migrations to fix): %s", strings.Join(missing, ", "))
	}

	logger.Info("required columns verified", zap.Int("columns", len(required)))
	return nil
}

func columnExists(db *sql.DB, table, column string) (bool, error) {
	var count int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM information_schema.COLUMNS 
		 WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ? AND COLUMN_NAME = ?`,
		table, column,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
