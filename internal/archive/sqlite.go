package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS report_runs (
	run_id TEXT PRIMARY KEY,
	started_at TIMESTAMP NOT NULL,
	hosts TEXT NOT NULL,
	days_back INTEGER NOT NULL,
	timezone TEXT NOT NULL,
	output TEXT NOT NULL,
	row_count INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS report_rows (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL,
	server TEXT NOT NULL,
	type TEXT NOT NULL,
	unit TEXT NOT NULL,
	min_value REAL NOT NULL,
	avg_value REAL NOT NULL,
	max_value REAL NOT NULL
);
CREATE TABLE IF NOT EXISTS report_daily (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL,
	host TEXT NOT NULL,
	item TEXT NOT NULL,
	item_key TEXT NOT NULL,
	day TEXT NOT NULL,
	min_value REAL NOT NULL,
	avg_value REAL NOT NULL,
	max_value REAL NOT NULL,
	sample_count INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_report_rows_run ON report_rows(run_id);
CREATE INDEX IF NOT EXISTS idx_report_daily_run ON report_daily(run_id)`

// newSQLiteStore creates new SQLite archive store
func newSQLiteStore(dsn string, logger *zap.Logger) (Store, error) {
	// Ensure the database directory exists
	if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	return newStore("sqlite3", addSQLiteParams(dsn), sqliteSchema, logger)
}

// addSQLiteParams adds SQLite specific connection parameters
func addSQLiteParams(dsn string) string {
	params := []string{
		"_busy_timeout=5000",
		"_journal_mode=WAL",
		"_synchronous=NORMAL",
		"_foreign_keys=1",
	}

	query := "?" + strings.Join(params, "&")
	if strings.Contains(dsn, "?") {
		query = "&" + strings.Join(params, "&")
	}

	return dsn + query
}
