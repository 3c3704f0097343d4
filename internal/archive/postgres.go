package archive

import (
	"fmt"
	"regexp"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS report_runs (
	run_id TEXT PRIMARY KEY,
	started_at TIMESTAMPTZ NOT NULL,
	hosts TEXT NOT NULL,
	days_back INTEGER NOT NULL,
	timezone TEXT NOT NULL,
	output TEXT NOT NULL,
	row_count INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS report_rows (
	id BIGSERIAL PRIMARY KEY,
	run_id TEXT NOT NULL,
	server TEXT NOT NULL,
	type TEXT NOT NULL,
	unit TEXT NOT NULL,
	min_value DOUBLE PRECISION NOT NULL,
	avg_value DOUBLE PRECISION NOT NULL,
	max_value DOUBLE PRECISION NOT NULL
);
CREATE TABLE IF NOT EXISTS report_daily (
	id BIGSERIAL PRIMARY KEY,
	run_id TEXT NOT NULL,
	host TEXT NOT NULL,
	item TEXT NOT NULL,
	item_key TEXT NOT NULL,
	day TEXT NOT NULL,
	min_value DOUBLE PRECISION NOT NULL,
	avg_value DOUBLE PRECISION NOT NULL,
	max_value DOUBLE PRECISION NOT NULL,
	sample_count INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_report_rows_run ON report_rows(run_id);
CREATE INDEX IF NOT EXISTS idx_report_daily_run ON report_daily(run_id)`

var placeholderPattern = regexp.MustCompile(`\?`)

// newPostgresStore creates new PostgreSQL archive store
func newPostgresStore(dsn string, logger *zap.Logger) (Store, error) {
	return newStore("postgres", dsn, postgresSchema, logger)
}

// convertPlaceholders converts positional `?` placeholders to `$1`, `$2`, ...
func convertPlaceholders(query string) string {
	count := 0
	return placeholderPattern.ReplaceAllStringFunc(query, func(_ string) string {
		count++
		return fmt.Sprintf("$%d", count)
	})
}
