package archive

import (
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

const mysqlSchema = `
CREATE TABLE IF NOT EXISTS report_runs (
	run_id VARCHAR(36) PRIMARY KEY,
	started_at TIMESTAMP NOT NULL,
	hosts TEXT NOT NULL,
	days_back INT NOT NULL,
	timezone VARCHAR(64) NOT NULL,
	output VARCHAR(512) NOT NULL,
	row_count INT NOT NULL
);
CREATE TABLE IF NOT EXISTS report_rows (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	run_id VARCHAR(36) NOT NULL,
	server VARCHAR(255) NOT NULL,
	type VARCHAR(255) NOT NULL,
	unit VARCHAR(16) NOT NULL,
	min_value DOUBLE NOT NULL,
	avg_value DOUBLE NOT NULL,
	max_value DOUBLE NOT NULL,
	INDEX idx_report_rows_run (run_id)
);
CREATE TABLE IF NOT EXISTS report_daily (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	run_id VARCHAR(36) NOT NULL,
	host VARCHAR(255) NOT NULL,
	item VARCHAR(255) NOT NULL,
	item_key VARCHAR(255) NOT NULL,
	day VARCHAR(10) NOT NULL,
	min_value DOUBLE NOT NULL,
	avg_value DOUBLE NOT NULL,
	max_value DOUBLE NOT NULL,
	sample_count INT NOT NULL,
	INDEX idx_report_daily_run (run_id)
)`

// newMySQLStore creates new MySQL archive store
func newMySQLStore(dsn string, logger *zap.Logger) (Store, error) {
	// Add parameters
	params := []string{
		"charset=utf8mb4",
	}

	if !strings.Contains(dsn, "parseTime=true") {
		params = append(params, "parseTime=true")
	}

	// Append params to DSN
	queryStart := "?"
	if strings.Contains(dsn, "?") {
		queryStart = "&"
	}
	dsn += queryStart + strings.Join(params, "&")

	return newStore("mysql", dsn, mysqlSchema, logger)
}
