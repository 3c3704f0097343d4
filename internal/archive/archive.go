// Package archive persists finished report runs to a relational database.
// The archive is optional; the xlsx/csv artifact never depends on it.
package archive

import (
	"context"
	"fmt"
	"time"

	"zbxreport/internal/config"
	"zbxreport/internal/types"

	"go.uber.org/zap"
)

// Run represents one finished report run
type Run struct {
	RunID     string
	StartedAt time.Time
	Hosts     []string
	DaysBack  int
	Timezone  string
	Output    string
	Rows      []types.Row
	Summaries []types.MetricSummary
}

// Store persists report runs
type Store interface {
	SaveRun(ctx context.Context, run *Run) error
	Close() error
}

// New creates new archive store based on configuration
func New(cfg *config.ArchiveConfig, logger *zap.Logger) (Store, error) {
	switch cfg.Driver {
	case "sqlite":
		return newSQLiteStore(cfg.DSN, logger)
	case "mysql":
		return newMySQLStore(cfg.DSN, logger)
	case "postgres":
		return newPostgresStore(cfg.DSN, logger)
	default:
		return nil, fmt.Errorf("%w: %s", types.ErrUnsupportedDriver, cfg.Driver)
	}
}
