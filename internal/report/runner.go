package report

import (
	"context"
	"time"

	"zbxreport/internal/types"

	"go.uber.org/zap"
)

// Runner executes the collection pipeline host by host
type Runner struct {
	collector *Collector
	logger    *zap.Logger
}

// NewRunner creates new runner
func NewRunner(api API, logger *zap.Logger) *Runner {
	return &Runner{
		collector: NewCollector(api, logger),
		logger:    logger,
	}
}

// Run collects every requested host sequentially and renders the report
// rows. The summaries behind the rows are returned alongside for archiving.
func (r *Runner) Run(ctx context.Context, hosts []string, timezone string, daysBack int) ([]types.Row, []types.MetricSummary, error) {
	windows, err := WorkingWindows(timezone, daysBack, time.Now())
	if err != nil {
		return nil, nil, err
	}

	r.logger.Info("Collecting metrics",
		zap.Int("hosts", len(hosts)),
		zap.Int("windows", len(windows)),
		zap.String("timezone", timezone))

	var summaries []types.MetricSummary
	for _, host := range hosts {
		hostSummaries, err := r.collector.CollectHost(ctx, host, windows)
		if err != nil {
			return nil, nil, err
		}
		summaries = append(summaries, hostSummaries...)
	}

	return Rows(summaries), summaries, nil
}
