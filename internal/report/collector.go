package report

import (
	"context"
	"fmt"
	"strconv"

	"zbxreport/internal/types"
	"zbxreport/internal/zabbix"

	"go.uber.org/zap"
)

// Collector reduces host history into per-metric summaries
type Collector struct {
	api    API
	logger *zap.Logger
}

// NewCollector creates new collector
func NewCollector(api API, logger *zap.Logger) *Collector {
	return &Collector{
		api:    api,
		logger: logger,
	}
}

// CollectHost gathers metric summaries for one requested host across the
// given windows. The requested display name identifies the host in the
// resulting summaries.
func (c *Collector) CollectHost(ctx context.Context, hostName string, windows []TimeWindow) ([]types.MetricSummary, error) {
	host, err := c.api.HostByName(ctx, hostName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve host %q: %w", hostName, err)
	}

	allItems, err := c.api.EnabledItems(ctx, host.HostID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items of %q: %w", hostName, err)
	}

	keys := MatchKeys(allItems)

	items := make([]zabbix.Item, 0, len(keys))
	for _, key := range keys {
		item, err := c.api.ItemByKey(ctx, host.HostID, key)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve item %q: %w", key, err)
		}
		if item != nil {
			items = append(items, *item)
		}
	}

	if len(items) == 0 {
		c.logger.Info("No matching items",
			zap.String("host", hostName))
		return nil, nil
	}

	// One sample pool and one daily list per item, filled window by window
	pools := make([][]types.Sample, len(items))
	dailies := make([][]types.DailyAggregate, len(items))

	for _, window := range windows {
		for i, item := range items {
			history, err := c.api.History(ctx, item.ItemID, HistoryType(item.Key), window.TimeFrom, window.TimeTill)
			if err != nil {
				return nil, fmt.Errorf("failed to fetch history of %q: %w", item.Key, err)
			}
			if len(history) == 0 {
				continue
			}

			samples, err := parseSamples(history)
			if err != nil {
				return nil, fmt.Errorf("failed to parse history of %q: %w", item.Key, err)
			}

			if agg := summarize(samples); agg != nil {
				dailies[i] = append(dailies[i], types.DailyAggregate{
					Date:        window.Date,
					Min:         agg.Min,
					Avg:         agg.Avg,
					Max:         agg.Max,
					SampleCount: agg.SampleCount,
				})
			}

			// A lone sample yields no daily row but still joins the total pool
			pools[i] = append(pools[i], samples...)
		}
	}

	summaries := make([]types.MetricSummary, 0, len(items))
	for i, item := range items {
		summary := types.MetricSummary{
			Host:  hostName,
			Item:  item.Name,
			Key:   item.Key,
			Daily: dailies[i],
			Total: summarize(pools[i]),
		}

		if summary.Total != nil {
			c.logger.Debug("Collected metric",
				zap.String("host", hostName),
				zap.String("item", item.Name),
				zap.Int("samples", summary.Total.SampleCount),
				zap.Int("days", len(summary.Daily)))
		}

		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// parseSamples converts raw history values into samples
func parseSamples(history []zabbix.HistoryValue) ([]types.Sample, error) {
	samples := make([]types.Sample, 0, len(history))
	for _, h := range history {
		clock, err := strconv.ParseInt(h.Clock, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad clock %q: %w", h.Clock, err)
		}

		value, err := strconv.ParseFloat(h.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("bad value %q: %w", h.Value, err)
		}

		samples = append(samples, types.Sample{Clock: clock, Value: value})
	}
	return samples, nil
}
