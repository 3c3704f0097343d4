package report

import (
	"regexp"
	"strings"

	"zbxreport/internal/types"
	"zbxreport/internal/zabbix"
)

// metricKeys is the fixed key-fragment table selecting which counters feed
// the report. Matching is plain substring containment against item keys.
var metricKeys = []string{
	"system.cpu.util",
	"vm.memory.util",
	`perf_counter_en["\PhysicalDisk(0 C:)\% Idle Time",60]`,
	"net.if.in",
	"net.if.out",
}

// Unit classification patterns over item display names, case-sensitive
var (
	trafficPattern     = regexp.MustCompile(`Bits (received|sent)`)
	utilizationPattern = regexp.MustCompile(`(Disk|CPU|Memory) utilization`)
)

const bitsPerMegabit = 1_000_000

// MatchKeys returns the keys of items matching the metric key table,
// preserving enumeration order
func MatchKeys(items []zabbix.Item) []string {
	var keys []string
	for _, item := range items {
		for _, fragment := range metricKeys {
			if strings.Contains(item.Key, fragment) {
				keys = append(keys, item.Key)
				break
			}
		}
	}
	return keys
}

// HistoryType selects the storage class holding a key's samples.
// Interface counters store unsigned values, everything else floats.
func HistoryType(key string) int {
	if strings.Contains(key, "net.if.") {
		return zabbix.HistoryUnsigned
	}
	return zabbix.HistoryFloat
}

// UnitFor classifies an item display name into a report unit
func UnitFor(name string) string {
	switch {
	case trafficPattern.MatchString(name):
		return "Mbps"
	case utilizationPattern.MatchString(name):
		return "%"
	default:
		return "count"
	}
}

// Rows renders summaries holding a total aggregate into report rows.
// Traffic values are scaled to Mbps after the aggregates were rounded.
func Rows(summaries []types.MetricSummary) []types.Row {
	rows := make([]types.Row, 0, len(summaries))
	for _, s := range summaries {
		if s.Total == nil {
			continue
		}

		row := types.Row{
			Server: s.Host,
			Type:   s.Item,
			Unit:   UnitFor(s.Item),
			Min:    s.Total.Min,
			Avg:    s.Total.Avg,
			Max:    s.Total.Max,
		}

		if row.Unit == "Mbps" {
			row.Min /= bitsPerMegabit
			row.Avg /= bitsPerMegabit
			row.Max /= bitsPerMegabit
		}

		rows = append(rows, row)
	}
	return rows
}
