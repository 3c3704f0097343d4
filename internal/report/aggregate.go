package report

import (
	"math"

	"zbxreport/internal/types"
)

// minSamples is the smallest population that yields an aggregate
const minSamples = 2

// round1 rounds to one decimal place
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// summarize reduces a sample slice to a rounded min/avg/max aggregate.
// Populations below minSamples produce none.
func summarize(samples []types.Sample) *types.TotalAggregate {
	if len(samples) < minSamples {
		return nil
	}

	lo := samples[0].Value
	hi := samples[0].Value
	sum := 0.0
	for _, s := range samples {
		if s.Value < lo {
			lo = s.Value
		}
		if s.Value > hi {
			hi = s.Value
		}
		sum += s.Value
	}

	return &types.TotalAggregate{
		Min:         round1(lo),
		Avg:         round1(sum / float64(len(samples))),
		Max:         round1(hi),
		SampleCount: len(samples),
	}
}
