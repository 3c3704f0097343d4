package types

// Sample represents a single history value returned by the monitoring API
type Sample struct {
	Clock int64   `json:"clock"`
	Value float64 `json:"value"`
}

// DailyAggregate represents min/avg/max statistics for one working window
type DailyAggregate struct {
	Date        string  `json:"date"`
	Min         float64 `json:"min"`
	Avg         float64 `json:"avg"`
	Max         float64 `json:"max"`
	SampleCount int     `json:"sample_count"`
}

// TotalAggregate represents min/avg/max statistics over the whole period
type TotalAggregate struct {
	Min         float64 `json:"min"`
	Avg         float64 `json:"avg"`
	Max         float64 `json:"max"`
	SampleCount int     `json:"sample_count"`
}

// MetricSummary represents collected statistics for one item on one host
type MetricSummary struct {
	Host  string           `json:"host"`
	Item  string           `json:"item"`
	Key   string           `json:"key"`
	Daily []DailyAggregate `json:"daily,omitempty"`
	Total *TotalAggregate  `json:"total,omitempty"`
}
