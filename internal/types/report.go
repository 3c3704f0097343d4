package types

// ReportColumns is the header row of the generated report, in column order
var ReportColumns = []string{"Server", "Type", "unit measurements", "Min", "Avg", "Max"}

// Row represents one line of the generated report
type Row struct {
	Server string  `json:"server"`
	Type   string  `json:"type"`
	Unit   string  `json:"unit"`
	Min    float64 `json:"min"`
	Avg    float64 `json:"avg"`
	Max    float64 `json:"max"`
}

// Values returns the row cells in ReportColumns order
func (r Row) Values() []any {
	return []any{r.Server, r.Type, r.Unit, r.Min, r.Avg, r.Max}
}

// Result represents the machine-readable outcome printed on stdout
type Result struct {
	Changed   bool    `json:"changed"`
	Failed    bool    `json:"failed,omitempty"`
	RunID     string  `json:"run_id,omitempty"`
	ExcelFile string  `json:"excel_file,omitempty"`
	Metrics   [][]any `json:"metrics,omitempty"`
	Msg       string  `json:"msg"`
}
