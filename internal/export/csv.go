package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"zbxreport/internal/types"
)

// writeCSV writes the table as a comma-separated file
func writeCSV(path string, rows []types.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(types.ReportColumns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.Server,
			row.Type,
			row.Unit,
			strconv.FormatFloat(row.Min, 'f', -1, 64),
			strconv.FormatFloat(row.Avg, 'f', -1, 64),
			strconv.FormatFloat(row.Max, 'f', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush: %w", err)
	}
	return nil
}
