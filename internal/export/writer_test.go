package export

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap/zaptest"

	"zbxreport/internal/types"
)

func sampleRows() []types.Row {
	return []types.Row{
		{Server: "web01", Type: "CPU utilization", Unit: "%", Min: 10, Avg: 15.5, Max: 20},
		{Server: "web01", Type: "Bits received", Unit: "Mbps", Min: 1, Avg: 25.3, Max: 50},
	}
}

// TestWriteTableXLSX tests that a workbook round-trips header and rows
func TestWriteTableXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	writer := NewWriter(zaptest.NewLogger(t))

	require.NoError(t, writer.WriteTable(path, sampleRows()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, types.ReportColumns, got[0])
	assert.Equal(t, []string{"web01", "CPU utilization", "%", "10", "15.5", "20"}, got[1])
	assert.Equal(t, []string{"web01", "Bits received", "Mbps", "1", "25.3", "50"}, got[2])
}

// TestWriteTableXLSXEmpty tests that an empty table still yields the header
func TestWriteTableXLSXEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	writer := NewWriter(zaptest.NewLogger(t))

	require.NoError(t, writer.WriteTable(path, nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, types.ReportColumns, got[0])
}

// TestWriteTableCSV tests the comma-separated format
func TestWriteTableCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	writer := NewWriter(zaptest.NewLogger(t))

	require.NoError(t, writer.WriteTable(path, sampleRows()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, types.ReportColumns, records[0])
	assert.Equal(t, []string{"web01", "CPU utilization", "%", "10", "15.5", "20"}, records[1])
	assert.Equal(t, []string{"web01", "Bits received", "Mbps", "1", "25.3", "50"}, records[2])
}

// TestWriteTableCreatesDirectories tests that missing parents are created
func TestWriteTableCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "report.csv")
	writer := NewWriter(zaptest.NewLogger(t))

	require.NoError(t, writer.WriteTable(path, sampleRows()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.False(t, info.IsDir())
}

// TestWriteTableUnsupportedFormat tests extension validation
func TestWriteTableUnsupportedFormat(t *testing.T) {
	writer := NewWriter(zaptest.NewLogger(t))

	err := writer.WriteTable(filepath.Join(t.TempDir(), "report.txt"), sampleRows())
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrUnsupportedFormat))
	assert.Contains(t, err.Error(), ".txt")
}
