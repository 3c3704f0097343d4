package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"zbxreport/internal/types"

	"go.uber.org/zap"
)

// Writer serializes report tables to disk
type Writer struct {
	logger *zap.Logger
}

// NewWriter creates new writer
func NewWriter(logger *zap.Logger) *Writer {
	return &Writer{
		logger: logger,
	}
}

// WriteTable writes the report to path, choosing the format from the file
// extension. Missing parent directories are created. An empty table still
// produces an artifact holding only the header row.
func (w *Writer) WriteTable(path string, rows []types.Row) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx":
		err = writeXLSX(path, rows)
	case ".csv":
		err = writeCSV(path, rows)
	default:
		err = fmt.Errorf("%w: %q", types.ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return err
	}

	w.logger.Info("Report written",
		zap.String("path", path),
		zap.Int("rows", len(rows)))
	return nil
}
