// Package output serializes the normalized table to a columnar format
// (Parquet) and a delimited-text format (CSV) with identical logical
// content and the fixed column order.
package output

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/kaslund/statjobs/app/rows"
)

// WriteCSV writes the table to path with a header row. Null cells render
// as empty fields.
func WriteCSV(table *rows.Table, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)

	header := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		header[i] = col.Name
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	record := make([]string, len(table.Columns))
	for _, row := range table.Cells {
		for i, cell := range row {
			record[i] = rows.CellString(cell)
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}
