package exporter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// WriteWorkbook writes all tables into one xlsx workbook, one sheet per
// table, in the given order.
func WriteWorkbook(path string, tables []Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, table := range tables {
		if i == 0 {
			// Reuse the default sheet rather than leaving an empty one.
			if err := f.SetSheetName("Sheet1", table.Name); err != nil {
				return fmt.Errorf("rename sheet %s: %w", table.Name, err)
			}
		} else {
			if _, err := f.NewSheet(table.Name); err != nil {
				return fmt.Errorf("create sheet %s: %w", table.Name, err)
			}
		}
		if err := writeSheet(f, table); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, table Table) error {
	header := make([]interface{}, len(table.Headers))
	for i, h := range table.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(table.Name, "A1", &header); err != nil {
		return fmt.Errorf("write header on %s: %w", table.Name, err)
	}

	for i, row := range table.Rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("cell name on %s: %w", table.Name, err)
		}
		if err := f.SetSheetRow(table.Name, axis, &cells); err != nil {
			return fmt.Errorf("write row %d on %s: %w", i, table.Name, err)
		}
	}
	return nil
}
