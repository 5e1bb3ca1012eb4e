/*
emit.go - Table to xlsx serialization

PURPOSE:
  The pipeline mutates grids in memory; this writes them back out as
  the workbooks the office opens. Numeric-looking cells are stored as
  numbers, matching how the office's own sheets hold hours and pay.
*/
package ingest

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/warp/payroll-engine/sheet"
)

// WriteXLSX serializes tables into one workbook, one worksheet per
// table in order, each named after its table. Empty cells are left
// unset.
func WriteXLSX(tables ...*sheet.Table) ([]byte, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("no tables to write")
	}

	f := excelize.NewFile()
	for i, t := range tables {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", t.Name); err != nil {
				return nil, fmt.Errorf("failed to name sheet %q: %w", t.Name, err)
			}
		} else if _, err := f.NewSheet(t.Name); err != nil {
			return nil, fmt.Errorf("failed to add sheet %q: %w", t.Name, err)
		}
		if err := writeCells(f, t); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeCells(f *excelize.File, t *sheet.Table) error {
	for r := 0; r < t.NumRows(); r++ {
		for c, v := range t.Row(r) {
			if v == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return fmt.Errorf("failed to address cell: %w", err)
			}
			var value any = v
			if n, err := strconv.ParseFloat(v, 64); err == nil {
				value = n
			}
			if err := f.SetCellValue(t.Name, cell, value); err != nil {
				return fmt.Errorf("failed to write %s!%s: %w", t.Name, cell, err)
			}
		}
	}
	return nil
}
