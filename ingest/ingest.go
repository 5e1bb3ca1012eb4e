/*
Package ingest turns uploaded spreadsheet bytes into sheet.Table grids.

PURPOSE:
  Weekly sheets, ledgers and timeclock exports arrive as .xlsx or .csv
  uploads. This package is the only place that touches file formats;
  everything downstream works on the normalized grid. No layout
  heuristics live here: readers hand back every row as-is and the
  domain packages decide what the rows mean.

FORMATS:
  XLSX through excelize, first worksheet or a named one; filled
  workbooks are written back out the same way, one worksheet per
  table.
  CSV with encoding detection: UTF-8 with or without BOM, UTF-16 in
  either endianness by BOM, and a Latin-1 fallback for bytes that are
  not valid UTF-8. Lazy quoting is on; a bare quote inside a field
  parses as text.

SEE ALSO:
  - sheet/: the grid these readers produce
*/
package ingest

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/warp/payroll-engine/sheet"
)

var (
	// ErrNoWorksheet is returned when a workbook carries no sheets.
	ErrNoWorksheet = errors.New("no worksheet found")

	// ErrEmpty is returned when a file parses but has no rows at all.
	ErrEmpty = errors.New("file has no rows")
)

// XLSX reads the first worksheet of an xlsx workbook.
func XLSX(data []byte) (*sheet.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	name := f.GetSheetName(0)
	if name == "" {
		return nil, ErrNoWorksheet
	}
	return readSheet(f, name)
}

// XLSXSheet reads one named worksheet of an xlsx workbook.
func XLSXSheet(data []byte, name string) (*sheet.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	return readSheet(f, name)
}

func readSheet(f *excelize.File, name string) (*sheet.Table, error) {
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmpty)
	}

	t := sheet.New(name)
	t.Rows = rows
	return t, nil
}
