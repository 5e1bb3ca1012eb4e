/*
table.go - Normalized in-memory table

PURPOSE:
  Every document the engine touches (timecard export, weekly timesheet,
  cash/payroll ledgers, bonus and loan sheets) is handed over as a
  Table: a named grid of string cells. File formats, themes and merged
  cells are the ingest adapter's problem; from here on the engine only
  ever sees rows of strings.

MUTABILITY:
  Ledgers are rewritten in place. SetCell grows the grid as needed, so
  a fill can write one column past the current row width and the
  returned table still round-trips through the caller's writer.

SEE ALSO:
  - errors.go: structural errors raised by readers over this model
  - ingest/: xlsx and csv adapters that produce Tables
*/
package sheet

import (
	"strconv"
	"strings"
)

// Table is a named grid of string cells. Rows may be ragged; reads
// outside the grid return "".
type Table struct {
	Name string
	Rows [][]string
}

// New returns an empty table with the given name.
func New(name string) *Table {
	return &Table{Name: name}
}

func (t *Table) NumRows() int { return len(t.Rows) }

// NumCols returns the widest row's length; rows may be ragged.
func (t *Table) NumCols() int {
	w := 0
	for _, r := range t.Rows {
		if len(r) > w {
			w = len(r)
		}
	}
	return w
}

// Cell returns the trimmed cell at (row, col), or "" when out of range.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[col])
}

// SetCell writes a value, growing the grid as needed.
func (t *Table) SetCell(row, col int, v string) {
	if row < 0 || col < 0 {
		return
	}
	for len(t.Rows) <= row {
		t.Rows = append(t.Rows, nil)
	}
	for len(t.Rows[row]) <= col {
		t.Rows[row] = append(t.Rows[row], "")
	}
	t.Rows[row][col] = v
}

// ClearCell blanks a cell without growing the grid.
func (t *Table) ClearCell(row, col int) {
	if row < 0 || row >= len(t.Rows) {
		return
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return
	}
	t.Rows[row][col] = ""
}

// Row returns the raw row slice, or nil when out of range.
func (t *Table) Row(row int) []string {
	if row < 0 || row >= len(t.Rows) {
		return nil
	}
	return t.Rows[row]
}

// InsertRow shifts rows down and puts an empty row at the given index.
// The loan history sheet inserts newly closed loans at the top of its
// data region this way. An index at or past the end appends.
func (t *Table) InsertRow(at int) {
	if at < 0 {
		at = 0
	}
	if at >= len(t.Rows) {
		for len(t.Rows) <= at {
			t.Rows = append(t.Rows, nil)
		}
		return
	}
	t.Rows = append(t.Rows, nil)
	copy(t.Rows[at+1:], t.Rows[at:])
	t.Rows[at] = nil
}

// AppendRow adds a row of cells at the bottom and returns its index.
func (t *Table) AppendRow(cells ...string) int {
	t.Rows = append(t.Rows, cells)
	return len(t.Rows) - 1
}

// =============================================================================
// CELL HELPERS
// =============================================================================

// Blank reports whether a cell holds nothing usable. Exported tables
// carry "nan" for empty cells when they passed through a dataframe on
// the way out of the timeclock vendor's tooling.
func Blank(s string) bool {
	v := strings.ToLower(strings.TrimSpace(s))
	return v == "" || v == "nan" || v == "none"
}

// Label normalizes a header cell for comparison: lowercase, trimmed,
// inner whitespace collapsed.
func Label(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// ParseFloat parses a numeric cell, tolerating the junk spreadsheets
// accumulate: currency signs, thousands separators, surrounding space.
func ParseFloat(s string) (float64, bool) {
	v := strings.TrimSpace(s)
	if v == "" {
		return 0, false
	}
	v = strings.ReplaceAll(v, "$", "")
	v = strings.ReplaceAll(v, ",", "")
	v = strings.TrimSpace(v)
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// FormatHours renders an hours figure the way the sheets carry them:
// no trailing zeros, no exponent.
func FormatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

// FindColumn returns the index of the first cell in row whose label
// contains substr, or -1.
func FindColumn(row []string, substr string) int {
	for i, c := range row {
		if strings.Contains(Label(c), substr) {
			return i
		}
	}
	return -1
}
