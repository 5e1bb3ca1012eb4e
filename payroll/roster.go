/*
roster.go - Weekly roster for the ledger run

PURPOSE:
  The approved weekly roster is the input of the payday run: one row
  per employee carrying a pay category and the week's Reg/OT hours per
  day. This file reads that sheet into Employee records the splitter
  can consume.

LAYOUT:
  The sheet opens with four banner rows, then data. The first 18
  columns are fixed:

    0  Name
    1  Category            a = payroll, b = cash, c = split
    2..15  seven Reg/OT day pairs
    16 Total_Reg           ignored; recomputed from the day cells
    17 Total_OT            ignored; recomputed from the day cells

  Stored weekly totals are never trusted. The sheet is edited by hand
  all week and the totals formulas do not survive that.

SICK:
  A day's Reg cell may hold the word "sick" instead of a number. Each
  such cell credits a configured number of sick hours (default 8) to
  the employee, paid later through the payroll ledger's SICK row.

SEE ALSO:
  - split.go: turns an Employee's totals into ledger writes
  - fill.go: applies the roster to the cash and payroll ledgers
*/
package payroll

import (
	"strings"

	"github.com/warp/payroll-engine/config"
	"github.com/warp/payroll-engine/sheet"
)

// =============================================================================
// ROSTER LAYOUT
// =============================================================================

const (
	rosterNameCol     = 0
	rosterCategoryCol = 1
	rosterFirstDayCol = 2
	rosterDayPairs    = 7
	rosterMinCols     = rosterFirstDayCol + 2*rosterDayPairs + 2 // day pairs + two totals
	rosterDataRow     = 4                                        // banner rows above
)

// skipMarkers are section labels and annotations that share the name
// column with real employees.
var skipMarkers = map[string]bool{
	"employee name:":     true,
	"nan":                true,
	"* red coded absent": true,
	"reminders:":         true,
	"payroll employees":  true,
	"cash employees":     true,
	"50/50 employees":    true,
}

// =============================================================================
// CATEGORY
// =============================================================================

// Category is an employee's pay routing: everything on payroll,
// everything in cash, or split between the two.
type Category string

const (
	CategoryPayroll Category = "a"
	CategoryCash    Category = "b"
	CategorySplit   Category = "c"
	CategoryUnknown Category = ""
)

// ParseCategory reads a roster category cell. Unknown values route
// nowhere; the employee still appears in reports.
func ParseCategory(s string) Category {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "a":
		return CategoryPayroll
	case "b":
		return CategoryCash
	case "c":
		return CategorySplit
	}
	return CategoryUnknown
}

// =============================================================================
// ROSTER
// =============================================================================

// Employee is one roster row with its weekly totals recomputed.
type Employee struct {
	Name     string
	Category Category
	Reg      float64 // sum of the seven day Reg cells
	OT       float64 // sum of the seven day OT cells
	Sick     float64 // hours credited from "sick" day cells
}

// Roster is the parsed weekly roster. Rows counts every data row the
// sheet carries, markers included, so run reports line up with what
// the office sees when they open the file.
type Roster struct {
	Rows      int
	Employees []Employee
}

// ReadRoster parses the weekly roster sheet.
//
// Non-numeric day cells count as zero hours; a Reg cell containing
// "sick" additionally credits cfg.Caps.SickHoursPerDay. Rows whose
// name is blank or a known section marker are dropped.
func ReadRoster(t *sheet.Table, cfg config.Settings) (*Roster, error) {
	if cols := t.NumCols(); cols < rosterMinCols {
		return nil, &sheet.ColumnCountError{Sheet: t.Name, Got: cols, Want: rosterMinCols}
	}

	r := &Roster{}
	for row := rosterDataRow; row < t.NumRows(); row++ {
		r.Rows++

		name := t.Cell(row, rosterNameCol)
		if sheet.Blank(name) || skipMarkers[strings.ToLower(name)] {
			continue
		}

		emp := Employee{
			Name:     name,
			Category: ParseCategory(t.Cell(row, rosterCategoryCol)),
		}
		for day := 0; day < rosterDayPairs; day++ {
			regCell := t.Cell(row, rosterFirstDayCol+2*day)
			otCell := t.Cell(row, rosterFirstDayCol+2*day+1)
			if v, ok := sheet.ParseFloat(regCell); ok {
				emp.Reg += v
			} else if strings.Contains(strings.ToLower(regCell), "sick") {
				emp.Sick += cfg.Caps.SickHoursPerDay
			}
			if v, ok := sheet.ParseFloat(otCell); ok {
				emp.OT += v
			}
		}
		r.Employees = append(r.Employees, emp)
	}
	return r, nil
}

// Names returns the roster names in sheet order.
func (r *Roster) Names() []string {
	out := make([]string, 0, len(r.Employees))
	for _, e := range r.Employees {
		out = append(out, e.Name)
	}
	return out
}
