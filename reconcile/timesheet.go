/*
timesheet.go - Weekly timesheet grid structure

PURPOSE:
  Locates the moving parts of the office's weekly timesheet layout so
  the reconcilers can write into the right cells:

    Week Of : 08.18.25 - 08.24.25        <- anchors the layout, gives year
    | 08/18  |       | 08/19  |  ...     <- day headers (month/day only)
    | Reg    | OT    | Reg    |  ...     <- each day is a Reg/OT pair
    Employee Name:
    Jon Smithe | ...                     <- one row per person

  Nothing below the name anchor is trusted except the name cell; hours
  are always recomputed from punches, never read back.

CELL POLICY:
  Regular always writes a number, zero included. Overtime writes blank
  when there is nothing over the cap: in the audited sheet an empty OT
  cell means "no overtime", a written 0 means someone checked.

SEE ALSO:
  - sheet/errors.go: structural errors raised here
*/
package reconcile

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/warp/payroll-engine/sheet"
)

var (
	weekSpanRE = regexp.MustCompile(`(\d{2})\.(\d{2})\.(\d{2})\s*-\s*(\d{2})\.(\d{2})\.(\d{2})`)
	monthDayRE = regexp.MustCompile(`(\d{1,2})/(\d{1,2})`)
)

// DayColumns is one day's Reg/OT column pair.
type DayColumns struct {
	Reg int
	OT  int
}

// GridRow is one employee line in the timesheet.
type GridRow struct {
	Row  int
	Name string
}

// Timesheet is the parsed structure of a weekly timesheet table.
type Timesheet struct {
	Table     *sheet.Table
	Days      map[time.Time]DayColumns
	People    []GridRow
	NameCol   int
	StartYear int
}

// ReadTimesheet locates the day columns and employee rows of a weekly
// timesheet. The layout is anchored on the "Week Of :" row (which also
// carries the year the MM/DD day headers lack) and the "Employee Name"
// header cell.
func ReadTimesheet(t *sheet.Table) (*Timesheet, error) {
	weekRow := -1
	for i := 0; i < t.NumRows(); i++ {
		if strings.Contains(sheet.Label(t.Cell(i, 0)), "week of") {
			weekRow = i
			break
		}
	}
	if weekRow < 0 {
		return nil, &sheet.MissingLabelError{Sheet: t.Name, Label: "Week Of :"}
	}

	startYear := time.Now().Year()
	if m := weekSpanRE.FindStringSubmatch(t.Cell(weekRow, 0)); m != nil {
		yy, _ := strconv.Atoi(m[3])
		startYear = 2000 + yy
	}

	dayRow := weekRow + 1
	subRow := weekRow + 2
	days := map[time.Time]DayColumns{}
	for j := 0; j < t.NumCols(); j++ {
		m := monthDayRE.FindStringSubmatch(t.Cell(dayRow, j))
		if m == nil {
			continue
		}
		if !strings.Contains(sheet.Label(t.Cell(subRow, j)), "reg") {
			continue
		}
		if !strings.Contains(sheet.Label(t.Cell(subRow, j+1)), "ot") {
			continue
		}
		mm, _ := strconv.Atoi(m[1])
		dd, _ := strconv.Atoi(m[2])
		d := time.Date(startYear, time.Month(mm), dd, 0, 0, 0, 0, time.UTC)
		days[d] = DayColumns{Reg: j, OT: j + 1}
	}
	if len(days) == 0 {
		return nil, &sheet.NoDayHeadersError{Sheet: t.Name}
	}

	nameCol, startRow := -1, -1
	for j := 0; j < t.NumCols() && nameCol < 0; j++ {
		for i := 0; i < t.NumRows(); i++ {
			if strings.HasPrefix(sheet.Label(t.Cell(i, j)), "employee name") {
				nameCol, startRow = j, i+1
				break
			}
		}
	}
	if nameCol < 0 {
		return nil, &sheet.MissingLabelError{Sheet: t.Name, Label: "Employee Name"}
	}

	var people []GridRow
	for r := startRow; r < t.NumRows(); r++ {
		name := t.Cell(r, nameCol)
		if sheet.Blank(name) {
			continue
		}
		people = append(people, GridRow{Row: r, Name: name})
	}

	return &Timesheet{
		Table:     t,
		Days:      days,
		People:    people,
		NameCol:   nameCol,
		StartYear: startYear,
	}, nil
}

// SortedDays returns the mapped ledger days, ascending.
func (ts *Timesheet) SortedDays() []time.Time {
	days := make([]time.Time, 0, len(ts.Days))
	for d := range ts.Days {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// Names returns the employee names in row order.
func (ts *Timesheet) Names() []string {
	names := make([]string, 0, len(ts.People))
	for _, p := range ts.People {
		names = append(names, p.Name)
	}
	return names
}

// ResolveDay finds the ledger day for a report date: exact first, then
// by (month, day) ignoring year since templates are reused across
// year boundaries. A date that resolves neither way means the punch
// export and the timesheet are from different pay periods, which is
// fatal.
func (ts *Timesheet) ResolveDay(day time.Time) (time.Time, DayColumns, error) {
	if cols, ok := ts.Days[day]; ok {
		return day, cols, nil
	}
	for d, cols := range ts.Days {
		if sheet.SameMonthDay(d, day) {
			return d, cols, nil
		}
	}
	found := make([]string, 0, len(ts.Days))
	for d := range ts.Days {
		found = append(found, fmt.Sprintf("%d/%d", int(d.Month()), d.Day()))
	}
	sort.Strings(found)
	return time.Time{}, DayColumns{}, &sheet.DateNotFoundError{
		Sheet:     ts.Table.Name,
		Requested: day.Format("01/02/2006"),
		Found:     found,
	}
}

// WriteDay writes one Reg/OT pair per the cell policy.
func (ts *Timesheet) WriteDay(row int, cols DayColumns, reg, ot float64) {
	if reg < 0 {
		reg = 0
	}
	ts.Table.SetCell(row, cols.Reg, sheet.FormatHours(reg))
	if ot <= 0 {
		ts.Table.ClearCell(row, cols.OT)
	} else {
		ts.Table.SetCell(row, cols.OT, sheet.FormatHours(ot))
	}
}
