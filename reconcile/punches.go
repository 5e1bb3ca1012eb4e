/*
punches.go - Punch-clock rows and per-day aggregation

PURPOSE:
  Holds the raw side of a reconciliation run: individual punch stints
  keyed by (day, source name), plus the per-day totals the rounder and
  the flag checks consume.

  A PunchSet keeps BOTH views because they answer different questions:
    Raw[k]    -> "how long did this person clock in total that day?"
    Stints[k] -> "was that one unbroken stint or several?" (lunch-break
                 detection cares about the shape, not just the sum)

INPUT SHAPE:
  ReadPunches consumes the normalized punch table produced by the
  timecard-export parser: one row per stint, columns
  (date, source employee name, elapsed hours). Header rows, section
  totals and zero-length stints are skipped.

SEE ALSO:
  - daily.go / weekly.go: consume a PunchSet against a Timesheet
*/
package reconcile

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/warp/payroll-engine/hours"
	"github.com/warp/payroll-engine/sheet"
)

// ErrNoPunches is returned when a punch table yields zero usable rows.
// Usually the wrong file: column order must be date, name, hours.
var ErrNoPunches = errors.New("no punch rows parsed")

// Punch is one clock stint for one person on one day.
type Punch struct {
	Day   time.Time
	Name  string
	Hours float64
}

// DayKey indexes per-day aggregates by (day, source name).
type DayKey struct {
	Day  time.Time
	Name string
}

// PunchSet aggregates punches per (day, name).
type PunchSet struct {
	// Raw holds the summed stint hours, unrounded.
	Raw map[DayKey]float64

	// Stints holds the individual stint lengths in input order.
	Stints map[DayKey][]float64
}

func NewPunchSet() *PunchSet {
	return &PunchSet{
		Raw:    map[DayKey]float64{},
		Stints: map[DayKey][]float64{},
	}
}

// Add folds one punch into the set. Non-positive stints, blank names
// and total-style rows ("Total", "Grand Total") are ignored so callers
// can feed exported tables without pre-cleaning them.
func (ps *PunchSet) Add(p Punch) {
	name := strings.TrimSpace(p.Name)
	if p.Hours <= 0 || sheet.Blank(name) || totalLike(name) {
		return
	}
	k := DayKey{Day: p.Day, Name: name}
	ps.Raw[k] += p.Hours
	ps.Stints[k] = append(ps.Stints[k], p.Hours)
}

// Names returns the distinct source names, sorted.
func (ps *PunchSet) Names() []string {
	seen := map[string]bool{}
	for k := range ps.Raw {
		seen[k.Name] = true
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Days returns the distinct punch days, ascending.
func (ps *PunchSet) Days() []time.Time {
	seen := map[time.Time]bool{}
	for k := range ps.Raw {
		seen[k.Day] = true
	}
	days := make([]time.Time, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// NamesOn returns the source names with punches on one day, sorted.
func (ps *PunchSet) NamesOn(day time.Time) []string {
	var names []string
	for k := range ps.Raw {
		if k.Day.Equal(day) {
			names = append(names, k.Name)
		}
	}
	sort.Strings(names)
	return names
}

func totalLike(name string) bool {
	s := strings.ToLower(name)
	return strings.HasPrefix(s, "total") || strings.Contains(s, "grand total")
}

// ReadPunches reads the (date, name, stint hours) punch table into a
// PunchSet. Rows whose date cell does not parse are skipped, which
// covers header rows. Hours accept decimals or H:MM clock values.
func ReadPunches(t *sheet.Table) (*PunchSet, error) {
	ps := NewPunchSet()
	for i := 0; i < t.NumRows(); i++ {
		day, ok := sheet.ParseDay(t.Cell(i, 0))
		if !ok {
			continue
		}
		h, ok := hours.Parse(t.Cell(i, 2))
		if !ok {
			continue
		}
		ps.Add(Punch{Day: day, Name: t.Cell(i, 1), Hours: h})
	}
	if len(ps.Raw) == 0 {
		return nil, fmt.Errorf("%s: %w", t.Name, ErrNoPunches)
	}
	return ps, nil
}
