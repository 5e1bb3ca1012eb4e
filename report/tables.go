/*
tables.go - Result sheets for the output workbook

PURPOSE:
  The filled timesheet ships with two helper sheets the office works
  from: Review_Queue (one row per flagged day, sorted by person then
  date) and Name_Matching (every punch-side name with its roster
  match and score). Both are plain tables; the caller decides the
  workbook they land in.
*/
package report

import (
	"math"
	"sort"
	"strconv"

	"github.com/warp/payroll-engine/match"
	"github.com/warp/payroll-engine/reconcile"
	"github.com/warp/payroll-engine/sheet"
)

// ReviewQueueTable renders review entries as the Review_Queue sheet.
func ReviewQueueTable(review []reconcile.ReviewEntry) *sheet.Table {
	t := sheet.New("Review_Queue")
	t.AppendRow("Date", "TAR_Name", "Weekly_Name", "MatchScore", "Segments",
		"RawHours", "RoundedHours", "SuggestedHours", "Reasons")

	rows := make([]reconcile.ReviewEntry, len(review))
	copy(rows, review)
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].RosterName != rows[j].RosterName {
			return rows[i].RosterName < rows[j].RosterName
		}
		return rows[i].Day.Before(rows[j].Day)
	})

	for _, e := range rows {
		raw := ""
		if e.Raw != nil {
			raw = sheet.FormatHours(round2(*e.Raw))
		}
		suggested := ""
		if e.Suggested != nil {
			suggested = sheet.FormatHours(*e.Suggested)
		}
		t.AppendRow(
			e.Day.Format("01/02/2006"),
			e.SourceName,
			e.RosterName,
			strconv.Itoa(e.Score),
			e.SegmentList(),
			raw,
			sheet.FormatHours(round2(e.Rounded)),
			suggested,
			e.ReasonLine(),
		)
	}
	return t
}

// NameMatchingTable renders match records as the Name_Matching sheet:
// clean matches before review cases, then best score, then names.
func NameMatchingTable(records []match.Record) *sheet.Table {
	t := sheet.New("Name_Matching")
	t.AppendRow("TAR Name", "Weekly Match", "Score", "Flag")

	rows := make([]match.Record, len(records))
	copy(rows, records)
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.NeedsReview != b.NeedsReview {
			return !a.NeedsReview
		}
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Target != b.Target {
			return a.Target < b.Target
		}
		return a.Source < b.Source
	})

	for _, m := range rows {
		flag := ""
		if m.NeedsReview {
			flag = "REVIEW"
		}
		t.AppendRow(m.Source, m.Target, strconv.Itoa(m.Score), flag)
	}
	return t
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
