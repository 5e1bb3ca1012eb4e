/*
daily.go - One-day reconciliation

PURPOSE:
  Projects a single day of punches onto the matching day-column pair
  of the weekly timesheet.

FLOW:
  1. Resolve the report date to a ledger day column (exact match first,
     then month/day ignoring year; no column at all is structural).
  2. Match every punch-side name to the timesheet roster.
  3. Round every person's daily total; split Regular = min(rounded, cap),
     Overtime = max(rounded - cap, 0).
  4. Write one Reg/OT pair per matched person; collect review entries,
     unmatched names, long-shift and short-day highlights for the
     report.

  Hours for unmatched names are NEVER written anywhere; they surface
  in the unmatched list instead. Dropping them silently would make a
  short paycheck look like a clean run.
*/
package reconcile

import (
	"sort"
	"strings"
	"time"

	"github.com/warp/payroll-engine/config"
	"github.com/warp/payroll-engine/hours"
	"github.com/warp/payroll-engine/match"
)

// Highlight day-total bounds for the "very short day" report section.
// A half hour or less is timeclock noise, not a short day.
const (
	ShortDayLow  = 0.5
	ShortDayHigh = 4.0
)

// StintHighlight is one person's long-shift line in the daily report.
type StintHighlight struct {
	Person  string
	Longest float64
	Total   float64
}

// ShortDay is one person's short-day line in the daily report.
type ShortDay struct {
	Person  string
	Rounded float64
}

// DailyResult is the outcome of a one-day reconciliation.
type DailyResult struct {
	// Day is the report date the punches carry. The grid column it
	// landed in may sit under a stale template year; the report date
	// is the real one.
	Day time.Time

	// Filled counts employees whose Reg/OT pair was written.
	Filled int

	Matches    []match.Record
	Review     []ReviewEntry
	Unmatched  []string
	LongShifts []StintHighlight
	ShortDays  []ShortDay
}

// Daily reconciles one day of punches into the timesheet, writing the
// day's Reg/OT pair for every matched person. The punch set may span
// the whole week; only punches dated day are considered.
func Daily(ts *Timesheet, ps *PunchSet, day time.Time, cfg config.Settings) (*DailyResult, error) {
	_, cols, err := ts.ResolveDay(day)
	if err != nil {
		return nil, err
	}

	res := &DailyResult{Day: day}
	roster := ts.Names()

	sourceToRoster := map[string]match.Result{}
	for _, name := range ps.NamesOn(day) {
		m := match.Match(name, roster, cfg.Matching.StrictScore, cfg.Matching.FallbackScore)
		res.Matches = append(res.Matches, match.NewRecord(name, m, cfg.Matching.StrictScore))
		if m.Ok() {
			sourceToRoster[name] = m
		} else {
			res.Unmatched = append(res.Unmatched, name)
		}
	}

	// Best score wins when two punch names land on the same roster row.
	type mapped struct {
		source string
		score  int
	}
	rosterToSource := map[string]mapped{}
	for source, m := range sourceToRoster {
		prev, ok := rosterToSource[m.Name]
		if !ok || m.Score > prev.score {
			rosterToSource[m.Name] = mapped{source: source, score: m.Score}
		}
	}

	for _, name := range ps.NamesOn(day) {
		k := DayKey{Day: day, Name: name}
		raw := ps.Raw[k]
		rounded := hours.Round(raw)
		stints := ps.Stints[k]

		m, matched := sourceToRoster[name]
		score := 0
		rosterName := ""
		if matched {
			score, rosterName = m.Score, m.Name
		}

		reasons, suggested := flagDay(day, score, raw, rounded, stints, cfg)
		if len(reasons) > 0 || suggested != nil {
			r := raw
			res.Review = append(res.Review, ReviewEntry{
				Day:        day,
				SourceName: name,
				RosterName: rosterName,
				Score:      score,
				Stints:     stints,
				Raw:        &r,
				Rounded:    rounded,
				Suggested:  suggested,
				Reasons:    reasons,
			})
		}

		person := name
		if rosterName != "" {
			person = rosterName
		}
		longest := 0.0
		for _, s := range stints {
			if s > longest {
				longest = s
			}
		}
		if longest > cfg.Flags.LongStint {
			res.LongShifts = append(res.LongShifts, StintHighlight{
				Person:  person,
				Longest: longest,
				Total:   rounded,
			})
		}
		if rounded > ShortDayLow && rounded < ShortDayHigh {
			res.ShortDays = append(res.ShortDays, ShortDay{Person: person, Rounded: rounded})
		}
	}

	for _, p := range ts.People {
		m, ok := rosterToSource[p.Name]
		if !ok {
			continue
		}
		rounded := hours.Round(ps.Raw[DayKey{Day: day, Name: m.source}])
		reg := round2(minF(rounded, cfg.Caps.DailyRegular))
		ot := round2(maxF(rounded-cfg.Caps.DailyRegular, 0))
		ts.WriteDay(p.Row, cols, reg, ot)
		res.Filled++
	}

	sort.Slice(res.Review, func(i, j int) bool {
		if res.Review[i].RosterName != res.Review[j].RosterName {
			return res.Review[i].RosterName < res.Review[j].RosterName
		}
		return res.Review[i].SourceName < res.Review[j].SourceName
	})
	sort.Slice(res.LongShifts, func(i, j int) bool {
		if res.LongShifts[i].Longest != res.LongShifts[j].Longest {
			return res.LongShifts[i].Longest > res.LongShifts[j].Longest
		}
		return res.LongShifts[i].Person < res.LongShifts[j].Person
	})
	sort.Slice(res.ShortDays, func(i, j int) bool {
		return strings.ToLower(res.ShortDays[i].Person) < strings.ToLower(res.ShortDays[j].Person)
	})
	sort.Strings(res.Unmatched)

	return res, nil
}

func round2(x float64) float64 {
	if x < 0 {
		return -round2(-x)
	}
	return float64(int64(x*100+0.5)) / 100
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
