/*
weekly.go - Full-week reconciliation

PURPOSE:
  Runs the daily projection across every mapped day column in one
  pass, then adds the checks only a whole week can support:

  - missing_day_for_regular: someone who worked two or more days that
    week ("a regular"), matched confidently, with a day-shaped hole in
    the punches. A punch export that silently dropped a day looks
    exactly like this.
  - Per-person violation scoring to put the worst weeks first in the
    review queue.
  - Stint leaderboard and preview lists (longest shifts, overtime
    days) for the report.

FILL POLICY:
  Every matched person gets every mapped day written, punches or not:
  Regular = min(rounded, cap) and Overtime = max(rounded - cap, 0),
  with zero-hour days writing Regular 0 and a blank Overtime. The
  sheet ends the run fully populated so a stale template number can
  never survive into payroll.
*/
package reconcile

import (
	"sort"
	"time"

	"github.com/warp/payroll-engine/config"
	"github.com/warp/payroll-engine/hours"
	"github.com/warp/payroll-engine/match"
)

// A stint this long is worth listing even when nothing flags it.
const previewMinStint = 4.0

// Regulars worked at least this many days in the week.
const regularMinDays = 2

// StintLeader is one person's line on the weekly stint leaderboard.
type StintLeader struct {
	Person      string
	MaxStint    float64
	DayOfMax    time.Time
	DaysOver    int
	WeekRounded float64
}

// PreviewLongest is one person's longest-shift preview line: their
// single longest stint of the week, with a suggested correction when
// it crosses the long-stint threshold.
type PreviewLongest struct {
	Person    string
	Day       time.Time
	Longest   float64
	DayTotal  float64
	Suggested *float64
}

// PreviewOT is one person's heaviest overtime day of the week.
type PreviewOT struct {
	Person   string
	Day      time.Time
	DayTotal float64
	OTHours  float64
	MaxStint float64
}

// WeeklyResult is the outcome of a full-week reconciliation.
type WeeklyResult struct {
	// Days are the mapped ledger days, ascending.
	Days []time.Time

	// FilledDays counts (person, day) Reg/OT pairs written.
	FilledDays int

	Matches   []match.Record
	Review    []ReviewEntry
	Unmatched []string

	Violations  []PersonViolations
	Leaderboard []StintLeader
	Longest     []PreviewLongest
	Overtime    []PreviewOT
}

// Weekly reconciles a week of punches into the timesheet. Structural
// problems surface earlier, from ReadTimesheet and ReadPunches; by the
// time both parse, a week run always completes.
func Weekly(ts *Timesheet, ps *PunchSet, cfg config.Settings) *WeeklyResult {
	res := &WeeklyResult{Days: ts.SortedDays()}
	roster := ts.Names()

	sourceToRoster := map[string]match.Result{}
	for _, name := range ps.Names() {
		m := match.Match(name, roster, cfg.Matching.StrictScore, cfg.Matching.FallbackScore)
		res.Matches = append(res.Matches, match.NewRecord(name, m, cfg.Matching.StrictScore))
		if m.Ok() {
			sourceToRoster[name] = m
		} else {
			res.Unmatched = append(res.Unmatched, name)
		}
	}
	sort.Strings(res.Unmatched)

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

	rounded := make(map[DayKey]float64, len(ps.Raw))
	daysWorked := map[string]int{}
	for k, raw := range ps.Raw {
		r := hours.Round(raw)
		rounded[k] = r
		if r > 0 {
			daysWorked[k.Name]++
		}
	}
	regulars := map[string]bool{}
	for name, n := range daysWorked {
		if n >= regularMinDays {
			regulars[name] = true
		}
	}

	// Review entries for every punched day with findings.
	for _, name := range ps.Names() {
		for _, day := range ps.Days() {
			k := DayKey{Day: day, Name: name}
			raw, ok := ps.Raw[k]
			if !ok {
				continue
			}
			score, rosterName := 0, ""
			if m, matched := sourceToRoster[name]; matched {
				score, rosterName = m.Score, m.Name
			}
			reasons, suggested := flagDay(day, score, raw, rounded[k], ps.Stints[k], cfg)
			if len(reasons) == 0 && suggested == nil {
				continue
			}
			r := raw
			res.Review = append(res.Review, ReviewEntry{
				Day:        day,
				SourceName: name,
				RosterName: rosterName,
				Score:      score,
				Stints:     ps.Stints[k],
				Raw:        &r,
				Rounded:    rounded[k],
				Suggested:  suggested,
				Reasons:    reasons,
			})
		}
	}

	// Day-shaped holes for confidently matched regulars.
	for _, p := range ts.People {
		m, ok := rosterToSource[p.Name]
		if !ok || m.score < cfg.Matching.StrictScore || !regulars[m.source] {
			continue
		}
		for _, day := range res.Days {
			if _, punched := ps.Raw[DayKey{Day: day, Name: m.source}]; punched {
				continue
			}
			res.Review = append(res.Review, ReviewEntry{
				Day:        day,
				SourceName: m.source,
				RosterName: p.Name,
				Score:      m.score,
				Rounded:    0,
				Reasons:    []string{TagMissingDay},
			})
		}
	}

	// Fill every mapped day for every matched person.
	for _, p := range ts.People {
		m, ok := rosterToSource[p.Name]
		if !ok {
			continue
		}
		for _, day := range res.Days {
			r := rounded[DayKey{Day: day, Name: m.source}]
			reg := round2(minF(r, cfg.Caps.DailyRegular))
			ot := round2(maxF(r-cfg.Caps.DailyRegular, 0))
			ts.WriteDay(p.Row, ts.Days[day], reg, ot)
			res.FilledDays++
		}
	}

	res.Violations = RollupViolations(res.Review, cfg.Violations, cfg.Caps.DailyRegular)
	SortBySeverity(res.Review, res.Violations)

	res.Leaderboard = buildLeaderboard(ps, rounded, sourceToRoster, cfg)
	res.Longest, res.Overtime = buildPreviews(ps, rounded, sourceToRoster, cfg)

	return res
}

// displayName prefers the matched roster identity.
func displayName(source string, sourceToRoster map[string]match.Result) string {
	if m, ok := sourceToRoster[source]; ok {
		return m.Name
	}
	return source
}

func buildLeaderboard(ps *PunchSet, rounded map[DayKey]float64, sourceToRoster map[string]match.Result, cfg config.Settings) []StintLeader {
	type agg struct {
		maxStint    float64
		dayOfMax    time.Time
		daysOver    int
		weekRounded float64
	}
	per := map[string]*agg{}
	for _, name := range ps.Names() {
		person := displayName(name, sourceToRoster)
		a := per[person]
		if a == nil {
			a = &agg{}
			per[person] = a
		}
		for _, day := range ps.Days() {
			k := DayKey{Day: day, Name: name}
			stints, ok := ps.Stints[k]
			if !ok {
				continue
			}
			longest := 0.0
			for _, s := range stints {
				if s > longest {
					longest = s
				}
			}
			if longest > a.maxStint {
				a.maxStint = longest
				a.dayOfMax = day
			}
			if longest >= cfg.Flags.LongStint {
				a.daysOver++
			}
			a.weekRounded += rounded[k]
		}
	}

	out := make([]StintLeader, 0, len(per))
	for person, a := range per {
		out = append(out, StintLeader{
			Person:      person,
			MaxStint:    a.maxStint,
			DayOfMax:    a.dayOfMax,
			DaysOver:    a.daysOver,
			WeekRounded: a.weekRounded,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MaxStint != out[j].MaxStint {
			return out[i].MaxStint > out[j].MaxStint
		}
		if out[i].DaysOver != out[j].DaysOver {
			return out[i].DaysOver > out[j].DaysOver
		}
		return out[i].Person < out[j].Person
	})
	return out
}

func buildPreviews(ps *PunchSet, rounded map[DayKey]float64, sourceToRoster map[string]match.Result, cfg config.Settings) ([]PreviewLongest, []PreviewOT) {
	type dayRec struct {
		person  string
		day     time.Time
		longest float64
		total   float64
	}
	var recs []dayRec
	for _, name := range ps.Names() {
		person := displayName(name, sourceToRoster)
		for _, day := range ps.Days() {
			k := DayKey{Day: day, Name: name}
			stints, ok := ps.Stints[k]
			if !ok {
				continue
			}
			longest := 0.0
			for _, s := range stints {
				if s > longest {
					longest = s
				}
			}
			recs = append(recs, dayRec{person: person, day: day, longest: longest, total: rounded[k]})
		}
	}

	// Best qualifying day per person for each list.
	bestLong := map[string]dayRec{}
	bestOT := map[string]dayRec{}
	for _, r := range recs {
		if r.longest >= previewMinStint {
			prev, ok := bestLong[r.person]
			if !ok || r.longest > prev.longest ||
				(r.longest == prev.longest && r.total > prev.total) ||
				(r.longest == prev.longest && r.total == prev.total && r.day.Before(prev.day)) {
				bestLong[r.person] = r
			}
		}
		if r.total > cfg.Caps.DailyRegular {
			prev, ok := bestOT[r.person]
			if !ok || r.total > prev.total ||
				(r.total == prev.total && r.longest > prev.longest) ||
				(r.total == prev.total && r.longest == prev.longest && r.day.Before(prev.day)) {
				bestOT[r.person] = r
			}
		}
	}

	longest := make([]PreviewLongest, 0, len(bestLong))
	for _, r := range bestLong {
		var suggested *float64
		if r.longest >= cfg.Flags.LongStint {
			s := hours.Round(maxF(r.total-cfg.Flags.LunchDeduct, 0))
			suggested = &s
		}
		longest = append(longest, PreviewLongest{
			Person:    r.person,
			Day:       r.day,
			Longest:   r.longest,
			DayTotal:  r.total,
			Suggested: suggested,
		})
	}
	sort.Slice(longest, func(i, j int) bool {
		if longest[i].Longest != longest[j].Longest {
			return longest[i].Longest > longest[j].Longest
		}
		if longest[i].DayTotal != longest[j].DayTotal {
			return longest[i].DayTotal > longest[j].DayTotal
		}
		return longest[i].Person < longest[j].Person
	})

	overtime := make([]PreviewOT, 0, len(bestOT))
	for _, r := range bestOT {
		overtime = append(overtime, PreviewOT{
			Person:   r.person,
			Day:      r.day,
			DayTotal: r.total,
			OTHours:  round2(maxF(r.total-cfg.Caps.DailyRegular, 0)),
			MaxStint: r.longest,
		})
	}
	sort.Slice(overtime, func(i, j int) bool {
		if overtime[i].DayTotal != overtime[j].DayTotal {
			return overtime[i].DayTotal > overtime[j].DayTotal
		}
		return overtime[i].Person < overtime[j].Person
	})

	return longest, overtime
}
