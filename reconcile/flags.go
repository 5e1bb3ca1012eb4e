/*
flags.go - Anomaly flags, review entries and violation scoring

PURPOSE:
  Every number the reconcilers write is paired with a paper trail: any
  day that looks off produces a ReviewEntry carrying reason tags with
  their evidence inline, e.g.

    low_name_match(88)       match score under the strict threshold
    gt_daily_max(17.5)       rounded day over the sanity ceiling
    very_low_weekday(1.5)    a sliver of a day on a Mon-Fri
    rounded(8.72->8.50)      raw and rounded drifted >= 0.01h
    single_long_stint(10.25h) one unbroken stint, likely missed lunch
    missing_day_for_regular  a regular with a day-shaped hole

  Reasons are independent and may co-occur. single_long_stint also
  computes a suggested value (total minus a lunch deduction, rounded),
  which is advice for the reviewer and never applied.

VIOLATION SCORING:
  Weekly review output is sorted by per-person severity: each tag has
  a weight, a person's score is the weighted sum over their entries.
  The "rounded" tag weighs zero and is dropped entirely from a day
  that rounded to exactly the regular cap: a standard day being a
  standard day is not findings.

SEE ALSO:
  - config/: weights and thresholds, all overridable
  - report/: renders entries and rollups into the secretary message
*/
package reconcile

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/warp/payroll-engine/config"
	"github.com/warp/payroll-engine/hours"
	"github.com/warp/payroll-engine/sheet"
)

// =============================================================================
// REASON TAGS
// =============================================================================

const (
	TagLowNameMatch    = "low_name_match"
	TagGTDailyMax      = "gt_daily_max"
	TagVeryLowWeekday  = "very_low_weekday"
	TagRounded         = "rounded"
	TagSingleLongStint = "single_long_stint"
	TagMissingDay      = "missing_day_for_regular"
)

// TagOf strips the evidence suffix: "rounded(8.72->8.50)" -> "rounded".
func TagOf(reason string) string {
	if i := strings.IndexByte(reason, '('); i >= 0 {
		return strings.TrimSpace(reason[:i])
	}
	return strings.TrimSpace(reason)
}

// =============================================================================
// REVIEW ENTRY - One flagged (day, person)
// =============================================================================

// ReviewEntry is one flagged day for one person. Raw is nil for
// missing-day entries (there was nothing to round); Suggested is set
// only by single_long_stint.
type ReviewEntry struct {
	Day        time.Time
	SourceName string
	RosterName string
	Score      int
	Stints     []float64
	Raw        *float64
	Rounded    float64
	Suggested  *float64
	Reasons    []string
}

// Person returns the display name: the roster identity when matched,
// the punch-side name otherwise.
func (e ReviewEntry) Person() string {
	if e.RosterName != "" {
		return e.RosterName
	}
	return e.SourceName
}

// SegmentList renders the stints as "8.10;2.25" for the review table.
func (e ReviewEntry) SegmentList() string {
	if len(e.Stints) == 0 {
		return ""
	}
	parts := make([]string, len(e.Stints))
	for i, s := range e.Stints {
		parts[i] = fmt.Sprintf("%.2f", s)
	}
	return strings.Join(parts, ";")
}

// LongestStint returns the longest single stint, or 0 when none.
func (e ReviewEntry) LongestStint() float64 {
	longest := 0.0
	for _, s := range e.Stints {
		if s > longest {
			longest = s
		}
	}
	return longest
}

// ReasonLine joins the reasons for display.
func (e ReviewEntry) ReasonLine() string {
	return strings.Join(e.Reasons, ", ")
}

// Tags returns the distinct reason tags on this entry.
func (e ReviewEntry) Tags() []string {
	seen := map[string]bool{}
	var tags []string
	for _, r := range e.Reasons {
		tag := TagOf(r)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}

// EffectiveTags drops the rounded tag when the day rounded to exactly
// the regular cap.
func (e ReviewEntry) EffectiveTags(regCap float64) []string {
	tags := e.Tags()
	if math.Abs(e.Rounded-regCap) >= 1e-9 {
		return tags
	}
	out := tags[:0]
	for _, tag := range tags {
		if tag != TagRounded {
			out = append(out, tag)
		}
	}
	return out
}

// HasTag reports whether the entry carries a reason tag.
func (e ReviewEntry) HasTag(tag string) bool {
	for _, t := range e.Tags() {
		if t == tag {
			return true
		}
	}
	return false
}

// flagDay computes the reason list and optional suggestion for one
// (day, person) total. score is the match score against the roster,
// zero when unmatched.
func flagDay(day time.Time, score int, raw, rounded float64, stints []float64, cfg config.Settings) ([]string, *float64) {
	var reasons []string
	var suggested *float64

	if score < cfg.Matching.StrictScore {
		reasons = append(reasons, fmt.Sprintf("%s(%d)", TagLowNameMatch, score))
	}
	if rounded > cfg.Caps.DailyMax {
		reasons = append(reasons, fmt.Sprintf("%s(%s)", TagGTDailyMax, sheet.FormatHours(rounded)))
	}
	if rounded > 0 && rounded <= cfg.Flags.LowWeekday && sheet.IsWeekday(day) {
		reasons = append(reasons, fmt.Sprintf("%s(%s)", TagVeryLowWeekday, sheet.FormatHours(rounded)))
	}
	if hours.Drift(raw, rounded) {
		reasons = append(reasons, fmt.Sprintf("%s(%.2f->%.2f)", TagRounded, raw, rounded))
	}
	if len(stints) == 1 && stints[0] >= cfg.Flags.LongStint {
		reasons = append(reasons, fmt.Sprintf("%s(%.2fh)", TagSingleLongStint, stints[0]))
		s := hours.Round(math.Max(rounded-cfg.Flags.LunchDeduct, 0))
		suggested = &s
	}
	return reasons, suggested
}

// =============================================================================
// VIOLATION ROLLUP - Per-person severity for report ordering
// =============================================================================

// PersonViolations is one person's weekly severity summary.
type PersonViolations struct {
	Person string
	Score  int
	Rows   int
	// TopReasons lists the person's most frequent tags as "tag:count",
	// at most five.
	TopReasons string
}

// RollupViolations aggregates review entries into per-person scores,
// sorted score desc, flagged rows desc, name asc.
func RollupViolations(entries []ReviewEntry, v config.Violations, regCap float64) []PersonViolations {
	type agg struct {
		score  int
		rows   int
		counts map[string]int
	}
	per := map[string]*agg{}
	for _, e := range entries {
		a := per[e.Person()]
		if a == nil {
			a = &agg{counts: map[string]int{}}
			per[e.Person()] = a
		}
		w := 0
		for _, tag := range e.EffectiveTags(regCap) {
			w += v.Weight(tag)
			a.counts[tag]++
		}
		a.score += w
		if w > 0 {
			a.rows++
		}
	}

	out := make([]PersonViolations, 0, len(per))
	for person, a := range per {
		out = append(out, PersonViolations{
			Person:     person,
			Score:      a.score,
			Rows:       a.rows,
			TopReasons: topReasons(a.counts, 5),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if out[i].Rows != out[j].Rows {
			return out[i].Rows > out[j].Rows
		}
		return out[i].Person < out[j].Person
	})
	return out
}

func topReasons(counts map[string]int, n int) string {
	type kv struct {
		tag   string
		count int
	}
	all := make([]kv, 0, len(counts))
	for tag, c := range counts {
		all = append(all, kv{tag, c})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].count != all[j].count {
			return all[i].count > all[j].count
		}
		return all[i].tag < all[j].tag
	})
	if len(all) > n {
		all = all[:n]
	}
	parts := make([]string, len(all))
	for i, e := range all {
		parts[i] = fmt.Sprintf("%s:%d", e.tag, e.count)
	}
	return strings.Join(parts, ", ")
}

// SortBySeverity orders review entries by their person's violation
// standing (score desc, rows desc), then name, then day. Entries for
// unscored persons sink to the bottom in name order.
func SortBySeverity(entries []ReviewEntry, rollup []PersonViolations) {
	score := make(map[string]int, len(rollup))
	rows := make(map[string]int, len(rollup))
	for _, pv := range rollup {
		score[pv.Person] = pv.Score
		rows[pv.Person] = pv.Rows
	}
	sort.SliceStable(entries, func(i, j int) bool {
		pi, pj := entries[i].Person(), entries[j].Person()
		if score[pi] != score[pj] {
			return score[pi] > score[pj]
		}
		if rows[pi] != rows[pj] {
			return rows[pi] > rows[pj]
		}
		if pi != pj {
			return pi < pj
		}
		return entries[i].Day.Before(entries[j].Day)
	})
}
