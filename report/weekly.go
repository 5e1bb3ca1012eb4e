/*
weekly.go - The weekly secretary message

PURPOSE:
  The message the office gets after a full-week fill. Three fixed
  lines up top (what was filled, how many items need review), then a
  "Heads-up" tally of the reasons worth acting on, then a handful of
  concrete examples, one per person, worst first.

COUNTING:
  An item counts as flagged when it carries any reason besides plain
  rounding, or a suggested correction. Pure rounding rows are the
  normal case, not a flag. The heads-up tally drops the reasons the
  office has said it does not want totals for, and the low-name-match
  bullet shows the count of low-confidence matches rather than row
  occurrences: one person matching badly across five days is one
  problem, not five.
*/
package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/warp/payroll-engine/config"
	"github.com/warp/payroll-engine/hours"
	"github.com/warp/payroll-engine/reconcile"
	"github.com/warp/payroll-engine/sheet"
)

// headsUpOrder pins the familiar bullets to the top of the tally.
var headsUpOrder = []string{
	reconcile.TagLowNameMatch,
	reconcile.TagSingleLongStint,
	reconcile.TagVeryLowWeekday,
	reconcile.TagGTDailyMax,
}

// WeeklyMessage summarizes a full-week reconciliation.
func WeeklyMessage(res *reconcile.WeeklyResult, cfg config.Settings) string {
	span := "N/A"
	if len(res.Days) > 0 {
		span = res.Days[0].Format("01/02") + " – " + res.Days[len(res.Days)-1].Format("01/02")
	}

	flagged := 0
	for _, e := range res.Review {
		if hasNonRoundingTag(e) || e.Suggested != nil {
			flagged++
		}
	}

	lowConf := 0
	for _, m := range res.Matches {
		if m.NeedsReview {
			lowConf++
		}
	}

	counts := make(map[string]int)
	for _, e := range res.Review {
		for _, tag := range e.Tags() {
			if cfg.Violations.Excluded(tag) {
				continue
			}
			counts[tag]++
		}
	}
	if _, ok := counts[reconcile.TagLowNameMatch]; ok {
		counts[reconcile.TagLowNameMatch] = lowConf
	}

	tags := make([]string, 0, len(counts))
	for tag := range counts {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		oi, oj := hintIndex(tags[i]), hintIndex(tags[j])
		if oi != oj {
			return oi < oj
		}
		if counts[tags[i]] != counts[tags[j]] {
			return counts[tags[i]] > counts[tags[j]]
		}
		return tags[i] < tags[j]
	})

	regCap := sheet.FormatHours(cfg.Caps.DailyRegular)
	flaggedLine := fmt.Sprintf("Flagged %d item(s) for review.", flagged)
	if lowConf > 0 {
		flaggedLine += fmt.Sprintf("  Low-confidence name matches: %d.", lowConf)
	}

	lines := []string{
		fmt.Sprintf("Week %s: populated Reg (≤%sh) & OT (> %sh), rounded to nearest %sh.",
			span, regCap, regCap, sheet.FormatHours(hours.Step)),
		fmt.Sprintf("Filled %d day-cells.", res.FilledDays),
		flaggedLine,
	}

	if len(tags) > 0 {
		lines = append(lines, "Heads-up:")
		for _, tag := range tags {
			lines = append(lines, fmt.Sprintf("• %s: %d",
				strings.ReplaceAll(tag, "_", " "), counts[tag]))
		}
	}

	if examples := buildExamples(res.Review, cfg.Violations.MaxExamples); len(examples) > 0 {
		lines = append(lines, "\nExamples:")
		lines = append(lines, examples...)
	}

	lines = append(lines, "\nOpen the 'Review_Queue' sheet to fix any items. Thanks!")
	return strings.Join(lines, "\n")
}

func hasNonRoundingTag(e reconcile.ReviewEntry) bool {
	for _, tag := range e.Tags() {
		if tag != reconcile.TagRounded {
			return true
		}
	}
	return false
}

func hintIndex(tag string) int {
	for i, t := range headsUpOrder {
		if t == tag {
			return i
		}
	}
	return len(headsUpOrder) + 1
}

// buildExamples picks at most maxExamples lines from the review rows,
// one per person, in the order the rows already carry (worst first).
// Rows whose concerns boil down to nothing render no example.
func buildExamples(review []reconcile.ReviewEntry, maxExamples int) []string {
	var out []string
	seen := make(map[string]bool)
	for _, e := range review {
		name := e.Person()
		if name == "" || looksLikeTotal(name) || seen[name] {
			continue
		}
		concerns := concernsFor(e)
		if len(concerns) == 0 {
			continue
		}
		out = append(out, fmt.Sprintf("- %s on %s: %s",
			name, e.Day.Format("01/02/2006"), strings.Join(concerns, ", ")))
		seen[name] = true
		if len(out) >= maxExamples {
			break
		}
	}
	return out
}

func concernsFor(e reconcile.ReviewEntry) []string {
	var concerns []string
	if e.HasTag(reconcile.TagLowNameMatch) {
		concerns = append(concerns, fmt.Sprintf("Low Name Match: %d%%", e.Score))
	}
	if len(e.Stints) > 0 && e.HasTag(reconcile.TagSingleLongStint) {
		concerns = append(concerns, "Long Stint: "+hours.FormatHHMM(e.LongestStint()))
	}
	if e.Suggested != nil {
		if deltaM := int(math.Floor((e.Rounded-*e.Suggested)*60 + 0.5)); deltaM > 0 {
			concerns = append(concerns, fmt.Sprintf("Reduced %dm", deltaM))
		}
	}
	if e.HasTag(reconcile.TagVeryLowWeekday) {
		concerns = append(concerns, fmt.Sprintf("Low Weekday: %sh", sheet.FormatHours(e.Rounded)))
	}
	if e.HasTag(reconcile.TagGTDailyMax) {
		concerns = append(concerns, "Over Daily Max: "+hours.FormatHHMM(e.Rounded))
	}
	return concerns
}

func looksLikeTotal(name string) bool {
	s := strings.ToLower(name)
	return strings.HasPrefix(s, "total") || strings.Contains(s, "grand total")
}
