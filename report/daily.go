/*
Package report renders run results into the messages the office
actually reads.

PURPOSE:
  Every run ends with a short plain-text note pasted into the office
  chat: what was filled, what looked off, what needs a human. The
  numbers come straight from the run results; this package only
  formats. Wording can change without touching engine behavior, which
  is the point of keeping it in one place.
*/
package report

import (
	"fmt"
	"strings"

	"github.com/warp/payroll-engine/config"
	"github.com/warp/payroll-engine/hours"
	"github.com/warp/payroll-engine/reconcile"
	"github.com/warp/payroll-engine/sheet"
)

// DailyMessage summarizes a one-day reconciliation: the fill count,
// names the timesheet does not know, and the long and short shifts
// worth a look.
func DailyMessage(res *reconcile.DailyResult, cfg config.Settings) string {
	lines := []string{
		fmt.Sprintf("Updated %s: wrote Reg/OT for %d matched employee(s).",
			res.Day.Format("Mon 01/02/2006"), res.Filled),
		fmt.Sprintf("Rounded to nearest %sh; Reg cap %sh.",
			sheet.FormatHours(hours.Step), sheet.FormatHours(cfg.Caps.DailyRegular)),
	}

	if len(res.Unmatched) > 0 {
		lines = append(lines, "", fmt.Sprintf("Not in WeeklyTime (%d):", len(res.Unmatched)))
		for _, name := range res.Unmatched {
			lines = append(lines, "• "+name)
		}
	}

	if len(res.LongShifts) > 0 {
		lines = append(lines, "", fmt.Sprintf("Long shifts >%s (%d):",
			hours.FormatHHMM(cfg.Flags.LongStint), len(res.LongShifts)))
		for _, ls := range res.LongShifts {
			lines = append(lines, fmt.Sprintf("• %s — longest %s (total %s)",
				ls.Person, hours.FormatHHMM(ls.Longest), hours.FormatHHMM(ls.Total)))
		}
	}

	if len(res.ShortDays) > 0 {
		lines = append(lines, "", fmt.Sprintf("Very short day (>%s and <%s) (%d):",
			hours.FormatHHMM(reconcile.ShortDayLow), hours.FormatHHMM(reconcile.ShortDayHigh),
			len(res.ShortDays)))
		for _, sd := range res.ShortDays {
			lines = append(lines, fmt.Sprintf("• %s — total %s",
				sd.Person, hours.FormatHHMM(sd.Rounded)))
		}
	}

	return strings.Join(lines, "\n")
}
