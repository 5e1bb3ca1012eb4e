/*
round.go - Billable-increment rounding

PURPOSE:
  Turns raw elapsed hours from the punch clock into the half-hour
  increments the payroll sheets carry. Two rules stack:

  1. The eight-hour snap: anything from 8:00 to 8:20 inclusive books as
     exactly 8.0. A standard day that runs a few minutes long is still a
     standard day.
  2. Everything else rounds to the nearest 30 minutes with a 15-minute
     midpoint, computed on whole minutes so 7:45 books 8.0 and 7:44
     books 7.5.

  Round is pure and idempotent: a value that already sits on a
  half-hour boundary (and outside the snap window) maps to itself.

SEE ALSO:
  - reconcile/: flags raised when raw and rounded drift apart
*/
package hours

import (
	"fmt"
	"math"
)

// Step is the rounding granularity in hours. Round works in whole
// minutes but always lands on a multiple of this.
const Step = 0.5

// Snap window in whole minutes, inclusive on both ends.
const (
	snapLow  = 480 // 8:00
	snapHigh = 500 // 8:20
)

// Round converts raw elapsed hours to billable hours.
// Negative input is passed through untouched; the clock does not
// produce negative stints, so no rule is defined for them.
func Round(raw float64) float64 {
	if raw < 0 {
		return raw
	}
	mins := int(math.Floor(raw*60 + 0.5))
	if mins >= snapLow && mins <= snapHigh {
		return 8.0
	}
	rounded := ((mins + 15) / 30) * 30
	return float64(rounded) / 60.0
}

// Drift reports whether rounding moved the value enough to note.
// The sheets show two decimals, so anything under a hundredth is
// rounding noise, not a drift worth flagging.
func Drift(raw, rounded float64) bool {
	return math.Abs(raw-rounded) >= 0.01
}

// FormatHHMM renders hours as H:MM, e.g. 10.25 -> "10:15".
func FormatHHMM(h float64) string {
	mins := int(math.Floor(h*60 + 0.5))
	return fmt.Sprintf("%d:%02d", mins/60, mins%60)
}
