package sheet

import (
	"strings"
	"time"
)

// =============================================================================
// DAY-HEADER PARSING
// =============================================================================

// dayLayouts covers the formats day headers show up in. The office
// convention is m.d.yy; exports that round-tripped through other tools
// arrive with slashes or ISO dashes, sometimes with a time suffix.
var dayLayouts = []string{
	"1.2.06",
	"1.2.2006",
	"1/2/06",
	"1/2/2006",
	"2006-01-02",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// ParseDay parses a day-header cell. The second return is false when
// the cell is not a date at all.
func ParseDay(s string) (time.Time, bool) {
	v := strings.TrimSpace(s)
	if v == "" {
		return time.Time{}, false
	}
	// Strip a time-of-day suffix ("8.18.25 0:00").
	if i := strings.IndexAny(v, " T"); i > 0 && strings.ContainsAny(v[i+1:], ":") {
		v = v[:i]
	}
	for _, layout := range dayLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDay renders a date in the configured header format.
func FormatDay(t time.Time, layout string) string {
	return t.Format(layout)
}

// SameMonthDay reports whether two dates share month and day, ignoring
// year. Timesheets routinely carry last year's template dates, so the
// fallback lookup matches on (month, day) alone.
func SameMonthDay(a, b time.Time) bool {
	return a.Month() == b.Month() && a.Day() == b.Day()
}

// IsWeekday reports Mon-Fri.
func IsWeekday(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}
