package hours

import (
	"regexp"
	"strconv"
	"strings"
)

// Punch exports write elapsed time either as a decimal ("8.25") or as
// a clock duration ("8:15" / "8:15:00"); seconds are dropped.
var clockRE = regexp.MustCompile(`^(\d+):(\d{2})(?::\d{2})?$`)

// Parse reads an elapsed-hours cell. Accepts decimal hours or H:MM
// with an optional seconds suffix. Returns false for anything else.
func Parse(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if m := clockRE.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1])
		mm, _ := strconv.Atoi(m[2])
		return float64(h) + float64(mm)/60.0, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
