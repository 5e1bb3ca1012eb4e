package match

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// =============================================================================
// NAME NORMALIZATION
// =============================================================================

// Payroll names arrive hand-typed: stray punctuation, double spaces,
// accents dropped or kept at random. Normalize maps all of that onto a
// single comparable form: lowercase, diacritics stripped, only letters,
// hyphens and apostrophes kept, single spaces between words.
//
// Results are memoized. The same few hundred names are normalized
// thousands of times while scoring a crosswalk, so the cache pays for
// itself on the first run.
var normCache sync.Map // raw -> normalized

func Normalize(s string) string {
	if v, ok := normCache.Load(s); ok {
		return v.(string)
	}
	n := normalize(s)
	normCache.Store(s, n)
	return n
}

func normalize(s string) string {
	s = stripDiacritics(strings.ToLower(s))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r == '-', r == '\'':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// stripDiacritics decomposes and drops combining marks, so "José" and
// "Jose" compare equal.
func stripDiacritics(s string) string {
	d := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(d))
	for _, r := range d {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// lastToken returns the surname position of an already-normalized name.
func lastToken(normalized string) string {
	fields := strings.Fields(normalized)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// firstInitial returns the first letter of an already-normalized name.
func firstInitial(normalized string) byte {
	if normalized == "" {
		return 0
	}
	return normalized[0]
}
