package match

import (
	"math"
	"sort"
	"strings"
)

// =============================================================================
// TOKEN-SET SIMILARITY
// =============================================================================
// Word-order-independent scoring on 0-100. "Smith, Jon" and "Jon Smith"
// score 100; "Jon Smith" and "Jonathan Smith Jr" score high on the
// shared surname plus partial first-name overlap. The combination rule
// compares the sorted token intersection against each side's full sorted
// token string and keeps the best of the three pairwise ratios, which is
// what makes subset names ("Jon Smith" inside "Jon Smith Jr") score 100.

// Ratio is an indel similarity on 0-100: the fraction of characters
// preserved under the cheapest insert/delete edit script, rounded.
func Ratio(a, b string) int {
	lensum := len([]rune(a)) + len([]rune(b))
	if lensum == 0 {
		return 0
	}
	dist := indelDistance(a, b)
	return int(math.Round(100 * float64(lensum-dist) / float64(lensum)))
}

// TokenSetRatio scores two names ignoring word order and duplicates.
func TokenSetRatio(a, b string) int {
	ta, tb := tokenSet(a), tokenSet(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	var sect, diffA, diffB []string
	for tok := range ta {
		if tb[tok] {
			sect = append(sect, tok)
		} else {
			diffA = append(diffA, tok)
		}
	}
	for tok := range tb {
		if !ta[tok] {
			diffB = append(diffB, tok)
		}
	}
	sort.Strings(sect)
	sort.Strings(diffA)
	sort.Strings(diffB)

	joined := strings.Join(sect, " ")
	combA := strings.TrimSpace(joined + " " + strings.Join(diffA, " "))
	combB := strings.TrimSpace(joined + " " + strings.Join(diffB, " "))

	best := Ratio(joined, combA)
	if r := Ratio(joined, combB); r > best {
		best = r
	}
	if r := Ratio(combA, combB); r > best {
		best = r
	}
	return best
}

// tokenSet splits on anything that is not a letter or digit. Hyphenated
// and apostrophe names count as separate words here ("o'brien" -> "o",
// "brien"), which keeps scores stable across the ways clerks type them.
func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	start := -1
	for i, r := range s {
		alnum := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if alnum {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			set[s[start:i]] = true
			start = -1
		}
	}
	if start >= 0 {
		set[s[start:]] = true
	}
	return set
}

// indelDistance is the edit distance allowing only inserts and deletes
// (a substitution costs two). Computed as len(a)+len(b)-2*LCS(a,b).
func indelDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for i := 1; i <= len(ra); i++ {
		curr[0] = 0
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	lcs := prev[len(rb)]
	return len(ra) + len(rb) - 2*lcs
}
