/*
match.go - Two-tier fuzzy identity matching

PURPOSE:
  Links free-text employee names across documents that were never meant
  to agree: the timecard export says "Jon Smith", the weekly sheet says
  "Jonathan Smith Jr.", the cash ledger says "Smith, Jon". Every hour
  and dollar the engine moves rides on getting these links right.

TWO TIERS:
  1. Strict: best token-set score across all candidates must clear the
     strict threshold (default 92).
  2. Surname fallback: if strict fails, only candidates sharing the
     needle's last token are considered, against a lower threshold
     (default 85). First names carry most of the lexical noise
     (nicknames, middle names, suffixes); surnames are comparatively
     clean, so anchoring on the surname recovers legitimate matches
     without opening the door to cross-family ones.

TAGGED RESULTS:
  Match returns a Result whose Kind distinguishes a strict match from a
  fallback match from no match. Callers must branch on the tag; there is
  no nil sentinel to conflate "high confidence" with "barely made it".

FAILURE MODE:
  KindUnmatched with score 0. The caller surfaces it as an unresolved
  identity; records are never silently dropped.

SEE ALSO:
  - score.go: the token-set scorer
  - reconcile/: consumes crosswalks for hour reconciliation
  - payroll/, bonus/, loans/: use the tie-break variant for ledgers
*/
package match

// =============================================================================
// RESULT - Tagged match outcome
// =============================================================================

type Kind int

const (
	KindUnmatched Kind = iota
	KindMatched
	KindFallback
)

func (k Kind) String() string {
	switch k {
	case KindMatched:
		return "matched"
	case KindFallback:
		return "fallback"
	default:
		return "unmatched"
	}
}

// Result is the outcome of matching one needle against a roster.
type Result struct {
	Name  string // candidate as spelled in the roster; "" when unmatched
	Score int
	Kind  Kind
}

// Ok reports whether any match was found, at either tier.
func (r Result) Ok() bool { return r.Kind != KindUnmatched }

// =============================================================================
// TWO-TIER MATCH
// =============================================================================

// Match finds the best candidate for needle. Strict tier first, surname
// fallback second, KindUnmatched otherwise.
func Match(needle string, candidates []string, strict, fallback int) Result {
	wn := Normalize(needle)
	if wn == "" {
		return Result{}
	}

	best, bestScore := "", 0
	for _, c := range candidates {
		cn := Normalize(c)
		if cn == "" {
			continue
		}
		if sc := TokenSetRatio(wn, cn); sc > bestScore {
			best, bestScore = c, sc
		}
	}
	if bestScore >= strict {
		return Result{Name: best, Score: bestScore, Kind: KindMatched}
	}

	// Surname fallback: same last token only.
	last := lastToken(wn)
	if last != "" {
		fbBest, fbScore := "", 0
		for _, c := range candidates {
			cn := Normalize(c)
			if cn == "" || lastToken(cn) != last {
				continue
			}
			if sc := TokenSetRatio(wn, cn); sc > fbScore {
				fbBest, fbScore = c, sc
			}
		}
		if fbBest != "" && fbScore >= fallback {
			return Result{Name: fbBest, Score: fbScore, Kind: KindFallback}
		}
	}

	return Result{}
}

// =============================================================================
// LEDGER VARIANT - score ties broken by surname, then first initial
// =============================================================================

// MatchLedger behaves like Match but breaks score ties the way the cash
// ledger needs: prefer the candidate sharing the needle's surname, then
// the one sharing its first initial. Ledgers repeat family names
// (relatives on the same crew), so ties are common enough to matter.
func MatchLedger(needle string, candidates []string, strict, fallback int) Result {
	wn := Normalize(needle)
	if wn == "" {
		return Result{}
	}
	last, initial := lastToken(wn), firstInitial(wn)

	rank := func(cn string) int {
		if lastToken(cn) == last {
			return 0
		}
		if firstInitial(cn) == initial {
			return 1
		}
		return 2
	}

	best, bestScore, bestRank := "", 0, 3
	for _, c := range candidates {
		cn := Normalize(c)
		if cn == "" {
			continue
		}
		sc := TokenSetRatio(wn, cn)
		if sc > bestScore || (sc == bestScore && sc > 0 && rank(cn) < bestRank) {
			best, bestScore, bestRank = c, sc, rank(cn)
		}
	}
	if bestScore >= strict {
		return Result{Name: best, Score: bestScore, Kind: KindMatched}
	}

	fbBest, fbScore := "", 0
	for _, c := range candidates {
		cn := Normalize(c)
		if cn == "" || lastToken(cn) != last {
			continue
		}
		if sc := TokenSetRatio(wn, cn); sc > fbScore {
			fbBest, fbScore = c, sc
		}
	}
	if fbBest != "" && fbScore >= fallback {
		return Result{Name: fbBest, Score: fbScore, Kind: KindFallback}
	}

	return Result{}
}

// =============================================================================
// CROSSWALK - per-run identity map
// =============================================================================

// Pair links one source spelling to one target spelling.
type Pair struct {
	Source   string
	Target   string
	Score    int
	Fallback bool
}

// Crosswalk is the bidirectional identity map for one pipeline run.
// Built once, read-only afterwards.
//
// A target (canonical) name keeps only its highest-scoring source: when
// both "J Smith" and "Jon Smith" hit "Jonathan Smith", the better score
// wins and the other source stays mapped source-to-target only.
type Crosswalk struct {
	SourceToTarget map[string]Pair
	TargetToSource map[string]Pair
}

// BuildCrosswalk matches every source against the roster and folds the
// results into both directions.
func BuildCrosswalk(sources, roster []string, strict, fallback int) Crosswalk {
	cw := Crosswalk{
		SourceToTarget: make(map[string]Pair, len(sources)),
		TargetToSource: make(map[string]Pair),
	}
	for _, s := range sources {
		res := Match(s, roster, strict, fallback)
		if !res.Ok() {
			continue
		}
		p := Pair{Source: s, Target: res.Name, Score: res.Score, Fallback: res.Kind == KindFallback}
		cw.SourceToTarget[s] = p
		if cur, ok := cw.TargetToSource[res.Name]; !ok || p.Score > cur.Score {
			cw.TargetToSource[res.Name] = p
		}
	}
	return cw
}

// =============================================================================
// MATCH RECORDS - reporting rows
// =============================================================================

// Record is one row of the run report: how a source name resolved.
// Unmatched sources get Target "" and NeedsReview true.
type Record struct {
	Source      string
	Target      string
	Score       int
	NeedsReview bool
}

// NewRecord builds the report row for a source name given its match
// outcome and the strict threshold in force.
func NewRecord(source string, res Result, strict int) Record {
	return Record{
		Source:      source,
		Target:      res.Name,
		Score:       res.Score,
		NeedsReview: !res.Ok() || res.Score < strict,
	}
}
