/*
fill.go - Applying the roster to the ledgers

PURPOSE:
  Connects the three name universes of the payday run and pushes the
  split hours into the ledger sheets. Roster names are matched
  fuzzily against the cash ledger, cash names against the payroll
  ledger; from there on every write is an exact row lookup.

IDENTITY:
  The cash ledger is the canonical spelling. A roster name with no
  cash match routes nothing and is reported as missing from Cash. A
  cash name with no payroll match falls back to the cash spelling,
  which covers the common case of the two ledgers agreeing while the
  roster drifts.

SEE ALSO:
  - split.go: the per-category routing rules
  - loans/: deducts from the totals this fill produces
*/
package payroll

import (
	"github.com/warp/payroll-engine/config"
	"github.com/warp/payroll-engine/match"
)

// =============================================================================
// IDENTITY
// =============================================================================

// Identity links the weekly roster, cash ledger and payroll ledger
// name spellings.
type Identity struct {
	WeeklyToCash  map[string]string
	CashToPayroll map[string]string
}

// ResolveIdentity fuzzy-matches weekly names into the cash ledger and
// the matched cash names into the payroll ledger.
func ResolveIdentity(weeklyNames, cashNames, payrollNames []string, m config.Matching) Identity {
	id := Identity{
		WeeklyToCash:  make(map[string]string),
		CashToPayroll: make(map[string]string),
	}
	for _, wn := range weeklyNames {
		if res := match.MatchLedger(wn, cashNames, m.StrictScore, m.FallbackScore); res.Ok() {
			id.WeeklyToCash[wn] = res.Name
		}
	}
	for _, cn := range id.WeeklyToCash {
		if _, done := id.CashToPayroll[cn]; done {
			continue
		}
		if res := match.MatchLedger(cn, payrollNames, m.StrictScore, m.FallbackScore); res.Ok() {
			id.CashToPayroll[cn] = res.Name
		}
	}
	return id
}

// CashName returns the cash-ledger spelling for a weekly name.
func (id Identity) CashName(weekly string) (string, bool) {
	cn, ok := id.WeeklyToCash[weekly]
	return cn, ok
}

// PayrollName returns the payroll-ledger spelling for a cash name,
// defaulting to the cash spelling when the payroll ledger has no
// match.
func (id Identity) PayrollName(cashName string) string {
	if pn, ok := id.CashToPayroll[cashName]; ok {
		return pn
	}
	return cashName
}

// UnmatchedReport names a roster employee one or both ledgers do not
// know.
type UnmatchedReport struct {
	Name    string
	Missing []string // "Cash" and/or "Payroll"
}

// Unmatched reports, in roster order, every employee missing from the
// cash ledger, or whose cash match is missing from the payroll
// ledger.
func (id Identity) Unmatched(rosterNames []string) []UnmatchedReport {
	var out []UnmatchedReport
	for _, name := range rosterNames {
		cn, ok := id.WeeklyToCash[name]
		if !ok {
			out = append(out, UnmatchedReport{Name: name, Missing: []string{"Cash"}})
			continue
		}
		if _, ok := id.CashToPayroll[cn]; !ok {
			out = append(out, UnmatchedReport{Name: name, Missing: []string{"Payroll"}})
		}
	}
	return out
}

// =============================================================================
// FILL
// =============================================================================

// FillResult counts what a ledger fill wrote.
type FillResult struct {
	CashCells    int
	PayrollCells int
	SickEntries  int
}

// Fill routes every matched roster employee's hours into the cash and
// payroll ledgers. Hour cells are written only on rows that already
// exist; a missing row drops that write silently, the ledgers own
// their own row sets. Sick hours are buffered and written to the
// payroll SICK rows after the main pass.
func Fill(r *Roster, cash *CashLedger, pay *PayrollLedger, id Identity, caps config.Caps) *FillResult {
	type sickCredit struct {
		payrollName string
		hours       float64
	}

	res := &FillResult{}
	var sick []sickCredit

	for _, emp := range r.Employees {
		cashName, ok := id.CashName(emp.Name)
		if !ok {
			continue
		}
		payrollName := id.PayrollName(cashName)

		if emp.Sick > 0 {
			sick = append(sick, sickCredit{payrollName, emp.Sick})
		}

		split := SplitHours(emp.Category, emp.Reg, emp.OT, emp.Sick, caps)

		if split.PayrollReg != nil {
			if row := pay.FindRow(payrollName, TypeRegular); row >= 0 {
				pay.SetHours(row, *split.PayrollReg)
				res.PayrollCells++
			}
		}
		if split.CashReg != nil {
			if row := cash.FindRow(cashName, TypeRegular); row >= 0 {
				cash.SetHours(row, *split.CashReg)
				res.CashCells++
			}
		}
		if split.CashOT != nil {
			if row := cash.FindRow(cashName, TypeOvertime); row >= 0 {
				cash.SetHours(row, *split.CashOT)
				res.CashCells++
			}
		}
	}

	for _, sc := range sick {
		if row := pay.FindRow(sc.payrollName, TypeSick); row >= 0 {
			pay.SetHours(row, sc.hours)
			res.PayrollCells++
		}
	}
	res.SickEntries = len(sick)
	return res
}
