/*
ledger.go - The payday run summary

PURPOSE:
  The payday run produces two filled ledgers and, optionally, an
  updated loan book; this message tells the office what happened in
  numbers they can sanity-check against the sheets: cells written,
  totals landed, yards split, loans collected, and every name the
  run could not place.
*/
package report

import (
	"fmt"
	"strings"

	"github.com/warp/payroll-engine/bonus"
	"github.com/warp/payroll-engine/loans"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/sheet"
)

// LedgerStats collects the figures the payday summary reports.
// Bonus and Loans are nil when the run had no such sheet.
type LedgerStats struct {
	RosterRows    int
	CashCells     int
	PayrollCells  int
	SickEntries   int
	TotalsWritten int
	Unmatched     []payroll.UnmatchedReport
	Bonus         *bonus.Result
	Loans         *loans.Result
	LoanUnmatched []string
}

// LedgerMessage summarizes a payday run.
func LedgerMessage(s LedgerStats) string {
	lines := []string{
		fmt.Sprintf("Filled %d cash cell(s) and %d payroll cell(s) from %d roster row(s).",
			s.CashCells, s.PayrollCells, s.RosterRows),
		fmt.Sprintf("Sick entries: %d.", s.SickEntries),
		fmt.Sprintf("Wrote %d cash total(s).", s.TotalsWritten),
	}

	if s.Bonus != nil {
		lines = append(lines, fmt.Sprintf("Yards: %s reg + %s delfern = %s; foremen: %d.",
			sheet.FormatHours(s.Bonus.RegYards), sheet.FormatHours(s.Bonus.DelfernYards),
			sheet.FormatHours(s.Bonus.TotalYards), s.Bonus.NumForemen))
	}
	if s.Loans != nil {
		lines = append(lines, fmt.Sprintf("Loans: %d processed, %d closed.",
			s.Loans.Processed, s.Loans.Closed))
	}

	if len(s.Unmatched) > 0 {
		lines = append(lines, "", fmt.Sprintf("Not in ledgers (%d):", len(s.Unmatched)))
		for _, u := range s.Unmatched {
			lines = append(lines, fmt.Sprintf("• %s (missing %s)",
				u.Name, strings.Join(u.Missing, ", ")))
		}
	}

	if len(s.LoanUnmatched) > 0 {
		lines = append(lines, "", fmt.Sprintf("Loan rows with no cash match (%d):", len(s.LoanUnmatched)))
		for _, name := range s.LoanUnmatched {
			lines = append(lines, "• "+name)
		}
	}

	if s.Loans != nil && len(s.Loans.Notes) > 0 {
		lines = append(lines, "", "Loan notes:")
		for _, note := range s.Loans.Notes {
			lines = append(lines, "• "+note)
		}
	}

	return strings.Join(lines, "\n")
}
