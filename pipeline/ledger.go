/*
ledger.go - The payday run

PURPOSE:
  Turns the filled weekly timesheet into the Cash and Payroll ledgers:
  category split and sick credit per employee, bonuses and
  reimbursements from the bonus sheet, row pay from the ledger rates,
  loan collection against the pre-loan totals, net cash totals last.

ORDER MATTERS:
  Loan payments come out of pre-loan totals (base pay + bonus +
  reimbursement), and net totals are written only after allocation.
  The loan book's balances are reduced in place; this run must not be
  repeated against an already-updated book.
*/
package pipeline

import (
	"context"

	"github.com/warp/payroll-engine/bonus"
	"github.com/warp/payroll-engine/loans"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/report"
	"github.com/warp/payroll-engine/sheet"
	"github.com/warp/payroll-engine/store"
)

// LedgerInputs collects the tables of one payday run. Bonus, Loans
// and LoanHistory are optional; History without Loans is ignored.
type LedgerInputs struct {
	Weekly      *sheet.Table
	Cash        *sheet.Table
	Payroll     *sheet.Table
	Bonus       *sheet.Table
	Loans       *sheet.Table
	LoanHistory *sheet.Table
}

// LedgerRun is the outcome of a payday run. Cash, Payroll, Loans and
// LoanHistory are the input tables updated in place.
type LedgerRun struct {
	Roster    *payroll.Roster
	Fill      *payroll.FillResult
	Bonus     *bonus.Result // nil without a bonus table
	Loans     *loans.Result // nil without a loan book
	Unmatched []payroll.UnmatchedReport

	// LoanUnmatched lists loan-sheet names with no cash-ledger match;
	// their balances were left untouched.
	LoanUnmatched []string

	TotalsWritten int

	Cash            *sheet.Table
	Payroll         *sheet.Table
	LoanBook        *sheet.Table
	LoanHistory     *sheet.Table
	CashFilename    string
	PayrollFilename string

	Message string
	Run     store.Run
}

// Ledger runs the payday fill over the weekly sheet and both ledgers.
func (r *Runner) Ledger(ctx context.Context, in LedgerInputs) (*LedgerRun, error) {
	ros, err := payroll.ReadRoster(in.Weekly, r.Settings)
	if err != nil {
		return nil, err
	}

	cash := payroll.NewCashLedger(in.Cash)
	pay := payroll.NewPayrollLedger(in.Payroll)
	id := payroll.ResolveIdentity(ros.Names(), cash.Names(), pay.Names(), r.Settings.Matching)

	fill := payroll.Fill(ros, cash, pay, id, r.Settings.Caps)
	unmatched := id.Unmatched(ros.Names())

	var adj payroll.Adjustments
	var bres *bonus.Result
	if in.Bonus != nil {
		bres, err = bonus.Apply(in.Bonus, cash.Names(), r.Settings.Matching)
		if err != nil {
			return nil, err
		}
		adj.Bonus = bres.Bonuses
		adj.Reimb = bres.Reimb
	}

	rowPay := cash.ApplyRowPay()

	var lres *loans.Result
	var loanUnmatched []string
	if in.Loans != nil && r.Settings.Loans.Enabled {
		book, err := loans.Read(in.Loans, cash.Names(), r.Settings.Matching)
		if err != nil {
			return nil, err
		}
		preloan := cash.PreloanTotals(rowPay, adj)
		lres = book.Allocate(preloan, r.Settings.Loans.CloseEpsilon)
		if in.LoanHistory != nil {
			loans.AppendHistory(in.LoanHistory, lres.Closings)
		}
		adj.Deductions = lres.Deducted
		loanUnmatched = book.Unmatched
	}

	totals := cash.ApplyNetTotals(rowPay, adj, r.Settings.Loans.FloorCashAtZero)

	msg := report.LedgerMessage(report.LedgerStats{
		RosterRows:    ros.Rows,
		CashCells:     fill.CashCells,
		PayrollCells:  fill.PayrollCells,
		SickEntries:   fill.SickEntries,
		TotalsWritten: totals,
		Unmatched:     unmatched,
		Bonus:         bres,
		Loans:         lres,
		LoanUnmatched: loanUnmatched,
	})

	// Counter mapping for this kind: Matched and Unmatched count
	// roster employees by cash-identity outcome, NeedsReview counts
	// loan rows awaiting a spelling fix, Anomalies counts loan notes.
	matched := 0
	for _, e := range ros.Employees {
		if _, ok := id.CashName(e.Name); ok {
			matched++
		}
	}
	anomalies := 0
	if lres != nil {
		anomalies = len(lres.Notes)
	}
	run, err := r.record(ctx, store.KindLedger, store.Counters{
		Matched:     matched,
		Unmatched:   len(unmatched),
		NeedsReview: len(loanUnmatched),
		CellsFilled: fill.CashCells + fill.PayrollCells,
		Anomalies:   anomalies,
	}, msg)
	if err != nil {
		return nil, err
	}

	out := &LedgerRun{
		Roster:          ros,
		Fill:            fill,
		Bonus:           bres,
		Loans:           lres,
		Unmatched:       unmatched,
		LoanUnmatched:   loanUnmatched,
		TotalsWritten:   totals,
		Cash:            in.Cash,
		Payroll:         in.Payroll,
		CashFilename:    r.OutputName(r.Settings.Output.CashPrefix),
		PayrollFilename: r.OutputName(r.Settings.Output.PayrollPrefix),
		Message:         msg,
		Run:             run,
	}
	if lres != nil {
		out.LoanBook = in.Loans
		out.LoanHistory = in.LoanHistory
	}
	return out, nil
}
