/*
allocate.go - The weekly deduction pass

PURPOSE:
  Walks every borrower's open loans and decides how much to deduct
  this payday. Three ceilings apply to each loan row, lowest wins:

    intended   the weekly payment written in the sheet
    balance    a loan never collects more than it is owed
    available  the borrower's pre-loan cash total, less what earlier
               rows of theirs already took this run

  Every deduction writes the row's total-paid and balance cells back.
  A balance at zero (within the configured epsilon) closes the loan:
  the open row is blanked and a closing record is produced for the
  history sheet.

NOTES:
  Two human-readable note lines cover the cases the office asks
  about: an intended payment larger than the remaining balance, and a
  deduction cut short by available pay. Notes use the cash-ledger
  spelling of the borrower.

SEE ALSO:
  - loans.go: the Book this pass runs over
*/
package loans

import (
	"fmt"

	"github.com/warp/payroll-engine/money"
	"github.com/warp/payroll-engine/sheet"
)

// historyInsertRow is where closed loans enter the history sheet:
// just under its two banner rows, newest on top.
const historyInsertRow = 2

// Closing is a paid-off loan headed for the history sheet.
type Closing struct {
	DisplayName string
	LoanAmount  money.Money
	Payment     money.Money
	DateTaken   string
}

// Result is everything a deduction pass produced.
type Result struct {
	Deducted  map[string]money.Money // by cash-ledger name
	Notes     []string
	Closings  []Closing
	Processed int
	Closed    int
}

// Allocate runs the deduction pass. available is each borrower's
// pre-loan cash total; closeEps is the balance below which a loan
// counts as paid off. The open sheet is mutated in place.
func (b *Book) Allocate(available map[string]money.Money, closeEps float64) *Result {
	res := &Result{
		Deducted:  make(map[string]money.Money),
		Processed: b.Processed,
	}

	for _, person := range b.People {
		avail := available[person].FloorZero()
		taken := money.Zero()

		for _, row := range b.Rows[person] {
			startBal := row.StartBalance.FloorZero()
			due := row.Intended.Min(startBal)
			headroom := avail.Sub(taken).FloorZero()
			take := due.Min(headroom)

			if take.IsPositive() {
				newPaid := row.PrevPaid.Add(take).Round2()
				newBal := startBal.Sub(take).FloorZero().Round2()

				if b.cols.paid >= 0 {
					b.Open.SetCell(row.Row, b.cols.paid, newPaid.String())
				}
				if b.cols.balance >= 0 {
					b.Open.SetCell(row.Row, b.cols.balance, newBal.String())
				}
				taken = taken.Add(take)

				if newBal.WithinOf(money.Zero(), closeEps) {
					res.Closed++
					res.Closings = append(res.Closings, Closing{
						DisplayName: row.DisplayName,
						LoanAmount:  row.LoanAmount,
						Payment:     take,
						DateTaken:   row.DateTaken,
					})
					clearRow(b.Open, row.Row)
				}
			}

			if row.Intended.GreaterThan(startBal) {
				res.Notes = append(res.Notes, fmt.Sprintf(
					"%s: capped to balance $%s (intended $%s)",
					person, startBal.String(), row.Intended.String()))
			}
			if take.LessThan(due) {
				short := due.Sub(take)
				res.Notes = append(res.Notes, fmt.Sprintf(
					"%s: only $%s deducted, $%s rolled",
					person, take.String(), short.String()))
			}
		}
		res.Deducted[person] = taken.Round2()
	}
	return res
}

// AppendHistory inserts closing records at the top of the history
// sheet's data region. Columns are located by header substring on the
// first row, with the conventional order (name, loan amount, payment,
// date) as the fallback.
func AppendHistory(t *sheet.Table, closings []Closing) {
	header := t.Row(openHeaderRow)
	col := func(substr string, def int) int {
		if i := sheet.FindColumn(header, substr); i >= 0 {
			return i
		}
		return def
	}
	nameCol := col("name", 0)
	amountCol := col("loan amount", 1)
	paymentCol := col("payment", 2)
	dateCol := col("date", 3)

	for _, c := range closings {
		t.InsertRow(historyInsertRow)
		t.SetCell(historyInsertRow, nameCol, c.DisplayName)
		t.SetCell(historyInsertRow, amountCol, c.LoanAmount.String())
		t.SetCell(historyInsertRow, paymentCol, c.Payment.String())
		if c.DateTaken != "" {
			t.SetCell(historyInsertRow, dateCol, c.DateTaken)
		}
	}
}

func clearRow(t *sheet.Table, row int) {
	for col := range t.Row(row) {
		t.ClearCell(row, col)
	}
}
