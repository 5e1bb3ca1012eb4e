/*
Package loans deducts employee loan payments from cash pay.

PURPOSE:
  The office tracks loans it has extended to employees in a workbook
  with an open-loans sheet and a history sheet. Each payday, every
  open loan's weekly payment is deducted from the borrower's cash
  total, within what that person actually earned this week. Loans
  paid down to zero move to the history sheet.

OPEN SHEET:
  Columns are located by header substring on the first row, because
  the office reorders them freely:

    name        the borrower (fuzzy-matched to the cash ledger)
    payment     the intended weekly deduction
    loan amount the original principal
    date        when the loan was taken        (optional)
    total paid  running repayment total        (optional, written back)
    balance     remaining balance              (optional, written back)

  A sheet without a name or payment header is the wrong file and is
  refused. The starting balance comes from the balance cell when it
  holds a number, otherwise from loan amount minus total paid.

SEE ALSO:
  - allocate.go: the per-person deduction pass
  - payroll/: produces the pre-loan totals deductions draw from
*/
package loans

import (
	"github.com/warp/payroll-engine/config"
	"github.com/warp/payroll-engine/match"
	"github.com/warp/payroll-engine/money"
	"github.com/warp/payroll-engine/sheet"
)

const (
	openHeaderRow    = 0
	openDataRow      = 1
	defaultAmountCol = 1
)

// columns is where the open sheet keeps each field; -1 marks an
// optional column the sheet does not have.
type columns struct {
	name    int
	payment int
	amount  int
	date    int
	paid    int
	balance int
}

func resolveColumns(t *sheet.Table) (columns, error) {
	header := t.Row(openHeaderRow)
	c := columns{
		name:    sheet.FindColumn(header, "name"),
		payment: sheet.FindColumn(header, "payment"),
		amount:  sheet.FindColumn(header, "loan amount"),
		date:    sheet.FindColumn(header, "date"),
		paid:    sheet.FindColumn(header, "total paid"),
		balance: sheet.FindColumn(header, "balance"),
	}
	if c.name < 0 {
		return c, &sheet.MissingColumnError{Sheet: t.Name, Column: "name"}
	}
	if c.payment < 0 {
		return c, &sheet.MissingColumnError{Sheet: t.Name, Column: "payment"}
	}
	if c.amount < 0 {
		c.amount = defaultAmountCol
	}
	return c, nil
}

// Row is one open loan, attributed to a cash-ledger person.
type Row struct {
	Row          int
	Person       string // cash-ledger spelling
	DisplayName  string // as the loan sheet spells it
	Intended     money.Money
	StartBalance money.Money
	LoanAmount   money.Money
	PrevPaid     money.Money
	DateTaken    string
}

// Book is the parsed open-loans sheet, grouped by borrower. People
// holds the borrowers in order of first appearance; rows within a
// person keep sheet order, which decides which loan gets paid first
// when money runs short.
type Book struct {
	Open      *sheet.Table
	People    []string
	Rows      map[string][]Row
	Unmatched []string // loan names with no cash-ledger match
	Processed int
	cols      columns
}

// Read parses the open-loans sheet and matches each borrower to a
// cash-ledger name at the bonus tier. Rows with no intended payment
// are dormant and skipped; rows whose name matches nobody are
// surfaced in Unmatched so the office can fix the spelling.
func Read(t *sheet.Table, cashNames []string, m config.Matching) (*Book, error) {
	cols, err := resolveColumns(t)
	if err != nil {
		return nil, err
	}

	b := &Book{Open: t, Rows: make(map[string][]Row), cols: cols}
	for r := openDataRow; r < t.NumRows(); r++ {
		display := t.Cell(r, cols.name)
		if sheet.Blank(display) {
			continue
		}
		intended, _ := sheet.ParseMoney(t.Cell(r, cols.payment))
		if intended <= 0 {
			continue
		}

		cm := match.MatchLedger(display, cashNames, m.BonusScore, m.FallbackScore)
		if !cm.Ok() {
			b.Unmatched = append(b.Unmatched, display)
			continue
		}
		person := cm.Name

		loanAmt, _ := sheet.ParseMoney(t.Cell(r, cols.amount))
		prevPaid := 0.0
		if cols.paid >= 0 {
			prevPaid, _ = sheet.ParseMoney(t.Cell(r, cols.paid))
		}

		startBal, ok := 0.0, false
		if cols.balance >= 0 {
			if cell := t.Cell(r, cols.balance); !sheet.Blank(cell) {
				startBal, ok = sheet.ParseFloat(cell)
			}
		}
		if !ok {
			startBal = loanAmt - prevPaid
		}

		row := Row{
			Row:          r,
			Person:       person,
			DisplayName:  display,
			Intended:     money.New(intended).Round2(),
			StartBalance: money.New(startBal).Round2(),
			LoanAmount:   money.New(loanAmt).Round2(),
			PrevPaid:     money.New(prevPaid).Round2(),
		}
		if cols.date >= 0 {
			row.DateTaken = t.Cell(r, cols.date)
		}

		if _, seen := b.Rows[person]; !seen {
			b.People = append(b.People, person)
		}
		b.Rows[person] = append(b.Rows[person], row)
		b.Processed++
	}
	return b, nil
}
