/*
ledger.go - Cash and payroll ledger views

PURPOSE:
  The payday run writes into two pre-built ledger sheets. Both carry
  one row per employee per pay type; the run never adds or removes
  rows, it only fills hour and dollar cells on rows that already
  exist. These views wrap a sheet.Table with the column layout of each
  ledger and the row-lookup both fills share.

CASH LEDGER (one row per name+type, types R and OT):
    0 Name   1 Type   2 Hours   3 Rate   4 Row Pay   5 Total

PAYROLL LEDGER (types R, OT and SICK):
    0 Name   2 Type   3 Hours

ROW PAY AND TOTALS:
  Row Pay is hours x rate per row, but the sheet displays money once
  per person: the first row a name appears on carries the figure and
  every later row of that name is cleared. The Total column follows
  the same first-row rule and lands after bonuses, reimbursements and
  loan deductions are in.

SEE ALSO:
  - fill.go: routes roster hours into these views
  - loans/: consumes the pre-loan totals computed here
*/
package payroll

import (
	"strings"

	"github.com/warp/payroll-engine/money"
	"github.com/warp/payroll-engine/sheet"
)

// =============================================================================
// COLUMN LAYOUT
// =============================================================================

const (
	cashNameCol   = 0
	cashTypeCol   = 1
	cashHoursCol  = 2
	cashRateCol   = 3
	cashRowPayCol = 4
	cashTotalCol  = 5

	payNameCol  = 0
	payTypeCol  = 2
	payHoursCol = 3

	ledgerDataRow = 1 // single header row
)

// Pay types as the ledgers spell them.
const (
	TypeRegular  = "R"
	TypeOvertime = "OT"
	TypeSick     = "SICK"
)

// =============================================================================
// CASH LEDGER
// =============================================================================

// CashLedger is a view over the cash sheet.
type CashLedger struct {
	T *sheet.Table
}

func NewCashLedger(t *sheet.Table) *CashLedger {
	return &CashLedger{T: t}
}

// Names returns the distinct employee names in first-seen sheet order.
func (c *CashLedger) Names() []string {
	return distinctNames(c.T, cashNameCol)
}

// FindRow locates the row for an exact name and pay type, or -1.
// Lookup is exact on the trimmed name; fuzzy matching happens before
// this point, against the Names list.
func (c *CashLedger) FindRow(name, typ string) int {
	return findRow(c.T, cashNameCol, cashTypeCol, name, typ)
}

// SetHours writes the hours cell of a row.
func (c *CashLedger) SetHours(row int, h float64) {
	c.T.SetCell(row, cashHoursCol, sheet.FormatHours(h))
}

// PayTotals is one person's accumulated row pay by type.
type PayTotals struct {
	Reg money.Money
	OT  money.Money
}

// Base is the person's pay before bonuses, reimbursements and loans.
func (p PayTotals) Base() money.Money { return p.Reg.Add(p.OT) }

// ApplyRowPay computes hours x rate for every ledger row, writes the
// Row Pay column, and returns the accumulated pay per name.
//
// The first row a name appears on gets the figure; later rows of the
// same name are cleared so the printed sheet shows one amount per
// person. Rows with unparseable hours or rate compute as zero. Only
// R and OT rows feed the returned totals.
func (c *CashLedger) ApplyRowPay() map[string]PayTotals {
	totals := make(map[string]PayTotals)
	seen := make(map[string]bool)

	for row := ledgerDataRow; row < c.T.NumRows(); row++ {
		name := c.T.Cell(row, cashNameCol)
		if sheet.Blank(name) {
			continue
		}
		h, _ := sheet.ParseFloat(c.T.Cell(row, cashHoursCol))
		r, _ := sheet.ParseFloat(c.T.Cell(row, cashRateCol))
		pay := money.FromHoursRate(h, r)

		if !seen[name] {
			c.T.SetCell(row, cashRowPayCol, pay.String())
			seen[name] = true
		} else {
			c.T.ClearCell(row, cashRowPayCol)
		}

		pt := totals[name]
		switch strings.ToUpper(c.T.Cell(row, cashTypeCol)) {
		case TypeRegular:
			pt.Reg = pt.Reg.Add(pay)
		case TypeOvertime:
			pt.OT = pt.OT.Add(pay)
		}
		totals[name] = pt
	}
	return totals
}

// Adjustments are the non-hourly money flows that land on the cash
// total: bonuses and reimbursements add, loan deductions subtract.
// All maps are keyed by cash-ledger name.
type Adjustments struct {
	Bonus      map[string]money.Money
	Reimb      map[string]money.Money
	Deductions map[string]money.Money
}

func (a Adjustments) bonus(name string) money.Money      { return a.Bonus[name] }
func (a Adjustments) reimb(name string) money.Money      { return a.Reimb[name] }
func (a Adjustments) deductions(name string) money.Money { return a.Deductions[name] }

// PreloanTotals returns each person's total before loan deductions:
// base pay plus bonus plus reimbursement, rounded to cents. The loan
// allocator treats this figure as the money available to deduct from.
func (c *CashLedger) PreloanTotals(pay map[string]PayTotals, adj Adjustments) map[string]money.Money {
	out := make(map[string]money.Money)
	for _, name := range c.Names() {
		total := pay[name].Base().Add(adj.bonus(name)).Add(adj.reimb(name))
		out[name] = total.Round2()
	}
	return out
}

// ApplyNetTotals writes the Total column: base pay plus bonus plus
// reimbursement minus loan deduction, rounded to cents. Every name in
// the sheet gets a total on its first row, whether or not the weekly
// roster mentioned it; a stale figure from last week must never
// survive. Returns the number of totals written.
func (c *CashLedger) ApplyNetTotals(pay map[string]PayTotals, adj Adjustments, floorAtZero bool) int {
	written := 0
	seen := make(map[string]bool)

	for row := ledgerDataRow; row < c.T.NumRows(); row++ {
		name := c.T.Cell(row, cashNameCol)
		if sheet.Blank(name) || seen[name] {
			continue
		}
		seen[name] = true

		net := pay[name].Base().
			Add(adj.bonus(name)).
			Add(adj.reimb(name)).
			Sub(adj.deductions(name)).
			Round2()
		if floorAtZero {
			net = net.FloorZero()
		}
		c.T.SetCell(row, cashTotalCol, net.String())
		written++
	}
	return written
}

// =============================================================================
// PAYROLL LEDGER
// =============================================================================

// PayrollLedger is a view over the payroll sheet.
type PayrollLedger struct {
	T *sheet.Table
}

func NewPayrollLedger(t *sheet.Table) *PayrollLedger {
	return &PayrollLedger{T: t}
}

// Names returns the distinct employee names in first-seen sheet order.
func (p *PayrollLedger) Names() []string {
	return distinctNames(p.T, payNameCol)
}

// FindRow locates the row for an exact name and pay type, or -1.
func (p *PayrollLedger) FindRow(name, typ string) int {
	return findRow(p.T, payNameCol, payTypeCol, name, typ)
}

// SetHours writes the hours cell of a row.
func (p *PayrollLedger) SetHours(row int, h float64) {
	p.T.SetCell(row, payHoursCol, sheet.FormatHours(h))
}

// =============================================================================
// SHARED LOOKUPS
// =============================================================================

func distinctNames(t *sheet.Table, nameCol int) []string {
	var out []string
	seen := make(map[string]bool)
	for row := ledgerDataRow; row < t.NumRows(); row++ {
		name := t.Cell(row, nameCol)
		if sheet.Blank(name) || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

func findRow(t *sheet.Table, nameCol, typeCol int, name, typ string) int {
	want := strings.TrimSpace(name)
	wantType := strings.ToUpper(strings.TrimSpace(typ))
	for row := ledgerDataRow; row < t.NumRows(); row++ {
		if t.Cell(row, nameCol) == want &&
			strings.ToUpper(t.Cell(row, typeCol)) == wantType {
			return row
		}
	}
	return -1
}
