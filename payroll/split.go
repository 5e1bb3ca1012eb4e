/*
split.go - Category hour routing

PURPOSE:
  Given an employee's weekly Reg/OT totals and pay category, decide
  which ledger cells receive which hours. This is the heart of the
  payday run; everything else is lookup and bookkeeping.

RULES:
  a  full payroll: Reg goes to the payroll R row, OT to the cash OT
     row. The cash R row is left untouched.
  b  all cash: Reg goes to the cash R row capped at the weekly cash
     cap (default 40); the overflow joins OT on the cash OT row. The
     payroll ledger is left untouched.
  c  split: payroll R takes Reg up to the type-C cap (default 24),
     with sick hours consuming that cap first. The remainder routes
     like category b through the cash rows.

  Unknown categories route nothing; the roster row still shows up in
  reports so the office can fix the category cell.

SEE ALSO:
  - roster.go: where Reg, OT and Sick come from
  - fill.go: applies a Split to the ledger views
*/
package payroll

import "github.com/warp/payroll-engine/config"

// Split says which ledger hour cells to write. A nil field means the
// cell is not touched at all, which is different from writing zero:
// category a never writes the cash R row, but category b writes it
// even when the capped figure is zero.
type Split struct {
	PayrollReg *float64
	CashReg    *float64
	CashOT     *float64
}

// SplitHours routes an employee's weekly totals by category.
func SplitHours(cat Category, reg, ot, sick float64, caps config.Caps) Split {
	switch cat {
	case CategoryPayroll:
		return Split{
			PayrollReg: f64(reg),
			CashOT:     f64(ot),
		}

	case CategoryCash:
		return Split{
			CashReg: f64(minF(reg, caps.WeeklyCash)),
			CashOT:  f64(maxF(0, reg-caps.WeeklyCash) + ot),
		}

	case CategorySplit:
		capAfterSick := maxF(0, caps.TypeCPayroll-sick)
		payrollReg := minF(reg, capAfterSick)
		cashReg := maxF(0, reg-payrollReg)
		return Split{
			PayrollReg: f64(payrollReg),
			CashReg:    f64(minF(cashReg, caps.WeeklyCash)),
			CashOT:     f64(maxF(0, cashReg-caps.WeeklyCash) + ot),
		}
	}
	return Split{}
}

func f64(v float64) *float64 { return &v }

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
