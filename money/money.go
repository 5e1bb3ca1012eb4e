/*
money.go - Currency value type

PURPOSE:
  Every dollar figure in the engine (row pay, bonuses, reimbursements,
  loan balances, net totals) flows through Money. Money wraps a decimal
  so that ledger arithmetic never accumulates float error: a loan paid
  down by 33 payments of $30.30 lands on exactly $0.00, not $0.0000001.

WHY DECIMAL?
  Spreadsheet money is entered and audited by humans in cents. Two
  decimal places in, two decimal places out. Binary floats cannot
  represent $0.10; decimals can.

CONVENTIONS:
  - Construct from float only at the input boundary (cells parse to
    float64); all arithmetic afterwards stays decimal.
  - Round2 is applied at the points the ledger displays a figure,
    matching the sheet's visible precision.
  - FloorZero implements the "net payout is never negative" rule.

SEE ALSO:
  - payroll/: row pay and net totals
  - loans/: balance and payment arithmetic
*/
package money

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// MONEY - Decimal-backed dollar amount
// =============================================================================

// Money is a dollar amount. The zero value is $0.00.
type Money struct {
	Value decimal.Decimal
}

func New(v float64) Money {
	return Money{Value: decimal.NewFromFloat(v)}
}

func Zero() Money {
	return Money{Value: decimal.Zero}
}

// FromHoursRate computes hours x rate, rounded to cents.
// This is the "Row Pay" formula used by the cash ledger.
func FromHoursRate(hours, rate float64) Money {
	h := decimal.NewFromFloat(hours)
	r := decimal.NewFromFloat(rate)
	return Money{Value: h.Mul(r).Round(2)}
}

// Arithmetic
func (m Money) Add(other Money) Money { return Money{Value: m.Value.Add(other.Value)} }
func (m Money) Sub(other Money) Money { return Money{Value: m.Value.Sub(other.Value)} }

func (m Money) Min(other Money) Money {
	if m.Value.LessThan(other.Value) {
		return m
	}
	return other
}

func (m Money) Max(other Money) Money {
	if m.Value.GreaterThan(other.Value) {
		return m
	}
	return other
}

// Round2 rounds to cents, half away from zero.
func (m Money) Round2() Money { return Money{Value: m.Value.Round(2)} }

// FloorZero clamps negative amounts to $0.00.
func (m Money) FloorZero() Money {
	if m.Value.IsNegative() {
		return Zero()
	}
	return m
}

// Comparison
func (m Money) IsZero() bool              { return m.Value.IsZero() }
func (m Money) IsPositive() bool          { return m.Value.IsPositive() }
func (m Money) IsNegative() bool          { return m.Value.IsNegative() }
func (m Money) LessThan(o Money) bool     { return m.Value.LessThan(o.Value) }
func (m Money) GreaterThan(o Money) bool  { return m.Value.GreaterThan(o.Value) }
func (m Money) Equal(o Money) bool        { return m.Value.Equal(o.Value) }

// WithinOf reports whether m and o differ by no more than eps.
// Loan closing uses this with the configured close epsilon.
func (m Money) WithinOf(o Money, eps float64) bool {
	diff := m.Value.Sub(o.Value).Abs()
	return !diff.GreaterThan(decimal.NewFromFloat(eps))
}

// Conversion
func (m Money) Float64() float64 {
	f, _ := m.Value.Float64()
	return f
}

// String formats as a plain figure with two decimals, e.g. "123.45".
// Report text adds its own "$" prefix.
func (m Money) String() string {
	return m.Value.StringFixed(2)
}
