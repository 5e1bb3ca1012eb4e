package payroll_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll-engine/config"
	"github.com/warp/payroll-engine/payroll"
)

func TestSplitHours(t *testing.T) {
	caps := config.Default().Caps // weekly cash 40, type-C payroll 24

	tests := []struct {
		name       string
		cat        payroll.Category
		reg, ot    float64
		sick       float64
		payrollReg *float64
		cashReg    *float64
		cashOT     *float64
	}{
		{
			name: "payroll routes reg to payroll and ot to cash",
			cat:  payroll.CategoryPayroll, reg: 45, ot: 3,
			payrollReg: f(45), cashOT: f(3),
		},
		{
			name: "cash caps reg at forty and overflows into ot",
			cat:  payroll.CategoryCash, reg: 45, ot: 2,
			cashReg: f(40), cashOT: f(7),
		},
		{
			name: "cash writes zero ot rather than skipping the cell",
			cat:  payroll.CategoryCash, reg: 30,
			cashReg: f(30), cashOT: f(0),
		},
		{
			name: "split sends the first 24 reg hours to payroll",
			cat:  payroll.CategorySplit, reg: 30, ot: 1,
			payrollReg: f(24), cashReg: f(6), cashOT: f(1),
		},
		{
			name: "split lets sick hours consume the payroll cap first",
			cat:  payroll.CategorySplit, reg: 30, sick: 16,
			payrollReg: f(8), cashReg: f(22), cashOT: f(0),
		},
		{
			name: "split after one sick day leaves sixteen payroll hours",
			cat:  payroll.CategorySplit, reg: 20, sick: 8,
			payrollReg: f(16), cashReg: f(4), cashOT: f(0),
		},
		{
			name: "split overflow past the cash cap joins ot",
			cat:  payroll.CategorySplit, reg: 70, ot: 2,
			payrollReg: f(24), cashReg: f(40), cashOT: f(8),
		},
		{
			name: "split with the cap fully consumed still writes zero payroll reg",
			cat:  payroll.CategorySplit, reg: 20, sick: 32,
			payrollReg: f(0), cashReg: f(20), cashOT: f(0),
		},
		{
			name: "unknown category routes nothing",
			cat:  payroll.CategoryUnknown, reg: 40, ot: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := payroll.SplitHours(tt.cat, tt.reg, tt.ot, tt.sick, caps)
			assertCell(t, tt.payrollReg, got.PayrollReg, "PayrollReg")
			assertCell(t, tt.cashReg, got.CashReg, "CashReg")
			assertCell(t, tt.cashOT, got.CashOT, "CashOT")
		})
	}
}

func f(v float64) *float64 { return &v }

// assertCell checks an optional hour write: nil means the cell must
// not be touched.
func assertCell(t *testing.T, want, got *float64, field string) {
	t.Helper()
	if want == nil {
		assert.Nil(t, got, field)
		return
	}
	require.NotNil(t, got, field)
	assert.InDelta(t, *want, *got, 1e-9, field)
}
