package payroll_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll-engine/money"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/sheet"
)

func cashTable(rows ...[]string) *sheet.Table {
	t := sheet.New("Cash")
	t.Rows = [][]string{{"Name", "Type", "Hours", "Rate", "Row Pay", "Total"}}
	t.Rows = append(t.Rows, rows...)
	return t
}

func payrollTable(rows ...[]string) *sheet.Table {
	t := sheet.New("Payroll")
	t.Rows = [][]string{{"Name", "", "Type", "Hours"}}
	t.Rows = append(t.Rows, rows...)
	return t
}

func TestCashLedger_Lookup(t *testing.T) {
	led := payroll.NewCashLedger(cashTable(
		[]string{"Jon Smithe", "R", "", "25"},
		[]string{"Jon Smithe", "OT", "", "37.5"},
		[]string{"Maria Garcia", "r", "", "20"},
	))

	assert.Equal(t, []string{"Jon Smithe", "Maria Garcia"}, led.Names())
	assert.Equal(t, 1, led.FindRow("Jon Smithe", "R"))
	assert.Equal(t, 2, led.FindRow("Jon Smithe", "ot"))
	assert.Equal(t, 3, led.FindRow("Maria Garcia", "R"))
	assert.Equal(t, -1, led.FindRow("Maria Garcia", "OT"))
	assert.Equal(t, -1, led.FindRow("Jon Smith", "R")) // exact names only

	led.SetHours(1, 40)
	assert.Equal(t, "40", led.T.Cell(1, 2))
}

func TestApplyRowPay(t *testing.T) {
	// GIVEN a filled cash ledger with a currency-formatted rate
	tbl := cashTable(
		[]string{"Jon Smithe", "R", "40", "$25.00"},
		[]string{"Jon Smithe", "OT", "2", "37.50"},
		[]string{"Maria Garcia", "R", "40", "20"},
		[]string{"", "", "", ""},
		[]string{"Maria Garcia", "OT", "6", "30"},
	)
	led := payroll.NewCashLedger(tbl)

	// WHEN computing row pay
	totals := led.ApplyRowPay()

	// THEN pay accumulates per name and type
	require.Contains(t, totals, "Jon Smithe")
	assert.Equal(t, "1000.00", totals["Jon Smithe"].Reg.String())
	assert.Equal(t, "75.00", totals["Jon Smithe"].OT.String())
	assert.Equal(t, "1075.00", totals["Jon Smithe"].Base().String())
	assert.Equal(t, "800.00", totals["Maria Garcia"].Reg.String())
	assert.Equal(t, "180.00", totals["Maria Garcia"].OT.String())

	// AND only the first row per name shows a figure
	assert.Equal(t, "1000.00", tbl.Cell(1, 4))
	assert.Equal(t, "", tbl.Cell(2, 4))
	assert.Equal(t, "800.00", tbl.Cell(3, 4))
	assert.Equal(t, "", tbl.Cell(5, 4))
}

func TestPreloanAndNetTotals(t *testing.T) {
	tbl := cashTable(
		[]string{"Jon Smithe", "R", "40", "25"},
		[]string{"Jon Smithe", "OT", "2", "37.50"},
		[]string{"Maria Garcia", "R", "40", "20"},
		[]string{"Maria Garcia", "OT", "6", "30"},
	)
	led := payroll.NewCashLedger(tbl)
	pay := led.ApplyRowPay()

	adj := payroll.Adjustments{
		Bonus:      map[string]money.Money{"Maria Garcia": money.New(100.55)},
		Reimb:      map[string]money.Money{"Jon Smithe": money.New(20)},
		Deductions: map[string]money.Money{"Jon Smithe": money.New(2000)},
	}

	// Pre-loan totals ignore deductions
	pre := led.PreloanTotals(pay, adj)
	assert.Equal(t, "1095.00", pre["Jon Smithe"].String())
	assert.Equal(t, "1080.55", pre["Maria Garcia"].String())

	// Net totals subtract deductions and floor at zero
	written := led.ApplyNetTotals(pay, adj, true)
	assert.Equal(t, 2, written)
	assert.Equal(t, "0.00", tbl.Cell(1, 5)) // 1095 - 2000 floored
	assert.Equal(t, "1080.55", tbl.Cell(3, 5))
	assert.Equal(t, "", tbl.Cell(2, 5)) // later rows carry no total
}

func TestPayrollLedger_Lookup(t *testing.T) {
	led := payroll.NewPayrollLedger(payrollTable(
		[]string{"Jon Smithe", "", "R", ""},
		[]string{"Pedro Alvarez", "", "R", ""},
		[]string{"Pedro Alvarez", "", "SICK", ""},
	))

	assert.Equal(t, []string{"Jon Smithe", "Pedro Alvarez"}, led.Names())
	assert.Equal(t, 3, led.FindRow("Pedro Alvarez", "sick"))
	assert.Equal(t, -1, led.FindRow("Jon Smithe", "SICK"))

	led.SetHours(3, 8)
	assert.Equal(t, "8", led.T.Cell(3, 3))
}
