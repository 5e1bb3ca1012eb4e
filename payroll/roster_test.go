package payroll_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll-engine/config"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/sheet"
)

// rosterRow builds an 18-column roster data row: name, category, then
// up to fourteen day cells in Reg/OT order.
func rosterRow(name, cat string, dayCells ...string) []string {
	row := []string{name, cat}
	row = append(row, dayCells...)
	for len(row) < 18 {
		row = append(row, "")
	}
	return row
}

func rosterTable(dataRows ...[]string) *sheet.Table {
	t := sheet.New("WeeklyRoster")
	t.Rows = [][]string{
		{"WEEKLY ROSTER"},
		{},
		{"Name", "Category"},
		{},
	}
	t.Rows = append(t.Rows, dataRows...)
	return t
}

func TestReadRoster(t *testing.T) {
	// GIVEN a roster with real employees, section markers and stale totals
	jon := rosterRow("Jon Smithe", "A",
		"8", "0", "8", "0", "8", "2", "8", "0", "8", "0", "", "", "", "")
	jon[16] = "999" // stale stored totals must not be trusted
	jon[17] = "999"

	tbl := rosterTable(
		[]string{"Payroll Employees"},
		jon,
		rosterRow("Maria Garcia", "b", "10", "1"),
		[]string{"Cash Employees"},
		rosterRow("Pedro Alvarez", "C", "sick", "0", "8", "0"),
		[]string{"nan"},
		[]string{""},
	)

	// WHEN reading it
	r, err := payroll.ReadRoster(tbl, config.Default())
	require.NoError(t, err)

	// THEN markers and blanks are dropped but still counted as rows
	assert.Equal(t, 7, r.Rows)
	require.Len(t, r.Employees, 3)
	assert.Equal(t, []string{"Jon Smithe", "Maria Garcia", "Pedro Alvarez"}, r.Names())

	// AND totals come from the day cells, not the totals columns
	jonEmp := r.Employees[0]
	assert.Equal(t, payroll.CategoryPayroll, jonEmp.Category)
	assert.InDelta(t, 40.0, jonEmp.Reg, 1e-9)
	assert.InDelta(t, 2.0, jonEmp.OT, 1e-9)
	assert.Zero(t, jonEmp.Sick)

	maria := r.Employees[1]
	assert.Equal(t, payroll.CategoryCash, maria.Category)
	assert.InDelta(t, 10.0, maria.Reg, 1e-9)
	assert.InDelta(t, 1.0, maria.OT, 1e-9)

	// AND a "sick" day cell credits sick hours instead of worked hours
	pedro := r.Employees[2]
	assert.Equal(t, payroll.CategorySplit, pedro.Category)
	assert.InDelta(t, 8.0, pedro.Reg, 1e-9)
	assert.InDelta(t, 8.0, pedro.Sick, 1e-9)
}

func TestReadRoster_TooNarrow(t *testing.T) {
	// GIVEN a sheet missing the trailing totals columns
	tbl := sheet.New("WeeklyRoster")
	tbl.Rows = [][]string{make([]string, 17)}

	// WHEN reading it
	_, err := payroll.ReadRoster(tbl, config.Default())

	// THEN the reader refuses with a structural error
	require.Error(t, err)
	assert.ErrorIs(t, err, sheet.ErrTooFewColumns)
	assert.True(t, sheet.IsStructural(err))
}

func TestParseCategory(t *testing.T) {
	assert.Equal(t, payroll.CategoryPayroll, payroll.ParseCategory(" A "))
	assert.Equal(t, payroll.CategoryCash, payroll.ParseCategory("b"))
	assert.Equal(t, payroll.CategorySplit, payroll.ParseCategory("C"))
	assert.Equal(t, payroll.CategoryUnknown, payroll.ParseCategory("50/50"))
	assert.Equal(t, payroll.CategoryUnknown, payroll.ParseCategory(""))
}
