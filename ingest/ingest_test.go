package ingest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/warp/payroll-engine/ingest"
	"github.com/warp/payroll-engine/sheet"
)

func xlsxBytes(t *testing.T, build func(f *excelize.File)) []byte {
	t.Helper()
	f := excelize.NewFile()
	build(f)
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func setCell(t *testing.T, f *excelize.File, sheetName, cell, value string) {
	t.Helper()
	require.NoError(t, f.SetCellValue(sheetName, cell, value))
}

func TestXLSX(t *testing.T) {
	data := xlsxBytes(t, func(f *excelize.File) {
		setCell(t, f, "Sheet1", "A1", "Name")
		setCell(t, f, "Sheet1", "B1", "Hours")
		setCell(t, f, "Sheet1", "A2", "Jon Smith")
		setCell(t, f, "Sheet1", "B2", "8.5")
	})

	tbl, err := ingest.XLSX(data)
	require.NoError(t, err)

	assert.Equal(t, "Sheet1", tbl.Name)
	assert.Equal(t, 2, tbl.NumRows())
	assert.Equal(t, "Name", tbl.Cell(0, 0))
	assert.Equal(t, "Jon Smith", tbl.Cell(1, 0))
	assert.Equal(t, "8.5", tbl.Cell(1, 1))
}

func TestXLSXSheet(t *testing.T) {
	data := xlsxBytes(t, func(f *excelize.File) {
		setCell(t, f, "Sheet1", "A1", "ignored")
		_, err := f.NewSheet("Roster")
		require.NoError(t, err)
		setCell(t, f, "Roster", "A1", "WEEKLY ROSTER")
	})

	tbl, err := ingest.XLSXSheet(data, "Roster")
	require.NoError(t, err)
	assert.Equal(t, "Roster", tbl.Name)
	assert.Equal(t, "WEEKLY ROSTER", tbl.Cell(0, 0))

	_, err = ingest.XLSXSheet(data, "Nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Nope")
}

func TestXLSX_EmptyWorksheet(t *testing.T) {
	data := xlsxBytes(t, func(f *excelize.File) {})

	_, err := ingest.XLSX(data)
	require.Error(t, err)
	assert.ErrorIs(t, err, ingest.ErrEmpty)
}

func TestXLSX_NotAWorkbook(t *testing.T) {
	_, err := ingest.XLSX([]byte("definitely not a zip archive"))
	assert.Error(t, err)
}

func TestCSV(t *testing.T) {
	tbl, warnings, err := ingest.CSV([]byte("Name,Hours\nJon Smith,8.5\n"), "tar.csv")
	require.NoError(t, err)

	assert.Empty(t, warnings)
	assert.Equal(t, "tar.csv", tbl.Name)
	assert.Equal(t, 2, tbl.NumRows())
	assert.Equal(t, "Hours", tbl.Cell(0, 1))
	assert.Equal(t, "8.5", tbl.Cell(1, 1))
}

func TestCSV_UTF8BOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Name,Hours\nJon,8")...)

	tbl, _, err := ingest.CSV(data, "tar.csv")
	require.NoError(t, err)
	assert.Equal(t, "Name", tbl.Cell(0, 0))
}

// utf16le encodes an ASCII string as UTF-16 little-endian with a BOM.
func utf16le(s string) []byte {
	out := []byte{0xFF, 0xFE}
	for _, b := range []byte(s) {
		out = append(out, b, 0x00)
	}
	return out
}

func TestCSV_UTF16(t *testing.T) {
	tbl, warnings, err := ingest.CSV(utf16le("Name,Hours\nJon,8"), "tar.csv")
	require.NoError(t, err)

	assert.Empty(t, warnings)
	assert.Equal(t, "Jon", tbl.Cell(1, 0))
	assert.Equal(t, "8", tbl.Cell(1, 1))
}

func TestCSV_Latin1Fallback(t *testing.T) {
	// 0xE9 is é in Latin-1 and invalid mid-stream UTF-8.
	data := []byte("Name,Hours\nJos\xe9 Garc\xeda,8")

	tbl, _, err := ingest.CSV(data, "tar.csv")
	require.NoError(t, err)
	assert.Equal(t, "José García", tbl.Cell(1, 0))
}

func TestCSV_RaggedRows(t *testing.T) {
	tbl, warnings, err := ingest.CSV([]byte("A,B,C\nx\ny,1,2,3,4\n"), "tar.csv")
	require.NoError(t, err)

	// Short row padded to the header width, long row kept whole.
	assert.Equal(t, []string{"x", "", ""}, tbl.Row(1))
	assert.Equal(t, "4", tbl.Cell(2, 4))

	require.Len(t, warnings, 2)
	assert.Equal(t, 2, warnings[0].Row)
	assert.Contains(t, warnings[0].Message, "padded")
	assert.Equal(t, 3, warnings[1].Row)
	assert.Contains(t, warnings[1].Message, "extra columns kept")
}

func TestCSV_LazyQuotes(t *testing.T) {
	tbl, _, err := ingest.CSV([]byte("Name,Note\nJon,he said \"fine\"\n"), "tar.csv")
	require.NoError(t, err)
	assert.Equal(t, `he said "fine"`, tbl.Cell(1, 1))
}

func TestCSV_Empty(t *testing.T) {
	_, _, err := ingest.CSV(nil, "tar.csv")
	require.Error(t, err)
	assert.ErrorIs(t, err, ingest.ErrEmpty)
}

func TestWriteXLSX_RoundTrip(t *testing.T) {
	cash := sheet.New("Cash")
	cash.Rows = [][]string{
		{"Name", "Type", "Hours"},
		{"Jon Smith", "R", "8.5"},
		{"", "", "x"},
	}

	data, err := ingest.WriteXLSX(cash)
	require.NoError(t, err)

	back, err := ingest.XLSX(data)
	require.NoError(t, err)
	assert.Equal(t, "Cash", back.Name)
	assert.Equal(t, "Name", back.Cell(0, 0))
	assert.Equal(t, "8.5", back.Cell(1, 2))
	assert.Equal(t, "", back.Cell(2, 0))
	assert.Equal(t, "x", back.Cell(2, 2))
}

func TestWriteXLSX_MultiSheet(t *testing.T) {
	weekly := sheet.New("WeeklyTime")
	weekly.Rows = [][]string{{"Week Of : 08.18.25 - 08.24.25"}}
	review := sheet.New("Review_Queue")
	review.Rows = [][]string{{"Date", "TAR_Name"}}

	data, err := ingest.WriteXLSX(weekly, review)
	require.NoError(t, err)

	first, err := ingest.XLSX(data)
	require.NoError(t, err)
	assert.Equal(t, "WeeklyTime", first.Name)

	second, err := ingest.XLSXSheet(data, "Review_Queue")
	require.NoError(t, err)
	assert.Equal(t, "TAR_Name", second.Cell(0, 1))
}

func TestWriteXLSX_NumericCells(t *testing.T) {
	tbl := sheet.New("Cash")
	tbl.Rows = [][]string{{"75.00", "08/18", "600"}}

	data, err := ingest.WriteXLSX(tbl)
	require.NoError(t, err)

	back, err := ingest.XLSX(data)
	require.NoError(t, err)

	// Numeric cells come back in Excel's own rendering; text survives.
	assert.Equal(t, "75", back.Cell(0, 0))
	assert.Equal(t, "08/18", back.Cell(0, 1))
	assert.Equal(t, "600", back.Cell(0, 2))
}

func TestWriteXLSX_NoTables(t *testing.T) {
	_, err := ingest.WriteXLSX()
	assert.Error(t, err)
}
