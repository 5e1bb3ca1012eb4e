/*
csv.go - CSV reader with encoding detection

PURPOSE:
  Timeclock exports come from whatever the clock vendor ships: UTF-8,
  UTF-16 with a BOM, or a Latin-1 legacy dump. The reader sniffs the
  encoding, decodes to UTF-8 and parses leniently, reporting anything
  it had to repair as a warning instead of failing the upload.
*/
package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/warp/payroll-engine/sheet"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Warning is a non-fatal repair made while parsing a CSV file. Row is
// 1-based over the raw file.
type Warning struct {
	Row     int
	Message string
}

// CSV parses CSV bytes into a grid named name. The first row sets the
// expected width; shorter rows are padded with empty cells and longer
// rows keep their extra cells, both reported as warnings. Rows the
// parser cannot read at all are skipped with a warning.
func CSV(data []byte, name string) (*sheet.Table, []Warning, error) {
	decoded, err := decode(data)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding detection failed: %w", err)
	}

	r := csv.NewReader(bytes.NewReader(decoded))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	t := sheet.New(name)
	var warnings []Warning
	width := 0
	rowNum := 0

	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		rowNum++
		if err != nil {
			warnings = append(warnings, Warning{
				Row:     rowNum,
				Message: fmt.Sprintf("parse error: %v", err),
			})
			continue
		}

		if width == 0 {
			width = len(row)
		}
		switch {
		case len(row) < width:
			warnings = append(warnings, Warning{
				Row:     rowNum,
				Message: fmt.Sprintf("row has %d columns, expected %d; padded with empty cells", len(row), width),
			})
			padded := make([]string, width)
			copy(padded, row)
			row = padded
		case len(row) > width:
			warnings = append(warnings, Warning{
				Row:     rowNum,
				Message: fmt.Sprintf("row has %d columns, expected %d; extra columns kept", len(row), width),
			})
		}
		t.Rows = append(t.Rows, row)
	}

	if t.NumRows() == 0 {
		return nil, warnings, fmt.Errorf("%s: %w", name, ErrEmpty)
	}
	return t, warnings, nil
}

// decode sniffs the byte encoding and converts to UTF-8: BOMs win,
// then valid UTF-8 passes through, and anything else is read as
// Latin-1, which maps every byte to some character.
func decode(data []byte) ([]byte, error) {
	switch {
	case len(data) == 0:
		return data, nil

	case bytes.HasPrefix(data, bomUTF8):
		return data[len(bomUTF8):], nil

	case bytes.HasPrefix(data, bomUTF16LE):
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).
			NewDecoder().Bytes(data[len(bomUTF16LE):])

	case bytes.HasPrefix(data, bomUTF16BE):
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).
			NewDecoder().Bytes(data[len(bomUTF16BE):])

	case utf8.Valid(data):
		return data, nil

	default:
		return charmap.ISO8859_1.NewDecoder().Bytes(data)
	}
}
