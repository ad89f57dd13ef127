package tabular

import (
	"bytes"

	"github.com/extrame/xls"
	"github.com/rotisserie/eris"
)

// oleMagic opens every OLE2 compound file, which is the container of BIFF .xls workbooks.
var oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// readLegacySheet reads the first sheet of a BIFF workbook. The reader renders
// every cell as text.
func readLegacySheet(data []byte) (rows []sheetRow, err error) {
	// the BIFF decoder panics on truncated records instead of returning errors
	defer func() {
		if r := recover(); r != nil {
			rows = nil
			err = &ParseError{Format: FormatWorkbook, Err: eris.Errorf("xls: malformed workbook: %v", r)}
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, &ParseError{Format: FormatWorkbook, Err: eris.Wrap(err, "xls: open workbook")}
	}
	if wb == nil || wb.NumSheets() == 0 {
		return nil, &ParseError{Format: FormatWorkbook, Err: eris.New("xls: workbook has no sheets")}
	}

	sheet := wb.GetSheet(0)
	width := 0
	for i := 0; i <= int(sheet.MaxRow); i++ {
		xr := legacyRow(sheet, i)
		if xr == nil {
			continue
		}

		// Rows written without a ROW record report LastCol 0, so the header
		// width bounds the scan as well.
		last := xr.LastCol()
		if last < width-1 {
			last = width - 1
		}
		sr := make(sheetRow, last+1)
		for c := xr.FirstCol(); c <= last; c++ {
			if v := xr.Col(c); v != "" {
				sr[c] = v
			}
		}
		if width == 0 && !sr.blank() {
			width = len(sr)
		}
		rows = append(rows, sr)
	}
	return rows, nil
}

// legacyRow returns nil for row indexes that hold no cells; WorkSheet.Row
// dereferences a missing row.
func legacyRow(sheet *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return sheet.Row(i)
}
