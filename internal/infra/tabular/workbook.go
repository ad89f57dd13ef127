package tabular

import (
	"bytes"
	"context"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// sheetRow is one worksheet row by column position. A nil entry is a blank cell.
type sheetRow []any

func (r sheetRow) blank() bool {
	for _, v := range r {
		if v != nil {
			return false
		}
	}
	return true
}

// streamWorkbook reads the first sheet of an OOXML (.xlsx) or BIFF (.xls)
// workbook. An empty upload reads as an empty sheet.
func streamWorkbook(ctx context.Context, data []byte, rowCh chan<- Row) error {
	if len(data) == 0 {
		return nil
	}

	var (
		rows []sheetRow
		err  error
	)
	if bytes.HasPrefix(data, oleMagic) {
		rows, err = readLegacySheet(data)
	} else {
		rows, err = readXLSXSheet(data)
	}
	if err != nil {
		return err
	}
	return emitSheet(ctx, rows, rowCh)
}

// emitSheet applies the header rules shared by both workbook flavours. The
// first non-blank row is the header line. Blank cells are left out of a row and
// fully blank rows are skipped.
func emitSheet(ctx context.Context, rows []sheetRow, rowCh chan<- Row) error {
	var headers []string
	for _, sr := range rows {
		if ctx.Err() != nil {
			return eris.Wrap(ctx.Err(), "workbook: context cancelled")
		}
		if sr.blank() {
			continue
		}

		if headers == nil {
			headers = headerNames(sr)
			continue
		}

		row := make(Row, 0, len(sr))
		for i, v := range sr {
			if i >= len(headers) {
				break
			}
			if v == nil {
				continue
			}
			row = append(row, Cell{Header: headers[i], Value: v})
		}
		if len(row) == 0 {
			continue
		}

		select {
		case rowCh <- row:
		case <-ctx.Done():
			return eris.Wrap(ctx.Err(), "workbook: context cancelled")
		}
	}
	return nil
}

func readXLSXSheet(data []byte) ([]sheetRow, error) {
	f, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, &ParseError{Format: FormatWorkbook, Err: eris.Wrap(err, "xlsx: open workbook")}
	}
	if len(f.Sheets) == 0 {
		return nil, &ParseError{Format: FormatWorkbook, Err: eris.New("xlsx: workbook has no sheets")}
	}

	sheet := f.Sheets[0]
	rows := make([]sheetRow, 0, len(sheet.Rows))
	for _, xr := range sheet.Rows {
		if xr == nil {
			continue
		}
		sr := make(sheetRow, len(xr.Cells))
		for i, c := range xr.Cells {
			if v, ok := cellValue(c); ok {
				sr[i] = v
			}
		}
		rows = append(rows, sr)
	}
	return rows, nil
}

// headerNames turns the header row into unique keys. Repeated names get a
// "_1", "_2" suffix and blank header cells become "__EMPTY".
func headerNames(sr sheetRow) []string {
	seen := make(map[string]int, len(sr))
	names := make([]string, len(sr))
	for i, v := range sr {
		name := ""
		if v != nil {
			name = ValueString(v)
		}
		if strings.TrimSpace(name) == "" {
			name = "__EMPTY"
		}
		base := name
		if n, dup := seen[base]; dup {
			name = base + "_" + strconv.Itoa(n)
		}
		seen[base]++
		names[i] = name
	}
	return names
}

// cellValue keeps numbers and booleans typed and everything else as raw text.
func cellValue(c *xlsx.Cell) (any, bool) {
	if c == nil {
		return nil, false
	}
	switch c.Type() {
	case xlsx.CellTypeNumeric:
		if f, err := c.Float(); err == nil {
			return f, true
		}
	case xlsx.CellTypeBool:
		if c.Value == "" {
			return nil, false
		}
		return c.Bool(), true
	}
	if c.Value == "" {
		return nil, false
	}
	return c.Value, true
}
