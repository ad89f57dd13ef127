// Package tabular turns uploaded CSV and spreadsheet files into ordered rows and
// writes lead exports back out as workbooks.
package tabular

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format discriminates the two supported tabular encodings.
type Format int

const (
	FormatCSV Format = iota + 1
	FormatWorkbook
)

var ErrUnsupportedFormat = errors.New("only CSV, XLSX, and XLS files are allowed")

func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatWorkbook:
		return "workbook"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// FormatFromFilename picks the format from the file extension, case-insensitively.
func FormatFromFilename(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx", ".xls":
		return FormatWorkbook, nil
	default:
		return 0, ErrUnsupportedFormat
	}
}

// ParseError reports content that is not valid for the declared format.
type ParseError struct {
	Format Format
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("tabular: parse %s: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
