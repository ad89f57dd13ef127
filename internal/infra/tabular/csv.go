package tabular

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// streamCSV reads r one record at a time. The first record is the header line;
// every later record becomes a Row keyed by it. Records longer than the header
// keep their extra cells under "_<index>".
func streamCSV(ctx context.Context, r io.Reader, rowCh chan<- Row) error {
	// BOMOverride drops a UTF-8 BOM and decodes UTF-16 exports from Excel.
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var headers []string
	for {
		if ctx.Err() != nil {
			return eris.Wrap(ctx.Err(), "csv: context cancelled")
		}

		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return &ParseError{Format: FormatCSV, Err: eris.Wrap(err, "csv: read row")}
		}

		if headers == nil {
			headers = record
			continue
		}

		row := make(Row, 0, len(record))
		for i, field := range record {
			header := "_" + strconv.Itoa(i)
			if i < len(headers) {
				header = headers[i]
			}
			row = row.set(header, field)
		}

		select {
		case rowCh <- row:
		case <-ctx.Done():
			return eris.Wrap(ctx.Err(), "csv: context cancelled")
		}
	}
}
