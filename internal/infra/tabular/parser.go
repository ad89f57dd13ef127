package tabular

import (
	"context"
	"io"

	"github.com/rotisserie/eris"
)

// Stream parses r according to format and sends rows to a channel in source
// order. Both channels are closed when processing completes. The caller must
// drain the row channel before reading the error channel.
func Stream(ctx context.Context, r io.Reader, format Format) (<-chan Row, <-chan error) {
	rowCh := make(chan Row, 64)
	errCh := make(chan error, 1)

	go func() {
		defer close(errCh)
		defer close(rowCh)

		var err error
		switch format {
		case FormatCSV:
			err = streamCSV(ctx, r, rowCh)
		case FormatWorkbook:
			var data []byte
			data, err = io.ReadAll(r)
			if err != nil {
				err = eris.Wrap(err, "xlsx: read upload")
				break
			}
			err = streamWorkbook(ctx, data, rowCh)
		default:
			err = ErrUnsupportedFormat
		}
		if err != nil {
			errCh <- err
		}
	}()

	return rowCh, errCh
}

// ReadAll collects every row of the file. On any failure it returns no rows.
func ReadAll(ctx context.Context, r io.Reader, format Format) ([]Row, error) {
	rowCh, errCh := Stream(ctx, r, format)

	var rows []Row
	for row := range rowCh {
		rows = append(rows, row)
	}
	if err := <-errCh; err != nil {
		return nil, err
	}
	return rows, nil
}
