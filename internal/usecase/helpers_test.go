package usecase

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func buildLeadWorkbook(t *testing.T, rows [][]string) []byte {
	t.Helper()
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Leads")
	require.NoError(t, err)

	for _, values := range rows {
		row := sheet.AddRow()
		for _, v := range values {
			row.AddCell().SetString(v)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, file.Write(&buf))
	return buf.Bytes()
}
