package tabular

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

type sheetFixture struct {
	name string
	rows [][]any
}

func buildWorkbook(t *testing.T, sheets ...sheetFixture) []byte {
	t.Helper()
	f := xlsx.NewFile()
	for _, s := range sheets {
		sheet, err := f.AddSheet(s.name)
		require.NoError(t, err)
		for _, rowData := range s.rows {
			row := sheet.AddRow()
			for _, v := range rowData {
				cell := row.AddCell()
				switch tv := v.(type) {
				case string:
					cell.SetString(tv)
				case int:
					cell.SetInt(tv)
				case float64:
					cell.SetFloat(tv)
				case nil:
				}
			}
		}
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestFormatFromFilename(t *testing.T) {
	cases := map[string]Format{
		"leads.csv":  FormatCSV,
		"LEADS.CSV":  FormatCSV,
		"leads.xlsx": FormatWorkbook,
		"leads.XLS":  FormatWorkbook,
	}
	for name, want := range cases {
		got, err := FormatFromFilename(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	for _, name := range []string{"leads.txt", "leads", "leads.csv.exe", "leads.json"} {
		_, err := FormatFromFilename(name)
		assert.ErrorIs(t, err, ErrUnsupportedFormat, name)
	}
}

func TestReadAll_CSVPreservesOrderAndHeaders(t *testing.T) {
	input := "First Name,Phone,Notes\nAnn,555-000-1111,call am\nBo,bad,\nCy,5550002222,\"vip, repeat\"\n"

	rows, err := ReadAll(context.Background(), strings.NewReader(input), FormatCSV)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"First Name", "Phone", "Notes"}, rows[0].Headers())
	v, ok := rows[0].Get("First Name")
	require.True(t, ok)
	assert.Equal(t, "Ann", v)

	v, _ = rows[1].Get("Phone")
	assert.Equal(t, "bad", v)
	v, _ = rows[2].Get("Notes")
	assert.Equal(t, "vip, repeat", v)
}

func TestReadAll_CSVStripsBOM(t *testing.T) {
	input := "\xEF\xBB\xBFFirstName,Phone\nAnn,5550001111\n"

	rows, err := ReadAll(context.Background(), strings.NewReader(input), FormatCSV)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "FirstName", rows[0][0].Header)
}

func TestReadAll_CSVExtraAndDuplicateColumns(t *testing.T) {
	input := "FirstName,Phone,Phone\nAnn,111,5550001111,extra\n"

	rows, err := ReadAll(context.Background(), strings.NewReader(input), FormatCSV)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, []string{"FirstName", "Phone", "_3"}, rows[0].Headers())
	v, _ := rows[0].Get("Phone")
	assert.Equal(t, "5550001111", v, "later duplicate column wins")
}

func TestReadAll_CSVHeaderOnly(t *testing.T) {
	rows, err := ReadAll(context.Background(), strings.NewReader("FirstName,Phone\n"), FormatCSV)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReadAll_WorkbookFirstSheetOnly(t *testing.T) {
	data := buildWorkbook(t,
		sheetFixture{name: "Leads", rows: [][]any{
			{"FirstName", "Phone", "Notes"},
			{"Ann", "555-000-1111", "first"},
			{"Cy", 5550002222, nil},
		}},
		sheetFixture{name: "Ignored", rows: [][]any{
			{"FirstName", "Phone"},
			{"Zed", "5559999999"},
		}},
	)

	rows, err := ReadAll(context.Background(), bytes.NewReader(data), FormatWorkbook)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	v, _ := rows[0].Get("FirstName")
	assert.Equal(t, "Ann", v)

	phone, ok := rows[1].Get("Phone")
	require.True(t, ok)
	assert.Equal(t, float64(5550002222), phone)
	assert.Equal(t, "5550002222", ValueString(phone))

	_, ok = rows[1].Get("Notes")
	assert.False(t, ok, "blank cells are left out")
}

func TestReadAll_WorkbookSkipsBlankRowsAndDedupesHeaders(t *testing.T) {
	data := buildWorkbook(t, sheetFixture{name: "Sheet1", rows: [][]any{
		{"Name", "Name", "Phone"},
		{},
		{"Ann", "Lee", "5550001111"},
	}})

	rows, err := ReadAll(context.Background(), bytes.NewReader(data), FormatWorkbook)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"Name", "Name_1", "Phone"}, rows[0].Headers())
}

func TestReadAll_CorruptWorkbook(t *testing.T) {
	rows, err := ReadAll(context.Background(), strings.NewReader("definitely not a zip archive"), FormatWorkbook)
	require.Error(t, err)
	assert.Nil(t, rows)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, FormatWorkbook, perr.Format)
}

func TestReadAll_EmptyWorkbookHasNoRows(t *testing.T) {
	rows, err := ReadAll(context.Background(), bytes.NewReader(nil), FormatWorkbook)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReadAll_LegacyWorkbook(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "leads.xls"))
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, oleMagic))

	rows, err := ReadAll(context.Background(), bytes.NewReader(data), FormatWorkbook)
	require.NoError(t, err)
	require.Len(t, rows, 3, "blank row skipped, second sheet ignored")

	assert.Equal(t, []string{"FirstName", "Phone", "Notes", "Notes_1"}, rows[0].Headers())
	v, _ := rows[0].Get("Phone")
	assert.Equal(t, "555-000-1111", v)
	v, _ = rows[0].Get("Notes_1")
	assert.Equal(t, "x", v)

	v, _ = rows[1].Get("FirstName")
	assert.Equal(t, "Bo", v)
	_, ok := rows[1].Get("Notes")
	assert.False(t, ok, "blank cells are left out")

	v, _ = rows[2].Get("Notes")
	assert.Equal(t, "vip", v)
}

func TestReadAll_CorruptLegacyWorkbook(t *testing.T) {
	data := append(append([]byte{}, oleMagic...), make([]byte, 32)...)

	rows, err := ReadAll(context.Background(), bytes.NewReader(data), FormatWorkbook)
	require.Error(t, err)
	assert.Nil(t, rows)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Contains(t, perr.Error(), "xls: open workbook")
}

func TestReadAll_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rows, err := ReadAll(ctx, strings.NewReader("FirstName,Phone\nAnn,5550001111\n"), FormatCSV)
	require.Error(t, err)
	assert.Nil(t, rows)
}

func TestRow_MarshalJSONKeepsOrder(t *testing.T) {
	row := Row{{Header: "Name", Value: "Ann"}, {Header: "Mobile", Value: float64(5550001111)}}

	b, err := json.Marshal(row)
	require.NoError(t, err)
	assert.Equal(t, `{"Name":"Ann","Mobile":5550001111}`, string(b))
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "", ValueString(nil))
	assert.Equal(t, "abc", ValueString("abc"))
	assert.Equal(t, "5550002222", ValueString(float64(5550002222)))
	assert.Equal(t, "1.5", ValueString(1.5))
	assert.Equal(t, "42", ValueString(42))
	assert.Equal(t, "true", ValueString(true))
}
