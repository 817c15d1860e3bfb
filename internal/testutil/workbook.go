// Package testutil holds workbook fixtures and the MongoDB container shared by
// integration tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// PackingHeader is the header row of a well-formed packing list.
var PackingHeader = []string{"FECHA", "CALIBRE", "CAT", "CANTIDAD - Cajas", "LOTE", "CÓDIGO DEL LUGAR DE PRODUCCIÓN"}

// PackingRow is one data row of a fixture workbook.
type PackingRow struct {
	Size     interface{}
	Category interface{}
	Quantity interface{}
	Lot      interface{}
	Location interface{}
}

// BuildPackingList returns xlsx bytes with a DATA sheet laid out like a real
// packing list: banner on row 1, header on row 2, data from row 3.
func BuildPackingList(t testing.TB, rows []PackingRow) []byte {
	t.Helper()
	values := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		values = append(values, []interface{}{"2024-03-01", r.Size, r.Category, r.Quantity, r.Lot, r.Location})
	}
	return BuildWorkbook(t, "DATA", PackingHeader, values)
}

// BuildWorkbook writes a single-sheet workbook with a banner row, the given
// header on row 2 and values from row 3. An empty header leaves row 2 blank.
func BuildWorkbook(t testing.TB, sheet string, header []string, values [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	require.NoError(t, f.SetSheetName("Sheet1", sheet))
	require.NoError(t, f.SetCellValue(sheet, "A1", "PACKING LIST"))

	if len(header) > 0 {
		headerRow := make([]interface{}, len(header))
		for i, h := range header {
			headerRow[i] = h
		}
		require.NoError(t, f.SetSheetRow(sheet, "A2", &headerRow))
	}
	for i, row := range values {
		cell, err := excelize.CoordinatesToCellName(1, i+3)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}
