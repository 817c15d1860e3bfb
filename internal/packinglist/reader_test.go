package packinglist

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/guttosm/packing-report/internal/analysis"
	"github.com/guttosm/packing-report/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestRead(t *testing.T) {
	data := testutil.BuildPackingList(t, []testutil.PackingRow{
		{Size: 14, Category: "1", Quantity: 10, Lot: 101, Location: "CSG-1"},
		{Size: 14, Category: "II", Quantity: 5, Lot: 101, Location: "CSG-2"},
		{Size: 16, Category: "1*", Quantity: 3, Lot: 102, Location: "CSG-1"},
	})

	table, err := ReadBytes(data)
	require.NoError(t, err)
	require.Len(t, table.Records, 3)

	first := table.Records[0]
	assert.Equal(t, 3, first.Row)
	assert.Equal(t, "14", first.Size)
	assert.Equal(t, "1", first.Category)
	assert.Equal(t, "10", first.Quantity)
	assert.Equal(t, "101", first.Lot)
	assert.Equal(t, "CSG-1", first.Location)

	assert.Equal(t, 1, table.Columns[ColumnSize])
	assert.Equal(t, 5, table.Columns[ColumnLocation])
	assert.Zero(t, table.BlankRows)
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name        string
		data        func(t *testing.T) []byte
		wantErr     error
		wantMissing []string
	}{
		{
			name:    "not a workbook",
			data:    func(t *testing.T) []byte { return []byte("definitely not xlsx") },
			wantErr: ErrInvalidWorkbook,
		},
		{
			name: "no DATA sheet",
			data: func(t *testing.T) []byte {
				return testutil.BuildWorkbook(t, "Sheet1", testutil.PackingHeader, nil)
			},
			wantErr: ErrSheetNotFound,
		},
		{
			name: "missing quantity and location columns",
			data: func(t *testing.T) []byte {
				return testutil.BuildWorkbook(t, "DATA", []string{"CALIBRE", "CAT", "LOTE"}, nil)
			},
			wantErr:     ErrMissingColumns,
			wantMissing: []string{ColumnQuantity, ColumnLocation},
		},
		{
			name: "header below row two is not recognised",
			data: func(t *testing.T) []byte {
				return testutil.BuildWorkbook(t, "DATA", nil, [][]interface{}{{"CALIBRE", "CAT"}})
			},
			wantErr:     ErrMissingColumns,
			wantMissing: RequiredColumns,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadBytes(tt.data(t))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)

			if tt.wantMissing != nil {
				var mce *MissingColumnsError
				require.True(t, errors.As(err, &mce))
				assert.Equal(t, tt.wantMissing, mce.Columns)
			}
		})
	}
}

func TestRead_HeaderMatching(t *testing.T) {
	header := []string{" calibre ", "Cat", "Cantidad  -  Cajas", "lote", "Codigo del lugar de produccion"}
	data := testutil.BuildWorkbook(t, "DATA", header, [][]interface{}{{18, "2", 7, "L1", "P9"}})

	table, err := ReadBytes(data)
	require.NoError(t, err)
	require.Len(t, table.Records, 1)
	assert.Equal(t, "18", table.Records[0].Size)
	assert.Equal(t, "P9", table.Records[0].Location)
}

func TestRead_SkipsBlankRows(t *testing.T) {
	data := testutil.BuildPackingList(t, []testutil.PackingRow{
		{Size: 14, Category: "1", Quantity: 10, Lot: 1, Location: "A"},
		{},
		{Size: 16, Category: "2", Quantity: 4, Lot: 1, Location: "A"},
	})

	table, err := ReadBytes(data)
	require.NoError(t, err)
	assert.Len(t, table.Records, 2)
	assert.Equal(t, 5, table.Records[1].Row)
}

func TestRead_EmptyDataSheet(t *testing.T) {
	table, err := ReadBytes(testutil.BuildPackingList(t, nil))
	require.NoError(t, err)
	assert.Empty(t, table.Records)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "packing.xlsx")
	data := testutil.BuildPackingList(t, []testutil.PackingRow{
		{Size: 20, Category: "1", Quantity: 2, Lot: 7, Location: "X"},
	})
	require.NoError(t, os.WriteFile(path, data, 0o600))

	table, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, table.Records, 1)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.ErrorIs(t, err, ErrInvalidWorkbook)
}

func TestMissingColumnsError(t *testing.T) {
	err := &MissingColumnsError{Columns: []string{"LOTE", "CAT"}}
	assert.Equal(t, "missing required columns: LOTE, CAT", err.Error())
	assert.ErrorIs(t, err, ErrMissingColumns)
}

func TestRead_NumberFormattedCells(t *testing.T) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	require.NoError(t, f.SetSheetName("Sheet1", SheetName))

	header := make([]interface{}, len(testutil.PackingHeader))
	for i, h := range testutil.PackingHeader {
		header[i] = h
	}
	require.NoError(t, f.SetSheetRow(SheetName, "A2", &header))
	require.NoError(t, f.SetSheetRow(SheetName, "A3", &[]interface{}{"2024-03-01", 14, "1", 1234, 101, "CSG-1"}))
	require.NoError(t, f.SetSheetRow(SheetName, "A4", &[]interface{}{"2024-03-01", 16, "2", 5.5, 1102, "CSG-2"}))

	thousands, err := f.NewStyle(&excelize.Style{NumFmt: 3}) // #,##0
	require.NoError(t, err)
	twoDecimals, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle(SheetName, "D3", "D3", thousands))
	require.NoError(t, f.SetCellStyle(SheetName, "D4", "D4", twoDecimals))
	require.NoError(t, f.SetCellStyle(SheetName, "B3", "B4", twoDecimals))
	require.NoError(t, f.SetCellStyle(SheetName, "E3", "E4", thousands))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	table, err := ReadBytes(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, table.Records, 2)

	assert.Equal(t, "14", table.Records[0].Size)
	assert.Equal(t, "1234", table.Records[0].Quantity)
	assert.Equal(t, "5.5", table.Records[1].Quantity)
	assert.Equal(t, "1102", table.Records[1].Lot)

	result := analysis.Analyze(table.Records)
	assert.Equal(t, 1240, result.Summary.GrandTotal)
	assert.True(t, result.Coercion.Clean())
	require.NoError(t, result.Verify())
}
