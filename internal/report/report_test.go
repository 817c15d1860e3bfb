package report

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/guttosm/packing-report/internal/analysis"
	"github.com/guttosm/packing-report/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleAnalysis() *model.Analysis {
	return analysis.Analyze([]model.RawRecord{
		{Row: 3, Size: "14", Category: "1", Quantity: "10", Lot: "101", Location: "CSG-1"},
		{Row: 4, Size: "14", Category: "II", Quantity: "5", Lot: "101", Location: "CSG-2"},
		{Row: 5, Size: "16", Category: "1*", Quantity: "3", Lot: "102", Location: "CSG-1"},
	})
}

func renderAndOpen(t *testing.T, a *model.Analysis, opts Options) (*excelize.File, []byte) {
	t.Helper()
	data, err := Bytes(a, opts)
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f, data
}

func cellValue(t *testing.T, f *excelize.File, sheet, cell string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, cell)
	require.NoError(t, err)
	return v
}

func TestRender_Sheets(t *testing.T) {
	f, _ := renderAndOpen(t, sampleAnalysis(), DefaultOptions())
	assert.Equal(t, []string{SummarySheet, LotSheet, LocationSheet}, f.GetSheetList())
}

func TestRender_SummarySheet(t *testing.T) {
	generated := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	opts := DefaultOptions()
	opts.SourceName = "PACKING LIST 14.xlsx"
	opts.GeneratedAt = generated
	f, _ := renderAndOpen(t, sampleAnalysis(), opts)

	assert.Equal(t, DefaultTitle, cellValue(t, f, SummarySheet, "B8"))
	merged, err := f.GetMergeCells(SummarySheet)
	require.NoError(t, err)
	require.Len(t, merged, 1)
	assert.Equal(t, "B8", merged[0].GetStartAxis())
	assert.Equal(t, "G8", merged[0].GetEndAxis())

	assert.Equal(t, "PACKING LIST 14.xlsx", cellValue(t, f, SummarySheet, "C5"))
	assert.Equal(t, "01/03/2024 09:30", cellValue(t, f, SummarySheet, "C6"))

	header, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"", "SIZE", "BOXES", "TOTAL%", "BOXES CAT1", "BOXES CAT1*", "BOXES CAT2"}, header[9])

	assert.Equal(t, []string{"", "14", "15", "83.33%", "10", "0", "5"}, header[10])
	assert.Equal(t, []string{"", "16", "3", "16.67%", "0", "3", "0"}, header[11])

	assert.Equal(t, "TOTAL", cellValue(t, f, SummarySheet, "B13"))
	assert.Equal(t, "100.00%", cellValue(t, f, SummarySheet, "D13"))

	formula, err := f.GetCellFormula(SummarySheet, "C13")
	require.NoError(t, err)
	assert.Equal(t, "SUM(C11:C12)", formula)

	for cell, want := range map[string]string{"C13": "18", "E13": "10", "F13": "3", "G13": "5"} {
		got, err := f.CalcCellValue(SummarySheet, cell)
		require.NoError(t, err)
		assert.Equal(t, want, got, cell)
	}

	width, err := f.GetColWidth(SummarySheet, "B")
	require.NoError(t, err)
	assert.Equal(t, 12.0, width)
	width, err = f.GetColWidth(SummarySheet, "F")
	require.NoError(t, err)
	assert.Equal(t, 13.0, width)
}

func TestRender_PrecomputedTotals(t *testing.T) {
	opts := DefaultOptions()
	opts.FormulaTotals = false
	f, _ := renderAndOpen(t, sampleAnalysis(), opts)

	formula, err := f.GetCellFormula(SummarySheet, "C13")
	require.NoError(t, err)
	assert.Empty(t, formula)
	assert.Equal(t, "18", cellValue(t, f, SummarySheet, "C13"))
	assert.Equal(t, "5", cellValue(t, f, SummarySheet, "G13"))
}

func TestRender_Chart(t *testing.T) {
	_, data := renderAndOpen(t, sampleAnalysis(), DefaultOptions())

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	var chart string
	for _, file := range zr.File {
		if strings.HasPrefix(file.Name, "xl/charts/chart") {
			rc, err := file.Open()
			require.NoError(t, err)
			var buf bytes.Buffer
			_, err = buf.ReadFrom(rc)
			require.NoError(t, err)
			_ = rc.Close()
			chart = buf.String()
		}
	}
	require.NotEmpty(t, chart, "expected a chart part")
	assert.Contains(t, chart, "pieChart")
	assert.Contains(t, chart, DefaultChart)
	assert.Contains(t, chart, "Hoja1!$C$11:$C$12")
}

func TestRender_EmptyAnalysis(t *testing.T) {
	f, data := renderAndOpen(t, analysis.Analyze(nil), DefaultOptions())

	assert.Equal(t, "TOTAL", cellValue(t, f, SummarySheet, "B11"))
	assert.Equal(t, "0", cellValue(t, f, SummarySheet, "C11"))
	assert.Equal(t, "0.00%", cellValue(t, f, SummarySheet, "D11"))
	assert.Equal(t, "0", cellValue(t, f, SummarySheet, "E11"))

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	for _, file := range zr.File {
		assert.False(t, strings.HasPrefix(file.Name, "xl/charts/"), "no chart expected for empty data")
	}

	assert.Equal(t, GrandTotalLabel, cellValue(t, f, LotSheet, "A8"))
	assert.Equal(t, "0", cellValue(t, f, LotSheet, "D8"))
}

func TestRender_LotSheet(t *testing.T) {
	f, _ := renderAndOpen(t, sampleAnalysis(), DefaultOptions())

	rows, err := f.GetRows(LotSheet)
	require.NoError(t, err)

	assert.Equal(t, "BREAKDOWN BY LOTE", rows[0][0])
	assert.Equal(t, []string{"LOTE", "CAT", "CALIBRE", "CANTIDAD - CAJAS"}, rows[2])
	assert.Equal(t, []string{"101", "CAT1", "14", "10"}, rows[3])
	assert.Equal(t, []string{"101", "CAT2", "14", "5"}, rows[4])
	assert.Equal(t, []string{"102", "CAT1*", "16", "3"}, rows[5])

	// 3 detail rows end on row 6; the section starts on row 9.
	assert.Equal(t, "SUMMARY BY LOTE", rows[8][0])
	assert.Equal(t, []string{"Lote 101:", "", "", "15"}, rows[9])
	assert.Equal(t, []string{"Lote 102:", "", "", "3"}, rows[10])
	assert.Equal(t, []string{"GRAND TOTAL:", "", "", "18"}, rows[12])

	width, err := f.GetColWidth(LotSheet, "D")
	require.NoError(t, err)
	assert.Equal(t, 18.0, width)
}

func TestRender_LocationSheet(t *testing.T) {
	f, _ := renderAndOpen(t, sampleAnalysis(), DefaultOptions())

	assert.Equal(t, "BREAKDOWN BY PRODUCTION LOCATION", cellValue(t, f, LocationSheet, "A1"))
	assert.Equal(t, "CÓDIGO PRODUCCIÓN", cellValue(t, f, LocationSheet, "A3"))
	assert.Equal(t, "SUMMARY BY PRODUCTION LOCATION", cellValue(t, f, LocationSheet, "A9"))
	assert.Equal(t, "CSG-1", cellValue(t, f, LocationSheet, "A10"))
	assert.Equal(t, "13", cellValue(t, f, LocationSheet, "D10"))
	assert.Equal(t, "CSG-2", cellValue(t, f, LocationSheet, "A11"))
	assert.Equal(t, "18", cellValue(t, f, LocationSheet, "D13"))

	width, err := f.GetColWidth(LocationSheet, "A")
	require.NoError(t, err)
	assert.Equal(t, 25.0, width)
}

func TestRender_ExtraCategoryColumn(t *testing.T) {
	a := analysis.Analyze([]model.RawRecord{
		{Size: "14", Category: "1", Quantity: "4", Lot: "1", Location: "A"},
		{Size: "14", Category: "3", Quantity: "6", Lot: "1", Location: "A"},
	})
	f, _ := renderAndOpen(t, a, DefaultOptions())

	assert.Equal(t, "BOXES CAT3", cellValue(t, f, SummarySheet, "H10"))
	assert.Equal(t, "6", cellValue(t, f, SummarySheet, "H11"))
}

func TestRender_NilAnalysis(t *testing.T) {
	_, err := Render(nil, DefaultOptions())
	assert.Error(t, err)
}

func TestSaveAs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, SaveAs(path, sampleAnalysis(), DefaultOptions()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestOutputFilename(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"PACKING LIST 14.xlsx", "PACKING LIST 14_ANALYSIS.xlsx"},
		{"packing_list.XLSX", "packing_list_ANALYSIS.xlsx"},
		{"report", "report_ANALYSIS.xlsx"},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			assert.Equal(t, tt.want, OutputFilename(tt.source))
		})
	}
}
