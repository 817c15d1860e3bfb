package report

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/guttosm/packing-report/internal/analysis"
	"github.com/guttosm/packing-report/internal/domain/model"
	"github.com/xuri/excelize/v2"
)

// Summary sheet layout. Rows and columns are 1-based.
const (
	summaryFirstCol   = 2 // B
	summarySourceRow  = 5
	summaryDateRow    = 6
	summaryTitleRow   = 8
	summaryHeaderRow  = 10
	summaryFirstData  = 11
	summaryMinWidth   = 12
	summaryMaxWidth   = 20
	chartWidthPixels  = 480
	chartHeightPixels = 480
)

// Fixed leading columns of the summary table.
const (
	HeaderSize       = "SIZE"
	HeaderBoxes      = "BOXES"
	HeaderPercentage = "TOTAL%"
	TotalLabel       = "TOTAL"
)

// CategoryHeader is the summary column header for category c.
func CategoryHeader(c model.Category) string {
	return "BOXES " + string(c)
}

func writeSummarySheet(f *excelize.File, s *styles, sum model.Summary, opts Options) error {
	sheet := SummarySheet
	headers := []string{HeaderSize, HeaderBoxes, HeaderPercentage}
	for _, c := range sum.Categories {
		headers = append(headers, CategoryHeader(c))
	}
	lastCol := summaryFirstCol + len(headers) - 1
	totalRow := summaryFirstData + len(sum.Rows)

	if opts.SourceName != "" {
		if err := writeLabel(f, sheet, summarySourceRow, sourceLabel, opts.SourceName); err != nil {
			return err
		}
	}
	if !opts.GeneratedAt.IsZero() {
		if err := writeLabel(f, sheet, summaryDateRow, generatedLabel, opts.GeneratedAt.Format(dateLayout)); err != nil {
			return err
		}
	}

	titleCell := cellName(summaryFirstCol, summaryTitleRow)
	if err := f.SetCellValue(sheet, titleCell, opts.Title); err != nil {
		return err
	}
	if err := f.MergeCell(sheet, titleCell, cellName(lastCol, summaryTitleRow)); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, titleCell, cellName(lastCol, summaryTitleRow), s.title); err != nil {
		return err
	}

	// widths tracks the longest rendered text per column.
	widths := make([]int, len(headers))
	track := func(i int, text string) {
		if n := utf8.RuneCountInString(text); n > widths[i] {
			widths[i] = n
		}
	}

	for i, h := range headers {
		if err := f.SetCellValue(sheet, cellName(summaryFirstCol+i, summaryHeaderRow), h); err != nil {
			return err
		}
		track(i, h)
	}

	for r, row := range sum.Rows {
		rowNum := summaryFirstData + r
		pct := analysis.FormatPercentage(row.Percentage)
		values := []interface{}{row.Size, row.Boxes, pct}
		for _, c := range sum.Categories {
			values = append(values, row.ByCategory[c])
		}
		for i, v := range values {
			if err := f.SetCellValue(sheet, cellName(summaryFirstCol+i, rowNum), v); err != nil {
				return err
			}
			track(i, fmt.Sprint(v))
		}
	}

	if err := writeTotalsRow(f, sheet, sum, totalRow, opts.FormulaTotals); err != nil {
		return err
	}

	if err := f.SetCellStyle(sheet, cellName(summaryFirstCol, summaryHeaderRow), cellName(lastCol, summaryHeaderRow), s.header); err != nil {
		return err
	}
	if len(sum.Rows) > 0 {
		if err := f.SetCellStyle(sheet, cellName(summaryFirstCol, summaryFirstData), cellName(lastCol, totalRow-1), s.cell); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheet, cellName(summaryFirstCol, totalRow), cellName(lastCol, totalRow), s.total); err != nil {
		return err
	}

	for i, w := range widths {
		col := columnName(summaryFirstCol + i)
		if err := f.SetColWidth(sheet, col, col, columnWidth(w)); err != nil {
			return err
		}
	}

	if len(sum.Rows) == 0 {
		return nil
	}
	return addSizeChart(f, sheet, opts.ChartTitle, totalRow)
}

// writeTotalsRow writes TOTAL, the grand total, the percentage marker and the
// per-category totals. With no data rows plain zeros are written.
func writeTotalsRow(f *excelize.File, sheet string, sum model.Summary, totalRow int, formulas bool) error {
	if err := f.SetCellValue(sheet, cellName(summaryFirstCol, totalRow), TotalLabel); err != nil {
		return err
	}

	marker := analysis.FormatPercentage(0)
	if sum.GrandTotal > 0 {
		marker = analysis.FormatPercentage(100)
	}
	if err := f.SetCellValue(sheet, cellName(summaryFirstCol+2, totalRow), marker); err != nil {
		return err
	}

	type total struct {
		col   int
		value int
	}
	totals := []total{{summaryFirstCol + 1, sum.GrandTotal}}
	for i, c := range sum.Categories {
		totals = append(totals, total{summaryFirstCol + 3 + i, sum.CategoryTotals[c]})
	}

	useFormulas := formulas && len(sum.Rows) > 0
	for _, t := range totals {
		cell := cellName(t.col, totalRow)
		if !useFormulas {
			if err := f.SetCellValue(sheet, cell, t.value); err != nil {
				return err
			}
			continue
		}
		col := columnName(t.col)
		formula := "SUM(" + col + strconv.Itoa(summaryFirstData) + ":" + col + strconv.Itoa(totalRow-1) + ")"
		if err := f.SetCellFormula(sheet, cell, formula); err != nil {
			return err
		}
	}
	return nil
}

func addSizeChart(f *excelize.File, sheet, title string, totalRow int) error {
	lastData := totalRow - 1
	sizeCol := columnName(summaryFirstCol)
	boxesCol := columnName(summaryFirstCol + 1)
	ref := func(col string) string {
		return fmt.Sprintf("%s!$%s$%d:$%s$%d", sheet, col, summaryFirstData, col, lastData)
	}

	return f.AddChart(sheet, cellName(summaryFirstCol, totalRow+3), &excelize.Chart{
		Type: excelize.Pie,
		Series: []excelize.ChartSeries{{
			Categories: ref(sizeCol),
			Values:     ref(boxesCol),
		}},
		Title:  []excelize.RichTextRun{{Text: title}},
		Legend: excelize.ChartLegend{Position: "right"},
		PlotArea: excelize.ChartPlotArea{
			ShowVal: true,
		},
		Dimension: excelize.ChartDimension{Width: chartWidthPixels, Height: chartHeightPixels},
	})
}

func writeLabel(f *excelize.File, sheet string, row int, label, value string) error {
	if err := f.SetCellValue(sheet, cellName(summaryFirstCol, row), label); err != nil {
		return err
	}
	return f.SetCellValue(sheet, cellName(summaryFirstCol+1, row), value)
}

// columnWidth fits a column to its longest text, within [12, 20].
func columnWidth(longest int) float64 {
	w := longest + 2
	if w < summaryMinWidth {
		w = summaryMinWidth
	}
	if w > summaryMaxWidth {
		w = summaryMaxWidth
	}
	return float64(w)
}
