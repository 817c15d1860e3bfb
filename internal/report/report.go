// Package report renders an analysis as a formatted xlsx workbook.
//
// The workbook has three sheets: the size summary with its pie chart, a
// breakdown by lot and a breakdown by production location.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/guttosm/packing-report/internal/domain/model"
	"github.com/xuri/excelize/v2"
)

// Sheet names.
const (
	SummarySheet  = "Hoja1"
	LotSheet      = "Breakdown by LOTE"
	LocationSheet = "Breakdown by Location"
	defaultSheet  = "Sheet1"
)

const (
	// OutputSuffix replaces ".xlsx" in the source name to form the report name.
	OutputSuffix = "_ANALYSIS.xlsx"
	DefaultTitle = "PACKING LIST- PALTAS NUÑEZ"
	DefaultChart = "Distribution by Size"

	xlsxExtension  = ".xlsx"
	dateLayout     = "02/01/2006 15:04"
	sourceLabel    = "Archivo:"
	generatedLabel = "Fecha de análisis:"
)

// Options configures rendering.
type Options struct {
	// Title is written in the merged banner above the summary table.
	Title string
	// ChartTitle is the title of the size distribution pie chart.
	ChartTitle string
	// SourceName, when set, is written above the table.
	SourceName string
	// GeneratedAt, when non-zero, is written above the table.
	GeneratedAt time.Time
	// FormulaTotals writes live SUM formulas in the totals row instead of
	// precomputed values.
	FormulaTotals bool
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		Title:         DefaultTitle,
		ChartTitle:    DefaultChart,
		FormulaTotals: true,
	}
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.ChartTitle == "" {
		o.ChartTitle = DefaultChart
	}
	return o
}

// Render builds the report workbook. The caller owns the returned file and
// must Close it.
func Render(a *model.Analysis, opts Options) (*excelize.File, error) {
	if a == nil {
		return nil, fmt.Errorf("render report: nil analysis")
	}
	opts = opts.withDefaults()

	f := excelize.NewFile()
	s, err := newStyles(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("render report: %w", err)
	}

	if err := f.SetSheetName(defaultSheet, SummarySheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("render report: %w", err)
	}
	if err := writeSummarySheet(f, s, a.Summary, opts); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("render summary sheet: %w", err)
	}
	if err := writeBreakdownSheet(f, s, lotLayout, a.ByLot); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("render lot sheet: %w", err)
	}
	if err := writeBreakdownSheet(f, s, locationLayout, a.ByLocation); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("render location sheet: %w", err)
	}

	if idx, err := f.GetSheetIndex(SummarySheet); err == nil {
		f.SetActiveSheet(idx)
	}
	return f, nil
}

// Write renders the report into w.
func Write(w io.Writer, a *model.Analysis, opts Options) error {
	f, err := Render(a, opts)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Bytes renders the report and returns the xlsx content.
func Bytes(a *model.Analysis, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, a, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SaveAs renders the report to path.
func SaveAs(path string, a *model.Analysis, opts Options) error {
	f, err := Render(a, opts)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report %s: %w", path, err)
	}
	return nil
}

// OutputFilename derives the report name from the source name:
// "PACKING LIST 14.xlsx" becomes "PACKING LIST 14_ANALYSIS.xlsx".
func OutputFilename(source string) string {
	if strings.HasSuffix(strings.ToLower(source), xlsxExtension) {
		return source[:len(source)-len(xlsxExtension)] + OutputSuffix
	}
	return source + OutputSuffix
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func columnName(col int) string {
	name, _ := excelize.ColumnNumberToName(col)
	return name
}
