package report

import (
	"strconv"

	"github.com/guttosm/packing-report/internal/domain/model"
	"github.com/xuri/excelize/v2"
)

// Breakdown sheet layout: title on row 1, header on row 3, detail from row 4,
// then two blank rows before the subtotal section.
const (
	breakdownTitleRow  = 1
	breakdownHeaderRow = 3
	breakdownFirstData = 4
	breakdownGap       = 3
	breakdownCols      = 4
)

// Breakdown sheet labels.
const (
	GrandTotalLabel = "GRAND TOTAL:"
	HeaderCategory  = "CAT"
	HeaderSizeGrade = "CALIBRE"
	HeaderBoxCount  = "CANTIDAD - CAJAS"
)

type breakdownLayout struct {
	sheet     string
	title     string
	keyHeader string
	section   string
	keyWidth  float64
	// groupLabel formats the subtotal label for a key.
	groupLabel func(key string) string
}

var lotLayout = breakdownLayout{
	sheet:      LotSheet,
	title:      "BREAKDOWN BY LOTE",
	keyHeader:  "LOTE",
	section:    "SUMMARY BY LOTE",
	keyWidth:   12,
	groupLabel: func(key string) string { return "Lote " + key + ":" },
}

var locationLayout = breakdownLayout{
	sheet:      LocationSheet,
	title:      "BREAKDOWN BY PRODUCTION LOCATION",
	keyHeader:  "CÓDIGO PRODUCCIÓN",
	section:    "SUMMARY BY PRODUCTION LOCATION",
	keyWidth:   25,
	groupLabel: func(key string) string { return key },
}

func writeBreakdownSheet(f *excelize.File, s *styles, l breakdownLayout, b model.Breakdown) error {
	sheet := l.sheet
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	if err := f.SetCellValue(sheet, cellName(1, breakdownTitleRow), l.title); err != nil {
		return err
	}
	if err := f.MergeCell(sheet, cellName(1, breakdownTitleRow), cellName(breakdownCols, breakdownTitleRow)); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, cellName(1, breakdownTitleRow), cellName(breakdownCols, breakdownTitleRow), s.title); err != nil {
		return err
	}

	header := []interface{}{l.keyHeader, HeaderCategory, HeaderSizeGrade, HeaderBoxCount}
	if err := f.SetSheetRow(sheet, cellName(1, breakdownHeaderRow), &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, cellName(1, breakdownHeaderRow), cellName(breakdownCols, breakdownHeaderRow), s.header); err != nil {
		return err
	}

	for i, row := range b.Rows {
		values := []interface{}{keyValue(row.Key), string(row.Category), row.Size, row.Boxes}
		if err := f.SetSheetRow(sheet, cellName(1, breakdownFirstData+i), &values); err != nil {
			return err
		}
	}
	if len(b.Rows) > 0 {
		last := breakdownFirstData + len(b.Rows) - 1
		if err := f.SetCellStyle(sheet, cellName(1, breakdownFirstData), cellName(breakdownCols, last), s.cell); err != nil {
			return err
		}
	}

	row := breakdownFirstData + len(b.Rows) + breakdownGap - 1
	if err := setStyled(f, sheet, cellName(1, row), l.section, s.section); err != nil {
		return err
	}
	row++

	for _, g := range b.Groups {
		if err := f.SetCellValue(sheet, cellName(1, row), l.groupLabel(g.Key)); err != nil {
			return err
		}
		if err := setStyled(f, sheet, cellName(breakdownCols, row), g.Boxes, s.subtotal); err != nil {
			return err
		}
		row++
	}

	row++
	if err := setStyled(f, sheet, cellName(1, row), GrandTotalLabel, s.grandTotal); err != nil {
		return err
	}
	if err := setStyled(f, sheet, cellName(breakdownCols, row), b.GrandTotal, s.grandTotal); err != nil {
		return err
	}

	widths := []float64{l.keyWidth, 8, 10, 18}
	for i, w := range widths {
		col := columnName(i + 1)
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return err
		}
	}
	return nil
}

// keyValue writes numeric keys as numbers so lot columns sort in Excel.
func keyValue(key string) interface{} {
	if n, err := strconv.Atoi(key); err == nil {
		return n
	}
	return key
}

func setStyled(f *excelize.File, sheet, cell string, value interface{}, style int) error {
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cell, cell, style)
}
