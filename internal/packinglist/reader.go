// Package packinglist reads packing-list workbooks.
//
// A packing list is an xlsx workbook with a sheet literally named "DATA".
// Row 1 of that sheet is a decorative banner, row 2 holds the column names
// and data starts on row 3. Only the columns in RequiredColumns are read;
// any other column is ignored.
package packinglist

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/guttosm/packing-report/internal/domain/model"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/unicode/norm"
)

const (
	// SheetName is the sheet that holds the packing records.
	SheetName = "DATA"
	// HeaderRow is the 1-based row holding column names. Rows above it are skipped.
	HeaderRow = 2
)

// Column names as they appear on the header row.
const (
	ColumnSize     = "CALIBRE"
	ColumnCategory = "CAT"
	ColumnQuantity = "CANTIDAD - Cajas"
	ColumnLot      = "LOTE"
	ColumnLocation = "CÓDIGO DEL LUGAR DE PRODUCCIÓN"
)

// RequiredColumns lists every column a packing list must carry.
var RequiredColumns = []string{ColumnSize, ColumnCategory, ColumnQuantity, ColumnLot, ColumnLocation}

var (
	// ErrInvalidWorkbook is returned when the input is not a readable xlsx workbook.
	ErrInvalidWorkbook = errors.New("invalid workbook")
	// ErrSheetNotFound is returned when the workbook has no DATA sheet.
	ErrSheetNotFound = errors.New("sheet not found")
	// ErrMissingColumns is matched by every *MissingColumnsError.
	ErrMissingColumns = errors.New("missing required columns")
)

// MissingColumnsError lists the required columns absent from the header row.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Columns, ", "))
}

// Is lets errors.Is match ErrMissingColumns.
func (e *MissingColumnsError) Is(target error) bool {
	return target == ErrMissingColumns
}

// Table is the parsed content of the DATA sheet.
type Table struct {
	Records []model.RawRecord
	// Columns maps each required column to its 0-based index on the header row.
	Columns map[string]int
	// BlankRows counts data rows skipped because every required cell was empty.
	BlankRows int
}

// ReadBytes parses a workbook held in memory.
func ReadBytes(data []byte) (*Table, error) {
	return Read(bytes.NewReader(data))
}

// Read parses a workbook from r.
func Read(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWorkbook, err)
	}
	defer func() {
		_ = f.Close()
	}()
	return readFile(f)
}

// ReadFile parses the workbook at path.
func ReadFile(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWorkbook, err)
	}
	defer func() {
		_ = f.Close()
	}()
	return readFile(f)
}

func readFile(f *excelize.File) (*Table, error) {
	idx, err := f.GetSheetIndex(SheetName)
	if err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, SheetName)
	}

	// Raw values: a display format such as #,##0 would turn 1234 into "1,234".
	rows, err := f.GetRows(SheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWorkbook, err)
	}

	var header []string
	if len(rows) >= HeaderRow {
		header = rows[HeaderRow-1]
	}
	columns, err := locateColumns(header)
	if err != nil {
		return nil, err
	}

	table := &Table{Columns: columns}
	for i := HeaderRow; i < len(rows); i++ {
		row := rows[i]
		rec := model.RawRecord{
			Row:      i + 1,
			Size:     cell(row, columns[ColumnSize]),
			Category: cell(row, columns[ColumnCategory]),
			Quantity: cell(row, columns[ColumnQuantity]),
			Lot:      cell(row, columns[ColumnLot]),
			Location: cell(row, columns[ColumnLocation]),
		}
		if rec.Size == "" && rec.Category == "" && rec.Quantity == "" && rec.Lot == "" && rec.Location == "" {
			table.BlankRows++
			continue
		}
		table.Records = append(table.Records, rec)
	}
	return table, nil
}

// locateColumns finds each required column on the header row.
func locateColumns(header []string) (map[string]int, error) {
	found := make(map[string]int, len(RequiredColumns))
	for i, name := range header {
		key := canonicalHeader(name)
		for _, required := range RequiredColumns {
			if _, seen := found[required]; seen {
				continue
			}
			if key == canonicalHeader(required) {
				found[required] = i
			}
		}
	}

	var missing []string
	for _, required := range RequiredColumns {
		if _, ok := found[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}
	return found, nil
}

// canonicalHeader folds case, accents and inner whitespace so that
// "Código del lugar de producción" matches the canonical header.
func canonicalHeader(s string) string {
	decomposed := norm.NFD.String(strings.TrimSpace(s))
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if r >= 0x300 && r <= 0x36f {
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToUpper(strings.Join(strings.Fields(b.String()), " "))
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}
