package model

import "fmt"

// SizeSummary is one row of the size summary table.
//
// @Description Box totals for a single size
// @Example {"size": 14, "boxes": 15, "percentage": 83.33, "by_category": {"CAT1": 10, "CAT1*": 0, "CAT2": 5}}
type SizeSummary struct {
	Size       int              `json:"size" example:"14"`
	Boxes      int              `json:"boxes" example:"15"`
	Percentage float64          `json:"percentage" example:"83.33"`
	ByCategory map[Category]int `json:"by_category"`
}

// Summary is the size by category pivot with totals.
type Summary struct {
	Categories     []Category       `json:"categories"`
	Rows           []SizeSummary    `json:"rows"`
	CategoryTotals map[Category]int `json:"category_totals"`
	GrandTotal     int              `json:"grand_total" example:"18"`
}

// Dimension is the key a breakdown is grouped by.
type Dimension string

const (
	DimensionSize     Dimension = "size"
	DimensionLot      Dimension = "lot"
	DimensionLocation Dimension = "location"
)

// BreakdownRow is one (key, category, size) group.
type BreakdownRow struct {
	Key      string   `json:"key"`
	Category Category `json:"category"`
	Size     int      `json:"size"`
	Boxes    int      `json:"boxes"`
}

// GroupTotal is the subtotal for a single key.
type GroupTotal struct {
	Key   string `json:"key"`
	Boxes int    `json:"boxes"`
}

// Breakdown is a grouped view of the records by one dimension.
type Breakdown struct {
	Dimension  Dimension      `json:"dimension"`
	Rows       []BreakdownRow `json:"rows"`
	Groups     []GroupTotal   `json:"groups"`
	GrandTotal int            `json:"grand_total"`
}

// Analysis is the complete aggregated view of a packing list.
type Analysis struct {
	Summary    Summary   `json:"summary"`
	BySize     Breakdown `json:"by_size"`
	ByLot      Breakdown `json:"by_lot"`
	ByLocation Breakdown `json:"by_location"`
	Coercion   Coercion  `json:"coercion"`
}

// Verify checks that every view of the analysis accounts for the same boxes.
func (a *Analysis) Verify() error {
	sizeSum := 0
	for _, row := range a.Summary.Rows {
		catSum := 0
		for _, n := range row.ByCategory {
			catSum += n
		}
		if catSum != row.Boxes {
			return fmt.Errorf("size %d: category boxes %d != total %d", row.Size, catSum, row.Boxes)
		}
		sizeSum += row.Boxes
	}
	if sizeSum != a.Summary.GrandTotal {
		return fmt.Errorf("size totals %d != grand total %d", sizeSum, a.Summary.GrandTotal)
	}

	for _, b := range []Breakdown{a.BySize, a.ByLot, a.ByLocation} {
		if b.GrandTotal != a.Summary.GrandTotal {
			return fmt.Errorf("%s breakdown total %d != grand total %d", b.Dimension, b.GrandTotal, a.Summary.GrandTotal)
		}
		groupSum := 0
		for _, g := range b.Groups {
			groupSum += g.Boxes
		}
		if groupSum != b.GrandTotal {
			return fmt.Errorf("%s subtotals %d != breakdown total %d", b.Dimension, groupSum, b.GrandTotal)
		}
	}
	return nil
}

// AnalysisResult is the outcome of analyzing one uploaded workbook.
type AnalysisResult struct {
	Analysis       *Analysis `json:"analysis"`
	Report         []byte    `json:"-"`
	RequestID      string    `json:"request_id,omitempty"`
	SourceFilename string    `json:"source_filename"`
	OutputFilename string    `json:"output_filename"`
	InputSHA256    string    `json:"input_sha256"`
	SizeOrder      []int     `json:"size_order,omitempty"`
	DurationMs     int64     `json:"duration_ms"`
	Cached         bool      `json:"cached"`
}
