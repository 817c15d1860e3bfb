// Package model defines the core domain entities for the packing report service.
package model

// Category is a normalized quality grade of packed fruit.
type Category string

// Canonical categories. Every summary carries a column for each of them,
// even when no record falls into it.
const (
	CategoryOne     Category = "CAT1"
	CategoryOneStar Category = "CAT1*"
	CategoryTwo     Category = "CAT2"
)

// CanonicalCategories lists the canonical categories in report column order.
var CanonicalCategories = []Category{CategoryOne, CategoryOneStar, CategoryTwo}

// IsCanonical reports whether c is one of the canonical categories.
func (c Category) IsCanonical() bool {
	for _, canonical := range CanonicalCategories {
		if c == canonical {
			return true
		}
	}
	return false
}

// RawRecord is a single DATA row exactly as read from the workbook.
type RawRecord struct {
	// Row is the 1-based sheet row the record came from.
	Row      int
	Size     string
	Category string
	Quantity string
	Lot      string
	Location string
}

// Record is a normalized packing entry.
//
// @Description One packed quantity of a size and category from a lot and location
type Record struct {
	Row      int      `json:"row" example:"3"`
	Size     int      `json:"size" example:"14"`
	Category Category `json:"category" example:"CAT1"`
	Quantity int      `json:"quantity" example:"10"`
	Lot      string   `json:"lot" example:"101"`
	Location string   `json:"location" example:"CSG-001"`
}

// Coercion counts what normalization had to repair or drop.
type Coercion struct {
	RowsRead          int      `json:"rows_read"`
	SkippedBlankRows  int      `json:"skipped_blank_rows"`
	ExcludedSizes     int      `json:"excluded_sizes"`
	ZeroedQuantities  int      `json:"zeroed_quantities"`
	UnknownCategories []string `json:"unknown_categories,omitempty"`
}

// Clean reports whether no row needed repair.
func (c Coercion) Clean() bool {
	return c.ExcludedSizes == 0 && c.ZeroedQuantities == 0 && len(c.UnknownCategories) == 0
}
