package analysis

import (
	"math"
	"strconv"
	"strings"

	"github.com/guttosm/packing-report/internal/domain/model"
)

// MissingKey labels records whose lot or location cell is blank.
const MissingKey = "N/A"

// Normalize converts raw rows into records.
//
// A row whose size cannot be read as a number is dropped from every view.
// A quantity that cannot be read, or is negative, counts as zero boxes.
// Fractional sizes and quantities are rounded to the nearest integer.
func Normalize(raw []model.RawRecord) ([]model.Record, model.Coercion) {
	records := make([]model.Record, 0, len(raw))
	coercion := model.Coercion{RowsRead: len(raw)}
	unknown := make(map[string]struct{})

	for _, r := range raw {
		size, ok := parseNumber(r.Size)
		if !ok {
			coercion.ExcludedSizes++
			continue
		}

		qty, ok := parseNumber(r.Quantity)
		if !ok || qty < 0 {
			coercion.ZeroedQuantities++
			qty = 0
		}

		category, known := NormalizeCategory(r.Category)
		if !known {
			if _, dup := unknown[r.Category]; !dup {
				unknown[r.Category] = struct{}{}
				coercion.UnknownCategories = append(coercion.UnknownCategories, r.Category)
			}
		}

		records = append(records, model.Record{
			Row:      r.Row,
			Size:     size,
			Category: category,
			Quantity: qty,
			Lot:      keyOrMissing(r.Lot),
			Location: keyOrMissing(r.Location),
		})
	}
	return records, coercion
}

// maxMagnitude bounds sizes and quantities; anything larger is not a
// plausible cell value and would overflow the sums.
const maxMagnitude = 1e9

// parseNumber reads an integer-valued cell. Numeric cells arrive as raw
// values; a decimal comma is accepted for numbers typed as text.
func parseNumber(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil || math.IsNaN(f) || math.Abs(f) > maxMagnitude {
		return 0, false
	}
	return int(math.Round(f)), true
}

func keyOrMissing(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return MissingKey
	}
	return s
}
