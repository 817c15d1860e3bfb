package analysis

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/guttosm/packing-report/internal/domain/model"
)

type groupKey struct {
	key      string
	category model.Category
	size     int
}

// Breakdown groups records by dim, then by category and size.
//
// Rows are sorted by key, category and size. Groups carry one subtotal per
// key, largest first; equal subtotals are ordered by key.
func Breakdown(records []model.Record, dim model.Dimension) model.Breakdown {
	sums := make(map[groupKey]int)
	subtotals := make(map[string]int)
	total := 0

	for _, r := range records {
		k := groupKey{key: dimensionKey(r, dim), category: r.Category, size: r.Size}
		sums[k] += r.Quantity
		subtotals[k.key] += r.Quantity
		total += r.Quantity
	}

	b := model.Breakdown{
		Dimension:  dim,
		Rows:       make([]model.BreakdownRow, 0, len(sums)),
		Groups:     make([]model.GroupTotal, 0, len(subtotals)),
		GrandTotal: total,
	}
	for k, boxes := range sums {
		b.Rows = append(b.Rows, model.BreakdownRow{Key: k.key, Category: k.category, Size: k.size, Boxes: boxes})
	}
	slices.SortFunc(b.Rows, func(x, y model.BreakdownRow) int {
		if c := CompareKeys(x.Key, y.Key); c != 0 {
			return c
		}
		if c := strings.Compare(string(x.Category), string(y.Category)); c != 0 {
			return c
		}
		return cmp.Compare(x.Size, y.Size)
	})

	for key, boxes := range subtotals {
		b.Groups = append(b.Groups, model.GroupTotal{Key: key, Boxes: boxes})
	}
	slices.SortFunc(b.Groups, func(x, y model.GroupTotal) int {
		if x.Boxes != y.Boxes {
			return cmp.Compare(y.Boxes, x.Boxes)
		}
		return CompareKeys(x.Key, y.Key)
	})
	return b
}

func dimensionKey(r model.Record, dim model.Dimension) string {
	switch dim {
	case model.DimensionLot:
		return r.Lot
	case model.DimensionLocation:
		return r.Location
	default:
		return strconv.Itoa(r.Size)
	}
}

// CompareKeys orders numeric keys numerically and before any non-numeric key,
// which are compared as strings. Lot 9 sorts before lot 10.
func CompareKeys(a, b string) int {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	switch {
	case errA == nil && errB == nil:
		return cmp.Compare(fa, fb)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}
