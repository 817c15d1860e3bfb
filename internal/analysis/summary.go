package analysis

import (
	"slices"

	"github.com/guttosm/packing-report/internal/domain/model"
	"github.com/shopspring/decimal"
)

// DefaultSizeOrder is the canonical commercial order of avocado sizes.
var DefaultSizeOrder = []int{12, 14, 16, 18, 20, 22, 24, 26, 28, 30, 32, 36, 40, 48, 50, 60, 70, 84}

var hundred = decimal.NewFromInt(100)

// Options configures an aggregation.
type Options struct {
	// SizeOrder, when set, lists sizes in the order rows are reported.
	// Sizes not in the list follow in ascending order.
	SizeOrder []int
}

// Option configures Options.
type Option func(*Options)

// WithSizeOrder sets the canonical size order.
func WithSizeOrder(order []int) Option {
	return func(o *Options) {
		o.SizeOrder = order
	}
}

func buildOptions(opts []Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Summarize pivots records into one row per size with a column per category.
func Summarize(records []model.Record, opts ...Option) model.Summary {
	o := buildOptions(opts)

	bySize := make(map[int]map[model.Category]int)
	seen := make(map[model.Category]struct{})
	for _, r := range records {
		cats, ok := bySize[r.Size]
		if !ok {
			cats = make(map[model.Category]int)
			bySize[r.Size] = cats
		}
		cats[r.Category] += r.Quantity
		seen[r.Category] = struct{}{}
	}

	categories := orderCategories(seen)
	summary := model.Summary{
		Categories:     categories,
		Rows:           make([]model.SizeSummary, 0, len(bySize)),
		CategoryTotals: make(map[model.Category]int, len(categories)),
	}
	for _, c := range categories {
		summary.CategoryTotals[c] = 0
	}

	sizes := make([]int, 0, len(bySize))
	for size := range bySize {
		sizes = append(sizes, size)
	}
	SortSizes(sizes, o.SizeOrder)

	for _, size := range sizes {
		row := model.SizeSummary{Size: size, ByCategory: make(map[model.Category]int, len(categories))}
		for _, c := range categories {
			n := bySize[size][c]
			row.ByCategory[c] = n
			row.Boxes += n
			summary.CategoryTotals[c] += n
		}
		summary.GrandTotal += row.Boxes
		summary.Rows = append(summary.Rows, row)
	}

	for i := range summary.Rows {
		summary.Rows[i].Percentage = Percentage(summary.Rows[i].Boxes, summary.GrandTotal)
	}
	return summary
}

// Percentage returns 100*part/total rounded to two decimals, or 0 when total is 0.
func Percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return decimal.NewFromInt(int64(part)).
		Mul(hundred).
		Div(decimal.NewFromInt(int64(total))).
		Round(2).
		InexactFloat64()
}

// FormatPercentage renders p as "NN.NN%".
func FormatPercentage(p float64) string {
	return decimal.NewFromFloat(p).StringFixed(2) + "%"
}

// SortSizes orders sizes in place. Sizes present in order come first, in that
// order; the rest follow ascending. A nil order sorts ascending.
func SortSizes(sizes []int, order []int) {
	rank := make(map[int]int, len(order))
	for i, s := range order {
		if _, dup := rank[s]; !dup {
			rank[s] = i
		}
	}
	slices.SortFunc(sizes, func(a, b int) int {
		ra, okA := rank[a]
		rb, okB := rank[b]
		switch {
		case okA && okB:
			return ra - rb
		case okA:
			return -1
		case okB:
			return 1
		default:
			return a - b
		}
	})
}
