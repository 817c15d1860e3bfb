package analysis

import (
	"strconv"
	"testing"

	"github.com/guttosm/packing-report/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func raw(size, cat, qty, lot, loc string) model.RawRecord {
	return model.RawRecord{Size: size, Category: cat, Quantity: qty, Lot: lot, Location: loc}
}

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		raw       string
		want      model.Category
		wantKnown bool
	}{
		{"1", model.CategoryOne, true},
		{"1 ", model.CategoryOne, true},
		{" 1.0", model.CategoryOne, true},
		{"i", model.CategoryOne, true},
		{"1*", model.CategoryOneStar, true},
		{"1 *", model.CategoryOneStar, true},
		{"cat1*", model.CategoryOneStar, true},
		{"II", model.CategoryTwo, true},
		{"2", model.CategoryTwo, true},
		{"CAT2", model.CategoryTwo, true},
		{"3", model.Category("CAT3"), false},
		{"cat3", model.Category("CAT3"), false},
		{"", UnlabelledCategory, false},
	}

	for _, tt := range tests {
		t.Run(strconv.Quote(tt.raw), func(t *testing.T) {
			got, known := NormalizeCategory(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantKnown, known)
		})
	}
}

func TestNormalize(t *testing.T) {
	records, coercion := Normalize([]model.RawRecord{
		raw("14", "1", "10", "101", "A"),
		raw("abc", "1", "10", "101", "A"),
		raw("16", "2", "n/a", "101", "A"),
		raw("18", "X", "-4", "", ""),
		raw("20.0", "1*", "3,0", "102", "B"),
	})

	require.Len(t, records, 4)
	assert.Equal(t, 5, coercion.RowsRead)
	assert.Equal(t, 1, coercion.ExcludedSizes)
	assert.Equal(t, 2, coercion.ZeroedQuantities)
	assert.Equal(t, []string{"X"}, coercion.UnknownCategories)
	assert.False(t, coercion.Clean())

	assert.Equal(t, 0, records[1].Quantity)
	assert.Equal(t, 0, records[2].Quantity)
	assert.Equal(t, MissingKey, records[2].Lot)
	assert.Equal(t, MissingKey, records[2].Location)
	assert.Equal(t, 20, records[3].Size)
	assert.Equal(t, 3, records[3].Quantity)
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"14", 14, true},
		{" 1234 ", 1234, true},
		{"5.5", 6, true},
		{"3,0", 3, true},
		{"-4", -4, true},
		{"1e3", 1000, true},
		{"1e9", 1_000_000_000, true},
		{"1e30", 0, false},
		{"-1e30", 0, false},
		{"Inf", 0, false},
		{"NaN", 0, false},
		{"", 0, false},
		{"abc", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseNumber(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_OutOfRangeValues(t *testing.T) {
	records, coercion := Normalize([]model.RawRecord{
		raw("1e30", "1", "10", "101", "A"),
		raw("14", "1", "1e30", "101", "A"),
		raw("14", "1", "2", "101", "A"),
	})

	require.Len(t, records, 2)
	assert.Equal(t, 1, coercion.ExcludedSizes)
	assert.Equal(t, 1, coercion.ZeroedQuantities)
	assert.Equal(t, 0, records[0].Quantity)
	assert.Equal(t, 2, records[1].Quantity)
}

func TestSummarize_WorkedExample(t *testing.T) {
	records, _ := Normalize([]model.RawRecord{
		raw("14", "1", "10", "1", "A"),
		raw("14", "II", "5", "1", "A"),
		raw("16", "1*", "3", "2", "B"),
	})

	s := Summarize(records)

	require.Len(t, s.Rows, 2)
	assert.Equal(t, model.SizeSummary{
		Size: 14, Boxes: 15, Percentage: 83.33,
		ByCategory: map[model.Category]int{model.CategoryOne: 10, model.CategoryOneStar: 0, model.CategoryTwo: 5},
	}, s.Rows[0])
	assert.Equal(t, model.SizeSummary{
		Size: 16, Boxes: 3, Percentage: 16.67,
		ByCategory: map[model.Category]int{model.CategoryOne: 0, model.CategoryOneStar: 3, model.CategoryTwo: 0},
	}, s.Rows[1])
	assert.Equal(t, 18, s.GrandTotal)
	assert.Equal(t, map[model.Category]int{model.CategoryOne: 10, model.CategoryOneStar: 3, model.CategoryTwo: 5}, s.CategoryTotals)
	assert.Equal(t, model.CanonicalCategories, s.Categories)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)

	assert.Empty(t, s.Rows)
	assert.Zero(t, s.GrandTotal)
	assert.Equal(t, model.CanonicalCategories, s.Categories)
	for _, c := range model.CanonicalCategories {
		assert.Zero(t, s.CategoryTotals[c])
	}
}

func TestSummarize_ZeroQuantitiesGivesZeroPercent(t *testing.T) {
	records, _ := Normalize([]model.RawRecord{raw("14", "1", "x", "1", "A")})
	s := Summarize(records)

	require.Len(t, s.Rows, 1)
	assert.Zero(t, s.Rows[0].Boxes)
	assert.Zero(t, s.Rows[0].Percentage)
}

func TestSummarize_UnknownCategoryBecomesColumn(t *testing.T) {
	records, _ := Normalize([]model.RawRecord{
		raw("14", "1", "4", "1", "A"),
		raw("14", "3", "6", "1", "A"),
	})
	s := Summarize(records)

	assert.Equal(t, []model.Category{model.CategoryOne, model.CategoryOneStar, model.CategoryTwo, "CAT3"}, s.Categories)
	assert.Equal(t, 10, s.Rows[0].Boxes)
	assert.Equal(t, 6, s.CategoryTotals["CAT3"])
}

func TestSortSizes(t *testing.T) {
	tests := []struct {
		name  string
		sizes []int
		order []int
		want  []int
	}{
		{"ascending without order", []int{20, 12, 16}, nil, []int{12, 16, 20}},
		{"canonical order", []int{20, 12, 16}, []int{16, 12, 20}, []int{16, 12, 20}},
		{"unlisted sizes follow ascending", []int{99, 14, 13, 12}, DefaultSizeOrder, []int{12, 14, 13, 99}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SortSizes(tt.sizes, tt.order)
			assert.Equal(t, tt.want, tt.sizes)
		})
	}
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 83.33, Percentage(15, 18))
	assert.Equal(t, 16.67, Percentage(3, 18))
	assert.Equal(t, 100.0, Percentage(7, 7))
	assert.Equal(t, 0.0, Percentage(5, 0))
	assert.Equal(t, "83.33%", FormatPercentage(83.33))
	assert.Equal(t, "100.00%", FormatPercentage(100))
	assert.Equal(t, "0.00%", FormatPercentage(0))
}

func TestBreakdown(t *testing.T) {
	records, _ := Normalize([]model.RawRecord{
		raw("16", "1", "3", "10", "B"),
		raw("14", "1", "10", "9", "A"),
		raw("14", "2", "5", "9", "A"),
		raw("14", "1", "2", "9", "B"),
		raw("12", "1", "20", "10", "A"),
	})

	b := Breakdown(records, model.DimensionLot)

	assert.Equal(t, model.DimensionLot, b.Dimension)
	assert.Equal(t, []model.BreakdownRow{
		{Key: "9", Category: model.CategoryOne, Size: 14, Boxes: 12},
		{Key: "9", Category: model.CategoryTwo, Size: 14, Boxes: 5},
		{Key: "10", Category: model.CategoryOne, Size: 12, Boxes: 20},
		{Key: "10", Category: model.CategoryOne, Size: 16, Boxes: 3},
	}, b.Rows)
	assert.Equal(t, []model.GroupTotal{{Key: "10", Boxes: 23}, {Key: "9", Boxes: 17}}, b.Groups)
	assert.Equal(t, 40, b.GrandTotal)

	loc := Breakdown(records, model.DimensionLocation)
	assert.Equal(t, []model.GroupTotal{{Key: "A", Boxes: 35}, {Key: "B", Boxes: 5}}, loc.Groups)
}

func TestBreakdown_TiesOrderedByKey(t *testing.T) {
	records, _ := Normalize([]model.RawRecord{
		raw("14", "1", "5", "B", "x"),
		raw("14", "1", "5", "A", "x"),
	})
	b := Breakdown(records, model.DimensionLot)
	assert.Equal(t, []model.GroupTotal{{Key: "A", Boxes: 5}, {Key: "B", Boxes: 5}}, b.Groups)
}

func TestCompareKeys(t *testing.T) {
	assert.Negative(t, CompareKeys("9", "10"))
	assert.Negative(t, CompareKeys("10", "A"))
	assert.Positive(t, CompareKeys("B", "A"))
	assert.Zero(t, CompareKeys("X", "X"))
}

func TestAnalyze_Invariants(t *testing.T) {
	rows := []model.RawRecord{
		raw("14", "1", "10", "1", "A"),
		raw("14", "II", "5", "1", "B"),
		raw("16", "1*", "3", "2", "A"),
		raw("18", "1", "7", "3", "C"),
		raw("20", "2", "11", "3", "C"),
		raw("20", "7", "2", "", "C"),
	}

	a := Analyze(rows, WithSizeOrder(DefaultSizeOrder))
	require.NoError(t, a.Verify())

	var rawTotal int
	for _, r := range rows {
		n, _ := strconv.Atoi(r.Quantity)
		rawTotal += n
	}
	assert.Equal(t, rawTotal, a.Summary.GrandTotal)
	assert.Equal(t, a.Summary.GrandTotal, a.ByLot.GrandTotal)
	assert.Equal(t, a.Summary.GrandTotal, a.ByLocation.GrandTotal)
	assert.Equal(t, a.Summary.GrandTotal, a.BySize.GrandTotal)

	var pct float64
	for _, r := range a.Summary.Rows {
		pct += r.Percentage
	}
	assert.InDelta(t, 100.0, pct, 0.01*float64(len(a.Summary.Rows)))
}

func TestAnalyze_Idempotent(t *testing.T) {
	rows := []model.RawRecord{
		raw("14", "1", "10", "1", "A"),
		raw("16", "1*", "3", "2", "B"),
		raw("14", "2", "5", "1", "A"),
	}
	assert.Equal(t, Analyze(rows), Analyze(rows))
}

func TestAnalyze_Empty(t *testing.T) {
	a := Analyze(nil)

	require.NoError(t, a.Verify())
	assert.Empty(t, a.Summary.Rows)
	assert.Empty(t, a.ByLot.Rows)
	assert.Zero(t, a.ByLocation.GrandTotal)
}

func TestAnalysisVerify_DetectsMismatch(t *testing.T) {
	a := Analyze([]model.RawRecord{raw("14", "1", "10", "1", "A")})
	a.ByLot.GrandTotal++
	assert.Error(t, a.Verify())
}
