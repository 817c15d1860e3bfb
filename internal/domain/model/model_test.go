package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategory_IsCanonical(t *testing.T) {
	for _, c := range CanonicalCategories {
		assert.True(t, c.IsCanonical(), c)
	}
	assert.False(t, Category("CAT3").IsCanonical())
	assert.False(t, Category("cat1").IsCanonical())
}

func TestCoercion_Clean(t *testing.T) {
	assert.True(t, Coercion{RowsRead: 10}.Clean())
	assert.False(t, Coercion{ExcludedSizes: 1}.Clean())
	assert.False(t, Coercion{ZeroedQuantities: 1}.Clean())
	assert.False(t, Coercion{UnknownCategories: []string{"CAT3"}}.Clean())
}

func consistentAnalysis() *Analysis {
	return &Analysis{
		Summary: Summary{
			Categories: []Category{CategoryOne, CategoryTwo},
			Rows: []SizeSummary{
				{Size: 14, Boxes: 15, ByCategory: map[Category]int{CategoryOne: 10, CategoryTwo: 5}},
				{Size: 16, Boxes: 3, ByCategory: map[Category]int{CategoryOne: 3, CategoryTwo: 0}},
			},
			GrandTotal: 18,
		},
		BySize:     Breakdown{Dimension: DimensionSize, Groups: []GroupTotal{{Key: "14", Boxes: 15}, {Key: "16", Boxes: 3}}, GrandTotal: 18},
		ByLot:      Breakdown{Dimension: DimensionLot, Groups: []GroupTotal{{Key: "101", Boxes: 18}}, GrandTotal: 18},
		ByLocation: Breakdown{Dimension: DimensionLocation, Groups: []GroupTotal{{Key: "A", Boxes: 9}, {Key: "B", Boxes: 9}}, GrandTotal: 18},
	}
}

func TestAnalysis_Verify(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(a *Analysis)
		wantErr string
	}{
		{name: "consistent", mutate: func(*Analysis) {}},
		{
			name:    "category split does not add up",
			mutate:  func(a *Analysis) { a.Summary.Rows[0].ByCategory[CategoryTwo] = 4 },
			wantErr: "size 14",
		},
		{
			name:    "grand total drift",
			mutate:  func(a *Analysis) { a.Summary.GrandTotal = 20 },
			wantErr: "size totals 18 != grand total 20",
		},
		{
			name:    "breakdown total drift",
			mutate:  func(a *Analysis) { a.ByLot.GrandTotal = 17 },
			wantErr: "lot breakdown total",
		},
		{
			name:    "subtotal drift",
			mutate:  func(a *Analysis) { a.ByLocation.Groups[1].Boxes = 8 },
			wantErr: "location subtotals",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := consistentAnalysis()
			tt.mutate(a)
			err := a.Verify()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
