package analysis

import "github.com/guttosm/packing-report/internal/domain/model"

// Analyze normalizes raw rows and builds every view of the packing list.
// It is a pure function of its input: the same rows always yield the same analysis.
func Analyze(raw []model.RawRecord, opts ...Option) *model.Analysis {
	records, coercion := Normalize(raw)
	return &model.Analysis{
		Summary:    Summarize(records, opts...),
		BySize:     Breakdown(records, model.DimensionSize),
		ByLot:      Breakdown(records, model.DimensionLot),
		ByLocation: Breakdown(records, model.DimensionLocation),
		Coercion:   coercion,
	}
}
