// Package analysis aggregates packing records into size summaries and
// lot and location breakdowns.
package analysis

import (
	"slices"
	"strings"

	"github.com/guttosm/packing-report/internal/domain/model"
)

// categoryTable maps every known raw CAT code, upper-cased, to its category.
// Numeric cells may arrive as "1" or "1.0" depending on how the sheet was saved.
var categoryTable = map[string]model.Category{
	"1":     model.CategoryOne,
	"1.0":   model.CategoryOne,
	"I":     model.CategoryOne,
	"CAT1":  model.CategoryOne,
	"1*":    model.CategoryOneStar,
	"I*":    model.CategoryOneStar,
	"CAT1*": model.CategoryOneStar,
	"2":     model.CategoryTwo,
	"2.0":   model.CategoryTwo,
	"II":    model.CategoryTwo,
	"CAT2":  model.CategoryTwo,
}

// UnlabelledCategory is used for rows whose CAT cell is empty.
const UnlabelledCategory model.Category = "CAT?"

// NormalizeCategory maps a raw CAT cell to a category. The second return is
// false when the code is not in the table; such codes become "CAT<code>" so
// their boxes still appear in every total.
func NormalizeCategory(raw string) (model.Category, bool) {
	code := strings.ToUpper(strings.Join(strings.Fields(raw), ""))
	if code == "" {
		return UnlabelledCategory, false
	}
	if c, ok := categoryTable[code]; ok {
		return c, true
	}
	if strings.HasPrefix(code, "CAT") {
		return model.Category(code), false
	}
	return model.Category("CAT" + code), false
}

// orderCategories returns the canonical categories followed by any extra
// categories seen in the data, in lexical order.
func orderCategories(seen map[model.Category]struct{}) []model.Category {
	out := make([]model.Category, 0, len(model.CanonicalCategories)+len(seen))
	out = append(out, model.CanonicalCategories...)

	var extra []model.Category
	for c := range seen {
		if !c.IsCanonical() {
			extra = append(extra, c)
		}
	}
	slices.Sort(extra)
	return append(out, extra...)
}
