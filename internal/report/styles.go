package report

import "github.com/xuri/excelize/v2"

type styles struct {
	title      int
	header     int
	cell       int
	total      int
	section    int
	subtotal   int
	grandTotal int
}

func thinBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
}

func newStyles(f *excelize.File) (*styles, error) {
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center"}
	s := &styles{}
	defs := []struct {
		dst   *int
		style *excelize.Style
	}{
		{&s.title, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 14},
			Alignment: center,
		}},
		{&s.header, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"366092"}},
			Alignment: center,
			Border:    thinBorder(),
		}},
		{&s.cell, &excelize.Style{
			Alignment: center,
			Border:    thinBorder(),
		}},
		{&s.total, &excelize.Style{
			Font:      &excelize.Font{Bold: true},
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9D9D9"}},
			Alignment: center,
			Border:    thinBorder(),
		}},
		{&s.section, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}}},
		{&s.subtotal, &excelize.Style{Font: &excelize.Font{Bold: true}}},
		{&s.grandTotal, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}}},
	}

	for _, d := range defs {
		id, err := f.NewStyle(d.style)
		if err != nil {
			return nil, err
		}
		*d.dst = id
	}
	return s, nil
}
