package charts

import (
	"fmt"

	"bikeshare/internal/dataset"
	"bikeshare/internal/stats"
)

// LineplotByDate plots rentals against the calendar date. Rows that share a
// date are averaged, so a daily table yields exactly its cnt column.
func LineplotByDate(t *dataset.Table, title string, opts ...Option) (*Spec, error) {
	o := applyOptions(opts)

	counts, err := t.Float(dataset.ColCount)
	if err != nil {
		return nil, err
	}
	if len(counts) == 0 {
		return nil, fmt.Errorf("%s table has no rows", t.Name())
	}
	dates, means := stats.MeanByDate(t.Dates(), counts)

	return &Spec{
		Kind:   KindLine,
		Title:  title,
		XLabel: LabelDate,
		YLabel: LabelCount,
		Size:   sizeDateLine,
		Line: &LineData{
			Dates:          dates,
			Y:              means,
			XLabelRotation: 45,
		},
		Bands: o.dateBands(),
	}, nil
}

// LineplotByMonth plots mean rentals for each month present in the table
func LineplotByMonth(t *dataset.Table, title string, opts ...Option) (*Spec, error) {
	o := applyOptions(opts)

	months, err := t.Int(dataset.ColMonth)
	if err != nil {
		return nil, err
	}
	counts, err := t.Float(dataset.ColCount)
	if err != nil {
		return nil, err
	}
	if len(counts) == 0 {
		return nil, fmt.Errorf("%s table has no rows", t.Name())
	}

	keys, means := stats.MeanByKey(months, counts)
	x := make([]float64, len(keys))
	for i, k := range keys {
		x[i] = float64(k)
	}

	return &Spec{
		Kind:   KindLine,
		Title:  title,
		XLabel: LabelMonth,
		YLabel: LabelCount,
		Size:   sizeMonthLine,
		Line: &LineData{
			X: x,
			Y: means,
		},
		Bands: o.rangeBands(),
	}, nil
}
