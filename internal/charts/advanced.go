package charts

import (
	"fmt"

	"bikeshare/internal/dataset"
	"bikeshare/internal/stats"
)

// CorrelationHeatmap correlates every numeric column of the table
func CorrelationHeatmap(t *dataset.Table, title string, _ ...Option) (*Spec, error) {
	names := t.NumericColumns()
	columns := make([][]float64, 0, len(names))
	for _, name := range names {
		values, err := t.Float(name)
		if err != nil {
			return nil, err
		}
		columns = append(columns, values)
	}

	corr, err := stats.CorrelationMatrix(columns)
	if err != nil {
		return nil, fmt.Errorf("%s table: %w", t.Name(), err)
	}

	k := len(names)
	values := make([][]float64, k)
	for i := range values {
		values[i] = make([]float64, k)
		for j := range values[i] {
			values[i][j] = corr.At(i, j)
		}
	}

	labels := make([]string, k)
	copy(labels, names)

	return &Spec{
		Kind:  KindHeatmap,
		Title: title,
		Size:  sizeHeatmap,
		Heatmap: &HeatmapData{
			Labels: labels,
			Values: values,
			Min:    -1,
			Max:    1,
		},
	}, nil
}

// SeasonalDecomposition totals rentals per date and splits the series into
// trend, seasonal and residual parts with a 30 day period.
func SeasonalDecomposition(t *dataset.Table, title string, _ ...Option) (*Spec, error) {
	counts, err := t.Float(dataset.ColCount)
	if err != nil {
		return nil, err
	}
	dates, totals := stats.SumByDate(t.Dates(), counts)

	d, err := stats.Decompose(totals, DecompositionPeriod)
	if err != nil {
		return nil, fmt.Errorf("%s table: %w", t.Name(), err)
	}

	return &Spec{
		Kind:  KindDecomposition,
		Title: title,
		Size:  sizeDecomposition,
		Decomposition: &DecompositionData{
			Dates:    dates,
			Period:   d.Period,
			Observed: d.Observed,
			Trend:    d.Trend,
			Seasonal: d.Seasonal,
			Residual: d.Residual,
		},
	}, nil
}
