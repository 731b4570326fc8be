package charts

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"bikeshare/internal/dataset"
	"bikeshare/internal/stats"
)

var (
	boxColor      = color.NRGBA{R: 0x4c, G: 0x72, B: 0xb0, A: 0xff}
	emphasisColor = color.NRGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff}
	yearPalette   = []color.NRGBA{
		{R: 0x4c, G: 0x72, B: 0xb0, A: 0xff},
		{R: 0xdd, G: 0x84, B: 0x52, A: 0xff},
		{R: 0x55, G: 0xa8, B: 0x68, A: 0xff},
		{R: 0xc4, G: 0x4e, B: 0x52, A: 0xff},
	}
)

// yr is stored as an offset from the first year of the dataset
const baseYear = 2011

type boxLayout struct {
	column string
	xLabel string
	label  func(key int) string
	color  func(index int) color.NRGBA
	bands  bool
}

func codeLabel(key int) string { return strconv.Itoa(key) }

func plainColor(int) color.NRGBA { return boxColor }

// BoxplotByMonth summarises rentals per month
func BoxplotByMonth(t *dataset.Table, title string, opts ...Option) (*Spec, error) {
	return boxplot(t, title, boxLayout{
		column: dataset.ColMonth,
		xLabel: LabelMonth,
		label:  codeLabel,
		color:  plainColor,
	}, applyOptions(opts))
}

// BoxplotByHour summarises rentals per hour of day. Hour bands passed with
// WithBands are shaded behind the boxes.
func BoxplotByHour(t *dataset.Table, title string, opts ...Option) (*Spec, error) {
	return boxplot(t, title, boxLayout{
		column: dataset.ColHour,
		xLabel: LabelHour,
		label:  codeLabel,
		color:  plainColor,
		bands:  true,
	}, applyOptions(opts))
}

// BoxplotBySeason summarises rentals per season code. WithEmphasis overlays a
// highlighted copy of one season's box.
func BoxplotBySeason(t *dataset.Table, title string, opts ...Option) (*Spec, error) {
	return boxplot(t, title, boxLayout{
		column: dataset.ColSeason,
		xLabel: LabelSeason,
		label:  codeLabel,
		color:  plainColor,
	}, applyOptions(opts))
}

// BoxplotByYear summarises rentals per year, one color per year
func BoxplotByYear(t *dataset.Table, title string, opts ...Option) (*Spec, error) {
	return boxplot(t, title, boxLayout{
		column: dataset.ColYear,
		xLabel: LabelYear,
		label:  func(key int) string { return strconv.Itoa(baseYear + key) },
		color:  func(i int) color.NRGBA { return yearPalette[i%len(yearPalette)] },
	}, applyOptions(opts))
}

func boxplot(t *dataset.Table, title string, layout boxLayout, o options) (*Spec, error) {
	keys, err := t.Int(layout.column)
	if err != nil {
		return nil, err
	}
	counts, err := t.Float(dataset.ColCount)
	if err != nil {
		return nil, err
	}

	groups := stats.GroupByKey(keys, counts)
	if len(groups) == 0 {
		return nil, fmt.Errorf("%s table has no rows", t.Name())
	}
	sorted := make([]int, 0, len(groups))
	for k := range groups {
		sorted = append(sorted, k)
	}
	sort.Ints(sorted)

	data := &BoxData{Groups: make([]BoxGroup, 0, len(sorted))}
	for i, k := range sorted {
		values := finite(groups[k])
		summary, err := summarise(values)
		if err != nil {
			return nil, fmt.Errorf("%s %d: %w", layout.column, k, err)
		}
		data.Groups = append(data.Groups, BoxGroup{
			Key:     k,
			Label:   layout.label(k),
			Values:  values,
			Summary: summary,
			Color:   layout.color(i),
		})
	}

	if o.emphasis != 0 {
		for _, g := range data.Groups {
			if g.Key == o.emphasis {
				emphasis := g
				emphasis.Color = emphasisColor
				data.Emphasis = &emphasis
				break
			}
		}
	}

	spec := &Spec{
		Kind:   KindBox,
		Title:  title,
		XLabel: layout.xLabel,
		YLabel: LabelCount,
		Size:   sizeBox,
		Box:    data,
	}
	if layout.bands {
		spec.Bands = o.rangeBands()
	}
	return spec, nil
}

func finite(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

// summarise takes the box statistics from gonum/plot so the numbers in the
// spec are the ones the rendered box shows.
func summarise(values []float64) (BoxSummary, error) {
	if len(values) == 0 {
		return BoxSummary{}, fmt.Errorf("no finite values")
	}
	box, err := plotter.NewBoxPlot(vg.Points(20), 0, plotter.Values(values))
	if err != nil {
		return BoxSummary{}, err
	}

	outliers := make([]float64, 0, len(box.Outside))
	for _, idx := range box.Outside {
		outliers = append(outliers, values[idx])
	}
	sort.Float64s(outliers)

	return BoxSummary{
		Median:   box.Median,
		Q1:       box.Quartile1,
		Q3:       box.Quartile3,
		Low:      box.AdjLow,
		High:     box.AdjHigh,
		Outliers: outliers,
	}, nil
}
