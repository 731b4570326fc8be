package render

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"bikeshare/internal/charts"
)

var boxWidth = vg.Points(24)

// writeBox draws one box per category with gonum/plot. Boxes sit at x = 0..n-1
// under nominal labels.
func writeBox(w io.Writer, spec *charts.Spec) error {
	data := spec.Box
	if data == nil || len(data.Groups) == 0 {
		return fmt.Errorf("boxplot has no groups")
	}

	p := plot.New()
	p.Title.Text = spec.Title
	p.X.Label.Text = spec.XLabel
	p.Y.Label.Text = spec.YLabel

	low, high := math.Inf(1), math.Inf(-1)
	labels := make([]string, len(data.Groups))
	position := make(map[int]int, len(data.Groups))
	for i, g := range data.Groups {
		labels[i] = g.Label
		position[g.Key] = i
		for _, v := range g.Values {
			low = math.Min(low, v)
			high = math.Max(high, v)
		}
	}

	for _, b := range spec.Bands {
		from, to, ok := bandPositions(data.Groups, b)
		if !ok {
			continue
		}
		poly, err := plotter.NewPolygon(plotter.XYs{
			{X: from, Y: low}, {X: to, Y: low}, {X: to, Y: high}, {X: from, Y: high},
		})
		if err != nil {
			return fmt.Errorf("band %v-%v: %w", b.From, b.To, err)
		}
		poly.Color = b.Color
		poly.LineStyle.Width = 0
		p.Add(poly)
	}

	for i, g := range data.Groups {
		box, err := plotter.NewBoxPlot(boxWidth, float64(i), plotter.Values(g.Values))
		if err != nil {
			return fmt.Errorf("box %s: %w", g.Label, err)
		}
		box.FillColor = g.Color
		p.Add(box)
	}

	if e := data.Emphasis; e != nil {
		if i, ok := position[e.Key]; ok {
			box, err := plotter.NewBoxPlot(boxWidth/2, float64(i), plotter.Values(e.Values))
			if err != nil {
				return fmt.Errorf("emphasis box %s: %w", e.Label, err)
			}
			box.FillColor = e.Color
			p.Add(box)
		}
	}

	p.NominalX(labels...)
	p.Add(plotter.NewGrid())

	return writePlot(w, p, spec.Size)
}

// bandPositions maps a category band onto box positions, spanning the boxes
// whose keys fall inside it.
func bandPositions(groups []charts.BoxGroup, b charts.Band) (float64, float64, bool) {
	first, last := -1, -1
	for i, g := range groups {
		k := float64(g.Key)
		if k >= b.From && k <= b.To {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return 0, 0, false
	}
	return float64(first) - 0.5, float64(last) + 0.5, true
}

func writePlot(w io.Writer, p *plot.Plot, size charts.Size) error {
	writer, err := p.WriterTo(vg.Length(size.Width)*vg.Inch, vg.Length(size.Height)*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("failed to create plot writer: %w", err)
	}
	if _, err := writer.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write plot: %w", err)
	}
	return nil
}
