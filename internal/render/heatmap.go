package render

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"

	"bikeshare/internal/charts"
)

var nanColor = color.NRGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}

// matrixGrid exposes a square matrix as a heat map grid with row 0 on top
type matrixGrid struct {
	values [][]float64
}

func (g matrixGrid) Dims() (c, r int) { return len(g.values), len(g.values) }
func (g matrixGrid) Z(c, r int) float64 { return g.values[r][c] }
func (g matrixGrid) X(c int) float64    { return float64(c) }
func (g matrixGrid) Y(r int) float64    { return float64(len(g.values) - 1 - r) }

// writeHeatmap draws an annotated correlation matrix on a diverging
// blue-red scale
func writeHeatmap(w io.Writer, spec *charts.Spec) error {
	hm := spec.Heatmap
	if hm == nil || len(hm.Labels) == 0 {
		return fmt.Errorf("heatmap has no cells")
	}
	k := len(hm.Labels)

	cmap := moreland.SmoothBlueRed()
	cmap.SetMin(hm.Min)
	cmap.SetMax(hm.Max)

	heat := plotter.NewHeatMap(matrixGrid{values: hm.Values}, cmap.Palette(255))
	heat.Min = hm.Min
	heat.Max = hm.Max
	heat.NaN = nanColor

	var (
		points plotter.XYs
		labels []string
	)
	for r := 0; r < k; r++ {
		for c := 0; c < k; c++ {
			v := hm.Values[r][c]
			if math.IsNaN(v) {
				continue
			}
			points = append(points, plotter.XY{X: float64(c), Y: float64(k - 1 - r)})
			labels = append(labels, strconv.FormatFloat(v, 'f', 2, 64))
		}
	}

	p := plot.New()
	p.Title.Text = spec.Title
	p.Add(heat)

	if len(points) > 0 {
		annotations, err := plotter.NewLabels(plotter.XYLabels{XYs: points, Labels: labels})
		if err != nil {
			return fmt.Errorf("failed to annotate heatmap: %w", err)
		}
		for i := range annotations.TextStyle {
			annotations.TextStyle[i].XAlign = text.XCenter
			annotations.TextStyle[i].YAlign = text.YCenter
		}
		p.Add(annotations)
	}

	reversed := make([]string, k)
	for i, l := range hm.Labels {
		reversed[k-1-i] = l
	}
	p.NominalX(hm.Labels...)
	p.NominalY(reversed...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter

	return writePlot(w, p, spec.Size)
}
