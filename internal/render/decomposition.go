package render

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"bikeshare/internal/charts"
)

var componentColor = color.NRGBA{R: 31, G: 119, B: 180, A: 255}

// writeDecomposition stacks observed, trend, seasonal and residual panels
// sharing one date axis
func writeDecomposition(w io.Writer, spec *charts.Spec) error {
	d := spec.Decomposition
	if d == nil || len(d.Dates) == 0 {
		return fmt.Errorf("decomposition has no observations")
	}

	panels := []struct {
		name    string
		values  []float64
		scatter bool
	}{
		{"Observed", d.Observed, false},
		{"Trend", d.Trend, false},
		{"Seasonal", d.Seasonal, false},
		{"Resid", d.Residual, true},
	}

	plots := make([][]*plot.Plot, len(panels))
	for i, panel := range panels {
		p := plot.New()
		if i == 0 {
			p.Title.Text = spec.Title
		}
		p.Y.Label.Text = panel.name
		p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01"}

		pts := finitePoints(d.Dates, panel.values)
		if len(pts) > 0 {
			if panel.scatter {
				s, err := plotter.NewScatter(pts)
				if err != nil {
					return fmt.Errorf("%s panel: %w", panel.name, err)
				}
				s.GlyphStyle.Color = componentColor
				s.GlyphStyle.Radius = vg.Points(1.5)
				p.Add(s)
			} else {
				l, err := plotter.NewLine(pts)
				if err != nil {
					return fmt.Errorf("%s panel: %w", panel.name, err)
				}
				l.Color = componentColor
				p.Add(l)
			}
		}
		plots[i] = []*plot.Plot{p}
	}

	width := vg.Length(spec.Size.Width) * vg.Inch
	height := vg.Length(spec.Size.Height) * vg.Inch
	img := vgimg.New(width, height)
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows:      len(panels),
		Cols:      1,
		PadTop:    vg.Points(4),
		PadBottom: vg.Points(4),
		PadLeft:   vg.Points(4),
		PadRight:  vg.Points(12),
		PadY:      vg.Points(6),
	}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write decomposition: %w", err)
	}
	return nil
}

// finitePoints drops the NaN edges of the moving-average components
func finitePoints(dates []time.Time, values []float64) plotter.XYs {
	pts := make(plotter.XYs, 0, len(values))
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(dates[i].Unix()), Y: v})
	}
	return pts
}
