package render

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"bikeshare/internal/charts"
)

var lineColor = drawing.Color{R: 31, G: 119, B: 180, A: 255}

// writeLine draws a trend line with go-chart. Bands are drawn first as
// filled series at the top of the data so the line stays on top.
func writeLine(w io.Writer, spec *charts.Spec) error {
	l := spec.Line
	if l == nil || len(l.Y) == 0 {
		return fmt.Errorf("line chart has no points")
	}

	top := math.Inf(-1)
	for _, y := range l.Y {
		top = math.Max(top, y)
	}

	var series []chart.Series
	for _, b := range spec.Bands {
		style := chart.Style{
			StrokeColor: drawing.ColorTransparent,
			FillColor:   toDrawing(b.Color),
		}
		if l.TimeAxis() {
			series = append(series, chart.TimeSeries{
				Name:    b.Meaning,
				Style:   style,
				XValues: []time.Time{b.Start, b.End},
				YValues: []float64{top, top},
			})
		} else {
			series = append(series, chart.ContinuousSeries{
				Name:    b.Meaning,
				Style:   style,
				XValues: []float64{b.From, b.To},
				YValues: []float64{top, top},
			})
		}
	}

	lineStyle := chart.Style{StrokeColor: lineColor, StrokeWidth: 1.5}
	xAxis := chart.XAxis{
		Name:      spec.XLabel,
		NameStyle: chart.Style{FontSize: 12},
		Style:     chart.Style{FontSize: 9},
		TickStyle: chart.Style{TextRotationDegrees: l.XLabelRotation},
	}

	if l.TimeAxis() {
		series = append(series, chart.TimeSeries{
			Name:    spec.YLabel,
			Style:   lineStyle,
			XValues: l.Dates,
			YValues: l.Y,
		})
		xAxis.ValueFormatter = dateFormatter
	} else {
		series = append(series, chart.ContinuousSeries{
			Name:    spec.YLabel,
			Style:   lineStyle,
			XValues: l.X,
			YValues: l.Y,
		})
		xAxis.Ticks = categoryTicks(l.X)
	}

	// go-chart refuses a zero-width range, which a single date or month
	// without bands would produce
	if len(spec.Bands) == 0 {
		if lo, hi := xExtent(l); lo == hi {
			if l.TimeAxis() {
				day := float64(24 * time.Hour)
				xAxis.Range = &chart.ContinuousRange{Min: lo - day, Max: hi + day}
			} else {
				xAxis.Range = &chart.ContinuousRange{Min: lo - 0.5, Max: hi + 0.5}
				xAxis.Ticks = append(xAxis.Ticks, chart.Tick{Value: lo - 0.5}, chart.Tick{Value: hi + 0.5})
			}
		}
	}
	yAxis := chart.YAxis{
		Name:      spec.YLabel,
		NameStyle: chart.Style{FontSize: 12},
		Style:     chart.Style{FontSize: 10},
	}
	if lo, hi := floatExtent(l.Y); lo == hi {
		pad := math.Max(1, math.Abs(lo)*0.05)
		yAxis.Range = &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
	}

	graph := chart.Chart{
		Title:      spec.Title,
		TitleStyle: chart.Style{FontSize: 16, FontColor: drawing.ColorBlack},
		Width:      pixels(spec.Size.Width),
		Height:     pixels(spec.Size.Height),
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 80, Right: 30, Bottom: 70},
		},
		XAxis:  xAxis,
		YAxis:  yAxis,
		Series: series,
	}

	return graph.Render(chart.PNG, w)
}

// dateFormatter labels time ticks; go-chart hands time axis values over as
// nanosecond floats.
func dateFormatter(v interface{}) string {
	switch t := v.(type) {
	case time.Time:
		return t.Format("2006-01-02")
	case float64:
		return time.Unix(0, int64(t)).UTC().Format("2006-01-02")
	default:
		return ""
	}
}

// xExtent is the x span of the line, dates as nanosecond floats
func xExtent(l *charts.LineData) (float64, float64) {
	if !l.TimeAxis() {
		return floatExtent(l.X)
	}
	xs := make([]float64, len(l.Dates))
	for i, d := range l.Dates {
		xs[i] = float64(d.UnixNano())
	}
	return floatExtent(xs)
}

func floatExtent(values []float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

func categoryTicks(xs []float64) []chart.Tick {
	ticks := make([]chart.Tick, 0, len(xs))
	for _, x := range xs {
		ticks = append(ticks, chart.Tick{Value: x, Label: strconv.FormatFloat(x, 'f', -1, 64)})
	}
	return ticks
}
