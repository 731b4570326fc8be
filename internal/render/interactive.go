package render

import (
	"bytes"
	"fmt"
	"strconv"

	echarts "github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"bikeshare/internal/charts"
)

// Interactive renders a line spec as a standalone go-echarts HTML document
// with tooltips and a zoom slider
func Interactive(spec *charts.Spec) (string, error) {
	if spec.Kind != charts.KindLine || spec.Line == nil {
		return "", fmt.Errorf("interactive rendering supports line charts only, got %v", spec.Kind)
	}
	l := spec.Line

	xLabels := make([]string, len(l.Y))
	for i := range l.Y {
		if l.TimeAxis() {
			xLabels[i] = l.Dates[i].Format("2006-01-02")
		} else {
			xLabels[i] = strconv.FormatFloat(l.X[i], 'f', -1, 64)
		}
	}

	points := make([]opts.LineData, len(l.Y))
	for i, y := range l.Y {
		points[i] = opts.LineData{Value: y}
	}

	line := echarts.NewLine()
	line.SetGlobalOptions(
		echarts.WithInitializationOpts(opts.Initialization{
			Theme:  types.ThemeWesteros,
			Width:  "100%",
			Height: "420px",
		}),
		echarts.WithTitleOpts(opts.Title{
			Title: spec.Title,
		}),
		echarts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		echarts.WithXAxisOpts(opts.XAxis{
			Name:      spec.XLabel,
			AxisLabel: &opts.AxisLabel{Rotate: l.XLabelRotation},
		}),
		echarts.WithYAxisOpts(opts.YAxis{
			Name: spec.YLabel,
		}),
		echarts.WithDataZoomOpts(opts.DataZoom{
			Type:  "slider",
			Start: 0,
			End:   100,
		}),
	)

	line.SetXAxis(xLabels).
		AddSeries(spec.YLabel, points).
		SetSeriesOptions(echarts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}))

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return "", fmt.Errorf("failed to render interactive chart: %w", err)
	}
	return buf.String(), nil
}
