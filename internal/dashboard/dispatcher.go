// Package dashboard maps a tab selection to its charts. Every selection
// derives and renders the full chart set again; nothing is cached.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"bikeshare/internal/charts"
	"bikeshare/internal/config"
	"bikeshare/internal/dataset"
	"bikeshare/internal/logger"
	"bikeshare/internal/render"
)

// Renderer draws a chart spec
type Renderer interface {
	Render(spec *charts.Spec) (*render.Chart, error)
}

// Recorder receives per-chart and per-tab measurements
type Recorder interface {
	RecordChart(tab, kind string, err error)
	RecordTab(tab string, d time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) RecordChart(string, string, error)  {}
func (nopRecorder) RecordTab(string, time.Duration) {}

// View is a tab ready for the page
type View struct {
	Tab      Tab
	Header   string
	Sections []SectionView
}

// SectionView is a subheading and its charts in plan order
type SectionView struct {
	Heading string
	Charts  []ChartView
}

// ChartView holds a rendered chart or, when it failed, a notice
type ChartView struct {
	Name   string
	Title  string
	Table  string
	Chart  *render.Chart
	Notice string
	Bands  []charts.Band
}

// Failed reports whether the chart was replaced by a notice
func (c ChartView) Failed() bool {
	return c.Chart == nil
}

// Dispatcher runs tab plans against the loaded tables
type Dispatcher struct {
	data     *dataset.Data
	renderer Renderer
	recorder Recorder
	log      *logger.Logger

	dateBands      []charts.Band
	monthBands     []charts.Band
	hourBands      []charts.Band
	seasonEmphasis int
}

// Option configures a Dispatcher
type Option func(*Dispatcher)

// WithRecorder reports chart outcomes and tab timings to r
func WithRecorder(r Recorder) Option {
	return func(d *Dispatcher) {
		d.recorder = r
	}
}

// NewDispatcher creates a dispatcher over read-only data
func NewDispatcher(data *dataset.Data, renderer Renderer, highlights config.Highlights, opts ...Option) (*Dispatcher, error) {
	if data == nil || data.Day == nil || data.Hour == nil {
		return nil, fmt.Errorf("both tables are required")
	}
	if renderer == nil {
		return nil, fmt.Errorf("renderer is required")
	}

	dateBands, err := charts.DateBands(highlights.DateBands)
	if err != nil {
		return nil, err
	}
	monthBands, err := charts.RangeBands(highlights.MonthBands)
	if err != nil {
		return nil, err
	}
	hourBands, err := charts.RangeBands(highlights.HourBands)
	if err != nil {
		return nil, err
	}

	d := &Dispatcher{
		data:           data,
		renderer:       renderer,
		recorder:       nopRecorder{},
		log:            logger.Component("dashboard"),
		dateBands:      dateBands,
		monthBands:     monthBands,
		hourBands:      hourBands,
		seasonEmphasis: highlights.SeasonEmphasis,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

func (d *Dispatcher) table(g dataset.Granularity) *dataset.Table {
	if g == dataset.Hourly {
		return d.data.Hour
	}
	return d.data.Day
}

// Run executes the plan for tab in order. A chart that fails to build or
// render becomes a notice and the remaining charts still run. An unknown tab
// runs nothing.
func (d *Dispatcher) Run(ctx context.Context, tab Tab) (*View, error) {
	plan, err := d.Plan(tab)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	log := d.log.With(logger.Fields{"tab": string(tab)})

	view := &View{Tab: plan.Tab, Header: plan.Header}
	failed := 0
	for _, section := range plan.Sections {
		sv := SectionView{Heading: section.Heading}
		for _, inv := range section.Invocations {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			cv := d.runOne(tab, inv)
			if cv.Failed() {
				failed++
				log.Warn("chart failed", logger.Fields{"chart": inv.Chart, "table": cv.Table, "notice": cv.Notice})
			}
			sv.Charts = append(sv.Charts, cv)
		}
		view.Sections = append(view.Sections, sv)
	}

	elapsed := time.Since(start)
	d.recorder.RecordTab(string(tab), elapsed)
	log.Info("tab rendered", logger.Fields{
		"charts":      len(plan.Invocations()),
		"failed":      failed,
		"duration_ms": elapsed.Milliseconds(),
	})
	return view, nil
}

func (d *Dispatcher) runOne(tab Tab, inv Invocation) ChartView {
	t := d.table(inv.Table)
	cv := ChartView{Name: inv.Chart, Title: inv.Title, Table: t.Name()}

	spec, err := inv.Build(t, inv.Title, inv.Options...)
	if err != nil {
		d.recorder.RecordChart(string(tab), inv.Chart, err)
		cv.Notice = fmt.Sprintf("Chart unavailable: %v", err)
		return cv
	}

	chart, err := d.renderer.Render(spec)
	d.recorder.RecordChart(string(tab), inv.Chart, err)
	if err != nil {
		cv.Notice = fmt.Sprintf("Chart unavailable: %v", err)
		return cv
	}

	cv.Chart = chart
	cv.Bands = spec.Bands
	return cv
}
