package dashboard

import (
	"fmt"

	"bikeshare/internal/charts"
	"bikeshare/internal/dataset"
)

// Invocation is one builder call of a tab
type Invocation struct {
	// Chart names the builder, e.g. "boxplot_season"
	Chart   string
	Table   dataset.Granularity
	Title   string
	Build   charts.Builder
	Options []charts.Option
}

// Section groups invocations under a subheading
type Section struct {
	Heading     string
	Invocations []Invocation
}

// Plan is the fixed ordered chart list of a tab
type Plan struct {
	Tab      Tab
	Header   string
	Sections []Section
}

// Invocations flattens the plan in execution order
func (p *Plan) Invocations() []Invocation {
	var out []Invocation
	for _, s := range p.Sections {
		out = append(out, s.Invocations...)
	}
	return out
}

// Plan returns the chart list for tab
func (d *Dispatcher) Plan(tab Tab) (*Plan, error) {
	switch tab {
	case TabDescriptive:
		return d.descriptivePlan(), nil
	case TabAdvanced:
		return d.advancedPlan(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTab, string(tab))
	}
}

func (d *Dispatcher) descriptivePlan() *Plan {
	dateBands := []charts.Option{charts.WithBands(d.dateBands...)}
	monthBands := []charts.Option{charts.WithBands(d.monthBands...)}
	hourBands := []charts.Option{charts.WithBands(d.hourBands...)}
	emphasis := []charts.Option{charts.WithEmphasis(d.seasonEmphasis)}

	return &Plan{
		Tab:    TabDescriptive,
		Header: TabDescriptive.Label(),
		Sections: []Section{
			{
				Heading: "Distribusi Jumlah Penyewaan Sepeda terhadap Waktu",
				Invocations: []Invocation{
					{"lineplot_dteday", dataset.Daily, "Distribusi Jumlah Penyewaan Sepeda per Hari terhadap Waktu", charts.LineplotByDate, dateBands},
					{"lineplot_dteday", dataset.Hourly, "Distribusi Jumlah Penyewaan Sepeda per Jam terhadap Waktu", charts.LineplotByDate, dateBands},
				},
			},
			{
				Heading: "Distribusi Jumlah Penyewaan Sepeda Berdasarkan Musim",
				Invocations: []Invocation{
					{"boxplot_season", dataset.Daily, "Distribusi Jumlah Penyewaan Sepeda per Hari Berdasarkan Musim", charts.BoxplotBySeason, emphasis},
					{"boxplot_season", dataset.Hourly, "Distribusi Jumlah Penyewaan Sepeda per Jam Berdasarkan Musim", charts.BoxplotBySeason, emphasis},
				},
			},
			{
				Heading: "Perbedaan Jumlah Penyewaan Sepeda Antara Tahun 2011 dan 2012",
				Invocations: []Invocation{
					{"boxplot_yr", dataset.Daily, "Distribusi Jumlah Penyewaan Sepeda per Hari Berdasarkan Tahun", charts.BoxplotByYear, nil},
					{"boxplot_yr", dataset.Hourly, "Distribusi Jumlah Penyewaan Sepeda per Jam Berdasarkan Tahun", charts.BoxplotByYear, nil},
				},
			},
			{
				Heading: "Jumlah Penyewaan Sepeda Berdasarkan Bulan",
				Invocations: []Invocation{
					{"lineplot_mnth", dataset.Daily, "Distribusi Jumlah Penyewaan Sepeda per Hari terhadap Bulan", charts.LineplotByMonth, monthBands},
					{"lineplot_mnth", dataset.Hourly, "Distribusi Jumlah Penyewaan Sepeda per Jam terhadap Bulan", charts.LineplotByMonth, monthBands},
				},
			},
			{
				Heading: "Jumlah Penyewaan Sepeda Berdasarkan Jam",
				Invocations: []Invocation{
					{"boxplot_hr", dataset.Hourly, "Distribusi Jumlah Penyewaan Sepeda terhadap Jam", charts.BoxplotByHour, hourBands},
				},
			},
		},
	}
}

func (d *Dispatcher) advancedPlan() *Plan {
	return &Plan{
		Tab:    TabAdvanced,
		Header: TabAdvanced.Label(),
		Sections: []Section{
			{
				Heading: "Analisis Korelasi",
				Invocations: []Invocation{
					{"heatmap_correlation", dataset.Hourly, "Correlation Matrix of df_hour", charts.CorrelationHeatmap, nil},
					{"heatmap_correlation", dataset.Daily, "Correlation Matrix of df_day", charts.CorrelationHeatmap, nil},
				},
			},
			{
				Heading: "Time Series Decomposition",
				Invocations: []Invocation{
					{"time_series_decomposition", dataset.Daily, "Time Series Decomposition of df_day", charts.SeasonalDecomposition, nil},
					{"time_series_decomposition", dataset.Hourly, "Time Series Decomposition of df_hour", charts.SeasonalDecomposition, nil},
				},
			},
		},
	}
}
