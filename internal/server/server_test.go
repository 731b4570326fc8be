package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bikeshare/internal/charts"
	"bikeshare/internal/config"
	"bikeshare/internal/dashboard"
	"bikeshare/internal/dataset"
	"bikeshare/internal/metrics"
	"bikeshare/internal/render"
	"bikeshare/internal/testutil"
)

type fakeRunner struct {
	tabs []dashboard.Tab
	view func(tab dashboard.Tab) *dashboard.View
	err  error
}

func (f *fakeRunner) Run(_ context.Context, tab dashboard.Tab) (*dashboard.View, error) {
	f.tabs = append(f.tabs, tab)
	if f.err != nil {
		return nil, f.err
	}
	if f.view != nil {
		return f.view(tab), nil
	}
	return &dashboard.View{
		Tab:    tab,
		Header: tab.Label(),
		Sections: []dashboard.SectionView{{
			Heading: "Tren Penyewaan",
			Charts: []dashboard.ChartView{{
				Name:  "lineplot_dteday",
				Title: "Trend " + string(tab),
				Table: "day",
				Chart: &render.Chart{Title: "Trend", Kind: charts.KindLine, PNG: []byte{0x89, 'P', 'N', 'G'}},
			}},
		}},
	}, nil
}

func newTestServer(t *testing.T, runner TabRunner) *Server {
	t.Helper()
	srv, err := NewServer(&config.Config{Port: "8501"}, nil, runner, metrics.NewPrometheusRecorder())
	require.NoError(t, err)
	return srv
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestNewServer_RequiresRunner(t *testing.T) {
	_, err := NewServer(&config.Config{}, nil, nil, nil)
	assert.Error(t, err)
}

func TestHandlePage_DefaultTab(t *testing.T) {
	runner := &fakeRunner{}
	h := newTestServer(t, runner).SetupRoutes()

	rec := get(t, h, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []dashboard.Tab{dashboard.TabDescriptive}, runner.tabs)

	body := rec.Body.String()
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, body, "<title>"+PageTitle+"</title>")
	assert.Contains(t, body, "Navigation")
	assert.Contains(t, body, "Select Tab")
	assert.Contains(t, body, `value="descriptive" onchange="this.form.submit()" checked`)
	assert.NotContains(t, body, `value="advanced" onchange="this.form.submit()" checked`)
	assert.Contains(t, body, "<h3>Tren Penyewaan</h3>")
	assert.Contains(t, body, `src="data:image/png;base64,`)
}

func TestHandlePage_SelectsTab(t *testing.T) {
	tests := []struct {
		query string
		want  dashboard.Tab
	}{
		{"advanced", dashboard.TabAdvanced},
		{"Descriptive", dashboard.TabDescriptive},
		{"Analisis+Lanjutan", dashboard.TabAdvanced},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			runner := &fakeRunner{}
			rec := get(t, newTestServer(t, runner).SetupRoutes(), "/?tab="+tt.query)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, []dashboard.Tab{tt.want}, runner.tabs)
			assert.Contains(t, rec.Body.String(), "<h2>"+template.HTMLEscapeString(tt.want.Label())+"</h2>")
		})
	}
}

func TestHandlePage_UnknownTab(t *testing.T) {
	runner := &fakeRunner{}
	rec := get(t, newTestServer(t, runner).SetupRoutes(), "/?tab=forecast")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, runner.tabs, "no chart runs for an unknown tab")
	body := rec.Body.String()
	assert.Contains(t, body, "Unknown tab forecast")
	assert.Contains(t, body, "Select Tab")
	assert.NotContains(t, body, "<img")
}

func TestHandlePage_RunnerFailure(t *testing.T) {
	runner := &fakeRunner{err: errors.New("tables vanished")}
	rec := get(t, newTestServer(t, runner).SetupRoutes(), "/")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "tables vanished")
}

func TestHandlePage_NoticeAndBands(t *testing.T) {
	runner := &fakeRunner{view: func(tab dashboard.Tab) *dashboard.View {
		return &dashboard.View{
			Tab:    tab,
			Header: tab.Label(),
			Sections: []dashboard.SectionView{{
				Heading: "Dekomposisi",
				Charts: []dashboard.ChartView{
					{Name: "time_series_decomposition", Title: "Decomposition of df_day", Table: "day", Notice: "Chart unavailable: boom"},
					{
						Name:  "boxplot_hr",
						Title: "Per Jam",
						Table: "hour",
						Chart: &render.Chart{PNG: []byte("png")},
						Bands: []charts.Band{
							{From: 16.5, To: 18.5, Meaning: "Jam sibuk"},
							{From: -0.5, To: 5.5, Meaning: "<script>alert(1)</script>"},
						},
					},
				},
			}},
		}
	}}
	rec := get(t, newTestServer(t, runner).SetupRoutes(), "/?tab=advanced")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Decomposition of df_day: Chart unavailable: boom")
	assert.Contains(t, body, "<li><strong>17-18</strong>: Jam sibuk</li>")
	assert.Contains(t, body, "<strong>0-5</strong>")
	assert.NotContains(t, body, "<script>alert(1)</script>")
	assert.Equal(t, 1, strings.Count(body, "<img"))
}

func TestHandlePage_Interactive(t *testing.T) {
	runner := &fakeRunner{view: func(tab dashboard.Tab) *dashboard.View {
		return &dashboard.View{
			Tab: tab,
			Sections: []dashboard.SectionView{{
				Heading: "Tren",
				Charts: []dashboard.ChartView{{
					Title: "Trend",
					Chart: &render.Chart{PNG: []byte("png"), Interactive: "<html><body>chart</body></html>"},
				}},
			}},
		}
	}}
	rec := get(t, newTestServer(t, runner).SetupRoutes(), "/")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `srcdoc="&lt;html&gt;&lt;body&gt;chart&lt;/body&gt;&lt;/html&gt;"`)
	assert.NotContains(t, body, "<img")
}

func TestHandleHealth(t *testing.T) {
	day, err := dataset.ReadTable("day", dataset.Daily, strings.NewReader(testutil.DayCSV(testutil.FirstDay, 10)))
	require.NoError(t, err)
	hour, err := dataset.ReadTable("hour", dataset.Hourly, strings.NewReader(testutil.HourCSV(testutil.FirstDay, 10, []int{0, 12})))
	require.NoError(t, err)

	srv, err := NewServer(&config.Config{}, &dataset.Data{Day: day, Hour: hour}, &fakeRunner{}, nil)
	require.NoError(t, err)

	rec := get(t, srv.SetupRoutes(), "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)

	var health struct {
		Status  string         `json:"status"`
		Version string         `json:"version"`
		Tables  map[string]int `json:"tables"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Status)
	assert.NotEmpty(t, health.Version)
	assert.Equal(t, map[string]int{"day": 10, "hour": 20}, health.Tables)
}

func TestMetricsRecordsRequests(t *testing.T) {
	h := newTestServer(t, &fakeRunner{}).SetupRoutes()

	get(t, h, "/")
	get(t, h, "/?tab=bogus")

	rec := get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `dashboard_http_requests_total{code="200",route="/"} 1`)
	assert.Contains(t, body, `dashboard_http_requests_total{code="400",route="/"} 1`)
}

func TestMetricsUnmatchedRoutesShareOneSeries(t *testing.T) {
	srv := newTestServer(t, &fakeRunner{})
	h := srv.SetupRoutes()

	for i := 0; i < 20; i++ {
		rec := get(t, h, fmt.Sprintf("/scan-%d", i))
		require.Equal(t, http.StatusNotFound, rec.Code)
	}

	body := get(t, h, "/metrics").Body.String()
	assert.Contains(t, body, `dashboard_http_requests_total{code="404",route="unmatched"} 20`)
	assert.NotContains(t, body, "/scan-")
}

func TestPageWithDispatcher(t *testing.T) {
	day, err := dataset.ReadTable("day", dataset.Daily, strings.NewReader(testutil.DayCSV(testutil.FirstDay, 90)))
	require.NoError(t, err)
	hour, err := dataset.ReadTable("hour", dataset.Hourly, strings.NewReader(testutil.HourCSV(testutil.FirstDay, 90, []int{0, 8, 17})))
	require.NoError(t, err)
	data := &dataset.Data{Day: day, Hour: hour}

	recorder := metrics.NewPrometheusRecorder()
	d, err := dashboard.NewDispatcher(data, render.NewRenderer(false), config.DefaultHighlights(), dashboard.WithRecorder(recorder))
	require.NoError(t, err)
	srv, err := NewServer(&config.Config{}, data, d, recorder)
	require.NoError(t, err)

	rec := get(t, srv.SetupRoutes(), "/?tab=descriptive")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Equal(t, 9, strings.Count(body, `src="data:image/png;base64,`))
	assert.NotContains(t, body, "Chart unavailable")
	assert.Contains(t, body, "<h2>Visualisasi &amp; Analisis Deskriptif</h2>")
}
