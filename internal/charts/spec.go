// Package charts derives chart specifications from the rental tables.
// Builders are pure: the same table, title and options always produce an
// identical Spec. Turning a Spec into pixels is the render package's job.
package charts

import (
	"image/color"
	"strconv"
	"time"

	"bikeshare/internal/dataset"
	"bikeshare/internal/stats"
)

// Kind identifies the geometry a Spec carries
type Kind int

const (
	KindLine Kind = iota
	KindBox
	KindHeatmap
	KindDecomposition
)

func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindBox:
		return "box"
	case KindHeatmap:
		return "heatmap"
	case KindDecomposition:
		return "decomposition"
	default:
		return "unknown"
	}
}

// Axis labels and shared text
const (
	LabelDate   = "Tanggal"
	LabelMonth  = "Bulan"
	LabelHour   = "Jam"
	LabelSeason = "Musim"
	LabelYear   = "Tahun"
	LabelCount  = "Jumlah Penyewaan Sepeda"
)

// DecompositionPeriod is the seasonal period, in days
const DecompositionPeriod = 30

var (
	// ErrInsufficientHistory means fewer than two decomposition periods of dates
	ErrInsufficientHistory = stats.ErrInsufficientHistory
	// ErrDegenerateCorrelation means fewer than two numeric columns
	ErrDegenerateCorrelation = stats.ErrDegenerateCorrelation
)

// Builder is the common signature of every chart builder
type Builder func(t *dataset.Table, title string, opts ...Option) (*Spec, error)

// Size is a figure size in inches
type Size struct {
	Width  float64
	Height float64
}

var (
	sizeDateLine      = Size{Width: 15, Height: 6}
	sizeMonthLine     = Size{Width: 12, Height: 6}
	sizeBox           = Size{Width: 10, Height: 6}
	sizeHeatmap       = Size{Width: 12, Height: 10}
	sizeDecomposition = Size{Width: 25, Height: 10}
)

// Spec is a renderable chart description. Exactly one of the geometry
// fields is set, matching Kind.
type Spec struct {
	Kind   Kind
	Title  string
	XLabel string
	YLabel string
	Size   Size

	Line          *LineData
	Box           *BoxData
	Heatmap       *HeatmapData
	Decomposition *DecompositionData

	// Bands shade ranges of the x axis. For date axes From and To are
	// unused and Start and End are set instead.
	Bands []Band
}

// LineData is a single line. Dates is set for a time axis, X otherwise.
type LineData struct {
	Dates []time.Time
	X     []float64
	Y     []float64
	// XLabelRotation is the tick label rotation in degrees
	XLabelRotation float64
}

// TimeAxis reports whether the line is plotted against dates
func (l *LineData) TimeAxis() bool {
	return l.Dates != nil
}

// BoxSummary is the distribution summary drawn for one box
type BoxSummary struct {
	Median   float64
	Q1       float64
	Q3       float64
	Low      float64 // lower whisker
	High     float64 // upper whisker
	Outliers []float64
}

// BoxGroup is one category on a boxplot
type BoxGroup struct {
	Key     int
	Label   string
	Values  []float64
	Summary BoxSummary
	Color   color.NRGBA
}

// BoxData holds the boxes in ascending key order plus an optional overlaid
// emphasis box drawn at the position of the group with the same key.
type BoxData struct {
	Groups   []BoxGroup
	Emphasis *BoxGroup
}

// HeatmapData is a labelled square matrix
type HeatmapData struct {
	Labels []string
	Values [][]float64
	Min    float64
	Max    float64
}

// DecompositionData carries the four stacked panels
type DecompositionData struct {
	Dates    []time.Time
	Period   int
	Observed []float64
	Trend    []float64
	Seasonal []float64
	Residual []float64
}

// Band shades a range of the x axis with a meaning shown in the legend
type Band struct {
	From    float64
	To      float64
	Start   time.Time
	End     time.Time
	Color   color.NRGBA
	Meaning string
}

// Dated reports whether the band is a calendar range
func (b Band) Dated() bool {
	return !b.Start.IsZero()
}

// Range describes the covered span, e.g. "2011-01-01 to 2011-06-15" or "17-18"
func (b Band) Range() string {
	if b.Dated() {
		return b.Start.Format(time.DateOnly) + " to " + b.End.Format(time.DateOnly)
	}
	from, to := int(b.From+0.5), int(b.To-0.5)
	if from == to {
		return strconv.Itoa(from)
	}
	return strconv.Itoa(from) + "-" + strconv.Itoa(to)
}
