package dataset

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Granularity distinguishes the daily and hourly exports
type Granularity int

const (
	Daily Granularity = iota
	Hourly
)

func (g Granularity) String() string {
	switch g {
	case Daily:
		return "daily"
	case Hourly:
		return "hourly"
	default:
		return "unknown"
	}
}

// Column names of the rental exports
const (
	ColInstant    = "instant"
	ColDate       = "dteday"
	ColSeason     = "season"
	ColYear       = "yr"
	ColMonth      = "mnth"
	ColHour       = "hr"
	ColHoliday    = "holiday"
	ColWeekday    = "weekday"
	ColWorkingDay = "workingday"
	ColWeather    = "weathersit"
	ColTemp       = "temp"
	ColATemp      = "atemp"
	ColHumidity   = "hum"
	ColWindspeed  = "windspeed"
	ColCasual     = "casual"
	ColRegistered = "registered"
	ColCount      = "cnt"
)

var (
	// ErrDateParse is returned when a dteday value is not a date
	ErrDateParse = errors.New("unparseable date")
	// ErrMissingColumn is returned when a required column is absent
	ErrMissingColumn = errors.New("missing column")
)

// columnTypes pins the known columns so a column of whole numbers is never
// detected as float in one export and int in the other.
var columnTypes = map[string]series.Type{
	ColInstant:    series.Int,
	ColDate:       series.String,
	ColSeason:     series.Int,
	ColYear:       series.Int,
	ColMonth:      series.Int,
	ColHour:       series.Int,
	ColHoliday:    series.Int,
	ColWeekday:    series.Int,
	ColWorkingDay: series.Int,
	ColWeather:    series.Int,
	ColTemp:       series.Float,
	ColATemp:      series.Float,
	ColHumidity:   series.Float,
	ColWindspeed:  series.Float,
	ColCasual:     series.Int,
	ColRegistered: series.Int,
	ColCount:      series.Int,
}

var dateLayouts = []string{
	time.DateOnly,
	"2006/01/02",
	time.RFC3339,
	time.DateTime,
}

// Table is one loaded export. It is never mutated after ReadTable returns.
type Table struct {
	name        string
	granularity Granularity
	frame       dataframe.DataFrame
	dates       []time.Time
}

// ReadTable parses a CSV export. The date column is coerced to calendar
// dates and the instant column is dropped when present.
func ReadTable(name string, granularity Granularity, r io.Reader) (*Table, error) {
	df := dataframe.ReadCSV(r, dataframe.WithTypes(columnTypes))
	if df.Err != nil {
		return nil, fmt.Errorf("failed to parse %s table: %w", name, df.Err)
	}

	names := df.Names()
	for _, required := range []string{ColDate, ColCount} {
		if !contains(names, required) {
			return nil, fmt.Errorf("%s table: %w %q", name, ErrMissingColumn, required)
		}
	}

	if contains(names, ColInstant) {
		df = df.Drop(ColInstant)
		if df.Err != nil {
			return nil, fmt.Errorf("failed to drop %s from %s table: %w", ColInstant, name, df.Err)
		}
	}

	raw := df.Col(ColDate).Records()
	dates := make([]time.Time, len(raw))
	for i, v := range raw {
		d, err := parseDate(v)
		if err != nil {
			return nil, fmt.Errorf("%s table row %d: %w", name, i+1, err)
		}
		dates[i] = d
	}

	return &Table{
		name:        name,
		granularity: granularity,
		frame:       df,
		dates:       dates,
	}, nil
}

func parseDate(v string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrDateParse, v)
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// Name is the table label used in chart titles and logs
func (t *Table) Name() string { return t.name }

// Granularity reports whether the table is daily or hourly
func (t *Table) Granularity() Granularity { return t.granularity }

// Len is the number of rows
func (t *Table) Len() int { return t.frame.Nrow() }

// Columns lists the column names in file order
func (t *Table) Columns() []string { return t.frame.Names() }

// HasColumn reports whether the table carries column name
func (t *Table) HasColumn(name string) bool { return contains(t.frame.Names(), name) }

// Dates returns a copy of the parsed date column
func (t *Table) Dates() []time.Time {
	out := make([]time.Time, len(t.dates))
	copy(out, t.dates)
	return out
}

// Float returns column name as float64 values. Missing cells are NaN.
func (t *Table) Float(name string) ([]float64, error) {
	if !t.HasColumn(name) {
		return nil, fmt.Errorf("%s table: %w %q", t.name, ErrMissingColumn, name)
	}
	return t.frame.Col(name).Float(), nil
}

// Int returns column name as integers
func (t *Table) Int(name string) ([]int, error) {
	if !t.HasColumn(name) {
		return nil, fmt.Errorf("%s table: %w %q", t.name, ErrMissingColumn, name)
	}
	values, err := t.frame.Col(name).Int()
	if err != nil {
		return nil, fmt.Errorf("%s table column %q: %w", t.name, name, err)
	}
	return values, nil
}

// NumericColumns lists the int and float columns in file order
func (t *Table) NumericColumns() []string {
	var numeric []string
	types := t.frame.Types()
	for i, name := range t.frame.Names() {
		if types[i] == series.Int || types[i] == series.Float {
			numeric = append(numeric, name)
		}
	}
	return numeric
}
