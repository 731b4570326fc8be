package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Band meanings used by the default highlight ranges
const (
	MeaningIncline = "incline"
	MeaningDecline = "decline"
	MeaningPeak    = "peak"
	MeaningBusy    = "busy"
	MeaningQuiet   = "quiet"
)

// Default band colors (RGBA hex, low alpha so the data stays readable)
const (
	ColorIncline = "#2ca02c40"
	ColorDecline = "#d6272840"
	ColorPeak    = "#ff7f0e33"
)

// DateBand shades a calendar range on the date trend chart.
type DateBand struct {
	Start   Date   `yaml:"start"`
	End     Date   `yaml:"end"`
	Color   string `yaml:"color"`
	Meaning string `yaml:"meaning"`
}

// RangeBand shades an inclusive range of a numeric category axis
// (months 1-12 or hours 0-23).
type RangeBand struct {
	From    int    `yaml:"from"`
	To      int    `yaml:"to"`
	Color   string `yaml:"color"`
	Meaning string `yaml:"meaning"`
}

// Highlights groups the static presentation annotations. None of these
// ranges are derived from the data.
type Highlights struct {
	DateBands  []DateBand  `yaml:"date_bands"`
	MonthBands []RangeBand `yaml:"month_bands"`
	HourBands  []RangeBand `yaml:"hour_bands"`
	// SeasonEmphasis is the season code drawn as an overlaid box; 0 disables it.
	SeasonEmphasis int `yaml:"season_emphasis"`
}

// Date is a calendar day that unmarshals from "2006-01-02".
type Date struct {
	time.Time
}

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	t, err := time.Parse(time.DateOnly, value.Value)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", value.Value, err)
	}
	d.Time = t
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Date) MarshalYAML() (interface{}, error) {
	return d.Format(time.DateOnly), nil
}

func day(year int, month time.Month, dd int) Date {
	return Date{time.Date(year, month, dd, 0, 0, 0, 0, time.UTC)}
}

// regimeBands splits one calendar year into the four rental regimes
// highlighted on the daily trend: spring rise, summer dip, late-summer rise
// and the autumn/winter fall.
func regimeBands(year int) []DateBand {
	return []DateBand{
		{Start: day(year, time.January, 1), End: day(year, time.June, 15), Color: ColorIncline, Meaning: MeaningIncline},
		{Start: day(year, time.June, 16), End: day(year, time.July, 31), Color: ColorDecline, Meaning: MeaningDecline},
		{Start: day(year, time.August, 1), End: day(year, time.September, 30), Color: ColorIncline, Meaning: MeaningIncline},
		{Start: day(year, time.October, 1), End: day(year, time.December, 31), Color: ColorDecline, Meaning: MeaningDecline},
	}
}

// DefaultHighlights returns the built-in annotation set.
func DefaultHighlights() Highlights {
	return Highlights{
		DateBands: append(regimeBands(2011), regimeBands(2012)...),
		MonthBands: []RangeBand{
			{From: 1, To: 4, Color: ColorIncline, Meaning: MeaningIncline},
			{From: 5, To: 9, Color: ColorPeak, Meaning: MeaningPeak},
			{From: 10, To: 12, Color: ColorDecline, Meaning: MeaningDecline},
		},
		HourBands: []RangeBand{
			{From: 8, To: 8, Color: ColorIncline, Meaning: MeaningBusy},
			{From: 17, To: 18, Color: ColorIncline, Meaning: MeaningBusy},
			{From: 0, To: 5, Color: ColorDecline, Meaning: MeaningQuiet},
		},
		SeasonEmphasis: 1,
	}
}

// NoHighlights is the plain, un-annotated chart set.
func NoHighlights() Highlights {
	return Highlights{}
}

// LoadHighlights reads band overrides from a YAML file. An empty path yields
// the defaults. Sections missing from the file keep their defaults.
func LoadHighlights(path string) (Highlights, error) {
	h := DefaultHighlights()
	if path == "" {
		return h, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return Highlights{}, fmt.Errorf("failed to read highlights file %s: %w", path, err)
	}

	var override Highlights
	override.SeasonEmphasis = -1
	if err := yaml.Unmarshal(content, &override); err != nil {
		return Highlights{}, fmt.Errorf("failed to parse highlights file %s: %w", path, err)
	}

	if override.DateBands != nil {
		h.DateBands = override.DateBands
	}
	if override.MonthBands != nil {
		h.MonthBands = override.MonthBands
	}
	if override.HourBands != nil {
		h.HourBands = override.HourBands
	}
	if override.SeasonEmphasis >= 0 {
		h.SeasonEmphasis = override.SeasonEmphasis
	}

	if err := h.Validate(); err != nil {
		return Highlights{}, fmt.Errorf("invalid highlights file %s: %w", path, err)
	}
	return h, nil
}

// Validate rejects inverted ranges
func (h Highlights) Validate() error {
	for i, b := range h.DateBands {
		if b.End.Before(b.Start.Time) {
			return fmt.Errorf("date band %d ends before it starts", i)
		}
	}
	for i, b := range h.MonthBands {
		if b.To < b.From || b.From < 1 || b.To > 12 {
			return fmt.Errorf("month band %d has invalid range %d-%d", i, b.From, b.To)
		}
	}
	for i, b := range h.HourBands {
		if b.To < b.From || b.From < 0 || b.To > 23 {
			return fmt.Errorf("hour band %d has invalid range %d-%d", i, b.From, b.To)
		}
	}
	return nil
}

// Highlights resolves the annotation set the configuration asks for
func (c *Config) Highlights() (Highlights, error) {
	if !c.HighlightBands {
		return NoHighlights(), nil
	}
	return LoadHighlights(c.HighlightsFile)
}
