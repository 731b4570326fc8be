package charts

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"bikeshare/internal/config"
)

type options struct {
	bands    []Band
	emphasis int
}

// Option tunes a builder
type Option func(*options)

// WithBands shades the given ranges. Builders ignore bands that do not fit
// their x axis: date bands apply to the date trend only, numeric bands to the
// month trend and the hour boxplot.
func WithBands(bands ...Band) Option {
	return func(o *options) {
		o.bands = append(o.bands, bands...)
	}
}

// WithEmphasis overlays a highlighted box for the given category code on a
// boxplot. Zero disables it.
func WithEmphasis(code int) Option {
	return func(o *options) {
		o.emphasis = code
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) dateBands() []Band {
	var out []Band
	for _, b := range o.bands {
		if b.Dated() {
			out = append(out, b)
		}
	}
	return out
}

func (o options) rangeBands() []Band {
	var out []Band
	for _, b := range o.bands {
		if !b.Dated() {
			out = append(out, b)
		}
	}
	return out
}

// DateBands converts configured calendar bands
func DateBands(in []config.DateBand) ([]Band, error) {
	out := make([]Band, 0, len(in))
	for i, b := range in {
		c, err := ParseColor(b.Color)
		if err != nil {
			return nil, fmt.Errorf("date band %d: %w", i, err)
		}
		out = append(out, Band{Start: b.Start.Time, End: b.End.Time, Color: c, Meaning: b.Meaning})
	}
	return out, nil
}

// RangeBands converts configured month or hour bands. Each band covers its
// categories in full, so [From, To] widens by half a step on both sides.
func RangeBands(in []config.RangeBand) ([]Band, error) {
	out := make([]Band, 0, len(in))
	for i, b := range in {
		c, err := ParseColor(b.Color)
		if err != nil {
			return nil, fmt.Errorf("range band %d: %w", i, err)
		}
		out = append(out, Band{From: float64(b.From) - 0.5, To: float64(b.To) + 0.5, Color: c, Meaning: b.Meaning})
	}
	return out, nil
}

// ParseColor reads #rrggbb or #rrggbbaa
func ParseColor(hex string) (color.NRGBA, error) {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 && len(s) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", hex)
	}
	if len(s) == 6 {
		s += "ff"
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
