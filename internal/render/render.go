// Package render turns chart specs into PNG images and, for trend lines,
// optional interactive go-echarts documents.
package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/color"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"bikeshare/internal/charts"
	"bikeshare/internal/logger"
)

// DPI converts figure inches to go-chart pixels
const DPI = 72

// Chart is one rendered figure
type Chart struct {
	Title string
	Kind  charts.Kind
	PNG   []byte
	// Interactive is a standalone HTML document, empty unless interactive
	// trends are enabled and the chart is a line
	Interactive string
}

// DataURI embeds the PNG for an <img src>
func (c *Chart) DataURI() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(c.PNG)
}

// Renderer draws chart specs
type Renderer struct {
	interactive bool
	log         *logger.Logger
}

// NewRenderer creates a renderer. With interactive set, line charts also get
// a go-echarts document next to their PNG.
func NewRenderer(interactive bool) *Renderer {
	return &Renderer{
		interactive: interactive,
		log:         logger.Component("render"),
	}
}

// Render draws spec
func (r *Renderer) Render(spec *charts.Spec) (*Chart, error) {
	if spec == nil {
		return nil, fmt.Errorf("nil chart spec")
	}

	var (
		buf bytes.Buffer
		err error
	)
	switch spec.Kind {
	case charts.KindLine:
		err = writeLine(&buf, spec)
	case charts.KindBox:
		err = writeBox(&buf, spec)
	case charts.KindHeatmap:
		err = writeHeatmap(&buf, spec)
	case charts.KindDecomposition:
		err = writeDecomposition(&buf, spec)
	default:
		err = fmt.Errorf("unsupported chart kind %v", spec.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to render %q: %w", spec.Title, err)
	}

	out := &Chart{Title: spec.Title, Kind: spec.Kind, PNG: buf.Bytes()}

	if r.interactive && spec.Kind == charts.KindLine {
		doc, err := Interactive(spec)
		if err != nil {
			// the PNG is still usable
			r.log.Warn("interactive chart skipped", logger.Fields{"title": spec.Title, "error": err.Error()})
		} else {
			out.Interactive = doc
		}
	}

	r.log.Debug("chart rendered", logger.Fields{
		"title": spec.Title,
		"kind":  spec.Kind.String(),
		"bytes": len(out.PNG),
	})
	return out, nil
}

func toDrawing(c color.NRGBA) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

func pixels(inches float64) int {
	return int(inches * DPI)
}
