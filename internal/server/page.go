package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"bikeshare/internal/charts"
	"bikeshare/internal/config"
	"bikeshare/internal/dashboard"
)

// PageTitle heads every dashboard page
const PageTitle = "Bike Sharing Data Analysis Dashboard"

//go:embed templates/page.html
var templateFS embed.FS

// PageData represents the data structure for the page template
type PageData struct {
	Title    string
	Version  string
	Tabs     []TabOption
	Header   string
	Sections []SectionData
	Error    string
}

// TabOption is one sidebar radio entry
type TabOption struct {
	Value  string
	Label  string
	Active bool
}

// SectionData is a subheading and its charts
type SectionData struct {
	Heading string
	Charts  []ChartData
}

// ChartData is one chart slot on the page
type ChartData struct {
	Title       string
	Table       string
	Image       template.URL
	Interactive string
	Notice      string
	Bands       template.HTML
}

func parsePageTemplate() (*template.Template, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/page.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}
	return tmpl, nil
}

func tabOptions(active dashboard.Tab) []TabOption {
	var out []TabOption
	for _, t := range dashboard.Tabs() {
		out = append(out, TabOption{Value: string(t), Label: t.Label(), Active: t == active})
	}
	return out
}

// buildPage converts a tab view into template data
func (s *Server) buildPage(view *dashboard.View) (*PageData, error) {
	page := &PageData{
		Title:   PageTitle,
		Version: config.GetVersion(),
		Tabs:    tabOptions(view.Tab),
		Header:  view.Header,
	}

	for _, section := range view.Sections {
		sd := SectionData{Heading: section.Heading}
		for _, cv := range section.Charts {
			cd := ChartData{Title: cv.Title, Table: cv.Table}
			if cv.Failed() {
				cd.Notice = cv.Notice
				sd.Charts = append(sd.Charts, cd)
				continue
			}

			// base64 data URIs only, so marking the URL safe is sound
			cd.Image = template.URL(cv.Chart.DataURI())
			cd.Interactive = cv.Chart.Interactive

			notes, err := s.bandNotes(cv.Bands)
			if err != nil {
				return nil, err
			}
			cd.Bands = notes
			sd.Charts = append(sd.Charts, cd)
		}
		page.Sections = append(page.Sections, sd)
	}
	return page, nil
}

// bandNotes lists the highlighted ranges of a chart as a markdown bullet list
func (s *Server) bandNotes(bands []charts.Band) (template.HTML, error) {
	if len(bands) == 0 {
		return "", nil
	}

	var md strings.Builder
	for _, b := range bands {
		fmt.Fprintf(&md, "- **%s**: %s\n", b.Range(), b.Meaning)
	}

	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(md.String()), &buf); err != nil {
		return "", fmt.Errorf("failed to convert band notes: %w", err)
	}
	return template.HTML(buf.String()), nil
}

func (s *Server) writePage(w io.Writer, page *PageData) error {
	if err := s.page.Execute(w, page); err != nil {
		return fmt.Errorf("failed to execute page template: %w", err)
	}
	return nil
}
