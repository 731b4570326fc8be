package dashboard

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTab is returned for a selection that names no tab
var ErrUnknownTab = errors.New("unknown tab")

// Tab is one of the two chart sets on the page
type Tab string

const (
	TabDescriptive Tab = "descriptive"
	TabAdvanced    Tab = "advanced"
)

// DefaultTab is shown when no selection is made
const DefaultTab = TabDescriptive

// Tabs lists the tabs in sidebar order
func Tabs() []Tab {
	return []Tab{TabDescriptive, TabAdvanced}
}

// Label is the text shown in the sidebar and as the page header
func (t Tab) Label() string {
	switch t {
	case TabDescriptive:
		return "Visualisasi & Analisis Deskriptif"
	case TabAdvanced:
		return "Analisis Lanjutan"
	default:
		return string(t)
	}
}

// ParseTab accepts a tab slug or its label
func ParseTab(s string) (Tab, error) {
	s = strings.TrimSpace(s)
	for _, t := range Tabs() {
		if strings.EqualFold(s, string(t)) || s == t.Label() {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTab, s)
}
