package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultHighlights(t *testing.T) {
	h := DefaultHighlights()

	if len(h.DateBands) != 8 {
		t.Fatalf("Expected 8 date bands (two years, four regimes), got %d", len(h.DateBands))
	}
	for i := 1; i < len(h.DateBands); i++ {
		if !h.DateBands[i].Start.After(h.DateBands[i-1].End.Time) {
			t.Errorf("Date band %d overlaps band %d", i, i-1)
		}
	}
	if first := h.DateBands[0].Start; !first.Equal(time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Expected first band to start 2011-01-01, got %s", first.Format(time.DateOnly))
	}

	wantMonths := [][2]int{{1, 4}, {5, 9}, {10, 12}}
	for i, want := range wantMonths {
		if h.MonthBands[i].From != want[0] || h.MonthBands[i].To != want[1] {
			t.Errorf("Month band %d: expected %d-%d, got %d-%d", i, want[0], want[1], h.MonthBands[i].From, h.MonthBands[i].To)
		}
	}

	if len(h.HourBands) != 3 {
		t.Fatalf("Expected 3 hour bands, got %d", len(h.HourBands))
	}
	if h.HourBands[2].Meaning != MeaningQuiet || h.HourBands[2].From != 0 || h.HourBands[2].To != 5 {
		t.Errorf("Expected quiet band 0-5, got %+v", h.HourBands[2])
	}
	if h.SeasonEmphasis != 1 {
		t.Errorf("Expected season emphasis 1, got %d", h.SeasonEmphasis)
	}
	if err := h.Validate(); err != nil {
		t.Errorf("Default highlights should validate: %v", err)
	}
}

func TestLoadHighlights(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name        string
		content     string
		expectError bool
		validate    func(t *testing.T, h Highlights)
	}{
		{
			name: "override hour bands only",
			content: `hour_bands:
  - from: 7
    to: 9
    color: "#00ff0040"
    meaning: busy
`,
			validate: func(t *testing.T, h Highlights) {
				if len(h.HourBands) != 1 || h.HourBands[0].From != 7 {
					t.Errorf("Expected single 7-9 hour band, got %+v", h.HourBands)
				}
				if len(h.DateBands) != 8 {
					t.Errorf("Expected date bands to keep defaults, got %d", len(h.DateBands))
				}
				if h.SeasonEmphasis != 1 {
					t.Errorf("Expected season emphasis default 1, got %d", h.SeasonEmphasis)
				}
			},
		},
		{
			name: "date bands and disabled emphasis",
			content: `date_bands:
  - start: 2012-03-01
    end: 2012-03-31
    color: "#ff000040"
    meaning: decline
season_emphasis: 0
`,
			validate: func(t *testing.T, h Highlights) {
				if len(h.DateBands) != 1 {
					t.Fatalf("Expected 1 date band, got %d", len(h.DateBands))
				}
				if h.DateBands[0].End.Format(time.DateOnly) != "2012-03-31" {
					t.Errorf("Expected end 2012-03-31, got %s", h.DateBands[0].End.Format(time.DateOnly))
				}
				if h.SeasonEmphasis != 0 {
					t.Errorf("Expected season emphasis disabled, got %d", h.SeasonEmphasis)
				}
			},
		},
		{
			name: "inverted month range",
			content: `month_bands:
  - from: 9
    to: 3
`,
			expectError: true,
		},
		{
			name:        "bad date",
			content:     "date_bands:\n  - start: March\n    end: 2012-03-31\n",
			expectError: true,
		},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "highlights"+string(rune('a'+i))+".yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			h, err := LoadHighlights(path)
			if tt.expectError {
				if err == nil {
					t.Error("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			tt.validate(t, h)
		})
	}
}

func TestLoadHighlightsMissingFile(t *testing.T) {
	if _, err := LoadHighlights(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing highlights file")
	}
}
