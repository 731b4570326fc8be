package dashboard

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"bikeshare/internal/logger"
)

// ExportResult lists what an export wrote and which charts were skipped
type ExportResult struct {
	Tab     Tab
	Files   []string
	Notices map[string]string
}

// Export runs tab and writes each rendered chart as a PNG under dir, named
// by plan position, chart and table. Interactive documents are written next
// to their PNG. Failed charts are reported in the result, not as an error.
func (d *Dispatcher) Export(ctx context.Context, tab Tab, dir string) (*ExportResult, error) {
	view, err := d.Run(ctx, tab)
	if err != nil {
		return nil, err
	}

	tabDir := filepath.Join(dir, string(tab))
	if err := os.MkdirAll(tabDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	result := &ExportResult{Tab: tab, Notices: make(map[string]string)}
	n := 0
	for _, section := range view.Sections {
		for _, cv := range section.Charts {
			n++
			base := fmt.Sprintf("%02d_%s_%s", n, cv.Name, cv.Table)
			if cv.Failed() {
				result.Notices[base] = cv.Notice
				continue
			}

			pngPath := filepath.Join(tabDir, base+".png")
			if err := os.WriteFile(pngPath, cv.Chart.PNG, 0644); err != nil {
				return nil, fmt.Errorf("failed to write %s: %w", pngPath, err)
			}
			result.Files = append(result.Files, pngPath)

			if cv.Chart.Interactive != "" {
				htmlPath := filepath.Join(tabDir, base+".html")
				if err := os.WriteFile(htmlPath, []byte(cv.Chart.Interactive), 0644); err != nil {
					return nil, fmt.Errorf("failed to write %s: %w", htmlPath, err)
				}
				result.Files = append(result.Files, htmlPath)
			}
		}
	}

	d.log.Info("tab exported", logger.Fields{
		"tab":     string(tab),
		"dir":     tabDir,
		"files":   len(result.Files),
		"notices": len(result.Notices),
	})
	return result, nil
}
