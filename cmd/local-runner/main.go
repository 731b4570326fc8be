package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"bikeshare/internal/config"
	"bikeshare/internal/dashboard"
	"bikeshare/internal/dataset"
	"bikeshare/internal/logger"
	"bikeshare/internal/render"
	"bikeshare/internal/storage"
)

// writeSummary stores the export summary as indented JSON in dir
func writeSummary(dir string, summary map[string]interface{}) error {
	summaryJSON, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "summary.json"), summaryJSON, 0644); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

// local-runner renders every tab once and writes the charts to disk, using
// the same configuration as the dashboard server.
func main() {
	outDir := flag.String("out", "reports", "directory the timestamped export is written under")
	tabFlag := flag.String("tab", "", "export a single tab (descriptive or advanced); all tabs when empty")
	flag.Parse()

	ctx := context.Background()
	startTime := time.Now()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}
	logger.Configure(cfg.LogLevel, cfg.LogFormat)

	tabs := dashboard.Tabs()
	if *tabFlag != "" {
		tab, err := dashboard.ParseTab(*tabFlag)
		if err != nil {
			logger.Fatal("Invalid tab", err)
		}
		tabs = []dashboard.Tab{tab}
	}

	src, err := storage.NewSource(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to open data source", err)
	}
	defer src.Close()

	data, err := dataset.Load(ctx, src, cfg.DayCSV, cfg.HourCSV)
	if err != nil {
		logger.Fatal("Failed to load dataset", err)
	}

	highlights, err := cfg.Highlights()
	if err != nil {
		logger.Fatal("Failed to load highlights", err)
	}

	dispatcher, err := dashboard.NewDispatcher(data, render.NewRenderer(cfg.InteractiveTrends), highlights)
	if err != nil {
		logger.Fatal("Failed to create dispatcher", err)
	}

	// Create timestamped directory for this export
	exportDir := filepath.Join(*outDir, time.Now().Format("2006-01-02_15-04-05"))

	results := make([]*dashboard.ExportResult, 0, len(tabs))
	for _, tab := range tabs {
		result, err := dispatcher.Export(ctx, tab, exportDir)
		if err != nil {
			logger.Fatal("Export failed", err, logger.Fields{"tab": string(tab)})
		}
		results = append(results, result)
	}

	summary := map[string]interface{}{
		"status":      "success",
		"export_dir":  exportDir,
		"duration_ms": time.Since(startTime).Milliseconds(),
		"tabs":        results,
	}
	if err := writeSummary(exportDir, summary); err != nil {
		logger.Error("Failed to save summary", err)
	}

	logger.Info("Export completed", logger.Fields{
		"dir":         exportDir,
		"duration_ms": time.Since(startTime).Milliseconds(),
	})
}
