package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bikeshare/internal/config"
	"bikeshare/internal/dashboard"
	"bikeshare/internal/dataset"
	"bikeshare/internal/logger"
	"bikeshare/internal/metrics"
	"bikeshare/internal/render"
	"bikeshare/internal/server"
	"bikeshare/internal/storage"
)

// newApp loads both tables and wires the dashboard behind its HTTP routes.
// Any failure here is fatal: the page is never served over partial data.
func newApp(ctx context.Context, cfg *config.Config) (http.Handler, func() error, error) {
	src, err := storage.NewSource(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	data, err := dataset.Load(ctx, src, cfg.DayCSV, cfg.HourCSV)
	if err != nil {
		src.Close()
		return nil, nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	highlights, err := cfg.Highlights()
	if err != nil {
		src.Close()
		return nil, nil, err
	}

	recorder := metrics.NewPrometheusRecorder()
	dispatcher, err := dashboard.NewDispatcher(data, render.NewRenderer(cfg.InteractiveTrends), highlights,
		dashboard.WithRecorder(recorder))
	if err != nil {
		src.Close()
		return nil, nil, err
	}

	srv, err := server.NewServer(cfg, data, dispatcher, recorder)
	if err != nil {
		src.Close()
		return nil, nil, err
	}
	return srv.SetupRoutes(), src.Close, nil
}

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}
	logger.Configure(cfg.LogLevel, cfg.LogFormat)

	logger.Info("Starting bike sharing dashboard", logger.Fields{
		"port":        cfg.Port,
		"environment": cfg.Environment,
		"data_source": string(cfg.DataSource),
		"version":     config.GetVersion(),
	})

	handler, closeSource, err := newApp(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to start dashboard", err)
	}
	defer closeSource()

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // a tab renders every chart per request
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server listening", logger.Fields{"addr": httpServer.Addr})
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", err)
	}

	logger.Info("Server stopped")
}
