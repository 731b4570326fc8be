package server

import (
	"context"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"bikeshare/internal/config"
	"bikeshare/internal/dashboard"
	"bikeshare/internal/dataset"
	"bikeshare/internal/logger"
	"bikeshare/internal/metrics"
)

// TabRunner produces the view of one tab
type TabRunner interface {
	Run(ctx context.Context, tab dashboard.Tab) (*dashboard.View, error)
}

// Server serves the dashboard page, health and metrics
type Server struct {
	Config   *config.Config
	Data     *dataset.Data
	Runner   TabRunner
	Metrics  *metrics.PrometheusRecorder
	page     *template.Template
	markdown goldmark.Markdown
	log      *logger.Logger
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, data *dataset.Data, runner TabRunner, recorder *metrics.PrometheusRecorder) (*Server, error) {
	if runner == nil {
		return nil, fmt.Errorf("tab runner is required")
	}
	if recorder == nil {
		recorder = metrics.NewPrometheusRecorder()
	}

	page, err := parsePageTemplate()
	if err != nil {
		return nil, err
	}

	return &Server{
		Config:  cfg,
		Data:    data,
		Runner:  runner,
		Metrics: recorder,
		page:    page,
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
		log: logger.Component("server"),
	}, nil
}

// SetupRoutes configures HTTP routes for the server
func (s *Server) SetupRoutes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.instrument)
	r.Use(middleware.Recoverer)

	r.Get("/", s.HandlePage)
	r.Get("/healthz", s.HandleHealth)
	r.Method(http.MethodGet, "/metrics", s.Metrics.Handler())

	return r
}
