package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"bikeshare/internal/config"
	"bikeshare/internal/dashboard"
	"bikeshare/internal/logger"
)

// HandlePage renders the selected tab. Every request derives and renders
// all of the tab's charts again.
func (s *Server) HandlePage(w http.ResponseWriter, r *http.Request) {
	selection := r.URL.Query().Get("tab")

	tab := dashboard.DefaultTab
	if selection != "" {
		parsed, err := dashboard.ParseTab(selection)
		if err != nil {
			s.log.Warn("unknown tab requested", logger.Fields{"tab": selection})
			s.writeErrorPage(w, http.StatusBadRequest, "Unknown tab "+selection+". Choose one of the tabs in the sidebar.")
			return
		}
		tab = parsed
	}

	view, err := s.Runner.Run(r.Context(), tab)
	if err != nil {
		if errors.Is(err, dashboard.ErrUnknownTab) {
			s.writeErrorPage(w, http.StatusBadRequest, err.Error())
			return
		}
		if r.Context().Err() != nil {
			s.log.Debug("request cancelled", logger.Fields{"tab": string(tab)})
			return
		}
		s.log.Error("failed to run tab", err, logger.Fields{"tab": string(tab)})
		http.Error(w, "Failed to render dashboard", http.StatusInternalServerError)
		return
	}

	page, err := s.buildPage(view)
	if err != nil {
		s.log.Error("failed to build page", err, logger.Fields{"tab": string(tab)})
		http.Error(w, "Failed to render dashboard", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := s.writePage(&buf, page); err != nil {
		s.log.Error("failed to write page", err, logger.Fields{"tab": string(tab)})
		http.Error(w, "Failed to render dashboard", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) writeErrorPage(w http.ResponseWriter, status int, message string) {
	page := &PageData{
		Title:   PageTitle,
		Version: config.GetVersion(),
		Tabs:    tabOptions(""),
		Error:   message,
	}

	var buf bytes.Buffer
	if err := s.writePage(&buf, page); err != nil {
		s.log.Error("failed to write error page", err)
		http.Error(w, message, status)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// HandleHealth provides health check endpoint
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	tables := map[string]int{}
	if s.Data != nil {
		if s.Data.Day != nil {
			tables[s.Data.Day.Name()] = s.Data.Day.Len()
		}
		if s.Data.Hour != nil {
			tables[s.Data.Hour.Name()] = s.Data.Hour.Len()
		}
	}

	health := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   config.GetVersion(),
		"tables":    tables,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(health)
}
