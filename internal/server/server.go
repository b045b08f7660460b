// Package server provides the HTTP server for the hoopform posture service.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/hoopform/internal/app"
	"github.com/ayusman/hoopform/internal/server/api"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	App       *app.App
}

// Server represents the HTTP server for the hoopform application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
	feed   *StatsFeed
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	// Analysis and statistics need an App
	if s.config.App != nil {
		maxBytes := s.config.App.Loader().Config().MaxUploadBytes
		s.mux.Handle("/api/analyze", api.NewAnalyzeHandler(s.config.App, maxBytes))
		s.mux.Handle("/api/stats", api.NewStatsHandler(s.config.App.Stats()))

		s.feed = NewStatsFeed(s.config.App.Stats())
		s.mux.Handle("/api/stats/ws", s.feed)
	}

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
