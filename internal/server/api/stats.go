package api

import (
	"net/http"

	"github.com/ayusman/hoopform/internal/stats"
)

// StatsHandler handles GET and DELETE on /api/stats.
type StatsHandler struct {
	tracker *stats.Tracker
}

// NewStatsHandler creates a new StatsHandler for the given tracker.
func NewStatsHandler(t *stats.Tracker) *StatsHandler {
	return &StatsHandler{tracker: t}
}

// ServeHTTP returns the current counters on GET and resets them on DELETE.
func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.tracker.Snapshot())
	case http.MethodDelete:
		writeJSON(w, http.StatusOK, h.tracker.Reset())
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
