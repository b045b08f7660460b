// Package api provides HTTP API handlers for the hoopform posture service.
package api

import (
	"encoding/json"
	"net/http"
)

// Messages shown to the user for rejected uploads.
const (
	MsgInvalidImage   = "Please select a valid image file."
	MsgUploadTooLarge = "The image is too large."
	MsgAnalyzeFailed  = "Failed to analyze image"
)

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
