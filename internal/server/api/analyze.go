package api

import (
	"context"
	"errors"
	"io"
	"log"
	"mime"
	"net/http"

	"github.com/ayusman/hoopform/internal/app"
	"github.com/ayusman/hoopform/internal/capture"
)

// multipartOverhead is the allowance for multipart headers and boundaries
// on top of the image size limit.
const multipartOverhead = 64 << 10

// Analyzer grades an uploaded image.
type Analyzer interface {
	Analyze(ctx context.Context, data []byte, name string) (*app.Result, error)
}

// AnalyzeHandler handles POST /api/analyze.
type AnalyzeHandler struct {
	analyzer Analyzer
	maxBytes int64
}

// NewAnalyzeHandler creates a handler that accepts uploads up to maxBytes.
// Zero disables the limit.
func NewAnalyzeHandler(a Analyzer, maxBytes int64) *AnalyzeHandler {
	return &AnalyzeHandler{analyzer: a, maxBytes: maxBytes}
}

// ServeHTTP accepts either a multipart form with an "image" field or the
// raw image as the request body.
func (h *AnalyzeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data, name, err := h.readUpload(w, r)
	if err != nil {
		h.writeUploadError(w, err)
		return
	}

	result, err := h.analyzer.Analyze(r.Context(), data, name)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		h.writeUploadError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *AnalyzeHandler) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if mediaType != "multipart/form-data" {
		name := r.URL.Query().Get("name")
		if name == "" {
			name = "upload"
		}
		data, err := h.read(r.Body)
		return data, name, err
	}

	if h.maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+multipartOverhead)
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, "", capture.ErrUploadTooLarge
		}
		return nil, "", capture.ErrInvalidImage
	}
	defer file.Close()

	data, err := h.read(file)
	return data, header.Filename, err
}

func (h *AnalyzeHandler) read(r io.Reader) ([]byte, error) {
	if h.maxBytes <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, h.maxBytes+1))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, capture.ErrUploadTooLarge
		}
		return nil, err
	}
	if int64(len(data)) > h.maxBytes {
		return nil, capture.ErrUploadTooLarge
	}
	return data, nil
}

func (h *AnalyzeHandler) writeUploadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, capture.ErrInvalidImage):
		writeError(w, http.StatusBadRequest, MsgInvalidImage)
	case errors.Is(err, capture.ErrUploadTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, MsgUploadTooLarge)
	default:
		log.Printf("analyze error: %v", err)
		writeError(w, http.StatusInternalServerError, MsgAnalyzeFailed)
	}
}
