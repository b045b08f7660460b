// Package app ties upload intake, pose detection, posture grading, overlay
// rendering and shot statistics into a single analysis call.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"gocv.io/x/gocv"

	"github.com/ayusman/hoopform/internal/capture"
	"github.com/ayusman/hoopform/internal/detector"
	"github.com/ayusman/hoopform/internal/posture"
	"github.com/ayusman/hoopform/internal/render"
	"github.com/ayusman/hoopform/internal/stats"
)

// Config holds configuration options for the application.
type Config struct {
	Detector         detector.Config
	Thresholds       posture.Thresholds
	Style            render.Style
	Capture          capture.Config
	SuccessThreshold int
	// DetectTimeout bounds one detector call. Zero means no limit.
	DetectTimeout time.Duration
}

// DefaultConfig returns the configuration used when no file is loaded.
func DefaultConfig() Config {
	return Config{
		Detector:         detector.DefaultConfig(),
		Thresholds:       posture.DefaultThresholds(),
		Style:            render.DefaultStyle(),
		Capture:          capture.DefaultConfig(),
		SuccessThreshold: stats.DefaultSuccessThreshold,
		DetectTimeout:    30 * time.Second,
	}
}

// Result is the outcome of analyzing one image.
type Result struct {
	ID           string               `json:"id"`
	ImageName    string               `json:"image_name"`
	Report       *posture.Report      `json:"report"`
	Accuracy     int                  `json:"accuracy"`
	Measurements posture.Measurements `json:"measurements"`
	// Landmarks is null when no body was detected.
	Landmarks  []*detector.Landmark `json:"landmarks"`
	Stats      stats.Snapshot       `json:"stats"`
	Overlay    string               `json:"overlay,omitempty"`
	Width      int                  `json:"width"`
	Height     int                  `json:"height"`
	DurationMS int64                `json:"duration_ms"`
	CreatedAt  time.Time            `json:"created_at"`
}

// App is the main application that grades shooting posture photos.
type App struct {
	config   Config
	loader   *capture.Loader
	analyzer *posture.Analyzer
	tracker  *stats.Tracker
	detector detector.Detector
	mu       sync.RWMutex
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	a := &App{
		config:   config,
		loader:   capture.NewLoader(config.Capture),
		analyzer: posture.New(config.Thresholds),
		tracker:  stats.NewTracker(config.SuccessThreshold),
	}

	// Without MediaPipe every analysis reports a detection failure.
	if mp, err := detector.NewMediaPipeDetector(config.Detector); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe pose detection")
	} else {
		log.Printf("MediaPipe not available (%v), analyses will fail until it is installed", err)
		a.detector = detector.NewUnavailableDetector(err)
	}

	return a
}

// SetDetector sets the pose detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// Detector returns the pose detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// Stats returns the shot statistics tracker.
func (a *App) Stats() *stats.Tracker {
	return a.tracker
}

// Analyzer returns the posture analyzer.
func (a *App) Analyzer() *posture.Analyzer {
	return a.analyzer
}

// Loader returns the upload loader.
func (a *App) Loader() *capture.Loader {
	return a.loader
}

// Analyze grades one uploaded image. Input that is not an image fails with
// capture.ErrInvalidImage and is not counted. A detector failure is not an
// error: it yields posture.FailureReport and counts as a shot.
func (a *App) Analyze(ctx context.Context, data []byte, name string) (*Result, error) {
	start := time.Now()

	frame, err := a.loader.Decode(data)
	if err != nil {
		return nil, err
	}

	mat, err := frame.Mat()
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	set, err := a.detect(ctx, &mat)
	if err != nil && ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var report *posture.Report
	if err != nil {
		log.Printf("pose detection failed for %s: %v", name, err)
		report = posture.FailureReport()
		set = nil
	} else {
		report = a.analyzer.Analyze(set)
	}

	result := &Result{
		ID:           uuid.New().String(),
		ImageName:    name,
		Report:       report,
		Accuracy:     report.Accuracy(),
		Measurements: a.analyzer.Measure(set),
		Width:        frame.Width,
		Height:       frame.Height,
		CreatedAt:    start,
	}
	if set != nil {
		result.Landmarks = append([]*detector.Landmark(nil), set.Points[:]...)
	}

	if err := render.Overlay(&mat, set, a.config.Style); err != nil {
		log.Printf("overlay error: %v", err)
	}
	if jpeg, err := render.EncodeJPEG(mat, a.config.Style.JPEGQuality); err != nil {
		log.Printf("overlay encode error: %v", err)
	} else {
		result.Overlay = render.DataURL(jpeg)
	}

	elapsed := time.Since(start)
	result.DurationMS = elapsed.Milliseconds()
	result.Stats = a.tracker.Record(report, elapsed)

	return result, nil
}

// AnalyzeFile reads and grades an image from disk.
func (a *App) AnalyzeFile(ctx context.Context, path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := a.loader.Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a.Analyze(ctx, data, filepath.Base(path))
}

func (a *App) detect(ctx context.Context, mat *gocv.Mat) (*detector.LandmarkSet, error) {
	if a.config.DetectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.config.DetectTimeout)
		defer cancel()
	}

	set, err := a.Detector().Detect(ctx, mat)
	if errors.Is(err, context.DeadlineExceeded) {
		return nil, fmt.Errorf("pose detection timed out after %s: %w", a.config.DetectTimeout, err)
	}
	return set, err
}

// Close releases the detector.
func (a *App) Close() error {
	if d := a.Detector(); d != nil {
		if err := d.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
			return err
		}
	}
	return nil
}
