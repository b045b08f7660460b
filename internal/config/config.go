// Package config loads and saves the hoopform configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ayusman/hoopform/internal/capture"
	"github.com/ayusman/hoopform/internal/detector"
	"github.com/ayusman/hoopform/internal/posture"
	"github.com/ayusman/hoopform/internal/render"
	"github.com/ayusman/hoopform/internal/stats"
)

// Config holds the application configuration
type Config struct {
	Server   ServerConfig       `json:"server"`
	Detector detector.Config    `json:"detector"`
	Analyzer posture.Thresholds `json:"analyzer"`
	Stats    StatsConfig        `json:"stats"`
	Render   render.Style       `json:"render"`
	Capture  capture.Config     `json:"capture"`
}

// ServerConfig holds configuration for the HTTP server
type ServerConfig struct {
	Addr      string `json:"addr"`
	StaticDir string `json:"static_dir"`
	// DetectTimeoutSec bounds a single detector call. Zero means no limit.
	DetectTimeoutSec int `json:"detect_timeout_sec"`
}

// StatsConfig holds configuration for the shot statistics
type StatsConfig struct {
	SuccessThreshold int `json:"success_threshold"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:             "127.0.0.1:8080",
			StaticDir:        "web",
			DetectTimeoutSec: 30,
		},
		Detector: detector.DefaultConfig(),
		Analyzer: posture.DefaultThresholds(),
		Stats: StatsConfig{
			SuccessThreshold: stats.DefaultSuccessThreshold,
		},
		Render:  render.DefaultStyle(),
		Capture: capture.DefaultConfig(),
	}
}

// LoadFromFile loads configuration from a JSON file. Keys missing from the
// file keep their default values.
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Load reads filename when it exists and falls back to Default otherwise.
// The result is validated either way.
func Load(filename string) (*Config, error) {
	config := Default()
	if filename != "" {
		if _, err := os.Stat(filename); err == nil {
			if config, err = LoadFromFile(filename); err != nil {
				return nil, err
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat config file: %w", err)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr cannot be empty")
	}

	if c.Server.DetectTimeoutSec < 0 {
		return fmt.Errorf("server.detect_timeout_sec must not be negative")
	}

	if c.Detector.ModelComplexity < 0 || c.Detector.ModelComplexity > 2 {
		return fmt.Errorf("detector.model_complexity must be 0, 1 or 2")
	}

	if c.Detector.MinConfidence < 0 || c.Detector.MinConfidence > 1 {
		return fmt.Errorf("detector.min_detection_confidence must be between 0 and 1")
	}

	if c.Detector.MinTrackingConf < 0 || c.Detector.MinTrackingConf > 1 {
		return fmt.Errorf("detector.min_tracking_confidence must be between 0 and 1")
	}

	if err := c.Analyzer.Validate(); err != nil {
		return fmt.Errorf("analyzer: %w", err)
	}

	if c.Stats.SuccessThreshold < 0 || c.Stats.SuccessThreshold > 100 {
		return fmt.Errorf("stats.success_threshold must be between 0 and 100")
	}

	if err := c.Render.Validate(); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if c.Capture.MaxUploadBytes < 0 {
		return fmt.Errorf("capture.max_upload_bytes must not be negative")
	}

	if c.Capture.MaxDimension < 0 {
		return fmt.Errorf("capture.max_dimension must not be negative")
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.json"
	}
	return filepath.Join(home, ".hoopform", "config.json")
}
