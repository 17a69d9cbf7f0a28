// Package config loads generator settings from a JSON file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds every tunable of the generator and the upload server.
type Config struct {
	BeamwidthDeg float64 `json:"beamwidth_deg"`
	LineWidth    float64 `json:"line_width"`
	LabelScale   float64 `json:"label_scale"`
	DocumentName string  `json:"document_name"`

	// Sheet names; empty selects the first sheet of each workbook.
	Sheet4G string `json:"sheet_4g,omitempty"`
	Sheet5G string `json:"sheet_5g,omitempty"`

	UploadDir    string `json:"upload_dir"`
	OutputDir    string `json:"output_dir"`
	ListenAddr   string `json:"listen_addr"`
	DatabasePath string `json:"database_path,omitempty"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		BeamwidthDeg: 30,
		LineWidth:    2,
		LabelScale:   0.8,
		DocumentName: "Sectors",
		UploadDir:    "uploads",
		OutputDir:    "generated",
		ListenAddr:   ":8080",
	}
}

// Load reads path over the defaults. Keys absent from the file keep their
// default value.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings that cannot produce a usable map.
func (c Config) Validate() error {
	switch {
	case c.BeamwidthDeg <= 0 || c.BeamwidthDeg > 360:
		return fmt.Errorf("beamwidth_deg must be in (0, 360], got %v", c.BeamwidthDeg)
	case c.LineWidth < 0:
		return fmt.Errorf("line_width must not be negative, got %v", c.LineWidth)
	case c.LabelScale < 0:
		return fmt.Errorf("label_scale must not be negative, got %v", c.LabelScale)
	}
	return nil
}
