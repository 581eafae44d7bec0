package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings are the optional report tweaks read from a YAML file.
type Settings struct {
	Title                string
	TopRequested         int
	TopCompRejected      int
	TopTPLRejectedModels int
	IncludeRecords       bool
	MaxRecordRows        int
}

type fileSettings struct {
	Title                string `yaml:"title"`
	TopRequested         *int   `yaml:"top_requested"`
	TopCompRejected      *int   `yaml:"top_comp_rejected"`
	TopTPLRejectedModels *int   `yaml:"top_tpl_rejected_models"`
	IncludeRecords       *bool  `yaml:"include_records"`
	MaxRecordRows        *int   `yaml:"max_record_rows"`
}

// DefaultSettings mirrors the limits the dashboard has always used.
func DefaultSettings() Settings {
	return Settings{
		TopRequested:         20,
		TopCompRejected:      20,
		TopTPLRejectedModels: 10,
		IncludeRecords:       true,
		MaxRecordRows:        200,
	}
}

// LoadSettings reads path and overlays it on DefaultSettings. A missing file
// or an empty path yields the defaults.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("settings: read %q: %w", path, err)
	}

	var fs fileSettings
	if err := yaml.Unmarshal(data, &fs); err != nil {
		return s, fmt.Errorf("settings: parse %q: %w", path, err)
	}

	if fs.Title != "" {
		s.Title = fs.Title
	}
	overlayPositive(&s.TopRequested, fs.TopRequested)
	overlayPositive(&s.TopCompRejected, fs.TopCompRejected)
	overlayPositive(&s.TopTPLRejectedModels, fs.TopTPLRejectedModels)
	overlayPositive(&s.MaxRecordRows, fs.MaxRecordRows)
	if fs.IncludeRecords != nil {
		s.IncludeRecords = *fs.IncludeRecords
	}
	return s, nil
}

func overlayPositive(dst *int, v *int) {
	if v != nil && *v > 0 {
		*dst = *v
	}
}
