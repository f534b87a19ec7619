// =============================================================================
// NFSe Importer - Configuration Module
// =============================================================================
//
// Loads the application settings from a YAML file. The core engine
// (loader/parser/parcelas/batch) reads no configuration at all; everything
// here belongs to the CLI and export surface.
//
// A missing config file is not an error: defaults apply, so the tool runs
// with zero setup.
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings holds the application configuration.
type Settings struct {
	// ExportDir is where export files and error logs are written.
	// Default: "./export"
	ExportDir string `yaml:"export_dir"`

	// LogLevel controls logging verbosity: debug, info, warn or error.
	// Default: "info". The --verbose flag overrides it to debug.
	LogLevel string `yaml:"log_level"`

	// LogFormat selects the logrus formatter: "text" or "json".
	// Default: "text"
	LogFormat string `yaml:"log_format"`

	// MaxDisplayedErrors caps how many per-document failures the CLI
	// prints. The error log file always receives the full list.
	// Default: 50
	MaxDisplayedErrors int `yaml:"max_displayed_errors"`

	// OutputNameFormat names generated export files. Placeholders:
	// {uuid}, {timestamp}, {kind}. The extension is appended per export.
	// Default: "nfse_{kind}_{timestamp}"
	OutputNameFormat string `yaml:"output_name_format"`
}

// Defaults returns the settings used when no config file is present.
func Defaults() *Settings {
	return &Settings{
		ExportDir:          "./export",
		LogLevel:           "info",
		LogFormat:          "text",
		MaxDisplayedErrors: 50,
		OutputNameFormat:   "nfse_{kind}_{timestamp}",
	}
}

// Load reads the settings from path. A nonexistent file yields Defaults();
// any other read or parse failure is an error.
func Load(path string) (*Settings, error) {
	s := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return s, nil
}

func (s *Settings) validate() error {
	switch s.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q", s.LogLevel)
	}
	switch s.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log_format %q", s.LogFormat)
	}
	if s.MaxDisplayedErrors < 0 {
		return fmt.Errorf("max_displayed_errors must be >= 0")
	}
	if s.ExportDir == "" {
		return fmt.Errorf("export_dir must not be empty")
	}
	return nil
}
