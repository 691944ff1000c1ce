// Package settings provides configuration loading for the Alfred hooks.
// This package is separate from cli so the project inspectors can read the
// declared language without importing the command layer.
package settings

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/moai-adk/alfred-hooks/cmd/alfred/cli/paths"
)

// ProjectSettings represents the .moai/config.json configuration.
// Only the keys the hooks consume are decoded; everything else is ignored.
type ProjectSettings struct {
	// Language is the declared primary language of the project.
	// When non-empty it takes precedence over marker-file detection.
	Language string `json:"language,omitempty"`

	// LogLevel sets the logging verbosity (debug, info, warn, error).
	// The ALFRED_LOG_LEVEL environment variable takes precedence.
	LogLevel string `json:"log_level,omitempty"`

	// Telemetry controls anonymous usage analytics.
	// nil = never configured (disabled), true = opted in, false = opted out
	Telemetry *bool `json:"telemetry,omitempty"`
}

// Load loads .moai/config.json under dir.
// Returns default settings if the file doesn't exist.
func Load(dir string) (*ProjectSettings, error) {
	return LoadFromFile(paths.Resolve(dir, paths.ConfigFile))
}

// LoadFromFile loads settings from a specific file path.
// Returns default settings if the file doesn't exist.
func LoadFromFile(filePath string) (*ProjectSettings, error) {
	settings := &ProjectSettings{}

	data, err := os.ReadFile(filePath) //nolint:gosec // path is from caller
	if err != nil {
		if paths.IsNotExist(err) {
			return settings, nil
		}
		return nil, fmt.Errorf("reading settings file: %w", err)
	}

	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parsing settings file: %w", err)
	}

	return settings, nil
}

// DeclaredLanguage returns the configured language for dir, or "" when the
// configuration is missing, unreadable, or does not declare one.
func DeclaredLanguage(dir string) string {
	s, err := Load(dir)
	if err != nil {
		return ""
	}
	return s.Language
}

// LogLevel returns the configured log level for dir, or "" when unset or unreadable.
func LogLevel(dir string) string {
	s, err := Load(dir)
	if err != nil {
		return ""
	}
	return s.LogLevel
}

// IsTelemetryEnabled reports whether the project opted in to telemetry.
func (s *ProjectSettings) IsTelemetryEnabled() bool {
	return s.Telemetry != nil && *s.Telemetry
}
