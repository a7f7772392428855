// Package config defines process configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// CatalogPath points to a YAML rubric catalog. Empty selects the
	// built-in catalog.
	CatalogPath string `koanf:"catalog_path"`

	// ProfilesPath points to a YAML file of named focus/weight presets.
	// Empty selects the built-in presets.
	ProfilesPath string `koanf:"profiles_path"`

	// FontPath points to a TTF font for Unicode PDF output. When the
	// file is missing the PDF renderer transliterates instead.
	FontPath string `koanf:"font_path"`

	// OutputDir is where exports are written.
	OutputDir string `koanf:"output_dir"`

	// FilenamePrefix leads suggested export filenames.
	FilenamePrefix string `koanf:"filename_prefix"`

	// DefaultWeight is used for modules without an explicit weight.
	DefaultWeight float64 `koanf:"default_weight"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		OutputDir:      ".",
		FilenamePrefix: "Observation",
		DefaultWeight:  1.0,
	}
}
