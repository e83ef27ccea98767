// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/cv-generator/internal/layout"
	"github.com/jonathan/cv-generator/internal/rendering"
)

// EnvPrefix is the prefix of environment variables read by FromEnv.
const EnvPrefix = "CVGEN_"

// Config represents the CLI configuration that can be loaded from a YAML or
// JSON file. All fields are optional; missing values use defaults or must be
// provided via CLI flags.
type Config struct {
	// Rendering
	Template       string `json:"template,omitempty" yaml:"template,omitempty"`               // Template name
	ProfilePicture string `json:"profile_picture,omitempty" yaml:"profile_picture,omitempty"` // Path to picture image
	PageSize       string `json:"page_size,omitempty" yaml:"page_size,omitempty"`             // A4, Letter, ...
	FontDir        string `json:"font_dir,omitempty" yaml:"font_dir,omitempty"`               // Directory of TTF fonts
	Compress       bool   `json:"compress,omitempty" yaml:"compress,omitempty"`               // Compress PDF streams

	// Theme overrides, keyed like the CV data "theme" object
	Theme map[string]any `json:"theme,omitempty" yaml:"theme,omitempty"`

	// Checks
	MaxPages         int      `json:"max_pages,omitempty" yaml:"max_pages,omitempty"`
	MaxLineChars     int      `json:"max_line_chars,omitempty" yaml:"max_line_chars,omitempty"`
	ForbiddenPhrases []string `json:"forbidden_phrases,omitempty" yaml:"forbidden_phrases,omitempty"`

	// Behavior
	Verbose bool `json:"verbose,omitempty" yaml:"verbose,omitempty"` // Print detailed debug information
}

// LoadConfig loads configuration from a YAML (.yaml, .yml) or JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// FromEnv builds a Config from CVGEN_* environment variables. Call
// godotenv.Load first to pick up a .env file.
func FromEnv() (Config, error) {
	var cfg Config
	cfg.Template = os.Getenv(EnvPrefix + "TEMPLATE")
	cfg.ProfilePicture = os.Getenv(EnvPrefix + "PROFILE_PICTURE")
	cfg.PageSize = os.Getenv(EnvPrefix + "PAGE_SIZE")
	cfg.FontDir = os.Getenv(EnvPrefix + "FONT_DIR")

	if v := os.Getenv(EnvPrefix + "MAX_PAGES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid %sMAX_PAGES %q: %w", EnvPrefix, v, err)
		}
		cfg.MaxPages = n
	}
	if v := os.Getenv(EnvPrefix + "COMPRESS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid %sCOMPRESS %q: %w", EnvPrefix, v, err)
		}
		cfg.Compress = b
	}
	if v := os.Getenv(EnvPrefix + "PRIMARY_COLOR"); v != "" {
		cfg.Theme = map[string]any{"primary_color": v}
	}
	return cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Template != "" {
		if _, err := rendering.DefaultRegistry().Get(c.Template); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}

	if c.PageSize != "" {
		if _, err := layout.PageSizeByName(c.PageSize); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}

	// Validate numeric ranges
	if c.MaxPages < 0 {
		return fmt.Errorf("config error: 'max_pages' must be non-negative")
	}
	if c.MaxLineChars < 0 {
		return fmt.Errorf("config error: 'max_line_chars' must be non-negative")
	}

	// Validate file paths exist (if specified)
	if c.ProfilePicture != "" {
		if _, err := os.Stat(c.ProfilePicture); os.IsNotExist(err) {
			return fmt.Errorf("config error: profile picture not found: %s", c.ProfilePicture)
		}
	}
	if c.FontDir != "" {
		if info, err := os.Stat(c.FontDir); err != nil || !info.IsDir() {
			return fmt.Errorf("config error: font directory not found: %s", c.FontDir)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.ProfilePicture == "" {
		result.ProfilePicture = defaults.ProfilePicture
	}
	if result.PageSize == "" {
		result.PageSize = defaults.PageSize
	}
	if result.FontDir == "" {
		result.FontDir = defaults.FontDir
	}

	// Int fields: use default if zero
	if result.MaxPages == 0 {
		result.MaxPages = defaults.MaxPages
	}
	if result.MaxLineChars == 0 {
		result.MaxLineChars = defaults.MaxLineChars
	}

	if len(result.ForbiddenPhrases) == 0 {
		result.ForbiddenPhrases = defaults.ForbiddenPhrases
	}

	// Theme keys set here win; missing keys come from defaults
	if len(defaults.Theme) > 0 {
		theme := make(map[string]any, len(defaults.Theme)+len(result.Theme))
		for k, v := range defaults.Theme {
			theme[k] = v
		}
		for k, v := range result.Theme {
			theme[k] = v
		}
		result.Theme = theme
	}

	// Bool fields: cannot distinguish unset from false, so defaults only
	// turn them on
	result.Compress = result.Compress || defaults.Compress
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}

// LayoutOverrides returns the layout keys set by the configuration.
func (c *Config) LayoutOverrides() map[string]any {
	if c.PageSize == "" {
		return nil
	}
	return map[string]any{"page_size": c.PageSize}
}
