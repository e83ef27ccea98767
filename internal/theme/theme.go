// Package theme provides the colours, fonts and spacing shared by every CV template.
package theme

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// PointsPerInch converts inches to PDF points.
const PointsPerInch = 72.0

// Default values applied when a theme key is absent.
const (
	DefaultPrimaryColor    = "#003087"
	DefaultSecondaryColor  = "#0070CC"
	DefaultAccentColor     = "#BEDCF9"
	DefaultBackgroundColor = "#F5F8FC"
	DefaultTextColor       = "#333333"

	DefaultHeaderFont = "Helvetica-Bold"
	DefaultBodyFont   = "Helvetica"

	DefaultHeaderFontSize = 14.0
	DefaultBodyFontSize   = 11.5

	DefaultSectionSpacing   = 0.3 * PointsPerInch
	DefaultLineSpacing      = 13.0
	DefaultParagraphSpacing = 0.12 * PointsPerInch
)

// Theme defines visual styling for a rendered CV.
// Spacing values are in points.
type Theme struct {
	PrimaryColor    string `json:"primary_color" yaml:"primary_color"`
	SecondaryColor  string `json:"secondary_color" yaml:"secondary_color"`
	AccentColor     string `json:"accent_color" yaml:"accent_color"`
	BackgroundColor string `json:"background_color" yaml:"background_color"`
	TextColor       string `json:"text_color" yaml:"text_color"`

	HeaderFont     string  `json:"header_font" yaml:"header_font"`
	BodyFont       string  `json:"body_font" yaml:"body_font"`
	HeaderFontSize float64 `json:"header_font_size" yaml:"header_font_size"`
	BodyFontSize   float64 `json:"body_font_size" yaml:"body_font_size"`

	SectionSpacing   float64 `json:"section_spacing" yaml:"section_spacing"`
	LineSpacing      float64 `json:"line_spacing" yaml:"line_spacing"`
	ParagraphSpacing float64 `json:"paragraph_spacing" yaml:"paragraph_spacing"`
}

// Default returns the standard theme.
func Default() Theme {
	return Theme{
		PrimaryColor:     DefaultPrimaryColor,
		SecondaryColor:   DefaultSecondaryColor,
		AccentColor:      DefaultAccentColor,
		BackgroundColor:  DefaultBackgroundColor,
		TextColor:        DefaultTextColor,
		HeaderFont:       DefaultHeaderFont,
		BodyFont:         DefaultBodyFont,
		HeaderFontSize:   DefaultHeaderFontSize,
		BodyFontSize:     DefaultBodyFontSize,
		SectionSpacing:   DefaultSectionSpacing,
		LineSpacing:      DefaultLineSpacing,
		ParagraphSpacing: DefaultParagraphSpacing,
	}
}

// Density thresholds used by ForDensity.
const (
	DenseThreshold  = 0.8
	SparseThreshold = 0.4
)

// ForDensity returns the default theme with font sizes and spacing scaled for
// the given content density (0 sparse, 1 dense).
func ForDensity(density float64) Theme {
	t := Default()
	switch {
	case density > DenseThreshold:
		t.HeaderFontSize = 13
		t.BodyFontSize = 11
		t.LineSpacing = 12
		t.SectionSpacing = 0.25 * PointsPerInch
		t.ParagraphSpacing = 0.1 * PointsPerInch
	case density < SparseThreshold:
		t.HeaderFontSize = 16
		t.BodyFontSize = 12
		t.LineSpacing = 14
		t.SectionSpacing = 0.35 * PointsPerInch
		t.ParagraphSpacing = 0.15 * PointsPerInch
	}
	return t
}

// Primary returns the parsed primary colour.
func (t Theme) Primary() Color { return ParseColor(t.PrimaryColor) }

// Secondary returns the parsed secondary colour.
func (t Theme) Secondary() Color { return ParseColor(t.SecondaryColor) }

// Accent returns the parsed accent colour.
func (t Theme) Accent() Color { return ParseColor(t.AccentColor) }

// Background returns the parsed background colour.
func (t Theme) Background() Color { return ParseColor(t.BackgroundColor) }

// Text returns the parsed text colour.
func (t Theme) Text() Color { return ParseColor(t.TextColor) }

// OverrideError reports a theme override with an unusable value.
type OverrideError struct {
	Key     string
	Message string
}

func (e *OverrideError) Error() string {
	return fmt.Sprintf("theme override %q: %s", e.Key, e.Message)
}

// ApplyOverrides sets every recognised key of overrides on the theme, in key
// order. Unknown keys are returned so callers can report them.
// section_spacing and paragraph_spacing below 10 are read as inches.
// Unrecognised colour values are kept and draw as black, with a warning.
func (t *Theme) ApplyOverrides(overrides map[string]any, logger *zap.Logger) (unknown []string, err error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	keys := make([]string, 0, len(overrides))
	for key := range overrides {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := overrides[key]
		switch key {
		case "primary_color":
			err = setColor(&t.PrimaryColor, key, value, logger)
		case "secondary_color":
			err = setColor(&t.SecondaryColor, key, value, logger)
		case "accent_color":
			err = setColor(&t.AccentColor, key, value, logger)
		case "background_color":
			err = setColor(&t.BackgroundColor, key, value, logger)
		case "text_color":
			err = setColor(&t.TextColor, key, value, logger)
		case "header_font":
			err = setString(&t.HeaderFont, key, value)
		case "body_font":
			err = setString(&t.BodyFont, key, value)
		case "header_font_size":
			err = setPositive(&t.HeaderFontSize, key, value, 1)
		case "body_font_size":
			err = setPositive(&t.BodyFontSize, key, value, 1)
		case "line_spacing":
			err = setPositive(&t.LineSpacing, key, value, 1)
		case "section_spacing":
			err = setPositive(&t.SectionSpacing, key, value, PointsPerInch)
		case "paragraph_spacing":
			err = setPositive(&t.ParagraphSpacing, key, value, PointsPerInch)
		default:
			unknown = append(unknown, key)
		}
		if err != nil {
			return unknown, err
		}
	}
	return unknown, nil
}

func setColor(dst *string, key string, value any, logger *zap.Logger) error {
	s, ok := value.(string)
	if !ok {
		return &OverrideError{Key: key, Message: fmt.Sprintf("expected a colour string, got %T", value)}
	}
	s = strings.TrimSpace(s)
	if _, known := LookupColor(s); !known {
		logger.Warn("unrecognised colour, using black",
			zap.String("key", key),
			zap.String("value", s))
	}
	*dst = s
	return nil
}

func setString(dst *string, key string, value any) error {
	s, ok := value.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return &OverrideError{Key: key, Message: "expected a non-empty string"}
	}
	*dst = strings.TrimSpace(s)
	return nil
}

// setPositive stores a positive number; values below 10 are multiplied by
// smallUnit (1 leaves them unchanged).
func setPositive(dst *float64, key string, value any, smallUnit float64) error {
	n, ok := toFloat(value)
	if !ok {
		return &OverrideError{Key: key, Message: fmt.Sprintf("expected a number, got %T", value)}
	}
	if n <= 0 {
		return &OverrideError{Key: key, Message: "must be greater than zero"}
	}
	if n < 10 {
		n *= smallUnit
	}
	*dst = n
	return nil
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
