// Package layout provides page geometry for CV templates: page size, margins,
// banner height and column split. All values are in PDF points.
package layout

import (
	"fmt"
	"sort"
	"strings"
)

// PointsPerInch converts inches to PDF points.
const PointsPerInch = 72.0

// inchThreshold is the value below which a length is read as inches.
const inchThreshold = 10.0

// Size is a page width and height in points.
type Size struct {
	Width  float64
	Height float64
}

// Standard page sizes.
var (
	A4     = Size{Width: 595.2755905511812, Height: 841.8897637795277}
	Letter = Size{Width: 612, Height: 792}
	A3     = Size{Width: 841.8897637795277, Height: 1190.5511811023623}
	Legal  = Size{Width: 612, Height: 1008}
)

var pageSizes = map[string]Size{
	"A4":     A4,
	"LETTER": Letter,
	"A3":     A3,
	"LEGAL":  Legal,
}

// PageSizeNames returns the recognised page size names, sorted.
func PageSizeNames() []string {
	names := make([]string, 0, len(pageSizes))
	for name := range pageSizes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PageSizeError reports an unrecognised page size.
type PageSizeError struct {
	Value any
}

func (e *PageSizeError) Error() string {
	return fmt.Sprintf("unknown page size: %v (available: %s)", e.Value, strings.Join(PageSizeNames(), ", "))
}

// PageSizeByName looks up a standard page size, case-insensitively.
func PageSizeByName(name string) (Size, error) {
	size, ok := pageSizes[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return Size{}, &PageSizeError{Value: name}
	}
	return size, nil
}

// Default layout values, in inches where noted.
const (
	DefaultPageSize          = "A4"
	DefaultLeftMargin        = 0.3 * PointsPerInch
	DefaultRightMargin       = 0.3 * PointsPerInch
	DefaultTopMargin         = 0.4 * PointsPerInch
	DefaultBottomMargin      = 0.4 * PointsPerInch
	DefaultBannerHeight      = 1.4 * PointsPerInch
	DefaultLeftColumnRatio   = 0.3
	DefaultSectionSpacingMin = 0.2 * PointsPerInch
	DefaultSectionSpacingMax = 0.4 * PointsPerInch
)

// Layout defines the physical arrangement of a CV page.
type Layout struct {
	PageSize        Size
	LeftMargin      float64
	RightMargin     float64
	TopMargin       float64
	BottomMargin    float64
	BannerHeight    float64
	LeftColumnRatio float64
}

// Default returns an A4 layout with the standard margins.
func Default() Layout {
	return Layout{
		PageSize:        A4,
		LeftMargin:      DefaultLeftMargin,
		RightMargin:     DefaultRightMargin,
		TopMargin:       DefaultTopMargin,
		BottomMargin:    DefaultBottomMargin,
		BannerHeight:    DefaultBannerHeight,
		LeftColumnRatio: DefaultLeftColumnRatio,
	}
}

// OverrideError reports a layout key with an unusable value.
type OverrideError struct {
	Key     string
	Message string
	Cause   error
}

func (e *OverrideError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("layout %q: %s: %v", e.Key, e.Message, e.Cause)
	}
	return fmt.Sprintf("layout %q: %s", e.Key, e.Message)
}

func (e *OverrideError) Unwrap() error {
	return e.Cause
}

// FromMap builds a layout from the defaults and the given overrides.
// Margins and banner height below 10 are read as inches, otherwise as points.
// page_size is a standard name or a [width, height] pair in points.
// Unknown keys are returned so callers can report them.
func FromMap(values map[string]any) (Layout, []string, error) {
	l := Default()
	var unknown []string

	for key, value := range values {
		switch key {
		case "page_size":
			size, err := parsePageSize(value)
			if err != nil {
				return Layout{}, nil, &OverrideError{Key: key, Message: "invalid page size", Cause: err}
			}
			l.PageSize = size
		case "left_margin":
			if err := setLength(&l.LeftMargin, key, value); err != nil {
				return Layout{}, nil, err
			}
		case "right_margin":
			if err := setLength(&l.RightMargin, key, value); err != nil {
				return Layout{}, nil, err
			}
		case "top_margin":
			if err := setLength(&l.TopMargin, key, value); err != nil {
				return Layout{}, nil, err
			}
		case "bottom_margin":
			if err := setLength(&l.BottomMargin, key, value); err != nil {
				return Layout{}, nil, err
			}
		case "banner_height":
			if err := setLength(&l.BannerHeight, key, value); err != nil {
				return Layout{}, nil, err
			}
		case "left_column_width_ratio":
			ratio, ok := toFloat(value)
			if !ok || ratio <= 0 || ratio >= 1 {
				return Layout{}, nil, &OverrideError{Key: key, Message: "must be a number between 0 and 1"}
			}
			l.LeftColumnRatio = ratio
		case "section_spacing", "line_spacing", "paragraph_spacing":
			// Spacing is a theme concern; accepted here for older documents.
		default:
			unknown = append(unknown, key)
		}
	}

	sort.Strings(unknown)
	return l, unknown, nil
}

func parsePageSize(value any) (Size, error) {
	switch v := value.(type) {
	case string:
		return PageSizeByName(v)
	case []any:
		if len(v) != 2 {
			return Size{}, &PageSizeError{Value: value}
		}
		w, okW := toFloat(v[0])
		h, okH := toFloat(v[1])
		if !okW || !okH || w <= 0 || h <= 0 {
			return Size{}, &PageSizeError{Value: value}
		}
		return Size{Width: w, Height: h}, nil
	case []float64:
		if len(v) != 2 || v[0] <= 0 || v[1] <= 0 {
			return Size{}, &PageSizeError{Value: value}
		}
		return Size{Width: v[0], Height: v[1]}, nil
	default:
		return Size{}, &PageSizeError{Value: value}
	}
}

func setLength(dst *float64, key string, value any) error {
	n, ok := toFloat(value)
	if !ok {
		return &OverrideError{Key: key, Message: fmt.Sprintf("expected a number, got %T", value)}
	}
	if n < 0 {
		return &OverrideError{Key: key, Message: "must not be negative"}
	}
	*dst = ToPoints(n)
	return nil
}

// ToPoints reads values below 10 as inches and converts them; larger values
// are already points.
func ToPoints(v float64) float64 {
	if v < inchThreshold {
		return v * PointsPerInch
	}
	return v
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

// ContentWidth is the page width minus left and right margins.
func (l Layout) ContentWidth() float64 {
	return l.PageSize.Width - l.LeftMargin - l.RightMargin
}

// ContentHeight is the page height minus top and bottom margins.
func (l Layout) ContentHeight() float64 {
	return l.PageSize.Height - l.TopMargin - l.BottomMargin
}

// LeftColumnWidth is the page width times the column ratio.
func (l Layout) LeftColumnWidth() float64 {
	return l.PageSize.Width * l.LeftColumnRatio
}

// RightColumnX is where the right column starts.
func (l Layout) RightColumnX() float64 {
	return l.LeftColumnWidth()
}

// RightColumnWidth runs from the end of the left column to the right margin.
func (l Layout) RightColumnWidth() float64 {
	return l.PageSize.Width - l.RightColumnX() - l.RightMargin
}

// AdjustSectionSpacing scales section spacing by how full the page is:
// above 0.8 it returns minSpacing, below 0.4 maxSpacing, and interpolates
// linearly in between. current is returned unchanged when min > max.
func AdjustSectionSpacing(current, contentRatio, minSpacing, maxSpacing float64) float64 {
	if minSpacing > maxSpacing {
		return current
	}
	switch {
	case contentRatio > 0.8:
		return minSpacing
	case contentRatio < 0.4:
		return maxSpacing
	default:
		factor := (0.8 - contentRatio) / 0.4
		return minSpacing + (maxSpacing-minSpacing)*factor
	}
}
