package theme

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Color is an 8-bit RGB colour.
type Color struct {
	R, G, B int
}

// Black is returned for colours that cannot be parsed.
var Black = Color{}

// White is used for text drawn on the primary colour.
var White = Color{R: 255, G: 255, B: 255}

// LookupColor parses "#RRGGBB", "#RGB" or an SVG/CSS colour name.
func LookupColor(s string) (Color, bool) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		if len(s) != 4 && len(s) != 7 {
			return Black, false
		}
		c, err := colorful.Hex(strings.ToLower(s))
		if err != nil {
			return Black, false
		}
		r, g, b := c.RGB255()
		return Color{R: int(r), G: int(g), B: int(b)}, true
	}
	c, ok := colornames.Map[strings.ToLower(s)]
	if !ok {
		return Black, false
	}
	return Color{R: int(c.R), G: int(c.G), B: int(c.B)}, true
}

// ParseColor is LookupColor with unknown colours mapped to black.
func ParseColor(s string) Color {
	c, _ := LookupColor(s)
	return c
}

// Hex formats the colour as "#RRGGBB".
func (c Color) Hex() string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}

// Blend mixes c with other; t=0 returns c, t=1 returns other.
func (c Color) Blend(other Color, t float64) Color {
	a := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	b := colorful.Color{R: float64(other.R) / 255, G: float64(other.G) / 255, B: float64(other.B) / 255}
	r, g, bl := a.BlendRgb(b, t).Clamped().RGB255()
	return Color{R: int(r), G: int(g), B: int(bl)}
}
