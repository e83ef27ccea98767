package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func TestDefault(t *testing.T) {
	th := Default()

	assert.Equal(t, "#003087", th.PrimaryColor)
	assert.Equal(t, "Helvetica-Bold", th.HeaderFont)
	assert.Equal(t, "Helvetica", th.BodyFont)
	assert.Equal(t, 14.0, th.HeaderFontSize)
	assert.Equal(t, 11.5, th.BodyFontSize)
	assert.InDelta(t, 21.6, th.SectionSpacing, 1e-9)
	assert.Equal(t, 13.0, th.LineSpacing)
	assert.InDelta(t, 8.64, th.ParagraphSpacing, 1e-9)
}

func TestForDensity(t *testing.T) {
	tests := []struct {
		name       string
		density    float64
		header     float64
		body       float64
		line       float64
		section    float64
		paragraphs float64
	}{
		{name: "dense", density: 0.95, header: 13, body: 11, line: 12, section: 18, paragraphs: 7.2},
		{name: "sparse", density: 0.1, header: 16, body: 12, line: 14, section: 25.2, paragraphs: 10.8},
		{name: "balanced", density: 0.6, header: 14, body: 11.5, line: 13, section: 21.6, paragraphs: 8.64},
		{name: "upper boundary is balanced", density: 0.8, header: 14, body: 11.5, line: 13, section: 21.6, paragraphs: 8.64},
		{name: "lower boundary is balanced", density: 0.4, header: 14, body: 11.5, line: 13, section: 21.6, paragraphs: 8.64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := ForDensity(tt.density)
			assert.Equal(t, tt.header, th.HeaderFontSize)
			assert.Equal(t, tt.body, th.BodyFontSize)
			assert.Equal(t, tt.line, th.LineSpacing)
			assert.InDelta(t, tt.section, th.SectionSpacing, 1e-9)
			assert.InDelta(t, tt.paragraphs, th.ParagraphSpacing, 1e-9)
			assert.Equal(t, DefaultPrimaryColor, th.PrimaryColor)
		})
	}
}

func TestApplyOverrides(t *testing.T) {
	th := Default()
	unknown, err := th.ApplyOverrides(map[string]any{
		"primary_color":     "#112233",
		"text_color":        "navy",
		"body_font":         "DejaVuSans",
		"body_font_size":    10.0,
		"section_spacing":   0.5,
		"paragraph_spacing": 12,
		"line_spacing":      11,
		"shadow":            true,
	}, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"shadow"}, unknown)
	assert.Equal(t, "#112233", th.PrimaryColor)
	assert.Equal(t, "navy", th.TextColor)
	assert.Equal(t, "DejaVuSans", th.BodyFont)
	assert.Equal(t, 10.0, th.BodyFontSize)
	assert.InDelta(t, 36.0, th.SectionSpacing, 1e-9)
	assert.Equal(t, 12.0, th.ParagraphSpacing)
	assert.Equal(t, 11.0, th.LineSpacing)
}

func TestApplyOverrides_Errors(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]any
		key       string
	}{
		{name: "colour not a string", overrides: map[string]any{"primary_color": 12}, key: "primary_color"},
		{name: "negative size", overrides: map[string]any{"header_font_size": -2.0}, key: "header_font_size"},
		{name: "size not a number", overrides: map[string]any{"body_font_size": "big"}, key: "body_font_size"},
		{name: "empty font", overrides: map[string]any{"header_font": " "}, key: "header_font"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := Default()
			_, err := th.ApplyOverrides(tt.overrides, nil)
			require.Error(t, err)

			var overrideErr *OverrideError
			require.ErrorAs(t, err, &overrideErr)
			assert.Equal(t, tt.key, overrideErr.Key)
		})
	}
}

func TestApplyOverrides_ReportsFirstBadKeyInOrder(t *testing.T) {
	overrides := map[string]any{
		"paragraph_spacing": -1.0,
		"header_font_size":  -2.0,
		"body_font_size":    "big",
		"header_font":       " ",
	}

	for i := 0; i < 20; i++ {
		th := Default()
		_, err := th.ApplyOverrides(overrides, nil)

		var overrideErr *OverrideError
		require.ErrorAs(t, err, &overrideErr)
		assert.Equal(t, "body_font_size", overrideErr.Key)
	}
}

func TestApplyOverrides_UnrecognisedColourDrawsBlack(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	th := Default()

	unknown, err := th.ApplyOverrides(map[string]any{
		"primary_color": "cornflowerblue",
		"accent_color":  "#zzzzzz",
		"text_color":    "ultraviolet",
	}, zap.New(core))
	require.NoError(t, err)
	assert.Empty(t, unknown)

	assert.Equal(t, Color{100, 149, 237}, th.Primary())
	assert.Equal(t, Black, th.Accent())
	assert.Equal(t, Black, th.Text())

	warnings := logs.FilterMessage("unrecognised colour, using black").All()
	require.Len(t, warnings, 2)
	assert.Equal(t, "accent_color", warnings[0].ContextMap()["key"])
	assert.Equal(t, "text_color", warnings[1].ContextMap()["key"])
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
		ok   bool
	}{
		{in: "#003087", want: Color{0, 48, 135}, ok: true},
		{in: "#BEDCF9", want: Color{190, 220, 249}, ok: true},
		{in: "#fff", want: Color{255, 255, 255}, ok: true},
		{in: "#abc", want: Color{170, 187, 204}, ok: true},
		{in: "Navy", want: Color{0, 0, 128}, ok: true},
		{in: " grey ", want: Color{128, 128, 128}, ok: true},
		{in: "CornflowerBlue", want: Color{100, 149, 237}, ok: true},
		{in: "#12345", want: Black, ok: false},
		{in: "#gggggg", want: Black, ok: false},
		{in: "ultraviolet", want: Black, ok: false},
		{in: "", want: Black, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := LookupColor(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, ParseColor(tt.in))
		})
	}
}

func TestColor_Hex(t *testing.T) {
	assert.Equal(t, "#003087", Color{0, 48, 135}.Hex())
	assert.Equal(t, "#ffffff", White.Hex())
}

func TestColor_Blend(t *testing.T) {
	assert.Equal(t, Black, Black.Blend(White, 0))
	assert.Equal(t, White, Black.Blend(White, 1))

	mid := Black.Blend(White, 0.5)
	assert.InDelta(t, 128, mid.R, 1)
	assert.Equal(t, mid.R, mid.G)
}

func TestTheme_ColorAccessors(t *testing.T) {
	th := Default()
	assert.Equal(t, Color{0, 48, 135}, th.Primary())
	assert.Equal(t, Color{0, 112, 204}, th.Secondary())
	assert.Equal(t, Color{190, 220, 249}, th.Accent())
	assert.Equal(t, Color{245, 248, 252}, th.Background())
	assert.Equal(t, Color{51, 51, 51}, th.Text())
}
