package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/cv-generator/internal/cvdata"
	"github.com/jonathan/cv-generator/internal/generator"
	"github.com/jonathan/cv-generator/internal/rendering"
	"github.com/jonathan/cv-generator/internal/theme"
	"github.com/jonathan/cv-generator/internal/types"
)

func TestPrintStats(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintStats("Jane Doe", cvdata.Stats{
		SectionCount:          6,
		CompaniesCount:        3,
		RolesCount:            4,
		TotalResponsibilities: 12,
		ContentDensity:        0.75,
	})
	output := buf.String()

	assert.Contains(t, output, "CV STATISTICS")
	assert.Contains(t, output, "Jane Doe")
	assert.Contains(t, output, "Companies:         3")
	assert.Contains(t, output, "Responsibilities:  12")
	assert.Contains(t, output, "0.75")
}

func TestPrintTemplates(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintTemplates(generator.New(generator.Options{}).ListTemplates())
	output := buf.String()

	assert.Contains(t, output, "AVAILABLE TEMPLATES")
	assert.Contains(t, output, "two_column")
	assert.Contains(t, output, "modern")
	assert.Contains(t, output, "minimal")
}

func TestPrintTemplates_ManyFeatures(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintTemplates([]rendering.Info{{
		Name:     "busy",
		Features: []string{"a", "b", "c", "d", "e", "f", "g"},
	}})

	assert.Contains(t, buf.String(), "... and 2 more")
}

func TestPrintTemplates_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintTemplates(nil)
	assert.Empty(t, buf.String())
}

func TestPrintResult(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	th := theme.Default()
	p.PrintResult(&generator.Result{
		OutputPath: "out/cv.pdf",
		Template:   "modern",
		Pages:      2,
		Density:    0.5,
		Theme:      th,
		Unknown:    []string{"theme.glow"},
		Duration:   1500 * time.Millisecond,
	})
	output := buf.String()

	assert.Contains(t, output, "CV GENERATED")
	assert.Contains(t, output, "out/cv.pdf")
	assert.Contains(t, output, "modern")
	assert.Contains(t, output, th.PrimaryColor)
	assert.Contains(t, output, "theme.glow")
	assert.Contains(t, output, "1.5s")
}

func TestPrintResult_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintResult(nil)
	assert.Empty(t, buf.String())
}

func TestPrintViolations(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintViolations(&types.Violations{Violations: []types.Violation{
		{Type: "page_overflow", Severity: "error", Details: "CV has 3 pages, maximum allowed is 2"},
		{Type: "line_too_long", Severity: "warning", Details: strings.Repeat("x", 200)},
	}})
	output := buf.String()

	assert.Contains(t, output, "CHECK VIOLATIONS")
	assert.Contains(t, output, "Found 2 violations")
	assert.Contains(t, output, "page_overflow")
	assert.Contains(t, output, "...")
	assert.NotContains(t, output, strings.Repeat("x", 100))
}

func TestPrintViolations_None(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintViolations(nil)
	assert.Contains(t, buf.String(), "NO VIOLATIONS FOUND")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ééé...", truncate("éééééééé", 6))
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(false)
	assert.NoError(t, err)
	assert.False(t, logger.Core().Enabled(-1))

	logger, err = NewLogger(true)
	assert.NoError(t, err)
	assert.True(t, logger.Core().Enabled(-1))
}
