// Package observability provides logging setup and formatted terminal output
// for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jonathan/cv-generator/internal/cvdata"
	"github.com/jonathan/cv-generator/internal/generator"
	"github.com/jonathan/cv-generator/internal/rendering"
	"github.com/jonathan/cv-generator/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1A3C5E"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4A6B8A")).
			Padding(0, 1).
			Width(boxWidth - 2)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC107"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A"))
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to max runes, ending in "..."
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

// printBox prints a bordered box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		// Truncate long lines
		lines[i] = truncate(line, boxWidth-4)
	}
	body := titleStyle.Render(title) + "\n\n" + strings.Join(lines, "\n")
	fmt.Fprintln(p.out, boxStyle.Render(body))
}

// PrintStats outputs the content statistics of a CV.
func (p *Printer) PrintStats(name string, stats cvdata.Stats) {
	var sb strings.Builder
	if name != "" {
		sb.WriteString(fmt.Sprintf("Candidate:         %s\n\n", name))
	}
	sb.WriteString(fmt.Sprintf("Sections:          %d\n", stats.SectionCount))
	sb.WriteString(fmt.Sprintf("Profile length:    %d chars\n", stats.ProfileLength))
	sb.WriteString(fmt.Sprintf("Companies:         %d\n", stats.CompaniesCount))
	sb.WriteString(fmt.Sprintf("Roles:             %d\n", stats.RolesCount))
	sb.WriteString(fmt.Sprintf("Responsibilities:  %d\n", stats.TotalResponsibilities))
	sb.WriteString(fmt.Sprintf("Education entries: %d\n", stats.EducationCount))
	sb.WriteString(fmt.Sprintf("Projects:          %d\n", stats.ProjectsCount))
	sb.WriteString(fmt.Sprintf("Skill categories:  %d\n", stats.TechnicalSkillsCategories))
	sb.WriteString(fmt.Sprintf("Skills:            %d\n", stats.TotalSkills))
	sb.WriteString(fmt.Sprintf("Content density:   %.2f", stats.ContentDensity))

	p.printBox("CV STATISTICS", sb.String())
}

// PrintTemplates outputs the available templates with their features.
func (p *Printer) PrintTemplates(templates []rendering.Info) {
	if len(templates) == 0 {
		return
	}

	var sb strings.Builder
	for i, t := range templates {
		sb.WriteString(fmt.Sprintf("%s\n", t.Name))
		sb.WriteString(fmt.Sprintf("  %s\n", t.Description))
		count := min(len(t.Features), maxItemsToShow)
		for j := 0; j < count; j++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", t.Features[j]))
		}
		if len(t.Features) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(t.Features)-maxItemsToShow))
		}
		if i < len(templates)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("AVAILABLE TEMPLATES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintResult outputs a summary of a generated PDF.
func (p *Printer) PrintResult(result *generator.Result) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Output:    %s\n", result.OutputPath))
	sb.WriteString(fmt.Sprintf("Template:  %s\n", result.Template))
	sb.WriteString(fmt.Sprintf("Pages:     %d\n", result.Pages))
	sb.WriteString(fmt.Sprintf("Density:   %.2f\n", result.Density))
	sb.WriteString(fmt.Sprintf("Colours:   %s / %s / %s\n",
		result.Theme.PrimaryColor, result.Theme.SecondaryColor, result.Theme.AccentColor))
	sb.WriteString(fmt.Sprintf("Took:      %s", result.Duration.Round(time.Millisecond)))
	if len(result.Unknown) > 0 {
		sb.WriteString(fmt.Sprintf("\nIgnored:   %s", strings.Join(result.Unknown, ", ")))
	}

	p.printBox("CV GENERATED", sb.String())
}

// PrintViolations outputs any check violations found.
func (p *Printer) PrintViolations(violations *types.Violations) {
	if violations == nil || len(violations.Violations) == 0 {
		p.printBox("CHECKS", okStyle.Render("✅ NO VIOLATIONS FOUND"))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d violations:\n\n", len(violations.Violations)))

	for i, v := range violations.Violations {
		style := warningStyle
		if v.Severity == "error" {
			style = errorStyle
		}
		sb.WriteString(style.Render(fmt.Sprintf("⚠ %s (%s)", v.Type, v.Severity)) + "\n")
		sb.WriteString(fmt.Sprintf("  %s\n", truncate(v.Details, boxWidth-6)))
		if i < len(violations.Violations)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("CHECK VIOLATIONS", strings.TrimSuffix(sb.String(), "\n"))
}
