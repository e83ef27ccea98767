package validation

import (
	"math"
	"unicode/utf8"

	"github.com/jonathan/cv-generator/internal/types"
)

const (
	// linesPerPage is the estimated number of content lines per page
	linesPerPage = 50
	// charsPerLine is the estimated number of characters per line
	charsPerLine = 100
)

// OverflowAnalysis contains the results of analyzing page overflow
type OverflowAnalysis struct {
	ExcessPages            float64 // How many pages over (e.g., 0.5 = half a page)
	ExcessLines            int     // Estimated lines that need to be removed
	ExcessResponsibilities float64 // Estimated responsibilities that need to be removed
	CanShorten             bool    // Can we fix by shortening responsibilities?
	MustDrop               bool    // Must we drop responsibilities?
}

// AnalyzePageOverflow estimates how many responsibility lines must go for
// the CV to fit within the page limit.
func AnalyzePageOverflow(currentPages, maxPages int, cv *types.CVData) *OverflowAnalysis {
	analysis := &OverflowAnalysis{}

	// If no overflow, return empty analysis
	if maxPages <= 0 || currentPages <= maxPages {
		return analysis
	}

	analysis.ExcessPages = float64(currentPages - maxPages)
	analysis.ExcessLines = int(analysis.ExcessPages * linesPerPage)

	avgLines := averageLinesPerResponsibility(cv)
	if avgLines <= 0 {
		avgLines = 2.0 // Default assumption: 2 lines per responsibility
	}
	analysis.ExcessResponsibilities = float64(analysis.ExcessLines) / avgLines

	analysis.MustDrop = analysis.ExcessResponsibilities >= 1.0
	analysis.CanShorten = analysis.ExcessResponsibilities < 1.0

	return analysis
}

// averageLinesPerResponsibility estimates wrapped lines per responsibility
func averageLinesPerResponsibility(cv *types.CVData) float64 {
	if cv == nil {
		return 0
	}
	total, count := 0, 0
	for _, company := range cv.Companies() {
		for _, role := range company.Roles {
			for _, resp := range role.Responsibilities {
				total += int(math.Ceil(float64(utf8.RuneCountInString(resp)) / charsPerLine))
				count++
			}
		}
	}
	if count == 0 {
		return 0
	}
	return float64(total) / float64(count)
}

// ResponsibilitiesToDropCount returns the number of responsibilities that
// should be dropped to resolve the overflow. Returns 0 if no drops are needed.
func (a *OverflowAnalysis) ResponsibilitiesToDropCount() int {
	if !a.MustDrop {
		return 0
	}
	return int(math.Ceil(a.ExcessResponsibilities))
}
