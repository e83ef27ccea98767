package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/cv-generator/internal/types"
)

// PlaceholderKeywords are template leftovers that should never reach a
// finished CV.
var PlaceholderKeywords = []string{
	"lorem ipsum",
	"todo",
	"tbd",
	"fixme",
	"your name",
	"company name",
	"insert here",
}

// placeholderPatterns catch bracketed or repeated-x placeholders
var placeholderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\[(your|insert|add)[^\]]*\]`),
	regexp.MustCompile(`(?i)<(your|insert|add)[^>]*>`),
	regexp.MustCompile(`(?i)\bx{3,}\b`),
}

// PlaceholderCheckResult holds the result of a placeholder scan of one text.
type PlaceholderCheckResult struct {
	Clean    bool     // Whether the text passed the check
	Detected []string // Placeholder keywords or patterns found
	Reason   string   // Human-readable explanation
}

// CheckPlaceholderText looks for template leftovers in text. Keywords match
// whole words, ignoring case.
func CheckPlaceholderText(text string) *PlaceholderCheckResult {
	lower := " " + normalizeForMatching(stripPunctuation(text)) + " "
	var detected []string

	for _, keyword := range PlaceholderKeywords {
		if strings.Contains(lower, " "+keyword+" ") {
			detected = append(detected, keyword)
		}
	}
	for _, pattern := range placeholderPatterns {
		if match := pattern.FindString(text); match != "" {
			detected = append(detected, match)
		}
	}

	if len(detected) > 0 {
		return &PlaceholderCheckResult{
			Clean:    false,
			Detected: detected,
			Reason:   "found placeholder text: " + strings.Join(detected, ", "),
		}
	}
	return &PlaceholderCheckResult{Clean: true}
}

// stripPunctuation replaces punctuation with spaces so keywords at the end
// of a sentence still match.
func stripPunctuation(text string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '.', ',', ';', ':', '!', '?', '(', ')', '"', '\'':
			return ' '
		}
		return r
	}, text)
}

// CheckPlaceholders reports every text field of cv containing placeholder
// text.
func CheckPlaceholders(cv *types.CVData) []types.Violation {
	var violations []types.Violation
	for _, field := range CollectText(cv) {
		result := CheckPlaceholderText(field.Text)
		if result.Clean {
			continue
		}
		violations = append(violations, types.Violation{
			Type:             "placeholder_text",
			Severity:         "warning",
			Details:          fmt.Sprintf("%s: %s", field.Path, result.Reason),
			AffectedSections: []string{field.Section()},
			Field:            strPtr(field.Path),
			Text:             strPtr(field.Text),
		})
	}
	return violations
}
