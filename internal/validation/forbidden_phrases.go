package validation

import (
	"fmt"
	"strings"

	"github.com/jonathan/cv-generator/internal/types"
)

// CheckForbiddenPhrases reports every text field that contains one of the
// phrases. Matching ignores case and runs of whitespace.
func CheckForbiddenPhrases(cv *types.CVData, phrases []string) []types.Violation {
	if len(phrases) == 0 {
		return []types.Violation{}
	}

	violations := []types.Violation{}
	for _, field := range CollectText(cv) {
		normalized := normalizeForMatching(field.Text)
		for _, phrase := range phrases {
			needle := normalizeForMatching(phrase)
			if needle == "" {
				continue
			}
			if strings.Contains(normalized, needle) {
				violations = append(violations, types.Violation{
					Type:             "forbidden_phrase",
					Severity:         "error",
					Details:          fmt.Sprintf("%s contains forbidden phrase: %s", field.Path, phrase),
					AffectedSections: []string{field.Section()},
					Field:            strPtr(field.Path),
					Text:             strPtr(field.Text),
				})
			}
		}
	}
	return violations
}

// normalizeForMatching lowercases text and collapses whitespace
func normalizeForMatching(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}
