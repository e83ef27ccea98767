package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/cv-generator/internal/types"
)

// ValidateLineLengths warns about bullet-style entries longer than maxChars
// characters: responsibilities and additional information lines. A
// non-positive maxChars disables the check.
func ValidateLineLengths(cv *types.CVData, maxChars int) []types.Violation {
	var violations []types.Violation
	if maxChars <= 0 {
		return violations
	}

	for _, field := range CollectText(cv) {
		if !isBulletField(field.Path) {
			continue
		}
		count := utf8.RuneCountInString(strings.TrimSpace(field.Text))
		if count <= maxChars {
			continue
		}
		violations = append(violations, types.Violation{
			Type:             "line_too_long",
			Severity:         "warning",
			Details:          fmt.Sprintf("%s has %d characters, maximum is %d", field.Path, count, maxChars),
			AffectedSections: []string{field.Section()},
			Field:            strPtr(field.Path),
			Text:             strPtr(field.Text),
		})
	}
	return violations
}

func isBulletField(path string) bool {
	return strings.Contains(path, ".responsibilities[") || strings.HasPrefix(path, "additional_info[")
}
