package validation

import (
	"fmt"

	"github.com/jonathan/cv-generator/internal/types"
)

// Options are the limits a CV is checked against. Zero values disable the
// corresponding check.
type Options struct {
	MaxPages         int
	MaxLineChars     int
	ForbiddenPhrases []string
}

// Check validates cv and its rendered page count against opts.
func Check(cv *types.CVData, pages int, opts Options) *types.Violations {
	all := []types.Violation{}
	all = append(all, CheckPageLimit(pages, opts.MaxPages)...)
	all = append(all, CheckForbiddenPhrases(cv, opts.ForbiddenPhrases)...)
	all = append(all, ValidateLineLengths(cv, opts.MaxLineChars)...)
	all = append(all, CheckPlaceholders(cv)...)
	return &types.Violations{Violations: all}
}

// CheckFile is Check for an already written PDF.
func CheckFile(pdfPath string, cv *types.CVData, opts Options) (*types.Violations, error) {
	pages := 0
	if opts.MaxPages > 0 {
		var err error
		pages, err = CountPDFPages(pdfPath)
		if err != nil {
			return nil, fmt.Errorf("failed to count pages: %w", err)
		}
	}
	return Check(cv, pages, opts), nil
}

// HasErrors reports whether any violation has error severity.
func HasErrors(v *types.Violations) bool {
	if v == nil {
		return false
	}
	for _, violation := range v.Violations {
		if violation.Severity == "error" {
			return true
		}
	}
	return false
}
