//nolint:revive // types is a standard Go package name pattern
package types

// Violation represents a single content or layout check failure
type Violation struct {
	Type             string   `json:"type"`
	Severity         string   `json:"severity"`
	Details          string   `json:"details"`
	AffectedSections []string `json:"affected_sections,omitempty"`
	PageCount        *int     `json:"page_count,omitempty"`

	// Location of the offending text inside the CV data
	Field *string `json:"field,omitempty"` // e.g. experience.companies[0].roles[1].responsibilities[2]
	Text  *string `json:"text,omitempty"`  // Offending text (for context)
}

// Violations represents a collection of check failures
type Violations struct {
	Violations []Violation `json:"violations"`
}
