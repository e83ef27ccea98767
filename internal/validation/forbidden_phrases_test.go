package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckForbiddenPhrases_NoPhrases(t *testing.T) {
	violations := CheckForbiddenPhrases(testCV("Synergized stakeholders"), nil)
	assert.Empty(t, violations)
}

func TestCheckForbiddenPhrases_Match(t *testing.T) {
	cv := testCV("Synergized cross-functional stakeholders", "Shipped the billing system")

	violations := CheckForbiddenPhrases(cv, []string{"synergized"})

	require.Len(t, violations, 1)
	v := violations[0]
	assert.Equal(t, "forbidden_phrase", v.Type)
	assert.Equal(t, "error", v.Severity)
	assert.Equal(t, []string{"experience"}, v.AffectedSections)
	require.NotNil(t, v.Field)
	assert.Equal(t, "experience.companies[0].roles[0].responsibilities[0]", *v.Field)
	require.NotNil(t, v.Text)
	assert.Equal(t, "Synergized cross-functional stakeholders", *v.Text)
	assert.Contains(t, v.Details, "synergized")
}

func TestCheckForbiddenPhrases_CaseAndWhitespace(t *testing.T) {
	cv := testCV("Acted as a   TEAM\tPLAYER on every project")

	violations := CheckForbiddenPhrases(cv, []string{"team player"})

	assert.Len(t, violations, 1)
}

func TestCheckForbiddenPhrases_MultipleFields(t *testing.T) {
	cv := testCV("Go expert", "Python expert")
	cv.Profile = "An expert engineer"

	violations := CheckForbiddenPhrases(cv, []string{"expert"})

	require.Len(t, violations, 3)
	assert.Equal(t, []string{"profile"}, violations[0].AffectedSections)
}

func TestCheckForbiddenPhrases_BlankPhraseIgnored(t *testing.T) {
	violations := CheckForbiddenPhrases(testCV("Anything"), []string{"", "   "})
	assert.Empty(t, violations)
}

func TestNormalizeForMatching(t *testing.T) {
	assert.Equal(t, "hello world", normalizeForMatching("  Hello \n\t WORLD "))
	assert.Equal(t, "", normalizeForMatching("   "))
}
