package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckPlaceholderText_Clean(t *testing.T) {
	result := CheckPlaceholderText("Led the migration of 40 services to Kubernetes.")

	assert.True(t, result.Clean)
	assert.Empty(t, result.Detected)
	assert.Empty(t, result.Reason)
}

func TestCheckPlaceholderText_Keywords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lorem", "Lorem ipsum dolor sit amet.", "lorem ipsum"},
		{"todo uppercase", "TODO: describe the project", "todo"},
		{"tbd at end", "Start date TBD.", "tbd"},
		{"your name", "Your Name", "your name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CheckPlaceholderText(tt.input)
			assert.False(t, result.Clean)
			assert.Contains(t, result.Detected, tt.want)
			assert.NotEmpty(t, result.Reason)
		})
	}
}

func TestCheckPlaceholderText_Patterns(t *testing.T) {
	tests := []string{
		"Worked at [Your Company]",
		"Contact <insert email>",
		"Increased revenue by XXX%",
	}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			assert.False(t, CheckPlaceholderText(input).Clean)
		})
	}
}

func TestCheckPlaceholderText_WholeWordsOnly(t *testing.T) {
	for _, input := range []string{
		"Built a todolist app",
		"Managed the Mastodon instance",
		"Maxxed out throughput",
	} {
		t.Run(input, func(t *testing.T) {
			assert.True(t, CheckPlaceholderText(input).Clean)
		})
	}
}

func TestCheckPlaceholders(t *testing.T) {
	cv := testCV("Shipped the payments API", "TODO add metrics")
	cv.Profile = "Lorem ipsum"

	violations := CheckPlaceholders(cv)

	require.Len(t, violations, 2)
	assert.Equal(t, "placeholder_text", violations[0].Type)
	assert.Equal(t, "warning", violations[0].Severity)
	assert.Equal(t, "profile", *violations[0].Field)
	assert.Equal(t, "experience.companies[0].roles[0].responsibilities[1]", *violations[1].Field)
}

func TestCheckPlaceholders_CleanCV(t *testing.T) {
	assert.Empty(t, CheckPlaceholders(testCV("Shipped the payments API")))
}
