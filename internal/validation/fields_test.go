package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectText_Paths(t *testing.T) {
	fields := CollectText(testCV("Built things", "Ran things"))

	paths := make([]string, len(fields))
	for i, f := range fields {
		paths[i] = f.Path
	}
	assert.Equal(t, []string{
		"candidate.name",
		"candidate.title",
		"profile",
		"technical_skills.Languages[0]",
		"technical_skills.Languages[1]",
		"education.items[0].degree",
		"education.items[0].institution",
		"experience.companies[0].name",
		"experience.companies[0].roles[0].title",
		"experience.companies[0].roles[0].responsibilities[0]",
		"experience.companies[0].roles[0].responsibilities[1]",
		"projects[0].title",
		"projects[0].description",
		"additional_info[0]",
		"references",
	}, paths)
}

func TestCollectText_SkipsBlank(t *testing.T) {
	cv := testCV("   ")
	cv.Profile = ""

	for _, f := range CollectText(cv) {
		assert.NotEqual(t, "profile", f.Path)
		assert.NotContains(t, f.Path, "responsibilities")
	}
}

func TestCollectText_Nil(t *testing.T) {
	assert.Nil(t, CollectText(nil))
}

func TestTextField_Section(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"profile", "profile"},
		{"candidate.name", "candidate"},
		{"experience.companies[0].roles[1].responsibilities[2]", "experience"},
		{"additional_info[3]", "additional_info"},
		{"technical_skills.Languages[0]", "technical_skills"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, TextField{Path: tt.path}.Section())
		})
	}
}
