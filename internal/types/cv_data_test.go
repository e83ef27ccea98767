//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTechnicalSkills_PreservesKeyOrder(t *testing.T) {
	input := `{"Languages": ["Go", "Python"], "Cloud": ["AWS"], "Databases": ["PostgreSQL", "Redis"]}`

	var skills TechnicalSkills
	require.NoError(t, json.Unmarshal([]byte(input), &skills))

	want := TechnicalSkills{
		{Name: "Languages", Skills: []string{"Go", "Python"}},
		{Name: "Cloud", Skills: []string{"AWS"}},
		{Name: "Databases", Skills: []string{"PostgreSQL", "Redis"}},
	}
	if diff := cmp.Diff(want, skills); diff != "" {
		t.Errorf("TechnicalSkills mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 5, skills.Count())
}

func TestTechnicalSkills_MarshalKeepsOrder(t *testing.T) {
	skills := TechnicalSkills{
		{Name: "Zeta", Skills: []string{"z"}},
		{Name: "Alpha", Skills: nil},
	}

	data, err := json.Marshal(skills)
	require.NoError(t, err)
	assert.Equal(t, `{"Zeta":["z"],"Alpha":[]}`, string(data))
}

func TestTechnicalSkills_DuplicateKeyLastWins(t *testing.T) {
	var skills TechnicalSkills
	require.NoError(t, json.Unmarshal([]byte(`{"A": ["1"], "B": ["2"], "A": ["3"]}`), &skills))

	require.Len(t, skills, 2)
	assert.Equal(t, "A", skills[0].Name)
	assert.Equal(t, []string{"3"}, skills[0].Skills)
}

func TestTechnicalSkills_RejectsArray(t *testing.T) {
	var skills TechnicalSkills
	err := json.Unmarshal([]byte(`["Go"]`), &skills)
	assert.Error(t, err)
}

func TestCVData_Validate(t *testing.T) {
	valid := &CVData{
		Candidate: &Candidate{
			Name:    "Jane Doe",
			Contact: []ContactItem{{Icon: "\uf0e0", Text: "jane@example.com"}},
		},
		Profile: "Engineer",
		Experience: &Experience{
			Companies: []Company{{Name: "Acme"}},
		},
	}
	assert.NoError(t, valid.Validate())

	missingCandidate := &CVData{Profile: "x"}
	err := missingCandidate.Validate()
	require.Error(t, err)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "Candidate", verrs[0].Field())

	badContact := &CVData{
		Candidate: &Candidate{
			Name:    "Jane",
			Contact: []ContactItem{{Text: "no icon"}},
		},
	}
	assert.Error(t, badContact.Validate())

	unnamedCompany := &CVData{
		Candidate:  &Candidate{Name: "Jane", Contact: []ContactItem{}},
		Experience: &Experience{Companies: []Company{{TotalDuration: "2y"}}},
	}
	assert.Error(t, unnamedCompany.Validate())
}

func TestCVData_ReferencesText(t *testing.T) {
	cv := &CVData{}
	assert.Equal(t, DefaultReferences, cv.ReferencesText())

	custom := "Ask me"
	cv.References = &custom
	assert.Equal(t, "Ask me", cv.ReferencesText())
}

func TestCVData_HasSection(t *testing.T) {
	cv := &CVData{
		Candidate:      &Candidate{Name: "Jane"},
		Profile:        "hello",
		AdditionalInfo: []string{"Driving licence"},
	}
	assert.True(t, cv.HasSection("candidate"))
	assert.True(t, cv.HasSection("profile"))
	assert.True(t, cv.HasSection("additional_info"))
	assert.False(t, cv.HasSection("experience"))
	assert.False(t, cv.HasSection("references"))
	assert.False(t, cv.HasSection("unknown"))
}

func TestProject_DisplayTitle(t *testing.T) {
	assert.Equal(t, "T", Project{Title: "T", Name: "N"}.DisplayTitle())
	assert.Equal(t, "N", Project{Name: "N"}.DisplayTitle())
}
