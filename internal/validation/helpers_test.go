package validation

import "github.com/jonathan/cv-generator/internal/types"

func testCV(responsibilities ...string) *types.CVData {
	refs := "Available on request"
	return &types.CVData{
		Candidate: &types.Candidate{
			Name:    "Jane Doe",
			Title:   "Platform Engineer",
			Contact: []types.ContactItem{{Icon: "f0e0", Text: "jane@example.com"}},
		},
		Profile: "Engineer focused on reliable distributed systems.",
		TechnicalSkills: types.TechnicalSkills{
			{Name: "Languages", Skills: []string{"Go", "Python"}},
		},
		Education: &types.Education{Items: []types.EducationItem{
			{Institution: "State University", Degree: "BSc Computer Science"},
		}},
		Experience: &types.Experience{Companies: []types.Company{{
			Name:      "Acme",
			StartDate: "2020",
			Roles: []types.Role{{
				Title:            "Senior Engineer",
				Responsibilities: responsibilities,
			}},
		}}},
		Projects:       []types.Project{{Title: "Scheduler", Description: "A cron replacement."}},
		AdditionalInfo: []string{"Fluent in English and Spanish"},
		References:     &refs,
	}
}
