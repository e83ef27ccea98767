package cvdata

import (
	"github.com/jonathan/cv-generator/internal/types"
)

// Limits applied by Preview
const (
	PreviewProfileChars     = 200
	PreviewSkillsPerGroup   = 3
	PreviewResponsibilities = 2
)

// Preview returns a reduced copy of cv: a truncated profile, the first
// skills of each category, the most recent company with its first role and
// the first education item. Theme and layout overrides are kept.
func Preview(cv *types.CVData) (*types.CVData, error) {
	full, err := Clone(cv)
	if err != nil {
		return nil, err
	}

	preview := &types.CVData{
		Candidate: full.Candidate,
		Profile:   truncateRunes(full.Profile, PreviewProfileChars),
		Theme:     full.Theme,
		Layout:    full.Layout,
	}

	for _, category := range full.TechnicalSkills {
		if len(category.Skills) > PreviewSkillsPerGroup {
			category.Skills = category.Skills[:PreviewSkillsPerGroup]
		}
		preview.TechnicalSkills = append(preview.TechnicalSkills, category)
	}

	if full.Experience != nil {
		preview.Experience = &types.Experience{Companies: []types.Company{}}
		if companies := full.Experience.Companies; len(companies) > 0 {
			first := companies[0]
			if len(first.Roles) > 1 {
				first.Roles = first.Roles[:1]
			}
			for i := range first.Roles {
				if len(first.Roles[i].Responsibilities) > PreviewResponsibilities {
					first.Roles[i].Responsibilities = first.Roles[i].Responsibilities[:PreviewResponsibilities]
				}
			}
			preview.Experience.Companies = append(preview.Experience.Companies, first)
		}
	}

	if full.Education != nil {
		preview.Education = &types.Education{Items: []types.EducationItem{}}
		if len(full.Education.Items) > 0 {
			preview.Education.Items = full.Education.Items[:1]
		}
	}

	return preview, nil
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
