package validation

import (
	"fmt"
	"strings"

	"github.com/jonathan/cv-generator/internal/types"
)

// TextField is a piece of free text in the CV data and where it lives.
type TextField struct {
	// Path is the JSON location, e.g. experience.companies[0].roles[1].responsibilities[2]
	Path string
	Text string
}

// Section is the top-level section of the field.
func (f TextField) Section() string {
	section, _, _ := strings.Cut(f.Path, ".")
	section, _, _ = strings.Cut(section, "[")
	return section
}

// CollectText lists every non-empty free-text field of cv in document order.
func CollectText(cv *types.CVData) []TextField {
	if cv == nil {
		return nil
	}
	var fields []TextField
	add := func(path, text string) {
		if strings.TrimSpace(text) != "" {
			fields = append(fields, TextField{Path: path, Text: text})
		}
	}

	if c := cv.Candidate; c != nil {
		add("candidate.name", c.Name)
		add("candidate.title", c.Title)
	}
	add("profile", cv.Profile)

	for _, cat := range cv.TechnicalSkills {
		for i, skill := range cat.Skills {
			add(fmt.Sprintf("technical_skills.%s[%d]", cat.Name, i), skill)
		}
	}

	for i, item := range cv.EducationItems() {
		add(fmt.Sprintf("education.items[%d].degree", i), item.Degree)
		add(fmt.Sprintf("education.items[%d].institution", i), item.Institution)
	}

	for i, company := range cv.Companies() {
		prefix := fmt.Sprintf("experience.companies[%d]", i)
		add(prefix+".name", company.Name)
		for j, role := range company.Roles {
			rolePrefix := fmt.Sprintf("%s.roles[%d]", prefix, j)
			add(rolePrefix+".title", role.Title)
			for k, resp := range role.Responsibilities {
				add(fmt.Sprintf("%s.responsibilities[%d]", rolePrefix, k), resp)
			}
		}
	}

	for i, p := range cv.Projects {
		add(fmt.Sprintf("projects[%d].title", i), p.DisplayTitle())
		add(fmt.Sprintf("projects[%d].description", i), p.Description)
	}

	for i, info := range cv.AdditionalInfo {
		add(fmt.Sprintf("additional_info[%d]", i), info)
	}
	if cv.References != nil {
		add("references", *cv.References)
	}
	return fields
}

func strPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}
