// Package types provides type definitions for structured data used throughout the cv-generator system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// DefaultReferences is used when the CV data has no references entry.
const DefaultReferences = "References available upon request."

// CVData is the complete résumé document loaded from JSON.
type CVData struct {
	Candidate       *Candidate      `json:"candidate" validate:"required"`
	Profile         string          `json:"profile" validate:"required"`
	TechnicalSkills TechnicalSkills `json:"technical_skills,omitempty"`
	Education       *Education      `json:"education,omitempty"`
	Experience      *Experience     `json:"experience,omitempty"`
	Projects        []Project       `json:"projects,omitempty"`
	AdditionalInfo  []string        `json:"additional_info,omitempty"`
	References      *string         `json:"references,omitempty"`
	Theme           map[string]any  `json:"theme,omitempty"`
	Layout          map[string]any  `json:"layout,omitempty"`
}

// Candidate holds the name and contact lines shown in the header.
type Candidate struct {
	Name    string        `json:"name" validate:"required"`
	Title   string        `json:"title,omitempty"`
	Contact []ContactItem `json:"contact" validate:"required,dive"`
}

// ContactItem is one contact line: an icon code and its text.
type ContactItem struct {
	Icon string `json:"icon" validate:"required"`
	Text string `json:"text" validate:"required"`
}

// Education wraps the list of education entries.
type Education struct {
	Items []EducationItem `json:"items"`
}

// EducationItem represents a single degree or course.
type EducationItem struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree,omitempty"`
	Duration    string `json:"duration,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
}

// Experience wraps the list of employers.
type Experience struct {
	Companies []Company `json:"companies" validate:"dive"`
}

// Company is an employer with one or more roles.
type Company struct {
	Name          string `json:"name" validate:"required"`
	TotalDuration string `json:"totalDuration,omitempty"`
	StartDate     string `json:"startDate,omitempty"`
	EndDate       string `json:"endDate,omitempty"`
	IsCurrent     bool   `json:"isCurrent,omitempty"`
	Roles         []Role `json:"roles,omitempty"`
}

// Role is a position held at a company.
type Role struct {
	Title            string   `json:"title"`
	Duration         string   `json:"duration,omitempty"`
	StartDate        string   `json:"startDate,omitempty"`
	EndDate          string   `json:"endDate,omitempty"`
	Responsibilities []string `json:"responsibilities,omitempty"`
}

// Project is an entry of the projects section.
type Project struct {
	Title        string   `json:"title,omitempty"`
	Name         string   `json:"name,omitempty"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	URL          string   `json:"url,omitempty"`
}

// DisplayTitle returns the title, falling back to the name.
func (p Project) DisplayTitle() string {
	if p.Title != "" {
		return p.Title
	}
	return p.Name
}

// Validate runs struct-level validation on the CV data.
func (cv *CVData) Validate() error {
	validate := validator.New()
	return validate.Struct(cv)
}

// CandidateName returns the candidate's name or an empty string.
func (cv *CVData) CandidateName() string {
	if cv.Candidate == nil {
		return ""
	}
	return cv.Candidate.Name
}

// Contacts returns the candidate's contact lines.
func (cv *CVData) Contacts() []ContactItem {
	if cv.Candidate == nil {
		return nil
	}
	return cv.Candidate.Contact
}

// Companies returns the experience companies, or nil.
func (cv *CVData) Companies() []Company {
	if cv.Experience == nil {
		return nil
	}
	return cv.Experience.Companies
}

// EducationItems returns the education entries, or nil.
func (cv *CVData) EducationItems() []EducationItem {
	if cv.Education == nil {
		return nil
	}
	return cv.Education.Items
}

// ReferencesText returns the references text, using DefaultReferences when absent.
func (cv *CVData) ReferencesText() string {
	if cv.References == nil {
		return DefaultReferences
	}
	return *cv.References
}

// HasSection reports whether the named section exists and has content.
func (cv *CVData) HasSection(name string) bool {
	switch name {
	case "candidate":
		return cv.Candidate != nil
	case "profile":
		return cv.Profile != ""
	case "technical_skills":
		return len(cv.TechnicalSkills) > 0
	case "education":
		return len(cv.EducationItems()) > 0
	case "experience":
		return len(cv.Companies()) > 0
	case "projects":
		return len(cv.Projects) > 0
	case "additional_info":
		return len(cv.AdditionalInfo) > 0
	case "references":
		return cv.References != nil && *cv.References != ""
	case "theme":
		return len(cv.Theme) > 0
	case "layout":
		return len(cv.Layout) > 0
	default:
		return false
	}
}

// SectionNames lists every known top-level section in document order.
var SectionNames = []string{
	"candidate",
	"profile",
	"technical_skills",
	"education",
	"experience",
	"additional_info",
	"projects",
	"references",
	"theme",
	"layout",
}
