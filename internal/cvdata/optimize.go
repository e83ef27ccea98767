package cvdata

import (
	"encoding/json"
	"html"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jonathan/cv-generator/internal/types"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

// DateLayout is the normalised form of startDate and endDate values
const DateLayout = "2006-01-02"

// Expected section sizes of a full CV, used to normalise the density score
const (
	expectedProfileChars     = 1000
	expectedCompanies        = 4
	expectedRoles            = 6
	expectedResponsibilities = 15
	expectedEducation        = 3
	expectedProjects         = 4
)

// ContentDensity scores how much content cv holds, from 0 (sparse) to 1 (dense)
func ContentDensity(cv *types.CVData) float64 {
	companies := cv.Companies()
	roles, responsibilities := countRoles(companies)

	score := float64(utf8.RuneCountInString(cv.Profile))*0.1/expectedProfileChars +
		float64(len(companies))*0.3/expectedCompanies +
		float64(roles)*0.2/expectedRoles +
		float64(responsibilities)*0.2/expectedResponsibilities +
		float64(len(cv.EducationItems()))*0.1/expectedEducation +
		float64(len(cv.Projects))*0.1/expectedProjects

	switch {
	case score < 0:
		return 0
	case score > 1:
		return 1
	default:
		return score
	}
}

func countRoles(companies []types.Company) (roles, responsibilities int) {
	for _, company := range companies {
		roles += len(company.Roles)
		for _, role := range company.Roles {
			responsibilities += len(role.Responsibilities)
		}
	}
	return roles, responsibilities
}

// Stats summarises the content of a CV
type Stats struct {
	SectionCount              int     `json:"section_count"`
	ProfileLength             int     `json:"profile_length"`
	CompaniesCount            int     `json:"companies_count"`
	RolesCount                int     `json:"roles_count"`
	EducationCount            int     `json:"education_count"`
	ProjectsCount             int     `json:"projects_count"`
	TechnicalSkillsCategories int     `json:"technical_skills_categories"`
	TotalSkills               int     `json:"total_skills"`
	TotalResponsibilities     int     `json:"total_responsibilities"`
	ContentDensity            float64 `json:"content_density"`
}

// ComputeStats counts sections and entries of cv
func ComputeStats(cv *types.CVData) Stats {
	companies := cv.Companies()
	roles, responsibilities := countRoles(companies)

	stats := Stats{
		ProfileLength:             utf8.RuneCountInString(cv.Profile),
		CompaniesCount:            len(companies),
		RolesCount:                roles,
		EducationCount:            len(cv.EducationItems()),
		ProjectsCount:             len(cv.Projects),
		TechnicalSkillsCategories: len(cv.TechnicalSkills),
		TotalSkills:               cv.TechnicalSkills.Count(),
		TotalResponsibilities:     responsibilities,
		ContentDensity:            ContentDensity(cv),
	}
	for _, section := range types.SectionNames {
		if cv.HasSection(section) {
			stats.SectionCount++
		}
	}
	return stats
}

// Clone returns a deep copy of cv
func Clone(cv *types.CVData) (*types.CVData, error) {
	content, err := json.Marshal(cv)
	if err != nil {
		return nil, &ParseError{Message: "failed to copy CV data", Cause: err}
	}
	return Parse(content)
}

// Optimize returns a copy of cv prepared for rendering: dates are
// normalised, markup is stripped from free text and duplicate skills are
// dropped. Text is never truncated.
func Optimize(cv *types.CVData, logger *zap.Logger) (*types.CVData, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	out, err := Clone(cv)
	if err != nil {
		return nil, err
	}

	NormalizeDates(out, logger)
	StripMarkup(out)
	NormalizeSkills(out)

	logger.Debug("optimized CV content",
		zap.String("candidate", out.CandidateName()),
		zap.Int("companies", len(out.Companies())))
	return out, nil
}

// NormalizeDates rewrites parseable dates in DateLayout and logs the rest
func NormalizeDates(cv *types.CVData, logger *zap.Logger) {
	if cv.Education != nil {
		for i := range cv.Education.Items {
			item := &cv.Education.Items[i]
			item.StartDate = normalizeDate(item.StartDate, "education", logger)
			item.EndDate = normalizeDate(item.EndDate, "education", logger)
		}
	}
	if cv.Experience != nil {
		for i := range cv.Experience.Companies {
			company := &cv.Experience.Companies[i]
			company.StartDate = normalizeDate(company.StartDate, "experience", logger)
			company.EndDate = normalizeDate(company.EndDate, "experience", logger)
			for j := range company.Roles {
				role := &company.Roles[j]
				role.StartDate = normalizeDate(role.StartDate, "experience", logger)
				role.EndDate = normalizeDate(role.EndDate, "experience", logger)
			}
		}
	}
}

func normalizeDate(value, section string, logger *zap.Logger) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return value
	}
	parsed, err := time.Parse(DateLayout, trimmed)
	if err != nil {
		logger.Warn("could not parse date",
			zap.String("section", section),
			zap.String("value", value))
		return value
	}
	return parsed.Format(DateLayout)
}

var markupPolicy = bluemonday.StrictPolicy()

// StripText removes HTML markup from s, keeping its text
func StripText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	return html.UnescapeString(markupPolicy.Sanitize(s))
}

// StripMarkup removes HTML markup from every free-text field of cv
func StripMarkup(cv *types.CVData) {
	cv.Profile = StripText(cv.Profile)

	if cv.Candidate != nil {
		cv.Candidate.Name = StripText(cv.Candidate.Name)
		cv.Candidate.Title = StripText(cv.Candidate.Title)
		for i := range cv.Candidate.Contact {
			cv.Candidate.Contact[i].Text = StripText(cv.Candidate.Contact[i].Text)
		}
	}

	for i := range cv.TechnicalSkills {
		stripAll(cv.TechnicalSkills[i].Skills)
	}

	if cv.Education != nil {
		for i := range cv.Education.Items {
			item := &cv.Education.Items[i]
			item.Institution = StripText(item.Institution)
			item.Degree = StripText(item.Degree)
		}
	}

	if cv.Experience != nil {
		for i := range cv.Experience.Companies {
			company := &cv.Experience.Companies[i]
			company.Name = StripText(company.Name)
			for j := range company.Roles {
				company.Roles[j].Title = StripText(company.Roles[j].Title)
				stripAll(company.Roles[j].Responsibilities)
			}
		}
	}

	for i := range cv.Projects {
		project := &cv.Projects[i]
		project.Title = StripText(project.Title)
		project.Name = StripText(project.Name)
		project.Description = StripText(project.Description)
		stripAll(project.Technologies)
	}

	stripAll(cv.AdditionalInfo)
	if cv.References != nil {
		refs := StripText(*cv.References)
		cv.References = &refs
	}
}

func stripAll(values []string) {
	for i, v := range values {
		values[i] = StripText(v)
	}
}

// NormalizeSkills trims skill names and drops empty or duplicate entries
// within each category, keeping the first occurrence
func NormalizeSkills(cv *types.CVData) {
	for i := range cv.TechnicalSkills {
		category := &cv.TechnicalSkills[i]
		normalized := make([]string, 0, len(category.Skills))
		seen := make(map[string]struct{})

		for _, skill := range category.Skills {
			skill = strings.TrimSpace(skill)
			if skill == "" {
				continue
			}
			key := strings.ToLower(skill)
			if _, exists := seen[key]; !exists {
				normalized = append(normalized, skill)
				seen[key] = struct{}{}
			}
		}

		category.Skills = normalized
	}
}
