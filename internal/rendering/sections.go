package rendering

import (
	"net/url"
	"strings"

	"github.com/jonathan/cv-generator/internal/types"
)

// Section titles shared by the templates.
const (
	titleProfile    = "PROFILE"
	titleSkills     = "TECHNICAL SKILLS"
	titleExperience = "PROFESSIONAL EXPERIENCE"
	titleEducation  = "EDUCATION"
	titleProjects   = "PROJECTS & ACHIEVEMENTS"
	titleMoreInfo   = "MORE DETAILS"
	titleReferences = "REFERENCES"
)

// present marks an open-ended date range.
const present = "Present"

func dateRange(start, end string) string {
	switch {
	case start == "" && end == "":
		return ""
	case end == "":
		return start + " - " + present
	case start == "":
		return end
	default:
		return start + " - " + end
	}
}

// companyHeading is "Name | start - end". The most recent company, listed
// first, and current employers end at "Present". Without a start date the
// total duration is shown instead.
func companyHeading(c types.Company, first bool) string {
	if c.StartDate != "" {
		end := c.EndDate
		if first || c.IsCurrent || end == "" {
			end = present
		}
		return c.Name + " | " + c.StartDate + " - " + end
	}
	if c.TotalDuration != "" {
		return c.Name + " | " + c.TotalDuration
	}
	return c.Name
}

func roleDuration(r types.Role) string {
	if r.Duration != "" {
		return r.Duration
	}
	return dateRange(r.StartDate, r.EndDate)
}

func educationDuration(e types.EducationItem) string {
	if e.Duration != "" {
		return e.Duration
	}
	return dateRange(e.StartDate, e.EndDate)
}

func skillList(c types.SkillCategory) string {
	return strings.Join(c.Skills, ", ")
}

func technologies(p types.Project) string {
	if len(p.Technologies) == 0 {
		return ""
	}
	return "Technologies: " + strings.Join(p.Technologies, ", ")
}

func looksLikeURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.Contains(lower, "://") || strings.HasPrefix(lower, "www.")
}

// shortURL reduces a URL to its scheme and host followed by "/...".
func shortURL(s string) string {
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		if i := strings.Index(s, "/"); i > 0 {
			return s[:i] + "/..."
		}
		return s
	}
	return u.Scheme + "://" + u.Host + "/..."
}
