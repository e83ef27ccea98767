package cvdata

import (
	"github.com/jonathan/cv-generator/internal/types"
)

// Merge folds src into dst. Objects are merged recursively, lists are
// appended and scalar values set in src replace those of dst. Skill
// categories present in both documents get their skills appended; new
// categories are added after the existing ones.
func Merge(dst, src *types.CVData) {
	if src == nil {
		return
	}

	dst.Candidate = mergeCandidate(dst.Candidate, src.Candidate)
	if src.Profile != "" {
		dst.Profile = src.Profile
	}

	for _, category := range src.TechnicalSkills {
		dst.TechnicalSkills = appendSkills(dst.TechnicalSkills, category)
	}

	if src.Education != nil {
		if dst.Education == nil {
			dst.Education = &types.Education{}
		}
		dst.Education.Items = append(dst.Education.Items, src.Education.Items...)
	}
	if src.Experience != nil {
		if dst.Experience == nil {
			dst.Experience = &types.Experience{}
		}
		dst.Experience.Companies = append(dst.Experience.Companies, src.Experience.Companies...)
	}

	dst.Projects = append(dst.Projects, src.Projects...)
	dst.AdditionalInfo = append(dst.AdditionalInfo, src.AdditionalInfo...)
	if src.References != nil {
		refs := *src.References
		dst.References = &refs
	}

	dst.Theme = MergeMaps(dst.Theme, src.Theme)
	dst.Layout = MergeMaps(dst.Layout, src.Layout)
}

func mergeCandidate(dst, src *types.Candidate) *types.Candidate {
	if src == nil {
		return dst
	}
	if dst == nil {
		dst = &types.Candidate{}
	}
	if src.Name != "" {
		dst.Name = src.Name
	}
	if src.Title != "" {
		dst.Title = src.Title
	}
	dst.Contact = append(dst.Contact, src.Contact...)
	return dst
}

func appendSkills(skills types.TechnicalSkills, category types.SkillCategory) types.TechnicalSkills {
	for i := range skills {
		if skills[i].Name == category.Name {
			skills[i].Skills = append(skills[i].Skills, category.Skills...)
			return skills
		}
	}
	category.Skills = append([]string(nil), category.Skills...)
	return append(skills, category)
}

// MergeMaps deep-merges src into dst and returns dst. Nested maps are merged,
// slices are appended and any other value in src replaces the one in dst.
func MergeMaps(dst, src map[string]any) map[string]any {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]any, len(src))
	}

	for key, value := range src {
		existing, ok := dst[key]
		if !ok {
			dst[key] = copyValue(value)
			continue
		}
		switch current := existing.(type) {
		case map[string]any:
			if incoming, isMap := value.(map[string]any); isMap {
				dst[key] = MergeMaps(current, incoming)
				continue
			}
		case []any:
			if incoming, isList := value.([]any); isList {
				dst[key] = append(current, copyValue(incoming).([]any)...)
				continue
			}
		}
		dst[key] = copyValue(value)
	}
	return dst
}

func copyValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = copyValue(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = copyValue(item)
		}
		return out
	default:
		return v
	}
}
