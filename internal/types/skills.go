//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SkillCategory is a named group of skills.
type SkillCategory struct {
	Name   string
	Skills []string
}

// TechnicalSkills is an ordered list of skill categories.
// It is encoded as a JSON object whose key order is preserved.
type TechnicalSkills []SkillCategory

// UnmarshalJSON decodes a JSON object keeping the key order of the document.
func (ts *TechnicalSkills) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*ts = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("technical_skills must be an object, got %v", tok)
	}

	var result TechnicalSkills
	index := make(map[string]int)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("technical_skills: unexpected key %v", keyTok)
		}

		var skills []string
		if err := dec.Decode(&skills); err != nil {
			return fmt.Errorf("technical_skills[%q]: %w", key, err)
		}

		// Duplicate keys: last one wins, position of the first is kept
		if i, seen := index[key]; seen {
			result[i].Skills = skills
			continue
		}
		index[key] = len(result)
		result = append(result, SkillCategory{Name: key, Skills: skills})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*ts = result
	return nil
}

// MarshalJSON encodes the categories as a JSON object in order.
func (ts TechnicalSkills) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cat := range ts {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(cat.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		skills := cat.Skills
		if skills == nil {
			skills = []string{}
		}
		val, err := json.Marshal(skills)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Count returns the total number of skills across all categories.
func (ts TechnicalSkills) Count() int {
	total := 0
	for _, cat := range ts {
		total += len(cat.Skills)
	}
	return total
}
