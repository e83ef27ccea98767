package cvdata

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/cv-generator/internal/schemas"
	"github.com/jonathan/cv-generator/internal/types"
)

// Read reads the raw bytes of a CV data file
func Read(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		msg := fmt.Sprintf("failed to read file %s", path)
		if errors.Is(err, os.ErrNotExist) {
			msg = fmt.Sprintf("CV data file not found: %s", path)
		}
		return nil, &FileReadError{Path: path, Message: msg, Cause: err}
	}
	return content, nil
}

// Parse decodes a CV data document
func Parse(content []byte) (*types.CVData, error) {
	var cv types.CVData
	if err := json.Unmarshal(content, &cv); err != nil {
		parseErr := &ParseError{Message: "invalid JSON", Cause: err}
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			parseErr.Offset = syntaxErr.Offset
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			parseErr.Message = fmt.Sprintf("field %s has the wrong type", typeErr.Field)
			parseErr.Offset = typeErr.Offset
		}
		return nil, parseErr
	}
	return &cv, nil
}

// Load reads and decodes a CV data file without validating it
func Load(path string) (*types.CVData, error) {
	content, err := Read(path)
	if err != nil {
		return nil, err
	}
	return Parse(content)
}

// LoadValidated reads a CV data file, checks it against the JSON schema,
// decodes it and runs struct validation
func LoadValidated(path string) (*types.CVData, error) {
	content, err := Read(path)
	if err != nil {
		return nil, err
	}
	if !json.Valid(content) {
		// Parse reports the offset of the syntax error
		_, err := Parse(content)
		return nil, err
	}
	if err := ValidateBytes(content); err != nil {
		return nil, err
	}
	cv, err := Parse(content)
	if err != nil {
		return nil, err
	}
	if err := Validate(cv); err != nil {
		return nil, err
	}
	return cv, nil
}

// ValidateBytes checks a raw document against the embedded CV data schema
func ValidateBytes(content []byte) error {
	if err := schemas.ValidateCVBytes(content); err != nil {
		var schemaErr *schemas.ValidationError
		if errors.As(err, &schemaErr) && len(schemaErr.Errors) > 0 {
			first := schemaErr.Errors[0]
			return &ValidationError{
				Message: "schema validation failed",
				Field:   first.Field,
				Cause:   err,
			}
		}
		return &ValidationError{Message: "schema validation failed", Cause: err}
	}
	return nil
}

// Validate checks required sections and the format of contact and
// experience entries
func Validate(cv *types.CVData) error {
	if cv == nil {
		return &ValidationError{Message: "no CV data"}
	}
	err := cv.Validate()
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Message: "invalid CV data", Cause: err}
	}
	first := fieldErrs[0]
	return &ValidationError{
		Message: describeTag(first.Tag()),
		Field:   jsonPath(first.Namespace()),
		Cause:   err,
	}
}

func describeTag(tag string) string {
	switch tag {
	case "required":
		return "required field is missing"
	default:
		return fmt.Sprintf("failed %q check", tag)
	}
}

// jsonPath turns a validator namespace such as
// "CVData.Candidate.Contact[0].Icon" into "candidate.contact[0].icon"
func jsonPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, part := range parts {
		parts[i] = toSnake(part)
	}
	return strings.Join(parts, ".")
}

var fieldNames = map[string]string{
	"TechnicalSkills": "technical_skills",
	"AdditionalInfo":  "additional_info",
	"TotalDuration":   "totalDuration",
	"StartDate":       "startDate",
	"EndDate":         "endDate",
	"IsCurrent":       "isCurrent",
}

func toSnake(part string) string {
	name, index := part, ""
	if i := strings.IndexByte(part, '['); i >= 0 {
		name, index = part[:i], part[i:]
	}
	if mapped, ok := fieldNames[name]; ok {
		return mapped + index
	}
	return strings.ToLower(name) + index
}

// Save writes cv as indented JSON, creating parent directories
func Save(cv *types.CVData, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &SaveError{Path: path, Message: "failed to create directory", Cause: err}
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(cv); err != nil {
		return &SaveError{Path: path, Message: "failed to marshal JSON", Cause: err}
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return &SaveError{Path: path, Message: fmt.Sprintf("failed to write file %s", path), Cause: err}
	}
	return nil
}
