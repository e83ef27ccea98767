// Package cvdata provides functionality to load, validate and reshape CV data documents.
package cvdata

import "fmt"

// FileReadError represents an error reading a CV data file
type FileReadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *FileReadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("read error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("read error: %s", e.Message)
}

func (e *FileReadError) Unwrap() error {
	return e.Cause
}

// ParseError represents malformed JSON in a CV data document
type ParseError struct {
	Message string
	// Offset is the byte offset of a syntax error, or 0
	Offset int64
	Cause  error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// ValidationError represents a CV data document that does not have the required shape
type ValidationError struct {
	Message string
	Field   string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("validation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// SaveError represents an error writing a CV data file
type SaveError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SaveError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("save error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("save error: %s", e.Message)
}

func (e *SaveError) Unwrap() error {
	return e.Cause
}
