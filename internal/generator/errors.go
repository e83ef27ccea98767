// Package generator runs the CV generation pipeline: load the data, derive
// the theme and layout, render a template and write the PDF.
package generator

import "fmt"

// GenerateError reports the pipeline step that failed.
type GenerateError struct {
	Step    string
	Message string
	Cause   error
}

func (e *GenerateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Step, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s failed: %s", e.Step, e.Message)
}

func (e *GenerateError) Unwrap() error {
	return e.Cause
}
