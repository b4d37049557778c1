package rendering

import "fmt"

// TemplateError indicates the letter could not be rendered to HTML.
type TemplateError struct {
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("letter rendering failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("letter rendering failed: %s", e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}
