package pdf

import "fmt"

// RenderError indicates the headless browser failed to produce a PDF.
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("pdf conversion failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("pdf conversion failed: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// MergeError indicates the letter and resume could not be combined.
type MergeError struct {
	Message string
	Cause   error
}

func (e *MergeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("pdf merge failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("pdf merge failed: %s", e.Message)
}

func (e *MergeError) Unwrap() error {
	return e.Cause
}
