package parsing

import (
	"errors"
	"fmt"
)

// ErrMissingHeader is returned when the ranking table header cannot be located.
var ErrMissingHeader = errors.New("ranking header not found")

// ParseError represents a document-level parse failure.
// Line-level problems never surface as errors; they are recorded on the Audit.
type ParseError struct {
	Document string
	Message  string
	Cause    error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error in %s: %s: %v", e.Document, e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Document, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
