package domain

import "errors"

// Domain errors
var (
	ErrMissingFile       = errors.New("no file uploaded")
	ErrUnsupportedType   = errors.New("unsupported file type")
	ErrFileTooLarge      = errors.New("file too large")
	ErrExtractionFailed  = errors.New("text extraction failed")
	ErrInsufficientText  = errors.New("insufficient text")
	ErrMissingCredential = errors.New("missing upstream credential")
)

// ValidationError represents a validation error with field and message information.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}
