// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Document errors.
	ErrEmptyDocument         = errors.New("document is empty")
	ErrDocumentNotRecognized = errors.New("document not recognized as a CNIS extract")
	ErrUnsupportedFormat     = errors.New("unsupported input format")
	ErrTextExtractionFailed  = errors.New("text extraction failed")

	// Storage errors.
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEntry = errors.New("duplicate entry")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// Explain turns known sentinel errors into messages a reviewer can act on.
// Unknown errors are returned unchanged.
func Explain(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrDocumentNotRecognized):
		return NewUserError("the input does not look like a CNIS extract; check that the right file was selected", err)
	case errors.Is(err, ErrEmptyDocument):
		return NewUserError("no text could be read from the input", err)
	case errors.Is(err, ErrUnsupportedFormat):
		return NewUserError("only .pdf and .txt inputs are supported", err)
	case errors.Is(err, ErrNotFound):
		return NewUserError("no stored import matches that id", err)
	default:
		return err
	}
}
