package playstore

import (
	"errors"
	"fmt"
)

const extractionMessage = "Parse Error. Your app's play store page doesn't seem to have latest app version info."

// errNoSource is reported when no identifier was given and no Source is set.
var errNoSource = errors.New("no package name given and no application info source configured")

// ExtractionError reports that no inline data block yielded a version.
// Text is the complete response body, kept for offline diagnosis.
type ExtractionError struct {
	Message string
	Text    string

	// Candidates is the number of marker blocks that were tried.
	Candidates int
}

func (e *ExtractionError) Error() string {
	return e.Message
}

func newExtractionError(text string, candidates int) *ExtractionError {
	return &ExtractionError{Message: extractionMessage, Text: text, Candidates: candidates}
}

// ConfigurationError reports that the application identifier could not be
// determined before any request was made.
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("cannot determine application identifier: %v", e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
