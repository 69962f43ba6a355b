package object

import (
	"errors"
	"fmt"
)

var (
	// ErrMaxDepth is returned when nesting exceeds the configured depth.
	ErrMaxDepth = errors.New("maximum nesting depth exceeded")
	// ErrNotAnObject is returned when a document to populate from is not an object.
	ErrNotAnObject = errors.New("document is not an object")
	// ErrMalformedDocument wraps JSON decoding failures.
	ErrMalformedDocument = errors.New("malformed document")
	// ErrPopulationField is matched by every FieldError.
	ErrPopulationField = errors.New("field skipped during population")
	// ErrUnsupportedValue is returned for document values with no runtime representation.
	ErrUnsupportedValue = errors.New("unsupported value")
)

// FieldError reports a field Populate could not convert. It is recorded as a
// diagnostic and the field is skipped; Populate never returns it.
type FieldError struct {
	Path string
	Err  error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: %v", e.Path, e.Err)
}

func (e *FieldError) Unwrap() []error {
	return []error{ErrPopulationField, e.Err}
}
