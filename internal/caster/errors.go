package caster

import (
	"errors"
	"fmt"

	"schema-typer/internal/synth"
)

var (
	// ErrCoercion is matched by every CoercionError.
	ErrCoercion = errors.New("value coercion failed")
	// ErrUnknownField is returned by Instance.Set for undeclared fields.
	ErrUnknownField = errors.New("unknown field")
	// ErrMaxDepth is returned when nesting exceeds the configured depth.
	ErrMaxDepth = errors.New("maximum nesting depth exceeded")
	// ErrMalformedXML wraps XML parse failures.
	ErrMalformedXML = errors.New("malformed xml")
)

// CoercionError reports text that does not parse as the target type.
type CoercionError struct {
	Path  string // dotted field path, empty for a direct Coerce call
	Value any
	Type  synth.Type
	Err   error
}

func (e *CoercionError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("cannot coerce %#v to %s: %v", e.Value, e.Type, e.Err)
	}

	return fmt.Sprintf("field %s: cannot coerce %#v to %s: %v", e.Path, e.Value, e.Type, e.Err)
}

func (e *CoercionError) Unwrap() []error {
	return []error{ErrCoercion, e.Err}
}
