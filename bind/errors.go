package bind

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrBind is matched by every BindError.
	ErrBind = errors.New("binding failed")
	// ErrNotAPointer is returned when the destination is not a non-nil pointer.
	ErrNotAPointer = errors.New("destination is not a non-nil pointer")
	// ErrUnsupported reports a source and destination pair no strategy handles.
	ErrUnsupported = errors.New("unsupported conversion")
	// ErrNotAllowed reports a primitive conversion outside the allowed categories.
	ErrNotAllowed = errors.New("conversion not allowed")
	// ErrArrayOverflow reports a sequence longer than the destination array.
	ErrArrayOverflow = errors.New("sequence does not fit into array")
	// ErrUnmatchedField is reported in strict mode for instance fields
	// without a destination field.
	ErrUnmatchedField = errors.New("field has no destination")
)

// BindError reports a value that cannot be stored into its destination.
type BindError struct {
	Path string // dotted field path, empty for the root
	Src  reflect.Type
	Dst  reflect.Type
	Err  error
}

func (e *BindError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("cannot bind %v to %v: %v", e.Src, e.Dst, e.Err)
	}

	return fmt.Sprintf("field %s: cannot bind %v to %v: %v", e.Path, e.Src, e.Dst, e.Err)
}

func (e *BindError) Unwrap() []error {
	return []error{ErrBind, e.Err}
}
