package synth

import (
	"errors"
	"strings"
)

var (
	// ErrCyclicSchema is matched by every CyclicSchemaError.
	ErrCyclicSchema = errors.New("cyclic schema")
	// ErrMaxDepth is returned when nesting exceeds the configured depth.
	ErrMaxDepth = errors.New("maximum nesting depth exceeded")
)

// CyclicSchemaError reports a complex type reappearing in its own
// expansion chain.
type CyclicSchemaError struct {
	Name  string   // type that reappeared
	Chain []string // active expansion chain, outermost first
}

func (e *CyclicSchemaError) Error() string {
	return "cyclic schema: " + strings.Join(append(append([]string(nil), e.Chain...), e.Name), " -> ")
}

func (e *CyclicSchemaError) Unwrap() error {
	return ErrCyclicSchema
}
