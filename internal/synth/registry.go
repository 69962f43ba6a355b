package synth

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/samber/lo"
)

var (
	// ErrRegistryFrozen is returned by Define after Freeze.
	ErrRegistryFrozen = errors.New("registry is frozen")
	// ErrDuplicateType is returned when a name is defined twice.
	ErrDuplicateType = errors.New("type already defined")
	// ErrUnknownType is returned for lookups of undefined names.
	ErrUnknownType = errors.New("unknown type")
)

// Field is a named member of a TypeDefinition.
type Field struct {
	Name      string
	Key       string // key in the source schema, empty when unknown
	Type      Type
	Attribute bool // carried by an XML attribute rather than a child element
}

// TypeDefinition is a named record type with fields in declaration order.
type TypeDefinition struct {
	Name   string
	Fields []Field
}

// Field returns the named field.
func (d *TypeDefinition) Field(name string) (Field, bool) {
	return lo.Find(d.Fields, func(f Field) bool {
		return f.Name == name
	})
}

// FieldNames returns field names in declaration order.
func (d *TypeDefinition) FieldNames() []string {
	return lo.Map(d.Fields, func(f Field, _ int) string {
		return f.Name
	})
}

func (d *TypeDefinition) String() string {
	var sb strings.Builder

	sb.WriteString(d.Name)
	sb.WriteString(" {\n")

	for _, f := range d.Fields {
		sb.WriteString("  ")
		sb.WriteString(f.Name)
		sb.WriteByte(' ')
		sb.WriteString(f.Type.String())

		if f.Attribute {
			sb.WriteString(" @attr")
		}

		sb.WriteByte('\n')
	}

	sb.WriteString("}")

	return sb.String()
}

// Registry holds named type definitions in definition order. It is filled
// by a single writer and then frozen; a frozen registry is safe for
// concurrent readers.
type Registry struct {
	mu     sync.RWMutex
	defs   map[string]*TypeDefinition
	order  []string
	frozen bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*TypeDefinition)}
}

// Define adds a definition.
func (r *Registry) Define(def *TypeDefinition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return fmt.Errorf("%w: cannot define %s", ErrRegistryFrozen, def.Name)
	}

	if _, ok := r.defs[def.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateType, def.Name)
	}

	r.defs[def.Name] = def
	r.order = append(r.order, def.Name)

	return nil
}

// Lookup returns the named definition.
func (r *Registry) Lookup(name string) (*TypeDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.defs[name]

	return def, ok
}

// MustLookup returns the named definition and panics if it is missing.
func (r *Registry) MustLookup(name string) *TypeDefinition {
	def, ok := r.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("%v: %s", ErrUnknownType, name))
	}

	return def
}

// Names returns definition names in definition order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.order...)
}

// Definitions returns the definitions in definition order.
func (r *Registry) Definitions() []*TypeDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return lo.Map(r.order, func(name string, _ int) *TypeDefinition {
		return r.defs[name]
	})
}

// Len returns the number of definitions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.order)
}

// Freeze rejects further definitions.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.frozen = true
}

// Frozen reports whether Freeze was called.
func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.frozen
}

// Validate checks that every struct reference names a definition.
func (r *Registry) Validate() error {
	var errs []error

	for _, def := range r.Definitions() {
		for _, f := range def.Fields {
			ref := refOf(f.Type)
			if ref == "" {
				continue
			}

			if _, ok := r.Lookup(ref); !ok {
				errs = append(errs, fmt.Errorf("%w: %s.%s references %s", ErrUnknownType, def.Name, f.Name, ref))
			}
		}
	}

	return errors.Join(errs...)
}

// refOf returns the definition name t refers to, looking through sequences.
func refOf(t Type) string {
	for t.IsSequence() && t.Elem != nil {
		t = *t.Elem
	}

	if t.Shape == ShapeStruct {
		return t.Ref
	}

	return ""
}
