package caster

import (
	"bytes"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/samber/lo"

	"schema-typer/internal/synth"
	"schema-typer/primitive"
)

// Instance holds one value per field of a TypeDefinition. Struct fields
// hold *Instance values, sequence fields []any.
type Instance struct {
	def    *synth.TypeDefinition
	values []any
	index  map[string]int
}

// NewInstance creates an instance with every field at its zero value.
func NewInstance(def *synth.TypeDefinition) *Instance {
	inst := &Instance{
		def:    def,
		values: make([]any, len(def.Fields)),
		index:  make(map[string]int, len(def.Fields)),
	}

	for i, f := range def.Fields {
		inst.values[i] = Zero(f.Type)
		inst.index[f.Name] = i
	}

	return inst
}

// Type returns the definition the instance was created from.
func (i *Instance) Type() *synth.TypeDefinition {
	return i.def
}

// Get returns the value of the named field.
func (i *Instance) Get(name string) (any, bool) {
	idx, ok := i.index[name]
	if !ok {
		return nil, false
	}

	return i.values[idx], true
}

// Set assigns a field without coercion.
func (i *Instance) Set(name string, value any) error {
	idx, ok := i.index[name]
	if !ok {
		return fmt.Errorf("%w: %s.%s", ErrUnknownField, i.def.Name, name)
	}

	i.values[idx] = value

	return nil
}

// Lookup follows a path of field names through nested instances.
func (i *Instance) Lookup(path ...string) (any, bool) {
	var current any = i

	for _, name := range path {
		inst, ok := current.(*Instance)
		if !ok || inst == nil {
			return nil, false
		}

		if current, ok = inst.Get(name); !ok {
			return nil, false
		}
	}

	return current, true
}

// Fields returns name and value of every field in declaration order.
func (i *Instance) Fields() []lo.Entry[string, any] {
	return lo.Map(i.def.Fields, func(f synth.Field, idx int) lo.Entry[string, any] {
		return lo.Entry[string, any]{Key: f.Name, Value: i.values[idx]}
	})
}

// MarshalJSON writes the fields as a JSON object in declaration order.
// Durations are written in their textual form.
func (i *Instance) MarshalJSON() ([]byte, error) {
	if i == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer

	buf.WriteByte('{')

	for idx, f := range i.def.Fields {
		if idx > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}

		data, err := json.Marshal(jsonValue(i.values[idx]))
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(data)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

func (i *Instance) String() string {
	data, err := i.MarshalJSON()
	if err != nil {
		return "<" + err.Error() + ">"
	}

	return string(data)
}

func jsonValue(v any) any {
	switch t := v.(type) {
	case time.Duration:
		return primitive.FormatText(t)
	case []any:
		return lo.Map(t, func(item any, _ int) any {
			return jsonValue(item)
		})
	default:
		return v
	}
}
