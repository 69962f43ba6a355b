// Package object implements the generic, schema shaped runtime object: an
// ordered, open set of named values that is built from a schema element and
// populated from instance documents without a synthesized type.
package object

import (
	"bytes"
	"reflect"
	"slices"

	"github.com/goccy/go-json"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ValueKind classifies the values an Object holds.
type ValueKind int

const (
	ValueNull ValueKind = iota
	ValuePrimitive
	ValueObject
	ValueSequence
)

func (k ValueKind) String() string {
	switch k {
	case ValueNull:
		return "null"
	case ValuePrimitive:
		return "primitive"
	case ValueObject:
		return "object"
	case ValueSequence:
		return "sequence"
	default:
		return "unknown"
	}
}

// KindOf classifies a value. Byte slices are primitives.
func KindOf(v any) ValueKind {
	switch t := v.(type) {
	case nil:
		return ValueNull
	case *Object:
		if t == nil {
			return ValueNull
		}
		return ValueObject
	case map[string]any:
		return ValueObject
	case []byte:
		return ValuePrimitive
	}

	switch reflect.TypeOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return ValueSequence
	default:
		return ValuePrimitive
	}
}

// Object is a mutable mapping from field name to value, kept in insertion
// order. Values are primitives, nested *Object values or []any sequences.
// Fields can be added at any time; there is no deletion.
type Object struct {
	fields *orderedmap.OrderedMap[string, any]
}

// New creates an empty object.
func New() *Object {
	return &Object{fields: orderedmap.New[string, any]()}
}

// Set adds the field or overwrites its value, keeping the original position.
func (o *Object) Set(name string, value any) {
	if o.fields == nil {
		o.fields = orderedmap.New[string, any]()
	}

	o.fields.Set(name, value)
}

// Get returns the value of the named field.
func (o *Object) Get(name string) (any, bool) {
	if o == nil || o.fields == nil {
		return nil, false
	}

	return o.fields.Get(name)
}

// Lookup follows a path of field names through nested objects.
func (o *Object) Lookup(path ...string) (any, bool) {
	var current any = o

	for _, name := range path {
		obj, ok := current.(*Object)
		if !ok {
			return nil, false
		}

		if current, ok = obj.Get(name); !ok {
			return nil, false
		}
	}

	return current, true
}

// Has reports whether the field is present.
func (o *Object) Has(name string) bool {
	_, ok := o.Get(name)
	return ok
}

// Len returns the number of fields.
func (o *Object) Len() int {
	if o == nil || o.fields == nil {
		return 0
	}

	return o.fields.Len()
}

// Keys returns field names in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, o.Len())
	o.Range(func(name string, _ any) bool {
		keys = append(keys, name)
		return true
	})

	return keys
}

// Range calls fn for every field in insertion order until fn returns false.
func (o *Object) Range(fn func(name string, value any) bool) {
	if o == nil || o.fields == nil {
		return
	}

	for pair := o.fields.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// Clone returns a deep copy: nested objects, sequences and byte slices are
// copied, primitives are shared by value.
func (o *Object) Clone() *Object {
	if o == nil {
		return nil
	}

	clone := New()
	o.Range(func(name string, value any) bool {
		clone.Set(name, cloneValue(value))
		return true
	})

	return clone
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case *Object:
		return t.Clone()
	case []any:
		items := make([]any, len(t))
		for i, item := range t {
			items[i] = cloneValue(item)
		}
		return items
	case []byte:
		return slices.Clone(t)
	default:
		return v
	}
}

// MarshalJSON writes the fields as a JSON object in insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer

	buf.WriteByte('{')

	var err error

	first := true
	o.Range(func(name string, value any) bool {
		if !first {
			buf.WriteByte(',')
		}
		first = false

		var key, data []byte
		if key, err = json.Marshal(name); err != nil {
			return false
		}
		if data, err = json.Marshal(value); err != nil {
			return false
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(data)

		return true
	})

	if err != nil {
		return nil, err
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// String renders the object as JSON.
func (o *Object) String() string {
	data, err := o.MarshalJSON()
	if err != nil {
		return "<" + err.Error() + ">"
	}

	return string(data)
}
