package caster

import (
	"fmt"
	"log/slog"
	"reflect"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"schema-typer/internal/diagnostic"
	"schema-typer/internal/object"
	"schema-typer/internal/synth"
	"schema-typer/primitive"
)

// DefaultMaxDepth bounds the nesting materialization descends into.
const DefaultMaxDepth = 64

// Engine coerces dynamic values into the semantic types of a Registry and
// materializes instances of its definitions. An Engine keeps the
// diagnostics of its last materialization and must not be shared between
// goroutines; the registry may be.
type Engine struct {
	registry   *synth.Registry
	logger     *slog.Logger
	maxDepth   int
	categories primitive.CategoryEnum
	diags      diagnostic.Diagnostics
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger materialization steps are reported to.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMaxDepth overrides DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(e *Engine) {
		e.maxDepth = depth
	}
}

// WithCategories restricts primitive conversions to the given categories.
// Pairs outside them are not converted and fall through to the remaining
// rules. The default is primitive.CategoryAll.
func WithCategories(categories primitive.CategoryEnum) Option {
	return func(e *Engine) {
		e.categories = categories
	}
}

// New creates an Engine resolving struct references in reg.
func New(reg *synth.Registry, opts ...Option) *Engine {
	e := &Engine{
		registry:   reg,
		logger:     slog.Default(),
		maxDepth:   DefaultMaxDepth,
		categories: primitive.CategoryAll,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Diagnostics returns the findings of the last FromObject or FromXML call.
func (e *Engine) Diagnostics() diagnostic.Diagnostics {
	return e.diags
}

// Zero returns the zero value of t, or nil when t has an absent value:
// nullable, opaque, struct, sequence and byte types.
func Zero(t synth.Type) any {
	if t.Nullable || t.Shape != synth.ShapePrimitive {
		return nil
	}

	return t.Kind.Zero()
}

// Coerce converts v into t. Rules apply in order:
//
//  1. nil becomes Zero(t);
//  2. a value already of type t is returned unchanged;
//  3. nullable types are unwrapped;
//  4. numbers convert to numbers with Go conversion semantics;
//  5. text parses into numbers, bools, bytes, identifiers, timestamps,
//     durations and enum members, failing with a *CoercionError;
//  6. anything else renders into text targets;
//  7. sequences convert element by element;
//  8. objects materialize into struct targets;
//  9. otherwise v is returned unchanged.
func (e *Engine) Coerce(v any, t synth.Type) (any, error) {
	return e.coerce(v, t, nil, 0)
}

func (e *Engine) coerce(v any, t synth.Type, path []string, depth int) (any, error) {
	// rule 1
	if v == nil {
		return Zero(t), nil
	}

	if n, ok := v.(json.Number); ok {
		v = number(n, t)
	}

	// rule 2
	if satisfies(v, t) {
		return v, nil
	}

	// rule 3
	if t.Nullable {
		return e.coerce(v, t.NonNull(), path, depth)
	}

	from := primitive.FromValue(v)

	if t.Shape == synth.ShapePrimitive {
		to := t.Kind

		// rule 4
		if from.IsNumber() && to.IsNumber() && primitive.Allowed(from, to, e.categories) {
			if converted, ok := primitive.ConvertNumber(v, to); ok {
				return converted, nil
			}
		}

		// rule 5
		if text, ok := v.(string); ok && to.IsTextParsable() && primitive.Allowed(primitive.KindString, to, e.categories) {
			return e.parse(text, t, path)
		}

		// rule 6
		if to == primitive.KindString && (from == 0 || primitive.Allowed(from, to, e.categories)) {
			return primitive.FormatText(v), nil
		}
	}

	// rule 7
	if t.IsSequence() && isSequence(v) {
		return e.sequence(v, t, path, depth)
	}

	// rule 8
	if t.Shape == synth.ShapeStruct && object.KindOf(v) == object.ValueObject {
		def, err := e.definition(t.Ref)
		if err != nil {
			return nil, err
		}

		return e.fromObject(v, def, path, depth+1)
	}

	// rule 9
	return v, nil
}

// number turns a JSON number into int64 or float64 so numeric targets take
// rule 4. Text and decimal targets keep the literal; so do numbers float64
// cannot hold.
func number(n json.Number, t synth.Type) any {
	t = t.NonNull()
	if t.Shape == synth.ShapePrimitive && (t.Kind == primitive.KindString || t.Kind == primitive.KindDecimal) {
		return n.String()
	}

	if i, err := n.Int64(); err == nil {
		return i
	}

	if f, err := n.Float64(); err == nil {
		return f
	}

	return n.String()
}

// parse applies the textual grammar of t. Empty text yields the zero value.
func (e *Engine) parse(text string, t synth.Type, path []string) (any, error) {
	parsed, err := primitive.ParseText(t.Kind, text)
	if err != nil {
		return nil, &CoercionError{Path: joinPath(path), Value: text, Type: t, Err: err}
	}

	if parsed == nil {
		return Zero(t), nil
	}

	if t.Kind == primitive.KindPrimitiveEnum && !t.HasMember(text) {
		return nil, &CoercionError{
			Path:  joinPath(path),
			Value: text,
			Type:  t,
			Err:   fmt.Errorf("%w: not one of %s", primitive.ErrParse, strings.Join(t.Enum, ", ")),
		}
	}

	return parsed, nil
}

func (e *Engine) sequence(v any, t synth.Type, path []string, depth int) (any, error) {
	if depth >= e.maxDepth {
		return nil, fmt.Errorf("%w at %s", ErrMaxDepth, joinPath(path))
	}

	rv := reflect.ValueOf(v)
	elem := synth.Any()
	if t.Elem != nil {
		elem = *t.Elem
	}

	convert := func(i int) (any, error) {
		return e.coerce(rv.Index(i).Interface(), elem, append(path[:len(path):len(path)], strconv.Itoa(i)), depth+1)
	}

	if t.Shape == synth.ShapeArray {
		items := make([]any, rv.Len())
		for i := range items {
			item, err := convert(i)
			if err != nil {
				return nil, err
			}
			items[i] = item
		}

		return items, nil
	}

	var items []any
	for i := 0; i < rv.Len(); i++ {
		item, err := convert(i)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if items == nil {
		items = []any{}
	}

	return items, nil
}

func (e *Engine) definition(name string) (*synth.TypeDefinition, error) {
	def, ok := e.registry.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", synth.ErrUnknownType, name)
	}

	return def, nil
}

// satisfies reports whether v already carries the Go representation of t.
func satisfies(v any, t synth.Type) bool {
	switch t.Shape {
	case synth.ShapeInterface:
		return true
	case synth.ShapePrimitive:
		return t.Kind != primitive.KindPrimitiveEnum && primitive.FromValue(v) == t.Kind
	case synth.ShapeStruct:
		inst, ok := v.(*Instance)
		return ok && inst.Type().Name == t.Ref
	default:
		return false
	}
}

func isSequence(v any) bool {
	if _, ok := v.([]byte); ok {
		return false
	}

	switch reflect.TypeOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return true
	default:
		return false
	}
}

func joinPath(path []string) string {
	return strings.Join(path, ".")
}
