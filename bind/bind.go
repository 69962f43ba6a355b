// Package bind copies materialized instances into ordinary Go values, such
// as the structs generated from the same schema.
//
// Destinations are dispatched by shape:
//   - interfaces receive the instance value as is
//   - primitives are converted within the allowed conversion categories
//   - slices and arrays are bound element by element
//   - string keyed maps receive one entry per instance field
//   - structs receive instance fields matched by bind tag, json tag, exact
//     name and case-insensitive name, in that order
//
// Pointers are allocated as needed; nil instance values leave nil pointers
// and zero values behind. User caster functions take precedence over the
// built in strategies for the exact source and destination types they
// declare.
package bind

import (
	"fmt"
	"reflect"
	"sync"

	"schema-typer/internal/caster"
	"schema-typer/primitive"
)

type casterKey struct{ Src, Dst reflect.Type }

// Binder binds instances into Go values. A Binder is safe for concurrent
// use once created.
type Binder struct {
	allowed primitive.CategoryEnum
	strict  bool
	casters map[casterKey]Caster

	mu    sync.Mutex
	plans map[StructPair]*structPlan
}

// Option configures a Binder.
type Option func(*Binder) error

// WithCategories limits primitive conversions to the given categories.
// The default is primitive.CategoryAll.
func WithCategories(allowed primitive.CategoryEnum) Option {
	return func(b *Binder) error {
		b.allowed = allowed
		return nil
	}
}

// WithStrict makes instance fields without a destination field an error.
func WithStrict() Option {
	return func(b *Binder) error {
		b.strict = true
		return nil
	}
}

// WithCaster registers a conversion function, see ParseCaster.
func WithCaster(fn any) Option {
	return func(b *Binder) error {
		c, err := ParseCaster(fn)
		if err != nil {
			return err
		}

		b.casters[casterKey{c.Src, c.Dst}] = c

		return nil
	}
}

// New creates a Binder.
func New(opts ...Option) (*Binder, error) {
	b := &Binder{
		allowed: primitive.CategoryAll,
		casters: make(map[casterKey]Caster),
	}

	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}

	return b, nil
}

var defaultBinder = &Binder{
	allowed: primitive.CategoryAll,
	casters: map[casterKey]Caster{},
}

// Bind binds inst into dst with the default Binder.
func Bind(inst *caster.Instance, dst any) error {
	return defaultBinder.Bind(inst, dst)
}

// Bind stores inst into the value dst points to.
func (b *Binder) Bind(inst *caster.Instance, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("%w: got %T", ErrNotAPointer, dst)
	}

	if inst == nil {
		rv.Elem().SetZero()
		return nil
	}

	return b.value(inst, rv.Elem(), "")
}

func (b *Binder) value(src any, dst reflect.Value, path string) error {
	if src == nil {
		dst.SetZero()
		return nil
	}

	srcType := reflect.TypeOf(src)

	if c, ok := b.casters[casterKey{srcType, dst.Type()}]; ok {
		return b.call(c, src, dst, path)
	}

	if dst.Kind() == reflect.Ptr {
		if dst.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
		}

		return b.value(src, dst.Elem(), path)
	}

	if srcType.AssignableTo(dst.Type()) {
		dst.Set(reflect.ValueOf(src))
		return nil
	}

	fail := func(err error) error {
		return &BindError{Path: path, Src: srcType, Dst: dst.Type(), Err: err}
	}

	_, srcBase := ptrDepthAndBase(srcType)

	switch Dispatch(srcBase, dst.Type()) {
	case DispatcherPrimitive:
		if err := b.scalar(src, dst); err != nil {
			return fail(err)
		}

		return nil

	case DispatcherSlice:
		return b.slice(src, dst, path, fail)

	case DispatcherMap:
		return b.mapping(src.(*caster.Instance), dst, path)

	case DispatcherStruct:
		return b.structure(src.(*caster.Instance), dst, path)

	default:
		return fail(ErrUnsupported)
	}
}

func (b *Binder) call(c Caster, src any, dst reflect.Value, path string) error {
	out, ok, err := c.Call(reflect.ValueOf(src))
	if err != nil {
		return &BindError{Path: path, Src: c.Src, Dst: c.Dst, Err: fmt.Errorf("%s: %w", c.FullName(), err)}
	}

	if !ok {
		dst.SetZero()
		return nil
	}

	dst.Set(out)

	return nil
}
