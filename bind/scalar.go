package bind

import (
	"fmt"
	"reflect"

	"schema-typer/primitive"
)

// scalar converts a primitive value into the primitive destination. Named
// destination types receive the converted value of their underlying kind.
func (b *Binder) scalar(src any, dst reflect.Value) error {
	from := primitive.FromValue(src)
	to := kindOf(dst.Type())

	var out any

	switch {
	case from == to:
		out = src

	case from.IsNumber() && to.IsNumber() && primitive.Allowed(from, to, b.allowed):
		v, ok := primitive.ConvertNumber(src, to)
		if !ok {
			return fmt.Errorf("%w: %v has no %s representation", ErrUnsupported, src, to)
		}

		out = v

	case from == primitive.KindString && to.IsTextParsable() && primitive.Allowed(from, to, b.allowed):
		v, err := primitive.ParseText(to, src.(string))
		if err != nil {
			return err
		}

		out = v

	case to == primitive.KindString && primitive.Allowed(from, to, b.allowed):
		out = primitive.FormatText(src)

	default:
		return fmt.Errorf("%w: %s to %s", ErrNotAllowed, from, to)
	}

	if out == nil {
		dst.SetZero()
		return nil
	}

	rv := reflect.ValueOf(out)
	if rv.Type() != dst.Type() {
		rv = rv.Convert(dst.Type())
	}

	dst.Set(rv)

	return nil
}
