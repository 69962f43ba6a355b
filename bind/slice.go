package bind

import (
	"fmt"
	"reflect"
	"strconv"

	"schema-typer/utils"
)

// slice binds a sequence into a slice or array. Arrays longer than the
// sequence keep zero values in their tail.
func (b *Binder) slice(src any, dst reflect.Value, path string, fail func(error) error) error {
	sv := reflect.ValueOf(src)
	n := sv.Len()

	target := dst
	if dst.Kind() == reflect.Array {
		if !utils.IsInRange(0, n, dst.Len()) {
			return fail(fmt.Errorf("%w: %d elements into [%d]", ErrArrayOverflow, n, dst.Len()))
		}

		dst.SetZero()
	} else {
		target = reflect.MakeSlice(dst.Type(), n, n)
	}

	for i := 0; i < n; i++ {
		if err := b.value(sv.Index(i).Interface(), target.Index(i), joinPath(path, strconv.Itoa(i))); err != nil {
			return err
		}
	}

	if dst.Kind() == reflect.Slice {
		dst.Set(target)
	}

	return nil
}
