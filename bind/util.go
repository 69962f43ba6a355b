package bind

import (
	"reflect"
)

// ptrDepthAndBase returns the pointer depth and the final base type.
func ptrDepthAndBase(t reflect.Type) (depth int, base reflect.Type) {
	depth, base = 0, t
	for base != nil && base.Kind() == reflect.Ptr {
		depth++
		base = base.Elem()
	}

	return
}

func isError(t reflect.Type) bool {
	if t == nil {
		return false
	}

	return t.Implements(reflect.TypeFor[error]())
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}

	return path + "." + name
}
