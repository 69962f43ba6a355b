package bind

import (
	"reflect"

	"schema-typer/internal/caster"
	"schema-typer/primitive"
)

type DispatcherEnum int

const (
	DispatcherUnknown DispatcherEnum = iota
	DispatcherPrimitive
	DispatcherInterface
	DispatcherSlice
	DispatcherMap
	DispatcherStruct

	// DispatcherTotal is a constant that represents the total number of dispatchers defined
	DispatcherTotal = int(iota)
)

func (d DispatcherEnum) String() string {
	switch d {
	case DispatcherPrimitive:
		return "primitive"
	case DispatcherInterface:
		return "interface"
	case DispatcherSlice:
		return "slice"
	case DispatcherMap:
		return "map"
	case DispatcherStruct:
		return "struct"
	default:
		return "unknown"
	}
}

var (
	instanceType = reflect.TypeFor[caster.Instance]()
	bytesType    = reflect.TypeFor[[]byte]()
)

// Dispatch picks the binding strategy for a source value of type src and a
// destination of type dst by destination shape. Instances are passed as
// their struct type. Pointer types are not allowed.
func Dispatch(src, dst reflect.Type) DispatcherEnum {
	if src.Kind() == reflect.Ptr || dst.Kind() == reflect.Ptr {
		panic("dispatcher is not allowing pointer reflect types")
	}

	if dst.Kind() == reflect.Interface {
		return DispatcherInterface
	}

	if dst != bytesType && (dst.Kind() == reflect.Slice || dst.Kind() == reflect.Array) {
		if src != bytesType && (src.Kind() == reflect.Slice || src.Kind() == reflect.Array) {
			return DispatcherSlice
		}

		return DispatcherUnknown
	}

	if dst.Kind() == reflect.Map {
		if src == instanceType && dst.Key().Kind() == reflect.String {
			return DispatcherMap
		}

		return DispatcherUnknown
	}

	if kindOf(dst) != 0 {
		if kindOf(src) != 0 {
			return DispatcherPrimitive
		}

		return DispatcherUnknown
	}

	if dst.Kind() == reflect.Struct {
		if src == instanceType {
			return DispatcherStruct
		}

		return DispatcherUnknown
	}

	return DispatcherUnknown
}

// basicTypes back named types that are not primitives themselves,
// e.g. type Status string.
var basicTypes = map[reflect.Kind]reflect.Type{
	reflect.Int:     reflect.TypeFor[int](),
	reflect.Int8:    reflect.TypeFor[int8](),
	reflect.Int16:   reflect.TypeFor[int16](),
	reflect.Int32:   reflect.TypeFor[int32](),
	reflect.Int64:   reflect.TypeFor[int64](),
	reflect.Uint:    reflect.TypeFor[uint](),
	reflect.Uint8:   reflect.TypeFor[uint8](),
	reflect.Uint16:  reflect.TypeFor[uint16](),
	reflect.Uint32:  reflect.TypeFor[uint32](),
	reflect.Uint64:  reflect.TypeFor[uint64](),
	reflect.Float32: reflect.TypeFor[float32](),
	reflect.Float64: reflect.TypeFor[float64](),
	reflect.Bool:    reflect.TypeFor[bool](),
	reflect.String:  reflect.TypeFor[string](),
}

// kindOf returns the primitive kind values of t are bound as, 0 when t is
// not primitive. Named types bind as their underlying basic kind.
func kindOf(t reflect.Type) primitive.KindEnum {
	if k := primitive.FromReflectType(t); k != 0 && k != primitive.KindPrimitiveEnum {
		return k
	}

	if basic, ok := basicTypes[t.Kind()]; ok {
		return primitive.FromReflectType(basic)
	}

	return 0
}
