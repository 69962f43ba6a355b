package primitive

import (
	"math"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate go tool stringer -type=KindEnum -output=kind_string.go

type KindEnum int

const (
	_ KindEnum = iota // skip zero value, use it as a default (invalid) value for KindEnum

	KindInt
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindDecimal
	KindBool
	KindString
	KindTime
	KindDuration
	KindUUID
	KindBytes
	KindPrimitiveEnum // textual member of a closed set of values
	KindAny           // opaque value, no conversion is applied

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

func (k KindEnum) IsNumber() bool {
	switch k {
	default:
		return false
	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64,
		KindUint, KindUint8, KindUint16, KindUint32, KindUint64,
		KindFloat32, KindFloat64, KindDecimal:
		return true
	}
}

func (k KindEnum) IsInteger() bool {
	switch k {
	default:
		return false
	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64,
		KindUint, KindUint8, KindUint16, KindUint32, KindUint64:
		return true
	}
}

func (k KindEnum) IsFloat() bool {
	switch k {
	default:
		return false
	case KindFloat32, KindFloat64:
		return true
	}
}

func (k KindEnum) IsSigned() bool {
	switch k {
	default:
		return false
	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64:
		return true
	}
}

func (k KindEnum) IsUnsigned() bool {
	switch k {
	default:
		return false
	case KindUint, KindUint8, KindUint16, KindUint32, KindUint64:
		return true
	}
}

// IsStructured reports whether the kind carries a value with its own textual
// grammar (identifiers, timestamps, durations, enumerations).
func (k KindEnum) IsStructured() bool {
	switch k {
	default:
		return false
	case KindUUID, KindTime, KindDuration, KindPrimitiveEnum:
		return true
	}
}

// IsTextParsable reports whether ParseText understands the kind.
func (k KindEnum) IsTextParsable() bool {
	return k.IsNumber() || k.IsStructured() || k == KindBool || k == KindBytes
}

func (k KindEnum) Bits() int {
	switch k {
	default:
		panic("only integer kinds has meaningful bits amount, but requested for: " + k.String())
	case KindInt, KindUint:
		power := 0
		for n := uint(math.MaxUint); n > 0; n >>= 1 {
			power++
		}
		return power
	case KindInt8, KindUint8:
		return 8
	case KindInt16, KindUint16:
		return 16
	case KindInt32, KindUint32:
		return 32
	case KindInt64, KindUint64:
		return 64
	case KindFloat32:
		return 32
	case KindFloat64:
		return 64
	}
}

var reflectTypes = map[KindEnum]reflect.Type{
	KindInt:           reflect.TypeOf(int(0)),
	KindInt8:          reflect.TypeOf(int8(0)),
	KindInt16:         reflect.TypeOf(int16(0)),
	KindInt32:         reflect.TypeOf(int32(0)),
	KindInt64:         reflect.TypeOf(int64(0)),
	KindUint:          reflect.TypeOf(uint(0)),
	KindUint8:         reflect.TypeOf(uint8(0)),
	KindUint16:        reflect.TypeOf(uint16(0)),
	KindUint32:        reflect.TypeOf(uint32(0)),
	KindUint64:        reflect.TypeOf(uint64(0)),
	KindFloat32:       reflect.TypeOf(float32(0)),
	KindFloat64:       reflect.TypeOf(float64(0)),
	KindDecimal:       reflect.TypeOf(decimal.Decimal{}),
	KindBool:          reflect.TypeOf(false),
	KindString:        reflect.TypeOf(""),
	KindTime:          reflect.TypeOf(time.Time{}),
	KindDuration:      reflect.TypeOf(time.Duration(0)),
	KindUUID:          reflect.TypeOf(uuid.UUID{}),
	KindBytes:         reflect.TypeOf([]byte(nil)),
	KindPrimitiveEnum: reflect.TypeOf(""),
}

// ReflectType returns the Go type values of the kind are carried in.
// KindAny and invalid kinds return nil.
func (k KindEnum) ReflectType() reflect.Type {
	return reflectTypes[k]
}

// Zero returns the zero value of the kind's Go type. KindAny and KindBytes
// have an absent representation and return nil.
func (k KindEnum) Zero() any {
	switch k {
	case KindAny, KindBytes:
		return nil
	}

	rtype := k.ReflectType()
	if rtype == nil {
		return nil
	}

	return reflect.Zero(rtype).Interface()
}

func FromReflectType(rtype reflect.Type) KindEnum {
	if rtype == nil {
		return 0
	}

	// check if true primitive type
	switch rtype {
	case reflect.TypeOf(int(0)):
		return KindInt
	case reflect.TypeOf(int8(0)):
		return KindInt8
	case reflect.TypeOf(int16(0)):
		return KindInt16
	case reflect.TypeOf(int32(0)):
		return KindInt32
	case reflect.TypeOf(int64(0)):
		return KindInt64
	case reflect.TypeOf(uint(0)):
		return KindUint
	case reflect.TypeOf(uint8(0)):
		return KindUint8
	case reflect.TypeOf(uint16(0)):
		return KindUint16
	case reflect.TypeOf(uint32(0)):
		return KindUint32
	case reflect.TypeOf(uint64(0)):
		return KindUint64
	case reflect.TypeOf(float32(0)):
		return KindFloat32
	case reflect.TypeOf(float64(0)):
		return KindFloat64
	case reflect.TypeOf(decimal.Decimal{}):
		return KindDecimal
	case reflect.TypeOf(false):
		return KindBool
	case reflect.TypeOf(""):
		return KindString
	case reflect.TypeOf(time.Time{}):
		return KindTime
	case reflect.TypeOf(time.Duration(0)):
		return KindDuration
	case reflect.TypeOf(uuid.UUID{}):
		return KindUUID
	case reflect.TypeOf([]byte(nil)):
		return KindBytes
	}

	// check if it's a primitive enum type
	switch rtype.Kind() {
	default:
		return 0
	case reflect.Int, reflect.String:
		return KindPrimitiveEnum
	}
}

// FromValue infers the kind of a dynamic value, 0 for nil and non-primitives.
func FromValue(v any) KindEnum {
	if v == nil {
		return 0
	}

	return FromReflectType(reflect.TypeOf(v))
}
