package primitive

import (
	"math"
	"math/big"
	"reflect"

	"github.com/shopspring/decimal"
)

// ConvertNumber converts a numeric value into the Go type of the numeric kind
// `to` using Go conversion semantics: values out of range wrap or truncate the
// way a plain T(v) conversion does. It returns false when v is not a number,
// `to` is not a numeric kind, or the value has no representation in `to`
// (NaN or infinity into a decimal).
func ConvertNumber(v any, to KindEnum) (any, bool) {
	if !to.IsNumber() || !FromValue(v).IsNumber() {
		return nil, false
	}

	if d, ok := v.(decimal.Decimal); ok {
		if to == KindDecimal {
			return d, true
		}

		if to.IsInteger() {
			return fromInt64(d.IntPart(), to), true
		}

		return fromFloat64(d.InexactFloat64(), to)
	}

	rv := reflect.ValueOf(v)
	switch {
	case rv.CanInt():
		return fromInt64(rv.Int(), to), true
	case rv.CanUint():
		return fromUint64(rv.Uint(), to), true
	case rv.CanFloat():
		return fromFloat64(rv.Float(), to)
	default:
		return nil, false
	}
}

func fromInt64(n int64, to KindEnum) any {
	switch to {
	case KindInt:
		return int(n)
	case KindInt8:
		return int8(n)
	case KindInt16:
		return int16(n)
	case KindInt32:
		return int32(n)
	case KindInt64:
		return n
	case KindUint:
		return uint(n)
	case KindUint8:
		return uint8(n)
	case KindUint16:
		return uint16(n)
	case KindUint32:
		return uint32(n)
	case KindUint64:
		return uint64(n)
	case KindFloat32:
		return float32(n)
	case KindFloat64:
		return float64(n)
	case KindDecimal:
		return decimal.NewFromInt(n)
	}

	panic("not a numeric kind: " + to.String())
}

func fromUint64(n uint64, to KindEnum) any {
	switch to {
	case KindInt:
		return int(n)
	case KindInt8:
		return int8(n)
	case KindInt16:
		return int16(n)
	case KindInt32:
		return int32(n)
	case KindInt64:
		return int64(n)
	case KindUint:
		return uint(n)
	case KindUint8:
		return uint8(n)
	case KindUint16:
		return uint16(n)
	case KindUint32:
		return uint32(n)
	case KindUint64:
		return n
	case KindFloat32:
		return float32(n)
	case KindFloat64:
		return float64(n)
	case KindDecimal:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(n), 0)
	}

	panic("not a numeric kind: " + to.String())
}

func fromFloat64(f float64, to KindEnum) (any, bool) {
	switch to {
	case KindInt:
		return int(f), true
	case KindInt8:
		return int8(f), true
	case KindInt16:
		return int16(f), true
	case KindInt32:
		return int32(f), true
	case KindInt64:
		return int64(f), true
	case KindUint:
		return uint(f), true
	case KindUint8:
		return uint8(f), true
	case KindUint16:
		return uint16(f), true
	case KindUint32:
		return uint32(f), true
	case KindUint64:
		return uint64(f), true
	case KindFloat32:
		return float32(f), true
	case KindFloat64:
		return f, true
	case KindDecimal:
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, false
		}
		return decimal.NewFromFloat(f), true
	}

	panic("not a numeric kind: " + to.String())
}
