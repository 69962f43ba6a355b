package primitive_test

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"schema-typer/primitive"
)

func Example() {
	type IntEnum int
	type StringEnum string
	type Empty struct{}

	fmt.Println(primitive.FromReflectType(reflect.TypeOf(int(0))))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf("")))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(IntEnum(0))))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(StringEnum(""))))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(time.Duration(0))))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(time.Time{})))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(decimal.Decimal{})))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(uuid.UUID{})))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(Empty{})))
	// Output:
	// KindInt
	// KindString
	// KindPrimitiveEnum
	// KindPrimitiveEnum
	// KindDuration
	// KindTime
	// KindDecimal
	// KindUUID
	// KindEnum(0)
}

func TestKindZero(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind primitive.KindEnum
		want any
	}{
		{primitive.KindInt32, int32(0)},
		{primitive.KindInt64, int64(0)},
		{primitive.KindFloat64, float64(0)},
		{primitive.KindBool, false},
		{primitive.KindString, ""},
		{primitive.KindDuration, time.Duration(0)},
		{primitive.KindTime, time.Time{}},
		{primitive.KindAny, nil},
		{primitive.KindBytes, nil},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.kind.Zero())
		})
	}
}

func TestFromValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, primitive.KindEnum(0), primitive.FromValue(nil))
	assert.Equal(t, primitive.KindInt32, primitive.FromValue(int32(3)))
	assert.Equal(t, primitive.KindFloat64, primitive.FromValue(3.5))
	assert.Equal(t, primitive.KindBytes, primitive.FromValue([]byte("x")))
	assert.Equal(t, primitive.KindEnum(0), primitive.FromValue(map[string]any{}))
}

func TestKindPredicates(t *testing.T) {
	t.Parallel()

	assert.True(t, primitive.KindDecimal.IsNumber())
	assert.False(t, primitive.KindDecimal.IsInteger())
	assert.True(t, primitive.KindUint16.IsUnsigned())
	assert.True(t, primitive.KindUUID.IsTextParsable())
	assert.False(t, primitive.KindString.IsTextParsable())
	assert.Equal(t, 16, primitive.KindInt16.Bits())
	assert.Panics(t, func() { primitive.KindString.Bits() })
}
