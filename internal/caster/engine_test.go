package caster_test

import (
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schema-typer/internal/caster"
	"schema-typer/internal/synth"
	"schema-typer/primitive"
)

func prim(kind primitive.KindEnum) synth.Type {
	return synth.Primitive(kind)
}

func TestZero(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		typ  synth.Type
		want any
	}{
		{"string", prim(primitive.KindString), ""},
		{"int32", prim(primitive.KindInt32), int32(0)},
		{"float64", prim(primitive.KindFloat64), float64(0)},
		{"bool", prim(primitive.KindBool), false},
		{"decimal", prim(primitive.KindDecimal), decimal.Decimal{}},
		{"time", prim(primitive.KindTime), time.Time{}},
		{"uuid", prim(primitive.KindUUID), uuid.Nil},
		{"bytes", prim(primitive.KindBytes), nil},
		{"nullable", synth.Nullable(prim(primitive.KindInt32)), nil},
		{"any", synth.Any(), nil},
		{"struct", synth.Ref("Address"), nil},
		{"sequence", synth.SequenceOf(prim(primitive.KindString)), nil},
		{"enum", synth.EnumOf("a", "b"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, caster.Zero(tt.typ))
		})
	}
}

func TestCoerce(t *testing.T) {
	t.Parallel()

	engine := caster.New(synth.NewRegistry())
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	placed := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value any
		typ   synth.Type
		want  any
	}{
		{"nil to int32", nil, prim(primitive.KindInt32), int32(0)},
		{"nil to nullable", nil, synth.Nullable(prim(primitive.KindInt32)), nil},
		{"nil to bool", nil, prim(primitive.KindBool), false},
		{"nil to struct", nil, synth.Ref("Person"), nil},
		{"unchanged", int32(5), prim(primitive.KindInt32), int32(5)},
		{"anything to any", []int{1}, synth.Any(), []int{1}},
		{"float to int32", 30.0, prim(primitive.KindInt32), int32(30)},
		{"float truncates", 3.9, prim(primitive.KindInt32), int32(3)},
		{"int64 wraps into int8", int64(300), prim(primitive.KindInt8), int8(44)},
		{"nullable unwraps", "5", synth.Nullable(prim(primitive.KindInt32)), int32(5)},
		{"text to bool", "true", prim(primitive.KindBool), true},
		{"textual bool", "yes", prim(primitive.KindBool), true},
		{"text to int64", "42", prim(primitive.KindInt64), int64(42)},
		{"json number", json.Number("12"), prim(primitive.KindInt32), int32(12)},
		{"json float number to int32", json.Number("30.0"), prim(primitive.KindInt32), int32(30)},
		{"json number to float64", json.Number("2.5"), prim(primitive.KindFloat64), 2.5},
		{"json number to text", json.Number("30.0"), prim(primitive.KindString), "30.0"},
		{"text to time", "2024-03-01T09:30:00Z", prim(primitive.KindTime), placed},
		{"iso duration", "PT1H30M", prim(primitive.KindDuration), 90 * time.Minute},
		{"clock duration", "01:30:00", prim(primitive.KindDuration), 90 * time.Minute},
		{"text to uuid", id.String(), prim(primitive.KindUUID), id},
		{"base64 bytes", "aGVsbG8=", prim(primitive.KindBytes), []byte("hello")},
		{"empty text is zero", "", prim(primitive.KindInt32), int32(0)},
		{"enum member", "open", synth.EnumOf("open", "closed"), "open"},
		{"int to text", 42, prim(primitive.KindString), "42"},
		{"bool to text", true, prim(primitive.KindString), "true"},
		{"time to text", placed, prim(primitive.KindString), "2024-03-01T09:30:00Z"},
		{"sequence", []any{"1", 2.0}, synth.SequenceOf(prim(primitive.KindInt32)), []any{int32(1), int32(2)}},
		{"typed slice to array", []string{"a", "b"}, synth.ArrayOf(prim(primitive.KindString)), []any{"a", "b"}},
		{"empty sequence", []any{}, synth.SequenceOf(prim(primitive.KindString)), []any{}},
		{"no rule applies", "x", synth.Ref("Person"), "x"},
		{"bool to number passes through", true, prim(primitive.KindInt32), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.Coerce(tt.value, tt.typ)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoerceDecimal(t *testing.T) {
	t.Parallel()

	engine := caster.New(synth.NewRegistry())

	got, err := engine.Coerce(int32(7), prim(primitive.KindDecimal))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(7).Equal(got.(decimal.Decimal)))

	got, err = engine.Coerce("44.98", prim(primitive.KindDecimal))
	require.NoError(t, err)
	assert.Equal(t, "44.98", got.(decimal.Decimal).String())

	got, err = engine.Coerce(decimal.RequireFromString("2.5"), prim(primitive.KindFloat64))
	require.NoError(t, err)
	assert.InDelta(t, 2.5, got, 1e-9)
}

func TestCoerceErrors(t *testing.T) {
	t.Parallel()

	engine := caster.New(synth.NewRegistry())

	tests := []struct {
		name  string
		value any
		typ   synth.Type
	}{
		{"not a number", "abc", prim(primitive.KindInt32)},
		{"overflow", "70000", prim(primitive.KindInt16)},
		{"not a date", "yesterday-ish", prim(primitive.KindTime)},
		{"not a uuid", "1234", prim(primitive.KindUUID)},
		{"not a member", "archived", synth.EnumOf("open", "closed")},
		{"bad sequence item", []any{"1", "two"}, synth.SequenceOf(prim(primitive.KindInt32))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Coerce(tt.value, tt.typ)
			require.Error(t, err)
			assert.ErrorIs(t, err, caster.ErrCoercion)
			assert.ErrorIs(t, err, primitive.ErrParse)

			var coercion *caster.CoercionError
			assert.True(t, errors.As(err, &coercion))
		})
	}
}

func TestCoerceSequenceErrorPath(t *testing.T) {
	t.Parallel()

	_, err := caster.New(synth.NewRegistry()).Coerce([]any{"1", "two"}, synth.SequenceOf(prim(primitive.KindInt32)))

	var coercion *caster.CoercionError
	require.ErrorAs(t, err, &coercion)
	assert.Equal(t, "1", coercion.Path)
	assert.Equal(t, "two", coercion.Value)
}

func TestCoerceWithCategories(t *testing.T) {
	t.Parallel()

	engine := caster.New(synth.NewRegistry(), caster.WithCategories(primitive.CategorySafeNumber|primitive.CategoryTextNumber))

	got, err := engine.Coerce(int16(5), prim(primitive.KindInt64))
	require.NoError(t, err)
	assert.Equal(t, int64(5), got)

	// narrowing is an unsafe conversion
	got, err = engine.Coerce(30.0, prim(primitive.KindInt32))
	require.NoError(t, err)
	assert.Equal(t, 30.0, got)

	got, err = engine.Coerce("12", prim(primitive.KindInt32))
	require.NoError(t, err)
	assert.Equal(t, int32(12), got)

	got, err = engine.Coerce("true", prim(primitive.KindBool))
	require.NoError(t, err)
	assert.Equal(t, "true", got)
}
