package object_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schema-typer/internal/diagnostic"
	"schema-typer/internal/object"
)

const johnDoe = `{
	"name": "John Doe",
	"age": 30,
	"address": {"street": "123 Main St", "city": "Anytown"},
	"phones": ["555-1234", {"kind": "work"}],
	"nickname": null
}`

func TestDecode(t *testing.T) {
	t.Parallel()

	doc, err := object.Decode([]byte(johnDoe))
	require.NoError(t, err)
	require.IsType(t, &object.Object{}, doc)

	obj := doc.(*object.Object)
	assert.Equal(t, []string{"name", "age", "address", "phones", "nickname"}, obj.Keys())

	age, _ := obj.Get("age")
	assert.Equal(t, json.Number("30"), age)

	phones, _ := obj.Get("phones")
	require.IsType(t, []any{}, phones)
	assert.Len(t, phones, 2)

	nickname, ok := obj.Get("nickname")
	assert.True(t, ok)
	assert.Nil(t, nickname)
}

func TestDecodeScalarsAndErrors(t *testing.T) {
	t.Parallel()

	v, err := object.Decode([]byte(`"text"`))
	require.NoError(t, err)
	assert.Equal(t, "text", v)

	v, err = object.Decode([]byte(`[]`))
	require.NoError(t, err)
	assert.Equal(t, []any{}, v)

	for _, input := range []string{``, `{`, `{"a":}`, `[1,]`, `{} {}`} {
		_, err := object.Decode([]byte(input))
		assert.ErrorIs(t, err, object.ErrMalformedDocument, input)
	}
}

func TestPopulate(t *testing.T) {
	t.Parallel()

	dst := object.New()
	dst.Set("name", "")
	dst.Set("extra", true)

	diags, err := object.PopulateJSON(dst, []byte(johnDoe))
	require.NoError(t, err)
	assert.Equal(t, 0, diags.Len())

	assert.Equal(t, []string{"name", "extra", "age", "address", "phones", "nickname"}, dst.Keys())

	name, _ := dst.Get("name")
	assert.Equal(t, "John Doe", name)

	age, _ := dst.Get("age")
	assert.Equal(t, float64(30), age)

	street, ok := dst.Lookup("address", "street")
	require.True(t, ok)
	assert.Equal(t, "123 Main St", street)

	phones, _ := dst.Get("phones")
	require.Len(t, phones, 2)
	assert.Equal(t, "555-1234", phones.([]any)[0])
	assert.IsType(t, &object.Object{}, phones.([]any)[1])
}

func TestPopulateSkipsBadFields(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	dst := object.New()
	diags, err := object.PopulateJSON(dst,
		[]byte(`{"huge": 1e400, "name": "ok", "nested": {"bad": 2e400, "good": 1}, "list": [1, 3e400]}`),
		object.WithLogger(logger))
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "nested"}, dst.Keys())

	good, ok := dst.Lookup("nested", "good")
	require.True(t, ok)
	assert.Equal(t, float64(1), good)
	assert.False(t, func() bool { _, ok := dst.Lookup("nested", "bad"); return ok }())

	skipped := diags.WithCode(diagnostic.CodePopulationFieldError)
	require.Len(t, skipped, 3)
	assert.Equal(t, "huge", skipped[0].FieldPath)
	assert.Equal(t, "nested.bad", skipped[1].FieldPath)
	assert.Equal(t, "list", skipped[2].FieldPath)
	assert.Contains(t, logs.String(), "skipping field during population")
}

func TestPopulateFromMap(t *testing.T) {
	t.Parallel()

	address := map[string]any{"street": "123 Main St"}
	doc := map[string]any{
		"b":       int32(7),
		"a":       "first",
		"address": address,
		"tags":    []any{"x"},
	}

	dst := object.New()
	_, err := object.Populate(dst, doc)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "address", "b", "tags"}, dst.Keys())

	b, _ := dst.Get("b")
	assert.Equal(t, float64(7), b)

	// values are copied, not aliased
	address["street"] = "changed"
	street, _ := dst.Lookup("address", "street")
	assert.Equal(t, "123 Main St", street)
}

func TestPopulateNotAnObject(t *testing.T) {
	t.Parallel()

	for _, doc := range []any{nil, "text", []any{1}, 42} {
		_, err := object.Populate(object.New(), doc)
		assert.ErrorIs(t, err, object.ErrNotAnObject)
	}

	_, err := object.PopulateJSON(object.New(), []byte(`[1, 2]`))
	assert.ErrorIs(t, err, object.ErrNotAnObject)

	_, err = object.PopulateJSON(object.New(), []byte(`{`))
	assert.ErrorIs(t, err, object.ErrMalformedDocument)
}

func TestFieldError(t *testing.T) {
	t.Parallel()

	err := &object.FieldError{Path: "age", Err: object.ErrUnsupportedValue}
	assert.ErrorIs(t, err, object.ErrPopulationField)
	assert.ErrorIs(t, err, object.ErrUnsupportedValue)
	assert.Equal(t, "field age: unsupported value", err.Error())
}
