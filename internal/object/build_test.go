package object_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schema-typer/internal/object"
	"schema-typer/internal/schema"
)

func personSchema() *schema.Element {
	address := schema.NewElement("Address", schema.TagObject).
		AddProperty(schema.NewElement("Street", schema.TagString)).
		AddProperty(schema.NewElement("City", schema.TagString))

	return schema.NewElement("Person", schema.TagObject).
		AddProperty(schema.NewElement("Name", schema.TagString)).
		AddProperty(schema.NewElement("Age", schema.TagInteger)).
		AddProperty(schema.NewElement("Score", schema.TagDouble)).
		AddProperty(schema.NewElement("Active", schema.TagBoolean)).
		AddProperty(schema.NewElement("Tags", schema.TagArray)).
		AddProperty(schema.NewElement("Born", schema.TagDatetime)).
		AddProperty(address)
}

func TestBuild(t *testing.T) {
	t.Parallel()

	obj, err := object.Build(personSchema())
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Age", "Score", "Active", "Tags", "Born", "Address"}, obj.Keys())

	expected := map[string]any{
		"Name":   "",
		"Age":    int32(0),
		"Score":  float64(0),
		"Active": false,
		"Tags":   []any{},
		"Born":   nil,
	}
	for name, want := range expected {
		got, ok := obj.Get(name)
		require.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}

	street, ok := obj.Lookup("Address", "Street")
	require.True(t, ok)
	assert.Equal(t, "", street)

	assert.Equal(t,
		`{"Name":"","Age":0,"Score":0,"Active":false,"Tags":[],"Born":null,"Address":{"Street":"","City":""}}`,
		obj.String())
}

func TestBuildEmptyObjectProperty(t *testing.T) {
	t.Parallel()

	root := schema.NewElement("Root", schema.TagObject).
		AddProperty(schema.NewElement("Meta", schema.TagObject))

	obj, err := object.Build(root)
	require.NoError(t, err)

	meta, ok := obj.Get("Meta")
	require.True(t, ok)
	require.IsType(t, &object.Object{}, meta)
	assert.Equal(t, 0, meta.(*object.Object).Len())
}

func TestBuildMaxDepth(t *testing.T) {
	t.Parallel()

	root := schema.NewElement("Node", schema.TagObject)
	root.AddProperty(root)

	_, err := object.Build(root, object.WithMaxDepth(8))
	require.ErrorIs(t, err, object.ErrMaxDepth)
}
