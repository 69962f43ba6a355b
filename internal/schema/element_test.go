package schema_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schema-typer/internal/schema"
)

func person() *schema.Element {
	address := schema.NewElement("Address", schema.TagObject).
		AddProperty(schema.NewElement("Street", schema.TagString)).
		AddProperty(schema.NewElement("City", schema.TagString))

	tags := schema.NewElement("Tags", schema.TagArray)
	tags.Items = schema.NewElement("Tags", schema.TagString)

	return schema.NewElement("Person", schema.TagObject).
		AddProperty(schema.NewElement("Name", schema.TagString)).
		AddProperty(schema.NewElement("Age", schema.TagInteger)).
		AddProperty(address).
		AddProperty(tags)
}

func ExampleElement_String() {
	fmt.Print(person())
	// Output:
	// Person: object
	//   Name: string
	//   Age: integer
	//   Address: object
	//     Street: string
	//     City: string
	//   Tags: array
	//     Tags: string
}

func TestElementIsComplex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		el   *schema.Element
		want bool
	}{
		{"object tag", schema.NewElement("A", schema.TagObject), true},
		{"complex tag", schema.NewElement("A", schema.ComplexTag("Person_Address")), true},
		{"properties", schema.NewElement("A", schema.TagString).AddProperty(schema.NewElement("B", schema.TagString)), true},
		{"leaf", schema.NewElement("A", schema.TagInteger), false},
		{"array", schema.NewElement("A", schema.TagArray), false},
		{"zero value", &schema.Element{Name: "A", Tag: schema.TagString}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.el.IsComplex())
		})
	}
}

func TestElementProperties(t *testing.T) {
	t.Parallel()

	root := person()
	assert.Equal(t, []string{"Name", "Age", "Address", "Tags"}, root.PropertyNames())
	assert.Equal(t, 4, root.Len())

	address, ok := root.Property("Address")
	require.True(t, ok)
	assert.Equal(t, []string{"Street", "City"}, address.PropertyNames())

	_, ok = root.Property("Missing")
	assert.False(t, ok)

	// replacing keeps the declaration position
	root.AddProperty(schema.NewElement("Age", schema.TagLong))
	assert.Equal(t, []string{"Name", "Age", "Address", "Tags"}, root.PropertyNames())

	age, _ := root.Property("Age")
	assert.Equal(t, schema.TagLong, age.Tag)

	var bare schema.Element
	assert.Nil(t, bare.PropertyNames())
	_, ok = bare.Property("x")
	assert.False(t, ok)
}

func TestElementWalk(t *testing.T) {
	t.Parallel()

	var visited []string

	person().Walk(func(path []string, el *schema.Element) bool {
		visited = append(visited, strings.Join(path, "."))
		return el.Name != "Address"
	})

	assert.Equal(t, []string{"", "Name", "Age", "Address", "Tags", "Tags.[]"}, visited)
}
