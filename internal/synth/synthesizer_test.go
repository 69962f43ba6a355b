package synth_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schema-typer/internal/loader"
	"schema-typer/internal/schema"
	"schema-typer/internal/synth"
	"schema-typer/primitive"
)

func load(t *testing.T, parts ...string) *schema.Element {
	t.Helper()

	root, err := loader.LoadFile(filepath.Join(append([]string{"..", "..", "examples"}, parts...)...))
	require.NoError(t, err)

	return root
}

func countComplex(root *schema.Element) (nodes int, fields map[string]int) {
	fields = make(map[string]int)

	root.Walk(func(_ []string, el *schema.Element) bool {
		if el.IsComplex() && !el.IsArray() {
			nodes++
			fields[el.Name] += el.Len()
		}

		return true
	})

	return nodes, fields
}

func TestSynthesizePerson(t *testing.T) {
	t.Parallel()

	reg := synth.NewRegistry()
	def, err := synth.Synthesize(load(t, "person", "person.schema.json"), "Person", reg)
	require.NoError(t, err)

	assert.Equal(t, "Person", def.Name)
	assert.Equal(t, []string{"Name", "Age", "Address"}, def.FieldNames())
	assert.Equal(t, []string{"Person", "Person_Address"}, reg.Names())

	age, ok := def.Field("Age")
	require.True(t, ok)
	assert.Equal(t, synth.Primitive(primitive.KindInt32), age.Type)

	address, ok := def.Field("Address")
	require.True(t, ok)
	assert.Equal(t, synth.Ref("Person_Address"), address.Type)
	assert.Equal(t, []string{"Street", "City"}, reg.MustLookup("Person_Address").FieldNames())

	require.NoError(t, reg.Validate())
}

func TestSynthesizeOneDefinitionPerComplexNode(t *testing.T) {
	t.Parallel()

	files := [][]string{
		{"person", "person.schema.json"},
		{"person", "person.schema.yaml"},
		{"person", "person.xsd"},
		{"order", "order.schema.json"},
		{"order", "order.xsd"},
	}

	for _, file := range files {
		t.Run(filepath.Join(file...), func(t *testing.T) {
			t.Parallel()

			root := load(t, file...)
			nodes, _ := countComplex(root)

			reg := synth.NewRegistry()
			_, err := synth.Synthesize(root, root.Name, reg)
			require.NoError(t, err)

			assert.Equal(t, nodes, reg.Len())

			total := 0
			for _, def := range reg.Definitions() {
				total += len(def.Fields)
			}

			expected := 0
			root.Walk(func(_ []string, el *schema.Element) bool {
				if el.IsComplex() && !el.IsArray() {
					expected += el.Len()
				}
				return true
			})
			assert.Equal(t, expected, total)
			assert.NoError(t, reg.Validate())
		})
	}
}

func TestSynthesizeJSONAndYAMLAgree(t *testing.T) {
	t.Parallel()

	fromJSON := synth.NewRegistry()
	_, err := synth.Synthesize(load(t, "person", "person.schema.json"), "Person", fromJSON)
	require.NoError(t, err)

	fromYAML := synth.NewRegistry()
	_, err = synth.Synthesize(load(t, "person", "person.schema.yaml"), "Person", fromYAML)
	require.NoError(t, err)

	assert.Equal(t, fromJSON.Definitions(), fromYAML.Definitions())
}

func TestSynthesizeOrder(t *testing.T) {
	t.Parallel()

	reg := synth.NewRegistry()
	def, err := synth.Synthesize(load(t, "order", "order.schema.json"), "Order", reg)
	require.NoError(t, err)

	tests := []struct {
		field string
		want  string
	}{
		{"OrderId", "int64"},
		{"PlacedAt", "time"},
		{"Rush", "bool"},
		{"Total", "decimal"},
		{"Tags", "[]string"},
		{"Lines", "[]Order_LinesItem"},
		{"Metadata", "Order_Metadata"},
		{"Link", "string"},
	}

	for _, tt := range tests {
		f, ok := def.Field(tt.field)
		require.True(t, ok, tt.field)
		assert.Equal(t, tt.want, f.Type.String(), tt.field)
	}

	item := reg.MustLookup("Order_LinesItem")
	assert.Equal(t, []string{"Sku", "Quantity", "UnitPrice"}, item.FieldNames())
	assert.Empty(t, reg.MustLookup("Order_Metadata").Fields)
}

func TestSynthesizeXSDNames(t *testing.T) {
	t.Parallel()

	reg := synth.NewRegistry()
	def, err := synth.Synthesize(load(t, "order", "order.xsd"), "PurchaseOrder", reg)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"PurchaseOrder", "Complex_PurchaseOrder_Customer", "Complex_PurchaseOrder_Line",
	}, reg.Names())

	line, ok := def.Field("Line")
	require.True(t, ok)
	assert.Equal(t, synth.SequenceOf(synth.Ref("Complex_PurchaseOrder_Line")), line.Type)

	orderID, ok := def.Field("OrderId")
	require.True(t, ok)
	assert.True(t, orderID.Attribute)
	assert.Equal(t, synth.Primitive(primitive.KindInt64), orderID.Type)

	window, _ := def.Field("DeliveryWindow")
	assert.Equal(t, synth.Primitive(primitive.KindDuration), window.Type)

	quantity, _ := reg.MustLookup("Complex_PurchaseOrder_Line").Field("Quantity")
	assert.Equal(t, synth.Primitive(primitive.KindInt16), quantity.Type)
}

func TestSynthesizeXSDNamesFollowTags(t *testing.T) {
	t.Parallel()

	root := load(t, "person", "person.xsd")
	address, ok := root.Property("Address")
	require.True(t, ok)

	reg := synth.NewRegistry()
	def, err := synth.Synthesize(root, "Person", reg)
	require.NoError(t, err)

	assert.Equal(t, []string{"Person", address.Tag}, reg.Names())
	assert.Equal(t, "Complex_Person_Address", address.Tag)

	field, _ := def.Field("Address")
	assert.Equal(t, synth.Ref("Complex_Person_Address"), field.Type)
	assert.Equal(t, "address", field.Key)
}

func TestSynthesizeUnknownTagIsAny(t *testing.T) {
	t.Parallel()

	root := schema.NewElement("Root", schema.TagObject).
		AddProperty(schema.NewElement("Blob", "hyperlink")).
		AddProperty(schema.NewElement("List", schema.TagArray))

	def, err := synth.Synthesize(root, "Root", synth.NewRegistry())
	require.NoError(t, err)

	blob, _ := def.Field("Blob")
	assert.Equal(t, synth.Any(), blob.Type)

	list, _ := def.Field("List")
	assert.Equal(t, synth.SequenceOf(synth.Any()), list.Type)
}

func TestSynthesizeCyclicXSD(t *testing.T) {
	t.Parallel()

	reg := synth.NewRegistry()
	_, err := synth.Synthesize(load(t, "recursive", "node.xsd"), "Node", reg)
	require.Error(t, err)
	assert.ErrorIs(t, err, synth.ErrCyclicSchema)

	var cyclic *synth.CyclicSchemaError
	require.True(t, errors.As(err, &cyclic))
	assert.Equal(t, "Complex_Node", cyclic.Name)
	assert.Equal(t, []string{"Node"}, cyclic.Chain)
	assert.Equal(t, 0, reg.Len(), "failed synthesis defines nothing")
}

func TestSynthesizeSelfReference(t *testing.T) {
	t.Parallel()

	root := schema.NewElement("Tree", schema.TagObject)
	branch := schema.NewElement("Branch", schema.TagObject)
	root.AddProperty(branch)
	branch.AddProperty(root)

	_, err := synth.Synthesize(root, "Tree", synth.NewRegistry())
	require.ErrorIs(t, err, synth.ErrCyclicSchema)
	assert.Contains(t, err.Error(), "Tree -> Tree_Branch -> Tree_Branch_Tree")
}

func TestSynthesizeMaxDepth(t *testing.T) {
	t.Parallel()

	root := schema.NewElement("L0", schema.TagObject)
	el := root
	for _, name := range []string{"L1", "L2", "L3"} {
		next := schema.NewElement(name, schema.TagObject)
		el.AddProperty(next)
		el = next
	}

	_, err := synth.New(synth.WithMaxDepth(2)).Synthesize(root, "L0", synth.NewRegistry())
	require.ErrorIs(t, err, synth.ErrMaxDepth)

	_, err = synth.New(synth.WithMaxDepth(3)).Synthesize(root, "L0", synth.NewRegistry())
	require.NoError(t, err)
}

func TestSynthesizeDuplicateDefinition(t *testing.T) {
	t.Parallel()

	root := load(t, "person", "person.schema.json")
	reg := synth.NewRegistry()

	_, err := synth.Synthesize(root, "Person", reg)
	require.NoError(t, err)

	_, err = synth.Synthesize(root, "Person", reg)
	require.ErrorIs(t, err, synth.ErrDuplicateType)

	_, err = synth.Synthesize(root, "Customer", reg)
	require.NoError(t, err)
	assert.Equal(t, 4, reg.Len())
}
