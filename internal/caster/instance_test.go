package caster_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schema-typer/internal/caster"
	"schema-typer/internal/object"
	"schema-typer/internal/synth"
	"schema-typer/primitive"
)

func ExampleEngine_FromObject() {
	reg := synth.NewRegistry()
	_ = reg.Define(&synth.TypeDefinition{Name: "Task", Fields: []synth.Field{
		{Name: "Title", Type: synth.Primitive(primitive.KindString)},
		{Name: "Estimate", Type: synth.Primitive(primitive.KindDuration)},
		{Name: "Done", Type: synth.Primitive(primitive.KindBool)},
		{Name: "Points", Type: synth.Primitive(primitive.KindInt32)},
	}})
	reg.Freeze()

	obj := object.New()
	obj.Set("title", "write docs")
	obj.Set("estimate", "PT1H30M")
	obj.Set("done", "no")
	obj.Set("points", 3.0)

	inst, err := caster.New(reg).FromObject(obj, reg.MustLookup("Task"))
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(inst)
	// Output:
	// {"Title":"write docs","Estimate":"1h30m0s","Done":false,"Points":3}
}

func TestInstance(t *testing.T) {
	t.Parallel()

	inner := &synth.TypeDefinition{Name: "Inner", Fields: []synth.Field{
		{Name: "Value", Type: synth.Primitive(primitive.KindInt32)},
	}}
	outer := &synth.TypeDefinition{Name: "Outer", Fields: []synth.Field{
		{Name: "Label", Type: synth.Primitive(primitive.KindString)},
		{Name: "Inner", Type: synth.Ref("Inner")},
		{Name: "Waits", Type: synth.SequenceOf(synth.Primitive(primitive.KindDuration))},
	}}

	inst := caster.NewInstance(outer)
	assert.Same(t, outer, inst.Type())

	label, ok := inst.Get("Label")
	require.True(t, ok)
	assert.Equal(t, "", label)

	_, ok = inst.Get("Missing")
	assert.False(t, ok)

	_, ok = inst.Lookup("Inner", "Value")
	assert.False(t, ok, "nil struct field has no members")

	nested := caster.NewInstance(inner)
	require.NoError(t, nested.Set("Value", int32(7)))
	require.NoError(t, inst.Set("Inner", nested))
	require.NoError(t, inst.Set("Waits", []any{time.Second}))

	err := inst.Set("Missing", 1)
	require.ErrorIs(t, err, caster.ErrUnknownField)

	value, ok := inst.Lookup("Inner", "Value")
	require.True(t, ok)
	assert.Equal(t, int32(7), value)

	keys := lo.Map(inst.Fields(), func(e lo.Entry[string, any], _ int) string { return e.Key })
	assert.Equal(t, []string{"Label", "Inner", "Waits"}, keys)

	data, err := inst.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"Label":"","Inner":{"Value":7},"Waits":["1s"]}`, string(data))
}
