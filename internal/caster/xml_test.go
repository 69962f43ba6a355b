package caster_test

import (
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schema-typer/internal/caster"
	"schema-typer/internal/diagnostic"
)

func parseFixture(t *testing.T, parts ...string) []byte {
	t.Helper()

	data, err := os.ReadFile(fixture(parts...))
	require.NoError(t, err)

	return data
}

func TestFromXMLPerson(t *testing.T) {
	t.Parallel()

	_, reg, def := setup(t, "Person", "person", "person.xsd")

	root, err := caster.ParseXML(parseFixture(t, "person", "person.xml"))
	require.NoError(t, err)

	engine := caster.New(reg)
	inst, err := engine.FromXML(root, def)
	require.NoError(t, err)

	id, _ := inst.Get("Id")
	assert.Equal(t, "12345", id)

	age, _ := inst.Get("Age")
	assert.Equal(t, int32(35), age)

	name, _ := inst.Get("Name")
	assert.Equal(t, "Jane Smith", name)

	city, ok := inst.Lookup("Address", "City")
	require.True(t, ok)
	assert.Equal(t, "Othertown", city)

	assert.Equal(t, 0, engine.Diagnostics().Len())
}

func TestFromXMLOrder(t *testing.T) {
	t.Parallel()

	_, reg, def := setup(t, "PurchaseOrder", "order", "order.xsd")

	root, err := caster.ParseXML(parseFixture(t, "order", "order.xml"))
	require.NoError(t, err)

	inst, err := caster.New(reg).FromXML(root, def)
	require.NoError(t, err)

	orderID, _ := inst.Get("OrderId")
	assert.Equal(t, int64(9001), orderID)

	rush, _ := inst.Get("Rush")
	assert.Equal(t, true, rush)

	placed, _ := inst.Get("PlacedAt")
	assert.Equal(t, time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC), placed)

	window, _ := inst.Get("DeliveryWindow")
	assert.Equal(t, 52*time.Hour, window)

	since, _ := inst.Lookup("Customer", "Since")
	assert.Equal(t, time.Date(2019, 7, 14, 0, 0, 0, 0, time.UTC), since)

	note, _ := inst.Get("Note")
	assert.Equal(t, "", note)

	signature, ok := inst.Get("Signature")
	assert.True(t, ok)
	assert.Nil(t, signature)

	value, _ := inst.Get("Line")
	lines := value.([]any)
	require.Len(t, lines, 2)

	second := lines[1].(*caster.Instance)
	sku, _ := second.Get("Sku")
	assert.Equal(t, "XYZ-0042", sku)

	quantity, _ := second.Get("Quantity")
	assert.Equal(t, int16(1), quantity)

	price, _ := second.Get("UnitPrice")
	assert.True(t, decimal.RequireFromString("5").Equal(price.(decimal.Decimal)))

	gift, _ := second.Get("Gift")
	assert.Equal(t, true, gift)

	gift, _ = lines[0].(*caster.Instance).Get("Gift")
	assert.Equal(t, false, gift)
}

func TestFromXMLErrors(t *testing.T) {
	t.Parallel()

	_, reg, def := setup(t, "Person", "person", "person.xsd")
	engine := caster.New(reg)

	root, err := caster.ParseXML([]byte(`<person><age>old</age></person>`))
	require.NoError(t, err)

	_, err = engine.FromXML(root, def)

	var coercion *caster.CoercionError
	require.ErrorAs(t, err, &coercion)
	assert.Equal(t, "Age", coercion.Path)
	assert.Equal(t, "old", coercion.Value)

	_, err = caster.ParseXML([]byte(`<person><age>1</person>`))
	require.ErrorIs(t, err, caster.ErrMalformedXML)

	_, err = caster.ParseXML([]byte(``))
	require.ErrorIs(t, err, caster.ErrMalformedXML)
}

func TestFromXMLMissingAndUnmatched(t *testing.T) {
	t.Parallel()

	_, reg, def := setup(t, "Person", "person", "person.xsd")
	engine := caster.New(reg)

	root, err := caster.ParseXML([]byte(`<person xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" extra="x">
  <nmae>Bob</nmae>
  <age></age>
</person>`))
	require.NoError(t, err)

	inst, err := engine.FromXML(root, def)
	require.NoError(t, err)

	age, _ := inst.Get("Age")
	assert.Equal(t, int32(0), age)

	address, _ := inst.Get("Address")
	assert.Nil(t, address)

	name, _ := inst.Get("Name")
	assert.Equal(t, "", name)

	diags := engine.Diagnostics()
	unmatched := diags.WithCode(diagnostic.CodeUnmatchedField)
	require.Len(t, unmatched, 2)
	assert.Equal(t, "extra", unmatched[0].FieldPath)
	assert.Equal(t, "nmae", unmatched[1].FieldPath)
	assert.Contains(t, unmatched[1].Suggestions, "Name")
}
