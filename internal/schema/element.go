// Package schema holds the format independent schema model every source
// schema is normalized into.
package schema

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Type tags of the schema model.
const (
	TagString   = "string"
	TagInteger  = "integer"
	TagLong     = "long"
	TagShort    = "short"
	TagBoolean  = "boolean"
	TagDecimal  = "decimal"
	TagFloat    = "float"
	TagDouble   = "double"
	TagDatetime = "datetime"
	TagDate     = "date"
	TagTime     = "time"
	TagTimespan = "timespan"
	TagBytes    = "byte[]"
	TagArray    = "array"
	TagObject   = "object"

	// ComplexPrefix starts the tag of XSD complex elements: Complex_<qualifiedName>.
	ComplexPrefix = "Complex_"
)

// Element is a node of the schema tree. A node with properties is complex,
// a leaf carries a primitive tag. Elements are built once by a loader and
// only read afterwards.
type Element struct {
	Name        string
	Key         string // property key as written in the source schema
	Tag         string
	Properties  *orderedmap.OrderedMap[string, *Element]
	Items       *Element // element schema of array nodes, nil when unknown
	IsAttribute bool     // XML attribute rather than child element
}

// NewElement creates an element without properties.
func NewElement(name, tag string) *Element {
	return &Element{
		Name:       name,
		Tag:        tag,
		Properties: orderedmap.New[string, *Element](),
	}
}

// ComplexTag builds the tag of a complex XSD element from its qualified name.
func ComplexTag(qualified string) string {
	return ComplexPrefix + qualified
}

// AddProperty appends a property, replacing an earlier one of the same name
// in place. It returns the element for chaining.
func (e *Element) AddProperty(property *Element) *Element {
	if e.Properties == nil {
		e.Properties = orderedmap.New[string, *Element]()
	}

	e.Properties.Set(property.Name, property)

	return e
}

// Property returns the named property.
func (e *Element) Property(name string) (*Element, bool) {
	if e.Properties == nil {
		return nil, false
	}

	return e.Properties.Get(name)
}

// PropertyNames returns property names in declaration order.
func (e *Element) PropertyNames() []string {
	if e.Properties == nil {
		return nil
	}

	names := make([]string, 0, e.Properties.Len())
	for pair := e.Properties.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}

	return names
}

// Len returns the number of properties.
func (e *Element) Len() int {
	if e.Properties == nil {
		return 0
	}

	return e.Properties.Len()
}

// IsComplex reports whether the element describes an object: tag object,
// an XSD complex tag, or declared properties.
func (e *Element) IsComplex() bool {
	return e.Tag == TagObject || strings.HasPrefix(e.Tag, ComplexPrefix) || e.Len() > 0
}

// IsArray reports whether the element describes a sequence.
func (e *Element) IsArray() bool {
	return e.Tag == TagArray
}

// Walk visits the element and its descendants depth first, properties in
// declaration order, array items after the properties of their owner.
// Returning false from fn skips the children of the visited element.
func (e *Element) Walk(fn func(path []string, el *Element) bool) {
	e.walk(nil, fn)
}

func (e *Element) walk(path []string, fn func(path []string, el *Element) bool) {
	if !fn(path, e) {
		return
	}

	if e.Properties != nil {
		for pair := e.Properties.Oldest(); pair != nil; pair = pair.Next() {
			pair.Value.walk(append(path[:len(path):len(path)], pair.Key), fn)
		}
	}

	if e.Items != nil {
		e.Items.walk(append(path[:len(path):len(path)], "[]"), fn)
	}
}

// String renders the tree as an indented outline.
func (e *Element) String() string {
	var sb strings.Builder

	e.Walk(func(path []string, el *Element) bool {
		sb.WriteString(strings.Repeat("  ", len(path)))
		sb.WriteString(el.Name)
		sb.WriteString(": ")
		sb.WriteString(el.Tag)

		if el.IsAttribute {
			sb.WriteString(" (attribute)")
		}

		sb.WriteByte('\n')

		return true
	})

	return sb.String()
}
