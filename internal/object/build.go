package object

import (
	"fmt"

	"schema-typer/internal/schema"
)

// Build creates an object with one field per property of the element.
// Complex properties hold nested objects, primitive properties the zero
// value of their tag (see Zero).
func Build(el *schema.Element, opts ...Option) (*Object, error) {
	o := applyOptions(opts)

	return build(el, 0, o.maxDepth)
}

func build(el *schema.Element, depth, maxDepth int) (*Object, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("%w: building %s", ErrMaxDepth, el.Name)
	}

	obj := New()

	for _, name := range el.PropertyNames() {
		property, _ := el.Property(name)

		if !property.IsComplex() {
			obj.Set(name, Zero(property.Tag))
			continue
		}

		nested, err := build(property, depth+1, maxDepth)
		if err != nil {
			return nil, err
		}

		obj.Set(name, nested)
	}

	return obj, nil
}

// Zero returns the default value a built object holds for a primitive tag:
// "" for string, int32 0 for integer, float64 0 for double, false for boolean,
// an empty sequence for array and nil for everything else.
func Zero(tag string) any {
	switch tag {
	case schema.TagString:
		return ""
	case schema.TagInteger:
		return int32(0)
	case schema.TagDouble:
		return float64(0)
	case schema.TagBoolean:
		return false
	case schema.TagArray:
		return []any{}
	default:
		return nil
	}
}
