package loader

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"schema-typer/internal/object"
	"schema-typer/internal/schema"
)

// YAMLSchema normalizes a JSON Schema written as YAML. Mapping order is kept
// so properties are declared in document order.
func (l *Loader) YAMLSchema(data []byte) (*schema.Element, error) {
	l.reset()

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &SchemaFormatError{Format: "yaml", Err: err}
	}

	doc, err := fromYAML(&root, 0)
	if err != nil {
		return nil, &SchemaFormatError{Format: "yaml", Err: err}
	}

	return l.normalizeDocument("yaml", doc)
}

// maxYAMLDepth stops alias expansion loops.
const maxYAMLDepth = 256

// fromYAML converts a YAML node into the document form object.Decode
// produces: *object.Object, []any and scalars.
func fromYAML(node *yaml.Node, depth int) (any, error) {
	if depth > maxYAMLDepth {
		return nil, fmt.Errorf("line %d: nesting too deep", node.Line)
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, fmt.Errorf("empty document")
		}
		return fromYAML(node.Content[0], depth+1)

	case yaml.MappingNode:
		obj := object.New()
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping key is not a scalar", key.Line)
			}

			v, err := fromYAML(value, depth+1)
			if err != nil {
				return nil, err
			}

			obj.Set(key.Value, v)
		}
		return obj, nil

	case yaml.SequenceNode:
		items := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			v, err := fromYAML(item, depth+1)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil

	case yaml.AliasNode:
		return fromYAML(node.Alias, depth+1)

	case yaml.ScalarNode:
		switch node.Tag {
		case "!!null":
			return nil, nil
		case "!!bool":
			var b bool
			if err := node.Decode(&b); err != nil {
				return nil, err
			}
			return b, nil
		default:
			return node.Value, nil
		}
	}

	return nil, fmt.Errorf("line %d: unsupported YAML node", node.Line)
}
