package loader

import (
	"fmt"
	"log/slog"

	"schema-typer/internal/match"
	"schema-typer/internal/object"
	"schema-typer/internal/schema"
)

// jsonTypes maps JSON Schema type names onto schema tags.
var jsonTypes = map[string]string{
	"string":  schema.TagString,
	"integer": schema.TagInteger,
	"number":  schema.TagDouble,
	"boolean": schema.TagBoolean,
	"object":  schema.TagObject,
	"array":   schema.TagArray,
}

// jsonFormats refines a tag by the format keyword.
var jsonFormats = map[string]map[string]string{
	schema.TagString: {
		"date-time": schema.TagDatetime,
		"date":      schema.TagDate,
		"time":      schema.TagTime,
		"duration":  schema.TagTimespan,
		"byte":      schema.TagBytes,
		"binary":    schema.TagBytes,
	},
	schema.TagInteger: {
		"int64": schema.TagLong,
		"int16": schema.TagShort,
	},
	schema.TagDouble: {
		"float":   schema.TagFloat,
		"decimal": schema.TagDecimal,
	},
}

// JSONSchema normalizes a JSON Schema document. Only type, format,
// properties and items are read; everything else is ignored.
func (l *Loader) JSONSchema(data []byte) (*schema.Element, error) {
	l.reset()

	doc, err := object.Decode(data)
	if err != nil {
		return nil, &SchemaFormatError{Format: "json", Err: err}
	}

	return l.normalizeDocument("json", doc)
}

// normalizeDocument normalizes a decoded JSON or YAML schema document.
func (l *Loader) normalizeDocument(format string, doc any) (*schema.Element, error) {
	root, err := l.normalizeNode(format, doc, match.PascalCase(l.rootName), "")
	if err != nil {
		return nil, err
	}

	l.logger.Debug("schema normalized",
		slog.String("format", format),
		slog.String("root", root.Name),
		slog.Int("properties", root.Len()),
	)

	return root, nil
}

func (l *Loader) normalizeNode(format string, node any, name, path string) (*schema.Element, error) {
	obj, ok := node.(*object.Object)
	if !ok {
		return nil, &SchemaFormatError{Format: format, Path: path, Err: fmt.Errorf("schema node is %T, not an object", node)}
	}

	tag, err := l.nodeTag(format, obj, path)
	if err != nil {
		return nil, err
	}

	el := schema.NewElement(name, tag)

	if raw, ok := obj.Get("properties"); ok && raw != nil {
		properties, ok := raw.(*object.Object)
		if !ok {
			return nil, &SchemaFormatError{Format: format, Path: join(path, "properties"), Err: fmt.Errorf("properties is %T, not an object", raw)}
		}

		for _, key := range properties.Keys() {
			value, _ := properties.Get(key)

			property, err := l.normalizeNode(format, value, match.PascalCase(key), join(path, key))
			if err != nil {
				return nil, err
			}

			property.Key = key
			el.AddProperty(property)
		}
	}

	if raw, ok := obj.Get("items"); ok && raw != nil && tag == schema.TagArray {
		// tuple form: the first item schema describes the sequence
		if tuple, ok := raw.([]any); ok {
			if len(tuple) == 0 {
				return el, nil
			}
			raw = tuple[0]
		}

		items, err := l.normalizeNode(format, raw, name, join(path, "[]"))
		if err != nil {
			return nil, err
		}

		el.Items = items
	}

	return el, nil
}

// nodeTag resolves type and format of a schema node. A missing type means
// object; a type list uses its first non-null entry.
func (l *Loader) nodeTag(format string, obj *object.Object, path string) (string, error) {
	raw, ok := obj.Get("type")
	if !ok || raw == nil {
		return schema.TagObject, nil
	}

	var typeName string

	switch t := raw.(type) {
	case string:
		typeName = t
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && s != "null" {
				typeName = s
				break
			}
		}
		if typeName == "" {
			return schema.TagObject, nil
		}
	default:
		return "", &SchemaFormatError{Format: format, Path: join(path, "type"), Err: fmt.Errorf("type is %T, not a string", raw)}
	}

	tag, ok := jsonTypes[typeName]
	if !ok {
		l.unsupported(format, typeName, path)
		return schema.TagString, nil
	}

	if f, ok := obj.Get("format"); ok {
		if name, ok := f.(string); ok {
			if refined, ok := jsonFormats[tag][name]; ok {
				tag = refined
			}
		}
	}

	return tag, nil
}

func join(path, key string) string {
	if path == "" {
		return key
	}

	return path + "." + key
}
