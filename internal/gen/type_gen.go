package gen

import (
	"fmt"
	"strings"

	"schema-typer/internal/synth"
	"schema-typer/primitive"
)

// GenerateStruct generates the Go struct definition of a type definition.
// Packages the field types need are added to imports.
func (g *Generator) GenerateStruct(def *synth.TypeDefinition, imports map[string]struct{}) (string, error) {
	if def == nil {
		return "", ErrNilDefinition
	}

	var sb strings.Builder

	name := g.typeName(def.Name)
	fields := identifiers(def.FieldNames())

	if g.config.GenerateComments {
		sb.WriteString(fmt.Sprintf("// %s is generated from the schema.\n", name))
	}

	sb.WriteString(fmt.Sprintf("type %s struct {\n", name))

	for _, f := range def.Fields {
		typeStr, err := g.typeString(f.Type, imports)
		if err != nil {
			return "", fmt.Errorf("field %s: %w", f.Name, err)
		}

		tag := f.Key
		if tag == "" {
			tag = lowerFirst(f.Name)
		}

		xmlTag := tag
		if f.Attribute {
			xmlTag += ",attr"
		}

		sb.WriteString(fmt.Sprintf("\t%s %s `json:\"%s\" xml:\"%s\"`", fields[f.Name], typeStr, tag, xmlTag))

		if g.config.GenerateComments && len(f.Type.Enum) > 0 {
			sb.WriteString(" // one of: " + strings.Join(f.Type.Enum, ", "))
		}

		sb.WriteByte('\n')
	}

	sb.WriteString("}\n")

	return sb.String(), nil
}

// typeName returns the Go identifier of a definition.
func (g *Generator) typeName(name string) string {
	if ident, ok := g.names[name]; ok {
		return ident
	}

	return identifiers([]string{name})[name]
}

// typeString renders a semantic type as a Go type expression. Struct
// references become pointers, nullable primitives too.
func (g *Generator) typeString(t synth.Type, imports map[string]struct{}) (string, error) {
	switch t.Shape {
	case synth.ShapeInterface:
		return "any", nil

	case synth.ShapeStruct:
		return "*" + g.typeName(t.Ref), nil

	case synth.ShapeSequence, synth.ShapeArray:
		elem := synth.Any()
		if t.Elem != nil {
			elem = *t.Elem
		}

		s, err := g.typeString(elem, imports)
		if err != nil {
			return "", err
		}

		return "[]" + s, nil

	case synth.ShapePrimitive:
		s, err := primitiveString(t.Kind, imports)
		if err != nil {
			return "", err
		}

		if t.Nullable && t.Kind != primitive.KindBytes {
			return "*" + s, nil
		}

		return s, nil
	}

	return "", fmt.Errorf("unsupported type shape %s", t.Shape)
}

func primitiveString(kind primitive.KindEnum, imports map[string]struct{}) (string, error) {
	switch kind {
	case primitive.KindBytes:
		return "[]byte", nil
	case primitive.KindAny:
		return "any", nil
	}

	rtype := kind.ReflectType()
	if rtype == nil {
		return "", fmt.Errorf("no Go type for %s", kind)
	}

	if pkg := rtype.PkgPath(); pkg != "" {
		imports[pkg] = struct{}{}
	}

	return rtype.String(), nil
}

// refOf returns the definition a field type depends on, looking through
// sequences.
func refOf(t synth.Type) string {
	for t.IsSequence() && t.Elem != nil {
		t = *t.Elem
	}

	if t.Shape == synth.ShapeStruct {
		return t.Ref
	}

	return ""
}

func lowerFirst(s string) string {
	if s == "" {
		return ""
	}

	return strings.ToLower(s[:1]) + s[1:]
}
