package synth

import (
	"strings"

	"schema-typer/primitive"
)

// Shape is the structural class of a semantic type.
type Shape int

const (
	ShapeUnknown   Shape = iota
	ShapePrimitive       // a primitive kind, see primitive.KindEnum
	ShapeInterface       // opaque value, no conversion applies
	ShapeSequence        // growable sequence of Elem
	ShapeArray           // fixed-size indexable sequence of Elem
	ShapeStruct          // reference to a named TypeDefinition

	// ShapeTotal is a constant that represents the total number of shapes defined
	ShapeTotal = int(iota)
)

func (s Shape) String() string {
	switch s {
	case ShapePrimitive:
		return "primitive"
	case ShapeInterface:
		return "interface"
	case ShapeSequence:
		return "sequence"
	case ShapeArray:
		return "array"
	case ShapeStruct:
		return "struct"
	default:
		return "unknown"
	}
}

// Type is a semantic type: a primitive, an opaque value, a sequence of
// another type or a reference to a definition in a Registry.
type Type struct {
	Shape    Shape
	Kind     primitive.KindEnum // ShapePrimitive only
	Ref      string             // ShapeStruct only
	Elem     *Type              // ShapeSequence and ShapeArray only
	Enum     []string           // members of a KindPrimitiveEnum
	Nullable bool
}

// Primitive returns the type of a primitive kind. KindAny yields Any.
func Primitive(kind primitive.KindEnum) Type {
	if kind == primitive.KindAny {
		return Any()
	}

	return Type{Shape: ShapePrimitive, Kind: kind}
}

// Any returns the opaque type.
func Any() Type {
	return Type{Shape: ShapeInterface, Kind: primitive.KindAny}
}

// Ref returns a reference to the named definition.
func Ref(name string) Type {
	return Type{Shape: ShapeStruct, Ref: name}
}

// SequenceOf returns a growable sequence of elem.
func SequenceOf(elem Type) Type {
	return Type{Shape: ShapeSequence, Elem: &elem}
}

// ArrayOf returns a fixed-size indexable sequence of elem.
func ArrayOf(elem Type) Type {
	return Type{Shape: ShapeArray, Elem: &elem}
}

// Nullable marks t as having an absent value.
func Nullable(t Type) Type {
	t.Nullable = true
	return t
}

// EnumOf returns a text type restricted to the given members.
func EnumOf(values ...string) Type {
	return Type{Shape: ShapePrimitive, Kind: primitive.KindPrimitiveEnum, Enum: values}
}

// NonNull returns t without the nullable wrapper.
func (t Type) NonNull() Type {
	t.Nullable = false
	return t
}

// IsSequence reports whether t is a sequence or an array.
func (t Type) IsSequence() bool {
	return t.Shape == ShapeSequence || t.Shape == ShapeArray
}

// HasMember reports whether value is one of the enum members. A type
// without members accepts any value.
func (t Type) HasMember(value string) bool {
	if len(t.Enum) == 0 {
		return true
	}

	for _, member := range t.Enum {
		if member == value {
			return true
		}
	}

	return false
}

// String renders the type the way definitions are printed: int32, []Address,
// ?time, enum(a|b).
func (t Type) String() string {
	var sb strings.Builder

	if t.Nullable {
		sb.WriteByte('?')
	}

	switch t.Shape {
	case ShapePrimitive:
		if t.Kind == primitive.KindPrimitiveEnum && len(t.Enum) > 0 {
			sb.WriteString("enum(" + strings.Join(t.Enum, "|") + ")")
		} else {
			sb.WriteString(kindName(t.Kind))
		}
	case ShapeInterface:
		sb.WriteString("any")
	case ShapeSequence:
		sb.WriteString("[]" + t.Elem.String())
	case ShapeArray:
		sb.WriteString("[...]" + t.Elem.String())
	case ShapeStruct:
		sb.WriteString(t.Ref)
	default:
		sb.WriteString("unknown")
	}

	return sb.String()
}

// kindName strips the Kind prefix of the stringer output: KindInt32 -> int32.
func kindName(kind primitive.KindEnum) string {
	name := strings.TrimPrefix(kind.String(), "Kind")
	switch name {
	case "UUID":
		return "uuid"
	case "PrimitiveEnum":
		return "enum"
	}

	return strings.ToLower(name)
}
