package loader

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/beevik/etree"

	"schema-typer/internal/diagnostic"
	"schema-typer/internal/match"
	"schema-typer/internal/schema"
)

const xsdNamespace = "http://www.w3.org/2001/XMLSchema"

// maxXSDDepth bounds inline nesting and simple type derivation chains.
const maxXSDDepth = 64

// ErrNoRootElement is returned for XSD documents without a global element.
var ErrNoRootElement = errors.New("no global element declared")

// XSD normalizes an XML Schema. The first global element is the root.
// Complex child elements are tagged Complex_{Parent}_{Name}, where the
// root's qualified name is its own normalized name, so every complex node
// carries a unique tag. Attributes become properties flagged IsAttribute.
// Only sequence and all particles are read; choice, any, group references
// and derived content are reported as unsupported_particle warnings.
//
// A named complex type that appears inside its own expansion is not expanded
// again: the inner element shares the tag and properties of the outer one,
// which the synthesizer reports as a cyclic schema.
func (l *Loader) XSD(data []byte) (*schema.Element, error) {
	l.reset()

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, &SchemaFormatError{Format: "xsd", Err: err}
	}

	root := doc.Root()
	if root == nil || root.Tag != "schema" {
		return nil, &SchemaFormatError{Format: "xsd", Err: errors.New("document root is not a schema element")}
	}

	n := newXSDNormalizer(l, root)
	if len(n.order) == 0 {
		return nil, &SchemaFormatError{Format: "xsd", Err: ErrNoRootElement}
	}

	first := n.order[0]

	el, err := n.element(first, "", 0, "element:"+first.SelectAttrValue("name", ""))
	if err != nil {
		return nil, err
	}

	l.logger.Debug("schema normalized",
		slog.String("format", "xsd"),
		slog.String("root", el.Name),
		slog.Int("properties", el.Len()),
	)

	return el, nil
}

type xsdNormalizer struct {
	l      *Loader
	prefix string // prefix bound to the XSD namespace

	order        []*etree.Element
	elements     map[string]*etree.Element
	complexTypes map[string]*etree.Element
	simpleTypes  map[string]*etree.Element

	// complex nodes being expanded, keyed by "type:" or "element:" plus the global name
	inProgress map[string]*schema.Element
}

func newXSDNormalizer(l *Loader, root *etree.Element) *xsdNormalizer {
	n := &xsdNormalizer{
		l:            l,
		prefix:       root.Space,
		elements:     map[string]*etree.Element{},
		complexTypes: map[string]*etree.Element{},
		simpleTypes:  map[string]*etree.Element{},
		inProgress:   map[string]*schema.Element{},
	}

	for _, attr := range root.Attr {
		switch {
		case attr.Space == "xmlns" && attr.Value == xsdNamespace:
			n.prefix = attr.Key
		case attr.Space == "" && attr.Key == "xmlns" && attr.Value == xsdNamespace:
			n.prefix = ""
		}
	}

	for _, child := range root.ChildElements() {
		name := child.SelectAttrValue("name", "")
		if name == "" {
			continue
		}

		switch child.Tag {
		case "element":
			n.order = append(n.order, child)
			n.elements[name] = child
		case "complexType":
			n.complexTypes[name] = child
		case "simpleType":
			n.simpleTypes[name] = child
		}
	}

	return n
}

// particle normalizes an element particle, following ref and turning
// repeated elements (maxOccurs above one) into arrays.
func (n *xsdNormalizer) particle(decl *etree.Element, parent string, depth int) (*schema.Element, error) {
	target, key := decl, ""

	if ref := decl.SelectAttrValue("ref", ""); ref != "" {
		_, local := splitQName(ref)

		global, ok := n.elements[local]
		if !ok {
			n.l.unsupported("xsd", ref, parent)
			return schema.NewElement(match.PascalCase(local), schema.TagString), nil
		}

		target, key = global, "element:"+local
		if ancestor, ok := n.inProgress[key]; ok {
			return repeat(decl, recurrence(match.PascalCase(local), ancestor)), nil
		}
	}

	el, err := n.element(target, parent, depth, key)
	if err != nil {
		return nil, err
	}

	return repeat(decl, el), nil
}

func (n *xsdNormalizer) element(decl *etree.Element, parent string, depth int, key string) (*schema.Element, error) {
	name := match.PascalCase(decl.SelectAttrValue("name", ""))
	if name == "" {
		return nil, &SchemaFormatError{Format: "xsd", Path: parent, Err: errors.New("element without a name")}
	}

	if depth > maxXSDDepth {
		return nil, &SchemaFormatError{Format: "xsd", Path: parent, Err: fmt.Errorf("element %s nested too deep", name)}
	}

	qualified := name
	if parent != "" {
		qualified = parent + "_" + name
	}

	if ct := childElement(decl, "complexType"); ct != nil {
		return n.complex(name, qualified, ct, depth, key)
	}

	if st := childElement(decl, "simpleType"); st != nil {
		return schema.NewElement(name, n.simpleTag(st, qualified, 0)), nil
	}

	typeName := decl.SelectAttrValue("type", "")
	if typeName == "" {
		return schema.NewElement(name, schema.TagString), nil
	}

	prefix, local := splitQName(typeName)
	_, builtin := builtinTag(local)

	if prefix != n.prefix || !builtin {
		if ct, ok := n.complexTypes[local]; ok {
			typeKey := "type:" + local
			if ancestor, ok := n.inProgress[typeKey]; ok {
				return recurrence(name, ancestor), nil
			}

			return n.complex(name, qualified, ct, depth, typeKey)
		}

		if st, ok := n.simpleTypes[local]; ok {
			return schema.NewElement(name, n.simpleTag(st, qualified, 0)), nil
		}
	}

	return schema.NewElement(name, n.builtin(typeName, qualified)), nil
}

func (n *xsdNormalizer) complex(name, qualified string, ct *etree.Element, depth int, key string) (*schema.Element, error) {
	el := schema.NewElement(name, schema.ComplexTag(qualified))

	if key != "" {
		n.inProgress[key] = el
		defer delete(n.inProgress, key)
	}

	if err := n.content(el, ct, qualified, depth); err != nil {
		return nil, err
	}

	return el, nil
}

// content reads the particles and attributes of a complex type.
func (n *xsdNormalizer) content(el *schema.Element, node *etree.Element, qualified string, depth int) error {
	for _, child := range node.ChildElements() {
		switch child.Tag {
		case "sequence", "all":
			if err := n.content(el, child, qualified, depth); err != nil {
				return err
			}

		case "element":
			property, err := n.particle(child, qualified, depth+1)
			if err != nil {
				return err
			}

			property.Key = declName(child)
			el.AddProperty(property)

		case "attribute":
			if attribute := n.attribute(child, qualified); attribute != nil {
				el.AddProperty(attribute)
			}

		case "annotation", "anyAttribute":
			// no fields

		default:
			n.l.logger.Warn("unsupported XSD particle skipped",
				slog.String("particle", child.Tag),
				slog.String("path", qualified),
			)
			n.l.diags.AddWarning(diagnostic.CodeUnsupportedParticle,
				fmt.Sprintf("xsd %s skipped", child.Tag), el.Tag, qualified)
		}
	}

	return nil
}

func (n *xsdNormalizer) attribute(decl *etree.Element, qualified string) *schema.Element {
	rawName := decl.SelectAttrValue("name", "")
	if rawName == "" {
		rawName = decl.SelectAttrValue("ref", "")
		_, rawName = splitQName(rawName)
	}

	name := match.PascalCase(rawName)
	if name == "" {
		return nil
	}

	path := qualified + "_" + name
	tag := schema.TagString

	if st := childElement(decl, "simpleType"); st != nil {
		tag = n.simpleTag(st, path, 0)
	} else if typeName := decl.SelectAttrValue("type", ""); typeName != "" {
		tag = n.simpleTypeRef(typeName, path, 0)
	}

	el := schema.NewElement(name, tag)
	el.Key = rawName
	el.IsAttribute = true

	return el
}

// simpleTag resolves a simple type to the tag of its restriction base.
// Lists and unions are text.
func (n *xsdNormalizer) simpleTag(st *etree.Element, path string, depth int) string {
	restriction := childElement(st, "restriction")
	if restriction == nil {
		return schema.TagString
	}

	if base := restriction.SelectAttrValue("base", ""); base != "" {
		return n.simpleTypeRef(base, path, depth)
	}

	if inline := childElement(restriction, "simpleType"); inline != nil && depth < maxXSDDepth {
		return n.simpleTag(inline, path, depth+1)
	}

	return schema.TagString
}

func (n *xsdNormalizer) simpleTypeRef(typeName, path string, depth int) string {
	prefix, local := splitQName(typeName)
	_, builtin := builtinTag(local)

	if prefix != n.prefix || !builtin {
		if st, ok := n.simpleTypes[local]; ok && depth < maxXSDDepth {
			return n.simpleTag(st, path, depth+1)
		}
	}

	return n.builtin(typeName, path)
}

func (n *xsdNormalizer) builtin(typeName, path string) string {
	_, local := splitQName(typeName)

	tag, ok := builtinTag(local)
	if !ok {
		n.l.unsupported("xsd", typeName, path)
		return schema.TagString
	}

	return tag
}

// recurrence creates the element of a complex node met again inside its own
// expansion: it shares tag and properties with the outer node.
func recurrence(name string, ancestor *schema.Element) *schema.Element {
	return &schema.Element{
		Name:       name,
		Tag:        ancestor.Tag,
		Properties: ancestor.Properties,
	}
}

// declName returns the XML name of an element declaration or reference.
func declName(decl *etree.Element) string {
	if name := decl.SelectAttrValue("name", ""); name != "" {
		return name
	}

	_, local := splitQName(decl.SelectAttrValue("ref", ""))

	return local
}

// repeat wraps el into an array when decl allows more than one occurrence.
func repeat(decl *etree.Element, el *schema.Element) *schema.Element {
	maxOccurs := decl.SelectAttrValue("maxOccurs", "1")
	if maxOccurs != "unbounded" {
		if n, err := strconv.Atoi(maxOccurs); err != nil || n <= 1 {
			return el
		}
	}

	array := schema.NewElement(el.Name, schema.TagArray)
	array.Items = el

	return array
}

func childElement(el *etree.Element, tag string) *etree.Element {
	for _, child := range el.ChildElements() {
		if child.Tag == tag {
			return child
		}
	}

	return nil
}
