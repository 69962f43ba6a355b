package caster

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/samber/lo"

	"schema-typer/internal/diagnostic"
	"schema-typer/internal/match"
	"schema-typer/internal/synth"
)

// ParseXML parses an XML document and returns its root element.
func ParseXML(data []byte) (*etree.Element, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedXML, err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: no root element", ErrMalformedXML)
	}

	return root, nil
}

// FromXML materializes def from an XML element. For every field the
// attributes are searched first, then the child elements; names match
// ignoring case, as is or after PascalCase normalization. Struct fields
// recurse into the child, sequence fields collect every matching child and
// leaves parse the text of the first one. Empty text yields the zero value.
// Text that does not parse fails with a *CoercionError naming the field.
func (e *Engine) FromXML(el *etree.Element, def *synth.TypeDefinition) (*Instance, error) {
	e.diags = diagnostic.Diagnostics{}

	return e.fromXML(el, def, nil, 0)
}

func (e *Engine) fromXML(el *etree.Element, def *synth.TypeDefinition, path []string, depth int) (*Instance, error) {
	if depth > e.maxDepth {
		return nil, fmt.Errorf("%w at %s", ErrMaxDepth, joinPath(path))
	}

	inst := NewInstance(def)
	usedAttrs := make(map[int]struct{})
	usedChildren := make(map[*etree.Element]struct{})
	children := el.ChildElements()

	for _, field := range def.Fields {
		fieldPath := append(path[:len(path):len(path)], field.Name)

		value, found, err := e.xmlAttribute(el, field, fieldPath, usedAttrs)
		if err != nil {
			return nil, err
		}

		if !found {
			matching := lo.Filter(children, func(child *etree.Element, _ int) bool {
				return xmlNameMatches(child.Tag, field.Name)
			})

			if len(matching) == 0 {
				continue
			}

			for _, child := range matching {
				usedChildren[child] = struct{}{}
			}

			value, err = e.xmlChildren(matching, field.Type, fieldPath, depth)
			if err != nil {
				return nil, err
			}
		}

		if err := inst.Set(field.Name, value); err != nil {
			return nil, err
		}
	}

	e.reportUnusedXML(el, def, path, usedAttrs, usedChildren)

	e.logger.Debug("instance materialized from xml",
		slog.String("type", def.Name),
		slog.String("element", el.Tag),
	)

	return inst, nil
}

func (e *Engine) xmlAttribute(el *etree.Element, field synth.Field, path []string, used map[int]struct{}) (any, bool, error) {
	lowered := strings.ToLower(field.Name)

	for i, attr := range el.Attr {
		if isNamespaceAttr(attr) {
			continue
		}

		if !strings.EqualFold(attr.Key, lowered) && !xmlNameMatches(attr.Key, field.Name) {
			continue
		}

		used[i] = struct{}{}

		value, err := e.xmlText(attr.Value, field.Type, path)

		return value, true, err
	}

	return nil, false, nil
}

func (e *Engine) xmlChildren(matching []*etree.Element, t synth.Type, path []string, depth int) (any, error) {
	inner := t.NonNull()

	if inner.IsSequence() {
		elem := synth.Any()
		if inner.Elem != nil {
			elem = *inner.Elem
		}

		items := make([]any, 0, len(matching))
		for i, child := range matching {
			item, err := e.xmlValue(child, elem, append(path[:len(path):len(path)], strconv.Itoa(i)), depth+1)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}

		return items, nil
	}

	return e.xmlValue(matching[0], t, path, depth)
}

func (e *Engine) xmlValue(child *etree.Element, t synth.Type, path []string, depth int) (any, error) {
	inner := t.NonNull()
	if inner.Shape != synth.ShapeStruct {
		return e.xmlText(child.Text(), t, path)
	}

	def, err := e.definition(inner.Ref)
	if err != nil {
		return nil, err
	}

	return e.fromXML(child, def, path, depth+1)
}

// xmlText converts attribute or element text. Empty text is absent.
func (e *Engine) xmlText(text string, t synth.Type, path []string) (any, error) {
	if text == "" {
		return Zero(t), nil
	}

	value, err := e.coerce(text, t, path, 0)
	if err != nil {
		var coercion *CoercionError
		if errors.As(err, &coercion) && coercion.Path == "" {
			coercion.Path = joinPath(path)
		}

		return nil, err
	}

	return value, nil
}

func (e *Engine) reportUnusedXML(el *etree.Element, def *synth.TypeDefinition, path []string, usedAttrs map[int]struct{}, usedChildren map[*etree.Element]struct{}) {
	fields := def.FieldNames()

	report := func(kind, name string) {
		fieldPath := joinPath(append(path[:len(path):len(path)], name))
		e.diags.AddInfo(diagnostic.CodeUnmatchedField,
			fmt.Sprintf("%s has no field for %s %q", def.Name, kind, name),
			def.Name, fieldPath, match.Suggest(match.PascalCase(name), fields, maxSuggestions)...)
	}

	for i, attr := range el.Attr {
		if _, ok := usedAttrs[i]; ok || isNamespaceAttr(attr) {
			continue
		}

		report("attribute", attr.Key)
	}

	for _, child := range el.ChildElements() {
		if _, ok := usedChildren[child]; ok {
			continue
		}

		report("element", child.Tag)
	}
}

// xmlNameMatches compares an XML name with a field name ignoring case, as
// is or after PascalCase normalization.
func xmlNameMatches(name, field string) bool {
	return strings.EqualFold(name, field) || strings.EqualFold(match.PascalCase(name), field)
}

func isNamespaceAttr(attr etree.Attr) bool {
	return attr.Space == "xmlns" || (attr.Space == "" && attr.Key == "xmlns") || attr.Space == "xsi"
}
