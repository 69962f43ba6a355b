package object

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/samber/lo"

	"schema-typer/internal/diagnostic"
	"schema-typer/primitive"
)

// Populate copies every entry of doc into dst under its raw key, overwriting
// existing fields. doc is an *Object or a map[string]any, the latter read in
// sorted key order. Values are converted to their natural runtime form:
// numbers become float64, nested objects become fresh populated objects and
// arrays are converted element by element. Nothing from doc is aliased.
//
// A field that cannot be converted is logged, recorded as a
// population_field_error diagnostic and skipped; the rest of the object is
// still populated. The error result is reserved for documents that are not
// objects at all.
func Populate(dst *Object, doc any, opts ...Option) (diagnostic.Diagnostics, error) {
	p := populator{options: applyOptions(opts)}

	if KindOf(doc) != ValueObject {
		return p.diags, fmt.Errorf("%w: got %T", ErrNotAnObject, doc)
	}

	p.populate(dst, doc, nil, 0)

	return p.diags, nil
}

// PopulateJSON decodes data and populates dst from the resulting object.
func PopulateJSON(dst *Object, data []byte, opts ...Option) (diagnostic.Diagnostics, error) {
	doc, err := Decode(data)
	if err != nil {
		return diagnostic.Diagnostics{}, err
	}

	return Populate(dst, doc, opts...)
}

type populator struct {
	options
	diags diagnostic.Diagnostics
}

func (p *populator) populate(dst *Object, doc any, path []string, depth int) {
	for _, entry := range entries(doc) {
		fieldPath := append(path[:len(path):len(path)], entry.Key)

		value, err := p.infer(entry.Value, fieldPath, depth)
		if err != nil {
			p.skip(&FieldError{Path: strings.Join(fieldPath, "."), Err: err})
			continue
		}

		dst.Set(entry.Key, value)
	}
}

func (p *populator) infer(v any, path []string, depth int) (any, error) {
	switch t := v.(type) {
	case nil, string, bool:
		return t, nil

	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("number %s: %w", t, err)
		}
		return f, nil

	case *Object, map[string]any:
		if depth >= p.maxDepth {
			return nil, ErrMaxDepth
		}

		nested := New()
		p.populate(nested, t, path, depth+1)

		return nested, nil

	case []any:
		items := make([]any, len(t))
		for i, item := range t {
			value, err := p.infer(item, append(path[:len(path):len(path)], fmt.Sprint(i)), depth)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}

			items[i] = value
		}

		return items, nil
	}

	kind := primitive.FromValue(v)
	switch {
	case kind.IsNumber():
		f, _ := primitive.ConvertNumber(v, primitive.KindFloat64)
		return f, nil
	case kind != 0:
		return cloneValue(v), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
	}
}

func (p *populator) skip(err *FieldError) {
	p.logger.LogAttrs(context.Background(), slog.LevelWarn, "skipping field during population",
		slog.String("field", err.Path),
		slog.String("error", err.Err.Error()),
	)

	p.diags.AddWarning(diagnostic.CodePopulationFieldError, err.Error(), "", err.Path)
}

// entries lists the key/value pairs of an object document.
func entries(doc any) []lo.Entry[string, any] {
	switch t := doc.(type) {
	case *Object:
		result := make([]lo.Entry[string, any], 0, t.Len())
		t.Range(func(name string, value any) bool {
			result = append(result, lo.Entry[string, any]{Key: name, Value: value})
			return true
		})
		return result

	case map[string]any:
		result := lo.ToPairs(t)
		sort.Slice(result, func(i, j int) bool {
			return result[i].Key < result[j].Key
		})
		return result
	}

	return nil
}
