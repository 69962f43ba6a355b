package caster

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/samber/lo"

	"schema-typer/internal/diagnostic"
	"schema-typer/internal/match"
	"schema-typer/internal/object"
	"schema-typer/internal/synth"
	"schema-typer/primitive"
)

// maxSuggestions bounds the hints attached to an unmatched key.
const maxSuggestions = 3

// FromObject materializes def from a runtime object. Every entry whose key
// normalizes to a field name is coerced into the field type, later entries
// overwriting earlier ones; fields without an entry keep their zero value.
// Entries matching no field are reported as unmatched_field infos with
// spelling suggestions. obj is an *object.Object or a map[string]any.
func (e *Engine) FromObject(obj any, def *synth.TypeDefinition) (*Instance, error) {
	e.diags = diagnostic.Diagnostics{}

	return e.fromObject(obj, def, nil, 0)
}

func (e *Engine) fromObject(obj any, def *synth.TypeDefinition, path []string, depth int) (*Instance, error) {
	if depth > e.maxDepth {
		return nil, fmt.Errorf("%w at %s", ErrMaxDepth, joinPath(path))
	}

	src, err := e.asObject(obj)
	if err != nil {
		return nil, err
	}

	inst := NewInstance(def)

	src.Range(func(key string, value any) bool {
		field, ok := fieldFor(def, key)
		if !ok {
			e.unmatched(def, key, value, path)
			return true
		}

		var coerced any
		coerced, err = e.coerce(value, field.Type, append(path[:len(path):len(path)], field.Name), depth)
		if err != nil {
			return false
		}

		err = inst.Set(field.Name, coerced)

		return err == nil
	})

	if err != nil {
		return nil, err
	}

	e.logger.Debug("instance materialized",
		slog.String("type", def.Name),
		slog.String("path", joinPath(path)),
	)

	return inst, nil
}

// asObject accepts *object.Object as is and populates a fresh object from
// a map document.
func (e *Engine) asObject(obj any) (*object.Object, error) {
	if o, ok := obj.(*object.Object); ok && o != nil {
		return o, nil
	}

	src := object.New()

	diags, err := object.Populate(src, obj, object.WithLogger(e.logger), object.WithMaxDepth(e.maxDepth))
	if err != nil {
		return nil, err
	}

	e.diags.Merge(diags)

	return src, nil
}

// fieldFor finds the field a source key names: equal ignoring case either
// as is or after PascalCase normalization.
func fieldFor(def *synth.TypeDefinition, key string) (synth.Field, bool) {
	normalized := match.PascalCase(key)

	return lo.Find(def.Fields, func(f synth.Field) bool {
		return strings.EqualFold(key, f.Name) || strings.EqualFold(normalized, f.Name)
	})
}

func (e *Engine) unmatched(def *synth.TypeDefinition, key string, value any, path []string) {
	targets := lo.Map(def.Fields, func(f synth.Field, _ int) match.Target {
		var kind primitive.KindEnum
		if f.Type.Shape == synth.ShapePrimitive {
			kind = f.Type.Kind
		}

		return match.Target{Name: f.Name, Kind: kind}
	})

	suggestions := lo.FilterMap(match.RankCandidates(key, primitive.FromValue(value), targets).Top(maxSuggestions),
		func(c match.Candidate, _ int) (string, bool) {
			return c.Target.Name, c.NameScore >= match.SuggestThreshold
		})

	fieldPath := joinPath(append(path[:len(path):len(path)], key))

	e.logger.Debug("unmatched key",
		slog.String("type", def.Name),
		slog.String("key", fieldPath),
		slog.Any("suggestions", suggestions),
	)

	e.diags.AddInfo(diagnostic.CodeUnmatchedField,
		fmt.Sprintf("%s has no field for %q", def.Name, key),
		def.Name, fieldPath, suggestions...)
}
