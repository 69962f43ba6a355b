package bind

import (
	"errors"
	"reflect"
	"strings"

	"github.com/samber/lo"

	"schema-typer/internal/caster"
	"schema-typer/internal/synth"
)

type FieldMatch struct {
	SrcName string
	Found   bool
}

// StructPair identifies the binding of one definition into one struct type.
type StructPair struct {
	Def *synth.TypeDefinition
	Dst reflect.Type
}

type fieldPlan struct {
	index int    // destination field index
	name  string // instance field name
}

type structPlan struct {
	fields    []fieldPlan
	unmatched []string // instance fields no destination field takes
}

// plan returns the field plan of pair, computing it on first use.
func (b *Binder) plan(pair StructPair) *structPlan {
	b.mu.Lock()
	defer b.mu.Unlock()

	if p, ok := b.plans[pair]; ok {
		return p
	}

	if b.plans == nil {
		b.plans = make(map[StructPair]*structPlan)
	}

	p := buildPlan(pair.Def, pair.Dst)
	b.plans[pair] = p

	return p
}

func buildPlan(def *synth.TypeDefinition, dst reflect.Type) *structPlan {
	p := &structPlan{}
	used := make(map[string]struct{})

	for i := 0; i < dst.NumField(); i++ {
		df := dst.Field(i)
		if !df.IsExported() {
			continue
		}

		match := matchField(def, df)
		if !match.Found {
			continue
		}

		p.fields = append(p.fields, fieldPlan{index: i, name: match.SrcName})
		used[match.SrcName] = struct{}{}
	}

	p.unmatched = lo.Filter(def.FieldNames(), func(name string, _ int) bool {
		_, ok := used[name]
		return !ok
	})

	return p
}

func (b *Binder) structure(inst *caster.Instance, dst reflect.Value, path string) error {
	p := b.plan(StructPair{Def: inst.Type(), Dst: dst.Type()})

	if b.strict && len(p.unmatched) > 0 {
		errs := lo.Map(p.unmatched, func(name string, _ int) error {
			return &BindError{Path: joinPath(path, name), Src: instanceType, Dst: dst.Type(), Err: ErrUnmatchedField}
		})

		return errors.Join(errs...)
	}

	for _, f := range p.fields {
		v, _ := inst.Get(f.name)

		if err := b.value(v, dst.Field(f.index), joinPath(path, f.name)); err != nil {
			return err
		}
	}

	return nil
}

// matchField tries: `bind:"Name"`, json tag match, exact name, case-insensitive name.
// A bind tag of "-" excludes the field.
func matchField(def *synth.TypeDefinition, dstField reflect.StructField) FieldMatch {
	// 1) bind tag
	if tag := dstField.Tag.Get("bind"); tag != "" {
		if tag == "-" {
			return FieldMatch{}
		}

		if _, ok := def.Field(tag); ok {
			return FieldMatch{SrcName: tag, Found: true}
		}
	}

	names := def.FieldNames()

	// 2) json tag, which generated types derive from the field name
	if dstJSON := jsonTagName(dstField); dstJSON != "" {
		if name, ok := lo.Find(names, func(name string) bool {
			return strings.EqualFold(name, dstJSON)
		}); ok {
			return FieldMatch{SrcName: name, Found: true}
		}
	}

	// 3) exact name
	if _, ok := def.Field(dstField.Name); ok {
		return FieldMatch{SrcName: dstField.Name, Found: true}
	}

	// 4) case-insensitive
	if name, ok := lo.Find(names, func(name string) bool {
		return strings.EqualFold(name, dstField.Name)
	}); ok {
		return FieldMatch{SrcName: name, Found: true}
	}

	return FieldMatch{}
}

func jsonTagName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" || tag == "-" {
		return ""
	}

	// trim options
	if idx := strings.IndexByte(tag, ','); idx >= 0 {
		tag = tag[:idx]
	}

	return tag
}
