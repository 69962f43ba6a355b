package synth

import (
	"log/slog"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"schema-typer/internal/schema"
	"schema-typer/primitive"
)

// DefaultMaxDepth bounds the nesting Synthesize descends into.
const DefaultMaxDepth = 64

// primitiveKinds maps leaf tags onto semantic kinds. Tags missing here
// resolve to Any.
var primitiveKinds = map[string]primitive.KindEnum{
	schema.TagString:   primitive.KindString,
	schema.TagInteger:  primitive.KindInt32,
	schema.TagLong:     primitive.KindInt64,
	schema.TagShort:    primitive.KindInt16,
	schema.TagBoolean:  primitive.KindBool,
	schema.TagDecimal:  primitive.KindDecimal,
	schema.TagFloat:    primitive.KindFloat32,
	schema.TagDouble:   primitive.KindFloat64,
	schema.TagDatetime: primitive.KindTime,
	schema.TagDate:     primitive.KindTime,
	schema.TagTime:     primitive.KindTime,
	schema.TagTimespan: primitive.KindDuration,
	schema.TagBytes:    primitive.KindBytes,
}

// PrimitiveOf maps a leaf tag onto its semantic type.
func PrimitiveOf(tag string) (Type, bool) {
	kind, ok := primitiveKinds[tag]
	if !ok {
		return Any(), false
	}

	return Primitive(kind), true
}

// Synthesizer turns schema elements into type definitions.
type Synthesizer struct {
	logger   *slog.Logger
	maxDepth int
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithMaxDepth overrides DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(s *Synthesizer) {
		s.maxDepth = depth
	}
}

// WithLogger sets the logger synthesis steps are reported to.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Synthesizer) {
		s.logger = logger
	}
}

// New creates a Synthesizer.
func New(opts ...Option) *Synthesizer {
	s := &Synthesizer{
		logger:   slog.Default(),
		maxDepth: DefaultMaxDepth,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Synthesize defines one type per complex node of root in reg and returns
// the definition of root, named name. Nested XSD definitions are named after
// their Complex_ tag, other nested definitions {Parent}_{Property}; complex array items get an Item suffix. Nothing is defined
// when synthesis fails.
func (s *Synthesizer) Synthesize(root *schema.Element, name string, reg *Registry) (*TypeDefinition, error) {
	pass := &pass{
		Synthesizer: s,
		active:      make(map[string]struct{}),
		elements:    make(map[*schema.Element]struct{}),
		properties:  make(map[*orderedmap.OrderedMap[string, *schema.Element]]struct{}),
	}

	def, err := pass.definition(root, name, 0)
	if err != nil {
		return nil, err
	}

	for _, d := range pass.defs {
		if err := reg.Define(d); err != nil {
			return nil, err
		}
	}

	s.logger.Debug("types synthesized",
		slog.String("root", name),
		slog.Int("definitions", len(pass.defs)),
	)

	return def, nil
}

// Synthesize runs a default Synthesizer.
func Synthesize(root *schema.Element, name string, reg *Registry) (*TypeDefinition, error) {
	return New().Synthesize(root, name, reg)
}

// pass holds the state of one Synthesize call.
type pass struct {
	*Synthesizer

	chain      []string
	active     map[string]struct{}
	elements   map[*schema.Element]struct{}
	properties map[*orderedmap.OrderedMap[string, *schema.Element]]struct{}
	defs       []*TypeDefinition
}

func (p *pass) definition(el *schema.Element, name string, depth int) (*TypeDefinition, error) {
	if depth > p.maxDepth {
		return nil, ErrMaxDepth
	}

	keys := []string{name}
	if tag, ok := complexTag(el); ok && tag != name {
		keys = append(keys, tag)
	}

	if err := p.enter(el, name, keys); err != nil {
		return nil, err
	}
	defer p.leave(el, keys)

	def := &TypeDefinition{Name: name}
	p.defs = append(p.defs, def)

	if el.Properties != nil {
		for pair := el.Properties.Oldest(); pair != nil; pair = pair.Next() {
			t, err := p.typeOf(pair.Value, name, pair.Key, depth)
			if err != nil {
				return nil, err
			}

			def.Fields = append(def.Fields, Field{
				Name:      pair.Key,
				Key:       pair.Value.Key,
				Type:      t,
				Attribute: pair.Value.IsAttribute,
			})
		}
	}

	p.logger.Debug("type defined",
		slog.String("name", name),
		slog.Int("fields", len(def.Fields)),
	)

	return def, nil
}

func (p *pass) typeOf(el *schema.Element, parent, key string, depth int) (Type, error) {
	switch {
	case el.IsArray():
		if el.Items == nil {
			return SequenceOf(Any()), nil
		}

		elem, err := p.typeOf(el.Items, parent, key+"Item", depth+1)
		if err != nil {
			return Type{}, err
		}

		return SequenceOf(elem), nil

	case el.IsComplex():
		name, ok := complexTag(el)
		if !ok {
			name = parent + "_" + key
		}

		if _, err := p.definition(el, name, depth+1); err != nil {
			return Type{}, err
		}

		return Ref(name), nil
	}

	t, ok := PrimitiveOf(el.Tag)
	if !ok {
		p.logger.Debug("tag resolved to any",
			slog.String("type", parent),
			slog.String("field", key),
			slog.String("tag", el.Tag),
		)
	}

	return t, nil
}

func (p *pass) enter(el *schema.Element, name string, keys []string) error {
	_, seenElement := p.elements[el]
	_, seenProperties := p.properties[el.Properties]

	cyclic := seenElement || (el.Properties != nil && seenProperties)
	for _, key := range keys {
		if _, ok := p.active[key]; ok {
			cyclic = true
		}
	}

	if cyclic {
		return &CyclicSchemaError{Name: name, Chain: append([]string(nil), p.chain...)}
	}

	p.chain = append(p.chain, name)
	p.elements[el] = struct{}{}
	if el.Properties != nil {
		p.properties[el.Properties] = struct{}{}
	}
	for _, key := range keys {
		p.active[key] = struct{}{}
	}

	return nil
}

func (p *pass) leave(el *schema.Element, keys []string) {
	p.chain = p.chain[:len(p.chain)-1]
	delete(p.elements, el)
	delete(p.properties, el.Properties)
	for _, key := range keys {
		delete(p.active, key)
	}
}

// complexTag returns the Complex_ tag of an XSD complex element. Nested XSD
// definitions are named after it.
func complexTag(el *schema.Element) (string, bool) {
	if !strings.HasPrefix(el.Tag, schema.ComplexPrefix) {
		return "", false
	}

	return el.Tag, true
}
