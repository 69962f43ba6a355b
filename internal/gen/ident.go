package gen

import (
	"go/token"
	"strconv"

	"schema-typer/internal/match"
)

// Stem hands out identifiers derived from one stem that are not taken yet:
// the stem itself first, then stem2, stem3 and so on. A nil namespace is
// treated as a free namespace.
type Stem struct {
	taken map[string]struct{}
	stem  string
	last  int
}

// NewStem creates a Stem drawing from namespace. Names it hands out are
// added to namespace.
func NewStem(stem string, namespace map[string]struct{}) *Stem {
	return &Stem{
		taken: namespace,
		stem:  stem,
	}
}

func (s *Stem) Next() string {
	if s.taken == nil {
		s.taken = make(map[string]struct{})
	}

	for {
		s.last++

		name := s.stem
		if s.last > 1 {
			name += strconv.Itoa(s.last)
		}

		if _, ok := s.taken[name]; !ok {
			s.taken[name] = struct{}{}
			return name
		}
	}
}

// identifiers maps schema names to unique Go identifiers. Exported
// identifiers are kept; others are PascalCased and numbered on collision.
func identifiers(names []string) map[string]string {
	taken := make(map[string]struct{}, len(names))
	idents := make(map[string]string, len(names))

	for _, name := range names {
		if token.IsIdentifier(name) && token.IsExported(name) {
			taken[name] = struct{}{}
			idents[name] = name
		}
	}

	for _, name := range names {
		if _, ok := idents[name]; ok {
			continue
		}

		stem := match.PascalCase(name)
		if !token.IsIdentifier(stem) {
			stem = "X" + stem
		}

		if !token.IsIdentifier(stem) {
			stem = "X"
		}

		idents[name] = NewStem(stem, taken).Next()
	}

	return idents
}
