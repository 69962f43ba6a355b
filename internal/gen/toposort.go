package gen

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"schema-typer/internal/synth"
)

// ErrCycle is returned when definitions refer to each other in a cycle.
var ErrCycle = errors.New("cycle detected")

const (
	unvisited = iota
	visiting
	visited
)

// dependencyOrder lists defs so that every definition follows the ones its
// fields refer to. Definitions are visited in the given order and so are the
// references of each definition, which keeps the result deterministic.
// Self references and names missing from defs are ignored.
func dependencyOrder(defs []*synth.TypeDefinition) ([]*synth.TypeDefinition, error) {
	index := make(map[string]int, len(defs))
	for i, def := range defs {
		index[def.Name] = i
	}

	state := make([]int, len(defs))
	order := make([]*synth.TypeDefinition, 0, len(defs))

	var chain []string

	var visit func(i int) error
	visit = func(i int) error {
		switch state[i] {
		case visited:
			return nil
		case visiting:
			return fmt.Errorf("%w: %s", ErrCycle, strings.Join(append(chain, defs[i].Name), " -> "))
		}

		state[i] = visiting
		chain = append(chain, defs[i].Name)

		for _, j := range references(defs[i], index) {
			if err := visit(j); err != nil {
				return err
			}
		}

		chain = chain[:len(chain)-1]
		state[i] = visited
		order = append(order, defs[i])

		return nil
	}

	for i := range defs {
		if err := visit(i); err != nil {
			return nil, err
		}
	}

	return order, nil
}

// references returns the positions of the definitions def refers to,
// ascending and without duplicates.
func references(def *synth.TypeDefinition, index map[string]int) []int {
	var deps []int

	for _, f := range def.Fields {
		ref := refOf(f.Type)
		if ref == def.Name {
			continue
		}

		if j, ok := index[ref]; ok {
			deps = append(deps, j)
		}
	}

	slices.Sort(deps)

	return slices.Compact(deps)
}
