package bind

import (
	"fmt"
	"reflect"

	"schema-typer/internal/caster"
)

// mapping binds every instance field into a string keyed map, keyed by
// field name.
func (b *Binder) mapping(inst *caster.Instance, dst reflect.Value, path string) error {
	mapType := dst.Type()
	m := reflect.MakeMapWithSize(mapType, len(inst.Type().Fields))

	for _, entry := range inst.Fields() {
		v := reflect.New(mapType.Elem()).Elem()

		if err := b.value(entry.Value, v, joinPath(path, entry.Key)); err != nil {
			return fmt.Errorf("map value %s: %w", entry.Key, err)
		}

		m.SetMapIndex(reflect.ValueOf(entry.Key).Convert(mapType.Key()), v)
	}

	dst.Set(m)

	return nil
}
