package fixture

import (
	"fmt"
	"reflect"

	"github.com/goliatone/go-fixgen/pkg/descriptor"
)

// Generate produces a fully populated instance of T using the record bound to
// T in the generator's registry. Override sets, when supplied, are merged in
// argument order and applied after generation.
func Generate[T any](g *Generator, overrides ...Overrides) (T, error) {
	var zero T

	goType := reflect.TypeOf((*T)(nil)).Elem()
	name, ok := g.registry.NameFor(goType)
	if !ok {
		return zero, &descriptor.NotARecordTypeError{
			Name:   goType.String(),
			Reason: "no record bound to this Go type",
		}
	}

	var combined Overrides
	if len(overrides) > 0 {
		combined = make(Overrides)
		for _, set := range overrides {
			for field, value := range set {
				combined[field] = value
			}
		}
	}

	instance, err := g.BuildWith(name, combined)
	if err != nil {
		return zero, err
	}

	typed, ok := instance.Value().(T)
	if !ok {
		return zero, fmt.Errorf("fixture: record %q constructed %T, want %s", name, instance.Value(), goType)
	}
	return typed, nil
}

// MustGenerate panics when generation fails. Useful in test setup where the
// descriptor set is known good.
func MustGenerate[T any](g *Generator, overrides ...Overrides) T {
	value, err := Generate[T](g, overrides...)
	if err != nil {
		panic(err)
	}
	return value
}
