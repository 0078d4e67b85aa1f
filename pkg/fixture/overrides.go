package fixture

import (
	"fmt"
	"sort"

	"github.com/goliatone/go-fixgen/pkg/descriptor"
)

// Overrides is a partial mapping from field name to replacement value. Each
// value is type-checked against the field's declared type before it is
// applied.
type Overrides map[string]any

// Merge applies overrides to a generated instance, producing a new instance
// via the record's canonical constructor. The input instance is never
// mutated. Unknown field names fail with UnknownFieldError; incompatible
// values fail with a TypeMismatchError carrying the field path. In either
// case no partially overridden instance is produced.
func (g *Generator) Merge(instance Instance, overrides Overrides) (Instance, error) {
	if instance.record.Name == "" {
		return Instance{}, fmt.Errorf("fixture: cannot merge into an empty instance")
	}
	if len(overrides) == 0 {
		return instance, nil
	}

	rec := instance.record
	values := instance.Values()

	// Deterministic application order keeps error messages stable.
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		idx, ok := rec.FieldIndex(name)
		if !ok {
			return Instance{}, &UnknownFieldError{Record: rec.Name, Field: name}
		}
		normalized, err := descriptor.Normalize(g.registry, rec.Fields[idx].Type, overrides[name])
		if err != nil {
			return Instance{}, annotate(rec.Name+"."+name, err)
		}
		values[idx] = normalized
	}

	value, err := rec.New(values)
	if err != nil {
		return Instance{}, fmt.Errorf("fixture: construct %s: %w", rec.Name, err)
	}
	return Instance{record: rec, values: values, value: value}, nil
}
