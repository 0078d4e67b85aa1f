package fixture

import "github.com/goliatone/go-fixgen/pkg/descriptor"

// Instance is a generated record value together with the ordered field values
// it was constructed from. Instances are immutable: merging overrides
// produces a new Instance, never a mutation.
type Instance struct {
	record descriptor.Record
	values []any
	value  any
}

// Record returns the descriptor the instance was generated from.
func (i Instance) Record() descriptor.Record {
	return i.record
}

// Value returns the constructed record value.
func (i Instance) Value() any {
	return i.value
}

// Values returns a defensive copy of the ordered field values.
func (i Instance) Values() []any {
	return append([]any(nil), i.values...)
}

// Field returns the generated value of a named field.
func (i Instance) Field(name string) (any, bool) {
	idx, ok := i.record.FieldIndex(name)
	if !ok {
		return nil, false
	}
	return i.values[idx], true
}
