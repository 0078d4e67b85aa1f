package descriptor

import (
	"fmt"
	"time"
)

// ConstructFunc builds a concrete record instance from the ordered field
// values. It is the canonical constructor: its argument order matches the
// declared field order exactly.
type ConstructFunc func(Args) (any, error)

// DeconstructFunc reverses a constructor, yielding the ordered field values
// of an existing instance. The override merger relies on it to rebuild
// instances without mutation.
type DeconstructFunc func(any) ([]any, error)

// Record describes a registered record type: an ordered field list plus the
// canonical constructor/deconstructor pair.
type Record struct {
	Name   string
	Fields []Field

	construct   ConstructFunc
	deconstruct DeconstructFunc
}

// NewRecord validates and assembles a record descriptor. The deconstructor
// may be nil for records that never participate in override merging.
func NewRecord(name string, fields []Field, construct ConstructFunc, deconstruct DeconstructFunc) (Record, error) {
	if name == "" {
		return Record{}, fmt.Errorf("descriptor: record name is required")
	}
	if construct == nil {
		return Record{}, &NotARecordTypeError{Name: name, Reason: "no canonical constructor"}
	}

	seen := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		if field.Name == "" {
			return Record{}, fmt.Errorf("descriptor: record %q has an unnamed field", name)
		}
		if _, dup := seen[field.Name]; dup {
			return Record{}, fmt.Errorf("descriptor: record %q declares field %q twice", name, field.Name)
		}
		seen[field.Name] = struct{}{}
		if err := validateType(field.Type); err != nil {
			return Record{}, fmt.Errorf("descriptor: record %q field %q: %w", name, field.Name, err)
		}
	}

	return Record{
		Name:        name,
		Fields:      append([]Field(nil), fields...),
		construct:   construct,
		deconstruct: deconstruct,
	}, nil
}

// MustNewRecord panics when construction fails. Useful for package-level
// descriptor declarations.
func MustNewRecord(name string, fields []Field, construct ConstructFunc, deconstruct DeconstructFunc) Record {
	rec, err := NewRecord(name, fields, construct, deconstruct)
	if err != nil {
		panic(err)
	}
	return rec
}

func validateType(t Type) error {
	switch t.Kind {
	case KindString, KindInteger, KindFloat, KindBoolean, KindTime:
		return nil
	case KindEnum:
		if len(t.Variants) == 0 {
			return fmt.Errorf("enum type declares no variants")
		}
		return nil
	case KindOptional, KindSlice:
		if t.Elem == nil {
			return fmt.Errorf("%s type is missing its element type", t.Kind)
		}
		return validateType(*t.Elem)
	case KindMap:
		if t.Key == nil || t.Elem == nil {
			return fmt.Errorf("map type is missing key or value type")
		}
		if err := validateType(*t.Key); err != nil {
			return err
		}
		return validateType(*t.Elem)
	case KindRecord:
		if t.Record == "" {
			return fmt.Errorf("record type is missing its record name")
		}
		return nil
	default:
		return fmt.Errorf("unknown kind %q", t.Kind)
	}
}

// New invokes the canonical constructor after checking arity.
func (r Record) New(values []any) (any, error) {
	if len(values) != len(r.Fields) {
		return nil, fmt.Errorf("descriptor: record %q expects %d values, got %d", r.Name, len(r.Fields), len(values))
	}
	return r.construct(Args{record: r.Name, values: values})
}

// Values deconstructs an instance back into its ordered field values.
func (r Record) Values(instance any) ([]any, error) {
	if r.deconstruct == nil {
		return nil, fmt.Errorf("descriptor: record %q has no deconstructor", r.Name)
	}
	values, err := r.deconstruct(instance)
	if err != nil {
		return nil, err
	}
	if len(values) != len(r.Fields) {
		return nil, fmt.Errorf("descriptor: record %q deconstructed into %d values, want %d", r.Name, len(values), len(r.Fields))
	}
	return values, nil
}

// CanDeconstruct reports whether the record registered a deconstructor.
func (r Record) CanDeconstruct() bool {
	return r.deconstruct != nil
}

// FieldIndex returns the declared position of a field.
func (r Record) FieldIndex(name string) (int, bool) {
	for i, field := range r.Fields {
		if field.Name == name {
			return i, true
		}
	}
	return 0, false
}

// Args wraps the ordered value list handed to a constructor. Accessors assert
// the dynamic convention and panic with the record and index on mismatch,
// which points straight at a mis-declared descriptor.
type Args struct {
	record string
	values []any
}

// Len returns the number of values.
func (a Args) Len() int { return len(a.values) }

// Get returns the raw value at index i.
func (a Args) Get(i int) any { return a.values[i] }

// IsNil reports whether the value at index i is absent.
func (a Args) IsNil(i int) bool { return a.values[i] == nil }

// String returns the value at index i as a string.
func (a Args) String(i int) string { return arg[string](a, i) }

// Int returns the value at index i as an int64.
func (a Args) Int(i int) int64 { return arg[int64](a, i) }

// Float returns the value at index i as a float64.
func (a Args) Float(i int) float64 { return arg[float64](a, i) }

// Bool returns the value at index i as a bool.
func (a Args) Bool(i int) bool { return arg[bool](a, i) }

// Time returns the value at index i as a time.Time.
func (a Args) Time(i int) time.Time { return arg[time.Time](a, i) }

// Slice returns the value at index i as a []any.
func (a Args) Slice(i int) []any { return arg[[]any](a, i) }

// Map returns the value at index i as a map[any]any.
func (a Args) Map(i int) map[any]any { return arg[map[any]any](a, i) }

func arg[T any](a Args, i int) T {
	v, ok := a.values[i].(T)
	if !ok {
		var want T
		panic(fmt.Sprintf("descriptor: record %q argument %d is %T, want %T", a.record, i, a.values[i], want))
	}
	return v
}

// RecordArg returns the nested record value at index i as T.
func RecordArg[T any](a Args, i int) T {
	return arg[T](a, i)
}

// OptionalArg returns the optional value at index i as *T, or nil when the
// value is absent.
func OptionalArg[T any](a Args, i int) *T {
	if a.values[i] == nil {
		return nil
	}
	v := arg[T](a, i)
	return &v
}

// Ptr returns a pointer to v. Convenience for constructors of records with
// optional fields.
func Ptr[T any](v T) *T {
	return &v
}
