package descriptor

// Kind enumerates the closed set of declared-type categories a field can
// have. Every kind has exactly one built-in generation rule; anything outside
// this set is rejected at registration time.
type Kind string

const (
	KindString   Kind = "string"
	KindInteger  Kind = "integer"
	KindFloat    Kind = "float"
	KindBoolean  Kind = "boolean"
	KindTime     Kind = "time"
	KindEnum     Kind = "enum"
	KindOptional Kind = "optional"
	KindSlice    Kind = "slice"
	KindMap      Kind = "map"
	KindRecord   Kind = "record"
)

// Type is a tagged variant describing a field's declared type. Exactly the
// members relevant to the Kind are populated: Elem for optional/slice and the
// map value, Key for the map key, Record for nested records, and Variants
// for enums (in declared order).
type Type struct {
	Kind     Kind
	Elem     *Type
	Key      *Type
	Record   string
	Variants []any
}

// String declares a plain string field.
func String() Type { return Type{Kind: KindString} }

// Integer declares a fixed-width signed integer field (int64 in the dynamic
// convention).
func Integer() Type { return Type{Kind: KindInteger} }

// Float declares a floating point field (float64 in the dynamic convention).
func Float() Type { return Type{Kind: KindFloat} }

// Boolean declares a boolean field.
func Boolean() Type { return Type{Kind: KindBoolean} }

// Time declares a temporal field carrying a time.Time value.
func Time() Type { return Type{Kind: KindTime} }

// Enum declares a closed set of named variants in declared order. Variants
// must be comparable values; generation always selects the first one.
func Enum(variants ...any) Type {
	return Type{Kind: KindEnum, Variants: append([]any(nil), variants...)}
}

// Optional declares an optional-of-elem field. Absent is represented as nil.
func Optional(elem Type) Type {
	return Type{Kind: KindOptional, Elem: &elem}
}

// Slice declares a sequence-of-elem field.
func Slice(elem Type) Type {
	return Type{Kind: KindSlice, Elem: &elem}
}

// Map declares a mapping field from key to value.
func Map(key, value Type) Type {
	return Type{Kind: KindMap, Key: &key, Elem: &value}
}

// RecordOf declares a nested record field referencing a registered record by
// name. The reference is resolved lazily, so mutually referencing records can
// be registered in any order.
func RecordOf(name string) Type {
	return Type{Kind: KindRecord, Record: name}
}

// Describe renders the type for error messages, e.g. "optional<record<Address>>".
func (t Type) Describe() string {
	switch t.Kind {
	case KindOptional:
		return "optional<" + t.Elem.Describe() + ">"
	case KindSlice:
		return "slice<" + t.Elem.Describe() + ">"
	case KindMap:
		return "map<" + t.Key.Describe() + "," + t.Elem.Describe() + ">"
	case KindRecord:
		return "record<" + t.Record + ">"
	default:
		return string(t.Kind)
	}
}

// Field pairs a name with a declared type. Field order inside a record is the
// declared order and is significant: generation walks fields in order and
// error messages reference fields by their position in that walk.
type Field struct {
	Name string
	Type Type
}

// Optional reports whether the field's declared type is optional-of-T.
func (f Field) Optional() bool {
	return f.Type.Kind == KindOptional
}
