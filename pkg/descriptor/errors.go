package descriptor

import "fmt"

// NotARecordTypeError reports that a name or Go type has no usable record
// descriptor: it was never registered, or it was declared without a canonical
// constructor.
type NotARecordTypeError struct {
	Name   string
	Reason string
}

func (e *NotARecordTypeError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "not registered"
	}
	return fmt.Sprintf("descriptor: %q is not a record type: %s", e.Name, reason)
}

// TypeMismatchError reports a value whose dynamic type does not satisfy a
// field's declared type.
type TypeMismatchError struct {
	Declared Type
	Value    any
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("descriptor: value of type %T does not match declared type %s", e.Value, e.Declared.Describe())
}
