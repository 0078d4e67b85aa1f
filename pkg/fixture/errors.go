package fixture

import (
	"fmt"
	"strings"
)

// FieldError annotates a failure with the enclosing record and the dotted
// path of the offending field, e.g. Order.customer.email. Unwrap exposes the
// underlying cause so callers can match the rule or descriptor error types.
type FieldError struct {
	Path string
	Err  error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("fixture: %s: %v", e.Path, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// UnknownFieldError reports an override naming a field the record does not
// declare.
type UnknownFieldError struct {
	Record string
	Field  string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("fixture: record %q has no field %q", e.Record, e.Field)
}

// CyclicRecordError reports a record that, directly or indirectly, contains a
// field of its own type. Recursive generation would not terminate, so cyclic
// record graphs are rejected.
type CyclicRecordError struct {
	Record string
	Path   []string
}

func (e *CyclicRecordError) Error() string {
	return fmt.Sprintf("fixture: cyclic record graph: %s", strings.Join(e.Path, " -> "))
}
