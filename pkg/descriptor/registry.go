package descriptor

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// Registry stores record descriptors by name. It also keeps a Go-type index
// so the generic generation API can find the record registered for a concrete
// type; the reflect.Type is used purely as a lookup key and is never walked.
type Registry struct {
	mu      sync.RWMutex
	records map[string]Record
	types   map[reflect.Type]string
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		records: make(map[string]Record),
		types:   make(map[reflect.Type]string),
	}
}

// Register adds a record by its Name. Duplicate names return an error.
func (r *Registry) Register(rec Record) error {
	if rec.Name == "" {
		return fmt.Errorf("descriptor: record name is required")
	}
	if rec.construct == nil {
		return &NotARecordTypeError{Name: rec.Name, Reason: "no canonical constructor"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[rec.Name]; exists {
		return fmt.Errorf("descriptor: record %q already registered", rec.Name)
	}
	r.records[rec.Name] = rec
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(rec Record) {
	if err := r.Register(rec); err != nil {
		panic(err)
	}
}

// Get retrieves a record by name.
func (r *Registry) Get(name string) (Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[name]
	if !ok {
		return Record{}, &NotARecordTypeError{Name: name}
	}
	return rec, nil
}

// Has reports whether a record is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.records[name]
	return ok
}

// List returns the sorted names of all registered records.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.records))
	for name := range r.records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NameFor resolves the record name bound to a Go type via Define.
func (r *Registry) NameFor(t reflect.Type) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name, ok := r.types[t]
	return name, ok
}

func (r *Registry) bindType(t reflect.Type, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.types[t]; ok && existing != name {
		return fmt.Errorf("descriptor: type %s already bound to record %q", t, existing)
	}
	r.types[t] = name
	return nil
}

// Define registers a record descriptor for the concrete type T, wiring the
// typed constructor/deconstructor pair into the dynamic convention and
// binding T so Generate[T] can resolve it.
func Define[T any](r *Registry, name string, fields []Field, construct func(Args) (T, error), deconstruct func(T) []any) error {
	if construct == nil {
		return &NotARecordTypeError{Name: name, Reason: "no canonical constructor"}
	}

	wrapConstruct := func(args Args) (any, error) {
		return construct(args)
	}

	var wrapDeconstruct DeconstructFunc
	if deconstruct != nil {
		wrapDeconstruct = func(instance any) ([]any, error) {
			typed, ok := instance.(T)
			if !ok {
				return nil, fmt.Errorf("descriptor: record %q cannot deconstruct %T", name, instance)
			}
			return deconstruct(typed), nil
		}
	}

	rec, err := NewRecord(name, fields, wrapConstruct, wrapDeconstruct)
	if err != nil {
		return err
	}
	if err := r.Register(rec); err != nil {
		return err
	}
	return r.bindType(reflect.TypeOf((*T)(nil)).Elem(), name)
}

// MustDefine panics when Define fails.
func MustDefine[T any](r *Registry, name string, fields []Field, construct func(Args) (T, error), deconstruct func(T) []any) {
	if err := Define(r, name, fields, construct, deconstruct); err != nil {
		panic(err)
	}
}
