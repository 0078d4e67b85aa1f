package rules

import (
	"fmt"
	"sync"
	"time"

	"github.com/goliatone/go-fixgen/pkg/descriptor"
)

// Context is what a rule sees of the surrounding generation run: the shared
// sequence counter, the clock, and the recursion hook back into the record
// builder for nested record fields.
type Context interface {
	// Next draws a fresh value from the shared sequence counter. Values are
	// strictly increasing across the whole generation run.
	Next() int64
	// Now returns the generation clock's current time.
	Now() time.Time
	// BuildRecord generates a fully populated instance of a registered
	// record, drawing from the same counter as the enclosing run.
	BuildRecord(name string) (any, error)
}

// Rule pairs a field matcher with a value producer.
type Rule interface {
	Name() string
	Match(field descriptor.Field) bool
	Produce(ctx Context, field descriptor.Field) (any, error)
}

// MatchFunc decides whether a rule applies to a field.
type MatchFunc func(field descriptor.Field) bool

// ProduceFunc generates the value for a matched field.
type ProduceFunc func(ctx Context, field descriptor.Field) (any, error)

type funcRule struct {
	name    string
	match   MatchFunc
	produce ProduceFunc
}

func (r funcRule) Name() string                          { return r.name }
func (r funcRule) Match(field descriptor.Field) bool     { return r.match(field) }
func (r funcRule) Produce(ctx Context, field descriptor.Field) (any, error) {
	return r.produce(ctx, field)
}

// NewRule builds a Rule from a matcher and a producer function.
func NewRule(name string, match MatchFunc, produce ProduceFunc) (Rule, error) {
	if name == "" {
		return nil, fmt.Errorf("rules: rule name is required")
	}
	if match == nil || produce == nil {
		return nil, fmt.Errorf("rules: rule %q requires a matcher and a producer", name)
	}
	return funcRule{name: name, match: match, produce: produce}, nil
}

// MustNewRule panics on construction failure. Useful for init-time wiring.
func MustNewRule(name string, match MatchFunc, produce ProduceFunc) Rule {
	rule, err := NewRule(name, match, produce)
	if err != nil {
		panic(err)
	}
	return rule
}

// Engine resolves fields to values through an ordered rule list. Custom rules
// registered later take priority over earlier ones and over the built-ins.
type Engine struct {
	mu      sync.RWMutex
	custom  []Rule
	builtin []Rule
}

// NewEngine creates an engine carrying the built-in rule chain.
func NewEngine() *Engine {
	return &Engine{builtin: builtinRules()}
}

// Register prepends a custom rule ahead of the built-ins and any previously
// registered custom rules.
func (e *Engine) Register(rule Rule) error {
	if rule == nil {
		return fmt.Errorf("rules: rule is required")
	}
	if rule.Name() == "" {
		return fmt.Errorf("rules: rule name is required")
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.custom = append([]Rule{rule}, e.custom...)
	return nil
}

// MustRegister panics on registration failure.
func (e *Engine) MustRegister(rule Rule) {
	if err := e.Register(rule); err != nil {
		panic(err)
	}
}

// Resolve returns the value for a field from the first matching rule, or an
// UnsupportedFieldTypeError when no rule matches.
func (e *Engine) Resolve(ctx Context, field descriptor.Field) (any, error) {
	e.mu.RLock()
	chain := make([]Rule, 0, len(e.custom)+len(e.builtin))
	chain = append(chain, e.custom...)
	chain = append(chain, e.builtin...)
	e.mu.RUnlock()

	for _, rule := range chain {
		if rule.Match(field) {
			return rule.Produce(ctx, field)
		}
	}
	return nil, &UnsupportedFieldTypeError{Field: field.Name, Declared: field.Type}
}

// Rules lists the rule names in resolution order, custom rules first.
func (e *Engine) Rules() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.custom)+len(e.builtin))
	for _, rule := range e.custom {
		names = append(names, rule.Name())
	}
	for _, rule := range e.builtin {
		names = append(names, rule.Name())
	}
	return names
}

// UnsupportedFieldTypeError reports a field whose declared type no rule
// matches. Generation stops immediately; a partially generated record is
// worse than an explicit failure.
type UnsupportedFieldTypeError struct {
	Field    string
	Declared descriptor.Type
}

func (e *UnsupportedFieldTypeError) Error() string {
	return fmt.Sprintf("rules: no rule matches field %q of type %s", e.Field, e.Declared.Describe())
}
