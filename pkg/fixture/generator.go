package fixture

import (
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-fixgen/pkg/descriptor"
	"github.com/goliatone/go-fixgen/pkg/rules"
	"github.com/goliatone/go-fixgen/pkg/sequence"
)

// Option customises the generator configuration.
type Option func(*Generator)

// WithRegistry injects the record registry to generate from.
func WithRegistry(registry *descriptor.Registry) Option {
	return func(g *Generator) {
		g.registry = registry
	}
}

// WithEngine injects a custom rule engine.
func WithEngine(engine *rules.Engine) Option {
	return func(g *Generator) {
		g.engine = engine
	}
}

// WithCounter injects the sequence counter shared by every value the
// generator produces. Tests pin counters to assert exact values.
func WithCounter(counter *sequence.Counter) Option {
	return func(g *Generator) {
		g.counter = counter
	}
}

// WithClock overrides the time source used for temporal fields.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// Generator orchestrates record generation: registry lookup, per-field rule
// resolution, constructor invocation, and override merging. It holds no
// mutable state beyond the atomic counter, so a single Generator is safe for
// concurrent use across parallel tests.
type Generator struct {
	registry *descriptor.Registry
	engine   *rules.Engine
	counter  *sequence.Counter
	now      func() time.Time
}

// New constructs a Generator applying any provided options. Missing
// dependencies are initialised with built-in implementations so callers can
// start with a single constructor call.
func New(options ...Option) *Generator {
	g := &Generator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	if g.registry == nil {
		g.registry = descriptor.NewRegistry()
	}
	if g.engine == nil {
		g.engine = rules.NewEngine()
	}
	if g.counter == nil {
		g.counter = sequence.New()
	}
	if g.now == nil {
		g.now = time.Now
	}
	return g
}

// Registry returns the generator's record registry.
func (g *Generator) Registry() *descriptor.Registry {
	return g.registry
}

// Engine returns the generator's rule engine.
func (g *Generator) Engine() *rules.Engine {
	return g.engine
}

// Counter returns the generator's sequence counter.
func (g *Generator) Counter() *sequence.Counter {
	return g.counter
}

// Build generates a fully populated instance of the named record.
func (g *Generator) Build(name string) (Instance, error) {
	return g.build(name, nil, "")
}

// BuildWith generates an instance and applies the supplied overrides.
func (g *Generator) BuildWith(name string, overrides Overrides) (Instance, error) {
	instance, err := g.Build(name)
	if err != nil {
		return Instance{}, err
	}
	return g.Merge(instance, overrides)
}

func (g *Generator) build(name string, stack []string, path string) (Instance, error) {
	rec, err := g.registry.Get(name)
	if err != nil {
		return Instance{}, err
	}

	for _, ancestor := range stack {
		if ancestor == name {
			cycle := append(append([]string(nil), stack...), name)
			return Instance{}, &CyclicRecordError{Record: name, Path: cycle}
		}
	}
	stack = append(stack, name)

	base := path
	if base == "" {
		base = rec.Name
	}

	values := make([]any, len(rec.Fields))
	for i, field := range rec.Fields {
		fieldPath := base + "." + field.Name
		ctx := &ruleContext{gen: g, stack: stack, path: fieldPath}
		value, err := g.engine.Resolve(ctx, field)
		if err != nil {
			return Instance{}, annotate(fieldPath, err)
		}
		values[i] = value
	}

	value, err := rec.New(values)
	if err != nil {
		return Instance{}, fmt.Errorf("fixture: construct %s: %w", base, err)
	}

	return Instance{record: rec, values: values, value: value}, nil
}

// annotate wraps an error with the field path unless an inner frame already
// attached a deeper one.
func annotate(path string, err error) error {
	var annotated *FieldError
	if errors.As(err, &annotated) {
		return err
	}
	return &FieldError{Path: path, Err: err}
}

// ruleContext adapts the generator to rules.Context for a single field. Each
// field gets a fresh context so nested builds inherit the dotted path and the
// record stack used for cycle detection.
type ruleContext struct {
	gen   *Generator
	stack []string
	path  string
}

func (c *ruleContext) Next() int64 {
	return c.gen.counter.Next()
}

func (c *ruleContext) Now() time.Time {
	return c.gen.now()
}

func (c *ruleContext) BuildRecord(name string) (any, error) {
	instance, err := c.gen.build(name, c.stack, c.path)
	if err != nil {
		return nil, err
	}
	return instance.Value(), nil
}
