// Package fixgen generates fully populated record instances for tests:
// register a record descriptor once, then build distinct, deterministic
// fixtures with per-field overrides. It also derives descriptors from OpenAPI
// request bodies to produce JSON payload fixtures.
package fixgen

import (
	"context"

	"github.com/goliatone/go-fixgen/pkg/descriptor"
	"github.com/goliatone/go-fixgen/pkg/fixture"
	pkgopenapi "github.com/goliatone/go-fixgen/pkg/openapi"
	"github.com/goliatone/go-fixgen/pkg/payload"
	"github.com/goliatone/go-fixgen/pkg/rules"
)

// Overrides maps field names to replacement values applied after generation.
type Overrides = fixture.Overrides

// Option configures a Generator.
type Option = fixture.Option

// Generator builds record instances from registered descriptors.
type Generator = fixture.Generator

// Instance is a generated record plus its ordered field values.
type Instance = fixture.Instance

// Field declares a named, typed record member.
type Field = descriptor.Field

// Rule produces values for fields it matches.
type Rule = rules.Rule

// WithRegistry, WithEngine, WithCounter, and WithClock re-export the
// generator options so most callers only import the root package.
var (
	WithRegistry = fixture.WithRegistry
	WithEngine   = fixture.WithEngine
	WithCounter  = fixture.WithCounter
	WithClock    = fixture.WithClock
)

// New constructs a Generator with an empty registry and the built-in rules.
func New(options ...Option) *Generator {
	return fixture.New(options...)
}

// NewRegistry creates an empty record registry.
func NewRegistry() *descriptor.Registry {
	return descriptor.NewRegistry()
}

// NewEngine creates a rule engine preloaded with the built-in rules. Custom
// rules are registered in order, so the last one wins on overlapping matches.
func NewEngine(custom ...Rule) *rules.Engine {
	engine := rules.NewEngine()
	for _, rule := range custom {
		engine.MustRegister(rule)
	}
	return engine
}

// Define registers a record descriptor for T in the generator's registry so
// Generate[T] can resolve it.
func Define[T any](g *Generator, name string, fields []Field, construct func(descriptor.Args) (T, error), deconstruct func(T) []any) error {
	return descriptor.Define(g.Registry(), name, fields, construct, deconstruct)
}

// MustDefine panics when Define fails. Useful at package init in test
// helpers.
func MustDefine[T any](g *Generator, name string, fields []Field, construct func(descriptor.Args) (T, error), deconstruct func(T) []any) {
	descriptor.MustDefine(g.Registry(), name, fields, construct, deconstruct)
}

// Generate produces a fully populated T, applying any override sets in order.
func Generate[T any](g *Generator, overrides ...Overrides) (T, error) {
	return fixture.Generate[T](g, overrides...)
}

// MustGenerate panics when generation fails.
func MustGenerate[T any](g *Generator, overrides ...Overrides) T {
	return fixture.MustGenerate[T](g, overrides...)
}

// NewPayloadGenerator exposes the OpenAPI payload orchestrator from the
// top-level module.
func NewPayloadGenerator(options ...payload.Option) *payload.Orchestrator {
	return payload.New(options...)
}

// GeneratePayload loads the OpenAPI source, derives descriptors for the
// requested operation's request body, and returns the generated payload as
// JSON. It is the simplest entry point for callers that just want fixture
// bytes.
func GeneratePayload(ctx context.Context, source pkgopenapi.Source, operationID string, options ...payload.Option) ([]byte, error) {
	gen := payload.New(options...)
	return gen.Generate(ctx, payload.Request{
		Source:      source,
		OperationID: operationID,
	})
}

// GeneratePayloadFromDocument generates a payload from a pre-loaded document,
// bypassing the loader stage while still delegating to the orchestrator.
func GeneratePayloadFromDocument(ctx context.Context, doc pkgopenapi.Document, operationID string, options ...payload.Option) ([]byte, error) {
	gen := payload.New(options...)
	return gen.Generate(ctx, payload.Request{
		Document:    &doc,
		OperationID: operationID,
	})
}
