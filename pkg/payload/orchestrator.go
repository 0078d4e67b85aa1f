package payload

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	internalLoader "github.com/goliatone/go-fixgen/internal/openapi/loader"
	internalParser "github.com/goliatone/go-fixgen/internal/openapi/parser"
	"github.com/goliatone/go-fixgen/pkg/descriptor"
	"github.com/goliatone/go-fixgen/pkg/fixture"
	pkgopenapi "github.com/goliatone/go-fixgen/pkg/openapi"
	"github.com/goliatone/go-fixgen/pkg/rules"
	"github.com/goliatone/go-fixgen/pkg/sequence"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom OpenAPI loader.
func WithLoader(loader pkgopenapi.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithParser injects a custom OpenAPI parser.
func WithParser(parser pkgopenapi.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithEngine injects the rule engine used to populate payload fields, letting
// callers register custom rules ahead of the built-ins.
func WithEngine(engine *rules.Engine) Option {
	return func(o *Orchestrator) {
		o.engine = engine
	}
}

// WithCounter injects the sequence counter shared across Generate calls.
func WithCounter(counter *sequence.Counter) Option {
	return func(o *Orchestrator) {
		o.counter = counter
	}
}

// WithClock overrides the time source for date/date-time payload fields.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		o.now = now
	}
}

// WithIndent enables pretty-printed JSON output using the given indent.
func WithIndent(indent string) Option {
	return func(o *Orchestrator) {
		o.indent = indent
	}
}

// Orchestrator coordinates the pipeline from OpenAPI document to generated
// fixture payload. It applies sensible defaults (offline file loader,
// kin-openapi parser, built-in rules) while remaining open to dependency
// injection.
type Orchestrator struct {
	loader  pkgopenapi.Loader
	parser  pkgopenapi.Parser
	engine  *rules.Engine
	counter *sequence.Counter
	now     func() time.Time
	indent  string
}

// Request identifies the document and operation to generate a payload for.
// Either Source or a pre-loaded Document must be supplied.
type Request struct {
	Source      pkgopenapi.Source
	Document    *pkgopenapi.Document
	OperationID string
	Overrides   fixture.Overrides
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	if o.loader == nil {
		o.loader = internalLoader.New(pkgopenapi.NewLoaderOptions())
	}
	if o.parser == nil {
		o.parser = internalParser.New(pkgopenapi.NewParserOptions())
	}
	if o.engine == nil {
		o.engine = rules.NewEngine()
	}
	if o.counter == nil {
		o.counter = sequence.New()
	}
	if o.now == nil {
		o.now = time.Now
	}
	return o
}

// Operations lists the operation IDs available in the requested document,
// sorted for stable display.
func (o *Orchestrator) Operations(ctx context.Context, req Request) ([]string, error) {
	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return nil, err
	}
	operations, err := o.parser.Operations(ctx, doc)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(operations))
	for id := range operations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// GeneratePayload builds the fixture payload for an operation's request body.
func (o *Orchestrator) GeneratePayload(ctx context.Context, req Request) (map[string]any, error) {
	if req.OperationID == "" {
		return nil, fmt.Errorf("payload: operation id is required")
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return nil, err
	}
	operations, err := o.parser.Operations(ctx, doc)
	if err != nil {
		return nil, err
	}
	op, ok := operations[req.OperationID]
	if !ok {
		return nil, fmt.Errorf("payload: operation %q not found in %s", req.OperationID, doc.Location())
	}
	if !op.HasRequestBody() {
		return nil, fmt.Errorf("payload: operation %q has no request body schema", req.OperationID)
	}

	records, err := Derive(op.ID, op.RequestBody)
	if err != nil {
		return nil, err
	}

	registry := descriptor.NewRegistry()
	for _, rec := range records {
		if err := registry.Register(rec); err != nil {
			return nil, err
		}
	}

	generator := fixture.New(
		fixture.WithRegistry(registry),
		fixture.WithEngine(o.engine),
		fixture.WithCounter(o.counter),
		fixture.WithClock(o.now),
	)
	instance, err := generator.BuildWith(op.ID, req.Overrides)
	if err != nil {
		return nil, err
	}

	mapped, ok := instance.Value().(map[string]any)
	if !ok {
		return nil, fmt.Errorf("payload: operation %q produced %T, want map[string]any", req.OperationID, instance.Value())
	}
	return mapped, nil
}

// Generate builds the fixture payload and serialises it to JSON.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	mapped, err := o.GeneratePayload(ctx, req)
	if err != nil {
		return nil, err
	}
	if o.indent != "" {
		return json.MarshalIndent(mapped, "", o.indent)
	}
	return json.Marshal(mapped)
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (pkgopenapi.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return pkgopenapi.Document{}, fmt.Errorf("payload: request requires a source or document")
	}
	return o.loader.Load(ctx, req.Source)
}
