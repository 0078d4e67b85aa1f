package rules_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-fixgen/pkg/descriptor"
	"github.com/goliatone/go-fixgen/pkg/rules"
	"github.com/goliatone/go-fixgen/pkg/sequence"
)

type stubContext struct {
	counter *sequence.Counter
	now     time.Time
	built   []string
	nested  any
}

func newStubContext() *stubContext {
	return &stubContext{
		counter: sequence.New(),
		now:     time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		nested:  "nested-instance",
	}
}

func (s *stubContext) Next() int64    { return s.counter.Next() }
func (s *stubContext) Now() time.Time { return s.now }
func (s *stubContext) BuildRecord(name string) (any, error) {
	s.built = append(s.built, name)
	return s.nested, nil
}

func resolve(t *testing.T, e *rules.Engine, ctx rules.Context, field descriptor.Field) any {
	t.Helper()
	value, err := e.Resolve(ctx, field)
	require.NoError(t, err, "resolve %s", field.Name)
	return value
}

func TestEngine_BuiltinDefaults(t *testing.T) {
	e := rules.NewEngine()
	ctx := newStubContext()

	cases := []struct {
		name  string
		field descriptor.Field
		want  any
	}{
		{
			name:  "enum yields first declared variant",
			field: descriptor.Field{Name: "status", Type: descriptor.Enum("draft", "published")},
			want:  "draft",
		},
		{
			name:  "optional yields absent",
			field: descriptor.Field{Name: "nickname", Type: descriptor.Optional(descriptor.String())},
			want:  nil,
		},
		{
			name:  "optional enum matches as optional",
			field: descriptor.Field{Name: "mode", Type: descriptor.Optional(descriptor.Enum("a", "b"))},
			want:  nil,
		},
		{
			name:  "slice yields empty",
			field: descriptor.Field{Name: "tags", Type: descriptor.Slice(descriptor.String())},
			want:  []any{},
		},
		{
			name:  "map yields empty",
			field: descriptor.Field{Name: "labels", Type: descriptor.Map(descriptor.String(), descriptor.String())},
			want:  map[any]any{},
		},
		{
			name:  "boolean yields false",
			field: descriptor.Field{Name: "active", Type: descriptor.Boolean()},
			want:  false,
		},
		{
			name:  "time yields the clock",
			field: descriptor.Field{Name: "createdAt", Type: descriptor.Time()},
			want:  ctx.now,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, resolve(t, e, ctx, tc.field))
		})
	}
}

func TestEngine_SequenceBackedValues(t *testing.T) {
	e := rules.NewEngine()
	ctx := newStubContext()

	name := resolve(t, e, ctx, descriptor.Field{Name: "name", Type: descriptor.String()})
	age := resolve(t, e, ctx, descriptor.Field{Name: "age", Type: descriptor.Integer()})
	email := resolve(t, e, ctx, descriptor.Field{Name: "email", Type: descriptor.String()})
	score := resolve(t, e, ctx, descriptor.Field{Name: "score", Type: descriptor.Float()})

	assert.Equal(t, "arbitrary-1", name)
	assert.Equal(t, int64(2), age)
	assert.Equal(t, "random-3@example.com", email)
	assert.Equal(t, float64(4), score)
}

func TestEngine_EmailMatchIsCaseInsensitiveSubstring(t *testing.T) {
	e := rules.NewEngine()
	ctx := newStubContext()

	for _, name := range []string{"email", "Email", "contactEMAIL", "billingEmailAddress"} {
		value := resolve(t, e, ctx, descriptor.Field{Name: name, Type: descriptor.String()})
		assert.Regexp(t, `^random-\d+@example\.com$`, value, "field %s", name)
	}

	plain := resolve(t, e, ctx, descriptor.Field{Name: "mailingList", Type: descriptor.String()})
	assert.Regexp(t, `^arbitrary-\d+$`, plain)
}

func TestEngine_RecordRuleRecurses(t *testing.T) {
	e := rules.NewEngine()
	ctx := newStubContext()

	value := resolve(t, e, ctx, descriptor.Field{Name: "customer", Type: descriptor.RecordOf("Customer")})
	assert.Equal(t, "nested-instance", value)
	assert.Equal(t, []string{"Customer"}, ctx.built)
}

func TestEngine_UnsupportedKindFailsHard(t *testing.T) {
	e := rules.NewEngine()
	ctx := newStubContext()

	_, err := e.Resolve(ctx, descriptor.Field{
		Name: "payload",
		Type: descriptor.Type{Kind: descriptor.Kind("blob")},
	})
	var unsupported *rules.UnsupportedFieldTypeError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "payload", unsupported.Field)
}

func TestEngine_CustomRulesTakePriority(t *testing.T) {
	e := rules.NewEngine()
	ctx := newStubContext()

	first := rules.MustNewRule("custom-a",
		func(field descriptor.Field) bool { return field.Name == "name" },
		func(rules.Context, descriptor.Field) (any, error) { return "from-a", nil })
	second := rules.MustNewRule("custom-b",
		func(field descriptor.Field) bool { return field.Name == "name" },
		func(rules.Context, descriptor.Field) (any, error) { return "from-b", nil })

	require.NoError(t, e.Register(first))
	assert.Equal(t, "from-a", resolve(t, e, ctx, descriptor.Field{Name: "name", Type: descriptor.String()}))

	// Later registrations win over earlier ones and over built-ins.
	require.NoError(t, e.Register(second))
	assert.Equal(t, "from-b", resolve(t, e, ctx, descriptor.Field{Name: "name", Type: descriptor.String()}))

	names := e.Rules()
	require.GreaterOrEqual(t, len(names), 2)
	assert.Equal(t, []string{"custom-b", "custom-a"}, names[:2])
}

func TestEngine_RegisterValidation(t *testing.T) {
	e := rules.NewEngine()

	require.Error(t, e.Register(nil))

	_, err := rules.NewRule("", nil, nil)
	require.Error(t, err)
}

func TestUnsupportedFieldTypeError_NamesFieldAndType(t *testing.T) {
	err := &rules.UnsupportedFieldTypeError{
		Field:    "payload",
		Declared: descriptor.Slice(descriptor.RecordOf("Chunk")),
	}
	assert.Contains(t, err.Error(), `"payload"`)
	assert.Contains(t, err.Error(), "slice<record<Chunk>>")
}

func TestEngine_ResolveIsErrorFreeForAllSupportedKinds(t *testing.T) {
	e := rules.NewEngine()
	ctx := newStubContext()

	fields := []descriptor.Field{
		{Name: "s", Type: descriptor.String()},
		{Name: "i", Type: descriptor.Integer()},
		{Name: "f", Type: descriptor.Float()},
		{Name: "b", Type: descriptor.Boolean()},
		{Name: "t", Type: descriptor.Time()},
		{Name: "e", Type: descriptor.Enum("one")},
		{Name: "o", Type: descriptor.Optional(descriptor.String())},
		{Name: "l", Type: descriptor.Slice(descriptor.Integer())},
		{Name: "m", Type: descriptor.Map(descriptor.String(), descriptor.Integer())},
		{Name: "r", Type: descriptor.RecordOf("Anything")},
	}

	for _, field := range fields {
		_, err := e.Resolve(ctx, field)
		if errors.Is(err, nil) {
			continue
		}
		t.Fatalf("kind %s: %v", field.Type.Kind, err)
	}
}
