package rules

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-fixgen/pkg/descriptor"
)

// EmailDomain is the fixed domain used by the synthesized email rule.
const EmailDomain = "example.com"

// builtinRules returns the default chain in priority order. Specific kinds
// (enum, optional, collection, nested record) come before the scalar
// fallbacks so an Optional<Enum> field matches as optional and the enum rule
// only applies inside a recursive unwrap.
func builtinRules() []Rule {
	return []Rule{
		MustNewRule("enum-first-variant",
			kindIs(descriptor.KindEnum),
			func(ctx Context, field descriptor.Field) (any, error) {
				if len(field.Type.Variants) == 0 {
					return nil, fmt.Errorf("rules: enum field %q declares no variants", field.Name)
				}
				return field.Type.Variants[0], nil
			}),
		MustNewRule("optional-absent",
			kindIs(descriptor.KindOptional),
			func(ctx Context, field descriptor.Field) (any, error) {
				return nil, nil
			}),
		MustNewRule("slice-empty",
			kindIs(descriptor.KindSlice),
			func(ctx Context, field descriptor.Field) (any, error) {
				return []any{}, nil
			}),
		MustNewRule("map-empty",
			kindIs(descriptor.KindMap),
			func(ctx Context, field descriptor.Field) (any, error) {
				return map[any]any{}, nil
			}),
		MustNewRule("record-recurse",
			kindIs(descriptor.KindRecord),
			func(ctx Context, field descriptor.Field) (any, error) {
				return ctx.BuildRecord(field.Type.Record)
			}),
		MustNewRule("email-string",
			func(field descriptor.Field) bool {
				return field.Type.Kind == descriptor.KindString &&
					strings.Contains(strings.ToLower(field.Name), "email")
			},
			func(ctx Context, field descriptor.Field) (any, error) {
				return fmt.Sprintf("random-%d@%s", ctx.Next(), EmailDomain), nil
			}),
		MustNewRule("boolean-false",
			kindIs(descriptor.KindBoolean),
			func(ctx Context, field descriptor.Field) (any, error) {
				return false, nil
			}),
		MustNewRule("integer-sequence",
			kindIs(descriptor.KindInteger),
			func(ctx Context, field descriptor.Field) (any, error) {
				return ctx.Next(), nil
			}),
		MustNewRule("float-sequence",
			kindIs(descriptor.KindFloat),
			func(ctx Context, field descriptor.Field) (any, error) {
				return float64(ctx.Next()), nil
			}),
		MustNewRule("time-now",
			kindIs(descriptor.KindTime),
			func(ctx Context, field descriptor.Field) (any, error) {
				return ctx.Now(), nil
			}),
		MustNewRule("string-sequence",
			kindIs(descriptor.KindString),
			func(ctx Context, field descriptor.Field) (any, error) {
				return fmt.Sprintf("arbitrary-%d", ctx.Next()), nil
			}),
	}
}

func kindIs(kind descriptor.Kind) MatchFunc {
	return func(field descriptor.Field) bool {
		return field.Type.Kind == kind
	}
}
