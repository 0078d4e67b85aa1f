package rules

import (
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"

	"github.com/goliatone/go-fixgen/pkg/descriptor"
)

// UUIDRule matches string fields whose name contains "uuid" and produces a
// SHA1 namespace UUID derived from the sequence counter, so values are unique
// and reproducible for a pinned counter. Not installed by default; register
// it on engines that need identifier-shaped strings.
func UUIDRule() Rule {
	return MustNewRule("uuid-string",
		func(field descriptor.Field) bool {
			return field.Type.Kind == descriptor.KindString &&
				strings.Contains(strings.ToLower(field.Name), "uuid")
		},
		func(ctx Context, field descriptor.Field) (any, error) {
			seed := fmt.Sprintf("fixgen-%d", ctx.Next())
			return uuid.NewSHA1(uuid.NameSpaceOID, []byte(seed)).String(), nil
		})
}

// RealisticRules returns opt-in, name-directed producers backed by a seeded
// faker. Values look human (names, cities, phone numbers, URLs) instead of
// arbitrary-<n>, and a fixed seed keeps runs reproducible. Counter-based
// uniqueness does not apply to these fields; register them only where
// realism matters more than pairwise-distinct values.
func RealisticRules(seed uint64) []Rule {
	faker := gofakeit.New(seed)

	nameDirected := func(ruleName string, substrings []string, produce func() string) Rule {
		return MustNewRule(ruleName,
			func(field descriptor.Field) bool {
				if field.Type.Kind != descriptor.KindString {
					return false
				}
				lowered := strings.ToLower(field.Name)
				for _, sub := range substrings {
					if strings.Contains(lowered, sub) {
						return true
					}
				}
				return false
			},
			func(ctx Context, field descriptor.Field) (any, error) {
				return produce(), nil
			})
	}

	return []Rule{
		nameDirected("realistic-name", []string{"name"}, faker.Name),
		nameDirected("realistic-city", []string{"city"}, faker.City),
		nameDirected("realistic-phone", []string{"phone"}, faker.Phone),
		nameDirected("realistic-url", []string{"url", "website"}, faker.URL),
	}
}
