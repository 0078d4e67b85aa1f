package fixture_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fixgen/pkg/descriptor"
	"github.com/goliatone/go-fixgen/pkg/fixture"
)

func TestOverrides_ReplaceOnlyNamedFields(t *testing.T) {
	// Two generators with identically pinned counters and clocks draw the
	// same sequence values, so the only difference must be the override.
	plain := newTestGenerator(t, 1)
	overridden := newTestGenerator(t, 1)

	base, err := fixture.Generate[user](plain)
	if err != nil {
		t.Fatalf("generate base: %v", err)
	}
	got, err := fixture.Generate[user](overridden, fixture.Overrides{"email": "x@y.com"})
	if err != nil {
		t.Fatalf("generate with override: %v", err)
	}

	want := base
	want.Email = "x@y.com"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("override result mismatch (-want +got):\n%s", diff)
	}
}

func TestOverrides_IntWidensToDeclaredInteger(t *testing.T) {
	gen := newTestGenerator(t, 0)

	got, err := fixture.Generate[user](gen, fixture.Overrides{"age": 30})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got.Age != 30 {
		t.Fatalf("age = %d, want 30", got.Age)
	}
}

func TestOverrides_NestedRecordValueAccepted(t *testing.T) {
	gen := newTestGenerator(t, 0)

	vip := customer{Name: "Ada", Email: "ada@example.com"}
	got, err := fixture.Generate[order](gen, fixture.Overrides{"customer": vip})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got.Customer != vip {
		t.Fatalf("customer = %+v, want %+v", got.Customer, vip)
	}
}

func TestOverrides_UnknownFieldFails(t *testing.T) {
	gen := newTestGenerator(t, 0)

	_, err := fixture.Generate[user](gen, fixture.Overrides{"nickname": "zed"})
	var unknown *fixture.UnknownFieldError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownFieldError, got %v", err)
	}
	if unknown.Record != "User" || unknown.Field != "nickname" {
		t.Fatalf("error identifies %s.%s, want User.nickname", unknown.Record, unknown.Field)
	}
}

func TestOverrides_TypeMismatchFailsWithoutPartialInstance(t *testing.T) {
	gen := newTestGenerator(t, 0)

	instance, err := gen.Build("User")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	original := instance.Value().(user)

	_, err = gen.Merge(instance, fixture.Overrides{
		"name": "kept",
		"age":  "not a number",
	})
	var mismatch *descriptor.TypeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected TypeMismatchError, got %v", err)
	}
	var annotated *fixture.FieldError
	if !errors.As(err, &annotated) || annotated.Path != "User.age" {
		t.Fatalf("expected path User.age, got %v", err)
	}

	// The source instance is untouched even though another override was valid.
	if instance.Value().(user) != original {
		t.Fatal("merge mutated the source instance")
	}
}

func TestMerge_ProducesNewInstance(t *testing.T) {
	gen := newTestGenerator(t, 0)

	instance, err := gen.Build("User")
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	merged, err := gen.Merge(instance, fixture.Overrides{"name": "replaced"})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}

	if merged.Value().(user).Name != "replaced" {
		t.Fatalf("merged name = %q", merged.Value().(user).Name)
	}
	if instance.Value().(user).Name == "replaced" {
		t.Fatal("merge mutated the original instance")
	}

	got, _ := merged.Field("email")
	want, _ := instance.Field("email")
	if got != want {
		t.Fatalf("untouched field changed: %v != %v", got, want)
	}
}

func TestMerge_EmptyOverridesReturnsSameValues(t *testing.T) {
	gen := newTestGenerator(t, 0)

	instance, err := gen.Build("User")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	merged, err := gen.Merge(instance, nil)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if diff := cmp.Diff(instance.Values(), merged.Values()); diff != "" {
		t.Fatalf("values changed (-want +got):\n%s", diff)
	}
}
