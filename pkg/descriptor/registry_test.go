package descriptor_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fixgen/pkg/descriptor"
)

type account struct {
	Name    string
	Balance int64
}

func accountFields() []descriptor.Field {
	return []descriptor.Field{
		{Name: "name", Type: descriptor.String()},
		{Name: "balance", Type: descriptor.Integer()},
	}
}

func defineAccount(t *testing.T, reg *descriptor.Registry) {
	t.Helper()
	err := descriptor.Define(reg, "Account", accountFields(),
		func(args descriptor.Args) (account, error) {
			return account{Name: args.String(0), Balance: args.Int(1)}, nil
		},
		func(a account) []any {
			return []any{a.Name, a.Balance}
		})
	if err != nil {
		t.Fatalf("define account: %v", err)
	}
}

func TestRegistry_DefineAndGet(t *testing.T) {
	reg := descriptor.NewRegistry()
	defineAccount(t, reg)

	rec, err := reg.Get("Account")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if diff := cmp.Diff(accountFields(), rec.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}

	instance, err := rec.New([]any{"checking", int64(7)})
	if err != nil {
		t.Fatalf("construct: %v", err)
	}
	want := account{Name: "checking", Balance: 7}
	if instance != want {
		t.Fatalf("constructed %+v, want %+v", instance, want)
	}

	values, err := rec.Values(want)
	if err != nil {
		t.Fatalf("deconstruct: %v", err)
	}
	if diff := cmp.Diff([]any{"checking", int64(7)}, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_GetMissingIsNotARecordType(t *testing.T) {
	reg := descriptor.NewRegistry()

	_, err := reg.Get("Ghost")
	var notRecord *descriptor.NotARecordTypeError
	if !errors.As(err, &notRecord) {
		t.Fatalf("expected NotARecordTypeError, got %v", err)
	}
	if notRecord.Name != "Ghost" {
		t.Fatalf("error names %q, want Ghost", notRecord.Name)
	}
}

func TestRegistry_DuplicateNameRejected(t *testing.T) {
	reg := descriptor.NewRegistry()
	defineAccount(t, reg)

	err := descriptor.Define(reg, "Account", accountFields(),
		func(args descriptor.Args) (account, error) { return account{}, nil },
		nil)
	if err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
}

func TestRegistry_TypeIndexResolvesDefinedType(t *testing.T) {
	reg := descriptor.NewRegistry()
	defineAccount(t, reg)

	name, ok := reg.NameFor(reflect.TypeOf(account{}))
	if !ok || name != "Account" {
		t.Fatalf("NameFor = %q (ok=%v), want Account", name, ok)
	}
	if _, ok := reg.NameFor(reflect.TypeOf(42)); ok {
		t.Fatal("unexpected binding for int")
	}
}

func TestNewRecord_Validation(t *testing.T) {
	construct := func(descriptor.Args) (any, error) { return nil, nil }

	cases := []struct {
		name   string
		fields []descriptor.Field
	}{
		{
			name: "unnamed field",
			fields: []descriptor.Field{
				{Type: descriptor.String()},
			},
		},
		{
			name: "duplicate field",
			fields: []descriptor.Field{
				{Name: "id", Type: descriptor.Integer()},
				{Name: "id", Type: descriptor.String()},
			},
		},
		{
			name: "enum without variants",
			fields: []descriptor.Field{
				{Name: "status", Type: descriptor.Enum()},
			},
		},
		{
			name: "record without name",
			fields: []descriptor.Field{
				{Name: "owner", Type: descriptor.RecordOf("")},
			},
		},
		{
			name: "optional without element",
			fields: []descriptor.Field{
				{Name: "nick", Type: descriptor.Type{Kind: descriptor.KindOptional}},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := descriptor.NewRecord("Bad", tc.fields, construct, nil); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestNewRecord_RequiresConstructor(t *testing.T) {
	_, err := descriptor.NewRecord("Account", accountFields(), nil, nil)
	var notRecord *descriptor.NotARecordTypeError
	if !errors.As(err, &notRecord) {
		t.Fatalf("expected NotARecordTypeError, got %v", err)
	}
}
