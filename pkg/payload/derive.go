package payload

import (
	"fmt"
	"sort"

	"github.com/goliatone/go-fixgen/pkg/descriptor"
	"github.com/goliatone/go-fixgen/pkg/openapi"
)

// Derive converts an object schema into record descriptors rooted at name.
// Nested objects become their own records named <parent>.<property>, so the
// returned slice holds the root record plus one record per nested object.
// Properties are visited in sorted order to keep generation deterministic;
// non-required properties are declared optional and therefore stay absent in
// generated payloads.
func Derive(name string, schema openapi.Schema) ([]descriptor.Record, error) {
	if name == "" {
		return nil, fmt.Errorf("payload: record name is required")
	}
	if !isObjectSchema(schema) {
		return nil, fmt.Errorf("payload: schema for %q is %q, want an object", name, schema.Type)
	}
	return deriveObject(name, schema)
}

func isObjectSchema(schema openapi.Schema) bool {
	if schema.Type == "object" {
		return true
	}
	return schema.Type == "" && len(schema.Properties) > 0
}

func deriveObject(name string, schema openapi.Schema) ([]descriptor.Record, error) {
	requiredSet := make(map[string]struct{}, len(schema.Required))
	for _, item := range schema.Required {
		requiredSet[item] = struct{}{}
	}

	propNames := make([]string, 0, len(schema.Properties))
	for propName := range schema.Properties {
		propNames = append(propNames, propName)
	}
	sort.Strings(propNames)

	var (
		fields []descriptor.Field
		nested []descriptor.Record
	)
	for _, propName := range propNames {
		propSchema := schema.Properties[propName]
		fieldType, extra, err := mapSchema(name+"."+propName, propSchema)
		if err != nil {
			return nil, fmt.Errorf("payload: %s.%s: %w", name, propName, err)
		}
		nested = append(nested, extra...)

		if _, isRequired := requiredSet[propName]; !isRequired {
			fieldType = descriptor.Optional(fieldType)
		}
		fields = append(fields, descriptor.Field{Name: propName, Type: fieldType})
	}

	rec, err := descriptor.NewRecord(name, fields, objectConstructor(fields), objectDeconstructor(fields))
	if err != nil {
		return nil, err
	}
	return append([]descriptor.Record{rec}, nested...), nil
}

func mapSchema(name string, schema openapi.Schema) (descriptor.Type, []descriptor.Record, error) {
	if len(schema.Enum) > 0 {
		return descriptor.Enum(schema.Enum...), nil, nil
	}

	switch schema.Type {
	case "string":
		switch schema.Format {
		case "date", "date-time":
			return descriptor.Time(), nil, nil
		default:
			return descriptor.String(), nil, nil
		}
	case "integer":
		return descriptor.Integer(), nil, nil
	case "number":
		return descriptor.Float(), nil, nil
	case "boolean":
		return descriptor.Boolean(), nil, nil
	case "array":
		if schema.Items == nil {
			return descriptor.Type{}, nil, fmt.Errorf("array schema missing items")
		}
		elem, nested, err := mapSchema(name, *schema.Items)
		if err != nil {
			return descriptor.Type{}, nil, err
		}
		return descriptor.Slice(elem), nested, nil
	case "object", "":
		if len(schema.Properties) == 0 {
			// Free-form object; generated as an empty mapping.
			return descriptor.Map(descriptor.String(), descriptor.String()), nil, nil
		}
		nested, err := deriveObject(name, schema)
		if err != nil {
			return descriptor.Type{}, nil, err
		}
		return descriptor.RecordOf(name), nested, nil
	default:
		return descriptor.Type{}, nil, fmt.Errorf("unsupported schema type %q", schema.Type)
	}
}

// objectConstructor assembles a map payload from the ordered field values.
// Absent optionals are omitted rather than serialized as null.
func objectConstructor(fields []descriptor.Field) descriptor.ConstructFunc {
	names := fieldNames(fields)
	return func(args descriptor.Args) (any, error) {
		out := make(map[string]any, len(names))
		for i, name := range names {
			if args.IsNil(i) {
				continue
			}
			out[name] = jsonValue(args.Get(i))
		}
		return out, nil
	}
}

// jsonValue rewrites generic-keyed maps into string-keyed ones so the
// assembled payload marshals cleanly with encoding/json.
func jsonValue(value any) any {
	switch v := value.(type) {
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[fmt.Sprint(key)] = jsonValue(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = jsonValue(item)
		}
		return out
	default:
		return v
	}
}

func objectDeconstructor(fields []descriptor.Field) descriptor.DeconstructFunc {
	names := fieldNames(fields)
	return func(instance any) ([]any, error) {
		mapped, ok := instance.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("payload: cannot deconstruct %T, want map[string]any", instance)
		}
		values := make([]any, len(names))
		for i, name := range names {
			if value, present := mapped[name]; present {
				values[i] = value
			}
		}
		return values, nil
	}
}

func fieldNames(fields []descriptor.Field) []string {
	names := make([]string, len(fields))
	for i, field := range fields {
		names[i] = field.Name
	}
	return names
}
