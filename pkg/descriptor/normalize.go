package descriptor

import "time"

// Normalize checks a value against a declared type and canonicalizes it into
// the dynamic convention (int64 for integers, float64 for floats). The
// registry resolves nested record references; membership for record kinds is
// defined by the record's own deconstructor accepting the value.
func Normalize(reg *Registry, t Type, value any) (any, error) {
	switch t.Kind {
	case KindOptional:
		if value == nil {
			return nil, nil
		}
		return Normalize(reg, *t.Elem, value)

	case KindString:
		if s, ok := value.(string); ok {
			return s, nil
		}

	case KindInteger:
		switch n := value.(type) {
		case int64:
			return n, nil
		case int:
			return int64(n), nil
		case int32:
			return int64(n), nil
		}

	case KindFloat:
		switch n := value.(type) {
		case float64:
			return n, nil
		case float32:
			return float64(n), nil
		}

	case KindBoolean:
		if b, ok := value.(bool); ok {
			return b, nil
		}

	case KindTime:
		if ts, ok := value.(time.Time); ok {
			return ts, nil
		}

	case KindEnum:
		for _, variant := range t.Variants {
			if variant == value {
				return value, nil
			}
		}

	case KindSlice:
		if items, ok := value.([]any); ok {
			out := make([]any, len(items))
			for i, item := range items {
				normalized, err := Normalize(reg, *t.Elem, item)
				if err != nil {
					return nil, err
				}
				out[i] = normalized
			}
			return out, nil
		}

	case KindMap:
		// String-keyed maps (decoded JSON/YAML) are accepted and canonicalized.
		switch entries := value.(type) {
		case map[any]any:
			return normalizeEntries(reg, t, entries)
		case map[string]any:
			generic := make(map[any]any, len(entries))
			for k, v := range entries {
				generic[k] = v
			}
			return normalizeEntries(reg, t, generic)
		}

	case KindRecord:
		rec, err := reg.Get(t.Record)
		if err != nil {
			return nil, err
		}
		if rec.CanDeconstruct() {
			if _, err := rec.Values(value); err == nil {
				return value, nil
			}
		}
	}

	return nil, &TypeMismatchError{Declared: t, Value: value}
}

func normalizeEntries(reg *Registry, t Type, entries map[any]any) (any, error) {
	out := make(map[any]any, len(entries))
	for k, v := range entries {
		key, err := Normalize(reg, *t.Key, k)
		if err != nil {
			return nil, err
		}
		val, err := Normalize(reg, *t.Elem, v)
		if err != nil {
			return nil, err
		}
		out[key] = val
	}
	return out, nil
}

// CheckValue reports whether a value satisfies a declared type without
// returning the canonical form.
func CheckValue(reg *Registry, t Type, value any) error {
	_, err := Normalize(reg, t, value)
	return err
}
