package innerscope

import (
	"fmt"
	"time"
)

// ValueOf converts a decoded Go value (as produced by TOML or JSON decoders)
// into a script Value.
func ValueOf(v any) (Value, error) {
	switch typed := v.(type) {
	case nil:
		return NewNil(), nil
	case Value:
		return typed, nil
	case bool:
		return NewBool(typed), nil
	case int:
		return NewInt(int64(typed)), nil
	case int64:
		return NewInt(typed), nil
	case float64:
		return NewFloat(typed), nil
	case string:
		return NewString(typed), nil
	case time.Time:
		return NewString(typed.Format(time.RFC3339)), nil
	case fmt.Stringer:
		return NewString(typed.String()), nil
	case []any:
		items := make([]Value, len(typed))
		for i, item := range typed {
			val, err := ValueOf(item)
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			items[i] = val
		}
		return NewArray(items), nil
	case map[string]any:
		entries := make(map[string]Value, len(typed))
		for key, item := range typed {
			val, err := ValueOf(item)
			if err != nil {
				return Value{}, fmt.Errorf("key %s: %w", key, err)
			}
			entries[key] = val
		}
		return NewHash(entries), nil
	default:
		return Value{}, fmt.Errorf("unsupported value type %T", v)
	}
}

// VarsOf converts every entry of m with ValueOf.
func VarsOf(m map[string]any) (Vars, error) {
	vars := make(Vars, len(m))
	for name, raw := range m {
		val, err := ValueOf(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		vars[name] = val
	}
	return vars, nil
}
