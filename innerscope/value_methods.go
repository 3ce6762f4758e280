package innerscope

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

func (k ValueKind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindSymbol:
		return "symbol"
	case KindArray:
		return "array"
	case KindHash:
		return "hash"
	case KindRange:
		return "range"
	case KindFunction:
		return "function"
	case KindBuiltin:
		return "builtin"
	case KindBlock:
		return "block"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// String renders v the way puts prints it: strings and symbols bare,
// collection elements inspected.
func (v Value) String() string {
	switch v.kind {
	case KindString, KindSymbol:
		return v.data.(string)
	case KindNil:
		return ""
	default:
		return v.Inspect()
	}
}

// Inspect renders v as a literal: strings quoted, symbols prefixed, nil
// spelled out.
func (v Value) Inspect() string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindBool:
		return strconv.FormatBool(v.Bool())
	case KindInt:
		return strconv.FormatInt(v.data.(int64), 10)
	case KindFloat:
		f := v.data.(float64)
		s := strconv.FormatFloat(f, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEIN") {
			s += ".0"
		}
		return s
	case KindString:
		return strconv.Quote(v.data.(string))
	case KindSymbol:
		return ":" + v.data.(string)
	case KindArray:
		elems := v.data.([]Value)
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = e.Inspect()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindHash:
		entries := v.data.(map[string]Value)
		if len(entries) == 0 {
			return "{}"
		}
		parts := make([]string, 0, len(entries))
		for _, key := range sortedHashKeys(entries) {
			parts = append(parts, fmt.Sprintf("%s: %s", key, entries[key].Inspect()))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case KindRange:
		r := v.data.(Range)
		return fmt.Sprintf("%d..%d", r.Start, r.End)
	case KindFunction:
		return fmt.Sprintf("<function %s>", v.data.(*ScriptFunction).Name)
	case KindBuiltin:
		return fmt.Sprintf("<builtin %s>", v.data.(*Builtin).Name)
	case KindBlock:
		return "<block>"
	default:
		return fmt.Sprintf("<%v>", v.kind)
	}
}

func (v Value) Truthy() bool {
	switch v.kind {
	case KindNil:
		return false
	case KindBool:
		return v.Bool()
	case KindInt:
		return v.data.(int64) != 0
	case KindFloat:
		return v.data.(float64) != 0
	case KindString:
		return v.data.(string) != ""
	case KindArray:
		return len(v.data.([]Value)) > 0
	case KindHash:
		return len(v.data.(map[string]Value)) > 0
	default:
		return true
	}
}

// Equal compares values structurally. Arrays and hashes compare element by
// element; functions, builtins and blocks compare by identity.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		if v.isNumeric() && other.isNumeric() {
			return v.Float() == other.Float()
		}
		return false
	}
	switch v.kind {
	case KindNil:
		return true
	case KindBool:
		return v.Bool() == other.Bool()
	case KindInt:
		return v.data.(int64) == other.data.(int64)
	case KindFloat:
		return v.data.(float64) == other.data.(float64)
	case KindString, KindSymbol:
		return v.data.(string) == other.data.(string)
	case KindRange:
		return v.data.(Range) == other.data.(Range)
	case KindArray:
		return slices.EqualFunc(v.Array(), other.Array(), Value.Equal)
	case KindHash:
		left, right := v.Hash(), other.Hash()
		if len(left) != len(right) {
			return false
		}
		for key, lv := range left {
			rv, ok := right[key]
			if !ok || !lv.Equal(rv) {
				return false
			}
		}
		return true
	default:
		return v.data == other.data
	}
}

func sortedHashKeys(entries map[string]Value) []string {
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
