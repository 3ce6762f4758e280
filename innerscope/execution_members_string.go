package innerscope

import (
	"fmt"
	"slices"
	"strings"
)

func stringTransform(property string) Value {
	name := "string." + property
	return NewAutoBuiltin(name, func(exec *Execution, receiver Value, args []Value, kwargs map[string]Value, block Value) (Value, error) {
		if err := noArgs(name, args); err != nil {
			return NewNil(), err
		}
		s := receiver.String()
		switch property {
		case "upcase":
			return NewString(strings.ToUpper(s)), nil
		case "downcase":
			return NewString(strings.ToLower(s)), nil
		case "strip":
			return NewString(strings.TrimSpace(s)), nil
		case "reverse":
			runes := []rune(s)
			slices.Reverse(runes)
			return NewString(string(runes)), nil
		default:
			return NewBool(s == ""), nil
		}
	})
}

func stringQuery(property string) Value {
	name := "string." + property
	return NewBuiltin(name, func(exec *Execution, receiver Value, args []Value, kwargs map[string]Value, block Value) (Value, error) {
		s := receiver.String()
		if property == "split" && len(args) == 0 {
			parts := strings.Fields(s)
			out := make([]Value, len(parts))
			for i, p := range parts {
				out[i] = NewString(p)
			}
			return NewArray(out), nil
		}
		if len(args) != 1 || args[0].Kind() != KindString {
			return NewNil(), fmt.Errorf("%s expects a single string argument", name)
		}
		arg := args[0].String()
		switch property {
		case "include?":
			return NewBool(strings.Contains(s, arg)), nil
		case "start_with?":
			return NewBool(strings.HasPrefix(s, arg)), nil
		case "end_with?":
			return NewBool(strings.HasSuffix(s, arg)), nil
		default:
			parts := strings.Split(s, arg)
			out := make([]Value, len(parts))
			for i, p := range parts {
				out[i] = NewString(p)
			}
			return NewArray(out), nil
		}
	})
}
