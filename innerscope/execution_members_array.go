package innerscope

import (
	"fmt"
	"slices"
	"strings"
)

func arrayMember(property string) (Value, error) {
	switch property {
	case "size", "length":
		return NewAutoBuiltin("array."+property, func(exec *Execution, receiver Value, args []Value, kwargs map[string]Value, block Value) (Value, error) {
			return NewInt(int64(len(receiver.Array()))), noArgs("array."+property, args)
		}), nil
	case "empty?":
		return NewAutoBuiltin("array.empty?", func(exec *Execution, receiver Value, args []Value, kwargs map[string]Value, block Value) (Value, error) {
			return NewBool(len(receiver.Array()) == 0), nil
		}), nil
	case "first":
		return NewAutoBuiltin("array.first", func(exec *Execution, receiver Value, args []Value, kwargs map[string]Value, block Value) (Value, error) {
			arr := receiver.Array()
			if len(arr) == 0 {
				return NewNil(), nil
			}
			return arr[0], nil
		}), nil
	case "last":
		return NewAutoBuiltin("array.last", func(exec *Execution, receiver Value, args []Value, kwargs map[string]Value, block Value) (Value, error) {
			arr := receiver.Array()
			if len(arr) == 0 {
				return NewNil(), nil
			}
			return arr[len(arr)-1], nil
		}), nil
	case "include?":
		return NewBuiltin("array.include?", func(exec *Execution, receiver Value, args []Value, kwargs map[string]Value, block Value) (Value, error) {
			if len(args) != 1 {
				return NewNil(), fmt.Errorf("array.include? expects a single value")
			}
			return NewBool(slices.ContainsFunc(receiver.Array(), args[0].Equal)), nil
		}), nil
	case "push":
		return NewBuiltin("array.push", func(exec *Execution, receiver Value, args []Value, kwargs map[string]Value, block Value) (Value, error) {
			return NewArray(slices.Concat(receiver.Array(), args)), nil
		}), nil
	case "reverse":
		return NewAutoBuiltin("array.reverse", func(exec *Execution, receiver Value, args []Value, kwargs map[string]Value, block Value) (Value, error) {
			out := slices.Clone(receiver.Array())
			slices.Reverse(out)
			return NewArray(out), nil
		}), nil
	case "sort":
		return NewAutoBuiltin("array.sort", func(exec *Execution, receiver Value, args []Value, kwargs map[string]Value, block Value) (Value, error) {
			out := slices.Clone(receiver.Array())
			var sortErr error
			slices.SortStableFunc(out, func(a, b Value) int {
				c, err := compareOrdered(a, b)
				if err != nil && sortErr == nil {
					sortErr = err
				}
				return c
			})
			if sortErr != nil {
				return NewNil(), sortErr
			}
			return NewArray(out), nil
		}), nil
	case "sum":
		return NewAutoBuiltin("array.sum", func(exec *Execution, receiver Value, args []Value, kwargs map[string]Value, block Value) (Value, error) {
			total := NewInt(0)
			for _, item := range receiver.Array() {
				next, err := addValues(total, item)
				if err != nil {
					return NewNil(), fmt.Errorf("array.sum: %w", err)
				}
				total = next
			}
			return total, nil
		}), nil
	case "join":
		return NewAutoBuiltin("array.join", func(exec *Execution, receiver Value, args []Value, kwargs map[string]Value, block Value) (Value, error) {
			sep := ""
			if len(args) > 0 {
				sep = args[0].String()
			}
			arr := receiver.Array()
			parts := make([]string, len(arr))
			for i, item := range arr {
				parts[i] = item.String()
			}
			return NewString(strings.Join(parts, sep)), nil
		}), nil
	case "each", "map", "select", "reduce":
		return arrayIterator(property), nil
	default:
		return NewNil(), fmt.Errorf("unknown array method %s", property)
	}
}

func arrayIterator(property string) Value {
	name := "array." + property
	return NewAutoBuiltin(name, func(exec *Execution, receiver Value, args []Value, kwargs map[string]Value, block Value) (Value, error) {
		if err := ensureBlock(block, name); err != nil {
			return NewNil(), err
		}
		arr := receiver.Array()
		switch property {
		case "each":
			for _, item := range arr {
				if _, err := exec.CallBlock(block, []Value{item}); err != nil {
					return NewNil(), err
				}
			}
			return receiver, nil
		case "map":
			out := make([]Value, len(arr))
			for i, item := range arr {
				val, err := exec.CallBlock(block, []Value{item})
				if err != nil {
					return NewNil(), err
				}
				out[i] = val
			}
			return NewArray(out), nil
		case "select":
			out := make([]Value, 0, len(arr))
			for _, item := range arr {
				keep, err := exec.CallBlock(block, []Value{item})
				if err != nil {
					return NewNil(), err
				}
				if keep.Truthy() {
					out = append(out, item)
				}
			}
			return NewArray(out), nil
		default:
			if len(args) > 1 {
				return NewNil(), fmt.Errorf("array.reduce accepts at most one initial value")
			}
			if len(arr) == 0 && len(args) == 0 {
				return NewNil(), fmt.Errorf("array.reduce on empty array requires an initial value")
			}
			var acc Value
			rest := arr
			if len(args) == 1 {
				acc = args[0]
			} else {
				acc, rest = arr[0], arr[1:]
			}
			for _, item := range rest {
				next, err := exec.CallBlock(block, []Value{acc, item})
				if err != nil {
					return NewNil(), err
				}
				acc = next
			}
			return acc, nil
		}
	})
}
