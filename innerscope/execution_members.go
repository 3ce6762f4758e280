package innerscope

import (
	"fmt"
	"math"
	"strconv"
)

func (exec *Execution) getMember(obj Value, property string, pos Position) (Value, error) {
	var (
		member Value
		err    error
	)
	switch obj.Kind() {
	case KindHash:
		if val, ok := obj.Hash()[property]; ok {
			return val, nil
		}
		member, err = hashMember(property)
	case KindArray:
		member, err = arrayMember(property)
	case KindString:
		member, err = stringMember(property)
	case KindInt, KindFloat:
		member, err = numberMember(obj, property)
	case KindRange:
		member, err = rangeMember(property)
	default:
		return NewNil(), exec.errorAt(pos, "unsupported member access on %s", obj.Kind())
	}
	if err != nil {
		return NewNil(), exec.wrapError(err, pos)
	}
	return member, nil
}

func noArgs(name string, args []Value) error {
	if len(args) > 0 {
		return fmt.Errorf("%s does not take arguments", name)
	}
	return nil
}

func numberMember(obj Value, property string) (Value, error) {
	switch property {
	case "to_s":
		return NewAutoBuiltin("number.to_s", func(exec *Execution, receiver Value, args []Value, kwargs map[string]Value, block Value) (Value, error) {
			return NewString(receiver.Inspect()), noArgs("number.to_s", args)
		}), nil
	case "to_i":
		return NewAutoBuiltin("number.to_i", func(exec *Execution, receiver Value, args []Value, kwargs map[string]Value, block Value) (Value, error) {
			return NewInt(receiver.Int()), noArgs("number.to_i", args)
		}), nil
	case "to_f":
		return NewAutoBuiltin("number.to_f", func(exec *Execution, receiver Value, args []Value, kwargs map[string]Value, block Value) (Value, error) {
			return NewFloat(receiver.Float()), noArgs("number.to_f", args)
		}), nil
	case "abs":
		return NewAutoBuiltin("number.abs", func(exec *Execution, receiver Value, args []Value, kwargs map[string]Value, block Value) (Value, error) {
			if receiver.Kind() == KindFloat {
				return NewFloat(math.Abs(receiver.Float())), noArgs("number.abs", args)
			}
			n := receiver.Int()
			if n < 0 {
				n = -n
			}
			return NewInt(n), noArgs("number.abs", args)
		}), nil
	case "times":
		if obj.Kind() != KindInt {
			return NewNil(), fmt.Errorf("times is only defined on int")
		}
		return NewAutoBuiltin("int.times", func(exec *Execution, receiver Value, args []Value, kwargs map[string]Value, block Value) (Value, error) {
			if err := ensureBlock(block, "int.times"); err != nil {
				return NewNil(), err
			}
			for i := range receiver.Int() {
				if _, err := exec.CallBlock(block, []Value{NewInt(i)}); err != nil {
					return NewNil(), err
				}
			}
			return receiver, nil
		}), nil
	default:
		return NewNil(), fmt.Errorf("unknown %s method %s", obj.Kind(), property)
	}
}

func rangeMember(property string) (Value, error) {
	switch property {
	case "to_a":
		return NewAutoBuiltin("range.to_a", func(exec *Execution, receiver Value, args []Value, kwargs map[string]Value, block Value) (Value, error) {
			r := receiver.Range()
			out := []Value{}
			if r.Start <= r.End {
				for i := r.Start; i <= r.End; i++ {
					out = append(out, NewInt(i))
				}
			} else {
				for i := r.Start; i >= r.End; i-- {
					out = append(out, NewInt(i))
				}
			}
			return NewArray(out), nil
		}), nil
	case "first":
		return NewAutoBuiltin("range.first", func(exec *Execution, receiver Value, args []Value, kwargs map[string]Value, block Value) (Value, error) {
			return NewInt(receiver.Range().Start), nil
		}), nil
	case "last":
		return NewAutoBuiltin("range.last", func(exec *Execution, receiver Value, args []Value, kwargs map[string]Value, block Value) (Value, error) {
			return NewInt(receiver.Range().End), nil
		}), nil
	default:
		return NewNil(), fmt.Errorf("unknown range method %s", property)
	}
}

func stringMember(property string) (Value, error) {
	switch property {
	case "size", "length":
		return NewAutoBuiltin("string."+property, func(exec *Execution, receiver Value, args []Value, kwargs map[string]Value, block Value) (Value, error) {
			return NewInt(int64(len([]rune(receiver.String())))), noArgs("string."+property, args)
		}), nil
	case "to_s":
		return NewAutoBuiltin("string.to_s", func(exec *Execution, receiver Value, args []Value, kwargs map[string]Value, block Value) (Value, error) {
			return receiver, nil
		}), nil
	case "to_i":
		return NewAutoBuiltin("string.to_i", func(exec *Execution, receiver Value, args []Value, kwargs map[string]Value, block Value) (Value, error) {
			n, err := strconv.ParseInt(receiver.String(), 10, 64)
			if err != nil {
				return NewNil(), fmt.Errorf("string.to_i: invalid integer %q", receiver.String())
			}
			return NewInt(n), nil
		}), nil
	case "upcase", "downcase", "strip", "reverse", "empty?":
		return stringTransform(property), nil
	case "include?", "start_with?", "end_with?", "split":
		return stringQuery(property), nil
	default:
		return NewNil(), fmt.Errorf("unknown string method %s", property)
	}
}
