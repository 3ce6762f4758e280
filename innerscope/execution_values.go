package innerscope

import (
	"cmp"
	"errors"
	"fmt"
	"maps"
	"slices"
)

func valueToHashKey(val Value) (string, error) {
	switch val.Kind() {
	case KindSymbol, KindString:
		return val.String(), nil
	default:
		return "", fmt.Errorf("unsupported hash key type %v", val.Kind())
	}
}

func valueToInt64(val Value) (int64, error) {
	switch val.Kind() {
	case KindInt:
		return val.Int(), nil
	case KindFloat:
		return int64(val.Float()), nil
	default:
		return 0, fmt.Errorf("expected integer value, got %s", val.Kind())
	}
}

func valueToInt(val Value) (int, error) {
	i, err := valueToInt64(val)
	if err != nil {
		return 0, fmt.Errorf("expected integer index, got %s", val.Kind())
	}
	return int(i), nil
}

func addValues(left, right Value) (Value, error) {
	switch {
	case left.Kind() == KindInt && right.Kind() == KindInt:
		return NewInt(left.Int() + right.Int()), nil
	case left.isNumeric() && right.isNumeric():
		return NewFloat(left.Float() + right.Float()), nil
	case left.Kind() == KindArray && right.Kind() == KindArray:
		return NewArray(slices.Concat(left.Array(), right.Array())), nil
	case left.Kind() == KindHash && right.Kind() == KindHash:
		out := make(map[string]Value, len(left.Hash())+len(right.Hash()))
		maps.Copy(out, left.Hash())
		maps.Copy(out, right.Hash())
		return NewHash(out), nil
	case left.Kind() == KindString || right.Kind() == KindString:
		return NewString(left.String() + right.String()), nil
	default:
		return NewNil(), fmt.Errorf("unsupported addition operands %s and %s", left.Kind(), right.Kind())
	}
}

func subtractValues(left, right Value) (Value, error) {
	switch {
	case left.Kind() == KindInt && right.Kind() == KindInt:
		return NewInt(left.Int() - right.Int()), nil
	case left.isNumeric() && right.isNumeric():
		return NewFloat(left.Float() - right.Float()), nil
	case left.Kind() == KindArray && right.Kind() == KindArray:
		rArr := right.Array()
		out := make([]Value, 0, len(left.Array()))
		for _, item := range left.Array() {
			if !slices.ContainsFunc(rArr, item.Equal) {
				out = append(out, item)
			}
		}
		return NewArray(out), nil
	default:
		return NewNil(), fmt.Errorf("unsupported subtraction operands %s and %s", left.Kind(), right.Kind())
	}
}

func multiplyValues(left, right Value) (Value, error) {
	switch {
	case left.Kind() == KindInt && right.Kind() == KindInt:
		return NewInt(left.Int() * right.Int()), nil
	case left.isNumeric() && right.isNumeric():
		return NewFloat(left.Float() * right.Float()), nil
	default:
		return NewNil(), fmt.Errorf("unsupported multiplication operands %s and %s", left.Kind(), right.Kind())
	}
}

// divideValues keeps integer division for two ints and promotes otherwise.
func divideValues(left, right Value) (Value, error) {
	switch {
	case left.Kind() == KindInt && right.Kind() == KindInt:
		if right.Int() == 0 {
			return NewNil(), errors.New("division by zero")
		}
		return NewInt(left.Int() / right.Int()), nil
	case left.isNumeric() && right.isNumeric():
		if right.Float() == 0 {
			return NewNil(), errors.New("division by zero")
		}
		return NewFloat(left.Float() / right.Float()), nil
	default:
		return NewNil(), fmt.Errorf("unsupported division operands %s and %s", left.Kind(), right.Kind())
	}
}

func moduloValues(left, right Value) (Value, error) {
	if left.Kind() == KindInt && right.Kind() == KindInt {
		if right.Int() == 0 {
			return NewNil(), errors.New("modulo by zero")
		}
		return NewInt(left.Int() % right.Int()), nil
	}
	return NewNil(), fmt.Errorf("unsupported modulo operands %s and %s", left.Kind(), right.Kind())
}

func compareOrdered(left, right Value) (int, error) {
	switch {
	case left.Kind() == KindInt && right.Kind() == KindInt:
		return cmp.Compare(left.Int(), right.Int()), nil
	case left.isNumeric() && right.isNumeric():
		return cmp.Compare(left.Float(), right.Float()), nil
	case left.Kind() == KindString && right.Kind() == KindString:
		return cmp.Compare(left.String(), right.String()), nil
	default:
		return 0, fmt.Errorf("unsupported comparison operands %s and %s", left.Kind(), right.Kind())
	}
}

func compareValues(left, right Value, pred func(int) bool) (Value, error) {
	c, err := compareOrdered(left, right)
	if err != nil {
		return NewNil(), err
	}
	return NewBool(pred(c)), nil
}
