package innerscope

import (
	"fmt"
	"maps"
	"strings"
)

func builtinAssert(exec *Execution, receiver Value, args []Value, kwargs map[string]Value, block Value) (Value, error) {
	if len(args) == 0 {
		return NewNil(), fmt.Errorf("assert requires a condition argument")
	}
	if args[0].Truthy() {
		return NewNil(), nil
	}
	message := "assertion failed"
	if len(args) > 1 {
		message = args[1].String()
	} else if msg, ok := kwargs["message"]; ok {
		message = msg.String()
	}
	return NewNil(), newAssertionFailureError(message)
}

func builtinPuts(exec *Execution, receiver Value, args []Value, kwargs map[string]Value, block Value) (Value, error) {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = arg.String()
	}
	if _, err := fmt.Fprintln(exec.engine.config.Output, strings.Join(parts, " ")); err != nil {
		return NewNil(), fmt.Errorf("puts: %w", err)
	}
	return NewNil(), nil
}

func builtinLen(exec *Execution, receiver Value, args []Value, kwargs map[string]Value, block Value) (Value, error) {
	if len(args) != 1 {
		return NewNil(), fmt.Errorf("len expects a single argument")
	}
	switch v := args[0]; v.Kind() {
	case KindString:
		return NewInt(int64(len([]rune(v.String())))), nil
	case KindArray:
		return NewInt(int64(len(v.Array()))), nil
	case KindHash:
		return NewInt(int64(len(v.Hash()))), nil
	case KindRange:
		r := v.Range()
		n := r.End - r.Start
		if n < 0 {
			n = -n
		}
		return NewInt(n + 1), nil
	default:
		return NewNil(), fmt.Errorf("len does not support %s", v.Kind())
	}
}

func builtinMax(exec *Execution, receiver Value, args []Value, kwargs map[string]Value, block Value) (Value, error) {
	return extremum("max", args, func(c int) bool { return c > 0 })
}

func builtinMin(exec *Execution, receiver Value, args []Value, kwargs map[string]Value, block Value) (Value, error) {
	return extremum("min", args, func(c int) bool { return c < 0 })
}

// extremum picks the winning element of args, or of a single array argument.
func extremum(name string, args []Value, better func(int) bool) (Value, error) {
	items := args
	if len(args) == 1 && args[0].Kind() == KindArray {
		items = args[0].Array()
	}
	if len(items) == 0 {
		return NewNil(), fmt.Errorf("%s expects at least one value", name)
	}
	best := items[0]
	for _, item := range items[1:] {
		c, err := compareOrdered(item, best)
		if err != nil {
			return NewNil(), fmt.Errorf("%s: %w", name, err)
		}
		if better(c) {
			best = item
		}
	}
	return best, nil
}

// builtinCapture runs a function value on the calling execution and returns
// its inner bindings as a hash with the return value under :return.
func builtinCapture(exec *Execution, receiver Value, args []Value, kwargs map[string]Value, block Value) (Value, error) {
	if len(args) == 0 {
		return NewNil(), fmt.Errorf("capture expects a function")
	}
	target := args[0]
	if target.Kind() != KindFunction {
		return NewNil(), &UnsupportedCallableError{Name: target.Inspect(), Reason: "not a script function"}
	}
	scope, err := exec.capture(target.Function(), Args{Positional: args[1:], Keywords: kwargs, Block: block})
	if err != nil {
		return NewNil(), err
	}
	entries := make(map[string]Value, scope.inner.Len()+1)
	maps.Copy(entries, scope.Inner())
	entries["return"] = scope.ReturnValue()
	return NewHash(entries), nil
}
