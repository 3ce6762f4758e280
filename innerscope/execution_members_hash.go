package innerscope

import (
	"fmt"
	"maps"
)

func hashMember(property string) (Value, error) {
	switch property {
	case "size", "length":
		return NewAutoBuiltin("hash."+property, func(exec *Execution, receiver Value, args []Value, kwargs map[string]Value, block Value) (Value, error) {
			return NewInt(int64(len(receiver.Hash()))), noArgs("hash."+property, args)
		}), nil
	case "empty?":
		return NewAutoBuiltin("hash.empty?", func(exec *Execution, receiver Value, args []Value, kwargs map[string]Value, block Value) (Value, error) {
			return NewBool(len(receiver.Hash()) == 0), nil
		}), nil
	case "keys":
		return NewAutoBuiltin("hash.keys", func(exec *Execution, receiver Value, args []Value, kwargs map[string]Value, block Value) (Value, error) {
			keys := sortedHashKeys(receiver.Hash())
			out := make([]Value, len(keys))
			for i, k := range keys {
				out[i] = NewSymbol(k)
			}
			return NewArray(out), nil
		}), nil
	case "values":
		return NewAutoBuiltin("hash.values", func(exec *Execution, receiver Value, args []Value, kwargs map[string]Value, block Value) (Value, error) {
			entries := receiver.Hash()
			keys := sortedHashKeys(entries)
			out := make([]Value, len(keys))
			for i, k := range keys {
				out[i] = entries[k]
			}
			return NewArray(out), nil
		}), nil
	case "key?":
		return NewBuiltin("hash.key?", func(exec *Execution, receiver Value, args []Value, kwargs map[string]Value, block Value) (Value, error) {
			if len(args) != 1 {
				return NewNil(), fmt.Errorf("hash.key? expects a single key")
			}
			key, err := valueToHashKey(args[0])
			if err != nil {
				return NewNil(), err
			}
			_, ok := receiver.Hash()[key]
			return NewBool(ok), nil
		}), nil
	case "fetch":
		return NewBuiltin("hash.fetch", func(exec *Execution, receiver Value, args []Value, kwargs map[string]Value, block Value) (Value, error) {
			if len(args) < 1 || len(args) > 2 {
				return NewNil(), fmt.Errorf("hash.fetch expects a key and optional default")
			}
			key, err := valueToHashKey(args[0])
			if err != nil {
				return NewNil(), err
			}
			if val, ok := receiver.Hash()[key]; ok {
				return val, nil
			}
			if len(args) == 2 {
				return args[1], nil
			}
			return NewNil(), fmt.Errorf("hash.fetch: key %s not found", key)
		}), nil
	case "merge":
		return NewBuiltin("hash.merge", func(exec *Execution, receiver Value, args []Value, kwargs map[string]Value, block Value) (Value, error) {
			if len(args) != 1 || args[0].Kind() != KindHash {
				return NewNil(), fmt.Errorf("hash.merge expects a single hash argument")
			}
			out := maps.Clone(receiver.Hash())
			maps.Copy(out, args[0].Hash())
			return NewHash(out), nil
		}), nil
	case "each":
		return NewAutoBuiltin("hash.each", func(exec *Execution, receiver Value, args []Value, kwargs map[string]Value, block Value) (Value, error) {
			if err := ensureBlock(block, "hash.each"); err != nil {
				return NewNil(), err
			}
			entries := receiver.Hash()
			for _, key := range sortedHashKeys(entries) {
				if _, err := exec.CallBlock(block, []Value{NewSymbol(key), entries[key]}); err != nil {
					return NewNil(), err
				}
			}
			return receiver, nil
		}), nil
	default:
		return NewNil(), fmt.Errorf("unknown hash method %s", property)
	}
}
