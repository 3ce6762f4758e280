package innerscope

import "errors"

func (exec *Execution) autoInvokeIfNeeded(expr Expression, val Value, receiver Value) (Value, error) {
	if builtin := val.Builtin(); builtin != nil && builtin.AutoInvoke {
		return exec.invokeCallable(val, receiver, nil, nil, NewNil(), expr.Pos())
	}
	return val, nil
}

func (exec *Execution) invokeCallable(callee Value, receiver Value, args []Value, kwargs map[string]Value, block Value, pos Position) (Value, error) {
	var (
		result Value
		err    error
	)
	switch callee.Kind() {
	case KindFunction:
		result, err = exec.callFunction(callee.Function(), args, kwargs, block, pos)
	case KindBuiltin:
		result, err = callee.Builtin().Fn(exec, receiver, args, kwargs, block)
		if err != nil && !isLoopControlSignal(err) {
			err = exec.wrapError(err, pos)
		}
	default:
		return NewNil(), exec.errorAt(pos, "attempted to call non-callable value %s", callee.Kind())
	}
	if err != nil {
		if errors.Is(err, errLoopBreak) {
			return NewNil(), exec.errorAt(pos, "break cannot cross call boundary")
		}
		if errors.Is(err, errLoopNext) {
			return NewNil(), exec.errorAt(pos, "next cannot cross call boundary")
		}
		return NewNil(), err
	}
	return result, nil
}

func (exec *Execution) callFunction(fn *ScriptFunction, args []Value, kwargs map[string]Value, block Value, pos Position) (Value, error) {
	callEnv := newFrameEnv(fn.Env)
	callEnv.Define(blockSlot, block)
	if err := exec.bindFunctionArgs(fn, callEnv, args, kwargs, pos); err != nil {
		return NewNil(), err
	}
	return exec.runFrame(fn, exec.allocFrame(), callEnv, pos)
}

// runFrame evaluates fn's body in env as frame id and reports the exit to
// any observer installed for id, on success and on error.
func (exec *Execution) runFrame(fn *ScriptFunction, id FrameID, env *Env, pos Position) (Value, error) {
	if err := exec.pushFrame(id, fn.Name, pos); err != nil {
		return NewNil(), err
	}
	val, _, err := exec.evalStatements(fn.Body, env)
	exec.popFrame()
	exec.notifyFrame(FrameEvent{ID: id, Function: fn, Env: env, Result: val, Err: err})
	if err != nil {
		return NewNil(), err
	}
	return val, nil
}

func (exec *Execution) bindFunctionArgs(fn *ScriptFunction, env *Env, args []Value, kwargs map[string]Value, pos Position) error {
	usedKw := make(map[string]bool, len(kwargs))
	argIdx := 0

	for _, param := range fn.Params {
		var val Value
		if argIdx < len(args) {
			val = args[argIdx]
			argIdx++
		} else if kw, ok := kwargs[param.Name]; ok {
			val = kw
			usedKw[param.Name] = true
		} else if param.DefaultVal != nil {
			defaultVal, err := exec.evalExpression(param.DefaultVal, env)
			if err != nil {
				return err
			}
			val = defaultVal
		} else {
			return exec.errorAt(pos, "missing argument %s for %s", param.Name, fn.Name)
		}
		env.Define(param.Name, val)
	}

	if argIdx < len(args) {
		return exec.errorAt(pos, "%s expects %d arguments, got %d", fn.Name, len(fn.Params), len(args))
	}
	for name := range kwargs {
		if !usedKw[name] {
			return exec.errorAt(pos, "unexpected keyword argument %s", name)
		}
	}
	return nil
}
