package innerscope

func (exec *Execution) evalCallTarget(call *CallExpr, env *Env) (Value, Value, error) {
	if member, ok := call.Callee.(*MemberExpr); ok {
		receiver, err := exec.evalExpression(member.Object, env)
		if err != nil {
			return NewNil(), NewNil(), err
		}
		callee, err := exec.getMember(receiver, member.Property, member.Pos())
		if err != nil {
			return NewNil(), NewNil(), err
		}
		return callee, receiver, nil
	}

	callee, err := exec.evalExpressionWithAuto(call.Callee, env, false)
	if err != nil {
		return NewNil(), NewNil(), err
	}
	return callee, NewNil(), nil
}

func (exec *Execution) evalCallArgs(call *CallExpr, env *Env) ([]Value, map[string]Value, error) {
	args := make([]Value, len(call.Args))
	for i, arg := range call.Args {
		val, err := exec.evalExpression(arg, env)
		if err != nil {
			return nil, nil, err
		}
		args[i] = val
	}
	if len(call.KwArgs) == 0 {
		return args, nil, nil
	}
	kwargs := make(map[string]Value, len(call.KwArgs))
	for _, kw := range call.KwArgs {
		val, err := exec.evalExpression(kw.Value, env)
		if err != nil {
			return nil, nil, err
		}
		kwargs[kw.Name] = val
	}
	return args, kwargs, nil
}

func (exec *Execution) evalCallExpr(call *CallExpr, env *Env) (Value, error) {
	callee, receiver, err := exec.evalCallTarget(call, env)
	if err != nil {
		return NewNil(), err
	}
	args, kwargs, err := exec.evalCallArgs(call, env)
	if err != nil {
		return NewNil(), err
	}
	block := NewNil()
	if call.Block != nil {
		block = NewBlock(call.Block.Params, call.Block.Body, env)
	}
	return exec.invokeCallable(callee, receiver, args, kwargs, block, call.Pos())
}
