package innerscope

func (exec *Execution) evalUnaryExpr(e *UnaryExpr, env *Env) (Value, error) {
	right, err := exec.evalExpression(e.Right, env)
	if err != nil {
		return NewNil(), err
	}
	switch e.Operator {
	case tokenMinus:
		switch right.Kind() {
		case KindInt:
			return NewInt(-right.Int()), nil
		case KindFloat:
			return NewFloat(-right.Float()), nil
		default:
			return NewNil(), exec.errorAt(e.Pos(), "unsupported unary - operand %s", right.Kind())
		}
	case tokenBang:
		return NewBool(!right.Truthy()), nil
	default:
		return NewNil(), exec.errorAt(e.Pos(), "unsupported unary operator")
	}
}

func (exec *Execution) evalIndexExpr(e *IndexExpr, env *Env) (Value, error) {
	obj, err := exec.evalExpression(e.Object, env)
	if err != nil {
		return NewNil(), err
	}
	idx, err := exec.evalExpression(e.Index, env)
	if err != nil {
		return NewNil(), err
	}
	switch obj.Kind() {
	case KindString:
		i, err := valueToInt(idx)
		if err != nil {
			return NewNil(), exec.errorAt(e.Index.Pos(), "%s", err.Error())
		}
		runes := []rune(obj.String())
		if i < 0 {
			i += len(runes)
		}
		if i < 0 || i >= len(runes) {
			return NewNil(), nil
		}
		return NewString(string(runes[i])), nil
	case KindArray:
		i, err := valueToInt(idx)
		if err != nil {
			return NewNil(), exec.errorAt(e.Index.Pos(), "%s", err.Error())
		}
		arr := obj.Array()
		if i < 0 {
			i += len(arr)
		}
		if i < 0 || i >= len(arr) {
			return NewNil(), nil
		}
		return arr[i], nil
	case KindHash:
		key, err := valueToHashKey(idx)
		if err != nil {
			return NewNil(), exec.errorAt(e.Index.Pos(), "%s", err.Error())
		}
		val, ok := obj.Hash()[key]
		if !ok {
			return NewNil(), nil
		}
		return val, nil
	default:
		return NewNil(), exec.errorAt(e.Object.Pos(), "cannot index %s", obj.Kind())
	}
}

func (exec *Execution) evalBinaryExpr(expr *BinaryExpr, env *Env) (Value, error) {
	left, err := exec.evalExpression(expr.Left, env)
	if err != nil {
		return NewNil(), err
	}

	// && and || short-circuit and yield the deciding operand.
	switch expr.Operator {
	case tokenAnd:
		if !left.Truthy() {
			return left, nil
		}
		return exec.evalExpression(expr.Right, env)
	case tokenOr:
		if left.Truthy() {
			return left, nil
		}
		return exec.evalExpression(expr.Right, env)
	}

	right, err := exec.evalExpression(expr.Right, env)
	if err != nil {
		return NewNil(), err
	}

	var result Value
	switch expr.Operator {
	case tokenPlus:
		result, err = addValues(left, right)
	case tokenMinus:
		result, err = subtractValues(left, right)
	case tokenAsterisk:
		result, err = multiplyValues(left, right)
	case tokenSlash:
		result, err = divideValues(left, right)
	case tokenPercent:
		result, err = moduloValues(left, right)
	case tokenEQ:
		return NewBool(left.Equal(right)), nil
	case tokenNotEQ:
		return NewBool(!left.Equal(right)), nil
	case tokenLT:
		result, err = compareValues(left, right, func(c int) bool { return c < 0 })
	case tokenLTE:
		result, err = compareValues(left, right, func(c int) bool { return c <= 0 })
	case tokenGT:
		result, err = compareValues(left, right, func(c int) bool { return c > 0 })
	case tokenGTE:
		result, err = compareValues(left, right, func(c int) bool { return c >= 0 })
	default:
		return NewNil(), exec.errorAt(expr.Pos(), "unsupported operator %s", expr.Operator)
	}

	if err != nil {
		return NewNil(), exec.wrapError(err, expr.Pos())
	}
	return result, nil
}
