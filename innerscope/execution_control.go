package innerscope

import "errors"

func (exec *Execution) evalIfStatement(stmt *IfStmt, env *Env) (Value, bool, error) {
	cond, err := exec.evalExpression(stmt.Condition, env)
	if err != nil {
		return NewNil(), false, err
	}
	if cond.Truthy() {
		return exec.evalStatements(stmt.Consequent, env)
	}
	for _, clause := range stmt.ElseIf {
		cond, err := exec.evalExpression(clause.Condition, env)
		if err != nil {
			return NewNil(), false, err
		}
		if cond.Truthy() {
			return exec.evalStatements(clause.Consequent, env)
		}
	}
	if len(stmt.Alternate) > 0 {
		return exec.evalStatements(stmt.Alternate, env)
	}
	return NewNil(), false, nil
}

func (exec *Execution) evalRangeExpr(expr *RangeExpr, env *Env) (Value, error) {
	startVal, err := exec.evalExpression(expr.Start, env)
	if err != nil {
		return NewNil(), err
	}
	endVal, err := exec.evalExpression(expr.End, env)
	if err != nil {
		return NewNil(), err
	}
	start, err := valueToInt64(startVal)
	if err != nil {
		return NewNil(), exec.errorAt(expr.Start.Pos(), "%s", err.Error())
	}
	end, err := valueToInt64(endVal)
	if err != nil {
		return NewNil(), exec.errorAt(expr.End.Pos(), "%s", err.Error())
	}
	return NewRange(Range{Start: start, End: end}), nil
}

// loopBody runs one iteration. It reports stop when the loop must end and
// returned when a return (or export) left the body.
func (exec *Execution) loopBody(body []Statement, env *Env) (val Value, returned bool, stop bool, err error) {
	val, returned, err = exec.evalStatements(body, env)
	if err != nil {
		if errors.Is(err, errLoopBreak) {
			return NewNil(), false, true, nil
		}
		if errors.Is(err, errLoopNext) {
			return NewNil(), false, false, nil
		}
		return NewNil(), false, true, err
	}
	return val, returned, returned, nil
}

func (exec *Execution) evalForStatement(stmt *ForStmt, env *Env) (Value, bool, error) {
	iterable, err := exec.evalExpression(stmt.Iterable, env)
	if err != nil {
		return NewNil(), false, err
	}

	var items func(yield func(Value) bool)
	switch iterable.Kind() {
	case KindArray:
		arr := iterable.Array()
		items = func(yield func(Value) bool) {
			for _, item := range arr {
				if !yield(item) {
					return
				}
			}
		}
	case KindRange:
		r := iterable.Range()
		items = func(yield func(Value) bool) {
			if r.Start <= r.End {
				for i := r.Start; i <= r.End; i++ {
					if !yield(NewInt(i)) {
						return
					}
				}
				return
			}
			for i := r.Start; i >= r.End; i-- {
				if !yield(NewInt(i)) {
					return
				}
			}
		}
	default:
		return NewNil(), false, exec.errorAt(stmt.Pos(), "cannot iterate over %s", iterable.Kind())
	}

	exec.loopDepth++
	defer func() { exec.loopDepth-- }()

	last := NewNil()
	for item := range items {
		env.Assign(stmt.Iterator, item)
		val, returned, stop, err := exec.loopBody(stmt.Body, env)
		if err != nil {
			return NewNil(), false, err
		}
		if returned {
			return val, true, nil
		}
		if stop {
			break
		}
		last = val
	}
	return last, false, nil
}

func (exec *Execution) evalWhileStatement(stmt *WhileStmt, env *Env) (Value, bool, error) {
	exec.loopDepth++
	defer func() { exec.loopDepth-- }()

	last := NewNil()
	for {
		if err := exec.step(); err != nil {
			return NewNil(), false, err
		}
		cond, err := exec.evalExpression(stmt.Condition, env)
		if err != nil {
			return NewNil(), false, err
		}
		if !cond.Truthy() {
			return last, false, nil
		}
		val, returned, stop, err := exec.loopBody(stmt.Body, env)
		if err != nil {
			return NewNil(), false, err
		}
		if returned {
			return val, true, nil
		}
		if stop {
			return last, false, nil
		}
		last = val
	}
}

func (exec *Execution) evalRaiseStatement(stmt *RaiseStmt, env *Env) (Value, bool, error) {
	if stmt.Value == nil {
		return NewNil(), false, exec.errorAt(stmt.Pos(), "unhandled error")
	}
	val, err := exec.evalExpression(stmt.Value, env)
	if err != nil {
		return NewNil(), false, err
	}
	return NewNil(), false, exec.errorAt(stmt.Pos(), "%s", val.String())
}
