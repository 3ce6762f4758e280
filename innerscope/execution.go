package innerscope

import (
	"context"
	"fmt"
	"strings"
)

// ScriptFunction is a compiled function value. Env is the scope the def ran
// in: the module env for top-level functions, the enclosing frame for nested
// ones.
type ScriptFunction struct {
	Name   string
	Params []Param
	Body   []Statement
	Pos    Position
	Env    *Env
	decl   *FunctionStmt
	script *Script
}

// Signature renders the function as name(a, b).
func (fn *ScriptFunction) Signature() string {
	names := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		names[i] = p.Name
	}
	return fmt.Sprintf("%s(%s)", fn.Name, strings.Join(names, ", "))
}

// Script returns the compiled script that declared fn.
func (fn *ScriptFunction) Script() *Script {
	return fn.script
}

// FrameID identifies one function frame within an Execution.
type FrameID uint64

type callFrame struct {
	ID       FrameID
	Function string
	Pos      Position
}

// Execution is the state of one top-level invocation. It is not safe for
// concurrent use; every call gets its own.
type Execution struct {
	engine       *Engine
	script       *Script
	ctx          context.Context
	quota        int
	recursionCap int
	steps        int
	callStack    []callFrame
	loopDepth    int
	nextFrame    FrameID
	observers    map[FrameID]FrameObserver
}

func newExecution(ctx context.Context, script *Script) *Execution {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := script.engine.config
	return &Execution{
		engine:       script.engine,
		script:       script,
		ctx:          ctx,
		quota:        cfg.StepQuota,
		recursionCap: cfg.RecursionLimit,
		callStack:    make([]callFrame, 0, 8),
	}
}

// Context returns the context the execution checks for cancellation.
func (exec *Execution) Context() context.Context {
	return exec.ctx
}

func (exec *Execution) step() error {
	exec.steps++
	if exec.quota > 0 && exec.steps > exec.quota {
		return fmt.Errorf("%w (%d)", errStepQuotaExceeded, exec.quota)
	}
	select {
	case <-exec.ctx.Done():
		return exec.ctx.Err()
	default:
	}
	return nil
}

func (exec *Execution) evalStatements(stmts []Statement, env *Env) (Value, bool, error) {
	result := NewNil()
	for _, stmt := range stmts {
		if err := exec.step(); err != nil {
			return NewNil(), false, err
		}
		if export, ok := stmt.(*exportStmt); ok {
			val, err := exec.evalExport(export, env, result)
			return val, true, err
		}
		val, returned, err := exec.evalStatement(stmt, env)
		if err != nil {
			return NewNil(), false, err
		}
		if returned {
			return val, true, nil
		}
		result = val
	}
	return result, false, nil
}

func (exec *Execution) evalStatement(stmt Statement, env *Env) (Value, bool, error) {
	switch s := stmt.(type) {
	case *ExprStmt:
		val, err := exec.evalExpression(s.Expr, env)
		return val, false, err
	case *ReturnStmt:
		if s.Value == nil {
			return NewNil(), true, nil
		}
		val, err := exec.evalExpression(s.Value, env)
		return val, true, err
	case *RaiseStmt:
		return exec.evalRaiseStatement(s, env)
	case *AssignStmt:
		val, err := exec.evalExpression(s.Value, env)
		if err != nil {
			return NewNil(), false, err
		}
		if err := exec.assign(s.Target, val, env); err != nil {
			return NewNil(), false, err
		}
		return val, false, nil
	case *IfStmt:
		return exec.evalIfStatement(s, env)
	case *ForStmt:
		return exec.evalForStatement(s, env)
	case *WhileStmt:
		return exec.evalWhileStatement(s, env)
	case *BreakStmt:
		if exec.loopDepth == 0 {
			return NewNil(), false, exec.errorAt(s.Pos(), "break used outside of loop")
		}
		return NewNil(), false, errLoopBreak
	case *NextStmt:
		if exec.loopDepth == 0 {
			return NewNil(), false, exec.errorAt(s.Pos(), "next used outside of loop")
		}
		return NewNil(), false, errLoopNext
	case *FunctionStmt:
		fn := exec.newClosure(s, env)
		env.Assign(s.Name, NewFunction(fn))
		return NewFunction(fn), false, nil
	default:
		return NewNil(), false, exec.errorAt(stmt.Pos(), "unsupported statement")
	}
}

func (exec *Execution) newClosure(decl *FunctionStmt, env *Env) *ScriptFunction {
	return &ScriptFunction{
		Name:   decl.Name,
		Params: decl.Params,
		Body:   decl.Body,
		Pos:    decl.Pos(),
		Env:    env,
		decl:   decl,
		script: exec.script,
	}
}

// evalExport ends a redirected frame. last is the value of the statement
// before a fall-through export.
func (exec *Execution) evalExport(stmt *exportStmt, env *Env, last Value) (Value, error) {
	result := NewNil()
	switch {
	case stmt.Fallthrough:
		result = last
	case stmt.Value != nil:
		val, err := exec.evalExpression(stmt.Value, env)
		if err != nil {
			return NewNil(), err
		}
		result = val
	}
	frame := env.frameEnv()
	if frame == nil {
		return NewNil(), exec.errorAt(stmt.Pos(), "export outside of a function frame")
	}
	names, values := frame.snapshot()
	return newFrameExportValue(&frameExport{names: names, values: values, result: result}), nil
}

func (exec *Execution) evalExpression(expr Expression, env *Env) (Value, error) {
	return exec.evalExpressionWithAuto(expr, env, true)
}

func (exec *Execution) evalExpressionWithAuto(expr Expression, env *Env, autoCall bool) (Value, error) {
	if err := exec.step(); err != nil {
		return NewNil(), err
	}
	switch e := expr.(type) {
	case *Identifier:
		val, ok := env.Get(e.Name)
		if !ok {
			return NewNil(), exec.errorAt(e.Pos(), "undefined variable %s", e.Name)
		}
		if autoCall {
			return exec.autoInvokeIfNeeded(e, val, NewNil())
		}
		return val, nil
	case *IntegerLiteral:
		return NewInt(e.Value), nil
	case *FloatLiteral:
		return NewFloat(e.Value), nil
	case *StringLiteral:
		return NewString(e.Value), nil
	case *BoolLiteral:
		return NewBool(e.Value), nil
	case *NilLiteral:
		return NewNil(), nil
	case *SymbolLiteral:
		return NewSymbol(e.Name), nil
	case *ArrayLiteral:
		elems := make([]Value, len(e.Elements))
		for i, el := range e.Elements {
			val, err := exec.evalExpression(el, env)
			if err != nil {
				return NewNil(), err
			}
			elems[i] = val
		}
		return NewArray(elems), nil
	case *HashLiteral:
		entries := make(map[string]Value, len(e.Pairs))
		for _, pair := range e.Pairs {
			keyVal, err := exec.evalExpression(pair.Key, env)
			if err != nil {
				return NewNil(), err
			}
			key, err := valueToHashKey(keyVal)
			if err != nil {
				return NewNil(), exec.errorAt(pair.Key.Pos(), "%s", err.Error())
			}
			val, err := exec.evalExpression(pair.Value, env)
			if err != nil {
				return NewNil(), err
			}
			entries[key] = val
		}
		return NewHash(entries), nil
	case *UnaryExpr:
		return exec.evalUnaryExpr(e, env)
	case *BinaryExpr:
		return exec.evalBinaryExpr(e, env)
	case *RangeExpr:
		return exec.evalRangeExpr(e, env)
	case *MemberExpr:
		obj, err := exec.evalExpression(e.Object, env)
		if err != nil {
			return NewNil(), err
		}
		member, err := exec.getMember(obj, e.Property, e.Pos())
		if err != nil {
			return NewNil(), err
		}
		if autoCall {
			return exec.autoInvokeIfNeeded(e, member, obj)
		}
		return member, nil
	case *IndexExpr:
		return exec.evalIndexExpr(e, env)
	case *CallExpr:
		return exec.evalCallExpr(e, env)
	case *BlockLiteral:
		return NewBlock(e.Params, e.Body, env), nil
	case *YieldExpr:
		return exec.evalYield(e, env)
	default:
		return NewNil(), exec.errorAt(expr.Pos(), "unsupported expression")
	}
}
