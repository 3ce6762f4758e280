package innerscope

import "fmt"

// redirectBody returns decl's body with every function-level return turned
// into an export and a fall-through export appended. Block literals and
// nested defs keep their own returns. The declaration is not modified.
func (e *Engine) redirectBody(decl *FunctionStmt) []Statement {
	if cached, ok := e.redirects.Load(decl); ok {
		return cached.([]Statement)
	}
	val, _, _ := e.flights.Do(fmt.Sprintf("redirect:%p", decl), func() (any, error) {
		if cached, ok := e.redirects.Load(decl); ok {
			return cached, nil
		}
		body := rewriteReturns(decl.Body)
		body = append(body, &exportStmt{Fallthrough: true, position: decl.Pos()})
		e.redirects.Store(decl, body)
		return body, nil
	})
	return val.([]Statement)
}

func rewriteReturns(stmts []Statement) []Statement {
	out := make([]Statement, len(stmts), len(stmts)+1)
	for i, stmt := range stmts {
		out[i] = rewriteReturn(stmt)
	}
	return out
}

func rewriteReturn(stmt Statement) Statement {
	switch s := stmt.(type) {
	case *ReturnStmt:
		return &exportStmt{Value: s.Value, position: s.Pos()}
	case *IfStmt:
		clone := *s
		clone.Consequent = rewriteReturns(s.Consequent)
		clone.Alternate = rewriteReturns(s.Alternate)
		if len(s.ElseIf) > 0 {
			clone.ElseIf = make([]*IfStmt, len(s.ElseIf))
			for i, clause := range s.ElseIf {
				clone.ElseIf[i] = rewriteReturn(clause).(*IfStmt)
			}
		}
		return &clone
	case *ForStmt:
		clone := *s
		clone.Body = rewriteReturns(s.Body)
		return &clone
	case *WhileStmt:
		clone := *s
		clone.Body = rewriteReturns(s.Body)
		return &clone
	default:
		return stmt
	}
}

// runRedirected runs fn's rewritten body as frame id in env and unpacks the
// export it ends with.
func (exec *Execution) runRedirected(fn *ScriptFunction, env *Env, pos Position) (*frameExport, error) {
	redirected := *fn
	redirected.Body = exec.engine.redirectBody(fn.decl)
	val, err := exec.runFrame(&redirected, exec.allocFrame(), env, pos)
	if err != nil {
		return nil, err
	}
	export := val.frameExport()
	if export == nil {
		return nil, ErrFrameNotExported
	}
	return export, nil
}
