package innerscope

import (
	"fmt"
	"maps"
	"slices"
)

// Descriptor is the static name analysis of one function declaration. The
// four name lists are sorted and pairwise disjoint.
type Descriptor struct {
	Name     string
	Params   []string
	Assigned []string
	Closure  []string
	// Global holds every free name not bound by an enclosing def, builtin
	// names included.
	Global []string
	Yields bool
}

// Locals returns the sorted union of Params and Assigned.
func (d *Descriptor) Locals() []string {
	out := append(slices.Clone(d.Params), d.Assigned...)
	slices.Sort(out)
	return out
}

// Free returns the sorted union of Closure and Global.
func (d *Descriptor) Free() []string {
	out := append(slices.Clone(d.Closure), d.Global...)
	slices.Sort(out)
	return out
}

func (d *Descriptor) clone() *Descriptor {
	return &Descriptor{
		Name:     d.Name,
		Params:   slices.Clone(d.Params),
		Assigned: slices.Clone(d.Assigned),
		Closure:  slices.Clone(d.Closure),
		Global:   slices.Clone(d.Global),
		Yields:   d.Yields,
	}
}

// Target is anything a ScopedFunction can wrap: a function Value, a
// *ScriptFunction or another *ScopedFunction.
type Target interface {
	scriptFunction() (*ScriptFunction, error)
}

func (v Value) scriptFunction() (*ScriptFunction, error) {
	switch v.kind {
	case KindFunction:
		return v.Function().scriptFunction()
	case KindBuiltin:
		return nil, &UnsupportedCallableError{Name: v.Builtin().Name, Reason: "builtin functions have no analyzable body"}
	default:
		return nil, &UnsupportedCallableError{Name: v.Inspect(), Reason: "not callable"}
	}
}

func (fn *ScriptFunction) scriptFunction() (*ScriptFunction, error) {
	if fn == nil || fn.decl == nil || fn.script == nil {
		return nil, &UnsupportedCallableError{Name: "<nil>", Reason: "not a compiled script function"}
	}
	return fn, nil
}

// Analyze classifies every name target's body uses without running it.
func Analyze(target Target) (*Descriptor, error) {
	fn, err := target.scriptFunction()
	if err != nil {
		return nil, err
	}
	return fn.script.engine.describe(fn.decl).clone(), nil
}

// Analyze classifies fn's names using e's cache. fn must have been compiled
// by e.
func (e *Engine) Analyze(fn *ScriptFunction) (*Descriptor, error) {
	if _, err := fn.scriptFunction(); err != nil {
		return nil, err
	}
	if fn.script.engine != e {
		return nil, &UnsupportedCallableError{Name: fn.Name, Reason: "compiled by a different engine"}
	}
	return e.describe(fn.decl).clone(), nil
}

// describe returns the cached descriptor for decl, analyzing it on first use.
// The result is shared and must not be modified.
func (e *Engine) describe(decl *FunctionStmt) *Descriptor {
	if cached, ok := e.descriptors.Load(decl); ok {
		return cached.(*Descriptor)
	}
	val, _, _ := e.flights.Do(fmt.Sprintf("descriptor:%p", decl), func() (any, error) {
		if cached, ok := e.descriptors.Load(decl); ok {
			return cached, nil
		}
		desc := classifyNames(decl)
		e.descriptors.Store(decl, desc)
		e.log.Debug("analyzed function",
			"name", desc.Name,
			"params", len(desc.Params),
			"assigned", len(desc.Assigned),
			"closure", len(desc.Closure),
			"global", len(desc.Global),
			"yields", desc.Yields)
		return desc, nil
	})
	return val.(*Descriptor)
}

func classifyNames(decl *FunctionStmt) *Descriptor {
	names := scanFunction(decl)

	enclosing := make(map[string]bool)
	child := decl
	for parent := decl.Parent; parent != nil; child, parent = parent, parent.Parent {
		outer := scanFunction(parent)
		for _, name := range outer.params {
			enclosing[name] = true
		}
		for name := range outer.assigned {
			enclosing[name] = true
		}
		// Block params around the def are closed over too.
		for name := range outer.blockParams[child] {
			enclosing[name] = true
		}
	}

	desc := &Descriptor{
		Name:     decl.Name,
		Params:   slices.Sorted(slices.Values(names.params)),
		Assigned: slices.Sorted(maps.Keys(names.assigned)),
		Closure:  []string{},
		Global:   []string{},
		Yields:   names.yields,
	}
	for _, name := range slices.Sorted(maps.Keys(names.free())) {
		if enclosing[name] {
			desc.Closure = append(desc.Closure, name)
		} else {
			desc.Global = append(desc.Global, name)
		}
	}
	return desc
}

// nameScan is the raw result of walking one declaration.
type nameScan struct {
	params   []string
	assigned map[string]bool
	refs     map[string]bool
	yields   bool
	// blockParams holds, per nested def, the block params in scope where
	// the def appears.
	blockParams map[*FunctionStmt]shadow
}

// free returns the referenced names the function does not bind itself.
func (s *nameScan) free() map[string]bool {
	out := make(map[string]bool)
	for name := range s.refs {
		if s.assigned[name] || slices.Contains(s.params, name) {
			continue
		}
		out[name] = true
	}
	return out
}

func scanFunction(decl *FunctionStmt) *nameScan {
	s := &nameScan{
		assigned:    make(map[string]bool),
		refs:        make(map[string]bool),
		blockParams: make(map[*FunctionStmt]shadow),
	}
	for _, p := range decl.Params {
		s.params = append(s.params, p.Name)
		if p.DefaultVal != nil {
			s.expr(p.DefaultVal, nil)
		}
	}
	s.statements(decl.Body, nil)
	for _, p := range s.params {
		delete(s.assigned, p)
	}
	return s
}

// shadow holds the block parameters in scope; they belong to no frame.
type shadow map[string]bool

func (s *nameScan) bind(name string, sh shadow) {
	if !sh[name] {
		s.assigned[name] = true
	}
}

func (s *nameScan) ref(name string, sh shadow) {
	if !sh[name] {
		s.refs[name] = true
	}
}

func (s *nameScan) statements(stmts []Statement, sh shadow) {
	for _, stmt := range stmts {
		s.statement(stmt, sh)
	}
}

func (s *nameScan) statement(stmt Statement, sh shadow) {
	switch st := stmt.(type) {
	case *ExprStmt:
		s.expr(st.Expr, sh)
	case *ReturnStmt:
		s.expr(st.Value, sh)
	case *RaiseStmt:
		s.expr(st.Value, sh)
	case *AssignStmt:
		s.expr(st.Value, sh)
		switch target := st.Target.(type) {
		case *Identifier:
			s.bind(target.Name, sh)
		case *MemberExpr:
			s.expr(target.Object, sh)
		case *IndexExpr:
			s.expr(target.Object, sh)
			s.expr(target.Index, sh)
		}
	case *IfStmt:
		s.expr(st.Condition, sh)
		s.statements(st.Consequent, sh)
		for _, clause := range st.ElseIf {
			s.statement(clause, sh)
		}
		s.statements(st.Alternate, sh)
	case *ForStmt:
		s.expr(st.Iterable, sh)
		s.bind(st.Iterator, sh)
		s.statements(st.Body, sh)
	case *WhileStmt:
		s.expr(st.Condition, sh)
		s.statements(st.Body, sh)
	case *FunctionStmt:
		s.bind(st.Name, sh)
		if len(sh) > 0 {
			s.blockParams[st] = sh
		}
		for name := range scanFunction(st).free() {
			s.ref(name, sh)
		}
	case *exportStmt:
		s.expr(st.Value, sh)
	}
}

func (s *nameScan) expr(expr Expression, sh shadow) {
	switch e := expr.(type) {
	case nil:
	case *Identifier:
		s.ref(e.Name, sh)
	case *ArrayLiteral:
		for _, el := range e.Elements {
			s.expr(el, sh)
		}
	case *HashLiteral:
		for _, pair := range e.Pairs {
			s.expr(pair.Key, sh)
			s.expr(pair.Value, sh)
		}
	case *UnaryExpr:
		s.expr(e.Right, sh)
	case *BinaryExpr:
		s.expr(e.Left, sh)
		s.expr(e.Right, sh)
	case *RangeExpr:
		s.expr(e.Start, sh)
		s.expr(e.End, sh)
	case *MemberExpr:
		s.expr(e.Object, sh)
	case *IndexExpr:
		s.expr(e.Object, sh)
		s.expr(e.Index, sh)
	case *CallExpr:
		s.expr(e.Callee, sh)
		for _, arg := range e.Args {
			s.expr(arg, sh)
		}
		for _, kw := range e.KwArgs {
			s.expr(kw.Value, sh)
		}
		if e.Block != nil {
			s.expr(e.Block, sh)
		}
	case *BlockLiteral:
		inner := make(shadow, len(sh)+len(e.Params))
		maps.Copy(inner, sh)
		for _, p := range e.Params {
			inner[p] = true
		}
		s.statements(e.Body, inner)
	case *YieldExpr:
		s.yields = true
		for _, arg := range e.Args {
			s.expr(arg, sh)
		}
	}
}
