package innerscope

func NewNil() Value               { return Value{kind: KindNil} }
func NewBool(b bool) Value        { return Value{kind: KindBool, data: b} }
func NewInt(i int64) Value        { return Value{kind: KindInt, data: i} }
func NewFloat(f float64) Value    { return Value{kind: KindFloat, data: f} }
func NewString(s string) Value    { return Value{kind: KindString, data: s} }
func NewSymbol(name string) Value { return Value{kind: KindSymbol, data: name} }
func NewArray(a []Value) Value    { return Value{kind: KindArray, data: a} }
func NewRange(r Range) Value      { return Value{kind: KindRange, data: r} }
func NewHash(h map[string]Value) Value {
	if h == nil {
		h = map[string]Value{}
	}
	return Value{kind: KindHash, data: h}
}

func NewBlock(params []string, body []Statement, env *Env) Value {
	return Value{kind: KindBlock, data: &Block{Params: params, Body: body, Env: env}}
}

func NewFunction(fn *ScriptFunction) Value {
	return Value{kind: KindFunction, data: fn}
}

func NewBuiltin(name string, fn BuiltinFunc) Value {
	return Value{kind: KindBuiltin, data: &Builtin{Name: name, Fn: fn}}
}

// NewAutoBuiltin builds a builtin that runs when referenced without a call,
// e.g. `items.size`.
func NewAutoBuiltin(name string, fn BuiltinFunc) Value {
	return Value{kind: KindBuiltin, data: &Builtin{Name: name, Fn: fn, AutoInvoke: true}}
}

func newFrameExportValue(export *frameExport) Value {
	return Value{kind: kindFrameExport, data: export}
}
