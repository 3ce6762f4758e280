package innerscope

type ValueKind int

const (
	KindNil ValueKind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindSymbol
	KindArray
	KindHash
	KindRange
	KindFunction
	KindBuiltin
	KindBlock

	// kindFrameExport carries a redirected frame's bindings out of the
	// interpreter. It never reaches script code.
	kindFrameExport
)

// Value is an immutable handle to a script value. Arrays and hashes share
// their backing storage between copies of the handle.
type Value struct {
	kind ValueKind
	data any
}

type Builtin struct {
	Name       string
	Fn         BuiltinFunc
	AutoInvoke bool
}

type BuiltinFunc func(exec *Execution, receiver Value, args []Value, kwargs map[string]Value, block Value) (Value, error)

// Range is an inclusive integer range.
type Range struct {
	Start int64
	End   int64
}

type Block struct {
	Params []string
	Body   []Statement
	Env    *Env
}

type frameExport struct {
	names  []string
	values map[string]Value
	result Value
}
