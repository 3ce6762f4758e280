// Package innerscope runs functions of a small Ruby-flavoured scripting
// language and returns their local variables. The language supports:
//   - Function definitions via `def name(args...) ... end` with implicit return,
//     including nested defs that close over the enclosing frame.
//   - Literals for ints, floats, strings, bools, nil, arrays, hashes, ranges and symbols.
//   - Arithmetic, comparison and logical operators.
//   - if/elsif/else, for/in and while loops, `do |x| ... end` blocks and yield.
//   - Built-ins such as `assert`, `puts`, `len` and `capture`.
//
// A ScopedFunction wraps a compiled function. Invoking it returns a Scope
// holding the outer names the function borrowed, every name its frame bound
// and its return value. Names the function reads but never binds are supplied
// by mappings layered with Bind, by enclosing frames and by the script's
// module env. A Scope is itself a Mapping, so scopes chain into later calls.
//
// Two capture strategies exist. StrategyRedirect rewrites every exit of the
// function body into an export of the frame env. StrategyObserve installs a
// frame observer keyed by the frame ID of the call and copies the env when
// that frame exits.
//
// Comments beginning with `#` are ignored. Execution is bounded by a step
// quota, a recursion limit and context cancellation.
package innerscope
