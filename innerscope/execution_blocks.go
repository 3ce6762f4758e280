package innerscope

import "fmt"

func ensureBlock(block Value, name string) error {
	if block.Block() == nil {
		if name != "" {
			return fmt.Errorf("%s requires a block", name)
		}
		return fmt.Errorf("block required")
	}
	return nil
}

// CallBlock invokes a block value with the provided arguments. Missing
// arguments bind nil; extra ones are dropped.
func (exec *Execution) CallBlock(block Value, args []Value) (Value, error) {
	if err := ensureBlock(block, ""); err != nil {
		return NewNil(), err
	}
	blk := block.Block()
	blockEnv := newEnv(blk.Env)
	for i, param := range blk.Params {
		val := NewNil()
		if i < len(args) {
			val = args[i]
		}
		blockEnv.Define(param, val)
	}
	val, _, err := exec.evalStatements(blk.Body, blockEnv)
	if err != nil {
		return NewNil(), err
	}
	return val, nil
}

func (exec *Execution) evalYield(expr *YieldExpr, env *Env) (Value, error) {
	block, ok := env.Get(blockSlot)
	if !ok || block.Kind() == KindNil {
		return NewNil(), exec.errorAt(expr.Pos(), "no block given")
	}
	args := make([]Value, 0, len(expr.Args))
	for _, arg := range expr.Args {
		val, err := exec.evalExpression(arg, env)
		if err != nil {
			return NewNil(), err
		}
		args = append(args, val)
	}
	return exec.CallBlock(block, args)
}
