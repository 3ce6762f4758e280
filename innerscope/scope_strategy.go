package innerscope

import (
	"fmt"
	"strings"
)

// Strategy selects how a ScopedFunction extracts the frame bindings.
type Strategy int

const (
	// StrategyAuto redirects when it can and observes bodies that yield.
	StrategyAuto Strategy = iota
	// StrategyRedirect runs a copy of the body whose exits export the frame.
	StrategyRedirect
	// StrategyObserve runs the body unchanged and watches its frame exit.
	StrategyObserve
)

func (s Strategy) String() string {
	switch s {
	case StrategyAuto:
		return "auto"
	case StrategyRedirect:
		return "redirect"
	case StrategyObserve:
		return "observe"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

func (s Strategy) valid() bool {
	return s >= StrategyAuto && s <= StrategyObserve
}

// ParseStrategy maps a strategy name to its value.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return StrategyAuto, nil
	case "redirect", "a":
		return StrategyRedirect, nil
	case "observe", "b":
		return StrategyObserve, nil
	default:
		return StrategyAuto, fmt.Errorf("unknown strategy %q (want auto, redirect or observe)", name)
	}
}

// runStrategy runs fn in env with the chosen strategy.
func (exec *Execution) runStrategy(strategy Strategy, fn *ScriptFunction, env *Env, pos Position) (*frameExport, Strategy, error) {
	desc := exec.engine.describe(fn.decl)
	switch strategy {
	case StrategyRedirect:
		if desc.Yields {
			return nil, strategy, &UnsupportedCallableError{Name: fn.Name, Reason: "yield cannot be redirected; use the observe strategy"}
		}
		export, err := exec.runRedirected(fn, env, pos)
		return export, strategy, err
	case StrategyObserve:
		export, err := exec.runObserved(fn, env, pos)
		return export, strategy, err
	default:
		if desc.Yields {
			exec.engine.log.Debug("falling back to observe", "function", fn.Name, "reason", "yield")
			export, err := exec.runObserved(fn, env, pos)
			return export, StrategyObserve, err
		}
		export, err := exec.runRedirected(fn, env, pos)
		return export, StrategyRedirect, err
	}
}
