package innerscope

import (
	"fmt"
	"io"
	"maps"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"
)

// Config controls interpreter execution bounds and capture defaults.
type Config struct {
	StepQuota      int
	RecursionLimit int
	// Strategy is the capture strategy used when a ScopedFunction does not
	// pick one.
	Strategy Strategy
	Logger   *log.Logger
	// Output receives what puts prints.
	Output io.Writer
}

// Engine compiles scripts and owns the per-declaration analysis caches.
// It is safe for concurrent use once builtins are registered.
type Engine struct {
	config   Config
	builtins map[string]Value
	log      *log.Logger

	descriptors sync.Map // *FunctionStmt -> *Descriptor
	redirects   sync.Map // *FunctionStmt -> []Statement
	flights     singleflight.Group
}

// NewEngine constructs an Engine with sane defaults and registers built-ins.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.StepQuota < 0 {
		return nil, fmt.Errorf("innerscope: step quota must be non-negative, got %d", cfg.StepQuota)
	}
	if cfg.RecursionLimit < 0 {
		return nil, fmt.Errorf("innerscope: recursion limit must be non-negative, got %d", cfg.RecursionLimit)
	}
	if cfg.StepQuota == 0 {
		cfg.StepQuota = 50000
	}
	if cfg.RecursionLimit == 0 {
		cfg.RecursionLimit = 64
	}
	if !cfg.Strategy.valid() {
		return nil, fmt.Errorf("innerscope: unknown strategy %d", int(cfg.Strategy))
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "innerscope",
			Level:  log.WarnLevel,
		})
	}
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	engine := &Engine{
		config:   cfg,
		builtins: make(map[string]Value),
		log:      cfg.Logger,
	}

	engine.RegisterBuiltin("assert", builtinAssert)
	engine.RegisterBuiltin("puts", builtinPuts)
	engine.RegisterBuiltin("len", builtinLen)
	engine.RegisterBuiltin("max", builtinMax)
	engine.RegisterBuiltin("min", builtinMin)
	engine.RegisterBuiltin("capture", builtinCapture)

	return engine, nil
}

// MustNewEngine constructs an Engine or panics if the config is invalid.
func MustNewEngine(cfg Config) *Engine {
	engine, err := NewEngine(cfg)
	if err != nil {
		panic(err)
	}
	return engine
}

// RegisterBuiltin registers a callable global available to scripts compiled
// afterwards.
func (e *Engine) RegisterBuiltin(name string, fn BuiltinFunc) {
	e.builtins[name] = NewBuiltin(name, fn)
}

// RegisterZeroArgBuiltin registers a builtin that runs when referenced
// without parentheses.
func (e *Engine) RegisterZeroArgBuiltin(name string, fn BuiltinFunc) {
	e.builtins[name] = NewAutoBuiltin(name, fn)
}

// Builtins returns a copy of the registered builtin map.
func (e *Engine) Builtins() map[string]Value {
	return maps.Clone(e.builtins)
}

// Logger returns the engine's logger.
func (e *Engine) Logger() *log.Logger {
	return e.log
}

// ConfigSummary provides a human-readable description of the interpreter
// limits.
func (e *Engine) ConfigSummary() string {
	return fmt.Sprintf("steps=%d recursion=%d strategy=%s", e.config.StepQuota, e.config.RecursionLimit, e.config.Strategy)
}
