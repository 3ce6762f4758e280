package innerscope

import "context"

// Call wraps target with the default policy, invokes it with args and
// returns its scope.
func Call(ctx context.Context, target Target, args Args) (*Scope, error) {
	sf, err := NewScopedFunction(target)
	if err != nil {
		return nil, err
	}
	return sf.Invoke(ctx, args)
}

// CallWith returns a func that wraps a target with opts and invokes it with
// args.
func CallWith(args Args, opts ...Option) func(context.Context, Target) (*Scope, error) {
	return func(ctx context.Context, target Target) (*Scope, error) {
		sf, err := NewScopedFunction(target, opts...)
		if err != nil {
			return nil, err
		}
		return sf.Invoke(ctx, args)
	}
}

// BindWith returns a constructor that wraps targets with mappings layered
// over their outer scope.
func BindWith(mappings ...Mapping) func(Target, ...Option) (*ScopedFunction, error) {
	return func(target Target, opts ...Option) (*ScopedFunction, error) {
		return NewScopedFunction(target, append([]Option{WithMappings(mappings...)}, opts...)...)
	}
}
