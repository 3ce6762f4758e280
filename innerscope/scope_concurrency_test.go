package innerscope

import (
	"context"
	"fmt"
	"testing"

	"golang.org/x/sync/errgroup"
)

func TestConcurrentCapturesShareNothing(t *testing.T) {
	script := compileScript(t, `offset = 1000

def work(n)
  doubled = n * 2
  total = 0
  for i in 1..n
    total = total + i
  end
  shifted = total + offset
end`)
	fn := mustFunction(t, script, "work")

	for _, strategy := range []Strategy{StrategyRedirect, StrategyObserve} {
		t.Run(strategy.String(), func(t *testing.T) {
			sf, err := NewScopedFunction(fn, WithStrategy(strategy))
			if err != nil {
				t.Fatalf("new scoped function: %v", err)
			}

			var g errgroup.Group
			for n := 1; n <= 32; n++ {
				g.Go(func() error {
					scope, err := sf.Invoke(context.Background(), Args{Positional: []Value{NewInt(int64(n))}})
					if err != nil {
						return err
					}
					total := n * (n + 1) / 2
					want := ints("offset", 1000, "n", n, "doubled", n*2, "total", total, "i", n, "shifted", total+1000)
					if !scope.Equal(want) {
						return fmt.Errorf("n=%d: unexpected scope %s", n, scope)
					}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestConcurrentFirstAnalysis(t *testing.T) {
	script := compileScript(t, `def f(a)
  b = a + c
  d = b * 2
end`)
	fn := mustFunction(t, script, "f")

	descs := make([]*Descriptor, 16)
	var g errgroup.Group
	for i := range descs {
		g.Go(func() error {
			descs[i] = script.engine.describe(fn.decl)
			body := script.engine.redirectBody(fn.decl)
			if _, ok := body[len(body)-1].(*exportStmt); !ok {
				return fmt.Errorf("redirected body does not end with an export")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
	for i, desc := range descs {
		if desc != descs[0] {
			t.Fatalf("goroutine %d saw a different descriptor instance", i)
		}
	}
	if len(fn.decl.Body) != 2 {
		t.Fatalf("redirect modified the declaration body")
	}
}
