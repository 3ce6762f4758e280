package innerscope

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValueOf(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want Value
	}{
		{"nil", nil, NewNil()},
		{"bool", true, NewBool(true)},
		{"int", 7, NewInt(7)},
		{"int64", int64(-3), NewInt(-3)},
		{"float", 1.5, NewFloat(1.5)},
		{"string", "hi", NewString("hi")},
		{"array", []any{int64(1), "a"}, NewArray([]Value{NewInt(1), NewString("a")})},
		{"hash", map[string]any{"k": false}, NewHash(map[string]Value{"k": NewBool(false)})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValueOf(tt.in)
			if err != nil {
				t.Fatalf("ValueOf: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Fatalf("ValueOf(%v) = %s, want %s", tt.in, got.Inspect(), tt.want.Inspect())
			}
		})
	}

	if _, err := ValueOf(struct{}{}); err == nil {
		t.Fatalf("expected error for unsupported type")
	}
}

func TestVarsOf(t *testing.T) {
	vars, err := VarsOf(map[string]any{"a": int64(1), "b": []any{"x"}})
	if err != nil {
		t.Fatalf("VarsOf: %v", err)
	}
	want := Vars{"a": NewInt(1), "b": NewArray([]Value{NewString("x")})}
	if diff := cmp.Diff(want, vars, valueComparer); diff != "" {
		t.Fatalf("vars mismatch (-want +got):\n%s", diff)
	}
}
