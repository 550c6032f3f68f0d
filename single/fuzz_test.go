//go:build go1.18

package single

import "testing"

type fuzzTarget struct{ v string }

func fuzzInit(f *fuzzTarget, args ...any) error {
	f.v = args[0].(string)
	return nil
}

// Fuzz the two argument-visible policies with arbitrary string inputs.
// Guards against panics and checks the identity/state invariants:
// without reassignment the first arguments win, with it the last do,
// and identity is stable either way.
func FuzzConstructionArgs(f *testing.F) {
	f.Add("a", "b")
	f.Add("", "x")
	f.Add("same", "same")

	f.Fuzz(func(t *testing.T, first, second string) {
		frozen := NewRegistry()
		if err := RegisterIn(frozen, Options[fuzzTarget]{Initializer: fuzzInit}); err != nil {
			t.Fatalf("RegisterIn: %v", err)
		}
		a1, err := NewIn[fuzzTarget](frozen, first)
		if err != nil {
			t.Fatalf("NewIn: %v", err)
		}
		a2, err := NewIn[fuzzTarget](frozen, second)
		if err != nil {
			t.Fatalf("NewIn: %v", err)
		}
		if a1 != a2 {
			t.Fatal("identity must be stable")
		}
		if a1.v != first {
			t.Fatalf("frozen state = %q, want first arg %q", a1.v, first)
		}

		mut := NewRegistry()
		err = RegisterIn(mut, Options[fuzzTarget]{AllowReassignment: true, Initializer: fuzzInit})
		if err != nil {
			t.Fatalf("RegisterIn: %v", err)
		}
		b1, err := NewIn[fuzzTarget](mut, first)
		if err != nil {
			t.Fatalf("NewIn: %v", err)
		}
		b2, err := NewIn[fuzzTarget](mut, second)
		if err != nil {
			t.Fatalf("NewIn: %v", err)
		}
		if b1 != b2 {
			t.Fatal("reassignment must keep identity")
		}
		if b1.v != second {
			t.Fatalf("reassigned state = %q, want second arg %q", b1.v, second)
		}
	})
}
