package typename

import (
	"reflect"
	"testing"
)

type plain struct{ n int }
type wrapper[T any] struct{ v T }

type level0 struct{ n int }
type level1 struct{ level0 }
type level2 struct{ *level1 }
type wide struct {
	level1
	level0
	Named level2 // not anonymous, must be ignored
}

func typeOf[T any]() reflect.Type { return reflect.TypeOf((*T)(nil)).Elem() }

func TestOf(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		t    reflect.Type
		want string
	}{
		{"named struct", typeOf[plain](), "typename.plain"},
		{"pointer unwrapped", typeOf[**plain](), "typename.plain"},
		{"generic suffix stripped", typeOf[wrapper[int]](), "typename.wrapper"},
		{"builtin", typeOf[int](), "int"},
		{"anonymous struct", typeOf[struct{ x int }](), ""},
		{"nil type", nil, ""},
	}
	for _, tc := range cases {
		if got := Of(tc.t); got != tc.want {
			t.Errorf("%s: Of = %q, want %q", tc.name, got, tc.want)
		}
	}

	// Memoized path returns the same answer.
	if got := Of(typeOf[plain]()); got != "typename.plain" {
		t.Errorf("memoized Of = %q", got)
	}
}

func TestIndirect(t *testing.T) {
	t.Parallel()

	if got := Indirect(typeOf[***plain]()); got != typeOf[plain]() {
		t.Fatalf("Indirect = %v", got)
	}
	if got := Indirect(typeOf[plain]()); got != typeOf[plain]() {
		t.Fatalf("Indirect of non-pointer = %v", got)
	}
	if Indirect(nil) != nil {
		t.Fatal("Indirect(nil) must be nil")
	}
}

// Breadth-first: direct embeds come before their own embeds, pointer
// embeds are unwrapped, non-anonymous fields are ignored.
func TestEmbeddedAncestors(t *testing.T) {
	t.Parallel()

	got := EmbeddedAncestors(typeOf[wide]())
	want := []reflect.Type{typeOf[level1](), typeOf[level0]()}
	if len(got) != len(want) {
		t.Fatalf("ancestors = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ancestors[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	// Deeper chain through a pointer embed.
	got = EmbeddedAncestors(typeOf[level2]())
	want = []reflect.Type{typeOf[level1](), typeOf[level0]()}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("chain[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if EmbeddedAncestors(typeOf[int]()) != nil {
		t.Fatal("non-struct types have no ancestors")
	}
	if EmbeddedAncestors(typeOf[plain]()) != nil {
		t.Fatal("struct with no anonymous fields has no ancestors")
	}
}
