package single

import "testing"

type benchTarget struct{ v int }

// The fast path after first construction: one atomic load plus the
// memoized ancestor scan.
func BenchmarkNew_FastPath(b *testing.B) {
	r := NewRegistry()
	if err := RegisterIn(r, Options[benchTarget]{}); err != nil {
		b.Fatal(err)
	}
	if _, err := NewIn[benchTarget](r); err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := NewIn[benchTarget](r); err != nil {
			b.Fatal(err)
		}
	}
}

// Same fast path under parallel callers with ThreadSafe on: the occupied
// slot must be served without lock contention.
func BenchmarkNew_FastPathParallel(b *testing.B) {
	r := NewRegistry()
	if err := RegisterIn(r, Options[benchTarget]{ThreadSafe: true}); err != nil {
		b.Fatal(err)
	}
	if _, err := NewIn[benchTarget](r); err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := NewIn[benchTarget](r); err != nil {
				b.Error(err)
				return
			}
		}
	})
}

// Introspection is a pure read and should stay allocation-free.
func BenchmarkIsSingleton(b *testing.B) {
	r := NewRegistry()
	if err := RegisterIn(r, Options[benchTarget]{}); err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !IsSingletonIn[benchTarget](r) {
			b.Fatal("must be a singleton")
		}
	}
}
