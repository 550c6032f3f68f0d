// Package single converts ordinary Go types into singletons: types whose
// every construction attempt returns the same shared instance, with
// configurable policies for thread safety, subtyping via embedding, and
// re-initialization.
//
// Design
//
//   - Identity: instead of patching construction into the type itself,
//     the package keeps a registry keyed by reflect.Type. Register[T]
//     records {configuration, marker, empty instance slot}; New[T] is the
//     intercepted construction path. There is no reserved field name on
//     user types. T is always the named element type; pointer type
//     arguments are rejected with ErrPointerType, while reflect-level
//     introspection accepts either shape.
//
//   - Slot: each converted type owns exactly one slot. It starts empty,
//     is filled by the first successful construction, and is never
//     cleared afterwards (re-converting the type replaces the record,
//     which is the one way to reset a slot).
//
//   - Thread safety: with Options.ThreadSafe the slot protocol uses
//     double-checked locking. The occupied case is observed from an
//     atomic load without the lock; the empty case re-checks under a
//     per-type mutex before the initializer runs, so exactly one caller
//     constructs and nobody observes a partially initialized instance.
//     The initializer runs inside the critical section; keep it fast.
//     Without ThreadSafe no lock is taken and concurrent first
//     construction is the caller's problem.
//
//   - Hierarchy: "subclass" means struct embedding. A type that embeds a
//     converted singleton has that singleton as its nearest converted
//     ancestor (breadth-first over anonymous fields, shallowest wins).
//     Constructing such a type fails with ErrSubclassingNotAllowed when
//     the ancestor forbids subtyping, and with ErrSubclassNotSingleton
//     when the subtype was never converted itself. A subtype that was
//     independently converted gets its own slot, distinct from the
//     ancestor's.
//
//   - Validation elision: Options.SkipValidation drops both hierarchy
//     checks for performance-sensitive builds. Construction of an
//     unconverted subtype then proceeds, takes over the ancestor's slot
//     and forfeits uniqueness; a later typed construction of the ancestor
//     reports ErrForeignInstance. Never treat the absence of an error as
//     proof of a valid hierarchy while this is set.
//
//   - Metrics: Options.Metrics receives Construct/Reuse/Reassign/
//     ValidationFailure signals. NoopMetrics is the default; a Prometheus
//     adapter lives in metrics/prom.
//
// Basic usage
//
//	type Config struct{ DSN string }
//
//	_ = single.Register(single.Options[Config]{
//	    Initializer: func(c *Config, args ...any) error {
//	        c.DSN = args[0].(string)
//	        return nil
//	    },
//	})
//
//	a, _ := single.New[Config]("postgres://prod")
//	b, _ := single.New[Config]("postgres://ignored")
//	// a == b, and b.DSN is still "postgres://prod"
//
// Thread-safe construction
//
//	_ = single.Register(single.Options[Pool]{ThreadSafe: true, Initializer: dial})
//	// N concurrent New[Pool] calls run dial exactly once; all N callers
//	// receive the same *Pool.
//
// Reassignment
//
//	_ = single.Register(single.Options[Level]{
//	    AllowReassignment: true,
//	    Initializer: func(l *Level, args ...any) error { l.V = args[0].(int); return nil },
//	})
//	x, _ := single.New[Level](1)
//	y, _ := single.New[Level](2)
//	// x == y and x.V == 2: same instance, state re-initialized in place.
//
// Subtyping
//
//	type Base struct{ ... }   // Register with AllowSubclass: true
//	type Derived struct{ Base } // must itself be Registered before New[Derived]
//
// Introspection
//
//	single.IsSingleton[Config]() // true after Register, false for a type
//	                             // that only embeds a singleton
//
// All exported functions and methods are safe for concurrent use. The
// introspection surface (IsSingleton, Lookup, Entries, MarkerOf) is pure:
// it never constructs, never mutates a slot and never takes the per-type
// lock.
package single
