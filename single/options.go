package single

// FailureReason explains why hierarchy validation rejected a construction.
type FailureReason int

const (
	// FailureSubclassing — the nearest converted ancestor forbids subtyping.
	FailureSubclassing FailureReason = iota
	// FailureNotSingleton — the subtype was never converted itself.
	FailureNotSingleton
)

// Metrics exposes construction-level observability hooks.
// A NoopMetrics implementation is provided and used by default.
type Metrics interface {
	// Construct is called once per successful first construction.
	Construct()
	// Reuse is called when an occupied slot is returned unchanged.
	Reuse()
	// Reassign is called when an occupied slot is re-initialized in place.
	Reassign()
	// ValidationFailure is called when the hierarchy validator rejects
	// a construction attempt.
	ValidationFailure(reason FailureReason)
}

// Options configures how a type is converted into a singleton.
// Zero values are the defaults: single-threaded construction, no subtyping,
// no reassignment, validation enabled.
type Options[T any] struct {
	// ThreadSafe makes construction safe for concurrent callers using
	// double-checked locking: an occupied slot is observed without the
	// lock; an empty one is re-checked under a per-type lock before the
	// initializer runs. Exactly one caller constructs; the rest observe
	// the fully initialized instance.
	//
	// When false no lock is taken, and concurrent first construction is
	// a caller responsibility.
	ThreadSafe bool

	// AllowSubclass permits types embedding T to be converted and
	// constructed as singletons of their own. When false, constructing
	// any type that embeds T fails with ErrSubclassingNotAllowed.
	AllowSubclass bool

	// AllowReassignment re-runs the Initializer on the existing instance
	// when construction is attempted on an occupied slot. The instance
	// reference never changes; only its state does. When false, extra
	// construction calls return the instance untouched.
	AllowReassignment bool

	// SkipValidation disables the hierarchy checks for types that embed T.
	// Construction of such types then proceeds as if validation succeeded,
	// which can silently produce non-unique subtype instances. Intended
	// for performance-sensitive builds only; never rely on the absence of
	// an error while this is set.
	SkipValidation bool

	// Initializer runs on the fresh instance at first construction with
	// the arguments passed to New, and again on reassignment when
	// AllowReassignment is set. Nil leaves the instance at its zero value.
	// An error from it propagates to the caller and leaves the slot in
	// its prior state (empty on first construction, occupied otherwise).
	Initializer func(inst *T, args ...any) error

	// Metrics receives Construct/Reuse/Reassign/ValidationFailure signals.
	// Nil => NoopMetrics.
	Metrics Metrics
}

// Config is the immutable per-type configuration recorded at conversion time.
// It is the read-only view of Options exposed through Info.
type Config struct {
	ThreadSafe        bool
	AllowSubclass     bool
	AllowReassignment bool
	SkipValidation    bool
}
