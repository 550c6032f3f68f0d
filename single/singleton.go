package single

import (
	"fmt"
	"reflect"

	"github.com/IvanBrykalov/singleton/internal/typename"
)

// defaultRegistry backs the package-level Register/New/IsSingleton.
var defaultRegistry = NewRegistry()

// Default returns the process-wide registry used by the package-level
// functions.
func Default() *Registry {
	return defaultRegistry
}

// typeFor returns the identity of T, pointer-normalized.
func typeFor[T any]() reflect.Type {
	return typename.Indirect(reflect.TypeOf((*T)(nil)).Elem())
}

// elemFor returns the identity of T for the construction surface, which
// only accepts element types: records allocate *T, so a pointer T would
// desync the registry key from the stored instance type.
func elemFor[T any]() (reflect.Type, error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() == reflect.Ptr {
		return nil, fmt.Errorf("%s: %w", t.String(), ErrPointerType)
	}
	return t, nil
}

// RegisterIn converts T into a singleton in r. It records the
// configuration, sets T's marker to its own name and leaves the instance
// slot empty; the first NewIn call fills it. Converting an
// already-converted T replaces its record, which resets T's own slot and
// marker and affects no other type.
//
// T must be a named, non-pointer type. Registration itself never fails
// for hierarchy reasons; those are checked at construction time, when the
// whole chain is known.
func RegisterIn[T any](r *Registry, opts Options[T]) error {
	t, err := elemFor[T]()
	if err != nil {
		return err
	}
	name := typename.Of(t)
	if name == "" {
		return fmt.Errorf("%s: %w", t.String(), ErrUnnamedType)
	}

	m := opts.Metrics
	if m == nil {
		m = NoopMetrics{}
	}

	rec := &record{
		name:   name,
		marker: name,
		cfg: Config{
			ThreadSafe:        opts.ThreadSafe,
			AllowSubclass:     opts.AllowSubclass,
			AllowReassignment: opts.AllowReassignment,
			SkipValidation:    opts.SkipValidation,
		},
		alloc:   func() any { return new(T) },
		metrics: m,
	}
	if opts.Initializer != nil {
		init := opts.Initializer
		rec.init = func(inst any, args []any) error {
			return init(inst.(*T), args...)
		}
	}

	r.register(t, rec)
	return nil
}

// Register converts T into a singleton in the default registry.
// See RegisterIn.
func Register[T any](opts Options[T]) error {
	return RegisterIn(defaultRegistry, opts)
}

// NewIn is the construction entry point: it returns the shared instance
// of T from r, constructing and initializing it on the first call with
// the given args. Later calls return the same reference; whether their
// args re-run the initializer is governed by AllowReassignment.
//
// Constructing a type that embeds a converted singleton without being
// converted itself fails with ErrSubclassingNotAllowed or
// ErrSubclassNotSingleton, unless validation was skipped at conversion.
func NewIn[T any](r *Registry, args ...any) (*T, error) {
	t, err := elemFor[T]()
	if err != nil {
		return nil, err
	}
	v, err := r.construct(t, args)
	if err != nil {
		return nil, err
	}
	inst, ok := v.(*T)
	if !ok {
		return nil, fmt.Errorf("%s slot holds %T: %w", typename.Of(t), v, ErrForeignInstance)
	}
	return inst, nil
}

// New returns the shared instance of T from the default registry.
// See NewIn.
func New[T any](args ...any) (*T, error) {
	return NewIn[T](defaultRegistry, args...)
}

// IsSingleton reports whether T is a correctly converted singleton in the
// default registry: converted directly, or a subtype that was
// independently converted. A type that merely embeds a singleton returns
// false. Pure read; never constructs and never locks.
func IsSingleton[T any]() bool {
	return defaultRegistry.IsSingletonType(typeFor[T]())
}

// IsSingletonIn reports whether T is a correctly converted singleton in r.
func IsSingletonIn[T any](r *Registry) bool {
	return r.IsSingletonType(typeFor[T]())
}
