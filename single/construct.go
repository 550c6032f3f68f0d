package single

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/IvanBrykalov/singleton/internal/typename"
)

var (
	// ErrNotRegistered is returned when constructing a type that was never
	// converted and embeds no converted ancestor.
	ErrNotRegistered = errors.New("single: type is not a registered singleton")
	// ErrSubclassingNotAllowed is returned when constructing a type that
	// embeds a singleton whose configuration forbids subtyping.
	ErrSubclassingNotAllowed = errors.New("single: singleton type cannot be subtyped")
	// ErrSubclassNotSingleton is returned when constructing a type that
	// inherited singleton machinery through embedding without being
	// converted itself.
	ErrSubclassNotSingleton = errors.New("single: subtype must itself be a registered singleton")
	// ErrForeignInstance is returned when a slot holds an instance that is
	// not of the requested type. This only happens after a
	// validation-disabled subtype construction took over the slot.
	ErrForeignInstance = errors.New("single: slot holds an instance of a different type")
)

// construct is the interception point behind New: it resolves t's record,
// runs the hierarchy validator for embedded subtypes, and drives the slot
// protocol. Every successful call returns the single live instance for the
// resolved slot.
func (r *Registry) construct(t reflect.Type, args []any) (any, error) {
	t = typename.Indirect(t)
	if t == nil {
		return nil, ErrNotRegistered
	}

	if rec, ok := r.load(t); ok {
		// Late-bound check: a converted subtype still honors the
		// AllowSubclass setting of its nearest converted ancestor.
		if _, arec := r.nearestAncestor(t); arec != nil && !arec.cfg.SkipValidation && !arec.cfg.AllowSubclass {
			arec.metrics.ValidationFailure(FailureSubclassing)
			return nil, fmt.Errorf("%s subtyped by %s: %w", arec.name, rec.name, ErrSubclassingNotAllowed)
		}
		return rec.construct(args)
	}

	// t was never converted; it may still embed a converted ancestor.
	_, arec := r.nearestAncestor(t)
	if arec == nil {
		return nil, fmt.Errorf("%s: %w", typename.Of(t), ErrNotRegistered)
	}

	if !arec.cfg.SkipValidation {
		if !arec.cfg.AllowSubclass {
			arec.metrics.ValidationFailure(FailureSubclassing)
			return nil, fmt.Errorf("%s subtyped by %s: %w", arec.name, typename.Of(t), ErrSubclassingNotAllowed)
		}
		// The inherited marker names the ancestor, not t: t was never
		// converted, so "is this a singleton" is ambiguous for it.
		arec.metrics.ValidationFailure(FailureNotSingleton)
		return nil, fmt.Errorf("%s embeds singleton %s: %w", typename.Of(t), arec.name, ErrSubclassNotSingleton)
	}

	// Checks disabled: proceed as if validation succeeded. The subtype
	// takes over the ancestor's slot, so uniqueness for that slot is lost
	// and a later typed construction of the ancestor returns
	// ErrForeignInstance. This is the documented trade-off of
	// SkipValidation.
	return arec.adopt(t)
}

// construct drives the slot protocol for the record's own type.
func (rec *record) construct(args []any) (any, error) {
	// Fast path: an occupied slot is observable without the lock.
	if p := rec.slot.Load(); p != nil {
		return rec.existingUnlocked(*p, args)
	}

	if !rec.cfg.ThreadSafe {
		return rec.create(args)
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	// Double-checked: another goroutine may have constructed between the
	// fast-path load and the lock acquisition.
	if p := rec.slot.Load(); p != nil {
		return rec.existingLocked(*p, args)
	}
	return rec.create(args)
}

// create runs the initializer on a fresh instance and publishes it.
// The slot is written only after the initializer succeeds, so a failed
// first construction leaves the slot empty and a retry is safe.
func (rec *record) create(args []any) (any, error) {
	inst := rec.alloc()
	if rec.init != nil {
		if err := rec.init(inst, args); err != nil {
			return nil, err
		}
	}
	rec.slot.Store(&inst)
	rec.metrics.Construct()
	return inst, nil
}

// existingUnlocked handles an occupied slot reached from the unlocked
// fast path. Reassignment takes the lock itself when ThreadSafe is set.
func (rec *record) existingUnlocked(inst any, args []any) (any, error) {
	if !rec.cfg.AllowReassignment {
		rec.metrics.Reuse()
		return inst, nil
	}
	if rec.cfg.ThreadSafe {
		rec.mu.Lock()
		defer rec.mu.Unlock()
	}
	return rec.reassign(inst, args)
}

// existingLocked handles an occupied slot observed while already holding
// the record lock.
func (rec *record) existingLocked(inst any, args []any) (any, error) {
	if !rec.cfg.AllowReassignment {
		rec.metrics.Reuse()
		return inst, nil
	}
	return rec.reassign(inst, args)
}

// reassign re-runs the initializer on the live instance. Identity never
// changes; only state does. An initializer error propagates and the slot
// keeps referencing the same instance.
func (rec *record) reassign(inst any, args []any) (any, error) {
	if rec.init != nil {
		if err := rec.init(inst, args); err != nil {
			return nil, err
		}
	}
	rec.metrics.Reassign()
	return inst, nil
}

// adopt stores a zero instance of the foreign subtype t into the record's
// slot, replacing whatever was there. Only reachable when SkipValidation
// is set on the ancestor. No initializer runs: the ancestor's initializer
// is typed to the ancestor, not to t.
func (rec *record) adopt(t reflect.Type) (any, error) {
	inst := reflect.New(t).Interface()
	if rec.cfg.ThreadSafe {
		rec.mu.Lock()
		defer rec.mu.Unlock()
	}
	rec.slot.Store(&inst)
	rec.metrics.Construct()
	return inst, nil
}
