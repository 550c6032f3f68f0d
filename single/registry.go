package single

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/IvanBrykalov/singleton/internal/typename"
)

var (
	// ErrUnnamedType is returned when an unnamed type (anonymous struct,
	// instantiation without a name) is passed to Register.
	ErrUnnamedType = errors.New("single: singleton type must be named")
	// ErrPointerType is returned when a pointer type is passed to Register
	// or New. Records live on the element type; instances are pointers to
	// it already.
	ErrPointerType = errors.New("single: use the element type, not a pointer to it")
)

// Registry maps type identities to their singleton records: configuration,
// marker and instance slot. A process-wide Default registry backs the
// package-level functions; independent registries are mainly useful for
// tests that must not share state.
//
// All methods are safe for concurrent use by multiple goroutines.
type Registry struct {
	// mu guards write-side consistency and the counter.
	mu sync.Mutex
	// m maps reflect.Type to *record.
	m sync.Map
	// count tracks the number of converted types.
	count int
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// record holds everything the registry knows about one converted type.
// Configuration, marker and the construction hooks are write-once at
// conversion time; only the slot mutates afterwards, and only on the
// construction path.
type record struct {
	// name is the stable "pkg.Type" display name of the converted type.
	name string
	// marker records the most-derived type in the embedding chain that was
	// itself explicitly converted. For a directly converted type it equals
	// name; a type that merely embeds a singleton inherits the ancestor's
	// marker, which is what the validator flags.
	marker string
	// cfg is the immutable conversion configuration.
	cfg Config
	// alloc returns a fresh zero *T.
	alloc func() any
	// init runs the user initializer; nil when none was supplied.
	init func(inst any, args []any) error
	// metrics receives construction signals; never nil.
	metrics Metrics

	// mu is the per-type lock used when cfg.ThreadSafe is set.
	mu sync.Mutex
	// slot holds the shared instance once the first construction succeeds.
	// It stores the instance as *any so that a foreign instance written by
	// a validation-disabled subtype does not trip atomic type checks.
	slot atomic.Pointer[any]
}

// occupied reports whether the slot holds an instance. Read-only.
func (rec *record) occupied() bool {
	return rec.slot.Load() != nil
}

// Info is the read-only view of one converted type, as returned by
// Lookup and Entries.
type Info struct {
	// Type is the converted reflect.Type.
	Type reflect.Type
	// Name is the stable display name of the type.
	Name string
	// Marker is the recorded most-derived converted type name.
	Marker string
	// Config is the conversion configuration.
	Config Config
	// Occupied reports whether the instance slot currently holds
	// an instance.
	Occupied bool
}

// register installs rec under t, replacing any previous record for t.
// Replacing resets t's slot and marker and affects no other type.
func (r *Registry) register(t reflect.Type, rec *record) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.m.Load(t); !ok {
		r.count++
	}
	r.m.Store(t, rec)
}

// load returns the record for t if present.
func (r *Registry) load(t reflect.Type) (*record, bool) {
	if v, ok := r.m.Load(t); ok {
		return v.(*record), true
	}
	return nil, false
}

// nearestAncestor returns the closest embedded ancestor of t that was
// converted, walking anonymous fields breadth-first so the shallowest
// embedding wins. Looked up fresh on every call: ancestors may be
// converted (or re-converted) after t is first seen.
func (r *Registry) nearestAncestor(t reflect.Type) (reflect.Type, *record) {
	for _, a := range typename.EmbeddedAncestors(t) {
		if rec, ok := r.load(a); ok {
			return a, rec
		}
	}
	return nil, nil
}

// IsSingletonType reports whether t is a correctly converted singleton:
// it carries a record and the record's marker equals its own name.
// A type that merely embeds a singleton has no record and returns false.
// Pure read: no lock is taken and no construction is triggered.
func (r *Registry) IsSingletonType(t reflect.Type) bool {
	t = typename.Indirect(t)
	if t == nil {
		return false
	}
	rec, ok := r.load(t)
	return ok && rec.marker == rec.name
}

// MarkerOf returns the marker visible on t: its own when t was converted,
// otherwise the marker inherited from its nearest converted ancestor.
// The second result is false when neither exists.
func (r *Registry) MarkerOf(t reflect.Type) (string, bool) {
	t = typename.Indirect(t)
	if t == nil {
		return "", false
	}
	if rec, ok := r.load(t); ok {
		return rec.marker, true
	}
	if _, arec := r.nearestAncestor(t); arec != nil {
		return arec.marker, true
	}
	return "", false
}

// Lookup returns the Info for t if it was converted.
func (r *Registry) Lookup(t reflect.Type) (Info, bool) {
	t = typename.Indirect(t)
	if t == nil {
		return Info{}, false
	}
	rec, ok := r.load(t)
	if !ok {
		return Info{}, false
	}
	return Info{
		Type:     t,
		Name:     rec.name,
		Marker:   rec.marker,
		Config:   rec.cfg,
		Occupied: rec.occupied(),
	}, true
}

// Entries returns a snapshot for diagnostics (order is unspecified).
func (r *Registry) Entries() []Info {
	entries := make([]Info, 0, r.Count())
	r.m.Range(func(key, value any) bool {
		rec := value.(*record)
		entries = append(entries, Info{
			Type:     key.(reflect.Type),
			Name:     rec.name,
			Marker:   rec.marker,
			Config:   rec.cfg,
			Occupied: rec.occupied(),
		})
		return true
	})
	return entries
}

// Count returns the number of converted types.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset removes every converted type, dropping all instance slots.
// Mainly useful in tests.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Delete in place: load reads the map without holding mu, so the
	// sync.Map header itself must never be replaced.
	r.m.Range(func(k, _ any) bool {
		r.m.Delete(k)
		return true
	})
	r.count = 0
}
