package prom

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/IvanBrykalov/singleton/single"
)

// Adapter implements single.Metrics and exports Prometheus counters.
// Safe for concurrent use; all Prometheus metric types are goroutine-safe.
type Adapter struct {
	constructs prometheus.Counter
	reuses     prometheus.Counter
	reassigns  prometheus.Counter
	failures   *prometheus.CounterVec
}

// New constructs a Prometheus metrics adapter.
//   - reg:          registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:      Prometheus namespace and subsystem
//   - constLabels:  static labels applied to all metrics (may be nil)
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	a := &Adapter{
		constructs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "constructions_total",
			Help:        "First constructions that filled an instance slot",
			ConstLabels: constLabels,
		}),
		reuses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "reuses_total",
			Help:        "Construction calls served from an occupied slot unchanged",
			ConstLabels: constLabels,
		}),
		reassigns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "reassignments_total",
			Help:        "In-place re-initializations of an occupied slot",
			ConstLabels: constLabels,
		}),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   sub,
				Name:        "validation_failures_total",
				Help:        "Hierarchy validation rejections by reason",
				ConstLabels: constLabels,
			},
			[]string{"reason"},
		),
	}
	reg.MustRegister(a.constructs, a.reuses, a.reassigns, a.failures)
	return a
}

// Construct increments the first-construction counter.
func (a *Adapter) Construct() { a.constructs.Inc() }

// Reuse increments the occupied-slot reuse counter.
func (a *Adapter) Reuse() { a.reuses.Inc() }

// Reassign increments the in-place re-initialization counter.
func (a *Adapter) Reassign() { a.reassigns.Inc() }

// ValidationFailure increments the rejection counter with a reason label.
func (a *Adapter) ValidationFailure(r single.FailureReason) {
	a.failures.WithLabelValues(reason(r)).Inc()
}

// reason maps FailureReason to a stable label value.
func reason(r single.FailureReason) string {
	switch r {
	case single.FailureNotSingleton:
		return "not_singleton"
	default:
		return "subclassing"
	}
}

// Compile-time check: ensure Adapter implements single.Metrics.
var _ single.Metrics = (*Adapter)(nil)
