package lrumap

import "reflect"

// Defaults applied by New when the corresponding Options field is zero.
const (
	// DefaultInitialCapacity is the index sizing hint used when
	// Options.InitialCapacity is unset.
	DefaultInitialCapacity = 16

	// DefaultLoadFactor is the index growth threshold used when
	// Options.LoadFactor is unset.
	DefaultLoadFactor = 0.75
)

// Options configures a Map. Zero values (except MaxCapacity) are safe and
// fall back to defaults in New:
//   - InitialCapacity == 0 => DefaultInitialCapacity
//   - LoadFactor == 0      => DefaultLoadFactor
//   - nil ValueEqual       => reflect.DeepEqual
//   - nil Metrics          => NoopMetrics
//
// MaxCapacity is mandatory and must be positive; negative InitialCapacity
// or LoadFactor is a precondition violation. New panics on either.
type Options[K comparable, V any] struct {
	// MaxCapacity is the eviction bound: the maximum number of live
	// entries. Must be > 0.
	MaxCapacity int

	// InitialCapacity hints the size of the index's backing table.
	// It affects allocation only, never eviction behavior.
	InitialCapacity int

	// LoadFactor is the index table growth threshold, kept for sizing the
	// initial table (entries / LoadFactor buckets). It affects allocation
	// only, never eviction behavior.
	LoadFactor float64

	// ValueEqual is the equality predicate used by ContainsValue.
	// nil means reflect.DeepEqual.
	ValueEqual func(a, b V) bool

	// Metrics receives Hit/Miss/Removal/Size signals. nil means
	// NoopMetrics; see metrics/prom for a Prometheus adapter.
	Metrics Metrics
}

// withDefaults validates preconditions and fills unset fields.
// Violations panic before any state is built.
func (o Options[K, V]) withDefaults() Options[K, V] {
	if o.MaxCapacity <= 0 {
		panic("lrumap: MaxCapacity must be > 0")
	}
	switch {
	case o.InitialCapacity < 0:
		panic("lrumap: InitialCapacity must be > 0")
	case o.InitialCapacity == 0:
		o.InitialCapacity = DefaultInitialCapacity
	}
	switch {
	case o.LoadFactor < 0:
		panic("lrumap: LoadFactor must be > 0")
	case o.LoadFactor == 0:
		o.LoadFactor = DefaultLoadFactor
	}
	if o.ValueEqual == nil {
		o.ValueEqual = func(a, b V) bool { return reflect.DeepEqual(a, b) }
	}
	if o.Metrics == nil {
		o.Metrics = NoopMetrics{}
	}
	return o
}
