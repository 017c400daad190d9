package lrumap

import "iter"

// RemovalListener observes entries leaving the map. The automatic flag is
// true for capacity-driven evictions and false for explicit Remove calls.
// Listeners are invoked synchronously after the entry has been unlinked
// from both internal structures.
type RemovalListener[K comparable, V any] func(key K, value V, automatic bool)

// ListenerID identifies a registered listener for later removal.
type ListenerID uint64

// Map is a bounded key/value map with strict LRU eviction.
// It is designed for single-owner access: every method, including Get,
// may structurally mutate the map, so sharing across goroutines requires
// external synchronization (see the syncmap package).
//
// Typical complexity is amortized O(1) per operation:
// a map lookup plus constant-time list adjustments.
type Map[K comparable, V any] interface {
	// Get returns the value for k and a presence flag.
	// On hit the entry is refreshed to most-recently-used.
	Get(k K) (V, bool)

	// Put inserts or updates k→v, refreshing it to most-recently-used.
	// On update it returns the previous value and true. For a new key it
	// first evicts least-recently-used entries until the insert fits
	// within MaxCapacity, then returns the zero value and false.
	Put(k K, v V) (V, bool)

	// PutAll inserts every mapping of m via Put. The relative recency
	// order among the inserted batch is unspecified.
	PutAll(m map[K]V)

	// Remove deletes k regardless of capacity and returns the previous
	// value and a presence flag. Listeners are notified with
	// automatic=false.
	Remove(k K) (V, bool)

	// ContainsKey reports whether k is present. No refresh is performed.
	ContainsKey(k K) bool

	// ContainsValue reports whether some entry holds v, compared with
	// Options.ValueEqual. No refresh is performed. O(n).
	ContainsValue(v V) bool

	// Len returns the number of live entries.
	Len() int

	// IsEmpty reports whether the map holds no entries.
	IsEmpty() bool

	// Clear drops all entries. Removal listeners are NOT invoked; bulk
	// clearing is not "removal" in the notification sense.
	Clear()

	// SetMaxCapacity changes the eviction bound and returns the previous
	// one. If the new bound is below the current size, tail entries are
	// evicted (automatic=true) until the map fits. Panics if n <= 0.
	SetMaxCapacity(n int) int

	// MaxCapacity returns the current eviction bound.
	MaxCapacity() int

	// InitialCapacity returns the index sizing hint the map was built with.
	InitialCapacity() int

	// LoadFactor returns the index growth threshold the map was built with.
	LoadFactor() float64

	// Keys walks live keys from most- to least-recently-used.
	// The walk is lazy and performs no refresh. The map must not be
	// mutated while a walk is in progress.
	Keys() iter.Seq[K]

	// Entries walks live key/value pairs from most- to least-recently-used
	// under the same rules as Keys.
	Entries() iter.Seq2[K, V]

	// AddListener registers fn for removal notification. If automaticOnly
	// is true, fn is invoked only for capacity-driven evictions, never for
	// explicit Remove calls.
	AddListener(fn RemovalListener[K, V], automaticOnly bool) ListenerID

	// RemoveListener unregisters a listener and reports whether it was
	// present.
	RemoveListener(id ListenerID) bool

	// Clone returns an independent copy with the same contents,
	// configuration and recency order. Listeners and metrics sinks are not
	// carried over.
	Clone() Map[K, V]
}
