package lrumap

import (
	"math"

	"github.com/HenkesKaiser/lrumap/internal/util"
)

// lruMap composes the index map and the recency queue behind the Map
// interface. The two structures always agree on membership once a public
// operation returns: every entry in the queue is reachable from the index
// under its key, and Len reads the shared count.
type lruMap[K comparable, V any] struct {
	index     map[K]*entry[K, V]
	queue     recencyQueue[K, V]
	listeners listenerTable[K, V]

	maxCap     int
	initialCap int
	loadFactor float64
	valueEq    func(a, b V) bool
	metrics    Metrics
}

// New constructs an empty Map with the provided Options.
// It panics if MaxCapacity is not positive, or if InitialCapacity or
// LoadFactor is negative; zero means "use the default". See Options.
func New[K comparable, V any](opt Options[K, V]) Map[K, V] {
	opt = opt.withDefaults()
	return &lruMap[K, V]{
		index:      make(map[K]*entry[K, V], indexHint(opt.InitialCapacity, opt.LoadFactor)),
		maxCap:     opt.MaxCapacity,
		initialCap: opt.InitialCapacity,
		loadFactor: opt.LoadFactor,
		valueEq:    opt.ValueEqual,
		metrics:    opt.Metrics,
	}
}

// indexHint sizes the index's backing table the way a load-factored hash
// table would: enough buckets to hold initialCapacity entries before
// growing, rounded up to a power of two.
func indexHint(initialCapacity int, loadFactor float64) int {
	buckets := math.Ceil(float64(initialCapacity) / loadFactor)
	return int(util.NextPow2(uint64(buckets)))
}

// ---- Map[K,V] implementation ----

// Get returns the value for k and refreshes the entry to MRU on hit.
func (m *lruMap[K, V]) Get(k K) (V, bool) {
	e, ok := m.index[k]
	if !ok {
		m.metrics.Miss()
		var zero V
		return zero, false
	}
	m.queue.moveToFront(e)
	m.metrics.Hit()
	return e.val, true
}

// Put inserts or updates k→v. On update the old value is replaced in place
// and the entry refreshed; the later write wins both value and position.
// For a new key, room is made first so the insert never breaches the bound.
func (m *lruMap[K, V]) Put(k K, v V) (V, bool) {
	if e, ok := m.index[k]; ok {
		old := e.val
		e.val = v
		m.queue.moveToFront(e)
		return old, true
	}

	// New key: evict down to maxCap-1 so the new entry fits, recycling the
	// most recently evicted entry's storage when one is available.
	e := m.evictTo(m.maxCap - 1)
	if e == nil {
		e = &entry[K, V]{key: k, val: v}
	} else {
		e.rebind(k, v)
	}
	m.queue.pushFront(e)
	m.index[k] = e
	m.metrics.Size(m.queue.n)

	var zero V
	return zero, false
}

// PutAll inserts every mapping of src via Put.
func (m *lruMap[K, V]) PutAll(src map[K]V) {
	for k, v := range src {
		m.Put(k, v)
	}
}

// Remove deletes k unconditionally and notifies listeners with
// automatic=false. The entry is fully unlinked before any listener runs.
func (m *lruMap[K, V]) Remove(k K) (V, bool) {
	e, ok := m.index[k]
	if !ok {
		var zero V
		return zero, false
	}
	delete(m.index, k)
	m.queue.remove(e)
	m.metrics.Removal(false)
	m.metrics.Size(m.queue.n)

	v := e.val
	m.listeners.notify(k, v, false)
	return v, true
}

// ContainsKey reports membership without refreshing the entry.
func (m *lruMap[K, V]) ContainsKey(k K) bool {
	_, ok := m.index[k]
	return ok
}

// ContainsValue scans the queue for a value equal to v under the
// configured predicate. No entry is refreshed.
func (m *lruMap[K, V]) ContainsValue(v V) bool {
	for e := m.queue.head; e != nil; e = e.next {
		if m.valueEq(e.val, v) {
			return true
		}
	}
	return false
}

// Len returns the number of live entries.
func (m *lruMap[K, V]) Len() int { return m.queue.n }

// IsEmpty reports whether the map holds no entries.
func (m *lruMap[K, V]) IsEmpty() bool { return m.queue.n == 0 }

// Clear drops all entries without invoking removal listeners.
func (m *lruMap[K, V]) Clear() {
	clear(m.index)
	m.queue.clear()
	m.metrics.Size(0)
}

// SetMaxCapacity updates the bound, evicting tail entries as automatic
// removals if the map no longer fits, and returns the previous bound.
// Panics if n <= 0 before any state changes.
func (m *lruMap[K, V]) SetMaxCapacity(n int) int {
	if n <= 0 {
		panic("lrumap: SetMaxCapacity requires n > 0")
	}
	old := m.maxCap
	m.evictTo(n)
	m.maxCap = n
	m.metrics.Size(m.queue.n)
	return old
}

// MaxCapacity returns the current eviction bound.
func (m *lruMap[K, V]) MaxCapacity() int { return m.maxCap }

// InitialCapacity returns the configured index sizing hint.
func (m *lruMap[K, V]) InitialCapacity() int { return m.initialCap }

// LoadFactor returns the configured index growth threshold.
func (m *lruMap[K, V]) LoadFactor() float64 { return m.loadFactor }

// Clone copies contents, configuration and recency order into a fresh map.
// Listeners and metrics sinks deliberately stay behind: a clone shares the
// data, not the observers.
func (m *lruMap[K, V]) Clone() Map[K, V] {
	dst := New[K, V](Options[K, V]{
		MaxCapacity:     m.maxCap,
		InitialCapacity: m.initialCap,
		LoadFactor:      m.loadFactor,
		ValueEqual:      m.valueEq,
	}).(*lruMap[K, V])

	// Walk LRU→MRU pushing each copy to the front, so the clone's queue
	// ends up in exactly the source order.
	for e := m.queue.tail; e != nil; e = e.prev {
		ce := &entry[K, V]{key: e.key, val: e.val}
		dst.queue.pushFront(ce)
		dst.index[ce.key] = ce
	}
	return dst
}

// ---- internals ----

// evictTo removes tail entries until at most target remain, firing each as
// an automatic removal, and returns the last removed entry (detached, safe
// to recycle) or nil if nothing was evicted. Listeners run after the entry
// has left both structures, so a callback observing or re-entering the map
// sees consistent state; the loop re-checks the live count afterwards.
func (m *lruMap[K, V]) evictTo(target int) *entry[K, V] {
	var last *entry[K, V]
	for m.queue.n > target {
		e := m.queue.removeTail()
		if e == nil {
			break
		}
		delete(m.index, e.key)
		m.metrics.Removal(true)
		m.listeners.notify(e.key, e.val, true)
		last = e
	}
	return last
}

// AddListener registers fn; see RemovalListener for the contract.
func (m *lruMap[K, V]) AddListener(fn RemovalListener[K, V], automaticOnly bool) ListenerID {
	return m.listeners.add(fn, automaticOnly)
}

// RemoveListener unregisters a listener and reports whether it was present.
func (m *lruMap[K, V]) RemoveListener(id ListenerID) bool {
	return m.listeners.remove(id)
}
