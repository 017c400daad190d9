// Package lrumap provides a generic, bounded key/value map with a strict
// least-recently-used eviction policy and pluggable removal notification.
//
// Design
//
//   - Storage: a map[K]*entry gives O(1) lookups, and an intrusive
//     MRU↔LRU doubly linked list (the recency queue) maintains use order.
//     Both structures reference the same entry, so reordering never
//     touches the map. All operations are amortized O(1).
//
//   - Eviction: when a new key is inserted into a full map, entries are
//     dropped from the tail of the recency queue (globally least recently
//     touched) until the new entry fits. "Touched" means created, read via
//     Get, or overwritten via Put. The evicted entry's storage is reused
//     for the new key to avoid an allocation.
//
//   - Refresh-on-read: Get moves the entry to the most-recently-used
//     position. Even a read is a structural mutation, which is why the map
//     is NOT safe for unsynchronized sharing. ContainsKey, ContainsValue
//     and the Keys/Entries iterators deliberately perform no refresh.
//
//   - Listeners: observers registered with AddListener are invoked, in
//     registration order, whenever an entry leaves the map. Capacity-driven
//     evictions carry automatic=true; explicit Remove calls carry
//     automatic=false, and listeners registered with automaticOnly never
//     see those. Clear invokes no listeners at all. Listeners run strictly
//     after the entry has left both internal structures, so a callback may
//     safely re-enter the map.
//
//   - Metrics: Options.Metrics receives Hit/Miss/Removal/Size signals.
//     NoopMetrics is the default; the metrics/prom package exports a
//     Prometheus adapter.
//
// Concurrency
//
// The map assumes a single logical owner. No internal locking is performed
// on the read/write paths; if the map is shared across goroutines, wrap it
// (the syncmap package provides such a wrapper) or serialize access
// externally. Listener registration and dispatch are internally serialized,
// so managing listeners concurrently is safe even when map access is not.
//
// Basic usage
//
//	m := lrumap.New[string, int](lrumap.Options[string, int]{MaxCapacity: 1000})
//	m.Put("a", 1)
//	if v, ok := m.Get("a"); ok {
//	    _ = v
//	}
//	m.Remove("a")
//
// Watching evictions
//
//	m.AddListener(func(k string, v int, automatic bool) {
//	    if automatic {
//	        log.Printf("evicted %s=%d", k, v)
//	    }
//	}, false)
//
// Walking in recency order (most recently used first)
//
//	for k, v := range m.Entries() {
//	    fmt.Println(k, v)
//	}
package lrumap
