package lrumap

// entry is an intrusive element of the recency queue. The index map and
// the queue share the same entry instance, so refreshing an entry never
// requires touching the map.
type entry[K comparable, V any] struct {
	key K
	val V

	// Queue links: head is MRU, tail is LRU. Never owning.
	prev *entry[K, V]
	next *entry[K, V]
}

// rebind repurposes a detached entry for a new mapping. Used to recycle
// the most recently evicted entry on insert instead of allocating.
func (e *entry[K, V]) rebind(k K, v V) {
	e.key = k
	e.val = v
}
