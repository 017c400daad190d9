package lrumap

import "iter"

// Keys returns a lazy walk over live keys, most-recently-used first.
// Walking performs no refresh: iteration is a read-only view and never
// changes eviction priority. The map must not be structurally mutated
// while a walk is in progress; to delete during inspection, collect keys
// first and call Remove afterwards.
func (m *lruMap[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for e := m.queue.head; e != nil; e = e.next {
			if !yield(e.key) {
				return
			}
		}
	}
}

// Entries returns a lazy walk over live key/value pairs under the same
// rules as Keys.
func (m *lruMap[K, V]) Entries() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for e := m.queue.head; e != nil; e = e.next {
			if !yield(e.key, e.val) {
				return
			}
		}
	}
}
