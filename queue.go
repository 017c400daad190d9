package lrumap

// recencyQueue is the ordering half of the map: an intrusive doubly linked
// list of all live entries from most-recently-used (head) to
// least-recently-used (tail), with a live count.
//
// Invariant: head == nil iff tail == nil iff n == 0; walking head→tail via
// next visits exactly n entries, as does tail→head via prev.
type recencyQueue[K comparable, V any] struct {
	head *entry[K, V] // MRU
	tail *entry[K, V] // LRU
	n    int
}

// pushFront inserts a detached entry at MRU in O(1).
func (q *recencyQueue[K, V]) pushFront(e *entry[K, V]) {
	e.prev = nil
	e.next = q.head
	if q.head != nil {
		q.head.prev = e
	}
	q.head = e
	if q.tail == nil {
		q.tail = e
	}
	q.n++
}

// moveToFront promotes a resident entry to MRU in O(1) without allocating.
func (q *recencyQueue[K, V]) moveToFront(e *entry[K, V]) {
	if e == q.head {
		return
	}
	// detach
	if e.prev != nil {
		e.prev.next = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	}
	if q.tail == e {
		q.tail = e.prev
	}
	// insert at head
	e.prev = nil
	e.next = q.head
	if q.head != nil {
		q.head.prev = e
	}
	q.head = e
	if q.tail == nil {
		q.tail = e
	}
}

// remove unlinks e from wherever it sits in O(1). Both links are nilled so
// a dropped entry cannot pin its former neighbors. Removing the sole
// remaining entry empties both endpoints.
func (q *recencyQueue[K, V]) remove(e *entry[K, V]) {
	if e.prev != nil {
		e.prev.next = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	}
	if q.head == e {
		q.head = e.next
	}
	if q.tail == e {
		q.tail = e.prev
	}
	e.prev, e.next = nil, nil
	q.n--
}

// removeTail unlinks and returns the LRU entry, or nil if the queue is
// empty. This is the eviction primitive.
func (q *recencyQueue[K, V]) removeTail() *entry[K, V] {
	e := q.tail
	if e != nil {
		q.remove(e)
	}
	return e
}

// clear drops every entry, severing links as it goes so released entries
// do not keep each other reachable.
func (q *recencyQueue[K, V]) clear() {
	for e := q.head; e != nil; {
		next := e.next
		e.prev, e.next = nil, nil
		e = next
	}
	q.head, q.tail = nil, nil
	q.n = 0
}
