package lrumap

import "sync"

// listenerReg pairs a listener with its registration id and filter.
type listenerReg[K comparable, V any] struct {
	id            ListenerID
	fn            RemovalListener[K, V]
	automaticOnly bool
}

// listenerTable is the removal notifier registry. Registration, removal and
// dispatch snapshots are serialized by mu, so listener management is safe
// even when access to the surrounding map is not. Dispatch itself runs
// outside the lock on a snapshot, which makes mutating the registry from
// inside a callback deterministic: changes take effect from the next
// notification pass.
type listenerTable[K comparable, V any] struct {
	mu     sync.Mutex
	nextID ListenerID
	regs   []listenerReg[K, V]
}

// add registers fn and returns its id. Listeners fire in registration order.
func (t *listenerTable[K, V]) add(fn RemovalListener[K, V], automaticOnly bool) ListenerID {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nextID++
	t.regs = append(t.regs, listenerReg[K, V]{id: t.nextID, fn: fn, automaticOnly: automaticOnly})
	return t.nextID
}

// remove unregisters the listener with the given id, preserving the order
// of the remaining registrations.
func (t *listenerTable[K, V]) remove(id ListenerID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, r := range t.regs {
		if r.id == id {
			t.regs = append(t.regs[:i], t.regs[i+1:]...)
			return true
		}
	}
	return false
}

// snapshot returns the listeners eligible for a removal with the given
// automatic flag, in registration order. Returns nil when nothing would
// fire, keeping the common no-listener path allocation-free.
func (t *listenerTable[K, V]) snapshot(automatic bool) []RemovalListener[K, V] {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.regs) == 0 {
		return nil
	}
	var fns []RemovalListener[K, V]
	for _, r := range t.regs {
		if r.automaticOnly && !automatic {
			continue
		}
		fns = append(fns, r.fn)
	}
	return fns
}

// notify invokes every eligible listener. A panicking listener unwinds
// through the triggering map operation; remaining listeners do not run.
func (t *listenerTable[K, V]) notify(k K, v V, automatic bool) {
	for _, fn := range t.snapshot(automatic) {
		fn(k, v, automatic)
	}
}
