// Package syncmap wraps an lrumap.Map for shared use across goroutines.
//
// Every lrumap operation, including Get, structurally mutates the map, so
// the wrapper serializes all access behind one mutex rather than an
// RWMutex. It also adds GetOrLoad, which fills misses through a
// caller-supplied Loader and coalesces concurrent loads for the same key.
package syncmap

import (
	"context"
	"errors"
	"sync"

	"github.com/HenkesKaiser/lrumap"
	"github.com/HenkesKaiser/lrumap/internal/singleflight"
)

// ErrNoLoader is returned by GetOrLoad when no Loader was configured.
var ErrNoLoader = errors.New("syncmap: no Loader provided")

// Loader fetches the value for a missing key.
type Loader[K comparable, V any] func(ctx context.Context, k K) (V, error)

// Options configures the wrapper.
type Options[K comparable, V any] struct {
	// Loader, if set, backs GetOrLoad. Loads for the same key are
	// coalesced; the result of a successful load is stored in the map.
	Loader Loader[K, V]
}

// Map is a mutex-serialized view over an lrumap.Map.
// All methods are safe for concurrent use by multiple goroutines.
type Map[K comparable, V any] struct {
	mu     sync.Mutex
	inner  lrumap.Map[K, V]
	loader Loader[K, V]
	sf     singleflight.Group[K, V]
}

// Wrap takes exclusive ownership of inner. The caller must not touch
// inner directly afterwards.
func Wrap[K comparable, V any](inner lrumap.Map[K, V], opt Options[K, V]) *Map[K, V] {
	return &Map[K, V]{inner: inner, loader: opt.Loader}
}

// Get returns the value for k, refreshing it to most-recently-used on hit.
func (m *Map[K, V]) Get(k K) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inner.Get(k)
}

// Put inserts or updates k→v, returning any previous value.
func (m *Map[K, V]) Put(k K, v V) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inner.Put(k, v)
}

// Remove deletes k, returning any previous value.
func (m *Map[K, V]) Remove(k K) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inner.Remove(k)
}

// ContainsKey reports membership without refreshing the entry.
func (m *Map[K, V]) ContainsKey(k K) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inner.ContainsKey(k)
}

// Len returns the number of live entries.
func (m *Map[K, V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inner.Len()
}

// Clear drops all entries without invoking removal listeners.
func (m *Map[K, V]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inner.Clear()
}

// SetMaxCapacity changes the eviction bound, returning the previous one.
func (m *Map[K, V]) SetMaxCapacity(n int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inner.SetMaxCapacity(n)
}

// Keys returns a snapshot of live keys, most-recently-used first.
// Unlike lrumap.Map.Keys this is not lazy: a lazy walk cannot hold the
// lock across caller code, so the keys are copied out under the lock.
func (m *Map[K, V]) Keys() []K {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]K, 0, m.inner.Len())
	for k := range m.inner.Keys() {
		keys = append(keys, k)
	}
	return keys
}

// GetOrLoad returns the value for k, loading it via the configured Loader
// on miss. Concurrent loads for the same key are coalesced; only one
// Loader call runs and every caller shares its result. Returns ErrNoLoader
// when no Loader was configured.
func (m *Map[K, V]) GetOrLoad(ctx context.Context, k K) (V, error) {
	if v, ok := m.Get(k); ok {
		return v, nil
	}
	if m.loader == nil {
		var zero V
		return zero, ErrNoLoader
	}

	return m.sf.Do(ctx, k, func() (V, error) {
		// Double-check after joining the flight: another caller may have
		// stored the value between our miss and the leader election.
		if v, ok := m.Get(k); ok {
			return v, nil
		}
		v, err := m.loader(ctx, k)
		if err == nil {
			m.Put(k, v)
		}
		return v, err
	})
}
