// Package singleflight coalesces concurrent calls for the same key so the
// underlying work runs at most once while every caller shares the result.
package singleflight

import (
	"context"
	"sync"
)

// Group deduplicates in-flight calls by key. The first caller for a key
// becomes the leader and runs fn; followers wait for the shared result.
// Publishing (val, err) happens-before close(done), so reads after <-done
// observe the final values.
type Group[K comparable, V any] struct {
	mu sync.Mutex
	m  map[K]*flight[V]
}

type flight[V any] struct {
	done chan struct{} // closed once val/err are published
	val  V
	err  error
}

// Do runs fn at most once for concurrent callers sharing key. A follower
// whose ctx is cancelled returns ctx.Err() without disturbing the leader;
// cancelling the work itself requires fn to honor a context of its own.
func (g *Group[K, V]) Do(ctx context.Context, key K, fn func() (V, error)) (V, error) {
	g.mu.Lock()
	if g.m == nil {
		g.m = make(map[K]*flight[V])
	}
	if f, ok := g.m[key]; ok {
		// Join the in-flight call.
		g.mu.Unlock()
		select {
		case <-f.done:
			return f.val, f.err
		case <-ctx.Done():
			var zero V
			return zero, ctx.Err()
		}
	}

	f := &flight[V]{done: make(chan struct{})}
	g.m[key] = f
	g.mu.Unlock()

	// Leader path: run fn outside the lock, publish, wake followers.
	f.val, f.err = fn()
	close(f.done)

	g.mu.Lock()
	delete(g.m, key)
	g.mu.Unlock()

	return f.val, f.err
}
