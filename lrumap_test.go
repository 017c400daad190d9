package lrumap

import (
	"slices"
	"strconv"
	"testing"
)

// collectKeys drains the Keys iterator into a slice for order assertions.
func collectKeys[K comparable, V any](m Map[K, V]) []K {
	var keys []K
	for k := range m.Keys() {
		keys = append(keys, k)
	}
	return keys
}

// Basic Put/Get/Remove semantics, including previous-value returns.
func TestMap_BasicPutGetRemove(t *testing.T) {
	t.Parallel()

	m := New[string, int](Options[string, int]{MaxCapacity: 8})

	if _, had := m.Put("a", 1); had {
		t.Fatal("Put of a new key must report no previous value")
	}
	if old, had := m.Put("a", 11); !had || old != 1 {
		t.Fatalf("Put on existing key: want (1, true), got (%v, %v)", old, had)
	}
	if v, ok := m.Get("a"); !ok || v != 11 {
		t.Fatalf("Get a: want 11, got %v ok=%v", v, ok)
	}
	if _, ok := m.Get("zzz"); ok {
		t.Fatal("Get of an absent key must miss")
	}

	if v, ok := m.Remove("a"); !ok || v != 11 {
		t.Fatalf("Remove a: want (11, true), got (%v, %v)", v, ok)
	}
	if _, ok := m.Remove("a"); ok {
		t.Fatal("second Remove must report absent")
	}
	if !m.IsEmpty() {
		t.Fatal("map must be empty after removing the only key")
	}
}

// Deterministic LRU eviction with refresh-on-read:
// capacity 2, A B inserted, C evicts A; Get(B) then D evicts C, not B.
func TestMap_EvictionLRU(t *testing.T) {
	t.Parallel()

	m := New[string, int](Options[string, int]{MaxCapacity: 2})

	m.Put("a", 1)
	m.Put("b", 2)
	m.Put("c", 3) // evicts a (LRU)

	if m.ContainsKey("a") {
		t.Fatal("a must be evicted")
	}
	if _, ok := m.Get("b"); !ok { // promote b
		t.Fatal("expect hit for b")
	}
	m.Put("d", 4) // evicts c, not the freshly promoted b

	if m.ContainsKey("c") {
		t.Fatal("c must be evicted")
	}
	if !m.ContainsKey("b") {
		t.Fatal("b must survive (promoted by Get)")
	}
	if v, ok := m.Get("d"); !ok || v != 4 {
		t.Fatal("d must be present")
	}
}

// Concrete recency scenario: capacity 3, 1..3 inserted, Get(1) refreshes,
// inserting 4 evicts 2; final order MRU→LRU is 4, 1, 3.
func TestMap_RecencyOrderAfterRefresh(t *testing.T) {
	t.Parallel()

	m := New[int, string](Options[int, string]{MaxCapacity: 3})

	m.Put(1, "a")
	m.Put(2, "b")
	m.Put(3, "c")
	if _, ok := m.Get(1); !ok {
		t.Fatal("expect hit for 1")
	}
	m.Put(4, "d") // 2 was least recently touched

	if m.ContainsKey(2) {
		t.Fatal("2 must be evicted")
	}

	// Entries does not refresh, so contents and order can be checked in
	// one non-mutating pass.
	wantKeys := []int{4, 1, 3}
	wantVals := []string{"d", "a", "c"}
	var gotKeys []int
	var gotVals []string
	for k, v := range m.Entries() {
		gotKeys = append(gotKeys, k)
		gotVals = append(gotVals, v)
	}
	if !slices.Equal(gotKeys, wantKeys) {
		t.Fatalf("recency order: want %v, got %v", wantKeys, gotKeys)
	}
	if !slices.Equal(gotVals, wantVals) {
		t.Fatalf("values: want %v, got %v", wantVals, gotVals)
	}
}

// For any sequence of Puts, Len never exceeds the bound after a call returns.
func TestMap_CapacityInvariant(t *testing.T) {
	t.Parallel()

	const capacity = 7
	m := New[string, int](Options[string, int]{MaxCapacity: capacity})

	for i := 0; i < 100; i++ {
		m.Put("k:"+strconv.Itoa(i%13), i)
		if m.Len() > capacity {
			t.Fatalf("Len %d exceeds bound %d after put %d", m.Len(), capacity, i)
		}
	}
	if m.Len() != capacity {
		t.Fatalf("warm map should sit at capacity, Len=%d", m.Len())
	}
}

// ContainsKey and ContainsValue must not change eviction priority.
func TestMap_ContainsDoesNotRefresh(t *testing.T) {
	t.Parallel()

	m := New[string, int](Options[string, int]{MaxCapacity: 2})

	m.Put("a", 1)
	m.Put("b", 2)

	// Probing "a" both ways must leave it LRU.
	if !m.ContainsKey("a") || !m.ContainsValue(1) {
		t.Fatal("a=1 must be present")
	}
	if got := collectKeys(m); !slices.Equal(got, []string{"b", "a"}) {
		t.Fatalf("order changed by membership checks: %v", got)
	}

	m.Put("c", 3) // must evict a despite the probes
	if m.ContainsKey("a") {
		t.Fatal("a must be evicted; membership checks refreshed it")
	}
	if m.ContainsValue(1) {
		t.Fatal("value 1 must be gone with a")
	}
}

// ContainsValue honors a custom equality predicate.
func TestMap_ContainsValueCustomEqual(t *testing.T) {
	t.Parallel()

	type blob struct{ id int }
	m := New[string, *blob](Options[string, *blob]{
		MaxCapacity: 4,
		ValueEqual:  func(a, b *blob) bool { return a.id == b.id },
	})

	m.Put("x", &blob{id: 7})
	if !m.ContainsValue(&blob{id: 7}) {
		t.Fatal("ContainsValue must match via the configured predicate")
	}
	if m.ContainsValue(&blob{id: 8}) {
		t.Fatal("ContainsValue must reject a non-matching id")
	}
}

// Clear empties the map without firing listeners (asserted in listener_test).
func TestMap_Clear(t *testing.T) {
	t.Parallel()

	m := New[string, int](Options[string, int]{MaxCapacity: 4})
	m.Put("a", 1)
	m.Put("b", 2)

	m.Clear()

	if m.Len() != 0 || !m.IsEmpty() {
		t.Fatalf("Len after Clear: want 0, got %d", m.Len())
	}
	if m.ContainsKey("a") || m.ContainsKey("b") {
		t.Fatal("membership must be false after Clear")
	}
	// The map stays usable.
	m.Put("c", 3)
	if v, ok := m.Get("c"); !ok || v != 3 {
		t.Fatal("map must accept inserts after Clear")
	}
}

// Shrinking the bound evicts exactly the overflow from the tail end and
// leaves Len at the new bound; growing evicts nothing.
func TestMap_SetMaxCapacity(t *testing.T) {
	t.Parallel()

	m := New[int, int](Options[int, int]{MaxCapacity: 5})
	for i := 1; i <= 5; i++ {
		m.Put(i, i)
	}

	if old := m.SetMaxCapacity(2); old != 5 {
		t.Fatalf("SetMaxCapacity must return the old bound 5, got %d", old)
	}
	if m.Len() != 2 || m.MaxCapacity() != 2 {
		t.Fatalf("after shrink: Len=%d cap=%d, want 2/2", m.Len(), m.MaxCapacity())
	}
	// The two most recently touched keys survive.
	if got := collectKeys(m); !slices.Equal(got, []int{5, 4}) {
		t.Fatalf("survivors: want [5 4], got %v", got)
	}

	if old := m.SetMaxCapacity(10); old != 2 {
		t.Fatalf("grow must return 2, got %d", old)
	}
	if m.Len() != 2 {
		t.Fatal("growing the bound must not evict")
	}
}

// Clone preserves size, configuration, and relative recency order, and the
// copy is independent of the source.
func TestMap_CloneRoundTrip(t *testing.T) {
	t.Parallel()

	src := New[int, string](Options[int, string]{
		MaxCapacity:     5,
		InitialCapacity: 8,
		LoadFactor:      0.5,
	})
	src.Put(1, "a")
	src.Put(2, "b")
	src.Put(3, "c")
	src.Get(1) // order now 1, 3, 2

	dst := src.Clone()

	if dst.Len() != src.Len() {
		t.Fatalf("clone Len=%d, want %d", dst.Len(), src.Len())
	}
	if dst.MaxCapacity() != 5 || dst.InitialCapacity() != 8 || dst.LoadFactor() != 0.5 {
		t.Fatalf("clone config: got (%d, %d, %v)",
			dst.MaxCapacity(), dst.InitialCapacity(), dst.LoadFactor())
	}
	want := []int{1, 3, 2}
	if got := collectKeys(dst); !slices.Equal(got, want) {
		t.Fatalf("clone order: want %v, got %v", want, got)
	}

	// Mutating the clone leaves the source alone, and vice versa.
	dst.Remove(3)
	if !src.ContainsKey(3) {
		t.Fatal("removing from the clone must not touch the source")
	}
	src.Put(9, "z")
	if dst.ContainsKey(9) {
		t.Fatal("inserting into the source must not touch the clone")
	}
}

// PutAll inserts every mapping; values are retrievable afterwards.
func TestMap_PutAll(t *testing.T) {
	t.Parallel()

	m := New[string, int](Options[string, int]{MaxCapacity: 10})
	m.PutAll(map[string]int{"a": 1, "b": 2, "c": 3})

	if m.Len() != 3 {
		t.Fatalf("Len=%d, want 3", m.Len())
	}
	for k, want := range map[string]int{"a": 1, "b": 2, "c": 3} {
		if v, ok := m.Get(k); !ok || v != want {
			t.Fatalf("Get %s: want %d, got %v ok=%v", k, want, v, ok)
		}
	}
}

// Accessors reflect configuration; zero Options fields take defaults.
func TestMap_ConfigDefaults(t *testing.T) {
	t.Parallel()

	m := New[string, int](Options[string, int]{MaxCapacity: 3})

	if m.MaxCapacity() != 3 {
		t.Fatalf("MaxCapacity=%d, want 3", m.MaxCapacity())
	}
	if m.InitialCapacity() != DefaultInitialCapacity {
		t.Fatalf("InitialCapacity=%d, want %d", m.InitialCapacity(), DefaultInitialCapacity)
	}
	if m.LoadFactor() != DefaultLoadFactor {
		t.Fatalf("LoadFactor=%v, want %v", m.LoadFactor(), DefaultLoadFactor)
	}
}

// Non-positive bounds are precondition violations and must panic before
// any state changes.
func TestMap_PreconditionPanics(t *testing.T) {
	t.Parallel()

	mustPanic := func(name string, fn func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Fatalf("%s must panic", name)
			}
		}()
		fn()
	}

	mustPanic("New with MaxCapacity 0", func() {
		New[string, int](Options[string, int]{})
	})
	mustPanic("New with negative InitialCapacity", func() {
		New[string, int](Options[string, int]{MaxCapacity: 1, InitialCapacity: -1})
	})
	mustPanic("New with negative LoadFactor", func() {
		New[string, int](Options[string, int]{MaxCapacity: 1, LoadFactor: -0.5})
	})

	m := New[string, int](Options[string, int]{MaxCapacity: 2})
	m.Put("a", 1)
	mustPanic("SetMaxCapacity(0)", func() { m.SetMaxCapacity(0) })
	// The failed call must not have mutated anything.
	if m.MaxCapacity() != 2 || !m.ContainsKey("a") {
		t.Fatal("failed SetMaxCapacity must leave the map untouched")
	}
}

// Updating an existing key on a full map must not evict anything: the
// entry is rebound in place.
func TestMap_UpdateOnFullMapDoesNotEvict(t *testing.T) {
	t.Parallel()

	m := New[string, int](Options[string, int]{MaxCapacity: 2})
	m.Put("a", 1)
	m.Put("b", 2)

	if old, had := m.Put("a", 10); !had || old != 1 {
		t.Fatalf("update: want (1, true), got (%v, %v)", old, had)
	}
	if m.Len() != 2 || !m.ContainsKey("a") || !m.ContainsKey("b") {
		t.Fatal("update on a full map must keep both keys")
	}
	// The update refreshed a, so b is now the eviction candidate.
	m.Put("c", 3)
	if m.ContainsKey("b") || !m.ContainsKey("a") {
		t.Fatal("refresh-on-write must protect the updated key")
	}
}

// A map bounded to a single entry degenerates to "last write wins".
func TestMap_CapacityOne(t *testing.T) {
	t.Parallel()

	m := New[string, int](Options[string, int]{MaxCapacity: 1})

	m.Put("a", 1)
	m.Put("b", 2)
	if m.ContainsKey("a") || !m.ContainsKey("b") {
		t.Fatal("only the newest key may survive at capacity 1")
	}
	if m.Len() != 1 {
		t.Fatalf("Len=%d, want 1", m.Len())
	}
	m.Remove("b")
	if !m.IsEmpty() {
		t.Fatal("map must be empty")
	}
	m.Put("c", 3)
	if v, ok := m.Get("c"); !ok || v != 3 {
		t.Fatal("map must keep working after draining to empty")
	}
}
