package cache

import (
	"runtime"
	"testing"
)

func TestGetSetBasic(t *testing.T) {
	c := New[string, int](2)
	c.Set("a", 1)
	c.Set("b", 2)

	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("Get(a) = %v, %v; want 1, true", v, ok)
	}
	if v, ok := c.Get("b"); !ok || v != 2 {
		t.Fatalf("Get(b) = %v, %v; want 2, true", v, ok)
	}
}

func TestSetUpdatesInPlace(t *testing.T) {
	c := New[string, int](2)
	c.Set("a", 1)
	c.Set("a", 99)

	if v, ok := c.Get("a"); !ok || v != 99 {
		t.Fatalf("Get(a) after update = %v, %v; want 99, true", v, ok)
	}
	if c.Len() != 1 {
		t.Fatalf("Len() = %d; want 1", c.Len())
	}
}

func TestEvictsHeadOnOverflow(t *testing.T) {
	c := New[string, int](2)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3) // evicts "a", the least recently used

	if _, ok := c.Get("a"); ok {
		t.Fatalf("a should have been evicted")
	}
	if _, ok := c.Get("b"); !ok {
		t.Fatalf("b should still be present")
	}
	if _, ok := c.Get("c"); !ok {
		t.Fatalf("c should be present")
	}
}

func TestGetPromotesToTail(t *testing.T) {
	c := New[string, int](2)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a") // promotes a, so b is now least recently used
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Fatalf("b should have been evicted, a was promoted by Get")
	}
	if _, ok := c.Get("a"); !ok {
		t.Fatalf("a should still be present")
	}
}

func TestCapacityCoercedToOne(t *testing.T) {
	c := New[string, int](0)
	c.Set("a", 1)
	c.Set("b", 2)

	if c.Len() != 1 {
		t.Fatalf("Len() = %d; want 1 for coerced capacity", c.Len())
	}
	if _, ok := c.Get("a"); ok {
		t.Fatalf("a should have been evicted under capacity 1")
	}
}

func TestClear(t *testing.T) {
	c := New[string, int](4)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Clear()

	if c.Len() != 0 {
		t.Fatalf("Len() after Clear = %d; want 0", c.Len())
	}
	if _, ok := c.Get("a"); ok {
		t.Fatalf("a should be gone after Clear")
	}
}

func TestGetMissingKey(t *testing.T) {
	c := New[string, int](2)
	if _, ok := c.Get("missing"); ok {
		t.Fatalf("Get(missing) should report ok=false")
	}
}

// TestNoUnboundedGrowth exercises the cache far beyond capacity and checks
// that heap growth stays bounded, guarding against a future regression that
// stops evicting.
func TestNoUnboundedGrowth(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation-heavy leak check in short mode")
	}
	const capacity = 64
	c := New[int, []byte](capacity)

	var before runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)

	for i := 0; i < 200_000; i++ {
		c.Set(i, make([]byte, 128))
	}

	if got := c.Len(); got > capacity {
		t.Fatalf("Len() = %d; want <= %d", got, capacity)
	}

	runtime.GC()
	var after runtime.MemStats
	runtime.ReadMemStats(&after)

	const maxGrowthBytes = 64 << 20
	if after.HeapAlloc > before.HeapAlloc && after.HeapAlloc-before.HeapAlloc > maxGrowthBytes {
		t.Fatalf("heap grew by %d bytes, exceeding the bounded-cache expectation", after.HeapAlloc-before.HeapAlloc)
	}
}
