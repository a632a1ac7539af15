package cache

import (
	"strconv"
	"sync"
	"testing"
)

func TestLRU_GetSet(t *testing.T) {
	c := New[string, int](2)

	if _, ok := c.Get("a"); ok {
		t.Fatal("empty cache should miss")
	}

	c.Set("a", 1)
	c.Set("b", 2)

	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %d, %v, want 1, true", v, ok)
	}

	// a is now most recent, so adding c evicts b
	c.Set("c", 3)
	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	if v, ok := c.Get("c"); !ok || v != 3 {
		t.Errorf("Get(c) = %d, %v, want 3, true", v, ok)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}

	stats := c.Stats()
	if stats.Hits != 2 || stats.Misses != 2 || stats.Evictions != 1 {
		t.Errorf("Stats() = %+v, want 2 hits, 2 misses, 1 eviction", stats)
	}
}

func TestLRU_UpdateInPlace(t *testing.T) {
	c := New[string, int](2)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("a", 10)

	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	if v, _ := c.Get("a"); v != 10 {
		t.Errorf("Get(a) = %d, want 10", v)
	}

	// b is least recent after the update of a
	c.Set("c", 3)
	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
}

func TestLRU_DeleteAndClear(t *testing.T) {
	c := New[int, string](4)
	c.Set(1, "one")
	c.Set(2, "two")

	c.Delete(1)
	if _, ok := c.Get(1); ok {
		t.Error("deleted key should miss")
	}
	c.Delete(42)

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", c.Len())
	}
	if c.Stats().Hits != 0 || c.Stats().Misses != 1 {
		t.Errorf("Stats() = %+v", c.Stats())
	}
}

func TestLRU_ZeroCapacity(t *testing.T) {
	c := New[string, int](0)
	c.Set("a", 1)
	if _, ok := c.Get("a"); ok {
		t.Error("zero-capacity cache should not store")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
	if c.Capacity() != 0 {
		t.Errorf("Capacity() = %d, want 0", c.Capacity())
	}
}

func TestLRU_Concurrent(t *testing.T) {
	c := New[string, int](16)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				k := strconv.Itoa((g * i) % 32)
				c.Set(k, i)
				c.Get(k)
			}
		}(g)
	}
	wg.Wait()

	if c.Len() > 16 {
		t.Errorf("Len() = %d exceeds capacity", c.Len())
	}
}
