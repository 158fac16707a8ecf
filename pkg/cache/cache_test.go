package cache

import (
	"testing"
	"time"
)

func newTestCache(now *time.Time) *Cache[string] {
	c := New[string]()
	c.now = func() time.Time { return *now }
	return c
}

func TestSetAndGet(t *testing.T) {
	c := New[string]()
	c.Set("employee:1", "Ada", time.Second)
	val, ok := c.Get("employee:1")
	if !ok || val != "Ada" {
		t.Fatalf("expected Ada, got %q, exists=%v", val, ok)
	}
}

func TestExpiration(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := newTestCache(&now)
	c.Set("employee:1", "Ada", 100*time.Millisecond)

	now = now.Add(150 * time.Millisecond)
	if _, ok := c.Get("employee:1"); ok {
		t.Fatalf("expected expired key to return false")
	}
}

func TestDelete(t *testing.T) {
	c := New[string]()
	c.Set("employee:1", "Ada", time.Second)
	c.Delete("employee:1")
	if _, ok := c.Get("employee:1"); ok {
		t.Fatalf("expected deleted key to return false")
	}
}

func TestSweep(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := newTestCache(&now)
	c.Set("short", "a", time.Second)
	c.Set("long", "b", time.Hour)

	now = now.Add(time.Minute)
	if removed := c.Sweep(); removed != 1 {
		t.Fatalf("expected 1 entry swept, got %d", removed)
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 entry left, got %d", c.Len())
	}
	if _, ok := c.Get("long"); !ok {
		t.Fatalf("expected long-lived entry to survive")
	}
}

func TestInvalidate(t *testing.T) {
	c := New[string]()
	c.Set("employee:1", "e1", time.Second)
	c.Set("employee:2", "e2", time.Second)
	c.Set("task:1", "t1", time.Second)
	c.Invalidate("employee:")
	_, ok1 := c.Get("employee:1")
	_, ok2 := c.Get("employee:2")
	_, ok3 := c.Get("task:1")
	if ok1 || ok2 {
		t.Fatalf("expected employee keys to be invalidated")
	}
	if !ok3 {
		t.Fatalf("expected task:1 to still exist")
	}
}
