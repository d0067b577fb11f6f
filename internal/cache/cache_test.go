package cache

import (
	"context"
	"testing"
	"time"
)

func TestTTLCache_SetGet(t *testing.T) {
	c := New[string, int](10, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)

	if got, ok := c.Get("a"); !ok || got != 1 {
		t.Errorf("Get(a) = %v, %v, want 1, true", got, ok)
	}
	if got, ok := c.Get("b"); !ok || got != 2 {
		t.Errorf("Get(b) = %v, %v, want 2, true", got, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Errorf("Get(missing) = _, true, want false")
	}
}

func TestTTLCache_Overwrite(t *testing.T) {
	c := New[string, int](10, time.Minute)

	c.Set("a", 1)
	c.Set("a", 2)

	if got, ok := c.Get("a"); !ok || got != 2 {
		t.Errorf("Get(a) = %v, %v, want 2, true", got, ok)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestTTLCache_Expiry(t *testing.T) {
	c := New[string, int](10, 10*time.Millisecond)

	c.Set("a", 1)
	time.Sleep(25 * time.Millisecond)

	if _, ok := c.Get("a"); ok {
		t.Errorf("Get(a) after TTL = _, true, want false")
	}
	if c.Len() != 0 {
		t.Errorf("Len() after expired Get = %d, want 0", c.Len())
	}
}

func TestTTLCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := New[string, int](2, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a") // refresh a so b becomes the eviction candidate
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Errorf("Get(b) = _, true, want evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Errorf("Get(a) = _, false, want retained")
	}
	if _, ok := c.Get("c"); !ok {
		t.Errorf("Get(c) = _, false, want retained")
	}
}

func TestTTLCache_Delete(t *testing.T) {
	c := New[string, int](10, time.Minute)

	c.Set("a", 1)
	c.Delete("a")
	c.Delete("missing")

	if _, ok := c.Get("a"); ok {
		t.Errorf("Get(a) after Delete = _, true, want false")
	}
}

func TestTTLCache_CleanExpired(t *testing.T) {
	c := New[string, int](10, 10*time.Millisecond)

	c.Set("a", 1)
	c.Set("b", 2)
	time.Sleep(25 * time.Millisecond)
	c.Set("fresh", 3)

	if removed := c.CleanExpired(); removed != 2 {
		t.Errorf("CleanExpired() = %d, want 2", removed)
	}
	if _, ok := c.Get("fresh"); !ok {
		t.Errorf("Get(fresh) = _, false, want retained")
	}
}

func TestJanitor_RunSweepsAndStops(t *testing.T) {
	c := New[string, int](10, 5*time.Millisecond)
	c.Set("a", 1)

	j := NewJanitor(10*time.Millisecond, c)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- j.Run(ctx) }()

	time.Sleep(40 * time.Millisecond)
	if c.Len() != 0 {
		t.Errorf("Len() after sweep = %d, want 0", c.Len())
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v, want nil", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run() did not stop after cancel")
	}
}
