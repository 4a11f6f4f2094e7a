package cache

import (
	"fmt"
	"testing"
	"time"
)

func TestCache_GetSet(t *testing.T) {
	c := New(Config{MaxEntries: 100})

	c.Set("key1", []string{"First sentence.", "Second sentence."})

	got, err := c.Get("key1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got) != 2 || got[0] != "First sentence." {
		t.Errorf("unexpected value: %q", got)
	}

	// Miss
	if _, err := c.Get("nonexistent"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCache_Update(t *testing.T) {
	c := New(Config{MaxEntries: 100})

	c.Set("key1", []string{"old"})
	c.Set("key1", []string{"new"})

	got, err := c.Get("key1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got[0] != "new" {
		t.Errorf("expected updated value, got %q", got)
	}

	stats := c.Stats()
	if stats.Size != 1 {
		t.Errorf("expected size 1 after update, got %d", stats.Size)
	}
}

func TestCache_Expiration(t *testing.T) {
	c := New(Config{MaxEntries: 100, TTL: 10 * time.Millisecond})

	c.Set("key1", []string{"value"})

	if _, err := c.Get("key1"); err != nil {
		t.Fatalf("Get before expiry failed: %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	if _, err := c.Get("key1"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound after TTL, got %v", err)
	}
}

func TestCache_LRUEviction(t *testing.T) {
	c := New(Config{MaxEntries: 3})

	c.Set("a", []string{"a"})
	c.Set("b", []string{"b"})
	c.Set("c", []string{"c"})

	// Touch "a" so "b" becomes the oldest.
	if _, err := c.Get("a"); err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	c.Set("d", []string{"d"})

	if _, err := c.Get("b"); err != ErrNotFound {
		t.Error("expected oldest entry \"b\" to be evicted")
	}
	for _, key := range []string{"a", "c", "d"} {
		if _, err := c.Get(key); err != nil {
			t.Errorf("entry %q unexpectedly evicted", key)
		}
	}

	if stats := c.Stats(); stats.Evictions != 1 {
		t.Errorf("expected 1 eviction, got %d", stats.Evictions)
	}
}

func TestCache_Stats(t *testing.T) {
	c := New(Config{MaxEntries: 10})

	c.Set("key1", []string{"v"})
	_, _ = c.Get("key1")
	_, _ = c.Get("miss")

	stats := c.Stats()
	if stats.Hits != 1 {
		t.Errorf("expected 1 hit, got %d", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Errorf("expected 1 miss, got %d", stats.Misses)
	}
	if stats.Sets != 1 {
		t.Errorf("expected 1 set, got %d", stats.Sets)
	}
	if stats.Size != 1 {
		t.Errorf("expected size 1, got %d", stats.Size)
	}
}

func TestCache_Clear(t *testing.T) {
	c := New(Config{MaxEntries: 10})

	c.Set("key1", []string{"v"})
	c.Clear()

	if _, err := c.Get("key1"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound after Clear, got %v", err)
	}
	if stats := c.Stats(); stats.Size != 0 {
		t.Errorf("expected size 0 after Clear, got %d", stats.Size)
	}
}

func TestCache_DefaultMaxEntries(t *testing.T) {
	c := New(Config{})

	for i := 0; i < 10; i++ {
		c.Set(fmt.Sprintf("key%d", i), []string{"v"})
	}
	if stats := c.Stats(); stats.Size != 10 {
		t.Errorf("expected size 10, got %d", stats.Size)
	}
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := New(Config{MaxEntries: 100})

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func(n int) {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("key%d", j%10)
				c.Set(key, []string{"v"})
				_, _ = c.Get(key)
			}
		}(i)
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}

func TestKey(t *testing.T) {
	base := Key("some document", "english", "ratio", 0.2)

	if len(base) != 64 {
		t.Errorf("expected hex sha256 key, got %q", base)
	}
	if Key("some document", "english", "ratio", 0.2) != base {
		t.Error("identical inputs must produce identical keys")
	}

	variants := []string{
		Key("other document", "english", "ratio", 0.2),
		Key("some document", "german", "ratio", 0.2),
		Key("some document", "english", "sentences", 0.2),
		Key("some document", "english", "ratio", 0.3),
	}
	for i, v := range variants {
		if v == base {
			t.Errorf("variant %d collides with base key", i)
		}
	}
}
